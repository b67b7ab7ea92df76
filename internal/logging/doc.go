// Package logging provides structured logging for the flatlint CLI on top of
// [log/slog].
//
// Text output goes through [Handler], which colors levels and keys when the
// destination is a terminal (NO_COLOR and TERM=dumb disable color). JSON
// output uses the standard JSON handler. [MultiHandler] fans records out, which
// the CLI uses to mirror logs into a --log-file.
//
// The active logger travels in a context:
//
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Debug("merged", "blocks", n)
//
// Tests use [ForTest] so log lines appear only when a test fails.
package logging
