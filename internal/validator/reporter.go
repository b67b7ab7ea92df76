package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format specifies the output format for reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// maxValueWidth bounds how much of an offending value a text report shows.
const maxValueWidth = 50

// Summary counts a result's issues by severity.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Notes    int `json:"notes"`
}

// Summarize counts the issues in r.
func Summarize(r *Result) Summary {
	return Summary{
		Errors:   len(r.Errors()),
		Warnings: len(r.Warnings()),
		Notes:    len(r.Infos()),
	}
}

// jsonReport is the JSON document a report writes.
type jsonReport struct {
	Summary Summary `json:"summary"`
	Issues  []Issue `json:"issues"`
}

// Reporter formats and writes diagnostic results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// Report writes result to the output. A nil result writes nothing.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		return nil
	}

	if r.format == FormatJSON {
		issues := result.Issues
		if issues == nil {
			issues = []Issue{}
		}
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(jsonReport{Summary: Summarize(result), Issues: issues}),
			"encoding JSON report")
	}
	return r.reportText(result)
}

func (r *Reporter) reportText(result *Result) error {
	sum := Summarize(result)
	if sum.Errors == 0 && sum.Warnings == 0 {
		fmt.Fprintln(r.out, color.GreenString("✓ No problems found"))
	} else {
		var counts []string
		if sum.Errors > 0 {
			counts = append(counts, color.RedString("%d error(s)", sum.Errors))
		}
		if sum.Warnings > 0 {
			counts = append(counts, color.YellowString("%d warning(s)", sum.Warnings))
		}
		fmt.Fprintf(r.out, "Problems found: %s\n\n", strings.Join(counts, ", "))
	}

	sections := []struct {
		title  string
		issues []Issue
		attr   color.Attribute
	}{
		{"Errors:", result.Errors(), color.FgRed},
		{"Warnings:", result.Warnings(), color.FgYellow},
		{"Notes:", result.Infos(), color.FgBlue},
	}
	for _, s := range sections {
		if len(s.issues) == 0 {
			continue
		}
		fmt.Fprintln(r.out, s.title)
		field := color.New(s.attr).SprintFunc()
		for _, i := range s.issues {
			fmt.Fprintln(r.out, formatIssue(i, field))
		}
		fmt.Fprintln(r.out)
	}
	return nil
}

// formatIssue renders one bullet line; field colors the location.
func formatIssue(i Issue, field func(...any) string) string {
	dim := color.New(color.FgHiBlack)

	var sb strings.Builder
	sb.WriteString("  • ")
	if i.Field != "" {
		sb.WriteString(field(i.Field))
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)

	if len(i.Context) > 0 {
		pairs := make([]string, 0, len(i.Context))
		for _, k := range slices.Sorted(maps.Keys(i.Context)) {
			pairs = append(pairs, k+"="+i.Context[k])
		}
		sb.WriteString(" ")
		sb.WriteString(dim.Sprintf("(%s)", strings.Join(pairs, ", ")))
	}

	if i.Value != nil {
		v := fmt.Sprintf("%v", i.Value)
		if len(v) > maxValueWidth {
			v = v[:maxValueWidth-3] + "..."
		}
		sb.WriteString(dim.Sprintf(" [%s]", v))
	}
	return sb.String()
}
