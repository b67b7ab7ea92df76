// Package validator holds the diagnostic types flatlint reports when checking
// an override list, and a [Reporter] that prints them as colored text or JSON.
//
//	result := &validator.Result{}
//	result.AddWarning("overrides[1].space", "indent width must be positive", 0)
//	if result.HasErrors() {
//		// a merge of this list would fail
//	}
package validator
