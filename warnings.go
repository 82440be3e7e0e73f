package docforge

import "strings"

// Warning reports a non-fatal issue encountered during processing, where
// the pipeline succeeded but results may be imperfect.
type Warning struct {
	// Stage is the pipeline stage that produced the warning: "ingest",
	// "cleanup", or "map".
	Stage string

	// Message is a human-readable description.
	Message string
}

func (w Warning) String() string {
	return w.Stage + ": " + w.Message
}

// FormatWarnings joins warnings into a single human-readable string.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
