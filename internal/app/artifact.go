package app

import "fmt"

// ArtifactKind identifies what an artifact is
type ArtifactKind string

const (
	KindSummary  ArtifactKind = "summary"
	KindWorst    ArtifactKind = "worst_links"
	KindWorkbook ArtifactKind = "workbook"
	KindPlot     ArtifactKind = "plot"
)

// Artifact is one output of an analyzer run, either written or skipped
type Artifact struct {
	Kind    ArtifactKind
	Name    string
	Path    string
	Skipped bool
	Reason  string
}

// Outcome returns "skip" or "ok"
func (a Artifact) Outcome() string {
	if a.Skipped {
		return "skip"
	}
	return "ok"
}

// StatusLine returns the console line reporting the artifact
func (a Artifact) StatusLine() string {
	if a.Skipped {
		return fmt.Sprintf("[SKIP] %s (%s)", a.Name, a.Reason)
	}
	switch a.Kind {
	case KindSummary:
		return "[OK] Summary: " + a.Path
	case KindWorst:
		return "[OK] Worst links: " + a.Path
	case KindWorkbook:
		return "[OK] Workbook: " + a.Path
	default:
		return "[OK] Plot: " + a.Path
	}
}
