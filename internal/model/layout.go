package model

// LayoutState classifies a project tree against the target source layout.
type LayoutState string

const (
	// LayoutUnknown means neither the target source dir nor any known
	// legacy directory was found.
	LayoutUnknown LayoutState = "unknown"
	// LayoutLegacy means framework directories live at the project root
	// and the target source dir is absent or empty.
	LayoutLegacy LayoutState = "legacy"
	// LayoutTarget means the target source dir exists and is populated.
	LayoutTarget LayoutState = "target"
	// LayoutMixed means the target source dir is populated but legacy
	// directories are still present at the project root.
	LayoutMixed LayoutState = "mixed"
)

// MigrationEntry is one source-to-destination directory pair, both relative
// to the project root.
type MigrationEntry struct {
	Source Path `yaml:"source"`
	Dest   Path `yaml:"dest"`
}

// MigrationPlan is the ordered set of directory moves for one run. It is
// recomputed from the fixed directory list each run and never persisted.
type MigrationPlan []MigrationEntry

// MoveOutcome records what happened to a single plan entry.
type MoveOutcome struct {
	Entry   MigrationEntry `yaml:"entry"`
	Moved   int            `yaml:"moved"`   // entries moved into the destination
	Skipped bool           `yaml:"skipped"` // true when the source did not exist
}

// MigrationReport aggregates the outcomes of one migrate call.
type MigrationReport struct {
	Outcomes []MoveOutcome `yaml:"outcomes"`
}

// MovedTotal returns the number of filesystem entries moved across the plan.
func (r MigrationReport) MovedTotal() int {
	total := 0
	for _, o := range r.Outcomes {
		total += o.Moved
	}

	return total
}

// WriteOutcome is the result of a guarded template write.
type WriteOutcome string

const (
	// WriteCreated means the file did not exist and was written.
	WriteCreated WriteOutcome = "created"
	// WriteSkippedExisting means an existing file was left untouched.
	WriteSkippedExisting WriteOutcome = "skipped"
)
