package domain

import (
	"fmt"
	"log/slog"

	"nuxtsmith.dev/pkg/nuxtsmith/internal/adapter"
	m "nuxtsmith.dev/pkg/nuxtsmith/internal/model"
)

// TargetDirName is the source directory of the target layout ("app/" in the
// Nuxt 4 convention). A populated TargetDirName is what makes a tree TARGET.
const TargetDirName = "app"

// migratableDirs are the framework directories that live at the project root
// in the legacy layout and under TargetDirName in the target layout. Order
// is the migration order.
var migratableDirs = []string{
	"components",
	"composables",
	"pages",
	"layouts",
	"lib",
	"stores",
	"assets",
	"middleware",
	"plugins",
	"utils",
}

// LayoutInspector classifies a project tree against the target layout.
type LayoutInspector struct {
	fs adapter.ProjectFSAdapter
}

// NewLayoutInspector constructs a LayoutInspector.
func NewLayoutInspector(fs adapter.ProjectFSAdapter) *LayoutInspector {
	return &LayoutInspector{fs: fs}
}

// Inspect derives the LayoutState of the project. It is a pure read and can
// be called repeatedly; the state is never stored.
func (li *LayoutInspector) Inspect(project m.Project) m.LayoutState {
	targetPopulated := li.fs.DirNonEmpty(li.fs.JoinPath(string(project.Root), TargetDirName))

	legacyPresent := false

	for _, dir := range migratableDirs {
		if li.fs.DirExists(li.fs.JoinPath(string(project.Root), dir)) {
			legacyPresent = true
			break
		}
	}

	switch {
	case targetPopulated && legacyPresent:
		return m.LayoutMixed
	case targetPopulated:
		return m.LayoutTarget
	case legacyPresent:
		return m.LayoutLegacy
	default:
		return m.LayoutUnknown
	}
}

// DefaultMigrationPlan builds the fixed source-to-target directory plan.
// It is recomputed per run and never persisted.
func DefaultMigrationPlan() m.MigrationPlan {
	plan := make(m.MigrationPlan, 0, len(migratableDirs))

	for _, dir := range migratableDirs {
		plan = append(plan, m.MigrationEntry{
			Source: m.Path(dir),
			Dest:   m.Path(TargetDirName + "/" + dir),
		})
	}

	return plan
}

// LayoutMigrator moves legacy directories into the target layout.
type LayoutMigrator struct {
	fs adapter.ProjectFSAdapter
}

// NewLayoutMigrator constructs a LayoutMigrator.
func NewLayoutMigrator(fs adapter.ProjectFSAdapter) *LayoutMigrator {
	return &LayoutMigrator{fs: fs}
}

// Migrate reconciles the tree with the plan, entry by entry. Destination
// directories are created even when the source is missing; an existing,
// empty destination satisfies the target layout for later steps. A second
// run finds no sources left and moves nothing.
func (lm *LayoutMigrator) Migrate(project m.Project, plan m.MigrationPlan) (m.MigrationReport, error) {
	report := m.MigrationReport{}

	for _, entry := range plan {
		src := lm.fs.JoinPath(string(project.Root), string(entry.Source))
		dst := lm.fs.JoinPath(string(project.Root), string(entry.Dest))

		if err := lm.fs.MkdirAll(dst); err != nil {
			return report, fmt.Errorf("create %s: %w", entry.Dest, err)
		}

		if !lm.fs.DirExists(src) {
			report.Outcomes = append(report.Outcomes, m.MoveOutcome{Entry: entry, Skipped: true})
			continue
		}

		moved, err := lm.fs.MoveDirContents(src, dst)
		if err != nil {
			slog.Error("Layout migration failed", "source", src, "dest", dst, "error", err)
			return report, fmt.Errorf("move %s to %s: %w", entry.Source, entry.Dest, err)
		}

		report.Outcomes = append(report.Outcomes, m.MoveOutcome{Entry: entry, Moved: moved})

		slog.Debug("Migrated directory", "source", entry.Source, "dest", entry.Dest, "entries", moved)
	}

	return report, nil
}
