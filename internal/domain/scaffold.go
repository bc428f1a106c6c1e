package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"nuxtsmith.dev/pkg/nuxtsmith/internal/adapter"
	"nuxtsmith.dev/pkg/nuxtsmith/internal/controller"
	m "nuxtsmith.dev/pkg/nuxtsmith/internal/model"
)

const (
	packageManifest = "package.json"

	// shadcnHint is printed when the component-library steps fail. Those
	// steps are tolerated: shadcn-vue trails new framework releases.
	shadcnHint = "shadcn-vue is known to lag behind new Nuxt releases; " +
		"re-run later or run 'npx shadcn-vue@latest init' manually"
)

// defaultModules are registered during create, in order. Tool is the name
// the module-adder command takes; Package is the entry merged into the
// modules array.
var defaultModules = []struct {
	Tool    string
	Package string
}{
	{Tool: "image", Package: "@nuxt/image"},
	{Tool: "icon", Package: "@nuxt/icon"},
	{Tool: "pinia", Package: "@pinia/nuxt"},
}

// configDefaults are injected into a fresh nuxt.config.ts that has no
// options yet.
var configDefaults = []string{
	"compatibilityDate: '2025-07-15'",
	"devtools: { enabled: true }",
}

// defaultUIComponents are added by the component-library step.
var defaultUIComponents = []string{"button", "card"}

// CreateArgs parameterizes one scaffolding run.
type CreateArgs struct {
	Name           string
	BaseDir        m.Path
	PackageManager string
	SkipInstall    bool
	SkipUI         bool
	ReportsDir     m.Path
}

// Workflow wires the scaffolding components together and assembles the step
// lists the pipeline executes.
type Workflow struct {
	fs      adapter.ProjectFSAdapter
	tools   adapter.ToolRunnerAdapter
	reports adapter.RunReportStore
	ui      controller.UI

	patcher      *ConfigPatcher
	inspector    *LayoutInspector
	migrator     *LayoutMigrator
	materializer *TemplateMaterializer
}

// NewWorkflow constructs a Workflow with the provided dependencies.
func NewWorkflow(
	fs adapter.ProjectFSAdapter,
	tools adapter.ToolRunnerAdapter,
	reports adapter.RunReportStore,
	ui controller.UI,
) *Workflow {
	return &Workflow{
		fs:           fs,
		tools:        tools,
		reports:      reports,
		ui:           ui,
		patcher:      NewConfigPatcher(fs),
		inspector:    NewLayoutInspector(fs),
		migrator:     NewLayoutMigrator(fs),
		materializer: NewTemplateMaterializer(fs),
	}
}

// Create runs the full scaffolding pipeline. The process exit decision
// belongs to the caller: a nil return means Completed, warnings included.
func (w *Workflow) Create(ctx context.Context, args CreateArgs) error {
	project, err := m.NewProject(args.Name, w.fs.JoinPath(string(args.BaseDir), args.Name))
	if err != nil {
		return err
	}

	pipeline := NewPipeline(project, w.ui, w.createSteps(project, args))

	report, runErr := pipeline.Run(ctx)
	w.ui.Summary(report)

	if args.ReportsDir != "" {
		dir := w.fs.JoinPath(string(project.Root), string(args.ReportsDir))
		if err := w.reports.Save(dir, report); err != nil {
			slog.Warn("Failed to persist run report", "dir", dir, "error", err)
		}
	}

	return runErr
}

// createSteps assembles the ordered step list for Create.
func (w *Workflow) createSteps(project m.Project, args CreateArgs) []m.Step {
	steps := []m.Step{
		{
			ID:          "init",
			Description: "initialize project with nuxi",
			Policy:      m.Abort,
			Run: func(ctx context.Context) error {
				return w.initProject(ctx, project, args.BaseDir)
			},
		},
		{
			ID:          "package-name",
			Description: "set package manifest name",
			Policy:      m.Abort,
			Run: func(_ context.Context) error {
				return w.setManifestName(project)
			},
		},
	}

	if !args.SkipInstall {
		steps = append(steps, m.Step{
			ID:          "install",
			Description: "install dependencies with " + args.PackageManager,
			Policy:      m.Abort,
			Run: func(ctx context.Context) error {
				return w.tools.Run(ctx, project.Root, args.PackageManager, "install")
			},
		})
	}

	steps = append(steps,
		m.Step{
			ID:          "modules",
			Description: "add and register framework modules",
			Policy:      m.Abort,
			Run: func(ctx context.Context) error {
				return w.addDefaultModules(ctx, project)
			},
		},
		m.Step{
			ID:          "config-defaults",
			Description: "apply configuration defaults",
			Policy:      m.Abort,
			Run: func(_ context.Context) error {
				return w.patcher.EnsureDefaults(project.Root, configDefaults)
			},
		},
		m.Step{
			ID:          "layout",
			Description: "migrate directory layout",
			Policy:      m.Abort,
			Run: func(_ context.Context) error {
				return w.reconcileLayout(project)
			},
		},
		m.Step{
			ID:          "templates",
			Description: "write starter files",
			Policy:      m.WarnAndContinue,
			Run: func(ctx context.Context) error {
				_, err := w.materializer.Materialize(ctx, project)
				return err
			},
		},
	)

	if !args.SkipUI {
		steps = append(steps,
			m.Step{
				ID:          "ui-init",
				Description: "initialize component library",
				Policy:      m.WarnAndContinue,
				Hint:        shadcnHint,
				Run: func(ctx context.Context) error {
					return w.initComponentLibrary(ctx, project)
				},
			},
			m.Step{
				ID:          "ui-components",
				Description: "add starter components",
				Policy:      m.WarnAndContinue,
				Hint:        shadcnHint,
				Run: func(ctx context.Context) error {
					return w.addComponents(ctx, project.Root, defaultUIComponents)
				},
			},
		)
	}

	steps = append(steps, m.Step{
		ID:          "format",
		Description: "format project files",
		Policy:      m.WarnAndContinue,
		Run: func(ctx context.Context) error {
			return w.tools.Run(ctx, project.Root, "npx", "prettier", "--write", ".")
		},
	})

	return steps
}

// initProject runs the framework initializer unless the project directory
// already carries a package manifest, which makes the step a no-op so a
// partially scaffolded tree can be re-run.
func (w *Workflow) initProject(ctx context.Context, project m.Project, baseDir m.Path) error {
	if w.fs.Exists(w.fs.JoinPath(string(project.Root), packageManifest)) {
		slog.Debug("Project already initialized", "root", project.Root)
		return nil
	}

	return w.tools.Run(ctx, baseDir, "npx", "nuxi@latest", "init", project.Name, "--no-install", "--no-git")
}

// setManifestName overwrites the name field of package.json.
func (w *Workflow) setManifestName(project m.Project) error {
	path := w.fs.JoinPath(string(project.Root), packageManifest)

	raw, err := w.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", packageManifest, err)
	}

	var manifest map[string]any
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return fmt.Errorf("parse %s: %w", packageManifest, err)
	}

	if manifest["name"] == project.Name {
		return nil
	}

	manifest["name"] = project.Name

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s: %w", packageManifest, err)
	}

	return w.fs.WriteFile(path, append(data, '\n'), configFilePerm)
}

// addDefaultModules runs the module-adder tool and merges each module into
// the config, both idempotent, so a re-run converges instead of duplicating.
func (w *Workflow) addDefaultModules(ctx context.Context, project m.Project) error {
	for _, module := range defaultModules {
		if err := w.tools.Run(ctx, project.Root, "npx", "nuxi@latest", "module", "add", module.Tool); err != nil {
			return err
		}

		if err := w.patcher.MergeModule(project.Root, module.Package); err != nil {
			return err
		}
	}

	return nil
}

// reconcileLayout inspects the tree and migrates unless it is already in
// the target layout.
func (w *Workflow) reconcileLayout(project m.Project) error {
	state := w.inspector.Inspect(project)

	if state == m.LayoutTarget {
		w.ui.Info("preserved existing " + TargetDirName + "/ structure")
		return nil
	}

	report, err := w.migrator.Migrate(project, DefaultMigrationPlan())
	if err != nil {
		return err
	}

	w.ui.Info(fmt.Sprintf("layout %s: moved %d entries into %s/", state, report.MovedTotal(), TargetDirName))

	return nil
}

// initComponentLibrary runs the shadcn-vue initializer and wires its
// Tailwind prerequisites into the config.
func (w *Workflow) initComponentLibrary(ctx context.Context, project m.Project) error {
	if err := w.tools.Run(ctx, project.Root, "npx", "shadcn-vue@latest", "init", "--yes"); err != nil {
		return err
	}

	if err := w.patcher.EnsureImport(project.Root, "import tailwindcss from '@tailwindcss/vite'"); err != nil {
		return err
	}

	// Keys carry the colon so the presence probe cannot match the package
	// name inside the import line above.
	if err := w.patcher.InsertKeyBlock(project.Root, "css:", "css: ['~/assets/css/main.css']"); err != nil {
		return err
	}

	return w.patcher.InsertKeyBlock(project.Root, "vite:", "vite: { plugins: [tailwindcss()] }")
}

// addComponents invokes the component adder for the given component names.
func (w *Workflow) addComponents(ctx context.Context, root m.Path, components []string) error {
	args := append([]string{"shadcn-vue@latest", "add"}, components...)
	return w.tools.Run(ctx, root, "npx", args...)
}

// MigrateLayout runs only the inspection and migration against an existing
// project directory (the standalone migrate command).
func (w *Workflow) MigrateLayout(_ context.Context, root m.Path) error {
	project := m.Project{Name: filepath.Base(string(root)), Root: root}

	return w.reconcileLayout(project)
}

// AddModule invokes the module-adder tool for name and registers pkg in the
// modules array. When pkg is empty, name is registered as-is.
func (w *Workflow) AddModule(ctx context.Context, root m.Path, name, pkg string) error {
	if err := w.tools.Run(ctx, root, "npx", "nuxi@latest", "module", "add", name); err != nil {
		return err
	}

	if pkg == "" {
		pkg = name
	}

	return w.patcher.MergeModule(root, pkg)
}

// AddComponents invokes the component-library adder for the given names.
func (w *Workflow) AddComponents(ctx context.Context, root m.Path, components []string) error {
	return w.addComponents(ctx, root, components)
}
