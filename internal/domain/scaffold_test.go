package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nuxtsmith.dev/pkg/nuxtsmith/internal/adapter"
	m "nuxtsmith.dev/pkg/nuxtsmith/internal/model"
)

// fakeToolRunner records invocations and simulates the generator tools'
// filesystem side effects.
type fakeToolRunner struct {
	calls  []string
	fail   map[string]error // command-line prefix -> error
	onInit func(workDir m.Path, name string)
}

func (f *fakeToolRunner) Run(_ context.Context, workDir m.Path, name string, args ...string) error {
	cmdline := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, cmdline)

	for prefix, err := range f.fail {
		if strings.HasPrefix(cmdline, prefix) {
			return &m.ToolError{Command: cmdline, Dir: string(workDir), Err: err}
		}
	}

	if strings.HasPrefix(cmdline, "npx nuxi@latest init") && f.onInit != nil {
		f.onInit(workDir, args[2])
	}

	return nil
}

func (f *fakeToolRunner) called(prefix string) bool {
	for _, call := range f.calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}

	return false
}

// seedProject mimics what the framework initializer writes.
func seedProject(t *testing.T) func(workDir m.Path, name string) {
	t.Helper()

	return func(workDir m.Path, name string) {
		root := filepath.Join(string(workDir), name)
		writeTestFile(t, filepath.Join(root, "package.json"), `{"name": "placeholder", "private": true}`+"\n")
		writeTestFile(t, filepath.Join(root, ConfigFileName), "export default defineNuxtConfig({\n  modules: [],\n})\n")
	}
}

func newTestWorkflow(tools adapter.ToolRunnerAdapter) (*Workflow, *recordingUI) {
	ui := &recordingUI{}
	wf := NewWorkflow(adapter.NewLocalProjectFSAdapter(), tools, adapter.NewRunReportStore(), ui)

	return wf, ui
}

func TestWorkflow_Create(t *testing.T) {
	base := t.TempDir()
	tools := &fakeToolRunner{onInit: seedProject(t)}
	wf, _ := newTestWorkflow(tools)

	err := wf.Create(context.Background(), CreateArgs{
		Name:           "demo",
		BaseDir:        m.Path(base),
		PackageManager: "npm",
		ReportsDir:     ".nuxtsmith",
	})
	require.NoError(t, err)

	root := filepath.Join(base, "demo")

	manifest, err := os.ReadFile(filepath.Join(root, "package.json"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), `"name": "demo"`)

	config, err := os.ReadFile(filepath.Join(root, ConfigFileName))
	require.NoError(t, err)

	for _, module := range defaultModules {
		assert.Contains(t, string(config), "'"+module.Package+"'")
	}

	assert.Contains(t, string(config), "compatibilityDate")
	assert.Contains(t, string(config), "css: ['~/assets/css/main.css'],")

	for _, file := range starterFiles {
		assert.FileExists(t, filepath.Join(root, file.relPath))
	}

	assert.True(t, tools.called("npm install"))
	assert.True(t, tools.called("npx shadcn-vue@latest init"))
	assert.True(t, tools.called("npx prettier --write ."))

	reports, err := os.ReadDir(filepath.Join(root, ".nuxtsmith"))
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.True(t, strings.HasSuffix(reports[0].Name(), ".yaml"))
}

func TestWorkflow_CreateIsRerunnable(t *testing.T) {
	base := t.TempDir()
	tools := &fakeToolRunner{onInit: seedProject(t)}
	wf, _ := newTestWorkflow(tools)

	args := CreateArgs{Name: "demo", BaseDir: m.Path(base), PackageManager: "npm"}

	require.NoError(t, wf.Create(context.Background(), args))

	configPath := filepath.Join(base, "demo", ConfigFileName)
	first, err := os.ReadFile(configPath)
	require.NoError(t, err)

	require.NoError(t, wf.Create(context.Background(), args))

	second, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestWorkflow_CreateToleratesComponentLibraryFailure(t *testing.T) {
	base := t.TempDir()
	tools := &fakeToolRunner{
		onInit: seedProject(t),
		fail:   map[string]error{"npx shadcn-vue@latest": errors.New("exit status 1")},
	}
	wf, ui := newTestWorkflow(tools)

	err := wf.Create(context.Background(), CreateArgs{
		Name:           "demo",
		BaseDir:        m.Path(base),
		PackageManager: "npm",
	})

	// The component-library steps warn; the run still completes and the
	// later format step executes.
	require.NoError(t, err)
	assert.True(t, tools.called("npx prettier"))
	assert.Contains(t, ui.notes, shadcnHint)
}

func TestWorkflow_CreateAbortsOnInstallFailure(t *testing.T) {
	base := t.TempDir()
	tools := &fakeToolRunner{
		onInit: seedProject(t),
		fail:   map[string]error{"npm install": errors.New("exit status 1")},
	}
	wf, _ := newTestWorkflow(tools)

	err := wf.Create(context.Background(), CreateArgs{
		Name:           "demo",
		BaseDir:        m.Path(base),
		PackageManager: "npm",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "step install")

	var toolErr *m.ToolError
	require.ErrorAs(t, err, &toolErr)

	assert.False(t, tools.called("npx nuxi@latest module add"))
	assert.False(t, tools.called("npx prettier"))
}

func TestWorkflow_CreateSkipsMigrationForTargetLayout(t *testing.T) {
	base := t.TempDir()
	tools := &fakeToolRunner{onInit: func(workDir m.Path, name string) {
		seedProject(t)(workDir, name)

		root := filepath.Join(string(workDir), name)
		writeTestFile(t, filepath.Join(root, TargetDirName, "app.vue"), "existing app shell\n")
	}}
	wf, ui := newTestWorkflow(tools)

	err := wf.Create(context.Background(), CreateArgs{
		Name:           "demo",
		BaseDir:        m.Path(base),
		PackageManager: "npm",
		SkipUI:         true,
	})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(base, "demo", TargetDirName, "app.vue"))
	require.NoError(t, err)
	assert.Equal(t, "existing app shell\n", string(content))

	preserved := false

	for _, note := range ui.notes {
		if strings.Contains(note, "preserved existing") {
			preserved = true
		}
	}

	assert.True(t, preserved)
}

func TestWorkflow_CreateRejectsInvalidName(t *testing.T) {
	tools := &fakeToolRunner{}
	wf, _ := newTestWorkflow(tools)

	err := wf.Create(context.Background(), CreateArgs{Name: "../escape", BaseDir: m.Path(t.TempDir())})

	require.Error(t, err)
	assert.Empty(t, tools.calls)
}

func TestWorkflow_AddModule(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, ConfigFileName), baseConfig)

	tools := &fakeToolRunner{}
	wf, _ := newTestWorkflow(tools)

	require.NoError(t, wf.AddModule(context.Background(), m.Path(root), "content", "@nuxt/content"))

	assert.True(t, tools.called("npx nuxi@latest module add content"))

	config, err := os.ReadFile(filepath.Join(root, ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(config), "'@nuxt/content'")
}

func TestWorkflow_MigrateLayoutPreservesTarget(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, TargetDirName, "app.vue"), "shell\n")

	wf, ui := newTestWorkflow(&fakeToolRunner{})

	require.NoError(t, wf.MigrateLayout(context.Background(), m.Path(root)))
	require.Len(t, ui.notes, 1)
	assert.Contains(t, ui.notes[0], "preserved existing")
}
