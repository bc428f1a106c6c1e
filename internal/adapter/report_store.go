package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	m "nuxtsmith.dev/pkg/nuxtsmith/internal/model"
)

// reportFilePerm keeps run reports user/group readable only.
const reportFilePerm = 0o640

// RunReportStore persists the outcome of scaffolding runs so a re-run can be
// compared against what the previous invocation did.
type RunReportStore interface {
	Save(dir m.Path, report m.RunReport) error
	Load(path m.Path) (m.RunReport, error)
}

// YAMLRunReportStore stores one YAML file per run under a reports directory.
type YAMLRunReportStore struct{}

// NewRunReportStore constructs a YAMLRunReportStore.
func NewRunReportStore() *YAMLRunReportStore {
	return &YAMLRunReportStore{}
}

// Save writes report to dir as <run_id>.yaml, creating dir when needed.
func (s *YAMLRunReportStore) Save(dir m.Path, report m.RunReport) error {
	if report.RunID == "" {
		return fmt.Errorf("run report has no run id")
	}

	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal run report: %w", err)
	}

	target := filepath.Join(string(dir), report.RunID+".yaml")
	if err := os.WriteFile(target, data, reportFilePerm); err != nil {
		return fmt.Errorf("write run report: %w", err)
	}

	return nil
}

// Load reads a single run report file.
func (s *YAMLRunReportStore) Load(path m.Path) (m.RunReport, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.RunReport{}, fmt.Errorf("read run report: %w", err)
	}

	var report m.RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.RunReport{}, fmt.Errorf("unmarshal run report: %w", err)
	}

	return report, nil
}
