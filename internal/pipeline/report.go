package pipeline

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scandoc/pkg/types"
)

// Report is the YAML batch report written when the caller asks for one.
type Report struct {
	GeneratedAt time.Time     `yaml:"generated_at"`
	Quality     int           `yaml:"quality"`
	Askew       bool          `yaml:"askew"`
	Converted   int           `yaml:"converted"`
	Failed      int           `yaml:"failed"`
	Pages       int           `yaml:"pages"`
	Inputs      []ReportEntry `yaml:"inputs"`
}

// ReportEntry is one input's line in the report.
type ReportEntry struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output,omitempty"`
	Pages  int    `yaml:"pages,omitempty"`
	Status string `yaml:"status"`
	Error  string `yaml:"error,omitempty"`
}

// WriteReport serializes the batch outcome to path.
func WriteReport(path string, cfg types.EffectConfig, batch BatchResult) error {
	rep := Report{
		GeneratedAt: time.Now().UTC(),
		Quality:     cfg.Quality,
		Askew:       cfg.Askew,
		Converted:   batch.Converted,
		Failed:      batch.Failed,
		Pages:       batch.Pages,
	}

	for _, r := range batch.Results {
		entry := ReportEntry{Input: r.Input.String()}
		if r.OK() {
			entry.Output = r.OutputPath
			entry.Pages = r.Pages
			entry.Status = "converted"
		} else {
			entry.Status = string(r.Kind())
			entry.Error = r.Err.Error()
		}
		rep.Inputs = append(rep.Inputs, entry)
	}

	data, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// fileSize returns a human readable size for the file at path, or "?" when
// it cannot be stated.
func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "?"
	}
	return HumanSize(info.Size())
}

// HumanSize formats a byte count using binary units.
func HumanSize(n int64) string {
	size := float64(n)
	for _, unit := range []string{"B", "KiB", "MiB", "GiB", "TiB"} {
		if size < 1024.0 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.1f PiB", size)
}
