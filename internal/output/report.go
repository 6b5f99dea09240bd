package output

import (
	"fmt"
	"io"
	"os"

	"github.com/conversn-io/seniorsimple-sub003/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport renders results in format and writes them to w.
func GenerateReport(w io.Writer, results *domain.PlanComparison, format string) error {
	f, err := LookupFormatter(format)
	if err != nil {
		return err
	}
	data, err := f.Format(results)
	if err != nil {
		return fmt.Errorf("format %s: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// IsBinary reports whether a format should not be written to a terminal.
func IsBinary(f Formatter) bool {
	return f.Extension() == "pdf"
}

// SaveConfiguration writes config back out as YAML, e.g. to capture the
// plans a comparison was run with.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0o644)
}
