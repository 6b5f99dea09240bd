package output_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	stddec "github.com/shopspring/decimal"

	"github.com/conversn-io/seniorsimple-sub003/internal/config"
	"github.com/conversn-io/seniorsimple-sub003/internal/domain"
	"github.com/conversn-io/seniorsimple-sub003/internal/output"
)

func sampleComparison() *domain.PlanComparison {
	return &domain.PlanComparison{
		Plans: []domain.PlanSummary{
			{
				Name:         "Baseline",
				FirstYearNet: stddec.NewFromInt(0),
				Result:       domain.PlanningResult{TotalAfterTaxIncome: stddec.NewFromInt(0), TotalTaxesPaid: stddec.NewFromInt(0)},
			},
		},
	}
}

func TestSaveConfigurationRoundTrip(t *testing.T) {
	in := domain.PlanningInput{
		CurrentAge:          68,
		FilingStatus:        domain.MarriedFilingJointly,
		DesiredAnnualIncome: stddec.NewFromInt(75000),
		HorizonYears:        20,
		Accounts:            domain.AccountSnapshot{TraditionalBalance: stddec.NewFromInt(400000)},
	}
	cfg := &domain.Configuration{Planning: &in}
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := output.SaveConfiguration(cfg, path); err != nil {
		t.Fatalf("SaveConfiguration error: %v", err)
	}

	loaded, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Planning.FilingStatus != domain.MarriedFilingJointly || loaded.Planning.HorizonYears != 20 {
		t.Fatalf("round trip lost fields: %+v", loaded.Planning)
	}
	if !loaded.Planning.Accounts.TraditionalBalance.Equal(stddec.NewFromInt(400000)) {
		t.Fatalf("round trip lost balance: %s", loaded.Planning.Accounts.TraditionalBalance)
	}
}

func TestGenerateReport_JSON_CSV(t *testing.T) {
	sc := sampleComparison()

	var buf bytes.Buffer
	if err := output.GenerateReport(&buf, sc, "json"); err != nil {
		t.Fatalf("GenerateReport json error: %v", err)
	}
	if !strings.Contains(buf.String(), `"Baseline"`) {
		t.Fatalf("json missing plan name: %s", buf.String())
	}

	buf.Reset()
	if err := output.GenerateReport(&buf, sc, "csv"); err != nil {
		t.Fatalf("GenerateReport csv error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Plan,") {
		t.Fatalf("csv missing header: %s", buf.String())
	}
}

func TestWriteFormatted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	got, err := output.WriteFormatted(output.HTMLFormatter{}, sampleComparison(), path)
	if err != nil {
		t.Fatalf("WriteFormatted error: %v", err)
	}
	if got != path {
		t.Fatalf("wrote to %q, want %q", got, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "Baseline") {
		t.Fatalf("report missing plan name")
	}

	if _, err := output.WriteFormatted(output.JSONFormatter{}, sampleComparison(), filepath.Join(t.TempDir(), "missing", "x.json")); err == nil {
		t.Fatalf("expected error writing into a missing directory")
	}
}
