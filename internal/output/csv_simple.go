package output

import (
	"bytes"
	"encoding/csv"

	"github.com/conversn-io/seniorsimple-sub003/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per plan, in plan order).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string      { return "csv" }
func (c CSVSummarizer) Extension() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.PlanComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Plan", "FilingStatus", "StartAge", "RMDStartAge", "Years", "YearsFunded", "YearsWithShortfall", "FirstYearAfterTaxIncome", "TotalAfterTaxIncome", "TotalTaxesPaid", "EffectiveTaxRate", "DepletionYear", "FinalTraditional", "FinalRoth", "FinalTaxable", "Recommended"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, p := range results.Plans {
		row := []string{
			p.Name,
			string(p.Input.Normalize().FilingStatus),
			intToString(p.Input.CurrentAge),
			intToString(p.RMDStartAge),
			intToString(len(p.Result.YearlyWithdrawals)),
			intToString(p.YearsFunded),
			intToString(p.Result.YearsWithShortfall),
			p.FirstYearNet.StringFixed(2),
			p.Result.TotalAfterTaxIncome.StringFixed(2),
			p.Result.TotalTaxesPaid.StringFixed(2),
			p.EffectiveTaxRate.StringFixed(4),
			optionalYear(p.Result.DepletionYear),
			p.FinalBalances.TraditionalBalance.StringFixed(2),
			p.FinalBalances.RothBalance.StringFixed(2),
			p.FinalBalances.TaxableBalance.StringFixed(2),
			boolToString(p.Name == results.Recommended),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
