package output

import (
	"bytes"
	"encoding/csv"

	"github.com/conversn-io/seniorsimple-sub003/internal/domain"
)

// CSVDetailedExporter writes one row per plan and simulated year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string      { return "detailed-csv" }
func (c CSVDetailedExporter) Extension() string { return "csv" }

func (c CSVDetailedExporter) Format(results *domain.PlanComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Plan", "Year", "Age", "RMD", "TraditionalWithdrawal", "RothWithdrawal", "TaxableWithdrawal", "TaxableIncomeRecognized", "TaxOwed", "AfterTaxIncome", "IncomeShortfall", "EndingTraditional", "EndingRoth", "EndingTaxable"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, p := range results.Plans {
		for _, yr := range p.Result.YearlyWithdrawals {
			row := []string{
				p.Name,
				intToString(yr.Year),
				intToString(yr.Age),
				yr.RequiredMinimumDistribution.StringFixed(2),
				yr.TraditionalWithdrawal.StringFixed(2),
				yr.RothWithdrawal.StringFixed(2),
				yr.TaxableWithdrawal.StringFixed(2),
				yr.TaxableIncomeRecognized.StringFixed(2),
				yr.TaxOwed.StringFixed(2),
				yr.AfterTaxIncome.StringFixed(2),
				yr.IncomeShortfall.StringFixed(2),
				yr.EndingTraditionalBalance.StringFixed(2),
				yr.EndingRothBalance.StringFixed(2),
				yr.EndingTaxableBalance.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
