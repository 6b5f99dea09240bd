package output

import (
	"bytes"
	"fmt"

	"github.com/conversn-io/seniorsimple-sub003/internal/domain"
	"github.com/go-pdf/fpdf"
)

const (
	pdfMarginLeft   = 10.0
	pdfMarginTop    = 12.0
	pdfMarginRight  = 10.0
	pdfMarginBottom = 15.0
	// A4 landscape
	pdfContentWidth = 297.0 - pdfMarginLeft - pdfMarginRight
)

// PDFFormatter renders the comparison as an A4 landscape report.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string      { return "pdf" }
func (p PDFFormatter) Extension() string { return "pdf" }

type pdfReport struct {
	pdf     *fpdf.Fpdf
	results *domain.PlanComparison
}

func (p PDFFormatter) Format(results *domain.PlanComparison) ([]byte, error) {
	r := &pdfReport{pdf: fpdf.New("L", "mm", "A4", ""), results: results}
	r.pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	r.pdf.SetAutoPageBreak(true, pdfMarginBottom)
	r.pdf.SetTitle("Retirement Withdrawal Plan", false)

	r.addSummaryPage()
	for i, plan := range results.Plans {
		r.addPlanPage(i, plan)
	}

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *pdfReport) heading(text string) {
	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(pdfContentWidth, 10, text, "", 1, "L", false, 0, "")
	r.pdf.SetTextColor(50, 50, 50)
}

func (r *pdfReport) table(widths []float64, header []string, rows [][]string, highlight func(int) bool) {
	r.pdf.SetFont("Arial", "B", 8)
	r.pdf.SetFillColor(230, 240, 235)
	for i, h := range header {
		r.pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)

	r.pdf.SetFont("Arial", "", 8)
	r.pdf.SetFillColor(245, 251, 247)
	for ri, row := range rows {
		fill := highlight != nil && highlight(ri)
		for i, cell := range row {
			align := "R"
			if i == 0 {
				align = "L"
			}
			r.pdf.CellFormat(widths[i], 6, cell, "1", 0, align, fill, 0, "")
		}
		r.pdf.Ln(-1)
	}
	r.pdf.Ln(4)
}

func (r *pdfReport) addSummaryPage() {
	r.pdf.AddPage()
	r.heading("Retirement Withdrawal Plan")

	r.pdf.SetFont("Arial", "B", 11)
	r.pdf.CellFormat(pdfContentWidth, 7, "Key Assumptions", "", 1, "L", false, 0, "")
	r.pdf.SetFont("Arial", "", 9)
	for _, a := range assumptionsFor(r.results) {
		r.pdf.CellFormat(pdfContentWidth, 5, "- "+a, "", 1, "L", false, 0, "")
	}
	r.pdf.Ln(4)

	rec := AnalyzePlans(r.results)
	rows := make([][]string, 0, len(r.results.Plans))
	for _, p := range r.results.Plans {
		rows = append(rows, []string{
			p.Name,
			p.Input.Normalize().FilingStatus.Label(),
			intToString(p.RMDStartAge),
			FormatCurrency(p.FirstYearNet),
			FormatCurrency(p.Result.TotalAfterTaxIncome),
			FormatCurrency(p.Result.TotalTaxesPaid),
			FormatRate(p.EffectiveTaxRate),
			fmt.Sprintf("%d / %d", p.YearsFunded, len(p.Result.YearlyWithdrawals)),
			optionalYear(p.Result.DepletionYear),
		})
	}
	r.table(
		[]float64{45, 45, 18, 30, 35, 30, 22, 25, 27},
		[]string{"Plan", "Filing Status", "RMD Age", "First Year Net", "Total After Tax", "Total Taxes", "Eff. Rate", "Funded", "Depleted"},
		rows,
		func(i int) bool { return r.results.Plans[i].Name == rec.PlanName },
	)

	if rec.PlanName != "" {
		r.pdf.SetFont("Arial", "B", 10)
		r.pdf.CellFormat(pdfContentWidth, 7, fmt.Sprintf("Recommended: %s (%s more after tax than the next plan)",
			rec.PlanName, FormatCurrency(rec.AdvantageOverNext)), "", 1, "L", false, 0, "")
	}

	r.pdf.Ln(6)
	r.pdf.SetFont("Arial", "I", 8)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.MultiCell(pdfContentWidth, 4,
		"Estimates only. Balances do not grow between years and tax rules are held constant. "+
			"This document does not constitute tax or financial advice.", "", "L", false)
}

func (r *pdfReport) addPlanPage(index int, plan domain.PlanSummary) {
	r.pdf.AddPage()
	r.heading(fmt.Sprintf("Plan %d: %s", index+1, plan.Name))

	in := plan.Input.Normalize()
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.CellFormat(pdfContentWidth, 5, fmt.Sprintf("Age %d, %s, desired %s per year, RMDs from age %d, tax year %d",
		in.CurrentAge, in.FilingStatus.Label(), FormatCurrency(in.DesiredAnnualIncome), plan.RMDStartAge, plan.TaxYear), "", 1, "L", false, 0, "")
	r.pdf.CellFormat(pdfContentWidth, 5, fmt.Sprintf("Starting balances: traditional %s, Roth %s, taxable %s",
		FormatCurrency(in.Accounts.TraditionalBalance), FormatCurrency(in.Accounts.RothBalance), FormatCurrency(in.Accounts.TaxableBalance)), "", 1, "L", false, 0, "")
	r.pdf.Ln(3)

	years := plan.Result.YearlyWithdrawals
	if len(years) == 0 {
		r.pdf.CellFormat(pdfContentWidth, 6, "No withdrawals: horizon is zero or every account is empty.", "", 1, "L", false, 0, "")
		return
	}

	rows := make([][]string, 0, len(years))
	for _, y := range years {
		rows = append(rows, []string{
			intToString(y.Year),
			intToString(y.Age),
			FormatCurrency(y.RequiredMinimumDistribution),
			FormatCurrency(y.TraditionalWithdrawal),
			FormatCurrency(y.RothWithdrawal),
			FormatCurrency(y.TaxableWithdrawal),
			FormatCurrency(y.TaxOwed),
			FormatCurrency(y.AfterTaxIncome),
			FormatCurrency(y.IncomeShortfall),
			FormatCurrency(y.EndingTraditionalBalance),
			FormatCurrency(y.EndingRothBalance),
			FormatCurrency(y.EndingTaxableBalance),
		})
	}
	r.table(
		[]float64{14, 12, 22, 24, 24, 24, 20, 24, 22, 30, 30, 31},
		[]string{"Year", "Age", "RMD", "Traditional", "Roth", "Taxable", "Tax", "After Tax", "Shortfall", "End Traditional", "End Roth", "End Taxable"},
		rows,
		func(i int) bool { return years[i].IncomeShortfall.IsPositive() },
	)

	r.pdf.SetFont("Arial", "B", 9)
	r.pdf.CellFormat(pdfContentWidth, 6, fmt.Sprintf("Total after tax %s, total taxes %s (effective %s)",
		FormatCurrency(plan.Result.TotalAfterTaxIncome), FormatCurrency(plan.Result.TotalTaxesPaid), FormatRate(plan.EffectiveTaxRate)), "", 1, "L", false, 0, "")
}
