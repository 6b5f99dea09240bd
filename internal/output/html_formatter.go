package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/conversn-io/seniorsimple-sub003/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with a chart of balances.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"rate":  FormatRate,
	"year":  optionalYear,
	"label": func(fs domain.FilingStatus) string { return fs.Label() },
	"add":   func(i, j int) int { return i + j },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

type chartSeries struct {
	Name     string   `json:"name"`
	Years    []int    `json:"years"`
	Balances []string `json:"balances"`
}

func balanceSeries(results *domain.PlanComparison) []chartSeries {
	series := make([]chartSeries, 0, len(results.Plans))
	for _, p := range results.Plans {
		s := chartSeries{Name: p.Name}
		for _, y := range p.Result.YearlyWithdrawals {
			s.Years = append(s.Years, y.Year)
			s.Balances = append(s.Balances, y.Ending().Total().StringFixed(2))
		}
		series = append(series, s)
	}
	return series
}

func (h HTMLFormatter) Format(results *domain.PlanComparison) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.PlanComparison
		Recommendation Recommendation
		Assumptions    []string
		Series         []chartSeries
	}{results, AnalyzePlans(results), assumptionsFor(results), balanceSeries(results)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
