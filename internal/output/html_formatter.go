package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/pkg/dateutil"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"pct":   FormatPercentage,
	"date":  dateutil.FormatDate,
	"label": scenarioLabel,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.SimulationResult
		Assumptions []string
	}{result, DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
