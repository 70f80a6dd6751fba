// Package renderer renders portfolio reports as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/folio"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.md
var templates embed.FS

// Row is one security in the rendered report, amounts already formatted.
type Row struct {
	Security     string
	Name         string
	Units        int64
	AveragePrice string
	Cost         string
	Value        string
	Gain         string
	Price        string
	Oversold     bool
}

// Report is the data behind the report template.
type Report struct {
	Currency string
	Rows     []Row
	Skipped  []string
	Cost     string
	Value    string
	Gain     string
	Return   string // empty when the cost is zero
}

// NewReport formats r in currency.
func NewReport(r *folio.Report, currency string) *Report {
	m := func(d decimal.Decimal) string { return folio.M(d, currency).String() }
	s := func(d decimal.Decimal) string { return folio.M(d, currency).SignedString() }

	out := &Report{
		Currency: currency,
		Skipped:  r.Skipped,
		Cost:     m(r.Summary.TotalCost),
		Value:    m(r.Summary.TotalMarketValue),
		Gain:     s(r.Summary.OverallProfitLoss),
	}
	if !r.Summary.TotalCost.IsZero() {
		ret := r.Summary.OverallProfitLoss.Div(r.Summary.TotalCost).Shift(2)
		out.Return = fmt.Sprintf("%s%%", ret.StringFixed(2))
	}
	for _, res := range r.Results {
		out.Rows = append(out.Rows, Row{
			Security:     res.Security,
			Name:         strings.ReplaceAll(res.Name, "|", `\|`),
			Units:        res.TotalUnits,
			AveragePrice: m(res.AveragePrice),
			Cost:         m(res.OriginalCost),
			Value:        m(res.CurrentMarketValue),
			Gain:         s(res.ProfitOrLoss),
			Price:        m(res.CurrentPrice),
			Oversold:     res.TotalUnits < 0,
		})
	}
	return out
}

// RenderReport renders r to a markdown string.
func RenderReport(r *Report) string {
	partials := map[string]string{
		"report_positions": "report_positions.md",
		"report_summary":   "report_summary.md",
	}
	return renderTemplate("report", "report.md", partials, r)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
