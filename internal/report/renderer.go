package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer handles report template rendering
type Renderer struct {
	templates *template.Template
}

// NewRenderer creates a new template renderer
func NewRenderer() (*Renderer, error) {
	funcMap := template.FuncMap{
		"formatMoney":   formatMoney,
		"formatPercent": formatPercent,
		"formatDate":    formatDate,
		"truncate":      truncate,
		"isNegative":    func(d decimal.Decimal) bool { return d.IsNegative() },
		"abs":           func(d decimal.Decimal) decimal.Decimal { return d.Abs() },
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	return &Renderer{templates: tmpl}, nil
}

// RenderTechnicianReport renders a technician statement to HTML
func (r *Renderer) RenderTechnicianReport(w io.Writer, report *TechnicianReport) error {
	return r.templates.ExecuteTemplate(w, "technician.html", report)
}

// RenderOverview renders the cross-technician overview to HTML
func (r *Renderer) RenderOverview(w io.Writer, report *OverviewReport) error {
	return r.templates.ExecuteTemplate(w, "overview.html", report)
}

// formatMoney formats a decimal amount as currency, negatives in
// parentheses accounting-style
func formatMoney(d decimal.Decimal) string {
	negative := d.IsNegative()
	s := d.Abs().StringFixed(2)

	// Insert thousands separators into the integer part
	dot := strings.Index(s, ".")
	intPart, decPart := s[:dot], s[dot:]
	var parts []string
	for len(intPart) > 3 {
		parts = append([]string{intPart[len(intPart)-3:]}, parts...)
		intPart = intPart[:len(intPart)-3]
	}
	parts = append([]string{intPart}, parts...)

	formatted := "$" + strings.Join(parts, ",") + decPart
	if negative {
		return "(" + formatted + ")"
	}
	return formatted
}

// formatPercent formats a commission rate fraction as a percentage
func formatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
}

// formatDate formats a time pointer as M/D/YYYY
func formatDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("1/2/2006")
}

// truncate shortens a string with ellipsis
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
