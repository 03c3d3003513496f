package planner

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/pattyplanner/pattyplanner/internal/models"
	"github.com/pattyplanner/pattyplanner/internal/services/planner"
	"github.com/pattyplanner/pattyplanner/internal/tui/components"
	"github.com/pattyplanner/pattyplanner/internal/util"
)

// ResultView displays the most recent calculation.
type ResultView struct {
	calc     *planner.Calculation
	currency string
}

// NewResultView creates an empty result view. currency prefixes revenue
// amounts when set.
func NewResultView(currency string) *ResultView {
	return &ResultView{currency: currency}
}

// SetCalculation replaces the displayed calculation.
func (v *ResultView) SetCalculation(c *planner.Calculation) {
	v.calc = c
}

// Calculation returns the displayed calculation, or nil.
func (v *ResultView) Calculation() *planner.Calculation {
	return v.calc
}

// Clear removes the displayed calculation.
func (v *ResultView) Clear() {
	v.calc = nil
}

// HasResult reports whether a calculation is displayed.
func (v *ResultView) HasResult() bool {
	return v.calc != nil
}

func (v *ResultView) money(d decimal.Decimal) string {
	if v.currency == "" {
		return models.FormatRevenue(d)
	}
	return v.currency + " " + models.FormatRevenue(d)
}

// Render renders the result with default width.
func (v *ResultView) Render() string {
	return v.RenderResponsive(0)
}

// RenderResponsive renders the result adapted to the given terminal width.
func (v *ResultView) RenderResponsive(width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	noteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#006600"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("═══ PRODUCTION PLAN ═══"))
	b.WriteString("\n\n")

	if v.calc == nil {
		b.WriteString(noteStyle.Render("Fill in the sales form and press Ctrl+S to calculate."))
		return b.String()
	}

	res := v.calc.Result
	req := v.calc.Request

	b.WriteString(labelStyle.Render("Plan "))
	b.WriteString(valueStyle.Render(util.ShortID(v.calc.ID)))
	b.WriteString(labelStyle.Render(" at " + v.calc.CalculatedAt.Format(util.DateTimeFormat)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Target revenue: "))
	b.WriteString(valueStyle.Render(v.money(res.TotalTargetRevenue)))
	b.WriteString(labelStyle.Render(fmt.Sprintf(" (regular %s, mini %s)",
		v.money(res.RegularTargetRevenue), v.money(res.MiniTargetRevenue))))
	b.WriteString("\n\n")

	narrow := width > 0 && width < 60
	table := components.NewTable(resultColumns(narrow))
	table.SetRows([][]string{
		resultRow(narrow, models.PattyRegular, res.RegularRequired, req.RegularInStock, res.RegularPattiesToMake, res.RegularBeefKg),
		resultRow(narrow, models.PattyMini, res.MiniRequired, req.MiniInStock, res.MiniPattiesToMake, res.MiniBeefKg),
	})
	if narrow {
		table.SetFooter([]string{"Total", "", models.FormatMass(res.TotalBeefKg)})
	} else {
		table.SetFooter([]string{"Total", "", "", "", models.FormatMass(res.TotalBeefKg)})
	}
	b.WriteString(table.Render())
	b.WriteString("\n\n")

	if res.IsZero() {
		if res.TotalTargetRevenue.IsZero() {
			b.WriteString(valueStyle.Render("No sales target. Nothing to make."))
		} else {
			b.WriteString(valueStyle.Render("Stock covers the target. Nothing to make."))
		}
		b.WriteString("\n")
	}

	b.WriteString(noteStyle.Render(fmt.Sprintf("Beef is raw mass before trimming (%d g usable per kg, %d regular or %d mini per kg).",
		res.UsableGramsPerKg, res.RegularPerKg, res.MiniPerKg)))
	b.WriteString("\n")
	b.WriteString(noteStyle.Render("Meat is rounded up to the nearest 0.1 kg."))
	if res.Policy == models.PolicyPackMultiple {
		b.WriteString("\n")
		b.WriteString(noteStyle.Render("Patty counts are rounded up to whole packs."))
	}

	return b.String()
}

func resultColumns(narrow bool) []components.Column {
	if narrow {
		return []components.Column{
			{Title: "Patty", Width: 7},
			{Title: "Make", Width: 7, Align: lipgloss.Right},
			{Title: "Beef", Width: 12, Align: lipgloss.Right},
		}
	}
	return []components.Column{
		{Title: "Patty", Width: 7},
		{Title: "Required", Width: 9, Align: lipgloss.Right},
		{Title: "In stock", Width: 9, Align: lipgloss.Right},
		{Title: "To make", Width: 9, Align: lipgloss.Right},
		{Title: "Beef before trim", Width: 16, Align: lipgloss.Right},
	}
}

func resultRow(narrow bool, patty models.PattyType, required, stock, toMake int, kg decimal.Decimal) []string {
	if narrow {
		return []string{patty.Label(), models.FormatCount(toMake), models.FormatMass(kg)}
	}
	return []string{
		patty.Label(),
		models.FormatCount(required),
		models.FormatCount(stock),
		models.FormatCount(toMake),
		models.FormatMass(kg),
	}
}
