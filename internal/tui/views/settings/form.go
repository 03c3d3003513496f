// Package settings provides the branch settings panel.
package settings

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pattyplanner/pattyplanner/internal/models"
	"github.com/pattyplanner/pattyplanner/internal/tui/components"
)

var policies = []string{string(models.PolicyPerPatty), string(models.PolicyPackMultiple)}

// BranchForm edits the branch name and planner settings.
type BranchForm struct {
	name               *components.Input
	regularPackSize    *components.Input
	regularPackRevenue *components.Input
	regularWeight      *components.Input
	miniPackSize       *components.Input
	miniPackRevenue    *components.Input
	miniWeight         *components.Input
	waste              *components.Input
	policy             *components.Select

	focusIndex int
	fields     []components.FormField
	submitted  bool
	cancelled  bool
	err        string
}

// NewBranchForm creates a settings form populated from the given values.
func NewBranchForm(name string, s models.BranchSettings) *BranchForm {
	f := &BranchForm{
		name:               components.NewInput("Branch").SetRequired(true).SetWidth(25).SetMaxLength(40),
		regularPackSize:    components.NewNumberInput("Pack size", components.KindInteger).SetSuffix("pcs"),
		regularPackRevenue: components.NewNumberInput("Pack revenue", components.KindDecimal),
		regularWeight:      components.NewNumberInput("Piece weight", components.KindInteger).SetSuffix("g"),
		miniPackSize:       components.NewNumberInput("Pack size", components.KindInteger).SetSuffix("pcs"),
		miniPackRevenue:    components.NewNumberInput("Pack revenue", components.KindDecimal),
		miniWeight:         components.NewNumberInput("Piece weight", components.KindInteger).SetSuffix("g"),
		waste:              components.NewNumberInput("Waste per kg", components.KindInteger).SetSuffix("g"),
		policy:             components.NewSelect("Conversion", policies),
	}

	f.fields = []components.FormField{
		f.name,
		f.regularPackSize,
		f.regularPackRevenue,
		f.regularWeight,
		f.miniPackSize,
		f.miniPackRevenue,
		f.miniWeight,
		f.waste,
		f.policy,
	}

	f.Load(name, s)

	return f
}

// Load replaces the form contents and clears any pending state.
func (f *BranchForm) Load(name string, s models.BranchSettings) {
	f.name.SetValue(name)
	f.regularPackSize.SetInt(s.RegularPackSize)
	f.regularPackRevenue.SetFloat(s.RegularPackRevenue)
	f.regularWeight.SetInt(s.RegularPieceWeightGrams)
	f.miniPackSize.SetInt(s.MiniPackSize)
	f.miniPackRevenue.SetFloat(s.MiniPackRevenue)
	f.miniWeight.SetInt(s.MiniPieceWeightGrams)
	f.waste.SetInt(s.WastePerKgGrams)
	f.policy.SetSelected(0)
	f.policy.SetValue(string(s.EffectivePolicy()))

	for _, in := range f.inputs() {
		in.SetError("")
	}
	f.err = ""
	f.submitted = false
	f.cancelled = false

	for i, field := range f.fields {
		field.Focus(i == f.focusIndex)
	}
}

func (f *BranchForm) inputs() []*components.Input {
	return []*components.Input{
		f.name,
		f.regularPackSize, f.regularPackRevenue, f.regularWeight,
		f.miniPackSize, f.miniPackRevenue, f.miniWeight,
		f.waste,
	}
}

// HandleKey handles key input.
func (f *BranchForm) HandleKey(key string) {
	switch key {
	case "tab", "down":
		f.moveFocus(1)
	case "shift+tab", "up":
		f.moveFocus(-1)
	case "ctrl+s":
		f.submit()
	case "esc":
		f.cancelled = true
	case "enter":
		if f.focusIndex == len(f.fields)-1 {
			f.submit()
		} else {
			f.moveFocus(1)
		}
	default:
		f.fields[f.focusIndex].HandleKey(key)
	}
}

func (f *BranchForm) moveFocus(delta int) {
	f.fields[f.focusIndex].Focus(false)
	n := len(f.fields)
	f.focusIndex = (f.focusIndex + delta + n) % n
	f.fields[f.focusIndex].Focus(true)
}

func (f *BranchForm) submit() {
	f.err = ""

	valid := true
	for _, in := range f.inputs() {
		if !in.Validate() {
			valid = false
		}
	}
	if !valid {
		f.err = "Please correct the highlighted fields"
		return
	}

	_, s, err := f.GetData()
	if err == nil {
		err = s.Validate()
	}
	if err != nil {
		f.ApplyError(err)
		return
	}

	f.submitted = true
}

// ApplyError shows a validation error on the fields it names.
func (f *BranchForm) ApplyError(err error) {
	byField := map[string]*components.Input{
		"regular pack_size":          f.regularPackSize,
		"regular pack_revenue":       f.regularPackRevenue,
		"regular piece_weight_grams": f.regularWeight,
		"mini pack_size":             f.miniPackSize,
		"mini pack_revenue":          f.miniPackRevenue,
		"mini piece_weight_grams":    f.miniWeight,
		"waste_per_kg_grams":         f.waste,
	}

	var general []string
	for _, fe := range models.FieldErrors(err) {
		if in, ok := byField[fe.Field]; ok {
			in.SetError(fe.Reason)
			continue
		}
		general = append(general, fe.Error())
	}

	switch {
	case len(general) > 0:
		f.err = strings.Join(general, "; ")
	case errors.Is(err, models.ErrInvalidSettings):
		f.err = "Please correct the highlighted fields"
	default:
		f.err = err.Error()
	}
	f.submitted = false
}

// IsSubmitted returns true if the form was submitted.
func (f *BranchForm) IsSubmitted() bool {
	return f.submitted
}

// IsCancelled returns true if the operator asked to discard the edits.
func (f *BranchForm) IsCancelled() bool {
	return f.cancelled
}

// ClearStatus resets the submitted and cancelled flags.
func (f *BranchForm) ClearStatus() {
	f.submitted = false
	f.cancelled = false
}

// GetData returns the branch name and settings entered in the form.
func (f *BranchForm) GetData() (string, models.BranchSettings, error) {
	var errs []error
	atoi := func(in *components.Input) int {
		v, err := in.IntValue()
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	atof := func(in *components.Input) float64 {
		v, err := in.FloatValue()
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	s := models.BranchSettings{
		RegularPackSize:         atoi(f.regularPackSize),
		RegularPackRevenue:      atof(f.regularPackRevenue),
		RegularPieceWeightGrams: atoi(f.regularWeight),
		MiniPackSize:            atoi(f.miniPackSize),
		MiniPackRevenue:         atof(f.miniPackRevenue),
		MiniPieceWeightGrams:    atoi(f.miniWeight),
		WastePerKgGrams:         atoi(f.waste),
		Policy:                  models.ConversionPolicy(f.policy.Value()),
	}

	if len(errs) > 0 {
		return "", models.BranchSettings{}, errors.Join(errs...)
	}
	return strings.TrimSpace(f.name.Value()), s, nil
}

// YieldCaption describes the yield the entered settings produce.
func (f *BranchForm) YieldCaption() string {
	_, s, err := f.GetData()
	if err == nil {
		err = s.Validate()
	}
	if err != nil {
		return "Derived yield shown once the settings are valid."
	}
	return s.YieldCaption()
}

// Render renders the form with default width.
func (f *BranchForm) Render() string {
	return f.RenderResponsive(0)
}

// RenderResponsive renders the form adapted to the given terminal width.
func (f *BranchForm) RenderResponsive(width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Underline(true)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	noteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#006600"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))

	labelWidth := 16
	if width > 0 && width < 60 {
		labelWidth = 13
	}

	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteString("\n")
	}

	line(titleStyle.Render("═══ BRANCH SETTINGS ═══"))
	line("")
	line(f.name.RenderWithLabelWidth(labelWidth))
	line("")

	line(sectionStyle.Render("Regular patties"))
	line(f.regularPackSize.RenderWithLabelWidth(labelWidth))
	line(f.regularPackRevenue.RenderWithLabelWidth(labelWidth))
	line(f.regularWeight.RenderWithLabelWidth(labelWidth))
	line("")

	line(sectionStyle.Render("Mini patties"))
	line(f.miniPackSize.RenderWithLabelWidth(labelWidth))
	line(f.miniPackRevenue.RenderWithLabelWidth(labelWidth))
	line(f.miniWeight.RenderWithLabelWidth(labelWidth))
	line("")

	line(sectionStyle.Render("Meat"))
	line(f.waste.RenderWithLabelWidth(labelWidth))
	line(f.policy.RenderWithLabelWidth(labelWidth))
	line("")
	line(noteStyle.Render(f.YieldCaption()))

	if f.err != "" {
		line("")
		line(errStyle.Render("Error: " + f.err))
	}

	b.WriteString("\n")
	if width > 0 && width < 60 {
		b.WriteString(helpStyle.Render("Tab:Next  Ctrl+S:Save  Esc:Revert"))
	} else {
		b.WriteString(helpStyle.Render("Tab/Down:Next  Shift+Tab/Up:Prev  Ctrl+S:Save  Esc:Revert"))
	}

	return b.String()
}
