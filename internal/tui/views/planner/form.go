// Package planner provides the TUI views for the sales form and the
// production plan.
package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/pattyplanner/pattyplanner/internal/models"
	"github.com/pattyplanner/pattyplanner/internal/tui/components"
	"github.com/pattyplanner/pattyplanner/internal/util"
)

var splitModes = []string{string(models.SplitByShare), string(models.SplitExplicit)}

// SalesForm collects one sales request.
type SalesForm struct {
	clock      util.Clock
	dateFormat string

	today         *components.Input
	tomorrow      *components.Input
	cutoff        *components.Select
	splitMode     *components.Select
	share         *components.Slider
	regularTarget *components.Input
	miniTarget    *components.Input
	regularStock  *components.Input
	miniStock     *components.Input

	// explicitEdited stops the explicit targets from being overwritten once
	// the operator has typed into them.
	explicitEdited bool

	focusIndex int
	submitted  bool
	err        string
}

// NewSalesForm creates a sales form prefilled from defaults.
func NewSalesForm(defaults models.SalesRequest, clock util.Clock, dateFormat string) *SalesForm {
	if clock == nil {
		clock = util.SystemClock{}
	}

	hours := make([]string, 0, models.MaxCutoffHour-models.MinCutoffHour+1)
	for h := models.MinCutoffHour; h <= models.MaxCutoffHour; h++ {
		hours = append(hours, fmt.Sprintf("%02d:00", h))
	}

	f := &SalesForm{
		clock:      clock,
		dateFormat: dateFormat,

		today:         components.NewNumberInput("Today's target", components.KindDecimal),
		tomorrow:      components.NewNumberInput("Tomorrow to cutoff", components.KindDecimal),
		cutoff:        components.NewSelect("Cutoff", hours).SetCompact(true),
		splitMode:     components.NewSelect("Split", splitModes),
		share:         components.NewSlider("Regular share", 0, 100, models.ShareStepPercent).SetSuffix("%"),
		regularTarget: components.NewNumberInput("Regular target", components.KindDecimal),
		miniTarget:    components.NewNumberInput("Mini target", components.KindDecimal),
		regularStock:  components.NewNumberInput("Regular in stock", components.KindInteger).SetSuffix("pcs"),
		miniStock:     components.NewNumberInput("Mini in stock", components.KindInteger).SetSuffix("pcs"),
	}

	f.SetRequest(defaults)
	f.focus()

	return f
}

// SetRequest loads a request into the form.
func (f *SalesForm) SetRequest(r models.SalesRequest) {
	f.today.SetFloat(r.TodayRevenueTarget)
	f.tomorrow.SetFloat(r.TomorrowRevenueTarget)
	f.cutoff.SetValue(fmt.Sprintf("%02d:00", r.CutoffHour))
	if !f.splitMode.SetValue(string(r.SplitMode)) {
		f.splitMode.SetSelected(0)
	}
	f.share.SetValue(int(r.RegularRevenueShare*100 + 0.5))
	f.regularTarget.SetFloat(r.RegularTargetRevenue)
	f.miniTarget.SetFloat(r.MiniTargetRevenue)
	f.regularStock.SetInt(r.RegularInStock)
	f.miniStock.SetInt(r.MiniInStock)
}

func (f *SalesForm) mode() models.SplitMode {
	return models.SplitMode(f.splitMode.Value())
}

// fields returns the focusable fields for the current split mode.
func (f *SalesForm) fields() []components.FormField {
	fields := []components.FormField{f.today, f.tomorrow, f.cutoff, f.splitMode}
	if f.mode() == models.SplitExplicit {
		fields = append(fields, f.regularTarget, f.miniTarget)
	} else {
		fields = append(fields, f.share)
	}
	return append(fields, f.regularStock, f.miniStock)
}

func (f *SalesForm) focus() {
	fields := f.fields()
	if f.focusIndex >= len(fields) {
		f.focusIndex = len(fields) - 1
	}
	for i, field := range fields {
		field.Focus(i == f.focusIndex)
	}
	// Fields hidden by the split mode keep no focus.
	if f.mode() == models.SplitExplicit {
		f.share.Focus(false)
	} else {
		f.regularTarget.Focus(false)
		f.miniTarget.Focus(false)
	}
}

// HandleKey handles key input.
func (f *SalesForm) HandleKey(key string) {
	switch key {
	case "tab", "down":
		f.nextField()
	case "shift+tab", "up":
		f.prevField()
	case "ctrl+s":
		f.submit()
	case "enter":
		if f.focusIndex == len(f.fields())-1 {
			f.submit()
		} else {
			f.nextField()
		}
	default:
		field := f.fields()[f.focusIndex]
		before := f.mode()
		field.HandleKey(key)

		if field == f.regularTarget || field == f.miniTarget {
			f.explicitEdited = true
		}
		if before != f.mode() {
			f.modeChanged()
		}
	}
}

func (f *SalesForm) nextField() {
	f.focusIndex = (f.focusIndex + 1) % len(f.fields())
	f.focus()
}

func (f *SalesForm) prevField() {
	n := len(f.fields())
	f.focusIndex = (f.focusIndex - 1 + n) % n
	f.focus()
}

// modeChanged prefills the explicit targets with half the combined target
// each until the operator edits them.
func (f *SalesForm) modeChanged() {
	if f.mode() == models.SplitExplicit && !f.explicitEdited {
		if total, ok := f.totalTarget(); ok {
			f.regularTarget.SetFloat(total / 2)
			f.miniTarget.SetFloat(total / 2)
		}
	}
	f.focus()
}

func (f *SalesForm) totalTarget() (float64, bool) {
	today, err1 := f.today.FloatValue()
	tomorrow, err2 := f.tomorrow.FloatValue()
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return today + tomorrow, true
}

func (f *SalesForm) inputs() []*components.Input {
	inputs := []*components.Input{f.today, f.tomorrow}
	if f.mode() == models.SplitExplicit {
		inputs = append(inputs, f.regularTarget, f.miniTarget)
	}
	return append(inputs, f.regularStock, f.miniStock)
}

func (f *SalesForm) submit() {
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

	req, err := f.GetData()
	if err == nil {
		err = req.Validate()
	}
	if err != nil {
		f.ApplyError(err)
		return
	}

	f.submitted = true
}

// ApplyError shows a validation error on the fields it names.
func (f *SalesForm) ApplyError(err error) {
	byField := map[string]*components.Input{
		"today_target":     f.today,
		"tomorrow_target":  f.tomorrow,
		"regular_target":   f.regularTarget,
		"mini_target":      f.miniTarget,
		"regular_in_stock": f.regularStock,
		"mini_in_stock":    f.miniStock,
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
	case errors.Is(err, models.ErrInvalidRequest):
		f.err = "Please correct the highlighted fields"
	default:
		f.err = err.Error()
	}
	f.submitted = false
}

// IsSubmitted returns true if the form was submitted.
func (f *SalesForm) IsSubmitted() bool {
	return f.submitted
}

// ClearSubmitted resets the submission flag once the request has been taken.
func (f *SalesForm) ClearSubmitted() {
	f.submitted = false
}

// GetData returns the form data as a sales request.
func (f *SalesForm) GetData() (models.SalesRequest, error) {
	var errs []error
	parseFloat := func(in *components.Input) float64 {
		v, err := in.FloatValue()
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	parseInt := func(in *components.Input) int {
		v, err := in.IntValue()
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	req := models.SalesRequest{
		TodayRevenueTarget:    parseFloat(f.today),
		TomorrowRevenueTarget: parseFloat(f.tomorrow),
		CutoffHour:            f.CutoffHour(),
		SplitMode:             f.mode(),
		RegularRevenueShare:   models.ShareFromPercent(f.share.Value()),
		RegularInStock:        parseInt(f.regularStock),
		MiniInStock:           parseInt(f.miniStock),
	}
	if req.SplitMode == models.SplitExplicit {
		req.RegularTargetRevenue = parseFloat(f.regularTarget)
		req.MiniTargetRevenue = parseFloat(f.miniTarget)
	}

	if len(errs) > 0 {
		return models.SalesRequest{}, errors.Join(errs...)
	}
	return req, nil
}

// CutoffHour returns the selected cutoff hour.
func (f *SalesForm) CutoffHour() int {
	return models.MinCutoffHour + f.cutoff.SelectedIndex()
}

// CutoffCaption describes the selected cutoff relative to now.
func (f *SalesForm) CutoffCaption() string {
	return util.CutoffCaption(f.clock.Now(), f.CutoffHour(), f.dateFormat)
}

// Render renders the form with default width.
func (f *SalesForm) Render() string {
	return f.RenderResponsive(0)
}

// RenderResponsive renders the form adapted to the given terminal width.
func (f *SalesForm) RenderResponsive(width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	noteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#006600"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))

	labelWidth := 20
	indent := strings.Repeat(" ", labelWidth+1)
	if width > 0 && width < 60 {
		labelWidth = 14
		indent = ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("═══ SALES TARGET ═══"))
	b.WriteString("\n\n")

	b.WriteString(f.today.RenderWithLabelWidth(labelWidth))
	b.WriteString("\n")
	b.WriteString(f.tomorrow.RenderWithLabelWidth(labelWidth))
	b.WriteString("\n")
	if total, ok := f.totalTarget(); ok {
		b.WriteString(indent)
		b.WriteString(noteStyle.Render("Combined: " + models.FormatRevenue(decimal.NewFromFloat(total))))
		b.WriteString("\n")
	}
	b.WriteString(f.cutoff.RenderWithLabelWidth(labelWidth))
	b.WriteString("\n")
	b.WriteString(indent)
	b.WriteString(noteStyle.Render(f.CutoffCaption()))
	b.WriteString("\n\n")

	b.WriteString(f.splitMode.RenderWithLabelWidth(labelWidth))
	b.WriteString("\n")
	if f.mode() == models.SplitExplicit {
		b.WriteString(f.regularTarget.RenderWithLabelWidth(labelWidth))
		b.WriteString("\n")
		b.WriteString(f.miniTarget.RenderWithLabelWidth(labelWidth))
	} else {
		b.WriteString(f.share.RenderWithLabelWidth(labelWidth))
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString(noteStyle.Render(fmt.Sprintf("Mini share %d%%", 100-f.share.Value())))
	}
	b.WriteString("\n\n")

	b.WriteString(f.regularStock.RenderWithLabelWidth(labelWidth))
	b.WriteString("\n")
	b.WriteString(f.miniStock.RenderWithLabelWidth(labelWidth))
	b.WriteString("\n")

	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(errStyle.Render("Error: " + f.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if width > 0 && width < 60 {
		b.WriteString(helpStyle.Render("Tab:Next  Ctrl+S:Calculate"))
	} else {
		b.WriteString(helpStyle.Render("Tab/Down:Next  Shift+Tab/Up:Prev  ←/→:Change  Ctrl+S:Calculate"))
	}

	return b.String()
}
