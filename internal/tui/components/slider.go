package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Slider selects an integer between min and max in fixed steps.
type Slider struct {
	label    string
	min      int
	max      int
	step     int
	value    int
	barWidth int
	suffix   string
	focused  bool
}

// NewSlider creates a slider. A non-positive step is treated as 1.
func NewSlider(label string, lo, hi, step int) *Slider {
	if step <= 0 {
		step = 1
	}
	if hi < lo {
		hi = lo
	}
	return &Slider{
		label:    label,
		min:      lo,
		max:      hi,
		step:     step,
		value:    lo,
		barWidth: 20,
	}
}

// SetValue sets the value, snapping it to the nearest step inside the range.
func (s *Slider) SetValue(v int) *Slider {
	s.value = s.snap(v)
	return s
}

// SetSuffix sets the unit rendered after the value.
func (s *Slider) SetSuffix(suffix string) *Slider {
	s.suffix = suffix
	return s
}

// SetBarWidth sets the width of the track in cells.
func (s *Slider) SetBarWidth(w int) *Slider {
	if w > 0 {
		s.barWidth = w
	}
	return s
}

// Value returns the current value.
func (s *Slider) Value() int {
	return s.value
}

// Focus sets the focus state.
func (s *Slider) Focus(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state.
func (s *Slider) IsFocused() bool {
	return s.focused
}

func (s *Slider) snap(v int) int {
	if v <= s.min {
		return s.min
	}
	if v >= s.max {
		return s.max
	}
	offset := v - s.min
	steps := (offset + s.step/2) / s.step
	return min(s.min+steps*s.step, s.max)
}

// HandleKey handles a key press.
func (s *Slider) HandleKey(key string) {
	if !s.focused {
		return
	}

	switch key {
	case "left", "h", "-":
		s.value = s.snap(s.value - s.step)
	case "right", "l", "+":
		s.value = s.snap(s.value + s.step)
	case "home":
		s.value = s.min
	case "end":
		s.value = s.max
	}
}

// Render renders the slider with the default label width.
func (s *Slider) Render() string {
	return s.RenderWithLabelWidth(defaultLabelWidth)
}

// RenderWithLabelWidth renders the slider with a label column of the given width.
func (s *Slider) RenderWithLabelWidth(labelWidth int) string {
	trackStyle := lipgloss.NewStyle().Foreground(mutedColor)
	fillStyle := lipgloss.NewStyle().Foreground(valueColor)
	if s.focused {
		fillStyle = lipgloss.NewStyle().Foreground(focusColor).Bold(true)
	}

	filled := 0
	if span := s.max - s.min; span > 0 {
		filled = (s.value - s.min) * s.barWidth / span
	}

	var b strings.Builder
	if labelWidth > 0 {
		b.WriteString(renderLabel(s.label, false, labelWidth))
		b.WriteString(" ")
	}
	b.WriteString(fillStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(trackStyle.Render(strings.Repeat("░", s.barWidth-filled)))
	b.WriteString(" ")
	b.WriteString(fillStyle.Render(fmt.Sprintf("%d%s", s.value, s.suffix)))

	return b.String()
}
