package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const defaultLabelWidth = 16

var (
	labelColor = lipgloss.Color("#00AA00")
	valueColor = lipgloss.Color("#00FF00")
	focusColor = lipgloss.Color("#66FF66")
	mutedColor = lipgloss.Color("#006600")
	errorColor = lipgloss.Color("#FF4444")
)

// InputKind restricts which characters an Input accepts.
type InputKind int

const (
	KindText InputKind = iota
	KindInteger
	KindDecimal
)

// Input is a single-line text or number input.
type Input struct {
	label       string
	value       string
	placeholder string
	suffix      string
	width       int
	focused     bool
	cursorPos   int
	maxLength   int
	required    bool
	kind        InputKind
	err         string
}

// NewInput creates a new input field.
func NewInput(label string) *Input {
	return &Input{
		label:     label,
		width:     20,
		maxLength: 100,
	}
}

// NewNumberInput creates an input that accepts only numbers of the given kind.
func NewNumberInput(label string, kind InputKind) *Input {
	return NewInput(label).SetKind(kind).SetRequired(true).SetWidth(10).SetMaxLength(12)
}

// SetValue sets the input value.
func (i *Input) SetValue(v string) *Input {
	i.value = v
	i.cursorPos = len(v)
	return i
}

// SetInt sets the value of an integer input.
func (i *Input) SetInt(v int) *Input {
	return i.SetValue(strconv.Itoa(v))
}

// SetFloat sets the value of a decimal input without trailing zeros.
func (i *Input) SetFloat(v float64) *Input {
	return i.SetValue(strconv.FormatFloat(v, 'f', -1, 64))
}

// SetPlaceholder sets the placeholder text.
func (i *Input) SetPlaceholder(p string) *Input {
	i.placeholder = p
	return i
}

// SetSuffix sets a unit label rendered after the value.
func (i *Input) SetSuffix(s string) *Input {
	i.suffix = s
	return i
}

// SetWidth sets the input width.
func (i *Input) SetWidth(w int) *Input {
	i.width = w
	return i
}

// SetMaxLength sets the maximum input length.
func (i *Input) SetMaxLength(m int) *Input {
	i.maxLength = m
	return i
}

// SetRequired marks the field as required.
func (i *Input) SetRequired(r bool) *Input {
	i.required = r
	return i
}

// SetKind restricts the accepted characters.
func (i *Input) SetKind(k InputKind) *Input {
	i.kind = k
	return i
}

// SetError sets an error message.
func (i *Input) SetError(e string) *Input {
	i.err = e
	return i
}

// Error returns the current error message.
func (i *Input) Error() string {
	return i.err
}

// Label returns the field label.
func (i *Input) Label() string {
	return i.label
}

// Focus sets the focus state.
func (i *Input) Focus(focused bool) {
	i.focused = focused
	if focused && i.cursorPos > len(i.value) {
		i.cursorPos = len(i.value)
	}
}

// IsFocused returns the focus state.
func (i *Input) IsFocused() bool {
	return i.focused
}

// Value returns the current value.
func (i *Input) Value() string {
	return i.value
}

// IntValue parses the value as an integer.
func (i *Input) IntValue() (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(i.value))
	if err != nil {
		return 0, fmt.Errorf("%s: not a whole number", i.label)
	}
	return v, nil
}

// FloatValue parses the value as a decimal number.
func (i *Input) FloatValue() (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(i.value), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number", i.label)
	}
	return v, nil
}

// HandleKey handles a key press.
func (i *Input) HandleKey(key string) {
	if !i.focused {
		return
	}

	switch key {
	case "backspace":
		if len(i.value) > 0 && i.cursorPos > 0 {
			i.value = i.value[:i.cursorPos-1] + i.value[i.cursorPos:]
			i.cursorPos--
		}
	case "delete":
		if i.cursorPos < len(i.value) {
			i.value = i.value[:i.cursorPos] + i.value[i.cursorPos+1:]
		}
	case "left":
		if i.cursorPos > 0 {
			i.cursorPos--
		}
	case "right":
		if i.cursorPos < len(i.value) {
			i.cursorPos++
		}
	case "home", "ctrl+a":
		i.cursorPos = 0
	case "end", "ctrl+e":
		i.cursorPos = len(i.value)
	default:
		if len(key) == 1 && len(i.value) < i.maxLength && i.accepts(key[0]) {
			i.value = i.value[:i.cursorPos] + key + i.value[i.cursorPos:]
			i.cursorPos++
		}
	}
}

// accepts reports whether c may be typed into the input.
func (i *Input) accepts(c byte) bool {
	switch i.kind {
	case KindInteger:
		return c >= '0' && c <= '9'
	case KindDecimal:
		if c == '.' {
			return !strings.Contains(i.value, ".")
		}
		return c >= '0' && c <= '9'
	default:
		return c >= ' ' && c <= '~'
	}
}

// Validate checks the required flag and, for number inputs, that the value parses.
func (i *Input) Validate() bool {
	if i.required && strings.TrimSpace(i.value) == "" {
		i.err = "Required"
		return false
	}

	if i.value != "" {
		var err error
		switch i.kind {
		case KindInteger:
			_, err = i.IntValue()
		case KindDecimal:
			_, err = i.FloatValue()
		}
		if err != nil {
			i.err = "Invalid number"
			return false
		}
	}

	i.err = ""
	return true
}

// Render renders the input field with the default label width.
func (i *Input) Render() string {
	return i.RenderWithLabelWidth(defaultLabelWidth)
}

// RenderWithLabelWidth renders the input with a label column of the given
// width. A width of zero omits the label.
func (i *Input) RenderWithLabelWidth(labelWidth int) string {
	valueStyle := lipgloss.NewStyle().Foreground(valueColor)
	focusStyle := lipgloss.NewStyle().Foreground(focusColor)
	errStyle := lipgloss.NewStyle().Foreground(errorColor)
	mutedStyle := lipgloss.NewStyle().Foreground(mutedColor)

	var display string
	switch {
	case i.value == "" && i.placeholder != "" && !i.focused:
		display = mutedStyle.Render(i.placeholder)
	case i.focused:
		display = focusStyle.Render(i.value[:i.cursorPos] + "_" + i.value[i.cursorPos:])
	default:
		display = valueStyle.Render(i.value)
	}

	displayLen := len(i.value)
	if i.value == "" && i.placeholder != "" && !i.focused {
		displayLen = len(i.placeholder)
	}
	if i.focused {
		displayLen++
	}
	if displayLen < i.width {
		display += strings.Repeat(" ", i.width-displayLen)
	}

	result := display
	if i.suffix != "" {
		result += " " + mutedStyle.Render(i.suffix)
	}
	if labelWidth > 0 {
		result = renderLabel(i.label, i.required, labelWidth) + " " + result
	}

	if i.err != "" {
		result += " " + errStyle.Render(i.err)
	}

	return result
}

func renderLabel(label string, required bool, width int) string {
	if required {
		label += "*"
	}
	return lipgloss.NewStyle().Foreground(labelColor).Width(width).Render(label + ":")
}

// Select is a selection input component.
type Select struct {
	label    string
	options  []string
	selected int
	focused  bool
	compact  bool
}

// NewSelect creates a new select input.
func NewSelect(label string, options []string) *Select {
	return &Select{
		label:   label,
		options: options,
	}
}

// SetSelected sets the selected index.
func (s *Select) SetSelected(idx int) *Select {
	if idx >= 0 && idx < len(s.options) {
		s.selected = idx
	}
	return s
}

// SetCompact renders only the selected option between arrows. Useful for
// long option lists.
func (s *Select) SetCompact(c bool) *Select {
	s.compact = c
	return s
}

// SetValue selects the option equal to v. It reports whether v was found.
func (s *Select) SetValue(v string) bool {
	for idx, opt := range s.options {
		if opt == v {
			s.selected = idx
			return true
		}
	}
	return false
}

// Focus sets the focus state.
func (s *Select) Focus(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state.
func (s *Select) IsFocused() bool {
	return s.focused
}

// Value returns the selected value.
func (s *Select) Value() string {
	if s.selected >= 0 && s.selected < len(s.options) {
		return s.options[s.selected]
	}
	return ""
}

// SelectedIndex returns the selected index.
func (s *Select) SelectedIndex() int {
	return s.selected
}

// HandleKey handles a key press.
func (s *Select) HandleKey(key string) {
	if !s.focused {
		return
	}

	switch key {
	case "left", "h":
		if s.selected > 0 {
			s.selected--
		}
	case "right", "l", " ":
		if s.selected < len(s.options)-1 {
			s.selected++
		} else if key == " " {
			s.selected = 0
		}
	}
}

// Render renders the select with the default label width.
func (s *Select) Render() string {
	return s.RenderWithLabelWidth(defaultLabelWidth)
}

// RenderWithLabelWidth renders the select with a label column of the given width.
func (s *Select) RenderWithLabelWidth(labelWidth int) string {
	optStyle := lipgloss.NewStyle().Foreground(labelColor)
	selStyle := lipgloss.NewStyle().Foreground(valueColor).Bold(true)

	var b strings.Builder
	if labelWidth > 0 {
		b.WriteString(renderLabel(s.label, false, labelWidth))
		b.WriteString(" ")
	}

	if s.compact {
		style := optStyle
		if s.focused {
			style = selStyle
		}
		b.WriteString(style.Render("◂ " + s.Value() + " ▸"))
		return b.String()
	}

	for idx, opt := range s.options {
		if idx > 0 {
			b.WriteString(" ")
		}

		switch {
		case idx == s.selected && s.focused:
			b.WriteString(selStyle.Render("[" + opt + "]"))
		case idx == s.selected:
			b.WriteString(selStyle.Render("(" + opt + ")"))
		default:
			b.WriteString(optStyle.Render(" " + opt + " "))
		}
	}

	return b.String()
}

// FormField is implemented by every focusable form component.
type FormField interface {
	Focus(bool)
	IsFocused() bool
	HandleKey(string)
	Render() string
	RenderWithLabelWidth(int) string
}

var (
	_ FormField = (*Input)(nil)
	_ FormField = (*Select)(nil)
	_ FormField = (*Slider)(nil)
)
