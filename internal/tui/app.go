package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pattyplanner/pattyplanner/internal/config"
	"github.com/pattyplanner/pattyplanner/internal/models"
	"github.com/pattyplanner/pattyplanner/internal/services/planner"
	plannerviews "github.com/pattyplanner/pattyplanner/internal/tui/views/planner"
	"github.com/pattyplanner/pattyplanner/internal/tui/views/settings"
	"github.com/pattyplanner/pattyplanner/internal/util"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// MaxContentWidth is the maximum width for content display
const MaxContentWidth = 120

// chromeLines is the height of header, alert bar and footer together.
const chromeLines = 6

// Module represents a view module in the application.
type Module string

const (
	ModulePlanner  Module = "planner"
	ModuleSettings Module = "settings"
	ModuleHelp     Module = "help"
)

// App is the main Bubble Tea application model.
type App struct {
	// Dependencies
	ctx        context.Context
	config     *config.Config
	configPath string
	clock      util.Clock
	plannerSvc *planner.Service

	// Views
	salesForm  *plannerviews.SalesForm
	resultView *plannerviews.ResultView
	branchForm *settings.BranchForm

	// UI state
	theme       *Theme
	keys        KeyMap
	width       int
	height      int
	ready       bool
	quitting    bool
	showConfirm bool

	// Current view
	currentModule  Module
	previousModule Module

	// lastRequest is replayed when branch settings change.
	lastRequest *models.SalesRequest

	// Alerts
	alerts []Alert
}

// Alert represents a status message shown under the header.
type Alert struct {
	Level   AlertLevel
	Message string
	Time    time.Time
}

// AlertLevel indicates the severity of an alert.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertWarning
	AlertCritical
)

// tickMsg is sent every minute so the clock and cutoff caption stay current.
type tickMsg time.Time

// calculatedMsg carries the outcome of a planner run.
type calculatedMsg struct {
	calc *planner.Calculation
	err  error
}

// settingsSavedMsg carries the outcome of saving branch settings.
type settingsSavedMsg struct {
	cfg   *config.Config
	saved bool
	err   error
}

// New creates a new App instance. configPath may be empty, in which case
// settings changes apply to the running session only.
func New(ctx context.Context, cfg *config.Config, configPath string, svc *planner.Service, clock util.Clock) *App {
	if clock == nil {
		clock = util.SystemClock{}
	}
	if svc == nil {
		svc = planner.NewService(nil, clock)
	}

	return &App{
		ctx:           ctx,
		config:        cfg,
		configPath:    configPath,
		clock:         clock,
		plannerSvc:    svc,
		salesForm:     plannerviews.NewSalesForm(cfg.Form.Request(), clock, cfg.Display.DateFormat),
		resultView:    plannerviews.NewResultView(cfg.Display.Currency),
		branchForm:    settings.NewBranchForm(cfg.Branch.Name, cfg.Branch.Settings()),
		theme:         NewTheme(cfg.Display.ColorScheme),
		keys:          DefaultKeyMap(),
		currentModule: ModulePlanner,
		alerts:        []Alert{},
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(),
	)
}

// tickCmd returns a command that sends tick messages on the minute.
func tickCmd() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case tickMsg:
		return a, tickCmd()

	case calculatedMsg:
		return a.handleCalculated(msg)

	case settingsSavedMsg:
		return a.handleSettingsSaved(msg)
	}

	return a, nil
}

// handleKeyPress processes key press events.
func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle quit confirmation first (modal takes priority)
	if a.showConfirm {
		switch msg.String() {
		case "y", "Y", "enter":
			a.quitting = true
			return a, tea.Quit
		case "n", "N", "esc":
			a.showConfirm = false
			return a, nil
		}
		return a, nil
	}

	if a.keys.IsQuit(msg) {
		a.showConfirm = true
		return a, nil
	}

	// Function key navigation (always available)
	if a.keys.IsFunctionKey(msg) {
		a.switchModule(a.keys.GetFunctionKeyModule(msg))
		return a, nil
	}

	switch a.currentModule {
	case ModulePlanner:
		return a.handlePlannerKeys(msg)
	case ModuleSettings:
		return a.handleSettingsKeys(msg)
	case ModuleHelp:
		if a.keys.Back.Matches(msg) || msg.String() == "q" {
			a.switchModule(a.previousModule)
		}
	}

	return a, nil
}

func (a *App) switchModule(m Module) {
	switch m {
	case ModuleHelp:
		if a.currentModule != ModuleHelp {
			a.previousModule = a.currentModule
		}
	case ModuleSettings:
		// Unsaved edits are dropped when the panel is reopened.
		if a.currentModule != ModuleSettings {
			a.branchForm.Load(a.config.Branch.Name, a.config.Branch.Settings())
		}
	case "":
		m = ModulePlanner
	}
	a.currentModule = m
}

// handlePlannerKeys routes keys to the sales form. Esc clears the plan.
func (a *App) handlePlannerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.keys.Back.Matches(msg) {
		a.resultView.Clear()
		return a, nil
	}

	a.salesForm.HandleKey(msg.String())

	if a.salesForm.IsSubmitted() {
		a.salesForm.ClearSubmitted()
		req, err := a.salesForm.GetData()
		if err != nil {
			a.salesForm.ApplyError(err)
			return a, nil
		}
		return a, a.calculate(req)
	}

	return a, nil
}

// handleSettingsKeys routes keys to the branch settings form.
func (a *App) handleSettingsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.branchForm.HandleKey(msg.String())

	if a.branchForm.IsCancelled() {
		a.branchForm.Load(a.config.Branch.Name, a.config.Branch.Settings())
		a.AddAlert(AlertInfo, "Settings changes discarded")
		return a, nil
	}

	if a.branchForm.IsSubmitted() {
		a.branchForm.ClearStatus()
		name, s, err := a.branchForm.GetData()
		if err != nil {
			a.branchForm.ApplyError(err)
			return a, nil
		}
		return a, a.saveSettings(name, s)
	}

	return a, nil
}

// calculate runs the planner with the current branch settings.
func (a *App) calculate(req models.SalesRequest) tea.Cmd {
	ctx := a.ctx
	svc := a.plannerSvc
	branch := a.config.Branch.Settings()

	return func() tea.Msg {
		calc, err := svc.Calculate(ctx, branch, req)
		return calculatedMsg{calc: calc, err: err}
	}
}

func (a *App) handleCalculated(msg calculatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		switch {
		case errors.Is(msg.err, models.ErrInvalidSettings):
			a.AddAlert(AlertCritical, "Branch settings are invalid; fix them under F3")
		case errors.Is(msg.err, models.ErrInvalidRequest):
			a.salesForm.ApplyError(msg.err)
		default:
			a.AddAlert(AlertWarning, "Calculation failed: "+msg.err.Error())
		}
		return a, nil
	}

	req := msg.calc.Request
	a.lastRequest = &req
	a.resultView.SetCalculation(msg.calc)
	a.AddAlert(AlertInfo, "Plan "+util.ShortID(msg.calc.ID)+" calculated")
	return a, nil
}

// saveSettings applies branch settings to a copy of the configuration and
// writes it to the config file.
func (a *App) saveSettings(name string, s models.BranchSettings) tea.Cmd {
	cfg := *a.config
	cfg.Branch.Name = name
	cfg.Branch.SetSettings(s)
	path := a.configPath

	return func() tea.Msg {
		if path == "" {
			return settingsSavedMsg{cfg: &cfg}
		}
		if err := config.Save(&cfg, path); err != nil {
			return settingsSavedMsg{err: err}
		}
		slog.Info("branch settings saved", "path", path, "branch", cfg.Branch.Name)
		return settingsSavedMsg{cfg: &cfg, saved: true}
	}
}

func (a *App) handleSettingsSaved(msg settingsSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.AddAlert(AlertWarning, "Failed to save settings: "+msg.err.Error())
		return a, nil
	}

	a.config = msg.cfg
	if msg.saved {
		a.AddAlert(AlertInfo, "Settings saved to "+a.configPath)
	} else {
		a.AddAlert(AlertInfo, "Settings applied for this session")
	}

	if a.lastRequest != nil {
		return a, a.calculate(*a.lastRequest)
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	if a.quitting {
		return a.theme.Title.Render("Patty planner closed.")
	}

	var b strings.Builder

	// Header
	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	// Alert bar
	b.WriteString(a.renderAlertBar())
	b.WriteString("\n")

	// Main content area
	contentHeight := ContentHeight(a.height, chromeLines)
	if a.showConfirm {
		b.WriteString(a.renderConfirmDialog(contentHeight))
	} else {
		b.WriteString(a.renderContent(contentHeight))
	}

	// Footer/status bar
	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	return b.String()
}

// renderHeader renders the top header bar.
func (a *App) renderHeader() string {
	title := "PATTY PLANNER v" + Version
	if GetBreakpoint(a.width) == BreakpointNarrow {
		title = "PATTY PLANNER"
	}

	branchInfo := fmt.Sprintf("%s | %s", a.config.Branch.Name, a.config.Branch.Settings().EffectivePolicy())
	branchInfo = Truncate(branchInfo, max(a.width-lipgloss.Width(title)-6, 1))

	spacing := a.width - lipgloss.Width(title) - lipgloss.Width(branchInfo) - 4
	if spacing < 1 {
		spacing = 1
	}

	header := a.theme.Header.Render(title) +
		strings.Repeat(" ", spacing) +
		a.theme.Header.Render(branchInfo)

	return header + "\n" + a.theme.DrawDoubleLine(a.width)
}

// renderAlertBar renders the clock and the latest alert.
func (a *App) renderAlertBar() string {
	dateFormat := a.config.Display.DateFormat
	if dateFormat == "" {
		dateFormat = util.DateFormat
	}
	timeStr := a.clock.Now().Format(dateFormat + " 15:04")

	var alertText string
	if len(a.alerts) > 0 {
		alert := a.alerts[0]
		switch alert.Level {
		case AlertCritical:
			alertText = a.theme.AlertCrit.Render("ERROR: " + alert.Message)
		case AlertWarning:
			alertText = a.theme.AlertWarn.Render("WARNING: " + alert.Message)
		default:
			alertText = a.theme.Alert.Render(alert.Message)
		}
	} else {
		alertText = a.theme.Muted.Render("Enter the sales target and press Ctrl+S")
	}

	return a.theme.Value.Render(timeStr) + a.theme.StatusDivider.Render() + alertText
}

// renderContent renders the main content area based on current module.
func (a *App) renderContent(height int) string {
	contentWidth := ContentWidth(a.width, 20, MaxContentWidth)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Top)

	contentStyle := lipgloss.NewStyle().
		Width(contentWidth)

	return style.Render(contentStyle.Render(a.getModuleContent(contentWidth)))
}

// getModuleContent returns the content for the current module.
func (a *App) getModuleContent(width int) string {
	switch a.currentModule {
	case ModuleSettings:
		return a.renderSettings(width)
	case ModuleHelp:
		return a.renderHelp()
	default:
		return a.renderPlanner(width)
	}
}

// renderPlanner renders the sales form and the plan, side by side when the
// terminal is wide enough.
func (a *App) renderPlanner(width int) string {
	if GetBreakpoint(width) != BreakpointWide {
		return a.salesForm.RenderResponsive(width) + "\n\n" + a.resultView.RenderResponsive(width)
	}

	half := width/2 - 1
	inner := half - 4 // border and padding
	left := a.theme.Panel("Sales", a.salesForm.RenderResponsive(inner), half)
	right := a.theme.Panel("Plan", a.resultView.RenderResponsive(inner), half)

	return SideBySide(left, right, width, 2)
}

// renderSettings renders the branch settings panel.
func (a *App) renderSettings(width int) string {
	var b strings.Builder
	b.WriteString(a.branchForm.RenderResponsive(width))
	b.WriteString("\n\n")

	if a.configPath != "" {
		b.WriteString(a.theme.Muted.Render("Saved to " + a.configPath))
	} else {
		b.WriteString(a.theme.Muted.Render("No config file; changes last until exit"))
	}

	return b.String()
}

// renderHelp renders the help screen.
func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("═══ HELP ═══"))
	b.WriteString("\n\n")

	section := func(title string, items [][2]string) {
		b.WriteString(a.theme.Subtitle.Render(title))
		b.WriteString("\n\n")
		for _, item := range items {
			b.WriteString(a.theme.Primary.Render("    " + PadRight(item[0], 12) + item[1]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	section("NAVIGATION", [][2]string{
		{"F1", "Help"},
		{"F2", "Sales form and plan"},
		{"F3", "Branch settings"},
		{"F10/Ctrl+C", "Quit"},
	})

	section("FORMS", [][2]string{
		{"Tab/Down", "Next field"},
		{"Shift+Tab", "Previous field"},
		{"Left/Right", "Change selection or share"},
		{"Ctrl+S", "Calculate / save"},
		{"Esc", "Clear plan / revert settings"},
	})

	b.WriteString(a.theme.Muted.Render("Patty counts round up to whole patties. Beef is raw mass before"))
	b.WriteString("\n")
	b.WriteString(a.theme.Muted.Render("trimming, rounded up to 0.1 kg. The cutoff hour is informational."))
	b.WriteString("\n\n")
	b.WriteString(a.theme.Label.Render("Press Esc to return"))

	return b.String()
}

// renderConfirmDialog renders the quit confirmation dialog.
func (a *App) renderConfirmDialog(height int) string {
	dialog := a.theme.Box.Render(
		a.theme.Title.Render("CONFIRM EXIT") + "\n\n" +
			a.theme.Base.Render("Close the patty planner?") + "\n\n" +
			a.theme.Label.Render("[Y]es  [N]o"),
	)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(dialog)
}

// renderFooter renders the bottom status bar.
func (a *App) renderFooter() string {
	separator := a.theme.DrawHorizontalLine(a.width)
	help := a.keys.StatusBarHelp(GetBreakpoint(a.width) == BreakpointNarrow)

	return separator + "\n" + a.theme.Footer.Render(help)
}

// AddAlert adds a new alert to the display.
func (a *App) AddAlert(level AlertLevel, message string) {
	a.alerts = append([]Alert{{
		Level:   level,
		Message: message,
		Time:    a.clock.Now(),
	}}, a.alerts...)

	// Keep only last 10 alerts
	if len(a.alerts) > 10 {
		a.alerts = a.alerts[:10]
	}
}

// ClearAlerts removes all alerts.
func (a *App) ClearAlerts() {
	a.alerts = []Alert{}
}

// Run starts the TUI application.
func Run(ctx context.Context, cfg *config.Config, configPath string, svc *planner.Service, clock util.Clock) error {
	app := New(ctx, cfg, configPath, svc, clock)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
