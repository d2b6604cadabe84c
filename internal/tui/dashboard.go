package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/lifeledger/internal/stats"
)

// tickMsg is sent when the timer ticks.
type tickMsg time.Time

// refreshMsg is sent when data needs to be refreshed.
type refreshMsg struct{}

// Panel identifies one dashboard page.
type Panel int

const (
	PanelOverview Panel = iota
	PanelHabits
	PanelFinance
	PanelGoals
	panelCount
)

var panelNames = [...]string{"Overview", "Habits", "Finance", "Goals"}

func (p Panel) String() string {
	if p < 0 || p >= panelCount {
		return "Unknown"
	}
	return panelNames[p]
}

// DashboardModel is the bubbletea model for the stats dashboard.
type DashboardModel struct {
	// Data
	dashboard stats.DashboardStats
	habits    []stats.HabitStreak
	finance   stats.FinanceStats
	budgets   []stats.BudgetStatus
	goals     []stats.GoalSummary
	loadedAt  time.Time

	engine   *stats.Engine
	clock    func() time.Time
	currency string

	// UI state
	active     Panel
	width      int
	height     int
	message    string
	messageExp time.Time

	refreshInterval time.Duration
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	Engine          *stats.Engine
	Clock           func() time.Time
	Currency        string
	RefreshInterval time.Duration
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.RefreshInterval == 0 {
		config.RefreshInterval = 5 * time.Second
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}

	return &DashboardModel{
		engine:          config.Engine,
		clock:           config.Clock,
		currency:        config.Currency,
		refreshInterval: config.RefreshInterval,
	}
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.refreshCmd(),
	)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if !m.messageExp.IsZero() && m.clock().After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		m.loadData()
		return m, m.tickCmd()

	case refreshMsg:
		m.loadData()
		return m, nil
	}

	return m, nil
}

// Active returns the panel currently shown.
func (m *DashboardModel) Active() Panel {
	return m.active
}

func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "tab", "right", "l":
		m.active = (m.active + 1) % panelCount

	case "shift+tab", "left", "h":
		m.active = (m.active + panelCount - 1) % panelCount

	case "1", "2", "3", "4":
		m.active = Panel(key[0] - '1')

	case "r":
		m.loadData()
		m.setMessage("Refreshed", time.Second)
	}

	return m, nil
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{m.renderHeader(), m.renderTabs()}

	if m.message != "" {
		sections = append(sections, StyleWarning.Render(m.message))
	}

	switch m.active {
	case PanelOverview:
		sections = append(sections, OverviewView(m.dashboard, m.width))
	case PanelHabits:
		sections = append(sections, HabitsView(m.habits, m.width))
	case PanelFinance:
		sections = append(sections, FinanceView(m.finance, m.budgets, m.currency, m.width))
	case PanelGoals:
		sections = append(sections, GoalsView(m.goals, m.width))
	}

	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *DashboardModel) renderHeader() string {
	title := StyleTitle.Render("Lifeledger Dashboard")
	now := StyleSubtitle.Render(m.clock().Format("Mon Jan 2, 15:04"))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", now) + "\n"
}

func (m *DashboardModel) renderTabs() string {
	tabs := make([]string, 0, panelCount)
	for p := Panel(0); p < panelCount; p++ {
		label := fmt.Sprintf("%d %s", p+1, p)
		if p == m.active {
			tabs = append(tabs, StyleActiveTab.Render(label))
		} else {
			tabs = append(tabs, StyleTab.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

// loadData reloads every aggregate. Stats reads never fail; unreadable
// collections show as empty.
func (m *DashboardModel) loadData() {
	if m.engine == nil {
		return
	}
	m.dashboard = m.engine.Dashboard()
	m.habits = m.engine.HabitStreaks()
	m.finance = m.engine.Finance()
	m.budgets = m.engine.BudgetStatuses()
	m.goals = m.engine.GoalSummaries()
	m.loadedAt = m.clock()
}

func (m *DashboardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = m.clock().Add(duration)
}

func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *DashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{}
	}
}

// Run starts the dashboard TUI.
func Run(config DashboardConfig) error {
	p := tea.NewProgram(NewDashboardModel(config), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
