package tui

import (
	"fmt"

	"runload/internal/analysis"
	"runload/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

const gaugeWidth = 24

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	queryService *service.QueryService
	data         *service.DashboardData
	loading      bool
	err          error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(qs *service.QueryService) DashboardModel {
	return DashboardModel{
		queryService: qs,
		loading:      true,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadData
}

func (m DashboardModel) loadData() tea.Msg {
	data, err := m.queryService.GetDashboardData()
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	return dashboardDataMsg{data: data}
}

type dashboardDataMsg struct {
	data *service.DashboardData
	err  error
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadData
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "\n  Loading dashboard..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if m.data == nil || !m.data.HasState {
		return "\n  No training data yet. Press 's' to sync with Strava."
	}

	var sections []string

	// Top row: fitness state and this week side by side
	fitnessCard := m.renderFitnessCard()
	weekCard := m.renderWeekCard()
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, fitnessCard, "  ", weekCard)
	sections = append(sections, topRow)

	// Risk findings, when any fired
	if len(m.data.Findings) > 0 {
		sections = append(sections, m.renderFindingsCard())
	}

	// CTL/ATL trend chart
	if len(m.data.CTLHistory) > 2 {
		sections = append(sections, m.renderChart())
	}

	// Recent activities
	sections = append(sections, m.renderRecentActivities())

	// Help
	help := statusStyle.Render("Press 'r' to refresh, 's' to sync, '2' for the full trend")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderFitnessCard() string {
	title := cardTitleStyle.Render("Current Fitness")

	acValue := "-"
	if m.data.ACRatio.Known {
		acValue = fmt.Sprintf("%.2f", m.data.ACRatio.Value)
	}

	lines := []string{
		RenderMetric("Fitness (CTL)", fmt.Sprintf("%.0f", m.data.CTL)),
		"  " + RenderProgressBar(m.data.CTLPercent, gaugeWidth),
		RenderMetric("Fatigue (ATL)", fmt.Sprintf("%.0f", m.data.ATL)),
		"  " + RenderProgressBar(m.data.ATLPercent, gaugeWidth),
		RenderMetric("Form (TSB)", fmt.Sprintf("%.0f", m.data.TSB)),
		RenderMetric("Acute:Chronic", acValue),
	}

	if m.data.ACGaugeKnown {
		lines = append(lines, "  "+RenderProgressBar(m.data.ACGaugePercent, gaugeWidth))
	}

	lines = append(lines,
		"",
		formBandStyle(m.data.FormBand).Render(m.data.FormLabel),
		loadBandStyle(m.data.LoadBand).Render(m.data.LoadLabel),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderWeekCard() string {
	title := cardTitleStyle.Render("This Week")

	lines := []string{
		RenderMetric("Activities", fmt.Sprintf("%d", m.data.WeekActivityCount)),
		RenderMetric("Load", fmt.Sprintf("%.0f", m.data.WeekLoad)),
		RenderMetric("Time", formatDuration(m.data.WeekTime)),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(30).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderFindingsCard() string {
	title := cardTitleStyle.Render("Risk Findings")

	var lines []string
	for _, f := range m.data.Findings {
		marker := warningStyle.Render("! ")
		if f.Severity == analysis.SeverityCritical {
			marker = errorStyle.Render("!! ")
		}
		lines = append(lines, marker+f.Message)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderChart() string {
	title := cardTitleStyle.Render("Fitness & Fatigue - Last 90 Days")

	graph := asciigraph.PlotMany(
		[][]float64{m.data.CTLHistory, m.data.ATLHistory},
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
		asciigraph.SeriesLegends("CTL", "ATL"),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

func (m DashboardModel) renderRecentActivities() string {
	title := cardTitleStyle.Render("Recent Activities")

	if len(m.data.RecentActivities) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No activities yet"))
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%-10s  %-22s  %8s  %6s",
		"Date", "Name", "Time", "TRIMP"))

	rows := []string{header}
	for i, awl := range m.data.RecentActivities {
		if i >= 5 {
			break
		}

		trimp := "-"
		if awl.TRIMP != nil {
			trimp = fmt.Sprintf("%.0f", *awl.TRIMP)
		}

		row := tableRowStyle.Render(fmt.Sprintf("%-10s  %-22s  %8s  %6s",
			awl.StartDateLocal.Format("Jan 02"),
			truncateName(awl.Name, 22),
			formatDuration(awl.MovingTime),
			trimp,
		))
		rows = append(rows, row)
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}

// formBandStyle colors the TSB band label by how concerning it is.
func formBandStyle(band analysis.TSBBand) lipgloss.Style {
	switch band {
	case analysis.TSBOverloaded:
		return errorStyle
	case analysis.TSBTired:
		return warningStyle
	case analysis.TSBReady, analysis.TSBFresh:
		return successStyle
	default:
		return lipgloss.NewStyle().Foreground(mutedColor)
	}
}

// loadBandStyle colors the A:C band label.
func loadBandStyle(band analysis.ACBand) lipgloss.Style {
	switch band {
	case analysis.ACDanger:
		return errorStyle
	case analysis.ACCaution, analysis.ACLow:
		return warningStyle
	case analysis.ACOptimal:
		return successStyle
	default:
		return lipgloss.NewStyle().Foreground(mutedColor)
	}
}

func formatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func truncateName(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
