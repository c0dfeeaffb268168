package tui

import (
	"fmt"
	"strings"

	"runload/internal/service"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// TrendModel is the full fitness history screen model
type TrendModel struct {
	queryService *service.QueryService
	data         *service.TrendData
	viewport     viewport.Model
	loading      bool
	err          error
	width        int
	height       int
	ready        bool
}

// NewTrendModel creates a new trend model
func NewTrendModel(qs *service.QueryService, width, height int) TrendModel {
	m := TrendModel{
		queryService: qs,
		loading:      true,
		width:        width,
		height:       height,
	}

	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6)
		m.ready = true
	}

	return m
}

// Init initializes the trend screen
func (m TrendModel) Init() tea.Cmd {
	return m.loadTrend
}

type trendLoadedMsg struct {
	data *service.TrendData
	err  error
}

func (m TrendModel) loadTrend() tea.Msg {
	data, err := m.queryService.GetTrendData()
	return trendLoadedMsg{data: data, err: err}
}

// Update handles messages
func (m TrendModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case trendLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		if m.data != nil {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadTrend
		}
	}

	// Handle viewport scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the trend screen
func (m TrendModel) View() string {
	if m.loading {
		return "\n  Loading fitness trend..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	footer := statusStyle.Render("  j/k or arrows: scroll  r: refresh")

	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m TrendModel) renderContent() string {
	if m.data == nil || len(m.data.States) == 0 {
		return m.renderEmptyState()
	}

	var sections []string

	sections = append(sections, "")
	sections = append(sections, cardTitleStyle.Render("Fitness Trend"))
	sections = append(sections, "")
	sections = append(sections, m.renderCharts())
	sections = append(sections, m.renderHistoryTable())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m TrendModel) renderEmptyState() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, cardTitleStyle.Render("Fitness Trend"))
	lines = append(lines, "")

	emptyStyle := lipgloss.NewStyle().Foreground(mutedColor)
	lines = append(lines, emptyStyle.Render("  No fitness history yet."))
	lines = append(lines, emptyStyle.Render("  Run a sync to pull activities and compute training load."))
	lines = append(lines, "")

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m TrendModel) renderCharts() string {
	var lines []string

	states := m.data.States
	ctl := make([]float64, len(states))
	atl := make([]float64, len(states))
	tsb := make([]float64, len(states))
	for i, s := range states {
		ctl[i] = s.CTL
		atl[i] = s.ATL
		tsb[i] = s.TSB
	}

	width := 70
	if m.width > 0 && m.width-12 < width {
		width = m.width - 12
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(secondaryColor)
	lines = append(lines, headerStyle.Render("── Fitness (CTL) vs Fatigue (ATL)"))
	lines = append(lines, asciigraph.PlotMany(
		[][]float64{ctl, atl},
		asciigraph.Height(10),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
		asciigraph.SeriesLegends("CTL", "ATL"),
	))
	lines = append(lines, "")

	lines = append(lines, headerStyle.Render("── Form (TSB)"))
	lines = append(lines, asciigraph.Plot(tsb,
		asciigraph.Height(8),
		asciigraph.Width(width),
		asciigraph.Precision(0),
	))
	lines = append(lines, "")

	return strings.Join(lines, "\n")
}

// renderHistoryTable lists the last few weeks of daily states, newest first.
func (m TrendModel) renderHistoryTable() string {
	var lines []string

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(secondaryColor)
	lines = append(lines, headerStyle.Render("── Recent Days"))

	header := fmt.Sprintf("  %-12s  %6s  %6s  %6s  %6s  %s", "Date", "CTL", "ATL", "TSB", "A:C", "Form")
	lines = append(lines, lipgloss.NewStyle().Foreground(primaryColor).Render(header))

	states := m.data.States
	bands := m.data.Bands
	shown := 28
	if len(states) < shown {
		shown = len(states)
	}

	for i := len(states) - 1; i >= len(states)-shown; i-- {
		s := states[i]
		ac := "-"
		if s.ACRatio.Known {
			ac = fmt.Sprintf("%.2f", s.ACRatio.Value)
		}
		row := fmt.Sprintf("  %-12s  %6.0f  %6.0f  %6.0f  %6s  %s",
			s.Date.Format("Jan 02"),
			s.CTL, s.ATL, s.TSB, ac,
			formBandStyle(bands[i]).Render(string(bands[i])),
		)
		lines = append(lines, row)
	}
	lines = append(lines, "")

	return strings.Join(lines, "\n")
}
