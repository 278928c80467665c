package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ravenhall-io/notionctl/internal/observability"
	"github.com/spf13/cobra"
)

// Dashboard panel indices.
const (
	panelUsage = iota
	panelRecent
	panelCount
)

type dashboardModel struct {
	activePanel int
	width       int
	height      int

	// Data.
	usage  *usageSnapshot
	recent []opSnapshot

	// State.
	loading bool
	err     error
}

type usageSnapshot struct {
	operations map[string]int
	errors     map[string]int
	entryCount int
}

type opSnapshot struct {
	op      string
	level   string
	message string
	time    string
}

// dataLoadedMsg carries loaded data back to the model.
type dataLoadedMsg struct {
	usage  *usageSnapshot
	recent []opSnapshot
	err    error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	levelInfo  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	levelError = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel() dashboardModel {
	return dashboardModel{
		activePanel: panelUsage,
		loading:     true,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadDashboardData
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, loadDashboardData
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.usage = msg.usage
		m.recent = msg.recent
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" notionctl Dashboard ")
	help := helpStyle.Render("tab: switch panel | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading data...\n\n%s", title, help)
	}

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	usagePanel := m.renderUsagePanel()
	recentPanel := m.renderRecentPanel()

	availableWidth := m.width - 2

	var body string
	if availableWidth > 100 {
		// Horizontal layout: two columns.
		colWidth := availableWidth / 2
		usagePanel = m.applyPanelStyle(panelUsage, usagePanel, colWidth-4)
		recentPanel = m.applyPanelStyle(panelRecent, recentPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, usagePanel, recentPanel)
	} else {
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		usagePanel = m.applyPanelStyle(panelUsage, usagePanel, panelWidth)
		recentPanel = m.applyPanelStyle(panelRecent, recentPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, usagePanel, recentPanel)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderUsagePanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("API usage (7d)"))
	b.WriteString("\n")

	if m.usage == nil || m.usage.entryCount == 0 {
		b.WriteString("  No operations recorded.")
		return b.String()
	}

	ops := make([]string, 0, len(m.usage.operations))
	for op := range m.usage.operations {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	for _, op := range ops {
		line := fmt.Sprintf("  %-18s %d", op, m.usage.operations[op])
		if errs := m.usage.errors[op]; errs > 0 {
			line += levelError.Render(fmt.Sprintf("  (%d failed)", errs))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n  Total: %d", m.usage.entryCount))

	return b.String()
}

func (m dashboardModel) renderRecentPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Recent operations"))
	b.WriteString("\n")

	if len(m.recent) == 0 {
		b.WriteString("  No recent operations.")
		return b.String()
	}

	for _, op := range m.recent {
		level := levelInfo.Render("[ok]")
		if op.level == "ERROR" {
			level = levelError.Render("[err]")
		}
		b.WriteString(fmt.Sprintf("  %s %s %-18s %s\n", op.time, level, op.op, op.message))
	}

	return b.String()
}

// recentOpsShown caps the recent-operations panel length.
const recentOpsShown = 15

func loadDashboardData() tea.Msg {
	var result dataLoadedMsg

	if UsageCalc != nil {
		since := time.Now().UTC().AddDate(0, 0, -7)
		usage, err := UsageCalc.Calculate(since)
		if err != nil {
			result.err = fmt.Errorf("loading usage: %w", err)
			return result
		}
		result.usage = &usageSnapshot{
			operations: usage.Operations,
			errors:     usage.Errors,
			entryCount: usage.EntryCount,
		}
	}

	if AuditLog != nil {
		entries, err := AuditLog.Read(observability.EntryFilter{})
		if err != nil {
			result.err = fmt.Errorf("loading audit entries: %w", err)
			return result
		}

		// Newest first, capped.
		start := len(entries) - recentOpsShown
		if start < 0 {
			start = 0
		}
		for i := len(entries) - 1; i >= start; i-- {
			e := entries[i]
			msg := ""
			if e.Message != e.Op {
				msg = e.Message
			}
			result.recent = append(result.recent, opSnapshot{
				op:      e.Op,
				level:   e.Level,
				message: msg,
				time:    e.Time.Format("01-02 15:04"),
			})
		}
	}

	return result
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI view of API usage and recent operations",
	Long: `Launch an interactive terminal dashboard showing Notion API usage
counters and the most recent audited operations.

Navigate between panels with Tab, refresh with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if AuditLog == nil {
			return fmt.Errorf("audit log not initialized (audit may be disabled in .notionrc.yaml)")
		}
		p := tea.NewProgram(newDashboardModel(), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
