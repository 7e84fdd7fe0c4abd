package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	configdomain "actionsperf.ai/cli/internal/core/domain/config"
	"actionsperf.ai/cli/internal/interfaces/di"
)

// newDashboardCommand creates the dashboard command: an interactive
// browser over the resolved settings, their constraints, and where each
// winning value came from.
func newDashboardCommand(container *di.Container, flags *RootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive browser for the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolve(cmd.Context(), container, flags)
			if err != nil {
				return printResolveFailure(cmd, err)
			}

			model := newSettingsModel(resolved)
			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("dashboard failed: %w", err)
			}
			return nil
		},
	}
}

var (
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	detailStyle   = lipgloss.NewStyle().PaddingLeft(2)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// settingsModel holds the state for the Bubble Tea settings browser.
type settingsModel struct {
	resolved     *configdomain.Resolved
	keys         []string
	cursor       int
	windowHeight int
}

func newSettingsModel(resolved *configdomain.Resolved) settingsModel {
	return settingsModel{
		resolved: resolved,
		keys:     resolved.Keys(),
	}
}

func (m settingsModel) Init() tea.Cmd { return nil }

func (m settingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowHeight = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.keys)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = len(m.keys) - 1
		}
	}
	return m, nil
}

func (m settingsModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("ActionsPerf configuration"))
	b.WriteString(sourceStyle.Render("  " + m.resolved.ID()))
	b.WriteString("\n\n")

	for i, key := range m.keys {
		v, _ := m.resolved.Lookup(key)
		line := fmt.Sprintf("%-24s %v", key, v.Typed)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.keys) > 0 {
		v, _ := m.resolved.Lookup(m.keys[m.cursor])
		b.WriteString("\n")
		b.WriteString(detailStyle.Render(m.detail(v)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("up/down: select  q: quit"))
	return b.String()
}

func (m settingsModel) detail(v configdomain.Value) string {
	var parts []string
	parts = append(parts, v.Def.Desc)
	switch v.Def.Kind {
	case configdomain.KindInt:
		parts = append(parts, fmt.Sprintf("kind int, range %d-%d", v.Def.Min, v.Def.Max))
	case configdomain.KindEnum:
		parts = append(parts, fmt.Sprintf("kind enum: %s", strings.Join(v.Def.Enum, ", ")))
	default:
		parts = append(parts, fmt.Sprintf("kind %s", v.Def.Kind))
	}
	origin := v.Source
	if v.SourcePath != "" && v.SourcePath != v.Source {
		origin = fmt.Sprintf("%s (%s)", v.Source, v.SourcePath)
	}
	parts = append(parts, fmt.Sprintf("default %s, from %s", v.Def.Default, origin))
	return strings.Join(parts, "\n")
}
