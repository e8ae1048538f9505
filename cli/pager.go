package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	pagerTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	pagerHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			PaddingLeft(2)
)

// chromeHeight is the number of lines used by the title and help bars
const chromeHeight = 2

// pagerModel shows rendered code in a scrollable viewport
type pagerModel struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

// newPager creates a new pager model with the given content
func newPager(title, content string) *pagerModel {
	return &pagerModel{
		title:   title,
		content: content,
	}
}

func (m *pagerModel) Init() tea.Cmd {
	return nil
}

func (m *pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}

	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chromeHeight)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chromeHeight
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *pagerModel) View() string {
	if !m.ready {
		return "\nInitializing..."
	}
	help := fmt.Sprintf("%3.f%% • ↑/k up • ↓/j down • space/f forward • b back • g top • G bottom • q quit",
		m.viewport.ScrollPercent()*100)
	return pagerTitleStyle.Render(m.title) + "\n" +
		m.viewport.View() + "\n" +
		pagerHelpStyle.Render(help)
}

// RunPager starts the pager program with the given content
func RunPager(title, content string) error {
	p := tea.NewProgram(
		newPager(title, content),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
