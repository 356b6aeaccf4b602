package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sunatthegilddotcom/wiki-tSNE/internal/domain"
)

// Model is the Bubble Tea model for the similarity-map preview. The map tab
// plots the normalized points on a character canvas; the list tab shows the
// document names with their coordinates.
type Model struct {
	points   []domain.Point
	viewport viewport.Model
	showList bool
	width    int
	height   int
	ready    bool
}

// New creates a preview model for the given points.
func New(points []domain.Point) Model {
	vp := viewport.New(0, 0)
	return Model{points: points, viewport: vp}
}

func (m Model) Init() tea.Cmd { return nil }

// Update handles key and window events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 4
		m.viewport.SetContent(m.listContent())
		m.ready = true
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.showList = !m.showList
		default:
			if m.showList {
				var cmd tea.Cmd
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
		}
	}
	return m, nil
}

// View renders the active tab.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	header := titleStyle.Render(fmt.Sprintf("wiki-tsne — %d documents", len(m.points)))
	footer := statusStyle.Render("tab: map/list  q: quit")
	var body string
	if m.showList {
		body = m.viewport.View()
	} else {
		body = canvasStyle.Render(m.canvas())
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// canvas draws the points on a width×height character grid. Coordinates are
// already in [0, 1], so plotting is a straight scale to the cell grid.
func (m Model) canvas() string {
	w := m.width - 4
	h := m.height - 6
	if w < 20 {
		w = 20
	}
	if h < 8 {
		h = 8
	}
	grid := make([][]rune, h)
	for i := range grid {
		grid[i] = make([]rune, w)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}
	for _, p := range m.points {
		col := int(p.X * float64(w-1))
		// terminal rows grow downward, so flip the y axis
		row := int((1 - p.Y) * float64(h-1))
		if grid[row][col] == ' ' {
			grid[row][col] = '•'
		} else {
			grid[row][col] = '●'
		}
	}
	lines := make([]string, h)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return pointStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) listContent() string {
	var b strings.Builder
	for _, p := range m.points {
		fmt.Fprintf(&b, "%6.3f  %6.3f  %s\n", p.X, p.Y, p.ID)
	}
	return b.String()
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF87D7")).
			Padding(0, 1)

	canvasStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F5FAF"))

	pointStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF8700"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C6C6C")).
			Padding(0, 1)
)
