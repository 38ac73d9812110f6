package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/barnyard-arcade/internal/core"
	"github.com/vovakirdan/barnyard-arcade/internal/registry"
	"github.com/vovakirdan/barnyard-arcade/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80 // narrower terminals get a tab strip instead
	sidebarWidth       = 20
	maxScores          = 100
	maxBouts           = 50

	// boutsTab is the pseudo game listing brawl history instead of scores.
	boutsTab = "bouts"
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
	boardHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardActive     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardActiveTab  = boardActive.Background(lipgloss.Color("57")).Padding(0, 1)
	boardIdleTab    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Records key.Binding // bouts tab: toggle per-fighter records
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Records, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Next, k.Prev}, {k.Records, k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Next:    key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev")),
		Records: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fighters")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the high scores of each game, and a last tab with
// the brawl bout history and fighter records.
type ScoreboardModel struct {
	games       []registry.GameInfo
	gameCursor  int
	store       *storage.Store
	table       table.Model
	rowCount    int
	showRecords bool
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	var games []registry.GameInfo
	for _, g := range registry.List() {
		// The 8-ball keeps no meaningful score.
		if g.ID != "eightball" {
			games = append(games, g)
		}
	}
	games = append(games, registry.GameInfo{ID: boutsTab, Title: "Bout History"})

	m := ScoreboardModel{
		games:  games,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

// showingBouts reports whether the bout history tab is selected.
func (m *ScoreboardModel) showingBouts() bool {
	return m.games[m.gameCursor].ID == boutsTab
}

func (m *ScoreboardModel) showSidebar() bool {
	return m.width >= minWidthForSidebar
}

// reload rebuilds the table for the selected tab from the store.
func (m *ScoreboardModel) reload() {
	var (
		cols []table.Column
		rows []table.Row
	)
	switch {
	case m.showingBouts() && m.showRecords:
		cols, rows = m.recordRows()
	case m.showingBouts():
		cols, rows = m.boutRows()
	default:
		cols, rows = m.scoreRows(m.games[m.gameCursor].ID)
	}

	m.table = table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(core.Max(3, m.height-8)),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	m.table.SetStyles(st)
	m.rowCount = len(rows)
}

func (m *ScoreboardModel) scoreRows(gameID string) ([]table.Column, []table.Row) {
	dateW := m.width - 30
	if m.showSidebar() {
		dateW -= sidebarWidth + 3
	}
	cols := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 12},
		{Title: "Date", Width: core.Clamp(dateW, 12, 20)},
	}
	if m.store == nil {
		return cols, nil
	}

	// Query errors leave the table empty; the placeholder covers both cases.
	scores, _ := m.store.TopScores(gameID, maxScores)
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{fmt.Sprintf("#%d", i+1), fmt.Sprint(s.Score), s.CreatedAt.Format("Jan 02 15:04")}
	}
	return cols, rows
}

func (m *ScoreboardModel) boutRows() ([]table.Column, []table.Row) {
	cols := []table.Column{
		{Title: "Winner", Width: 10},
		{Title: "Loser", Width: 10},
		{Title: "How", Width: 5},
		{Title: "HP", Width: 4},
		{Title: "Time", Width: 6},
		{Title: "Mode", Width: 6},
		{Title: "Date", Width: 13},
	}
	if m.store == nil {
		return cols, nil
	}

	bouts, _ := m.store.RecentBouts(maxBouts)
	rows := make([]table.Row, len(bouts))
	for i, b := range bouts {
		winner, loser, hp := b.P1, b.P2, b.P1Health
		if b.Winner == core.Player2 {
			winner, loser, hp = b.P2, b.P1, b.P2Health
		}
		rows[i] = table.Row{
			winner,
			loser,
			b.Reason,
			fmt.Sprintf("%.0f", hp),
			fmt.Sprintf("%.0fs", b.Duration.Seconds()),
			b.Versus,
			b.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return cols, rows
}

func (m *ScoreboardModel) recordRows() ([]table.Column, []table.Row) {
	cols := []table.Column{
		{Title: "Fighter", Width: 10},
		{Title: "Wins", Width: 5},
		{Title: "Losses", Width: 6},
		{Title: "KOs", Width: 4},
		{Title: "Win %", Width: 6},
	}
	if m.store == nil {
		return cols, nil
	}

	records, _ := m.store.FighterRecords()
	rows := make([]table.Row, len(records))
	for i, r := range records {
		pct := 0.0
		if n := r.Wins + r.Losses; n > 0 {
			pct = 100 * float64(r.Wins) / float64(n)
		}
		rows[i] = table.Row{r.Character, fmt.Sprint(r.Wins), fmt.Sprint(r.Losses), fmt.Sprint(r.Knockouts), fmt.Sprintf("%.0f%%", pct)}
	}
	return cols, rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.gameCursor = (m.gameCursor + 1) % len(m.games)
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.gameCursor = (m.gameCursor - 1 + len(m.games)) % len(m.games)
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Records):
			if m.showingBouts() {
				m.showRecords = !m.showRecords
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) title() string {
	switch {
	case m.showingBouts() && m.showRecords:
		return "BARNYARD BRAWL - Fighter Records"
	case m.showingBouts():
		return "BARNYARD BRAWL - Recent Bouts"
	}
	return "HIGH SCORES - " + m.games[m.gameCursor].Title
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render(centerText(m.title(), m.width)))
	b.WriteString("\n\n")

	body := boardFrameStyle.Render(m.tableView())
	if m.showSidebar() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", body))
	} else {
		b.WriteString(centerText(m.tabStrip(), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(body, m.width))
	}

	b.WriteString("\n")
	b.WriteString(boardHelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// sidebar lists the tabs vertically.
func (m ScoreboardModel) sidebar() string {
	var sb strings.Builder
	sb.WriteString("Games\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	for i, g := range m.games {
		sb.WriteString("\n")
		name := truncate(g.Title, sidebarWidth-6)
		if i == m.gameCursor {
			sb.WriteString(boardActive.Render("> " + name))
		} else {
			sb.WriteString("  " + name)
		}
	}
	return boardFrameStyle.Width(sidebarWidth).Render(sb.String())
}

// tabStrip lists the tabs in one line, or just the current one when they
// do not fit.
func (m ScoreboardModel) tabStrip() string {
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.gameCursor {
			tabs[i] = boardActiveTab.Render(truncate(g.Title, 10))
		} else {
			tabs[i] = boardIdleTab.Render(truncate(g.Title, 10))
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		return fmt.Sprintf("< %s >", m.games[m.gameCursor].Title)
	}
	return line
}

func (m ScoreboardModel) tableView() string {
	if m.rowCount > 0 {
		return m.table.View()
	}
	if m.showingBouts() {
		return boardEmptyStyle.Render("No bouts fought yet.\nPick a fighter from the menu!")
	}
	return boardEmptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
