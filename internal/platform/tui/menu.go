package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/barnyard-arcade/internal/config"
	"github.com/vovakirdan/barnyard-arcade/internal/core"
	"github.com/vovakirdan/barnyard-arcade/internal/games/brawl"
	"github.com/vovakirdan/barnyard-arcade/internal/games/ocean"
	"github.com/vovakirdan/barnyard-arcade/internal/registry"
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Versus bool // a second local player holds WASD
}

// Selection is what the player picked, including per-game options.
type Selection struct {
	MenuItem
	Fighters   [2]string // brawl character ids
	StartLevel int       // ocean level
}

// Apply hands the options to the game packages before the game is created.
func (s Selection) Apply() {
	switch s.GameID {
	case "brawl", "brawl2p":
		brawl.SetFighters(s.Fighters[0], s.Fighters[1])
	case "ocean":
		ocean.SetStartLevel(s.StartLevel)
	}
}

// MenuModel is the Bubble Tea model for the game picker menu. Left/Right
// cycles the highlighted game's option: seat 1's fighter or the ocean start
// level. A/D cycles seat 2's fighter.
type MenuModel struct {
	items  []MenuItem
	cursor int
	width  int
	height int
	config core.RuntimeConfig
	keys   *KeyMapper

	roster     []config.Character
	fighters   [2]int
	level      int
	levelCount int

	quitting       bool
	selected       *Selection
	openScoreboard bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title, Versus: g.ID == "brawl2p"})
	}

	brawlCfg, err := brawl.LoadConfig()
	if err != nil {
		brawlCfg = config.DefaultBrawlConfig()
	}
	oceanCfg, err := ocean.LoadConfig()
	if err != nil {
		oceanCfg = config.DefaultOceanConfig()
	}

	m := MenuModel{
		items:      items,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		keys:       NewKeyMapper(false),
		roster:     brawlCfg.Roster,
		level:      1,
		levelCount: oceanCfg.Gameplay.Levels,
	}
	p1, p2 := brawl.Fighters()
	m.fighters = [2]int{m.rosterIndex(p1), m.rosterIndex(p2)}
	return m
}

func (m MenuModel) rosterIndex(id string) int {
	for i, c := range m.roster {
		if c.ID == id {
			return i
		}
	}
	return 0
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.cycle(0, -1)
	case MenuActionRight:
		m.cycle(0, 1)
	case MenuActionAltLeft:
		m.cycle(1, -1)
	case MenuActionAltRight:
		m.cycle(1, 1)

	case MenuActionSelect:
		if len(m.items) > 0 {
			sel := m.selection()
			m.selected = &sel
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// cycle moves the highlighted game's option by step, wrapping around.
func (m *MenuModel) cycle(seat, step int) {
	if len(m.items) == 0 {
		return
	}
	switch m.items[m.cursor].GameID {
	case "brawl", "brawl2p":
		if n := len(m.roster); n > 0 {
			m.fighters[seat] = (m.fighters[seat] + step + n) % n
		}
	case "ocean":
		if seat == 0 && m.levelCount > 0 {
			m.level = (m.level-1+step+m.levelCount)%m.levelCount + 1
		}
	}
}

func (m MenuModel) selection() Selection {
	sel := Selection{MenuItem: m.items[m.cursor], StartLevel: m.level}
	if len(m.roster) > 0 {
		sel.Fighters = [2]string{m.roster[m.fighters[0]].ID, m.roster[m.fighters[1]].ID}
	}
	return sel
}

// optionLine describes the highlighted game's option, if it has one.
func (m MenuModel) optionLine() string {
	if len(m.items) == 0 {
		return ""
	}
	switch m.items[m.cursor].GameID {
	case "brawl", "brawl2p":
		if len(m.roster) == 0 {
			return ""
		}
		p2 := "CPU"
		if m.items[m.cursor].Versus {
			p2 = "P2"
		}
		return fmt.Sprintf("< %s >  vs  < %s > (%s)",
			m.roster[m.fighters[0]].Name, m.roster[m.fighters[1]].Name, p2)
	case "ocean":
		if m.level == m.levelCount {
			return fmt.Sprintf("< Start at level %d: the shark >", m.level)
		}
		return fmt.Sprintf("< Start at level %d >", m.level)
	}
	return ""
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	menuOptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	menuHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerStyled(menuTitleStyle, "  B A R N Y A R D   A R C A D E  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			b.WriteString(centerStyled(menuCursorStyle, "> "+item.Title, m.width))
		} else {
			b.WriteString(centerText(line, m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if opt := m.optionLine(); opt != "" {
		b.WriteString(centerStyled(menuOptionStyle, opt, m.width))
	}
	b.WriteString("\n\n")
	controls := "Up/Down: Navigate  |  Left/Right, A/D: Options  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerStyled(menuHelpStyle, controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selection, or nil if none was made.
func (m MenuModel) Selected() *Selection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

func centerStyled(style lipgloss.Style, text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return style.Render(text)
	}
	return strings.Repeat(" ", (width-w)/2) + style.Render(text)
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Selection       Selection
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting(), m.Selected() == nil:
		result.Quit = true
	default:
		result.Selection = *m.Selected()
	}
	return result, nil
}
