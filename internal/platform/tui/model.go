package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/barnyard-arcade/internal/core"
	"github.com/vovakirdan/barnyard-arcade/internal/registry"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
	"github.com/vovakirdan/barnyard-arcade/internal/storage"
)

// Options wires optional collaborators into a Model.
type Options struct {
	// Store receives scores and bouts. Nil disables persistence.
	Store *storage.Store
	// Sound receives every event the game emits. Nil is silent.
	Sound sim.Sink
	// Versus hands the WASD cluster to a second local player.
	Versus bool
	// InSession makes Esc return to the menu instead of quitting.
	InSession bool
}

// Model is the Bubble Tea model for running arcade games.
type Model struct {
	game      registry.Game
	prompt    registry.TextPrompt
	input     textinput.Model
	screen    *core.Screen
	opts      Options
	config    core.RuntimeConfig
	keys      *KeyMapper
	frame     core.MultiInputFrame
	gameState core.GameState

	quitting   bool
	backToMenu bool
	scoreSaved bool // score stored for the current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:   opts,
		config: cfg,
		keys:   NewKeyMapper(opts.Versus),
		frame:  core.NewMultiInputFrame(),
	}
	if p, ok := game.(registry.TextPrompt); ok {
		m.prompt = p
		m.input = textinput.New()
		m.input.Placeholder = p.Prompt()
		m.input.CharLimit = 120
		m.input.Width = core.Max(10, cfg.ScreenW-4)
		m.input.Focus()
		m.screen.Resize(cfg.ScreenW, core.Max(1, cfg.ScreenH-2))
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)
	if m.prompt != nil {
		return tea.Batch(textinput.Blink, tickCmd(m.config.TickRate))
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompt != nil {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	if m.prompt != nil {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "esc":
		return m.leave()
	}

	if m.keys.MapKeyToMultiFrame(msg, &m.frame) {
		return m.quit()
	}
	return m, nil
}

// handlePromptKey sends typing to the input box; Enter submits the line.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.quit()
	case tea.KeyEsc:
		return m.leave()
	case tea.KeyEnter:
		if m.prompt.Submit(m.input.Value()) {
			m.input.Reset()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) leave() (tea.Model, tea.Cmd) {
	if m.opts.InSession {
		m.saveScore()
		m.backToMenu = true
		return m, nil
	}
	return m.quit()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.saveScore()
	m.quitting = true
	return m, tea.Quit
}

// handleResize processes window resize events. A game in progress restarts
// at the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	h := msg.Height
	if m.prompt != nil {
		h = core.Max(1, h-2)
		m.input.Width = core.Max(10, msg.Width-4)
	}
	m.screen.Resize(msg.Width, h)

	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	if m.frame.Player1().Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.frame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.frame)
	m.gameState = result.State
	m.collect()

	if m.gameState.GameOver {
		m.saveScore()
	}

	m.frame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// collect forwards the tick's events to the sound sink and stores finished
// bouts.
func (m *Model) collect() {
	if src, ok := m.game.(registry.EventSource); ok {
		for _, ev := range src.TakeEvents() {
			if m.opts.Sound != nil {
				m.opts.Sound.Emit(ev)
			}
		}
	}
	if rep, ok := m.game.(registry.BoutReporter); ok {
		for _, b := range rep.TakeBouts() {
			if m.opts.Store != nil {
				//nolint:errcheck // Best-effort save, game continues regardless
				m.opts.Store.SaveBout(b)
			}
		}
	}
}

// saveScore stores the current score once per game.
func (m *Model) saveScore() {
	if m.scoreSaved || m.gameState.Score <= 0 {
		return
	}
	if m.opts.Store != nil {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.opts.Store.SaveScore(m.game.ID(), m.gameState.Score)
	}
	m.scoreSaved = true
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	out := RenderScreen(m.screen)
	if m.prompt != nil {
		out += "\n\n" + m.input.View()
	}
	return out
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool { return m.backToMenu }

// State returns the game state after the last tick.
func (m Model) State() core.GameState { return m.gameState }

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
