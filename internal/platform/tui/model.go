// Package tui provides the Bubble Tea front end for 2048, both for a local
// terminal and for SSH sessions served through Wish.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/merge2048/internal/core"
	"github.com/vovakirdan/merge2048/internal/game"
	"github.com/vovakirdan/merge2048/internal/storage"
)

// Config describes one session.
type Config struct {
	ScreenW int
	ScreenH int

	// Seed for the first board; 0 means use the current time.
	// Restarts always draw a fresh time-based seed.
	Seed int64

	// Player is recorded with finished games.
	Player string

	// ScreenshotDir receives ctrl+s dumps; empty means ~/.merge2048/screenshots.
	ScreenshotDir string
}

// DefaultConfig returns a Config sized for a classic 80x24 terminal.
func DefaultConfig() Config {
	return Config{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// Model is the Bubble Tea model for a 2048 session.
type Model struct {
	game       *game.Game
	screen     *core.Screen
	store      *storage.Store
	config     Config
	keys       KeyMap
	help       help.Model
	status     string
	quitting   bool
	scoreSaved bool // Whether the current finished game has been recorded
}

// NewModel creates a session. store may be nil to disable score saving.
func NewModel(store *storage.Store, cfg Config) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:   game.New(cfg.Seed),
		screen: core.NewScreen(cfg.ScreenW, screenHeight(cfg.ScreenH)),
		store:  store,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   h,
	}
}

// screenHeight leaves room for the status and help lines.
func screenHeight(total int) int {
	return max(total-2, 0)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, screenHeight(msg.Height))
		m.help.Width = msg.Width
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Screenshot):
		path, err := m.saveScreenshot()
		if err != nil {
			m.status = "screenshot failed: " + err.Error()
		} else {
			m.status = "saved " + path
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.restart()
		return m, nil
	}

	if dir, ok := m.keys.Direction(msg); ok {
		m.status = ""
		if m.game.Step(dir) && m.game.State().GameOver {
			m.finish()
		}
	}

	return m, nil
}

// finish records the finished game once and enables restart.
func (m *Model) finish() {
	m.keys.Restart.SetEnabled(true)

	st := m.game.State()
	if m.scoreSaved || st.Score == 0 {
		return
	}
	m.scoreSaved = true

	if m.store == nil {
		return
	}
	_, err := m.store.SaveScore(storage.ScoreEntry{
		GameID:  game.ID,
		Player:  m.config.Player,
		Score:   st.Score,
		MaxTile: st.MaxTile,
	})
	if err != nil {
		m.status = "score not saved: " + err.Error()
	}
}

func (m *Model) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config.Seed)
	m.keys.Restart.SetEnabled(false)
	m.scoreSaved = false
	m.status = ""
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	dir := m.config.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".merge2048", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", game.ID, timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// Game exposes the running game, mainly for tests.
func (m Model) Game() *game.Game {
	return m.game
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.status + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program for a local terminal.
func Run(store *storage.Store, cfg Config) error {
	p := tea.NewProgram(
		NewModel(store, cfg),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
