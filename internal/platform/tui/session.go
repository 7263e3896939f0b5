package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/catacombgame/catacomb/internal/assets"
	"github.com/catacombgame/catacomb/internal/config"
	"github.com/catacombgame/catacomb/internal/core"
	"github.com/catacombgame/catacomb/internal/game"
	"github.com/catacombgame/catacomb/internal/storage"
)

// sessionMode tracks which screen the session is showing.
type sessionMode int

const (
	modeMenu sessionMode = iota
	modeStats
	modeGame
)

// SessionModel manages the full flow: menu -> crawl -> menu, with the run
// history a Tab away. This is the top-level model for both local play and
// SSH sessions.
type SessionModel struct {
	lib       *assets.Library
	store     *storage.Store
	cfg       config.Config
	rc        core.RuntimeConfig
	username  string
	mode      sessionMode
	menu      MenuModel
	stats     *StatsModel
	gameModel *GameModel
	err       error
	quitting  bool
}

// NewSessionModel creates a new session model. A non-empty initialLevel
// skips the menu and descends straight into that level.
func NewSessionModel(lib *assets.Library, store *storage.Store, cfg config.Config, rc core.RuntimeConfig, username, initialLevel string) SessionModel {
	m := SessionModel{
		lib:      lib,
		store:    store,
		cfg:      cfg,
		rc:       rc,
		username: username,
		menu:     NewMenuModel(lib, rc, username),
	}

	if initialLevel != "" {
		// Init reissues the first command, so the one returned here can go.
		m.enterGame(initialLevel)
	}

	return m
}

// Init starts whichever screen the session opens on.
func (m SessionModel) Init() tea.Cmd {
	if m.quitting {
		return tea.Quit
	}
	if m.mode == modeGame && m.gameModel != nil {
		return m.gameModel.Init()
	}
	return m.menu.Init()
}

// enterGame loads the level and switches to the crawl. The library's List
// is forgiving but Load is strict, so a listed level can still fail to
// load; that surfaces here instead of leaving the player in the menu.
func (m *SessionModel) enterGame(id string) tea.Cmd {
	lvl, err := m.lib.Load(id)
	if err != nil {
		m.err = err
		m.quitting = true
		return tea.Quit
	}

	session, err := game.NewSession(lvl, m.cfg, m.rc)
	if err != nil {
		m.err = err
		m.quitting = true
		return tea.Quit
	}

	gameModel := NewGameModel(session, m.store, m.rc, m.cfg.Render.ShowFPS)
	m.gameModel = &gameModel
	m.mode = modeGame
	return gameModel.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Track window size globally so screens created later open at the
	// current size.
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.rc.ScreenW = wsm.Width
		m.rc.ScreenH = wsm.Height
	}

	switch m.mode {
	case modeGame:
		if m.gameModel != nil {
			return m.updateGame(msg)
		}
	case modeStats:
		if m.stats != nil {
			return m.updateStats(msg)
		}
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsStats() {
		stats := NewStatsModel(m.lib, m.store, m.rc.ScreenW, m.rc.ScreenH)
		m.stats = &stats
		m.mode = modeStats
		// Fresh menu so the flag does not re-trigger on return
		m.menu = NewMenuModel(m.lib, m.rc, m.username)
		return m, m.stats.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		m.rc = m.menu.Config() // Pick up any resize the menu saw
		m.menu = NewMenuModel(m.lib, m.rc, m.username)
		return m, m.enterGame(selected.ID)
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if err := m.gameModel.Err(); err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.mode = modeMenu
		m.gameModel = nil
		m.menu = NewMenuModel(m.lib, m.rc, m.username)
		return m, m.menu.Init()
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateStats handles updates when in run history mode.
func (m SessionModel) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	newStats, cmd := m.stats.Update(msg)
	if statsModel, ok := newStats.(StatsModel); ok {
		m.stats = &statsModel
	}

	if m.stats.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.stats.IsGoingBack() {
		m.mode = modeMenu
		m.stats = nil
		m.menu = NewMenuModel(m.lib, m.rc, m.username)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modeGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case modeStats:
		if m.stats != nil {
			return m.stats.View()
		}
	}
	return m.menu.View()
}

// Err returns the error that ended the session, if any.
func (m SessionModel) Err() error {
	return m.err
}

// RunSession runs the full menu/crawl flow in one program. A non-empty
// initialLevel starts play in that level directly.
func RunSession(lib *assets.Library, store *storage.Store, cfg config.Config, rc core.RuntimeConfig, initialLevel string) error {
	model := NewSessionModel(lib, store, cfg, rc, "", initialLevel)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if sm, ok := finalModel.(SessionModel); ok {
		return sm.Err()
	}
	return nil
}
