package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/catacombgame/catacomb/internal/core"
	"github.com/catacombgame/catacomb/internal/game"
	"github.com/catacombgame/catacomb/internal/storage"
)

// GameModel is the Bubble Tea model for one crawl through a level.
// It owns the frame buffer, feeds buffered input to the session on each
// tick, and logs the run when the player leaves.
type GameModel struct {
	session    *game.Session
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	showFPS    bool
	fps        float64
	lastTick   time.Time
	err        error
	quitting   bool
	backToMenu bool
	recorded   bool
}

// NewGameModel creates a model around an already constructed session.
func NewGameModel(session *game.Session, store *storage.Store, cfg core.RuntimeConfig, showFPS bool) GameModel {
	m := GameModel{
		session:    session,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		showFPS:    showFPS,
	}

	// Draw the first frame so the level is visible before the first tick.
	//nolint:errcheck // A failing renderer surfaces again on the first tick
	session.Render(m.screen)

	return m
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The renderer sizes itself to the frame buffer each frame, so
		// the crawl continues across resizes.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.recordRun()
		m.quitting = true
		return m, tea.Quit
	}

	// Esc leaves the crawl; the run is logged either way.
	if m.inputFrame.Has(core.ActionBack) {
		m.recordRun()
		m.backToMenu = true
	}

	return m, nil
}

// handleTick advances the simulation by one tick and redraws the frame.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	now := time.Now()
	if !m.lastTick.IsZero() {
		if d := now.Sub(m.lastTick); d > 0 {
			m.fps = float64(time.Second) / float64(d)
		}
	}
	m.lastTick = now

	m.session.Step(m.inputFrame)
	m.inputFrame.Clear()

	if err := m.session.Render(m.screen); err != nil {
		m.err = err
		m.recordRun()
		m.quitting = true
		return m, tea.Quit
	}
	if m.showFPS {
		m.drawFPS()
	}

	return m, tickCmd(m.config.TickRate)
}

// drawFPS draws the measured tick rate in the top-right corner, mirroring
// the level name HUD on the left.
func (m *GameModel) drawFPS() {
	if m.fps <= 0 {
		return
	}
	label := fmt.Sprintf(" %.1f fps ", m.fps)
	m.screen.DrawText(m.screen.Width()-len(label)-2, 0, label)
}

// recordRun logs the finished run once. Zero-tick runs are not worth a row.
func (m *GameModel) recordRun() {
	if m.recorded || m.store == nil {
		return
	}
	st := m.session.State()
	if st.Ticks == 0 {
		return
	}
	//nolint:errcheck // Best-effort log, leaving the crawl proceeds regardless
	m.store.RecordSession(m.session.Level().ID, st.Ticks, m.session.Elapsed())
	m.recorded = true
}

// View renders the current frame.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	return RenderScreen(m.screen)
}

// Err returns the error that ended the crawl, if any.
func (m GameModel) Err() error {
	return m.err
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
