// Package game drives a crawl session. It owns the camera, applies
// movement and jump kinematics against the level grid, and layers the
// minimap, HUD and pause overlays on top of the rendered frame.
package game

import (
	"fmt"
	"math"
	"time"

	"github.com/catacombgame/catacomb/internal/config"
	"github.com/catacombgame/catacomb/internal/core"
	"github.com/catacombgame/catacomb/internal/raycast"
	"github.com/catacombgame/catacomb/internal/world"
)

// State is a snapshot of the session for the platform layer.
type State struct {
	Ticks  int  // simulation ticks advanced (pause excluded)
	Paused bool
}

// Session runs one level with one camera. It is not safe for concurrent
// use; the platform layer drives it from a single event loop.
type Session struct {
	level *world.Level
	cfg   config.Config
	rc    core.RuntimeConfig

	cam      *raycast.Camera
	renderer *raycast.Renderer
	sprites  []world.Sprite

	minimapOn bool
	paused    bool
	ticks     int
	dt        float64
}

// NewSession validates the level, resolves the palette and builds the
// renderer. The runtime config supplies the tick rate the kinematics
// integrate at.
func NewSession(level *world.Level, cfg config.Config, rc core.RuntimeConfig) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := level.Validate(); err != nil {
		return nil, err
	}
	palette, err := raycast.ParsePalette(cfg.Render.Palette)
	if err != nil {
		return nil, err
	}

	s := &Session{level: level, cfg: cfg}
	s.renderer = raycast.NewRenderer(level, raycast.Params{
		Shader: raycast.Shader{
			FalloffPerUnit: cfg.Shading.FalloffPerUnit,
			MinBrightness:  cfg.Shading.MinBrightness,
			SideDarken:     cfg.Shading.SideDarken,
		},
		Palette:   palette,
		ProjScale: cfg.Render.ProjectionScale,
		Workers:   cfg.Render.Workers,
		Floor:     cfg.Render.Floor,
		Textures:  cfg.Textures.Enabled,
	})
	s.Reset(rc)
	return s, nil
}

// Reset initializes or restarts the session: camera back at the level
// start, sprites restored, toggles back to their configured state.
func (s *Session) Reset(rc core.RuntimeConfig) {
	s.rc = rc
	if s.rc.TickRate <= 0 {
		s.rc.TickRate = 60
	}
	s.dt = 1.0 / float64(s.rc.TickRate)

	start := s.level.Start
	fov := s.cfg.Render.FOVDegrees * math.Pi / 180
	s.cam = raycast.NewCamera(raycast.Vec2{X: start.X, Y: start.Y}, start.Angle, fov)

	s.sprites = append([]world.Sprite(nil), s.level.Sprites...)
	s.renderer.SetTextures(s.cfg.Textures.Enabled)
	s.minimapOn = s.cfg.Minimap.Enabled
	s.paused = false
	s.ticks = 0
}

// Step advances the session by one tick of input.
func (s *Session) Step(in core.InputFrame) State {
	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if in.Has(core.ActionToggleTextures) {
		s.renderer.SetTextures(!s.renderer.TexturesOn())
	}
	if in.Has(core.ActionToggleMinimap) {
		s.minimapOn = !s.minimapOn
	}

	if s.paused {
		return s.State()
	}

	s.ticks++

	// Turning works in the air; walking and jumping need the ground.
	if in.Has(core.ActionTurnLeft) {
		s.cam.Rotate(-s.cfg.Movement.TurnSpeed * s.dt)
	}
	if in.Has(core.ActionTurnRight) {
		s.cam.Rotate(s.cfg.Movement.TurnSpeed * s.dt)
	}

	if s.grounded() {
		s.walk(in)
		if in.Has(core.ActionJump) {
			s.cam.VSpeed = s.cfg.Jump.Impulse
		}
	}

	// Apply vertical kinematics
	s.cam.Height += s.cam.VSpeed * s.dt
	s.cam.VSpeed -= s.cfg.Jump.Gravity * s.dt
	if s.cam.Height <= 0 {
		s.cam.Height = 0
		s.cam.VSpeed = 0
	}

	return s.State()
}

// grounded reports whether the camera is standing on the floor.
func (s *Session) grounded() bool {
	return s.cam.Height == 0 && s.cam.VSpeed == 0
}

// walk applies the movement intents as one displacement, collision
// resolved per axis so walls are slid along instead of stopping dead.
func (s *Session) walk(in core.InputFrame) {
	var dir raycast.Vec2
	if in.Has(core.ActionForward) {
		dir = dir.Add(s.cam.Dir)
	}
	if in.Has(core.ActionBackward) {
		dir = dir.Sub(s.cam.Dir)
	}

	// Screen-right is the unit perpendicular of the facing direction.
	right := raycast.Vec2{X: -s.cam.Dir.Y, Y: s.cam.Dir.X}
	if in.Has(core.ActionStrafeRight) {
		dir = dir.Add(right)
	}
	if in.Has(core.ActionStrafeLeft) {
		dir = dir.Sub(right)
	}

	if dir.X == 0 && dir.Y == 0 {
		return
	}
	delta := dir.Scale(s.cfg.Movement.MoveSpeed * s.dt)
	s.cam.Pos = moveWithSlide(s.level.Grid, s.cam.Pos, delta)
}

// Render draws the frame: world first, then minimap, HUD and pause box.
func (s *Session) Render(dst *core.Screen) error {
	if err := s.renderer.Render(dst, s.cam, s.sprites); err != nil {
		return err
	}
	if s.minimapOn {
		s.drawMinimap(dst)
	}
	dst.DrawText(2, 0, fmt.Sprintf(" %s ", s.level.Name))
	if s.paused {
		s.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	return nil
}

// drawCenteredMessage draws a message box in the center of the screen.
func (s *Session) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// State returns the current session snapshot.
func (s *Session) State() State {
	return State{
		Ticks:  s.ticks,
		Paused: s.paused,
	}
}

// Level returns the level being played.
func (s *Session) Level() *world.Level {
	return s.level
}

// Elapsed converts the ticks played into wall-clock time at the
// configured tick rate.
func (s *Session) Elapsed() time.Duration {
	return time.Duration(s.ticks) * time.Second / time.Duration(s.rc.TickRate)
}
