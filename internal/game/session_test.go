package game

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/catacombgame/catacomb/internal/config"
	"github.com/catacombgame/catacomb/internal/core"
	"github.com/catacombgame/catacomb/internal/raycast"
	"github.com/catacombgame/catacomb/internal/world"
)

const eps = 1e-9

func testLevel(t *testing.T) *world.Level {
	t.Helper()
	grid, err := world.ParseGrid(
		"111111111\n" +
			"100000001\n" +
			"100000001\n" +
			"100000001\n" +
			"100000001\n" +
			"100000001\n" +
			"100000001\n" +
			"100000001\n" +
			"111111111\n")
	if err != nil {
		t.Fatalf("parse grid: %v", err)
	}
	wall, err := world.ParseTexture("6", false)
	if err != nil {
		t.Fatalf("parse texture: %v", err)
	}
	return &world.Level{
		ID:    "chamber",
		Name:  "Test Chamber",
		Grid:  grid,
		Walls: []*world.Texture{wall},
		Start: world.Start{X: 4.5, Y: 4.5, Angle: 0},
	}
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Render.Workers = 1
	cfg.Minimap.Width = 11
	cfg.Minimap.Height = 9
	return cfg
}

func newTestSession(t *testing.T, tickRate int) *Session {
	t.Helper()
	rc := core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: tickRate}
	s, err := NewSession(testLevel(t), testConfig(), rc)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestWalkForward(t *testing.T) {
	// Tick rate 10 and move speed 5 give an even 0.5 units per tick.
	s := newTestSession(t, 10)

	for i := 0; i < 2; i++ {
		s.Step(frame(core.ActionForward))
	}

	if math.Abs(s.cam.Pos.X-5.5) > eps {
		t.Errorf("Pos.X = %v, expected 5.5", s.cam.Pos.X)
	}
	if math.Abs(s.cam.Pos.Y-4.5) > eps {
		t.Errorf("Pos.Y = %v, expected 4.5", s.cam.Pos.Y)
	}
}

func TestWalkBackward(t *testing.T) {
	s := newTestSession(t, 10)

	s.Step(frame(core.ActionBackward))

	if math.Abs(s.cam.Pos.X-4.0) > eps {
		t.Errorf("Pos.X = %v, expected 4.0", s.cam.Pos.X)
	}
}

func TestStrafe(t *testing.T) {
	s := newTestSession(t, 10)

	// Facing east, screen-right is south (+y on the map).
	s.Step(frame(core.ActionStrafeRight))
	if math.Abs(s.cam.Pos.Y-5.0) > eps {
		t.Errorf("after strafe right Pos.Y = %v, expected 5.0", s.cam.Pos.Y)
	}

	s.Step(frame(core.ActionStrafeLeft))
	s.Step(frame(core.ActionStrafeLeft))
	if math.Abs(s.cam.Pos.Y-4.0) > eps {
		t.Errorf("after two strafes left Pos.Y = %v, expected 4.0", s.cam.Pos.Y)
	}
	if math.Abs(s.cam.Pos.X-4.5) > eps {
		t.Errorf("strafing moved Pos.X to %v, expected 4.5", s.cam.Pos.X)
	}
}

func TestTurn(t *testing.T) {
	// Turn speed 3.0 at tick rate 10 is 0.3 radians per tick.
	s := newTestSession(t, 10)

	s.Step(frame(core.ActionTurnRight))
	if math.Abs(s.cam.Angle()-0.3) > eps {
		t.Errorf("angle after turn right = %v, expected 0.3", s.cam.Angle())
	}

	s.Step(frame(core.ActionTurnLeft))
	s.Step(frame(core.ActionTurnLeft))
	if math.Abs(s.cam.Angle()+0.3) > eps {
		t.Errorf("angle after two turns left = %v, expected -0.3", s.cam.Angle())
	}
}

func TestWalkIntoWallStops(t *testing.T) {
	s := newTestSession(t, 10)

	// The east wall occupies column 8; at 0.5 units per tick the camera
	// reaches 7.5 and the next step would land inside the wall.
	for i := 0; i < 20; i++ {
		s.Step(frame(core.ActionForward))
	}

	if math.Abs(s.cam.Pos.X-7.5) > eps {
		t.Errorf("Pos.X = %v, expected to stop at 7.5", s.cam.Pos.X)
	}
	if math.Abs(s.cam.Pos.Y-4.5) > eps {
		t.Errorf("Pos.Y = %v, expected 4.5", s.cam.Pos.Y)
	}
}

func TestCornerSlide(t *testing.T) {
	s := newTestSession(t, 10)

	// Face northeast right next to the north wall: the y component of
	// every step is blocked, the x component must keep sliding.
	s.cam.SetAngle(-math.Pi / 4)
	s.cam.Pos = raycast.Vec2{X: 4.5, Y: 1.2}

	for i := 0; i < 3; i++ {
		s.Step(frame(core.ActionForward))
	}

	if math.Abs(s.cam.Pos.Y-1.2) > eps {
		t.Errorf("Pos.Y = %v, expected to hold at 1.2", s.cam.Pos.Y)
	}
	want := 4.5 + 3*0.5*math.Cos(-math.Pi/4)
	if math.Abs(s.cam.Pos.X-want) > eps {
		t.Errorf("Pos.X = %v, expected to slide to %v", s.cam.Pos.X, want)
	}
}

func TestAirborneMovementFrozen(t *testing.T) {
	s := newTestSession(t, 60)

	s.Step(frame(core.ActionJump))
	if s.cam.Height <= 0 {
		t.Fatalf("Height = %v after jump, expected airborne", s.cam.Height)
	}

	// Walking mid-air must not move the camera.
	for i := 0; i < 9; i++ {
		s.Step(frame(core.ActionForward))
	}
	if math.Abs(s.cam.Pos.X-4.5) > eps {
		t.Errorf("Pos.X = %v, expected 4.5 while airborne", s.cam.Pos.X)
	}

	// Turning mid-air still works.
	s.Step(frame(core.ActionTurnRight))
	if s.cam.Angle() <= 0 {
		t.Errorf("angle = %v, expected turning to work mid-air", s.cam.Angle())
	}

	// After landing, walking applies again.
	for i := 0; i < 60; i++ {
		s.Step(frame())
	}
	if !s.grounded() {
		t.Fatalf("still airborne after 60 settle ticks: height=%v vspeed=%v", s.cam.Height, s.cam.VSpeed)
	}
	s.Step(frame(core.ActionForward))
	if s.cam.Pos.X <= 4.5 {
		t.Errorf("Pos.X = %v, expected walking to resume after landing", s.cam.Pos.X)
	}
}

func TestJumpArc(t *testing.T) {
	s := newTestSession(t, 60)

	s.Step(frame(core.ActionJump))

	maxH := s.cam.Height
	landed := -1
	for i := 2; i <= 120; i++ {
		s.Step(frame())
		if s.cam.Height > maxH {
			maxH = s.cam.Height
		}
		if s.grounded() {
			landed = i
			break
		}
	}

	if landed < 0 {
		t.Fatal("camera never landed within 120 ticks")
	}
	// v*v/2g with impulse 1.4 and gravity 4.0 peaks near 0.245.
	if maxH < 0.2 || maxH > 0.3 {
		t.Errorf("peak height = %v, expected around 0.245", maxH)
	}
	if s.cam.Height != 0 || s.cam.VSpeed != 0 {
		t.Errorf("after landing height=%v vspeed=%v, expected both zero", s.cam.Height, s.cam.VSpeed)
	}

	// Landing restores the jump.
	s.Step(frame(core.ActionJump))
	if s.cam.Height <= 0 {
		t.Errorf("Height = %v after second jump, expected airborne", s.cam.Height)
	}
}

func TestNoDoubleJump(t *testing.T) {
	s := newTestSession(t, 60)

	// A mid-air jump press must not restart the arc. With the press
	// honored the camera would land around tick 63; ignored, by 46.
	s.Step(frame(core.ActionJump))
	for i := 2; i <= 50; i++ {
		if i == 20 {
			s.Step(frame(core.ActionJump))
			continue
		}
		s.Step(frame())
	}

	if !s.grounded() {
		t.Errorf("still airborne at tick 50: height=%v, mid-air jump was honored", s.cam.Height)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	s := newTestSession(t, 10)

	st := s.Step(frame(core.ActionPause))
	if !st.Paused {
		t.Fatal("expected paused after pause press")
	}

	st = s.Step(frame(core.ActionForward))
	if st.Ticks != 0 {
		t.Errorf("Ticks = %d while paused, expected 0", st.Ticks)
	}
	if math.Abs(s.cam.Pos.X-4.5) > eps {
		t.Errorf("Pos.X = %v, expected no movement while paused", s.cam.Pos.X)
	}

	// Unpausing resumes the simulation on the same tick.
	st = s.Step(frame(core.ActionPause))
	if st.Paused {
		t.Error("expected unpaused after second pause press")
	}
	if st.Ticks != 1 {
		t.Errorf("Ticks = %d after resume, expected 1", st.Ticks)
	}

	s.Step(frame(core.ActionForward))
	if math.Abs(s.cam.Pos.X-5.0) > eps {
		t.Errorf("Pos.X = %v, expected movement to resume", s.cam.Pos.X)
	}
}

func TestTogglesWorkWhilePaused(t *testing.T) {
	s := newTestSession(t, 10)

	s.Step(frame(core.ActionPause))

	texturesBefore := s.renderer.TexturesOn()
	minimapBefore := s.minimapOn
	st := s.Step(frame(core.ActionToggleTextures, core.ActionToggleMinimap))

	if s.renderer.TexturesOn() == texturesBefore {
		t.Error("texture toggle ignored while paused")
	}
	if s.minimapOn == minimapBefore {
		t.Error("minimap toggle ignored while paused")
	}
	if st.Ticks != 0 {
		t.Errorf("Ticks = %d, toggles must not advance a paused game", st.Ticks)
	}
}

func TestResetRestoresStart(t *testing.T) {
	s := newTestSession(t, 10)

	s.Step(frame(core.ActionForward, core.ActionTurnRight))
	s.Step(frame(core.ActionPause))
	s.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 10})

	if math.Abs(s.cam.Pos.X-4.5) > eps || math.Abs(s.cam.Pos.Y-4.5) > eps {
		t.Errorf("Pos = (%v, %v) after reset, expected (4.5, 4.5)", s.cam.Pos.X, s.cam.Pos.Y)
	}
	if math.Abs(s.cam.Angle()) > eps {
		t.Errorf("angle = %v after reset, expected 0", s.cam.Angle())
	}
	st := s.State()
	if st.Ticks != 0 || st.Paused {
		t.Errorf("state after reset = %+v, expected zero ticks and unpaused", st)
	}
}

func TestRenderComposition(t *testing.T) {
	s := newTestSession(t, 10)
	dst := core.NewScreen(40, 20)

	if err := s.Render(dst); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(dst.Row(0), " Test Chamber ") {
		t.Errorf("HUD row = %q, expected level name", dst.Row(0))
	}

	// Minimap inset: 11x9 box anchored one cell off the bottom-right
	// corner, player marker in its middle.
	if got := dst.Get(28, 10); got != '┌' {
		t.Errorf("minimap corner = %q, expected box corner", got)
	}
	if got := dst.Get(38, 18); got != '┘' {
		t.Errorf("minimap corner = %q, expected box corner", got)
	}
	if got := dst.Get(33, 14); got != '@' {
		t.Errorf("minimap center = %q, expected player marker", got)
	}
	if got := dst.GetCell(33, 14).Color; got != core.ColorBrightYellow {
		t.Errorf("player marker color = %d, expected bright yellow", got)
	}

	// Toggling the minimap off removes the inset.
	s.Step(frame(core.ActionToggleMinimap))
	if err := s.Render(dst); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := dst.Get(28, 10); got == '┌' {
		t.Error("minimap still drawn after toggling it off")
	}

	// Pausing draws the message box over the frame.
	s.Step(frame(core.ActionPause))
	if err := s.Render(dst); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(dst.Row(8), "PAUSED") {
		t.Errorf("row 8 = %q, expected pause banner", dst.Row(8))
	}
}

func TestDeterminism(t *testing.T) {
	// The same input script must produce identical poses and frames.
	script := make([]core.InputFrame, 200)
	for i := range script {
		script[i] = core.NewInputFrame()
		switch {
		case i%17 == 0:
			script[i].Set(core.ActionJump)
		case i%3 == 0:
			script[i].Set(core.ActionForward)
			script[i].Set(core.ActionTurnRight)
		case i%5 == 0:
			script[i].Set(core.ActionStrafeLeft)
		case i%7 == 0:
			script[i].Set(core.ActionBackward)
		}
	}

	run := func() (raycast.Vec2, float64, string) {
		s := newTestSession(t, 60)
		for _, in := range script {
			s.Step(in)
		}
		dst := core.NewScreen(40, 20)
		if err := s.Render(dst); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		return s.cam.Pos, s.cam.Angle(), dst.String()
	}

	pos1, angle1, frame1 := run()
	pos2, angle2, frame2 := run()

	if pos1 != pos2 {
		t.Errorf("positions diverged: %v vs %v", pos1, pos2)
	}
	if angle1 != angle2 {
		t.Errorf("angles diverged: %v vs %v", angle1, angle2)
	}
	if frame1 != frame2 {
		t.Error("rendered frames diverged")
	}
}

func TestElapsed(t *testing.T) {
	s := newTestSession(t, 60)
	for i := 0; i < 120; i++ {
		s.Step(frame())
	}
	if got := s.Elapsed(); got != 2*time.Second {
		t.Errorf("Elapsed = %v after 120 ticks at 60/s, expected 2s", got)
	}
}

func TestNewSessionErrors(t *testing.T) {
	rc := core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60}

	cfg := testConfig()
	cfg.Render.Palette = "x"
	if _, err := NewSession(testLevel(t), cfg, rc); err == nil {
		t.Error("expected error for one-glyph palette, got nil")
	}

	cfg = testConfig()
	cfg.Render.FOVDegrees = 0
	if _, err := NewSession(testLevel(t), cfg, rc); err == nil {
		t.Error("expected error for zero fov, got nil")
	}

	open, err := world.ParseGrid("000\n000\n000\n")
	if err != nil {
		t.Fatalf("parse grid: %v", err)
	}
	bad := &world.Level{ID: "bad", Name: "Bad", Grid: open, Start: world.Start{X: 1.5, Y: 1.5}}
	if _, err := NewSession(bad, testConfig(), rc); err == nil {
		t.Error("expected error for unenclosed level, got nil")
	}
}

func TestMoveWithSlide(t *testing.T) {
	// 5x5 room with a pillar in the middle.
	grid, err := world.ParseGrid("11111\n10001\n10101\n10001\n11111\n")
	if err != nil {
		t.Fatalf("parse grid: %v", err)
	}

	tests := []struct {
		name        string
		from, delta raycast.Vec2
		want        raycast.Vec2
	}{
		{
			name: "free move",
			from: raycast.Vec2{X: 1.5, Y: 1.5}, delta: raycast.Vec2{X: 0.4, Y: 0.4},
			want: raycast.Vec2{X: 1.9, Y: 1.9},
		},
		{
			name: "pillar blocks x, y slides",
			from: raycast.Vec2{X: 1.7, Y: 2.3}, delta: raycast.Vec2{X: 0.5, Y: 0.5},
			want: raycast.Vec2{X: 1.7, Y: 2.8},
		},
		{
			name: "wall blocks y, x slides",
			from: raycast.Vec2{X: 2.5, Y: 1.2}, delta: raycast.Vec2{X: 0.6, Y: -0.5},
			want: raycast.Vec2{X: 3.1, Y: 1.2},
		},
		{
			name: "head-on stop",
			from: raycast.Vec2{X: 1.5, Y: 1.5}, delta: raycast.Vec2{X: -1.0, Y: 0},
			want: raycast.Vec2{X: 1.5, Y: 1.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := moveWithSlide(grid, tt.from, tt.delta)
			if math.Abs(got.X-tt.want.X) > eps || math.Abs(got.Y-tt.want.Y) > eps {
				t.Errorf("moveWithSlide = (%v, %v), expected (%v, %v)", got.X, got.Y, tt.want.X, tt.want.Y)
			}
		})
	}
}
