package raycast

import (
	"fmt"
	"math"
	"sync"

	"github.com/catacombgame/catacomb/internal/core"
	"github.com/catacombgame/catacomb/internal/world"
)

const (
	// minWallDist guards the projection against a camera standing
	// exactly on a grid line, where the perpendicular distance is zero.
	minWallDist = 1e-6

	// maxSliceRows caps the projected slice height so the float to int
	// conversion stays safe for near-zero distances.
	maxSliceRows = 1e7
)

// Params holds the tunable rendering parameters.
type Params struct {
	Shader    Shader
	Palette   Palette
	ProjScale float64 // wall height multiplier, 1.0 = walls span the screen at distance 1
	Workers   int     // column workers; <= 1 renders sequentially
	Floor     bool    // draw the dithered floor below the horizon
	Textures  bool    // sample wall textures; off renders neutral walls
}

// frameCell is one intensity-buffer entry prior to quantization.
type frameCell struct {
	set       bool
	intensity int8
	color     core.Color
	depth     float64 // distance of the sprite drawn here, +Inf otherwise
}

// Renderer projects a level into a character frame. One Renderer is bound
// to one level; camera pose and sprite positions are passed per frame.
// Render is not safe for concurrent use, but splits its own column work
// across workers.
type Renderer struct {
	level      *world.Level
	shader     Shader
	palette    Palette
	projScale  float64
	workers    int
	floorOn    bool
	texturesOn bool

	w, h  int
	depth []float64 // per-column wall distance
	cells []frameCell
}

// NewRenderer creates a renderer for the given level.
func NewRenderer(level *world.Level, p Params) *Renderer {
	scale := p.ProjScale
	if scale <= 0 {
		scale = 1
	}
	return &Renderer{
		level:      level,
		shader:     p.Shader,
		palette:    p.Palette,
		projScale:  scale,
		workers:    p.Workers,
		floorOn:    p.Floor,
		texturesOn: p.Textures,
	}
}

// SetTextures switches wall texture sampling on or off.
func (r *Renderer) SetTextures(on bool) {
	r.texturesOn = on
}

// TexturesOn reports whether wall textures are being sampled.
func (r *Renderer) TexturesOn() bool {
	return r.texturesOn
}

// Render draws one frame into dst: walls by ray casting, then sprites
// back to front, then quantization onto palette glyphs. Screens with no
// area are skipped. A ray escaping the map aborts the frame with an error.
func (r *Renderer) Render(dst *core.Screen, cam *Camera, sprites []world.Sprite) error {
	w, h := dst.Width(), dst.Height()
	if w <= 0 || h <= 0 {
		return nil
	}
	r.resize(w, h)
	r.reset()

	if r.floorOn {
		r.drawFloor()
	}
	if err := r.castColumns(cam); err != nil {
		return err
	}
	r.drawSprites(cam, sprites)
	r.quantize(dst)
	return nil
}

// resize adapts the internal buffers to the destination size.
func (r *Renderer) resize(w, h int) {
	if w == r.w && h == r.h {
		return
	}
	r.w, r.h = w, h
	r.depth = make([]float64, w)
	r.cells = make([]frameCell, w*h)
}

// reset clears the depth and intensity buffers. Stale distances from the
// previous frame must never occlude the current one.
func (r *Renderer) reset() {
	inf := math.Inf(1)
	for i := range r.depth {
		r.depth[i] = inf
	}
	for i := range r.cells {
		r.cells[i] = frameCell{depth: inf}
	}
}

// drawFloor dithers every other column below the horizon at the darkest
// ramp value.
func (r *Renderer) drawFloor() {
	for y := r.h / 2; y < r.h; y++ {
		row := y * r.w
		for x := 0; x < r.w; x += 2 {
			c := &r.cells[row+x]
			c.set = true
			c.intensity = 0
			c.color = core.ColorDefault
		}
	}
}

// castColumns renders every screen column, splitting the work across
// workers when configured. Columns are independent: each one writes only
// its own depth entry and frame cells, so the result is identical for any
// worker count.
func (r *Renderer) castColumns(cam *Camera) error {
	if r.workers <= 1 {
		for x := 0; x < r.w; x++ {
			if err := r.renderColumn(cam, x); err != nil {
				return err
			}
		}
		return nil
	}

	var wg sync.WaitGroup
	errs := make([]error, r.workers)
	chunk := (r.w + r.workers - 1) / r.workers
	for i := 0; i < r.workers; i++ {
		lo := i * chunk
		hi := core.Min(lo+chunk, r.w)
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(i, lo, hi int) {
			defer wg.Done()
			for x := lo; x < hi; x++ {
				if err := r.renderColumn(cam, x); err != nil {
					errs[i] = err
					return
				}
			}
		}(i, lo, hi)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// cameraX maps a screen column to its position on the camera plane:
// -1 at the left edge, +1 at the right.
func cameraX(x, w int) float64 {
	if w <= 1 {
		return 0
	}
	return 2*float64(x)/float64(w-1) - 1
}

// renderColumn casts the ray for one column and draws its wall slice.
func (r *Renderer) renderColumn(cam *Camera, x int) error {
	rayDir := cam.Dir.Add(cam.Plane.Scale(cameraX(x, r.w)))
	hit, err := castRay(r.level.Grid, cam.Pos, rayDir)
	if err != nil {
		return fmt.Errorf("raycast: column %d: %w", x, err)
	}
	r.depth[x] = hit.Dist
	r.drawWallSlice(cam, x, hit)
	return nil
}

// drawWallSlice projects the hit wall into a vertical run of cells:
// height inversely proportional to distance, centered on the horizon and
// lifted by the camera height, clipped to the screen.
func (r *Renderer) drawWallSlice(cam *Camera, x int, hit Hit) {
	h := float64(r.h)
	dist := hit.Dist
	if dist < minWallDist {
		dist = minWallDist
	}
	slice := r.projScale * h / dist
	if slice > maxSliceRows {
		slice = maxSliceRows
	}
	top := (h-slice)/2 + cam.Height*slice

	y0 := core.Max(0, int(top))
	y1 := core.Min(r.h, int(top+slice))
	if y1 <= y0 {
		return
	}

	tex := r.level.WallTexture(hit.Cell)
	color := core.ColorDefault
	if tex != nil {
		color = tex.Color
	}
	textured := r.texturesOn && tex != nil

	for y := y0; y < y1; y++ {
		base := world.Neutral
		if textured {
			// Texture-v comes from the position within the unclipped
			// slice, so close-up walls zoom instead of squashing.
			v := (float64(y) - top) / slice
			base = int(tex.At(int(hit.U*float64(tex.W)), int(v*float64(tex.H))))
		}
		in := r.shader.Shade(base, hit.Dist)
		if hit.Side == 1 {
			in = core.Clamp(in-r.shader.SideDarken, 0, world.MaxIntensity)
		}

		c := &r.cells[y*r.w+x]
		c.set = true
		c.intensity = int8(in)
		c.color = color
	}
}

// quantize maps the intensity buffer onto palette glyphs in dst. Cells
// nothing was drawn into become the background glyph.
func (r *Renderer) quantize(dst *core.Screen) {
	bg := r.palette.Background()
	for y := 0; y < r.h; y++ {
		row := y * r.w
		for x := 0; x < r.w; x++ {
			c := r.cells[row+x]
			if !c.set {
				dst.SetCell(x, y, bg, core.ColorDefault)
				continue
			}
			dst.SetCell(x, y, r.palette.Glyph(int(c.intensity)), c.color)
		}
	}
}
