package raycast

import (
	"sort"

	"github.com/catacombgame/catacomb/internal/core"
	"github.com/catacombgame/catacomb/internal/world"
)

// spriteView is a sprite transformed into camera space for one frame.
type spriteView struct {
	tex    *world.Texture
	tx     float64 // lateral offset on the camera plane
	ty     float64 // forward distance, same metric as the wall depth buffer
	distSq float64
}

// drawSprites paints billboard sprites over the wall frame. Sprites are
// sorted far to near; each pixel is written only if the sprite is closer
// than the wall in that column and closer than any sprite already drawn
// there, so overlapping sprites resolve per pixel rather than per
// paint order.
func (r *Renderer) drawSprites(cam *Camera, sprites []world.Sprite) {
	if len(sprites) == 0 {
		return
	}

	invDet := 1 / (cam.Plane.X*cam.Dir.Y - cam.Dir.X*cam.Plane.Y)

	views := make([]spriteView, 0, len(sprites))
	for _, s := range sprites {
		tex := r.level.SpriteTexture(s.Texture)
		if tex == nil {
			continue
		}
		rel := Vec2{s.X, s.Y}.Sub(cam.Pos)
		tx := invDet * (cam.Dir.Y*rel.X - cam.Dir.X*rel.Y)
		ty := invDet * (-cam.Plane.Y*rel.X + cam.Plane.X*rel.Y)
		if ty <= 0 {
			// On or behind the camera plane
			continue
		}
		views = append(views, spriteView{tex: tex, tx: tx, ty: ty, distSq: rel.LenSq()})
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].distSq > views[j].distSq
	})

	for i := range views {
		r.drawSprite(cam, &views[i])
	}
}

// drawSprite projects one camera-space sprite onto the frame.
func (r *Renderer) drawSprite(cam *Camera, v *spriteView) {
	w, h := float64(r.w), float64(r.h)

	screenX := w / 2 * (1 + v.tx/v.ty)
	spriteH := r.projScale * h / v.ty
	spriteW := w / (2 * v.ty)
	if int(spriteH) < 1 || int(spriteW) < 1 {
		// Too far to cover a cell
		return
	}

	top := (h-spriteH)/2 + cam.Height*spriteH
	left := screenX - spriteW/2

	y0 := core.Max(0, int(top))
	y1 := core.Min(r.h, int(top+spriteH))
	x0 := core.Max(0, int(left))
	x1 := core.Min(r.w, int(left+spriteW))

	for x := x0; x < x1; x++ {
		if v.ty >= r.depth[x] {
			// Wall in front of the sprite in this column
			continue
		}
		u := int((float64(x) - left) / spriteW * float64(v.tex.W))
		for y := y0; y < y1; y++ {
			tv := int((float64(y) - top) / spriteH * float64(v.tex.H))
			base := v.tex.At(u, tv)
			if base == world.Transparent {
				continue
			}
			c := &r.cells[y*r.w+x]
			if v.ty >= c.depth {
				// A nearer sprite already owns this pixel
				continue
			}
			c.set = true
			c.intensity = int8(r.shader.Shade(int(base), v.ty))
			c.color = v.tex.Color
			c.depth = v.ty
		}
	}
}
