package render

import (
	"hash/fnv"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/younwookim/wage/internal/domain/animation"
	"github.com/younwookim/wage/internal/domain/hitbox"
	"github.com/younwookim/wage/internal/infrastructure/assets"
)

// Textures resolves texture keys to loaded textures.
type Textures interface {
	Texture(path string) (*assets.Texture, bool)
}

// EbitenSurface draws world-space (Y up) rectangles and sprites onto an
// ebiten screen (Y down).
type EbitenSurface struct {
	screen     *ebiten.Image
	textures   Textures
	viewHeight float64
	camX, camY float64
	face       text.Face
}

// NewEbitenSurface creates a surface for a viewport viewHeight pixels tall.
// textures may be nil, in which case every sprite draws as a flat rect.
func NewEbitenSurface(textures Textures, viewHeight float64) *EbitenSurface {
	return &EbitenSurface{
		textures:   textures,
		viewHeight: viewHeight,
		face:       text.NewGoXFace(basicfont.Face7x13),
	}
}

// Begin sets the image drawn to until the next Begin.
func (s *EbitenSurface) Begin(screen *ebiten.Image) {
	s.screen = screen
}

// SetCamera sets the world position shown at the viewport's bottom-left.
func (s *EbitenSurface) SetCamera(x, y float64) {
	s.camX, s.camY = x, y
}

// Camera returns the camera position.
func (s *EbitenSurface) Camera() (float64, float64) {
	return s.camX, s.camY
}

// DrawImage draws the src region of a texture into the world rect dst.
// A texture that is not loaded draws as a rect in a color derived from its
// name.
func (s *EbitenSurface) DrawImage(texture string, src animation.Rect, dst animation.Rect) {
	if s.screen == nil || dst.Width <= 0 || dst.Height <= 0 {
		return
	}
	x, y := ToScreen(dst.X, dst.Y, dst.Height, s.camX, s.camY, s.viewHeight)

	var img *ebiten.Image
	if s.textures != nil {
		if tex, ok := s.textures.Texture(texture); ok {
			img = tex.Image()
		}
	}
	region, ok := sourceRect(src, img)
	if !ok {
		vector.DrawFilledRect(s.screen, float32(x), float32(y), float32(dst.Width), float32(dst.Height), FallbackColor(texture), false)
		return
	}

	sub := img.SubImage(region).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dst.Width/float64(region.Dx()), dst.Height/float64(region.Dy()))
	op.GeoM.Translate(x, y)
	s.screen.DrawImage(sub, op)
}

// DrawRect outlines a world rect.
func (s *EbitenSurface) DrawRect(r hitbox.Rect, c color.Color) {
	if s.screen == nil {
		return
	}
	w, h := r.X2-r.X1, r.Y2-r.Y1
	x, y := ToScreen(r.X1, r.Y1, h, s.camX, s.camY, s.viewHeight)
	vector.StrokeRect(s.screen, float32(x), float32(y), float32(w), float32(h), 1, c, false)
}

// DrawText prints msg at screen coordinates, for overlays that do not move
// with the world.
func (s *EbitenSurface) DrawText(msg string, x, y int, c color.Color) {
	if s.screen == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.screen, msg, s.face, op)
}

// Fill clears the screen with c.
func (s *EbitenSurface) Fill(c color.Color) {
	if s.screen == nil {
		return
	}
	s.screen.Fill(c)
}

// ToScreen maps the bottom-left corner of a world rect of height h to the
// top-left corner in screen space.
func ToScreen(x, y, h, camX, camY, viewHeight float64) (float64, float64) {
	return x - camX, viewHeight - (y - camY + h)
}

// sourceRect returns the texture region to draw. A zero-sized source uses
// the whole image. ok is false when there is nothing to sample.
func sourceRect(src animation.Rect, img *ebiten.Image) (image.Rectangle, bool) {
	if img == nil {
		return image.Rectangle{}, false
	}
	bounds := img.Bounds()
	return clampSource(src, bounds)
}

func clampSource(src animation.Rect, bounds image.Rectangle) (image.Rectangle, bool) {
	if src.Width <= 0 || src.Height <= 0 {
		return bounds, !bounds.Empty()
	}
	r := image.Rect(int(src.X), int(src.Y), int(src.X+src.Width), int(src.Y+src.Height)).Intersect(bounds)
	return r, !r.Empty()
}

// FallbackColor picks a stable opaque color for a texture key.
func FallbackColor(texture string) color.RGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(texture))
	v := h.Sum32()
	return color.RGBA{R: 64 + uint8(v)%192, G: 64 + uint8(v>>8)%192, B: 64 + uint8(v>>16)%192, A: 255}
}
