package assets

import (
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// Texture is an image asset. The decoded pixels are uploaded to the GPU on
// first use.
type Texture struct {
	path string

	mu      sync.Mutex
	decoded image.Image
	img     *ebiten.Image
}

// NewTexture creates an unloaded texture for path.
func NewTexture(path string) *Texture {
	return &Texture{path: path}
}

func (t *Texture) Path() string { return t.path }

// Load decodes the image file.
func (t *Texture) Load(fsys fs.FS) error {
	f, err := fsys.Open(t.path)
	if err != nil {
		return err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", t.path, err)
	}

	t.mu.Lock()
	t.decoded = img
	t.img = nil
	t.mu.Unlock()
	return nil
}

func (t *Texture) Loaded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.decoded != nil
}

// Size returns the decoded image size, or zero before Load.
func (t *Texture) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.decoded == nil {
		return 0, 0
	}
	b := t.decoded.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the ebiten image, or nil before Load.
func (t *Texture) Image() *ebiten.Image {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.decoded == nil {
		return nil
	}
	if t.img == nil {
		t.img = ebiten.NewImageFromImage(t.decoded)
	}
	return t.img
}
