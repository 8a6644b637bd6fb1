package icons

import (
	"image"
	"image/color"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"github.com/rook-computer/wristface/internal/assets"
)

// Bitmap is one acquired handle to an icon image.
// The image is immutable and may be read after release by a renderer
// still holding an older snapshot.
type Bitmap struct {
	ID    AssetID
	Image image.Image

	released bool
}

// Bank hands out bitmap handles and takes them back.
type Bank interface {
	Acquire(id AssetID) (*Bitmap, error)
	Release(b *Bitmap)
}

// AssetBank paints bitmaps from the embedded icon masks.
// Painted images are cached per AssetID; handles are counted.
type AssetBank struct {
	mu     sync.Mutex
	images map[AssetID]image.Image
	live   int
}

func NewAssetBank() *AssetBank {
	return &AssetBank{images: make(map[AssetID]image.Image)}
}

func (b *AssetBank) Acquire(id AssetID) (*Bitmap, error) {
	if id.IsNone() {
		return nil, pkgerrors.New("cannot acquire the empty asset")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	img, ok := b.images[id]
	if !ok {
		mask, found := assets.IconMask(id.Name)
		if !found {
			return nil, pkgerrors.Errorf("unknown icon %s", id)
		}
		img = colorize(mask, id.Variant)
		b.images[id] = img
	}
	b.live++
	return &Bitmap{ID: id, Image: img}, nil
}

func (b *AssetBank) Release(bm *Bitmap) {
	if bm == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if bm.released {
		return
	}
	bm.released = true
	b.live--
}

// Live returns the number of acquired, unreleased handles.
func (b *AssetBank) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.live
}

func colorize(mask *image.Alpha, v Variant) image.Image {
	ink := color.NRGBA{A: 0xFF}
	if v == White {
		ink = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
	bounds := mask.Bounds()
	out := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if mask.AlphaAt(x, y).A == 0 {
				continue
			}
			out.SetNRGBA(x, y, ink)
		}
	}
	return out
}
