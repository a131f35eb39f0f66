package ebitenview

import (
	"image/color"
	_ "image/jpeg" // photo pages
	_ "image/png"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/flipbook"
)

// Texture size of one page side.
const (
	artWidth  = 256
	artHeight = 342
	artMargin = 12
)

var (
	defaultTextBackground  = color.RGBA{R: 0x1e, G: 0x2a, B: 0x45, A: 0xff}
	defaultPhotoBackground = color.RGBA{R: 0x5a, G: 0x5a, B: 0x60, A: 0xff}
)

// PhotoPath resolves a photo side's src inside a content root laid out as
// <root>/<bookID>/textures/<src>. A src without an extension is a JPEG.
func PhotoPath(root, bookID, src string) string {
	if src == "" {
		return ""
	}
	if !strings.Contains(src, ".") {
		src += ".jpg"
	}
	return filepath.Join(root, bookID, "textures", src)
}

// artCache renders and keeps one texture per content side.
type artCache struct {
	root   string
	bookID string
	log    *slog.Logger
	images map[*flipbook.Content]*ebiten.Image
	blank  *ebiten.Image
}

func newArtCache(root string, log *slog.Logger) *artCache {
	return &artCache{root: root, log: log, images: make(map[*flipbook.Content]*ebiten.Image)}
}

// reset drops every cached texture when the book changes.
func (a *artCache) reset(bookID string) {
	if a.bookID == bookID {
		return
	}
	for _, img := range a.images {
		img.Deallocate()
	}
	clear(a.images)
	a.bookID = bookID
}

func (a *artCache) get(c *flipbook.Content) *ebiten.Image {
	if c == nil {
		if a.blank == nil {
			a.blank = ebiten.NewImage(artWidth, artHeight)
			a.blank.Fill(defaultTextBackground)
		}
		return a.blank
	}
	if img, ok := a.images[c]; ok {
		return img
	}
	img := ebiten.NewImage(artWidth, artHeight)
	switch c.Type {
	case flipbook.ContentPhoto:
		a.drawPhoto(img, c)
	default:
		a.drawText(img, c)
	}
	a.images[c] = img
	return img
}

func (a *artCache) drawText(img *ebiten.Image, c *flipbook.Content) {
	bg := defaultTextBackground
	if r, g, b, ok := parseHexColor(c.Background); ok {
		bg = color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 0xff}
	}
	img.Fill(bg)
	cols := (artWidth - 2*artMargin) / debugGlyphW
	for i, line := range WrapContent(c, cols) {
		y := artMargin + i*debugGlyphH
		if y+debugGlyphH > artHeight-artMargin {
			break
		}
		ebitenutil.DebugPrintAt(img, line, artMargin, y)
	}
}

func (a *artCache) drawPhoto(img *ebiten.Image, c *flipbook.Content) {
	img.Fill(defaultPhotoBackground)
	path := PhotoPath(a.root, a.bookID, c.Src)
	photo, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		a.log.Warn("photo unavailable", "path", path, "error", err)
		ebitenutil.DebugPrintAt(img, c.Src, artMargin, artMargin)
		return
	}
	defer photo.Deallocate()

	b := photo.Bounds()
	sx := float64(artWidth) / float64(b.Dx())
	sy := float64(artHeight) / float64(b.Dy())
	s := min(sx, sy)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s, s)
	op.GeoM.Translate((artWidth-float64(b.Dx())*s)/2, (artHeight-float64(b.Dy())*s)/2)
	op.Filter = ebiten.FilterLinear
	img.DrawImage(photo, op)
}
