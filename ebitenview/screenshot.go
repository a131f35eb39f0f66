package ebitenview

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot asks for the next drawn frame to be saved under label.
func (v *View) Screenshot(label string) {
	v.shots = append(v.shots, label)
}

// flushScreenshots saves the finished frame once per pending label as
// <book id>-<sequence>-<label>.png.
func (v *View) flushScreenshots(screen *ebiten.Image) {
	if len(v.shots) == 0 {
		return
	}
	labels := v.shots
	v.shots = v.shots[:0]

	// image.RGBA is premultiplied like ebiten's pixels, so they copy as is.
	frame := image.NewRGBA(screen.Bounds())
	screen.ReadPixels(frame.Pix)

	book := "nobook"
	if b := v.reader.Book(); b != nil {
		book = sanitizeLabel(b.ID)
	}
	log := v.cfg.Logger.With("dir", v.cfg.ScreenshotDir)
	if err := os.MkdirAll(v.cfg.ScreenshotDir, 0o755); err != nil {
		log.Error("failed to create screenshot dir", "error", err)
		return
	}
	for _, label := range labels {
		v.shotN++
		name := fmt.Sprintf("%s-%03d-%s.png", book, v.shotN, sanitizeLabel(label))
		path := filepath.Join(v.cfg.ScreenshotDir, name)
		if err := savePNG(path, frame); err != nil {
			log.Error("failed to save screenshot", "label", label, "error", err)
			continue
		}
		log.Info("screenshot saved", "file", name)
	}
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return errors.Join(png.Encode(f, img), f.Close())
}

// sanitizeLabel keeps letters, digits, '-' and '.' and turns everything else
// into '_'. An empty label becomes "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
