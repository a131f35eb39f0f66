// Package ebitenview draws a flipbook.Reader with Ebitengine. Each page is a
// textured triangle strip following its bone chain; mouse, touch and
// keyboard input feed back into the reader.
package ebitenview

import (
	"image/color"
	"log/slog"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/flipbook"
)

// RunConfig holds the window and layout settings of a View.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ContentRoot is the directory photo pages are resolved against.
	ContentRoot string
	// Perspective is the on-screen growth per world unit toward the viewer.
	Perspective float64
	// ShowFPS prints TPS and FPS in the top-left corner.
	ShowFPS bool
	// ScreenshotDir receives the PNGs of screenshot script steps.
	ScreenshotDir string
	Logger        *slog.Logger
}

func (c *RunConfig) withDefaults() {
	if c.Title == "" {
		c.Title = "flipbook"
	}
	if c.Width <= 0 {
		c.Width = 1280
	}
	if c.Height <= 0 {
		c.Height = 720
	}
	if c.Perspective == 0 {
		c.Perspective = 0.35
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "screenshots"
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
}

type drawPage struct {
	pv     *flipbook.PageView
	ribbon *Ribbon
}

// View implements ebiten.Game for a reader.
type View struct {
	reader  *flipbook.Reader
	cfg     RunConfig
	in      input
	art     *artCache
	ribbons []*Ribbon
	order   []drawPage
	white   *ebiten.Image
	width   int
	height  int

	script *flipbook.ScriptRunner
	shots  []string
	shotN  int
}

// NewView creates a view over r. Pointer clicks and hover are bound to r.
func NewView(r *flipbook.Reader, cfg RunConfig) *View {
	cfg.withDefaults()
	ptrs := flipbook.NewPointers(r.Config().DragDeadZone)
	ptrs.Bind(r)
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	return &View{
		reader: r,
		cfg:    cfg,
		in:     input{ptrs: ptrs},
		art:    newArtCache(cfg.ContentRoot, cfg.Logger),
		white:  white,
		width:  cfg.Width,
		height: cfg.Height,
	}
}

// Pointers returns the pointer router, for injecting synthetic input.
func (v *View) Pointers() *flipbook.Pointers { return v.in.ptrs }

// SetScript attaches a reading script. Its steps run one per tick before
// input is read; screenshot steps capture the following frame.
func (v *View) SetScript(s *flipbook.Script) {
	v.script = flipbook.NewScriptRunner(s, v.reader, v.in.ptrs)
	v.script.OnScreenshot = v.Screenshot
}

// Update advances the reader by one tick and rebuilds page geometry and hit
// areas.
func (v *View) Update() error {
	dt := time.Second / time.Duration(ebiten.TPS())
	if v.script != nil {
		v.script.Step()
	}
	v.in.update(v.reader)
	v.reader.Update(dt)
	v.layout()
	return nil
}

// projection fits the open book's width into the window.
func (v *View) projection() Projection {
	cfg := v.reader.Config()
	scale := float64(v.height) * 0.8 / cfg.PageHeight
	if maxScale := float64(v.width) * 0.45 / cfg.PageWidth; scale > maxScale {
		scale = maxScale
	}
	return Projection{
		CenterX:     float64(v.width) / 2,
		CenterY:     float64(v.height) / 2,
		Scale:       scale,
		Perspective: v.cfg.Perspective,
	}
}

func (v *View) layout() {
	r := v.reader
	pages := r.Pages()
	if b := r.Book(); b != nil {
		v.art.reset(b.ID)
	}
	for len(v.ribbons) < len(pages) {
		v.ribbons = append(v.ribbons, &Ribbon{})
	}

	cfg := r.Config()
	proj := v.projection()
	base := r.BookRotation()
	restDir := 1.0
	if r.RightToLeft() {
		restDir = -1
	}
	delayed := r.Navigator().Delayed()

	v.order = v.order[:0]
	for i, pv := range pages {
		rb := v.ribbons[i]
		// Unturned pages stack behind the current one, turned pages in
		// front, so the open spread is flush at the spine.
		zOffset := float64(i-delayed) * cfg.PageDepth
		if pv.Opened() {
			zOffset = float64(delayed-1-i) * cfg.PageDepth
		}
		rb.Build(pv.Chain().Pose(base), proj, cfg.PageHeight, zOffset, restDir, artWidth, artHeight)
		rb.Tint(pv.Highlight())
		v.order = append(v.order, drawPage{pv: pv, ribbon: rb})
	}

	// Far to near.
	sort.SliceStable(v.order, func(a, b int) bool {
		return v.order[a].ribbon.Depth > v.order[b].ribbon.Depth
	})

	ptrs := v.in.ptrs
	ptrs.ClearAreas()
	if r.Zoom().IsZoomed() {
		// The overlay covers the book; clicks anywhere dismiss it.
		return
	}
	for _, d := range v.order {
		ptrs.SetArea(d.pv.Index(), d.ribbon.Hit, -d.ribbon.Depth)
	}
}

// Draw renders the pages back to front and the zoom overlay on top.
func (v *View) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x1c, G: 0x1f, B: 0x2b, A: 0xff})

	for _, d := range v.order {
		var c *flipbook.Content
		if d.ribbon.Front {
			c = d.pv.Page().Front
		} else {
			c = d.pv.Page().Back
		}
		img := v.art.get(c)
		screen.DrawTriangles(d.ribbon.Vertices, d.ribbon.Indices, img, &ebiten.DrawTrianglesOptions{
			Filter: ebiten.FilterLinear,
		})
	}

	if b := v.reader.Book(); b != nil && !v.reader.Zoom().IsZoomed() {
		bar := navBar(b, v.reader.Navigator().Target())
		x := (v.width - len([]rune(bar))*debugGlyphW) / 2
		ebitenutil.DebugPrintAt(screen, bar, max(x, 4), v.height-debugGlyphH-8)
	}

	v.drawZoom(screen)

	if v.cfg.ShowFPS {
		ebitenutil.DebugPrintAt(screen, fpsLine(), 4, 4)
	}
	v.flushScreenshots(screen)
}

func (v *View) drawZoom(screen *ebiten.Image) {
	z := v.reader.Zoom()
	alpha := float32(z.Opacity())
	if alpha <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(v.width), float64(v.height))
	op.ColorScale.Scale(0, 0, 0, 0.85*alpha)
	screen.DrawImage(v.white, op)

	c := z.Content()
	if c == nil || alpha < 0.5 {
		return
	}
	cols := v.width * 2 / 3 / debugGlyphW
	lines := WrapContent(c, cols)
	lines = append(lines, "", exitHint(c))
	x := (v.width - cols*debugGlyphW) / 2
	y := (v.height - len(lines)*debugGlyphH) / 2
	if y < debugGlyphH {
		y = debugGlyphH
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x, y+i*debugGlyphH)
	}
}

// Layout keeps the screen the size of the window.
func (v *View) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.width, v.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens a window and runs the view until it is closed. A non-nil script
// is played back from the first frame.
func Run(r *flipbook.Reader, cfg RunConfig, script *flipbook.Script) error {
	v := NewView(r, cfg)
	if script != nil {
		v.SetScript(script)
	}
	ebiten.SetWindowSize(v.cfg.Width, v.cfg.Height)
	ebiten.SetWindowTitle(v.cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(v)
}
