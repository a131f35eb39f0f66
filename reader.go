package flipbook

import (
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/tanema/gween/ease"
)

// Option configures a Reader.
type Option func(*Reader)

// WithClock sets the clock the reader's timers and turn states read.
func WithClock(c Clock) Option {
	return func(r *Reader) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithLogger sets the structured logger. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.baseLog = l
		}
	}
}

// WithZoom shares an existing zoom overlay with the reader instead of
// creating one.
func WithZoom(z *Zoom) Option {
	return func(r *Reader) {
		if z != nil {
			r.zoom = z
		}
	}
}

// TurnState remembers when a page last toggled between opened and closed.
type TurnState struct {
	TurnedAt time.Time
	Opened   bool
}

// PageView is the live state of one mounted page: its bone chain, turn
// state, tap classifier and hover highlight.
type PageView struct {
	r         *Reader
	index     int
	page      *Page
	chain     *BoneChain
	turn      TurnState
	gesture   *Disambiguator
	highlight *Fade
	hovered   bool
}

// Index returns the page's position in the book.
func (p *PageView) Index() int { return p.index }

// Page returns the page's content.
func (p *PageView) Page() Page { return *p.page }

// Chain returns the page's bone chain.
func (p *PageView) Chain() *BoneChain { return p.chain }

// Turn returns the page's turn state.
func (p *PageView) Turn() TurnState { return p.turn }

// Gesture returns the page's tap classifier.
func (p *PageView) Gesture() *Disambiguator { return p.gesture }

// Opened reports whether the page is turned at the displayed index.
func (p *PageView) Opened() bool { return p.r.nav.Opened(p.index) }

// VisibleSide returns the side facing the reader: the front until the page
// turns, the back after.
func (p *PageView) VisibleSide() Side {
	if p.Opened() {
		return SideBack
	}
	return SideFront
}

// Visible returns the content on the visible side, or nil.
func (p *PageView) Visible() *Content {
	return p.page.Content(p.VisibleSide())
}

// Zoomable reports whether a double-select on this page would open the zoom
// overlay.
func (p *PageView) Zoomable() bool {
	return p.Visible().Zoomable()
}

// Hovered reports whether the pointer is over the page.
func (p *PageView) Hovered() bool { return p.hovered }

// Highlight returns the page's hover glow intensity.
func (p *PageView) Highlight() float64 { return p.highlight.Value() }

// SinceTurn returns the time elapsed since the page last turned.
func (p *PageView) SinceTurn() time.Duration {
	if p.turn.TurnedAt.IsZero() {
		return p.r.solver.Params.TurnDuration
	}
	return p.r.clock.Now().Sub(p.turn.TurnedAt)
}

func (p *PageView) curlInput() CurlInput {
	return CurlInput{
		Opened:     p.turn.Opened,
		BookClosed: p.r.nav.BookClosed(),
		Index:      p.index,
		SinceTurn:  p.SinceTurn(),
	}
}

// Reader is the controller for the active book session. It owns the
// navigator, the per-page views and their timers, and holds a reference to
// the zoom overlay. All methods must be called from the goroutine running the
// frame loop.
type Reader struct {
	cfg     Config
	clock   Clock
	timers  *Timers
	solver  *CurlSolver
	zoom    *Zoom
	baseLog *slog.Logger
	log     *slog.Logger

	book    *Book
	session uuid.UUID
	nav     *Navigator
	pages   []*PageView
	hover   int
}

// NewReader creates a reader with no book open. A nil cfg means
// DefaultConfig.
func NewReader(cfg *Config, opts ...Option) *Reader {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	r := &Reader{
		cfg:     *cfg,
		clock:   SystemClock(),
		baseLog: discardLogger(),
		hover:   -1,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.zoom == nil {
		r.zoom = NewZoom(r.cfg.ZoomFade)
	}
	r.timers = NewTimers(r.clock)
	r.solver = NewCurlSolver(r.cfg.Curl)
	r.log = r.baseLog
	r.nav = NewNavigator(r.timers, 0, r.cfg.Steps)
	r.zoom.OnChange(func(s ZoomState) {
		if s.IsZoomed {
			r.cancelGestures()
		}
	})
	return r
}

// Config returns the reader's configuration.
func (r *Reader) Config() Config { return r.cfg }

// Clock returns the reader's clock.
func (r *Reader) Clock() Clock { return r.clock }

// Timers returns the reader's timer queue.
func (r *Reader) Timers() *Timers { return r.timers }

// Solver returns the curl solver.
func (r *Reader) Solver() *CurlSolver { return r.solver }

// Zoom returns the zoom overlay.
func (r *Reader) Zoom() *Zoom { return r.zoom }

// Navigator returns the active navigator.
func (r *Reader) Navigator() *Navigator { return r.nav }

// Book returns the open book, or nil.
func (r *Reader) Book() *Book { return r.book }

// Session returns the id of the current book session. It changes every
// time a different book is opened.
func (r *Reader) Session() uuid.UUID { return r.session }

// Pages returns the mounted page views. The returned slice MUST NOT be
// mutated.
func (r *Reader) Pages() []*PageView { return r.pages }

// Page returns page view i, or nil.
func (r *Reader) Page(i int) *PageView {
	if i < 0 || i >= len(r.pages) {
		return nil
	}
	return r.pages[i]
}

// BookClosed reports whether the displayed index rests on either cover.
func (r *Reader) BookClosed() bool { return r.nav.BookClosed() }

// RightToLeft reports whether the open book reads right to left.
func (r *Reader) RightToLeft() bool { return r.book.RightToLeft() }

// BookRotation returns the rotation renderers apply at the spine so the
// unopened stack lies on the reading side.
func (r *Reader) BookRotation() float64 {
	if r.RightToLeft() {
		return math.Pi / 2
	}
	return -math.Pi / 2
}

// Open makes b the active book. Opening a book with a different identity
// resets navigation (to the back cover when StartFromBack is set), unmounts
// the previous pages, cancels their timers and closes the zoom overlay.
// Reopening the current book keeps the reading position.
func (r *Reader) Open(b *Book) error {
	if b == nil || len(b.Pages) == 0 {
		return ErrEmptyBook
	}
	if r.book != nil && r.book.ID == b.ID && len(r.book.Pages) == len(b.Pages) {
		r.book = b
		for i, pv := range r.pages {
			pv.page = &b.Pages[i]
		}
		return nil
	}

	r.unmount()
	r.book = b
	r.session = uuid.New()
	r.log = r.baseLog.With("session", r.session.String(), "book", b.ID)

	r.nav = NewNavigator(r.timers, len(b.Pages), r.cfg.Steps)
	start := 0
	if b.StartFromBack {
		start = len(b.Pages)
	}
	r.nav.Reset(start)
	r.nav.OnStep(r.onStep)

	r.pages = make([]*PageView, len(b.Pages))
	for i := range b.Pages {
		r.pages[i] = r.mount(i, &b.Pages[i])
	}
	r.log.Info("book opened", "pages", len(b.Pages), "start", start, "rtl", b.RightToLeft())
	return nil
}

// Close unmounts the book and cancels every timer it owns.
func (r *Reader) Close() {
	if r.book == nil {
		return
	}
	r.log.Info("book closed")
	r.unmount()
	r.nav = NewNavigator(r.timers, 0, r.cfg.Steps)
	r.log = r.baseLog
}

func (r *Reader) mount(i int, page *Page) *PageView {
	pv := &PageView{
		r:         r,
		index:     i,
		page:      page,
		chain:     NewBoneChain(r.cfg.Segments, r.cfg.PageWidth),
		turn:      TurnState{Opened: r.nav.Opened(i)},
		highlight: NewFade(0, r.cfg.HighlightFade, ease.OutQuad),
	}
	pv.gesture = NewDisambiguator(r.timers, r.cfg.DoubleTap,
		func(Gesture) { r.singleSelect(pv) },
		func(Gesture) { r.doubleSelect(pv) },
	)
	r.solver.Settle(pv.chain, pv.curlInput())
	return pv
}

func (r *Reader) unmount() {
	for _, pv := range r.pages {
		pv.gesture.Dispose()
	}
	r.nav.Dispose()
	r.timers.Clear()
	r.zoom.Close()
	r.pages = nil
	r.book = nil
	r.hover = -1
}

// onStep records the turn time of every page whose opened flag flipped.
func (r *Reader) onStep(delayed int) {
	now := r.clock.Now()
	for _, pv := range r.pages {
		opened := delayed > pv.index
		if opened != pv.turn.Opened {
			pv.turn = TurnState{TurnedAt: now, Opened: opened}
		}
	}
	r.log.Debug("step", "delayed", delayed, "target", r.nav.Target())
}

// Tap feeds a tap on page i into its gesture classifier. While the zoom
// overlay is open it consumes the tap and closes instead.
func (r *Reader) Tap(i int) GestureOutcome {
	if r.zoom.IsZoomed() {
		r.Dismiss()
		return GestureIgnored
	}
	pv := r.Page(i)
	if pv == nil {
		return GestureIgnored
	}
	return pv.gesture.Tap(r.clock.Now())
}

func (r *Reader) singleSelect(pv *PageView) {
	if r.zoom.IsZoomed() {
		return
	}
	target := pv.index + 1
	if pv.Opened() {
		target = pv.index
	}
	r.log.Debug("turn", "page", pv.index, "target", target)
	r.nav.SetTarget(target)
}

func (r *Reader) doubleSelect(pv *PageView) {
	c := pv.Visible()
	if !c.Zoomable() {
		r.log.Debug("zoom skipped", "page", pv.index, "side", pv.VisibleSide().String())
		return
	}
	r.log.Debug("zoom", "page", pv.index, "side", pv.VisibleSide().String())
	r.zoom.Open(c)
}

// ZoomPage opens the zoom overlay on the visible side of page i, as the
// navigation bar's zoom button does. Reports whether the overlay opened.
func (r *Reader) ZoomPage(i int) bool {
	pv := r.Page(i)
	if pv == nil {
		return false
	}
	return r.zoom.Open(pv.Visible())
}

// Dismiss closes the zoom overlay.
func (r *Reader) Dismiss() {
	r.zoom.Close()
}

func (r *Reader) cancelGestures() {
	for _, pv := range r.pages {
		pv.gesture.Cancel()
	}
}

// GoTo requests page index i (clamped). Navigation is suspended while the
// zoom overlay is open; GoTo then reports false.
func (r *Reader) GoTo(i int) bool {
	if r.book == nil || r.zoom.IsZoomed() {
		return false
	}
	r.nav.SetTarget(i)
	return true
}

// Next requests the page after the current target.
func (r *Reader) Next() bool { return r.GoTo(r.nav.Target() + 1) }

// Prev requests the page before the current target.
func (r *Reader) Prev() bool { return r.GoTo(r.nav.Target() - 1) }

// First requests the front cover.
func (r *Reader) First() bool { return r.GoTo(0) }

// Last requests the back cover.
func (r *Reader) Last() bool { return r.GoTo(r.nav.Pages()) }

// SetHover moves the hover highlight to page i. Any index outside the book
// clears it.
func (r *Reader) SetHover(i int) {
	if r.Page(i) == nil {
		i = -1
	}
	if i == r.hover {
		return
	}
	if prev := r.Page(r.hover); prev != nil {
		prev.hovered = false
		prev.highlight.To(0)
	}
	r.hover = i
	if pv := r.Page(i); pv != nil {
		pv.hovered = true
		pv.highlight.To(r.cfg.HighlightIntensity)
	}
}

// Hover returns the hovered page index, or -1.
func (r *Reader) Hover() int { return r.hover }

// Update advances the session by one frame: due timers fire first, then the
// fades, then every page's bone chain is solved.
func (r *Reader) Update(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	r.timers.Fire()
	r.zoom.Update(dt)
	for _, pv := range r.pages {
		pv.highlight.Update(dt)
		r.solver.Solve(pv.chain, pv.curlInput(), dt)
	}
}
