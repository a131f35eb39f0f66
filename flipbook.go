package flipbook

import (
	"math"
	"strings"
)

// Vec2 is a 2D vector used for pointer positions and hit shapes.
type Vec2 struct {
	X, Y float64
}

// ContentType identifies what a page side shows.
type ContentType string

const (
	ContentText  ContentType = "text"  // rendered text; zoomable
	ContentPhoto ContentType = "photo" // image referenced by Src
)

// TextContent is the payload of a text side.
type TextContent struct {
	Title    string `yaml:"title,omitempty" json:"title,omitempty"`
	Subtitle string `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Body     string `yaml:"text,omitempty" json:"text,omitempty"`
}

// Content describes one side of a page. Content is owned by its Page; other
// components only hold references to it.
type Content struct {
	Type       ContentType `yaml:"type" json:"type"`
	Language   string      `yaml:"language,omitempty" json:"language,omitempty"`
	Text       TextContent `yaml:"content,omitempty" json:"content,omitempty"`
	Src        string      `yaml:"src,omitempty" json:"src,omitempty"`
	Background string      `yaml:"bgColor,omitempty" json:"bgColor,omitempty"`
}

// Zoomable reports whether the content can be shown in the zoom overlay.
// A nil content is never zoomable.
func (c *Content) Zoomable() bool {
	return c != nil && c.Type == ContentText
}

// RightToLeft reports whether the content is written in a right-to-left
// language.
func (c *Content) RightToLeft() bool {
	if c == nil {
		return false
	}
	switch strings.ToLower(c.Language) {
	case "hebrew", "he", "arabic", "ar":
		return true
	}
	return false
}

// Page is one physical leaf of a book. Pages are immutable once loaded.
type Page struct {
	Front *Content `yaml:"front" json:"front"`
	Back  *Content `yaml:"back" json:"back"`
}

// Side selects a face of a page.
type Side uint8

const (
	SideFront Side = iota // visible while the page is unopened
	SideBack              // visible once the page has turned
)

// String returns "front" or "back".
func (s Side) String() string {
	if s == SideBack {
		return "back"
	}
	return "front"
}

// Content returns the content shown on the given side, or nil.
func (p Page) Content(s Side) *Content {
	if s == SideBack {
		return p.Back
	}
	return p.Front
}

// Book is an ordered sequence of pages with a stable identity.
type Book struct {
	ID            string `yaml:"id" json:"id"`
	Title         string `yaml:"title,omitempty" json:"title,omitempty"`
	Description   string `yaml:"description,omitempty" json:"description,omitempty"`
	StartFromBack bool   `yaml:"startFromBack,omitempty" json:"startFromBack,omitempty"`
	Pages         []Page `yaml:"pages" json:"pages"`
}

// RightToLeft reports whether the book reads right to left, judged by the
// language of its first page.
func (b *Book) RightToLeft() bool {
	if b == nil || len(b.Pages) == 0 {
		return false
	}
	return b.Pages[0].Front.RightToLeft() || b.Pages[0].Back.RightToLeft()
}

// clampInt limits v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// degToRad converts degrees to radians.
func degToRad(d float64) float64 {
	return d * math.Pi / 180
}
