package ebitenview

import (
	"strconv"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/phanxgames/flipbook"
)

// debugGlyphW and debugGlyphH are the cell size of ebitenutil.DebugPrint.
const (
	debugGlyphW = 6
	debugGlyphH = 16
)

// WrapContent lays out a text side as lines of at most cols cells: title,
// subtitle, a blank line, then the wrapped body. Right-to-left content is
// right-aligned by padding.
func WrapContent(c *flipbook.Content, cols int) []string {
	if c == nil || cols < 1 {
		return nil
	}
	var lines []string
	add := func(s string) {
		if s == "" {
			return
		}
		lines = append(lines, strings.Split(wordwrap.String(s, cols), "\n")...)
	}
	add(c.Text.Title)
	add(c.Text.Subtitle)
	if len(lines) > 0 && c.Text.Body != "" {
		lines = append(lines, "")
	}
	add(c.Text.Body)

	if c.RightToLeft() {
		for i, l := range lines {
			if pad := cols - len([]rune(l)); pad > 0 {
				lines[i] = strings.Repeat(" ", pad) + l
			}
		}
	}
	return lines
}

// parseHexColor decodes "#rrggbb" into components in [0, 1]. ok is false for
// anything else.
func parseHexColor(s string) (r, g, b float32, ok bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return float32(v>>16&0xff) / 255, float32(v>>8&0xff) / 255, float32(v&0xff) / 255, true
}

// exitHint is the line shown under zoomed text.
func exitHint(c *flipbook.Content) string {
	if c.RightToLeft() {
		return "לחץ בכל מקום ליציאה"
	}
	return "Tap anywhere to exit zoom"
}

// PageLabel names index i of b in the navigation bar: "Cover" at 0,
// "Back Cover" at N, otherwise the number, marked with '*' when the page has
// a text side.
func PageLabel(b *flipbook.Book, i int) string {
	if b == nil {
		return strconv.Itoa(i)
	}
	switch {
	case i <= 0:
		return "Cover"
	case i >= len(b.Pages):
		return "Back Cover"
	}
	label := strconv.Itoa(i)
	p := b.Pages[i]
	if p.Front.Zoomable() || p.Back.Zoomable() {
		label += "*"
	}
	return label
}

// navBar renders every index of b on one line with the target in brackets.
func navBar(b *flipbook.Book, target int) string {
	if b == nil {
		return ""
	}
	var sb strings.Builder
	for i := 0; i <= len(b.Pages); i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if i == target {
			sb.WriteString("[" + PageLabel(b, i) + "]")
		} else {
			sb.WriteString(PageLabel(b, i))
		}
	}
	return sb.String()
}
