package flipbook

import (
	"math"
	"testing"
	"time"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// textPage returns a page with text on the front and a photo on the back.
func textPage(title string) Page {
	return Page{
		Front: &Content{Type: ContentText, Language: "english", Text: TextContent{Title: title, Body: title + " body"}},
		Back:  &Content{Type: ContentPhoto, Src: title},
	}
}

func testBook(id string, n int) *Book {
	b := &Book{ID: id, Title: id}
	for i := 0; i < n; i++ {
		b.Pages = append(b.Pages, textPage(string(rune('a'+i))))
	}
	return b
}

func TestContentZoomable(t *testing.T) {
	tests := []struct {
		name string
		c    *Content
		want bool
	}{
		{"nil", nil, false},
		{"text", &Content{Type: ContentText}, true},
		{"photo", &Content{Type: ContentPhoto, Src: "cat"}, false},
		{"empty", &Content{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Zoomable(); got != tt.want {
				t.Errorf("Zoomable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContentRightToLeft(t *testing.T) {
	tests := []struct {
		lang string
		want bool
	}{
		{"hebrew", true},
		{"Hebrew", true},
		{"he", true},
		{"arabic", true},
		{"english", false},
		{"", false},
	}
	for _, tt := range tests {
		c := &Content{Type: ContentText, Language: tt.lang}
		if got := c.RightToLeft(); got != tt.want {
			t.Errorf("RightToLeft(%q) = %v, want %v", tt.lang, got, tt.want)
		}
	}
	var nilContent *Content
	if nilContent.RightToLeft() {
		t.Error("nil content should not be right-to-left")
	}
}

func TestBookRightToLeft(t *testing.T) {
	var nilBook *Book
	if nilBook.RightToLeft() {
		t.Error("nil book should not be right-to-left")
	}
	b := testBook("b", 2)
	if b.RightToLeft() {
		t.Error("english book reported right-to-left")
	}
	b.Pages[0].Front.Language = "hebrew"
	if !b.RightToLeft() {
		t.Error("hebrew first page should make the book right-to-left")
	}
}

func TestPageContent(t *testing.T) {
	p := textPage("x")
	if p.Content(SideFront) != p.Front {
		t.Error("front side mismatch")
	}
	if p.Content(SideBack) != p.Back {
		t.Error("back side mismatch")
	}
	if SideFront.String() != "front" || SideBack.String() != "back" {
		t.Errorf("side names = %q, %q", SideFront, SideBack)
	}
}

func TestClampInt(t *testing.T) {
	tests := []struct{ v, lo, hi, want int }{
		{-1, 0, 5, 0},
		{0, 0, 5, 0},
		{3, 0, 5, 3},
		{9, 0, 5, 5},
	}
	for _, tt := range tests {
		if got := clampInt(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clampInt(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}
