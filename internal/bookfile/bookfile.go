// Package bookfile reads book manifests from a content directory laid out as
// <root>/<book id>/manifest.json with photos under <root>/<book id>/textures.
package bookfile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/phanxgames/flipbook"
	"gopkg.in/yaml.v3"
)

// ManifestName is the file every book directory holds.
const ManifestName = "manifest.json"

// ErrInvalidBook indicates a manifest that parses but cannot be read as a
// book.
var ErrInvalidBook = errors.New("bookfile: invalid book")

// manifest is the on-disk shape: a book plus catalog-only fields.
type manifest struct {
	flipbook.Book `yaml:",inline"`
	CoverImage    string `yaml:"coverImage,omitempty"`
}

// Entry is one discovered book, as listed by a book picker.
type Entry struct {
	ID          string
	Title       string
	Description string
	Cover       string // path of the cover image
	Path        string // path of the manifest
	Pages       int
}

// Load reads a book from a manifest file, or from the manifest inside a book
// directory. A missing id defaults to the directory name.
func Load(path string) (*flipbook.Book, error) {
	m, err := loadManifest(path)
	if err != nil {
		return nil, err
	}
	return &m.Book, nil
}

func loadManifest(path string) (*manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat book: %w", err)
	}
	if info.IsDir() {
		path = filepath.Join(path, ManifestName)
	}

	slog.Debug("Reading manifest", "path", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return parse(data, filepath.Base(filepath.Dir(path)))
}

// Parse decodes a manifest. JSON manifests are valid YAML and parse as such.
// defaultID is used when the manifest has no id.
func Parse(data []byte, defaultID string) (*flipbook.Book, error) {
	m, err := parse(data, defaultID)
	if err != nil {
		return nil, err
	}
	return &m.Book, nil
}

func parse(data []byte, defaultID string) (*manifest, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if m.ID == "" {
		m.ID = defaultID
	}
	if m.Title == "" {
		m.Title = m.ID
	}
	if err := Validate(&m.Book); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that b has pages and that every side is well formed.
// An empty book is reported as flipbook.ErrEmptyBook.
func Validate(b *flipbook.Book) error {
	if b == nil || len(b.Pages) == 0 {
		return fmt.Errorf("book %q: %w", bookID(b), flipbook.ErrEmptyBook)
	}
	for i, p := range b.Pages {
		for _, side := range []flipbook.Side{flipbook.SideFront, flipbook.SideBack} {
			if err := validateContent(p.Content(side)); err != nil {
				return fmt.Errorf("%w: book %q page %d %s: %v", ErrInvalidBook, b.ID, i, side, err)
			}
		}
	}
	return nil
}

func validateContent(c *flipbook.Content) error {
	if c == nil {
		return errors.New("missing side")
	}
	switch c.Type {
	case flipbook.ContentText:
		return nil
	case flipbook.ContentPhoto:
		if strings.TrimSpace(c.Src) == "" {
			return errors.New("photo without src")
		}
		return nil
	}
	return fmt.Errorf("unknown content type %q", c.Type)
}

func bookID(b *flipbook.Book) string {
	if b == nil {
		return ""
	}
	return b.ID
}

// CoverPath resolves a cover image name inside a book directory. A name
// without an extension is a JPEG; an empty name means "front".
func CoverPath(dir, name string) string {
	if name == "" {
		name = "front"
	}
	if !strings.Contains(name, ".") {
		name += ".jpg"
	}
	return filepath.Join(dir, "textures", name)
}

// Discover lists the books under root, sorted by id. Directories without a
// readable manifest are skipped; their errors are joined into the returned
// error alongside whatever entries were found.
func Discover(root string) ([]Entry, error) {
	dirs, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read content root: %w", err)
	}

	var entries []Entry
	var errs []error
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		dir := filepath.Join(root, d.Name())
		path := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		m, err := loadManifest(path)
		if err != nil {
			slog.Warn("Skipping book", "dir", dir, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", d.Name(), err))
			continue
		}
		entries = append(entries, Entry{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Cover:       CoverPath(dir, m.CoverImage),
			Path:        path,
			Pages:       len(m.Pages),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	slog.Debug("Discovered books", "root", root, "count", len(entries))
	return entries, errors.Join(errs...)
}
