// Package images matches catalog names to image files and resolves the file served for a record.
package images

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	dom "github.com/DennisRussell0/cereal-api/internal/domain"
)

// ErrNoImage means neither the record's image nor the default image exists on disk.
var ErrNoImage = errors.New("image not found")

// Normalize lower-cases s and drops every character outside [a-z0-9].
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type entry struct {
	stem string
	file string
}

// Index is a snapshot of an image directory keyed by normalized file stem.
type Index struct {
	entries []entry
}

// LoadIndex lists dir in file-name order. A missing directory returns an empty index
// together with an error wrapping fs.ErrNotExist, so callers can warn and continue.
func LoadIndex(dir string) (*Index, error) {
	list, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Index{}, fmt.Errorf("image dir %q: %w", dir, err)
		}
		return nil, fmt.Errorf("read image dir: %w", err)
	}
	idx := &Index{entries: make([]entry, 0, len(list))}
	for _, e := range list {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		idx.entries = append(idx.entries, entry{
			stem: Normalize(strings.TrimSuffix(name, filepath.Ext(name))),
			file: name,
		})
	}
	return idx, nil
}

// Match returns the first file whose normalized stem equals the normalized name.
func (i *Index) Match(name string) (string, bool) {
	want := Normalize(name)
	for _, e := range i.entries {
		if e.stem == want {
			return e.file, true
		}
	}
	return "", false
}

// Len returns the number of indexed files.
func (i *Index) Len() int { return len(i.entries) }

// Resolver maps a record to the image file to serve.
type Resolver struct {
	dir          string
	defaultImage string
}

func NewResolver(dir, defaultImage string) *Resolver {
	return &Resolver{dir: dir, defaultImage: defaultImage}
}

// Path returns the on-disk path of c's image, or of the default image when c has none.
// Only the base name of the stored path is used, so records cannot point outside dir.
func (r *Resolver) Path(c dom.Cereal) (string, error) {
	name := r.defaultImage
	if c.ImagePath != nil && *c.ImagePath != "" {
		name = *c.ImagePath
	}
	base := filepath.Base(filepath.Clean("/" + filepath.ToSlash(name)))
	if base == "/" || base == "." {
		return "", ErrNoImage
	}
	full := filepath.Join(r.dir, base)
	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNoImage
		}
		return "", fmt.Errorf("stat image: %w", err)
	}
	if info.IsDir() {
		return "", ErrNoImage
	}
	return full, nil
}
