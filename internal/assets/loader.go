// Package assets loads sprite images at a requested size. Loading never
// fails: anything that cannot be read or decoded is replaced by a solid
// placeholder, so the game runs without any asset files.
package assets

import (
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg" // sprite formats
	_ "image/png"
	"io/fs"
	"sort"
	"sync"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Loader reads images from a filesystem, typically os.DirFS of the asset dir.
type Loader struct {
	fsys fs.FS

	mu      sync.Mutex
	missing map[string]string // name -> reason
}

// NewLoader reads from fsys. A nil fsys serves placeholders only.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys, missing: map[string]string{}}
}

// Load decodes name and scales it to size. The second result is false when
// the placeholder was used instead.
func (l *Loader) Load(name string, size image.Point, fallback color.Color) (*image.RGBA, bool) {
	if size.X < 1 {
		size.X = 1
	}
	if size.Y < 1 {
		size.Y = 1
	}
	src, reason := l.decode(name)
	if src == nil {
		l.mu.Lock()
		l.missing[name] = reason
		l.mu.Unlock()
		return Placeholder(size, fallback), false
	}
	dst := image.NewRGBA(image.Rectangle{Max: size})
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, true
}

func (l *Loader) decode(name string) (image.Image, string) {
	if l.fsys == nil {
		return nil, "no asset directory"
	}
	f, err := l.fsys.Open(name)
	if err != nil {
		return nil, err.Error()
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, name + ": " + err.Error()
	}
	if b := img.Bounds(); b.Empty() {
		return nil, name + ": empty image"
	}
	return img, ""
}

// Missing lists the names that fell back to a placeholder, sorted.
func (l *Loader) Missing() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.missing))
	for name := range l.missing {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Reason explains why name fell back, or "" if it loaded.
func (l *Loader) Reason(name string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.missing[name]
}

// Placeholder is a solid size image of c.
func Placeholder(size image.Point, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}
