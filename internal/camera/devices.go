package camera

import (
	"fmt"
	"image"
	"image/color"
	"sync"
)

// Unavailable is a device that can never be opened.
type Unavailable struct{}

func (Unavailable) Open() error                { return ErrUnavailable }
func (Unavailable) Read() (image.Image, error) { return nil, ErrNotOpen }
func (Unavailable) Close() error               { return nil }

// Synthetic produces moving colour bars, standing in for a webcam.
type Synthetic struct {
	W, H int

	mu    sync.Mutex
	open  bool
	frame int
}

var bars = []color.RGBA{
	{R: 192, G: 192, B: 192, A: 255},
	{R: 192, G: 192, B: 0, A: 255},
	{R: 0, G: 192, B: 192, A: 255},
	{R: 0, G: 192, B: 0, A: 255},
	{R: 192, G: 0, B: 192, A: 255},
	{R: 192, G: 0, B: 0, A: 255},
	{R: 0, G: 0, B: 192, A: 255},
}

// NewSynthetic returns a w x h test-pattern device.
func NewSynthetic(w, h int) *Synthetic {
	return &Synthetic{W: w, H: h}
}

func (s *Synthetic) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.W <= 0 || s.H <= 0 {
		return fmt.Errorf("%w: synthetic size %dx%d", ErrUnavailable, s.W, s.H)
	}
	s.open = true
	s.frame = 0
	return nil
}

func (s *Synthetic) Read() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil, ErrNotOpen
	}
	s.frame++
	img := image.NewRGBA(image.Rect(0, 0, s.W, s.H))
	barW := s.W / len(bars)
	if barW == 0 {
		barW = 1
	}
	shift := s.frame % s.W
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			c := bars[((x+shift)%s.W/barW)%len(bars)]
			img.SetRGBA(x, y, c)
		}
	}
	return img, nil
}

func (s *Synthetic) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	return nil
}

// Frames is how many frames have been read since the last Open.
func (s *Synthetic) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// FromName picks a device for the -camera flag.
func FromName(name string, w, h int) (Device, error) {
	switch name {
	case "synthetic", "":
		return NewSynthetic(w, h), nil
	case "none":
		return Unavailable{}, nil
	default:
		return nil, fmt.Errorf("unknown camera %q (supported: synthetic, none)", name)
	}
}
