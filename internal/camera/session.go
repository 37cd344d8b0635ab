// Package camera wraps a capture device in a fail-soft session. A missing or
// broken device never reaches the caller as an error during play; Frame just
// reports that nothing is available.
package camera

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrUnavailable is returned by devices that cannot be opened at all.
	ErrUnavailable = errors.New("camera: device unavailable")
	// ErrNotOpen is returned by Read on a closed device.
	ErrNotOpen = errors.New("camera: device not open")
)

// Device is the raw capture driver. Read may block on device I/O; Close must
// be safe to call while a Read is in flight and should make it return.
type Device interface {
	Open() error
	Read() (image.Image, error)
	Close() error
}

// Session owns a Device between Start and Stop. Capture runs on its own
// goroutine and hands frames over through a single mutex-guarded slot, so a
// slow Read never stalls the game tick.
type Session struct {
	dev      Device
	size     image.Point
	interval time.Duration
	stopWait time.Duration
	logf     func(format string, args ...any)

	life   sync.Mutex // serialises Start and Stop
	cancel context.CancelFunc
	group  *errgroup.Group

	mu     sync.Mutex // guards open, gen, frame and failed
	open   bool
	gen    int // bumped by Start so an abandoned reader cannot publish
	frame  *image.RGBA
	failed int
}

// Option configures a Session.
type Option func(*Session)

// WithFrameSize scales every captured frame to w x h. Zero keeps the native size.
func WithFrameSize(w, h int) Option {
	return func(s *Session) { s.size = image.Pt(w, h) }
}

// WithInterval sets the delay between reads.
func WithInterval(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithStopTimeout bounds how long Stop waits for an in-flight Read.
func WithStopTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.stopWait = d
		}
	}
}

// WithLogger receives capture diagnostics. log.Printf fits.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(s *Session) { s.logf = logf }
}

// NewSession wraps dev. A nil dev behaves as an unavailable camera.
func NewSession(dev Device, opts ...Option) *Session {
	if dev == nil {
		dev = Unavailable{}
	}
	s := &Session{
		dev:      dev,
		interval: time.Second / 30,
		stopWait: 100 * time.Millisecond,
		logf:     func(string, ...any) {},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start opens the device and begins capturing. Calling it while open is a
// no-op. An open failure leaves the session closed and is returned so the
// caller can log it; gameplay is expected to carry on.
func (s *Session) Start() error {
	s.life.Lock()
	defer s.life.Unlock()
	if s.IsOpen() {
		return nil
	}
	if err := s.dev.Open(); err != nil {
		return fmt.Errorf("camera open: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	s.cancel = cancel
	s.group = g

	s.mu.Lock()
	s.open = true
	s.gen++
	gen := s.gen
	s.frame = nil
	s.failed = 0
	s.mu.Unlock()

	g.Go(func() error { return s.capture(ctx, gen) })
	return nil
}

// Stop halts capture and releases the device. Calling it while closed is a
// no-op. The device is closed before waiting so a blocked Read can return; a
// reader still stuck after the stop timeout is left behind and its frame is
// discarded.
func (s *Session) Stop() {
	s.life.Lock()
	defer s.life.Unlock()
	if !s.IsOpen() {
		return
	}
	s.mu.Lock()
	s.open = false
	s.frame = nil
	s.mu.Unlock()

	s.cancel()
	if err := s.dev.Close(); err != nil {
		s.logf("camera close: %v", err)
	}
	done := make(chan error, 1)
	g := s.group
	go func() { done <- g.Wait() }()
	select {
	case err := <-done:
		if err != nil {
			s.logf("camera capture: %v", err)
		}
	case <-time.After(s.stopWait):
		s.logf("camera capture: read still blocked after %v, abandoning it", s.stopWait)
	}
	s.cancel, s.group = nil, nil
}

// IsOpen reports whether the device is currently held.
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Frame returns the most recent frame. It reports false when the session is
// closed, nothing has been captured yet, or the last read failed. The returned
// image is never written again and may be kept.
func (s *Session) Frame() (*image.RGBA, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open || s.frame == nil {
		return nil, false
	}
	return s.frame, true
}

// Failures is the number of failed reads since Start.
func (s *Session) Failures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

func (s *Session) capture(ctx context.Context, gen int) error {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		s.readOnce(gen)
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}

func (s *Session) readOnce(gen int) {
	img, err := s.dev.Read()
	var frame *image.RGBA
	if err == nil && img != nil {
		frame = toRGBA(img, s.size)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open || s.gen != gen {
		return
	}
	s.frame = frame
	if frame == nil {
		s.failed++
		if s.failed == 1 {
			s.logf("camera read: %v", err)
		}
	}
}

// toRGBA copies src into a fresh RGBA, scaling when size is set.
func toRGBA(src image.Image, size image.Point) *image.RGBA {
	b := src.Bounds()
	if size.X <= 0 || size.Y <= 0 {
		size = b.Size()
	}
	dst := image.NewRGBA(image.Rectangle{Max: size})
	if size == b.Size() {
		xdraw.Copy(dst, image.Point{}, src, b, xdraw.Src, nil)
		return dst
	}
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}
