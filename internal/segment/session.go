package segment

import (
	"image"
	"math/rand"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/zeeshanabi97/kmseg/internal/errs"
	"github.com/zeeshanabi97/kmseg/internal/filter"
)

// Session owns the mutable pipeline state: the current image and, once
// segmentation has run, the palette/label/mask triple plus the visibility
// flags. All mutation goes through the operations below, which enforce the
// invalidation rules:
//
//	LoadImage, ApplyFilter -> invalidate result and visibility
//	Segment                -> recreate result and visibility together
//	SetVisible             -> mutate visibility only
//
// Operations are serialized by an internal mutex, so the at-most-one-
// in-flight contract holds even for a careless caller. Failed operations
// leave the previous valid state intact.
type Session struct {
	mu         sync.Mutex
	img        *image.NRGBA
	result     *Result
	visibility []bool
}

// NewSession creates an empty session with no image loaded.
func NewSession() *Session {
	return &Session{}
}

// LoadImage installs a new source image and invalidates any prior
// segmentation state.
func (s *Session) LoadImage(img *image.NRGBA) error {
	if img == nil || img.Bounds().Empty() {
		return errs.InvalidInput("cannot load an empty image")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.img = img
	s.invalidateLocked()
	return nil
}

// ApplyFilter replaces the current image with its filtered variant and
// invalidates any prior segmentation state. On validation failure the
// current image and results are untouched.
func (s *Session) ApplyFilter(kind filter.Kind, p filter.Params) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil {
		return errs.InvalidInput("no image loaded")
	}
	filtered, err := filter.Apply(s.img, kind, p)
	if err != nil {
		return err
	}
	s.img = filtered
	s.invalidateLocked()
	return nil
}

// Segment clusters the current image into k clusters. On success the
// palette, label map, masks and visibility flags (all true) are recreated
// together; on failure the previous result remains valid.
func (s *Session) Segment(k int, rng *rand.Rand) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil {
		return nil, errs.InvalidInput("no image loaded")
	}
	res, err := Segment(s.img, k, rng)
	if err != nil {
		return nil, err
	}
	s.result = res
	s.visibility = make([]bool, res.K())
	for i := range s.visibility {
		s.visibility[i] = true
	}
	return res, nil
}

// SetVisible toggles one cluster's visibility. index is 0-based.
func (s *Session) SetVisible(index int, visible bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return errs.InvalidInput("no segmentation result; segment first")
	}
	if index < 0 || index >= len(s.visibility) {
		return errs.InvalidInput("cluster index %d out of range [0,%d)", index, len(s.visibility))
	}
	s.visibility[index] = visible
	return nil
}

// Image returns the current (possibly filtered) image, or nil.
func (s *Session) Image() *image.NRGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.img
}

// Result returns the current segmentation result, or nil.
func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Visibility returns a copy of the visibility flags.
func (s *Session) Visibility() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]bool, len(s.visibility))
	copy(out, s.visibility)
	return out
}

// Segmented renders the flattened palette-color preview of the current
// result.
func (s *Session) Segmented() (*image.NRGBA, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return nil, errs.InvalidInput("no segmentation result; segment first")
	}
	return RenderSegmented(s.result.Labels, s.result.Palette), nil
}

// Composite rebuilds the display image from the original pixels and the
// current visibility flags.
func (s *Session) Composite() (*image.NRGBA, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return nil, errs.InvalidInput("no segmentation result; segment first")
	}
	return Composite(s.img, s.result.Masks, s.visibility)
}

// Snapshot returns an independent copy of the current image. Callers that
// hand the image to long-running consumers use this to avoid aliasing the
// session's state.
func (s *Session) Snapshot() *image.NRGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img == nil {
		return nil
	}
	return imaging.Clone(s.img)
}

func (s *Session) invalidateLocked() {
	s.result = nil
	s.visibility = nil
}
