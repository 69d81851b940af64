package segment

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"image"
	"math/rand"
	"path/filepath"
	"slices"
	"time"
)

// SeedMode determines how the k-means seeding randomness is derived.
// Content and filepath modes give reproducible segmentations for the same
// image or path; random is the production default.
type SeedMode string

const (
	// SeedContent derives the seed from a hash of the image pixels.
	SeedContent SeedMode = "content"
	// SeedFilepath derives the seed from the absolute source path.
	SeedFilepath SeedMode = "filepath"
	// SeedManual uses a caller-provided seed value.
	SeedManual SeedMode = "manual"
	// SeedRandom uses a fresh non-deterministic seed per call.
	SeedRandom SeedMode = "random"
)

// ValidSeedModes returns the accepted seed modes.
func ValidSeedModes() []SeedMode {
	return []SeedMode{SeedContent, SeedFilepath, SeedManual, SeedRandom}
}

// IsValidSeedMode reports whether mode names a known seed mode.
func IsValidSeedMode(mode SeedMode) bool {
	return slices.Contains(ValidSeedModes(), mode)
}

// ParseSeedMode converts a string to a SeedMode.
func ParseSeedMode(s string) (SeedMode, error) {
	mode := SeedMode(s)
	if slices.Contains(ValidSeedModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: content, filepath, manual, random)", s)
}

// SeedConfig selects how the segmentation seed is produced.
type SeedConfig struct {
	Mode  SeedMode
	Value int64 // used only by SeedManual
}

// CalculateSeed resolves the seed for a segmentation call.
func CalculateSeed(img image.Image, imagePath string, cfg SeedConfig) (int64, error) {
	switch cfg.Mode {
	case SeedContent:
		if img == nil {
			return 0, fmt.Errorf("image is required for content-based seed mode")
		}
		return ContentSeed(img), nil
	case SeedFilepath:
		if imagePath == "" {
			return 0, fmt.Errorf("image path is required for filepath-based seed mode")
		}
		return FilepathSeed(imagePath), nil
	case SeedManual:
		return cfg.Value, nil
	case SeedRandom, "":
		return RandomSeed(), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", cfg.Mode)
	}
}

// ContentSeed hashes the image dimensions plus a grid sample of pixels.
// Identical content yields an identical seed regardless of file location.
func ContentSeed(img image.Image) int64 {
	bounds := img.Bounds()
	hasher := sha256.New()

	dims := make([]byte, 8)
	binary.LittleEndian.PutUint32(dims[0:4], uint32(bounds.Dx())) // #nosec G115 -- image dimensions
	binary.LittleEndian.PutUint32(dims[4:8], uint32(bounds.Dy())) // #nosec G115 -- image dimensions
	hasher.Write(dims)

	// Sampling a grid is enough to identify the image.
	step := max(bounds.Dx()/100, bounds.Dy()/100, 1)
	px := make([]byte, 4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			px[0] = byte(r >> 8)
			px[1] = byte(g >> 8)
			px[2] = byte(b >> 8)
			px[3] = byte(a >> 8)
			hasher.Write(px)
		}
	}

	hash := hasher.Sum(nil)
	return int64(binary.LittleEndian.Uint64(hash[:8])) // #nosec G115 -- hash conversion
}

// FilepathSeed hashes the absolute source path.
func FilepathSeed(imagePath string) int64 {
	absPath, err := filepath.Abs(imagePath)
	if err != nil {
		absPath = imagePath
	}
	hasher := sha256.New()
	hasher.Write([]byte(absPath))
	hash := hasher.Sum(nil)
	return int64(binary.LittleEndian.Uint64(hash[:8])) // #nosec G115 -- hash conversion
}

// RandomSeed returns a non-deterministic seed.
func RandomSeed() int64 {
	// #nosec G404 -- intentionally non-deterministic
	return time.Now().UnixNano() + int64(rand.Intn(1000000))
}

// NewRand builds the randomness source the engine consumes.
func NewRand(seed int64) *rand.Rand {
	// #nosec G404 -- clustering seeding does not need crypto randomness
	return rand.New(rand.NewSource(seed))
}
