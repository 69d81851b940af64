package segment

import (
	"testing"
)

func TestParseSeedMode(t *testing.T) {
	tests := []struct {
		input   string
		want    SeedMode
		wantErr bool
	}{
		{"content", SeedContent, false},
		{"filepath", SeedFilepath, false},
		{"manual", SeedManual, false},
		{"random", SeedRandom, false},
		{"bogus", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSeedMode(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestContentSeedDeterministic(t *testing.T) {
	img := noiseImage(32, 32)

	first := ContentSeed(img)
	second := ContentSeed(img)
	if first != second {
		t.Errorf("Expected identical seeds for identical content, got %d and %d", first, second)
	}

	other := noiseImage(32, 32)
	other.Pix[0] = ^other.Pix[0]
	if ContentSeed(other) == first {
		t.Error("Expected different seed for different content")
	}
}

func TestFilepathSeedDeterministic(t *testing.T) {
	first := FilepathSeed("/tmp/a.png")
	second := FilepathSeed("/tmp/a.png")
	if first != second {
		t.Errorf("Expected identical seeds for identical paths, got %d and %d", first, second)
	}
	if FilepathSeed("/tmp/b.png") == first {
		t.Error("Expected different seed for different path")
	}
}

func TestCalculateSeed(t *testing.T) {
	img := noiseImage(8, 8)

	seed, err := CalculateSeed(img, "", SeedConfig{Mode: SeedManual, Value: 1234})
	if err != nil {
		t.Fatalf("CalculateSeed failed: %v", err)
	}
	if seed != 1234 {
		t.Errorf("Expected manual seed 1234, got %d", seed)
	}

	if _, err := CalculateSeed(nil, "x.png", SeedConfig{Mode: SeedContent}); err == nil {
		t.Error("Expected error for content mode without image, got nil")
	}
	if _, err := CalculateSeed(img, "", SeedConfig{Mode: SeedFilepath}); err == nil {
		t.Error("Expected error for filepath mode without path, got nil")
	}
	if _, err := CalculateSeed(img, "x.png", SeedConfig{Mode: "bogus"}); err == nil {
		t.Error("Expected error for unknown mode, got nil")
	}
}

func TestNewRandDeterministic(t *testing.T) {
	a := NewRand(42)
	b := NewRand(42)
	for i := 0; i < 10; i++ {
		if a.Int63() != b.Int63() {
			t.Fatal("Expected identical sequences from identical seeds")
		}
	}
}
