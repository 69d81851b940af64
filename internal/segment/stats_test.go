package segment

import (
	"image/color"
	"math"
	"testing"
)

func TestStatsSharesSumToOne(t *testing.T) {
	img := noiseImage(12, 10)
	res, err := Segment(img, 4, NewRand(13))
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	stats := Stats(img, res)
	if len(stats) != 4 {
		t.Fatalf("Expected 4 cluster stats, got %d", len(stats))
	}

	totalPop := 0
	totalShare := 0.0
	for i, s := range stats {
		if s.Index != i+1 {
			t.Errorf("Expected 1-based index %d, got %d", i+1, s.Index)
		}
		if s.Population != res.Masks[i].Count() {
			t.Errorf("Cluster %d: population %d does not match mask count %d", s.Index, s.Population, res.Masks[i].Count())
		}
		totalPop += s.Population
		totalShare += s.Share
	}
	if totalPop != 12*10 {
		t.Errorf("Expected populations to sum to %d, got %d", 12*10, totalPop)
	}
	if math.Abs(totalShare-1.0) > 1e-9 {
		t.Errorf("Expected shares to sum to 1, got %f", totalShare)
	}
}

func TestStatsSolidClusterHasZeroSpread(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	img := quadrantImage(red, blue)

	res, err := Segment(img, 2, NewRand(7))
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	for _, s := range Stats(img, res) {
		if s.MeanDist != 0 {
			t.Errorf("Cluster %d: expected zero mean distance for solid region, got %f", s.Index, s.MeanDist)
		}
		if s.StdDevDist != 0 {
			t.Errorf("Cluster %d: expected zero stddev for solid region, got %f", s.Index, s.StdDevDist)
		}
	}
}
