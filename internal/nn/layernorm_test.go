package nn

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/ember-ml/ember/internal/tensor"
)

func TestLayerNormHandValues(t *testing.T) {
	ln, err := NewLayerNorm(3)
	if err != nil {
		t.Fatalf("NewLayerNorm error: %v", err)
	}

	x, _ := tensor.FromSlice([]float32{1, 2, 3}, 1, 3)
	y, err := ln.Forward(x, false)
	if err != nil {
		t.Fatalf("Forward error: %v", err)
	}

	// Biased variance of [1 2 3] is 2/3, so the normalized row is
	// [-1.2247, 0, 1.2247]. The unbiased estimate would give [-1, 0, 1].
	want, _ := tensor.FromSlice([]float32{-1.2247, 0, 1.2247}, 1, 3)
	if !y.AllClose(want, 1e-3) {
		t.Errorf("Forward = %v, want %v", y, want)
	}
}

func TestLayerNormMomentsAreStandard(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	ln, _ := NewLayerNorm(16)

	x, _ := tensor.Rand(rng, 2, 3, 16)
	y, err := ln.Forward(x, false)
	if err != nil {
		t.Fatalf("Forward error: %v", err)
	}

	for b := 0; b < 2; b++ {
		for s := 0; s < 3; s++ {
			row := make([]float64, 16)
			for i, v := range y.RowAt(b, s) {
				row[i] = float64(v)
			}
			mean := stat.Mean(row, nil)
			// stat.Variance is the unbiased estimate; rescale to the
			// population variance the layer normalizes with.
			biased := stat.Variance(row, nil) * float64(len(row)-1) / float64(len(row))

			if math.Abs(mean) > 1e-5 {
				t.Errorf("row (%d, %d) mean = %g, want 0", b, s, mean)
			}
			if math.Abs(biased-1) > 1e-3 {
				t.Errorf("row (%d, %d) biased variance = %g, want 1", b, s, biased)
			}
		}
	}
}

func TestLayerNormScaleShift(t *testing.T) {
	ln, _ := NewLayerNorm(4)
	for i := range ln.scale.Tensor().Data() {
		ln.scale.Tensor().Data()[i] = 2
		ln.shift.Tensor().Data()[i] = 0.5
	}

	x, _ := tensor.FromSlice([]float32{4, 0, 2, 2}, 1, 4)
	y, err := ln.Forward(x, false)
	if err != nil {
		t.Fatalf("Forward error: %v", err)
	}

	// mean 2, biased variance 2: the raw normalized row is
	// [1.41421, -1.41421, 0, 0], then y = 2*norm + 0.5.
	want, _ := tensor.FromSlice([]float32{
		2*1.41421 + 0.5, 2*-1.41421 + 0.5, 0.5, 0.5,
	}, 1, 4)
	if !y.AllClose(want, 1e-3) {
		t.Errorf("Forward = %v, want %v", y, want)
	}
}

func TestLayerNormUniformRow(t *testing.T) {
	ln, _ := NewLayerNorm(5)
	x, _ := tensor.Full(3.5, 2, 5)

	y, err := ln.Forward(x, false)
	if err != nil {
		t.Fatalf("Forward error: %v", err)
	}
	// Zero variance: the epsilon keeps the division finite and the
	// normalized values at 0.
	for _, v := range y.Data() {
		if math.Abs(float64(v)) > 1e-4 {
			t.Fatalf("uniform row normalized to %f, want 0", v)
		}
	}
}

func TestLayerNormTrailingDimMismatch(t *testing.T) {
	ln, _ := NewLayerNorm(8)
	x, _ := tensor.New(2, 7)
	if _, err := ln.Forward(x, false); err == nil {
		t.Error("trailing dimension 7 into dim=8 norm: want error")
	}
}

func TestLayerNormRejectsNonPositiveDim(t *testing.T) {
	if _, err := NewLayerNorm(0); err == nil {
		t.Error("dim=0: want error")
	}
}
