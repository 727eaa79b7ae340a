package nn

import (
	"math"
	"testing"

	"github.com/ember-ml/ember/internal/tensor"
)

func TestGELUKnownValues(t *testing.T) {
	g := NewGELU()
	x, _ := tensor.FromSlice([]float32{0, 1, -1, 2, -2, 3}, 6)

	y, err := g.Forward(x, false)
	if err != nil {
		t.Fatalf("Forward error: %v", err)
	}

	// Tanh-approximation values.
	want := []float32{0, 0.84119, -0.15881, 1.95460, -0.04540, 2.99636}
	for i, w := range want {
		if math.Abs(float64(y.At(i)-w)) > 1e-4 {
			t.Errorf("GELU(%g) = %f, want %f", x.At(i), y.At(i), w)
		}
	}
	if y.At(0) != 0 {
		t.Error("GELU(0) must be exactly 0")
	}
}

func TestGELUAsymptotes(t *testing.T) {
	g := NewGELU()
	x, _ := tensor.FromSlice([]float32{10, -10}, 2)
	y, _ := g.Forward(x, false)

	if math.Abs(float64(y.At(0)-10)) > 1e-4 {
		t.Errorf("GELU(10) = %f, want ~10", y.At(0))
	}
	if math.Abs(float64(y.At(1))) > 1e-4 {
		t.Errorf("GELU(-10) = %f, want ~0", y.At(1))
	}
}

func TestGELUPreservesShape(t *testing.T) {
	g := NewGELU()
	x, _ := tensor.New(2, 3, 4)
	y, err := g.Forward(x, false)
	if err != nil {
		t.Fatalf("Forward error: %v", err)
	}
	if !y.Shape().Equal(tensor.Shape{2, 3, 4}) {
		t.Errorf("shape = %v, want [2 3 4]", y.Shape())
	}
	if len(g.Parameters()) != 0 {
		t.Error("GELU should have no parameters")
	}
}

func TestReLU(t *testing.T) {
	r := NewReLU()
	x, _ := tensor.FromSlice([]float32{-2, -0.5, 0, 0.5, 2}, 5)

	y, err := r.Forward(x, false)
	if err != nil {
		t.Fatalf("Forward error: %v", err)
	}
	want, _ := tensor.FromSlice([]float32{0, 0, 0, 0.5, 2}, 5)
	if !y.AllClose(want, 0) {
		t.Errorf("ReLU = %v, want %v", y, want)
	}
}

func TestGELUDiffersFromReLUBelowZero(t *testing.T) {
	g := NewGELU()
	x, _ := tensor.FromSlice([]float32{-0.5}, 1)
	y, _ := g.Forward(x, false)
	// ReLU clips to 0; GELU keeps a small negative value there.
	if y.At(0) >= 0 {
		t.Errorf("GELU(-0.5) = %f, want negative", y.At(0))
	}
}
