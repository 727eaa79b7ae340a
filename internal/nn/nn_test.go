package nn

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/ember-ml/ember/internal/tensor"
)

var (
	_ Module = (*Linear)(nil)
	_ Module = (*LayerNorm)(nil)
	_ Module = (*GELU)(nil)
	_ Module = (*ReLU)(nil)
	_ Module = (*Dropout)(nil)
	_ Module = (*Sequential)(nil)
	_ Module = (*CausalAttention)(nil)
	_ Module = (*MultiHeadAttention)(nil)
	_ Module = (*FeedForward)(nil)
	_ Module = (*TransformerBlock)(nil)
)

func TestParameterAccessors(t *testing.T) {
	w, _ := tensor.FromSlice([]float32{1, 2}, 2)
	p := NewParameter("weight", w)

	if p.Name() != "weight" {
		t.Errorf("Name = %q, want %q", p.Name(), "weight")
	}
	if p.Tensor() != w {
		t.Error("Tensor should return the wrapped tensor")
	}
}

func TestSequentialChainsModules(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	first, _ := NewLinear(3, 5, true, rng)
	second, _ := NewLinear(5, 2, true, rng)
	seq := NewSequential(first, second)

	if seq.Len() != 2 {
		t.Fatalf("Len = %d, want 2", seq.Len())
	}

	x, _ := tensor.Rand(rand.New(rand.NewSource(2)), 4, 3)
	got, err := seq.Forward(x, false)
	if err != nil {
		t.Fatalf("Forward error: %v", err)
	}

	mid, _ := first.Forward(x, false)
	want, _ := second.Forward(mid, false)
	if !got.AllClose(want, 0) {
		t.Error("sequential output should match manual composition")
	}
}

func TestSequentialAdd(t *testing.T) {
	seq := NewSequential()
	seq.Add(NewGELU())
	seq.Add(NewReLU())
	if seq.Len() != 2 {
		t.Errorf("Len = %d, want 2", seq.Len())
	}
}

func TestSequentialReportsFailingModule(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	first, _ := NewLinear(3, 4, true, rng)
	second, _ := NewLinear(5, 2, true, rng)
	seq := NewSequential(first, second)

	x, _ := tensor.Rand(rand.New(rand.NewSource(2)), 4, 3)
	_, err := seq.Forward(x, false)
	if err == nil {
		t.Fatal("mismatched widths should fail")
	}
	if !strings.Contains(err.Error(), "module 1") {
		t.Errorf("error %q should name the failing module", err)
	}
}

func TestSequentialAggregatesParameters(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	first, _ := NewLinear(3, 4, true, rng)
	act := NewGELU()
	second, _ := NewLinear(4, 2, false, rng)
	seq := NewSequential(first, act, second)

	// weight+bias, nothing, weight.
	if got := len(seq.Parameters()); got != 3 {
		t.Errorf("param count = %d, want 3", got)
	}
}

func TestEmptySequentialIsIdentity(t *testing.T) {
	seq := NewSequential()
	x, _ := tensor.FromSlice([]float32{1, 2, 3}, 3)

	got, err := seq.Forward(x, false)
	if err != nil {
		t.Fatalf("Forward error: %v", err)
	}
	if got != x {
		t.Error("empty sequential should return the input tensor")
	}
}
