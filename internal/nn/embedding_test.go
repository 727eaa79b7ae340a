package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ember-ml/ember/internal/tensor"
)

func TestEmbeddingLookupMatchesTable(t *testing.T) {
	e, err := NewEmbedding(5, 4, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewEmbedding error: %v", err)
	}
	ids := [][]int{{1, 3}, {0, 2}}

	out, err := e.Forward(ids)
	if err != nil {
		t.Fatalf("Forward error: %v", err)
	}
	if !out.Shape().Equal(tensor.Shape{2, 2, 4}) {
		t.Fatalf("shape = %v, want [2 2 4]", out.Shape())
	}

	table := e.Parameters()[0].Tensor()
	for b, row := range ids {
		for s, id := range row {
			for d := 0; d < 4; d++ {
				if out.At(b, s, d) != table.At(id, d) {
					t.Fatalf("out[%d,%d,%d] = %f, want table[%d,%d] = %f",
						b, s, d, out.At(b, s, d), id, d, table.At(id, d))
				}
			}
		}
	}
}

func TestEmbeddingRepeatedIDsShareVector(t *testing.T) {
	e, _ := NewEmbedding(10, 3, rand.New(rand.NewSource(2)))

	out, err := e.Forward([][]int{{7, 7}})
	if err != nil {
		t.Fatalf("Forward error: %v", err)
	}
	for d := 0; d < 3; d++ {
		if out.At(0, 0, d) != out.At(0, 1, d) {
			t.Fatal("repeated id should produce identical vectors")
		}
	}
}

func TestEmbeddingRows(t *testing.T) {
	e, _ := NewEmbedding(6, 2, rand.New(rand.NewSource(3)))

	rows, err := e.Rows(4)
	if err != nil {
		t.Fatalf("Rows error: %v", err)
	}
	if !rows.Shape().Equal(tensor.Shape{4, 2}) {
		t.Fatalf("shape = %v, want [4 2]", rows.Shape())
	}
	table := e.Parameters()[0].Tensor()
	for i := 0; i < 4; i++ {
		for d := 0; d < 2; d++ {
			if rows.At(i, d) != table.At(i, d) {
				t.Fatalf("rows[%d,%d] = %f, want %f", i, d, rows.At(i, d), table.At(i, d))
			}
		}
	}

	for _, n := range []int{0, -1, 7} {
		if _, err := e.Rows(n); err == nil {
			t.Errorf("Rows(%d) should fail", n)
		}
	}
}

func TestEmbeddingOutOfRangeID(t *testing.T) {
	e, _ := NewEmbedding(5, 4, rand.New(rand.NewSource(4)))

	if _, err := e.Forward([][]int{{0, 5}}); err == nil {
		t.Error("id equal to table size should fail")
	}
	if _, err := e.Forward([][]int{{-1}}); err == nil {
		t.Error("negative id should fail")
	}
}

func TestEmbeddingRejectsRaggedBatch(t *testing.T) {
	e, _ := NewEmbedding(5, 4, rand.New(rand.NewSource(5)))

	if _, err := e.Forward([][]int{{1, 2}, {3}}); err == nil {
		t.Error("ragged batch should fail")
	}
	if _, err := e.Forward(nil); err == nil {
		t.Error("empty batch should fail")
	}
	if _, err := e.Forward([][]int{{}}); err == nil {
		t.Error("empty rows should fail")
	}
}

func TestEmbeddingInitIsStandardNormal(t *testing.T) {
	e, _ := NewEmbedding(200, 50, rand.New(rand.NewSource(6)))

	var sum, sumSq float64
	data := e.Parameters()[0].Tensor().Data()
	for _, v := range data {
		sum += float64(v)
		sumSq += float64(v) * float64(v)
	}
	n := float64(len(data))
	mean := sum / n
	variance := sumSq/n - mean*mean
	if math.Abs(mean) > 0.05 {
		t.Errorf("init mean = %f, want ~0", mean)
	}
	if math.Abs(variance-1) > 0.1 {
		t.Errorf("init variance = %f, want ~1", variance)
	}
}

func TestEmbeddingRejectsNonPositiveSizes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := NewEmbedding(0, 4, rng); err == nil {
		t.Error("zero table size should fail")
	}
	if _, err := NewEmbedding(5, 0, rng); err == nil {
		t.Error("zero dim should fail")
	}
}
