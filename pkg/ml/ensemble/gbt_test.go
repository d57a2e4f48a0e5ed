package ensemble

import "testing"

func stump(feature int, threshold, left, right float64) Tree {
	return Tree{Nodes: []Node{
		{Feature: feature, Threshold: threshold, Left: 1, Right: 2},
		{Leaf: true, Value: left},
		{Leaf: true, Value: right},
	}}
}

func TestGradientBoostingPredict(t *testing.T) {
	g, err := NewGradientBoosting(Spec{
		Init:         4,
		LearningRate: 0.5,
		Trees:        []Tree{stump(0, 1, -2, 2), stump(1, 10, 0, 6)},
	}, 2)
	if err != nil {
		t.Fatalf("new ensemble: %v", err)
	}
	out, err := g.Predict([][]float64{{0, 5}, {3, 20}, {1, 10}})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	want := []float64{3, 8, 3}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("row %d: expected %v, got %v", i, want[i], out[i])
		}
	}
}

func TestGradientBoostingValidatesTrees(t *testing.T) {
	cases := map[string]Spec{
		"no trees":          {LearningRate: 0.1},
		"feature oob":       {LearningRate: 0.1, Trees: []Tree{stump(5, 0, 1, 1)}},
		"backward child":    {LearningRate: 0.1, Trees: []Tree{{Nodes: []Node{{Feature: 0, Left: 0, Right: 1}, {Leaf: true}}}}},
		"zero learningrate": {Trees: []Tree{stump(0, 0, 1, 1)}},
	}
	for name, spec := range cases {
		if _, err := NewGradientBoosting(spec, 2); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
