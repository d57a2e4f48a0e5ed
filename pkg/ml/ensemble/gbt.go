// Package ensemble evaluates gradient-boosted regression trees exported from
// the offline training pipeline.
package ensemble

import (
	"fmt"

	"github.com/okoamaisha/platform/pkg/ml"
)

type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
	Leaf      bool    `json:"leaf"`
}

type Tree struct {
	Nodes []Node `json:"nodes"`
}

type Spec struct {
	Init         float64 `json:"init"`
	LearningRate float64 `json:"learning_rate"`
	Trees        []Tree  `json:"trees"`
}

// GradientBoosting predicts init + learning_rate * sum(tree(x)).
type GradientBoosting struct {
	spec     Spec
	features int
}

func NewGradientBoosting(spec Spec, featureCount int) (*GradientBoosting, error) {
	if featureCount <= 0 {
		return nil, fmt.Errorf("feature count must be positive, got %d", featureCount)
	}
	if len(spec.Trees) == 0 {
		return nil, fmt.Errorf("ensemble has no trees")
	}
	if spec.LearningRate <= 0 {
		return nil, fmt.Errorf("learning rate must be positive, got %v", spec.LearningRate)
	}
	for t, tree := range spec.Trees {
		if err := validateTree(tree, featureCount); err != nil {
			return nil, fmt.Errorf("tree %d: %w", t, err)
		}
	}
	return &GradientBoosting{spec: spec, features: featureCount}, nil
}

func validateTree(tree Tree, featureCount int) error {
	n := len(tree.Nodes)
	if n == 0 {
		return fmt.Errorf("no nodes")
	}
	for i, node := range tree.Nodes {
		if node.Leaf {
			continue
		}
		if node.Feature < 0 || node.Feature >= featureCount {
			return fmt.Errorf("node %d splits on feature %d outside [0,%d)", i, node.Feature, featureCount)
		}
		// children must point forward so evaluation always terminates
		if node.Left <= i || node.Left >= n || node.Right <= i || node.Right >= n {
			return fmt.Errorf("node %d has invalid children %d/%d", i, node.Left, node.Right)
		}
	}
	return nil
}

func (g *GradientBoosting) FeatureCount() int {
	return g.features
}

func (g *GradientBoosting) Predict(rows [][]float64) ([]float64, error) {
	if err := ml.CheckRows(rows, g.features); err != nil {
		return nil, err
	}
	out := make([]float64, len(rows))
	for i, row := range rows {
		sum := 0.0
		for _, tree := range g.spec.Trees {
			sum += evaluate(tree, row)
		}
		out[i] = g.spec.Init + g.spec.LearningRate*sum
	}
	return out, nil
}

func evaluate(tree Tree, row []float64) float64 {
	idx := 0
	for {
		node := tree.Nodes[idx]
		if node.Leaf {
			return node.Value
		}
		if row[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}
