package classifier

import (
	"fmt"

	"github.com/ayusharyakashyap/InvestShield/internal/models"
)

// treeNode is one node of a trained decision tree. A node with no children is
// a leaf holding a fraud probability; otherwise the sample goes left when
// feature <= threshold.
type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	leaf      float64
}

func (n *treeNode) isLeaf() bool { return n.left == nil && n.right == nil }

func (n *treeNode) eval(v featureView) float64 {
	node := n
	for !node.isLeaf() {
		if v[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.leaf
}

// forestTrees holds the trained tree-ensemble parameters.
var forestTrees = []*treeNode{
	{
		feature: featLexicalWeight, threshold: 8,
		left: &treeNode{
			feature: featLexicalWeight, threshold: 4,
			left: &treeNode{
				feature: featTermScore, threshold: 1.5,
				left:  &treeNode{leaf: 0.10},
				right: &treeNode{leaf: 0.60},
			},
			right: &treeNode{leaf: 0.75},
		},
		right: &treeNode{leaf: 0.95},
	},
	{
		feature: featUrgency, threshold: 0.6,
		left: &treeNode{
			feature: featPromiseDensity, threshold: 0.5,
			left: &treeNode{
				feature: featLexicalWeight, threshold: 2,
				left:  &treeNode{leaf: 0.08},
				right: &treeNode{leaf: 0.55},
			},
			right: &treeNode{leaf: 0.80},
		},
		right: &treeNode{leaf: 0.85},
	},
	{
		feature: featContact, threshold: 0.5,
		left: &treeNode{
			feature: featTermScore, threshold: 0,
			left:  &treeNode{leaf: 0.10},
			right: &treeNode{leaf: 0.45},
		},
		right: &treeNode{
			feature: featLexicalWeight, threshold: 2,
			left:  &treeNode{leaf: 0.60},
			right: &treeNode{leaf: 0.90},
		},
	},
	{
		feature: featTermScore, threshold: 2.5,
		left: &treeNode{
			feature: featTermScore, threshold: 1,
			left: &treeNode{
				feature: featTermScore, threshold: -1,
				left:  &treeNode{leaf: 0.03},
				right: &treeNode{leaf: 0.15},
			},
			right: &treeNode{leaf: 0.65},
		},
		right: &treeNode{leaf: 0.90},
	},
	{
		feature: featHitCount, threshold: 2.5,
		left: &treeNode{
			feature: featHitCount, threshold: 1.5,
			left: &treeNode{
				feature: featHitCount, threshold: 0.5,
				left:  &treeNode{leaf: 0.12},
				right: &treeNode{leaf: 0.50},
			},
			right: &treeNode{leaf: 0.70},
		},
		right: &treeNode{leaf: 0.92},
	},
}

// forestModel is the trained tree ensemble: fraud probability is the mean of
// the per-tree leaf probabilities.
type forestModel struct {
	trees []*treeNode
}

func newForestModel() *forestModel {
	return &forestModel{trees: forestTrees}
}

func (m *forestModel) Name() string { return "forest" }

func (m *forestModel) Predict(f *models.ExtractedFeatures) (models.ModelVote, error) {
	v := newFeatureView(f)

	var sum float64
	for _, t := range m.trees {
		sum += t.eval(v)
	}
	prob := sum / float64(len(m.trees))

	category := models.None
	if prob >= 0.5 {
		category = lexicalDominant(f)
	}

	return models.ModelVote{
		Model:             m.Name(),
		Probability:       prob,
		PredictedCategory: category,
	}, nil
}

func (m *forestModel) validate() error {
	if len(m.trees) == 0 {
		return fmt.Errorf("forest: no trees loaded")
	}
	for i, t := range m.trees {
		if err := validateTree(t); err != nil {
			return fmt.Errorf("forest: tree %d: %w", i, err)
		}
	}
	return nil
}

func validateTree(n *treeNode) error {
	if n == nil {
		return fmt.Errorf("nil node")
	}
	if n.isLeaf() {
		if n.leaf < 0 || n.leaf > 1 {
			return fmt.Errorf("leaf probability %.3f outside [0,1]", n.leaf)
		}
		return nil
	}
	if n.left == nil || n.right == nil {
		return fmt.Errorf("split node missing a child")
	}
	if n.feature < 0 || n.feature >= numFeatures {
		return fmt.Errorf("feature index %d out of range", n.feature)
	}
	if err := validateTree(n.left); err != nil {
		return err
	}
	return validateTree(n.right)
}
