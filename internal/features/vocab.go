package features

// termWeights is the fixed vocabulary established at training time, reduced to
// the discriminative unigrams. Positive weights pull toward fraud, negative
// toward legitimate investment content. Terms outside the vocabulary are
// dropped during extraction.
var termWeights = map[string]float64{
	// fraud-leaning
	"guaranteed":  0.9,
	"guarantee":   0.8,
	"profit":      0.5,
	"profits":     0.5,
	"returns":     0.3,
	"free":        0.4,
	"urgent":      0.7,
	"urgently":    0.7,
	"insider":     0.9,
	"tip":         0.5,
	"tips":        0.5,
	"whatsapp":    0.6,
	"telegram":    0.6,
	"secret":      0.6,
	"exclusive":   0.5,
	"rich":        0.6,
	"wealth":      0.4,
	"scheme":      0.4,
	"double":      0.6,
	"triple":      0.7,
	"crore":       0.5,
	"crorepati":   0.8,
	"lakh":        0.5,
	"jackpot":     0.8,
	"bonus":       0.5,
	"multibagger": 0.7,
	"hurry":       0.6,
	"immediately": 0.5,
	"join":        0.3,
	"transfer":    0.4,
	"stock":       0.2,
	"trading":     0.2,
	"invest":      0.1,
	"investment":  0.1,

	// legitimate-leaning
	"mutual":          -0.5,
	"diversification": -0.6,
	"portfolio":       -0.4,
	"sip":             -0.5,
	"systematic":      -0.5,
	"prospectus":      -0.6,
	"regulatory":      -0.5,
	"compliance":      -0.5,
	"disclosure":      -0.5,
	"circular":        -0.4,
	"guidelines":      -0.4,
	"allocation":      -0.4,
	"rebalancing":     -0.5,
	"risks":           -0.3,
	"planning":        -0.3,
	"insurance":       -0.3,
	"deposit":         -0.2,
	"funds":           -0.3,
}

// maxTermCount caps how many occurrences of a single term contribute to its
// vector entry, matching the diminishing-returns behavior used in training.
const maxTermCount = 3
