package classifier

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ayusharyakashyap/InvestShield/internal/models"
)

// DefaultModelWeight is used for any model the configuration does not mention.
const DefaultModelWeight = 1.0

// Registry is the immutable set of ensemble models, constructed once at
// process start and shared read-only by all scoring calls. A model that fails
// validation at construction is a fatal error for the caller: the engine must
// never silently drop a model and produce unverified scores.
type Registry struct {
	members []member
	logger  *zap.Logger
}

type member struct {
	model  Model
	weight float64
}

// NewRegistry builds the registry in the fixed model order (forest, gbm,
// linear). weights maps model name to its fusion weight; a weight of 0
// disables the model, an absent entry means DefaultModelWeight.
func NewRegistry(weights map[string]float64, logger *zap.Logger) (*Registry, error) {
	r := &Registry{logger: logger}

	for _, m := range []Model{newForestModel(), newBoostedModel(), newLinearModel()} {
		w, ok := weights[m.Name()]
		if !ok {
			w = DefaultModelWeight
		}
		if w < 0 {
			return nil, fmt.Errorf("model %s has negative weight %.2f", m.Name(), w)
		}
		if w == 0 {
			logger.Info("Ensemble model disabled by configuration", zap.String("model", m.Name()))
			continue
		}
		if err := m.validate(); err != nil {
			return nil, fmt.Errorf("model %s failed validation: %w", m.Name(), err)
		}
		r.members = append(r.members, member{model: m, weight: w})
	}

	if len(r.members) == 0 {
		return nil, fmt.Errorf("all ensemble models are disabled")
	}
	return r, nil
}

// Names returns the enabled model names in invocation order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.members))
	for _, m := range r.members {
		names = append(names, m.model.Name())
	}
	return names
}

// Weights returns the enabled models' fusion weights keyed by name.
func (r *Registry) Weights() map[string]float64 {
	weights := make(map[string]float64, len(r.members))
	for _, m := range r.members {
		weights[m.model.Name()] = m.weight
	}
	return weights
}

// Predict runs every enabled model over the feature vector in the fixed
// order. A model that fails or panics on this specific input is excluded from
// the vote and counted in excluded; the request continues as long as at least
// one model voted.
func (r *Registry) Predict(f *models.ExtractedFeatures) (votes []models.ModelVote, excluded int) {
	for _, m := range r.members {
		vote, err := r.predictOne(m, f)
		if err != nil {
			r.logger.Warn("Ensemble model excluded from vote",
				zap.String("model", m.model.Name()),
				zap.Error(err))
			excluded++
			continue
		}
		votes = append(votes, vote)
	}
	return votes, excluded
}

func (r *Registry) predictOne(m member, f *models.ExtractedFeatures) (vote models.ModelVote, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("model %s panicked: %v", m.model.Name(), rec)
		}
	}()

	vote, err = m.model.Predict(f)
	if err != nil {
		return models.ModelVote{}, err
	}
	if vote.Probability < 0 || vote.Probability > 1 {
		return models.ModelVote{}, fmt.Errorf("model %s returned probability %.3f outside [0,1]", m.model.Name(), vote.Probability)
	}
	vote.Weight = m.weight
	return vote, nil
}
