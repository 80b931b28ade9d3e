package agent

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws a contribution around a mean.
type Sampler interface {
	Sample(mean float64) float64
}

// NormalSampler draws from a normal distribution with unit standard
// deviation. It is not safe for concurrent use.
type NormalSampler struct {
	src rand.Source
}

// NewNormalSampler returns a sampler seeded for reproducible runs.
func NewNormalSampler(seed uint64) *NormalSampler {
	return &NormalSampler{src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}
}

func (s *NormalSampler) Sample(mean float64) float64 {
	return distuv.Normal{Mu: mean, Sigma: 1, Src: s.src}.Rand()
}

// SamplerFunc adapts a plain function to a Sampler.
type SamplerFunc func(mean float64) float64

func (f SamplerFunc) Sample(mean float64) float64 { return f(mean) }

// DecideAction returns this round's contribution. The agent's own risk
// preference and its average belief about the peers are weighted equally,
// the draw is clamped to [0, Money] and truncated toward zero. The agent's
// state is not changed.
func (a *Agent) DecideAction(s Sampler) (int, error) {
	avgPerceived, err := a.beliefs.Mean()
	if err != nil {
		return 0, fmt.Errorf("%s: decide action: %w", a.Name, err)
	}

	base := a.Money * (1 - a.RiskLevel)
	weighted := 0.5*(1-a.RiskLevel) + 0.5*(1-avgPerceived)

	draw := s.Sample(weighted * base)
	if math.IsNaN(draw) {
		draw = 0
	}
	contribution := int(clamp(draw, 0, a.Money))

	a.log.Info(fmt.Sprintf("%s puts %d in the pool.", a.Name, contribution), "agent", a.ID)
	return contribution, nil
}
