package distribution

import (
	"math"
	"sort"
)

// Epsilon bounds how far a distribution's total mass may drift from 1
// before construction fails.
const Epsilon = 1e-6

// Distribution maps an outcome to its probability mass. Instances are
// immutable once constructed; combinators build new ones.
type Distribution struct {
	weights map[float64]float64
}

// New wraps the given weights after validating that the total mass is 1
// within Epsilon. Validation is unconditional: a malformed distribution
// indicates a combinator bug, and accepting it would silently corrupt Mean
// and StdDev. The map is owned by the Distribution after this call.
func New(weights map[float64]float64) (*Distribution, error) {
	var sum float64
	for _, mass := range weights {
		sum += mass
	}
	if math.Abs(sum-1) > Epsilon {
		return nil, ErrInvalidMass
	}
	return &Distribution{weights: weights}, nil
}

// Get returns the probability mass at outcome, 0 when absent.
func (d *Distribution) Get(outcome float64) float64 {
	return d.weights[outcome]
}

// Len returns the number of outcomes carrying mass.
func (d *Distribution) Len() int {
	return len(d.weights)
}

// Outcomes returns every outcome carrying mass, ascending.
func (d *Distribution) Outcomes() []float64 {
	outcomes := make([]float64, 0, len(d.weights))
	for k := range d.weights {
		outcomes = append(outcomes, k)
	}
	sort.Float64s(outcomes)
	return outcomes
}

// Min returns the smallest outcome carrying mass.
func (d *Distribution) Min() float64 {
	first := true
	var min float64
	for k := range d.weights {
		if first || k < min {
			min = k
			first = false
		}
	}
	return min
}

// Max returns the largest outcome carrying mass.
func (d *Distribution) Max() float64 {
	first := true
	var max float64
	for k := range d.weights {
		if first || k > max {
			max = k
			first = false
		}
	}
	return max
}

// Mean returns the expected value of the distribution.
func (d *Distribution) Mean() float64 {
	return d.MeanOf(func(outcome float64) float64 { return outcome })
}

// MeanOf returns the expected value of transform applied to the outcomes.
func (d *Distribution) MeanOf(transform func(float64) float64) float64 {
	var sum float64
	for outcome, mass := range d.weights {
		sum += mass * transform(outcome)
	}
	return sum
}

// StdDev returns the standard deviation, sqrt(E[X²]−E[X]²).
func (d *Distribution) StdDev() float64 {
	mean := d.Mean()
	meanSq := d.MeanOf(func(outcome float64) float64 { return outcome * outcome })
	return math.Sqrt(meanSq - mean*mean)
}

// TransformKeys returns a new Distribution with every outcome remapped
// through transform; outcomes that collide sum their masses.
func (d *Distribution) TransformKeys(transform func(float64) float64) (*Distribution, error) {
	weights := make(map[float64]float64, len(d.weights))
	for outcome, mass := range d.weights {
		weights[transform(outcome)] += mass
	}
	return New(weights)
}
