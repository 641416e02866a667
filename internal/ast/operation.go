package ast

import (
	"sort"
	"strconv"
)

// OperationKind identifies a dice modifier. The value is the modifier's
// notation code.
type OperationKind string

const (
	// OperationMinimum raises every die below the threshold to it
	OperationMinimum OperationKind = "mi"

	// OperationMaximum lowers every die above the threshold to it
	OperationMaximum OperationKind = "ma"

	// OperationRerollOnce redraws each die in the matched set a single time
	OperationRerollOnce OperationKind = "ro"

	// OperationReroll redraws matching dice until they stop matching
	OperationReroll OperationKind = "rr"

	// OperationExplodeOnce appends one new die if any die matches
	OperationExplodeOnce OperationKind = "ra"

	// OperationExplode appends a new die per matching die, recursively
	OperationExplode OperationKind = "e"

	// OperationKeep keeps exactly the matched dice and drops the rest
	OperationKeep OperationKind = "k"

	// OperationDrop drops the matched dice
	OperationDrop OperationKind = "p"
)

// SelectorMode determines how a selector picks dice from a pool.
type SelectorMode string

const (
	// SelectorExact matches dice equal to the value
	SelectorExact SelectorMode = ""

	// SelectorLessThan matches dice below the value
	SelectorLessThan SelectorMode = "<"

	// SelectorGreaterThan matches dice above the value
	SelectorGreaterThan SelectorMode = ">"

	// SelectorHighest picks the N highest dice
	SelectorHighest SelectorMode = "h"

	// SelectorLowest picks the N lowest dice
	SelectorLowest SelectorMode = "l"
)

// Selector picks dice from a pool. For SelectorHighest and SelectorLowest
// the value is a count; for the other modes it is a comparison threshold.
type Selector struct {
	Mode  SelectorMode
	Value int
}

// Operation is one dice modifier: what to do, and which dice to do it to.
type Operation struct {
	Kind     OperationKind
	Selector Selector
}

// Matches reports whether a single die value satisfies a comparison
// selector. Ranking selectors (highest/lowest) never match a lone value;
// use Pick for those.
func (s Selector) Matches(value int) bool {
	switch s.Mode {
	case SelectorExact:
		return value == s.Value
	case SelectorLessThan:
		return value < s.Value
	case SelectorGreaterThan:
		return value > s.Value
	default:
		return false
	}
}

// Pick returns the candidate indices the selector matches. values holds the
// full pool; candidates are the indices eligible for matching, in pool
// order. Ranking selectors pick by value with ties broken by pool order,
// and the result is always returned in pool order.
func (s Selector) Pick(values []int, candidates []int) []int {
	switch s.Mode {
	case SelectorHighest, SelectorLowest:
		n := s.Value
		if n > len(candidates) {
			n = len(candidates)
		}
		if n <= 0 {
			return nil
		}
		ranked := append([]int(nil), candidates...)
		sort.SliceStable(ranked, func(i, j int) bool {
			if s.Mode == SelectorHighest {
				return values[ranked[i]] > values[ranked[j]]
			}
			return values[ranked[i]] < values[ranked[j]]
		})
		picked := ranked[:n]
		sort.Ints(picked)
		return picked
	default:
		var picked []int
		for _, i := range candidates {
			if s.Matches(values[i]) {
				picked = append(picked, i)
			}
		}
		return picked
	}
}

// Validate rejects modifier/selector combinations with no defined meaning.
// Reroll cannot take a ranking selector: the pool is re-evaluated after
// every redraw, so "the lowest die" has no stable referent. RerollOnce can,
// because its matched set is fixed once up front. Minimum and maximum take
// a bare threshold, never a selector prefix.
func (o Operation) Validate() error {
	switch o.Kind {
	case OperationMinimum, OperationMaximum:
		if o.Selector.Mode != SelectorExact {
			return ErrInvalidSelector
		}
	case OperationReroll:
		if o.Selector.Mode == SelectorHighest || o.Selector.Mode == SelectorLowest {
			return ErrInvalidSelector
		}
	case OperationRerollOnce, OperationExplodeOnce, OperationExplode,
		OperationKeep, OperationDrop:
	default:
		return ErrUnknownOperation
	}
	return nil
}

func (s Selector) String() string {
	return string(s.Mode) + strconv.Itoa(s.Value)
}

func (o Operation) String() string {
	return string(o.Kind) + o.Selector.String()
}
