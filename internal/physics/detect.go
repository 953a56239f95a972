package physics

import (
	"errors"
	"sort"
)

// HighlightPolicy decides which pairs light up.
type HighlightPolicy int

const (
	// HighlightCandidates lights up every pair whose x-extents overlap, even
	// when the circles do not touch. This is the classic look.
	HighlightCandidates HighlightPolicy = iota
	// HighlightContacts lights up only pairs that actually touch.
	HighlightContacts
)

func (h HighlightPolicy) String() string {
	switch h {
	case HighlightCandidates:
		return "candidates"
	case HighlightContacts:
		return "contacts"
	default:
		return "unknown"
	}
}

func ParseHighlightPolicy(s string) (HighlightPolicy, bool) {
	switch s {
	case "", "candidates":
		return HighlightCandidates, true
	case "contacts":
		return HighlightContacts, true
	}
	return 0, false
}

// Pair is a broad-phase candidate, A before B in sweep order.
type Pair struct {
	A, B *Body
}

type SweepStats struct {
	Candidates int
	Collisions int
	Degenerate int
}

// Detector runs sweep-and-prune on the x axis followed by an exact circle
// test, resolving each touching pair as soon as it is found.
type Detector struct {
	Highlight HighlightPolicy
	Resolver  Resolver

	// OnContact, when set, is called for every touching pair before it is
	// resolved.
	OnContact func(a, b *Body)
}

func NewDetector(policy HighlightPolicy, r Resolver) *Detector {
	return &Detector{Highlight: policy, Resolver: r}
}

// Sort orders bodies by left extent in place.
func Sort(bodies []*Body) {
	sort.SliceStable(bodies, func(i, j int) bool {
		return bodies[i].Left < bodies[j].Left
	})
}

// Candidates returns every pair with overlapping x-extents. bodies must
// already be sorted by Left.
func Candidates(bodies []*Body) []Pair {
	var pairs []Pair
	for i := range bodies {
		a := bodies[i]
		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]
			if b.Left > a.Right {
				break
			}
			pairs = append(pairs, Pair{a, b})
		}
	}
	return pairs
}

// Touching reports whether two circles overlap or just touch.
func Touching(a, b *Body) bool {
	return b.Position.Sub(a.Position).Len() <= a.radius+b.radius
}

// Sweep sorts bodies and processes every candidate pair. The slice is left
// sorted by Left.
func (d *Detector) Sweep(bodies []*Body) SweepStats {
	Sort(bodies)

	var st SweepStats
	for i := range bodies {
		a := bodies[i]
		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]
			if b.Left > a.Right {
				break
			}
			st.Candidates++
			if d.Highlight == HighlightCandidates {
				a.Highlight()
				b.Highlight()
			}

			if !Touching(a, b) {
				continue
			}
			st.Collisions++
			if d.Highlight == HighlightContacts {
				a.Highlight()
				b.Highlight()
			}
			if d.OnContact != nil {
				d.OnContact(a, b)
			}
			if d.Resolver == nil {
				continue
			}
			if err := d.Resolver.Resolve(a, b); errors.Is(err, ErrDegenerateNormal) {
				st.Degenerate++
			}
		}
	}
	return st
}
