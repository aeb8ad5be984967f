package interact

import "github.com/eggchase/server/internal/core/ecs"

// Pair is a candidate interaction reported by detection.
type Pair struct {
	A, B ecs.EntityID
}

// PairList buffers one tick of candidate pairs. Repeats are dropped, so
// each pair resolves once no matter how often detection reported it.
// Symmetric lists treat (a,b) and (b,a) as the same pair.
type PairList struct {
	symmetric bool
	seen      map[Pair]struct{}
	order     []Pair
}

func NewPairList(symmetric bool) *PairList {
	return &PairList{
		symmetric: symmetric,
		seen:      make(map[Pair]struct{}, 16),
		order:     make([]Pair, 0, 16),
	}
}

// Insert records a pair, reporting false for a repeat or a self pair.
func (l *PairList) Insert(a, b ecs.EntityID) bool {
	if a == b {
		return false
	}
	key := Pair{a, b}
	if l.symmetric && b < a {
		key = Pair{b, a}
	}
	if _, ok := l.seen[key]; ok {
		return false
	}
	l.seen[key] = struct{}{}
	l.order = append(l.order, Pair{a, b})
	return true
}

// Pairs returns pending pairs in first-reported order.
func (l *PairList) Pairs() []Pair { return l.order }

func (l *PairList) Len() int { return len(l.order) }

func (l *PairList) Reset() {
	clear(l.seen)
	l.order = l.order[:0]
}
