package engine

import (
	"golang.org/x/exp/slices"

	pos "chessdelux/position"
)

// threefoldLimit is the occurrence count at which a line is drawn.
const threefoldLimit = 3

// Signature identifies a position for repetition purposes: the placement plus the full
// legal move set. Placement alone is not enough, rights and en passant show up only in
// the moves.
type Signature struct {
	Board [64]pos.Piece
	// sorted move keys, see pos.Move.Key
	Moves []uint32
}

// SignatureOf derives the repetition signature of p.
func SignatureOf(p *pos.Position) Signature {
	legal := p.LegalMoves()
	keys := make([]uint32, len(legal))
	for i, m := range legal {
		keys[i] = m.Key()
	}
	slices.Sort(keys)
	return Signature{Board: p.Placement(), Moves: keys}
}

// Equal reports strict signature equality.
func (s Signature) Equal(o Signature) bool {
	return s.Board == o.Board && slices.Equal(s.Moves, o.Moves)
}

// RepetitionEntry is a seen signature and how many times it was reached.
type RepetitionEntry struct {
	Signature Signature
	Count     int
}

// RepetitionStack records every position of a line. In the authoritative game it only
// grows; during search each branch works on its own copy.
type RepetitionStack struct {
	entries []RepetitionEntry
}

// NewRepetitionStack returns an empty stack.
func NewRepetitionStack() *RepetitionStack { return &RepetitionStack{} }

// Record counts p: the matching entry is incremented, or a new one appended with count 1.
// It returns the resulting count.
func (rs *RepetitionStack) Record(p *pos.Position) int {
	sig := SignatureOf(p)
	if i := slices.IndexFunc(rs.entries, func(e RepetitionEntry) bool { return e.Signature.Equal(sig) }); i >= 0 {
		rs.entries[i].Count++
		return rs.entries[i].Count
	}
	rs.entries = append(rs.entries, RepetitionEntry{Signature: sig, Count: 1})
	return 1
}

// Count returns how often p has been recorded.
func (rs *RepetitionStack) Count(p *pos.Position) int {
	sig := SignatureOf(p)
	for _, e := range rs.entries {
		if e.Signature.Equal(sig) {
			return e.Count
		}
	}
	return 0
}

// MaxCount returns the highest occurrence count on the stack.
func (rs *RepetitionStack) MaxCount() int {
	best := 0
	for _, e := range rs.entries {
		best = Max(best, e.Count)
	}
	return best
}

// Drawn reports whether any position has been reached three times.
func (rs *RepetitionStack) Drawn() bool { return rs.MaxCount() >= threefoldLimit }

// Len is the number of distinct signatures.
func (rs *RepetitionStack) Len() int { return len(rs.entries) }

// Entries returns a copy of the entries.
func (rs *RepetitionStack) Entries() []RepetitionEntry { return slices.Clone(rs.entries) }

// Clone returns an independent copy. Signatures are immutable once recorded, so their
// move slices are shared.
func (rs *RepetitionStack) Clone() *RepetitionStack {
	return &RepetitionStack{entries: slices.Clone(rs.entries)}
}

// CopyFrom overwrites rs with src, reusing rs's buffer.
func (rs *RepetitionStack) CopyFrom(src *RepetitionStack) {
	rs.entries = append(rs.entries[:0], src.entries...)
}
