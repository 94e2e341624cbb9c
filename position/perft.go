package position

// Perft counts leaf nodes of the legal move tree to the given depth.
func Perft(p *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	// one scratch position per ply
	scratch := make([]Position, depth)
	return perftRec(p, depth, scratch)
}

func perftRec(p *Position, depth int, scratch []Position) uint64 {
	moves := p.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	child := &scratch[depth-1]
	for _, m := range moves {
		child.CopyFrom(p)
		child.MakeMove(m)
		nodes += perftRec(child, depth-1, scratch)
	}
	return nodes
}

// PerftDivide returns the perft count below each root move.
func PerftDivide(p *Position, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range p.LegalMoves() {
		child := p.Clone()
		child.MakeMove(m)
		result[m] = Perft(child, depth-1)
	}
	return result
}
