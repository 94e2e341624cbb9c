package game

import (
	"fmt"

	"github.com/notnil/chess"

	pos "chessdelux/position"
)

// PGN renders the game in standard algebraic notation, with tags as extra header
// pairs.
func (m *Manager) PGN(tags ...[2]string) (string, error) {
	opts := []func(*chess.Game){}
	if m.startFEN != pos.StartFEN {
		fen, err := chess.FEN(m.startFEN)
		if err != nil {
			return "", fmt.Errorf("pgn: %w", err)
		}
		opts = append(opts, fen)
	}
	g := chess.NewGame(opts...)
	if m.startFEN != pos.StartFEN {
		g.AddTagPair("SetUp", "1")
		g.AddTagPair("FEN", m.startFEN)
	}
	g.AddTagPair("Result", m.result.Score())
	for _, t := range tags {
		g.AddTagPair(t[0], t[1])
	}

	for i, mv := range m.Moves() {
		cm, err := chess.UCINotation{}.Decode(g.Position(), mv.String())
		if err != nil {
			return "", fmt.Errorf("pgn: ply %d %s: %w", i+1, mv, err)
		}
		if err := g.Move(cm); err != nil {
			return "", fmt.Errorf("pgn: ply %d %s: %w", i+1, mv, err)
		}
	}

	// checkmate and stalemate are detected by the PGN library itself; claimable draws
	// have to be recorded explicitly
	var claim chess.Method
	switch m.result {
	case DrawThreefoldRepetition:
		claim = chess.ThreefoldRepetition
	case DrawFiftyMoveRule:
		claim = chess.FiftyMoveRule
	}
	if claim != chess.NoMethod {
		if err := g.Draw(claim); err != nil {
			return "", fmt.Errorf("pgn: claiming %s: %w", m.result, err)
		}
	}
	return g.String(), nil
}
