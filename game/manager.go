package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"chessdelux/engine"
	pos "chessdelux/position"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over")
)

// Config seeds a game. An empty FEN starts from the initial position.
type Config struct {
	FEN string
	// SecondsPerMove is handed to strategies as their remaining time.
	SecondsPerMove float64
	// Depth is the search depth handed to strategies.
	Depth int
}

// HistoryEntry is a position of the game and the move that reached it. The first entry
// has a null move.
type HistoryEntry struct {
	FEN  string
	Move pos.Move
}

// Manager owns the authoritative game: the position, its repetition history and the
// result. It is not safe for concurrent use.
type Manager struct {
	config   Config
	startFEN string
	position *pos.Position
	reps     *engine.RepetitionStack
	history  []HistoryEntry
	result   Result
}

func NewManager(cfg Config) (*Manager, error) {
	fen := cfg.FEN
	if fen == "" {
		fen = pos.StartFEN
	}
	p, err := pos.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	if cfg.Depth < 1 {
		cfg.Depth = engine.DefaultOptions().Depth
	}
	m := &Manager{
		config:   cfg,
		startFEN: p.FEN(),
		position: p,
		reps:     engine.NewRepetitionStack(),
	}
	m.reps.Record(p)
	m.history = append(m.history, HistoryEntry{FEN: m.startFEN, Move: pos.NullMove})
	m.updateResult()
	return m, nil
}

// Position returns a copy of the current position.
func (m *Manager) Position() *pos.Position { return m.position.Clone() }

// Repetitions returns a copy of the repetition history.
func (m *Manager) Repetitions() *engine.RepetitionStack { return m.reps.Clone() }

func (m *Manager) FEN() string { return m.position.FEN() }

// StartFEN is the position the game began from.
func (m *Manager) StartFEN() string { return m.startFEN }

func (m *Manager) Result() Result { return m.result }

func (m *Manager) SideToMove() pos.Color { return m.position.SideToMove() }

// LegalMoves returns a copy of the legal moves in the current position.
func (m *Manager) LegalMoves() []pos.Move { return slices.Clone(m.position.LegalMoves()) }

// History returns every position of the game, oldest first.
func (m *Manager) History() []HistoryEntry { return slices.Clone(m.history) }

// Moves returns the moves played so far.
func (m *Manager) Moves() []pos.Move {
	moves := make([]pos.Move, 0, len(m.history)-1)
	for _, h := range m.history[1:] {
		moves = append(moves, h.Move)
	}
	return moves
}

// MakeMove plays mv if it is legal in the current position.
func (m *Manager) MakeMove(mv pos.Move) error {
	if m.result.Finished() {
		return fmt.Errorf("%s: %w (%s)", mv, ErrGameOver, m.result)
	}
	i := slices.IndexFunc(m.position.LegalMoves(), mv.SameAs)
	if i < 0 {
		return fmt.Errorf("%s: %w", mv, ErrIllegalMove)
	}
	// play the generated move so flags and captures are filled in
	m.apply(m.position.LegalMoves()[i])
	return nil
}

// MakeUCIMove plays a move given in UCI notation.
func (m *Manager) MakeUCIMove(s string) error {
	if m.result.Finished() {
		return fmt.Errorf("%s: %w (%s)", s, ErrGameOver, m.result)
	}
	mv, err := pos.ParseUCIMove(m.position, s)
	if err != nil {
		if errors.Is(err, pos.ErrUnknownMove) {
			return fmt.Errorf("%s: %w", s, ErrIllegalMove)
		}
		return err
	}
	return m.MakeMove(mv)
}

func (m *Manager) apply(mv pos.Move) {
	m.position.MakeMove(mv)
	m.reps.Record(m.position)
	m.history = append(m.history, HistoryEntry{FEN: m.position.FEN(), Move: mv})
	m.updateResult()
	if m.result.Finished() {
		log.Info().Str("result", m.result.String()).Int("plies", len(m.history)-1).Msg("game over")
	}
}

func (m *Manager) updateResult() {
	p := m.position
	switch {
	case !p.HasLegalMoves():
		switch {
		case !p.InCheck(p.SideToMove()):
			m.result = Draw
		case p.SideToMove() == pos.White:
			m.result = BlackVictory
		default:
			m.result = WhiteVictory
		}
	case p.HalfmoveClock() >= fiftyMoveLimit:
		m.result = DrawFiftyMoveRule
	case m.reps.Drawn():
		m.result = DrawThreefoldRepetition
	default:
		m.result = Ongoing
	}
}

// PlayEngineMove asks s for a move and plays it.
func (m *Manager) PlayEngineMove(ctx context.Context, s engine.Strategy) (pos.Move, error) {
	if m.result.Finished() {
		return pos.NullMove, fmt.Errorf("engine move: %w (%s)", ErrGameOver, m.result)
	}
	mv, err := s.SelectMove(ctx, m.Position(), m.Repetitions(), m.config.SecondsPerMove, m.config.Depth)
	if err != nil {
		return pos.NullMove, fmt.Errorf("engine move: %w", err)
	}
	if err := m.MakeMove(mv); err != nil {
		return pos.NullMove, fmt.Errorf("engine move: %w", err)
	}
	return mv, nil
}

// AutoPlay lets white and black play each other until the game ends, maxPlies moves
// have been made or ctx is cancelled. It returns the result at that point.
func (m *Manager) AutoPlay(ctx context.Context, white, black engine.Strategy, maxPlies int) (Result, error) {
	for ply := 0; ply < maxPlies && !m.result.Finished(); ply++ {
		if err := ctx.Err(); err != nil {
			return m.result, err
		}
		s := white
		if m.position.SideToMove() == pos.Black {
			s = black
		}
		mv, err := m.PlayEngineMove(ctx, s)
		if err != nil {
			return m.result, err
		}
		log.Debug().Int("ply", ply+1).Str("move", mv.String()).Str("fen", m.FEN()).Msg("auto play")
	}
	return m.result, nil
}
