package game

// Result is the state of a game: ongoing or one of the ways it can end.
type Result uint8

const (
	Ongoing Result = iota
	WhiteVictory
	BlackVictory
	Draw
	DrawFiftyMoveRule
	DrawThreefoldRepetition
)

// fiftyMoveLimit is the halfmove clock value that ends the game.
const fiftyMoveLimit = 100

func (r Result) String() string {
	switch r {
	case WhiteVictory:
		return "white victory"
	case BlackVictory:
		return "black victory"
	case Draw:
		return "draw"
	case DrawFiftyMoveRule:
		return "draw by fifty-move rule"
	case DrawThreefoldRepetition:
		return "draw by threefold repetition"
	default:
		return "ongoing"
	}
}

// Finished reports whether the game is over.
func (r Result) Finished() bool { return r != Ongoing }

// Score is the PGN result token.
func (r Result) Score() string {
	switch r {
	case WhiteVictory:
		return "1-0"
	case BlackVictory:
		return "0-1"
	case Draw, DrawFiftyMoveRule, DrawThreefoldRepetition:
		return "1/2-1/2"
	default:
		return "*"
	}
}
