package entity

// Outcome is derived from the board on demand and never stored.
type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeXWins      Outcome = "x_wins"
	OutcomeOWins      Outcome = "o_wins"
	OutcomeDraw       Outcome = "draw"
)

func (that Game) Outcome() Outcome {
	switch that.Winner() {
	case PlayerX:
		return OutcomeXWins
	case PlayerO:
		return OutcomeOWins
	}

	if that.IsDraw() {
		return OutcomeDraw
	}

	return OutcomeInProgress
}
