package entity

// Mark is the content of a single board cell and doubles as the turn marker.
type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	EmptyCell Mark = ""

	// NoWinner is returned by EvaluateWinner when no triple is complete.
	NoWinner = EmptyCell
)

const BoardSize = 9

// WinCombos lists every winning triple in the order they are checked.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is indexed row-major: row 0 holds cells 0..2, row 2 holds 6..8.
type Board [BoardSize]Mark

// Game is an immutable value; every operation returns a new one.
type Game struct {
	Board Board `json:"board"`
	Turn  Mark  `json:"turn"`
}

// NewGame returns the initial state: an empty board with X to move.
func NewGame() Game {
	return Game{Turn: PlayerX}
}

// Restart discards the current state and returns a fresh game.
func (that Game) Restart() Game {
	return NewGame()
}

// Opponent returns the other mark. Empty stays empty.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

// IsEmpty reports an unoccupied cell.
func (that Mark) IsEmpty() bool {
	return that == EmptyCell
}

// EvaluateWinner returns the mark of the first uniform, non-empty triple or NoWinner.
func EvaluateWinner(board Board) Mark {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return NoWinner
}

// EvaluateDraw reports a full board without a winner.
func EvaluateDraw(board Board) bool {
	if EvaluateWinner(board) != NoWinner {
		return false
	}

	for _, cell := range board {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// ApplyMove places the current turn marker at cell and hands the turn over.
// An occupied cell, an out-of-range index or an already decided game leaves
// the state untouched and reports false.
func (that Game) ApplyMove(cell int) (Game, bool) {
	if !IsValidCell(cell) {
		return that, false
	}

	if that.Board[cell] != EmptyCell || EvaluateWinner(that.Board) != NoWinner {
		return that, false
	}

	next := that
	next.Board[cell] = that.Turn
	next.Turn = that.Turn.Opponent()

	return next, true
}

// Winner returns the mark holding a complete line, or NoWinner.
func (that Game) Winner() Mark {
	return EvaluateWinner(that.Board)
}

// IsDraw reports a full board with no line.
func (that Game) IsDraw() bool {
	return EvaluateDraw(that.Board)
}

// IsDecided reports a game that accepts no further moves.
func (that Game) IsDecided() bool {
	return that.Outcome() != OutcomeInProgress
}

// MovesPlayed counts the occupied cells.
func (that Game) MovesPlayed() int {
	played := 0
	for _, cell := range that.Board {
		if cell != EmptyCell {
			played++
		}
	}

	return played
}

// StatusText is the line shown above the grid.
func (that Game) StatusText() string {
	if winner := that.Winner(); winner != NoWinner {
		return string(winner) + " wins!"
	}

	if that.IsDraw() {
		return "Draw"
	}

	return "Turn: " + string(that.Turn)
}

// IsValidCell reports whether cell indexes the board.
func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}
