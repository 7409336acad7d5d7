package entity

// Mark is the content of a single cell: a player's symbol or EmptyCell.
type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	PlayerTie Mark = "-"

	EmptyCell Mark = ""
)

const BoardSize = 9

var (
	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}

	CenterCell  = 4
	CornerCells = [4]int{0, 2, 6, 8}
	SideCells   = [4]int{1, 3, 5, 7}
)

// IsPlayer reports whether the mark belongs to one of the two sides.
func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent - returns the other side. For anything that is not a player mark it returns EmptyCell.
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

// Board is a row-major 3x3 grid. It is a value type, so passing it around copies it.
type Board [BoardSize]Mark

// IsValidCell - checks the index is inside the board.
func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

// OppositeCorner returns the corner diagonally across from the given corner.
func OppositeCorner(corner int) int {
	return BoardSize - 1 - corner
}

// With returns a copy of the board with mark placed on cell. The receiver is never modified.
func (that Board) With(cell int, mark Mark) Board {
	that[cell] = mark
	return that
}

func (that Board) IsEmpty(cell int) bool {
	return that[cell] == EmptyCell
}

// EmptyCells - returns the free cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) Count(mark Mark) int {
	count := 0
	for _, cell := range that {
		if cell == mark {
			count++
		}
	}

	return count
}

// HasWon reports whether mark occupies all three cells of any winning line.
func (that Board) HasWon(mark Mark) bool {
	_, ok := that.WinningLine(mark)
	return ok
}

// WinningLine returns the first line fully occupied by mark.
func (that Board) WinningLine(mark Mark) ([3]int, bool) {
	if !mark.IsPlayer() {
		return [3]int{}, false
	}

	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return combo, true
		}
	}

	return [3]int{}, false
}

// IsFull reports whether all nine cells are occupied.
func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Result - returns PlayerX or PlayerO for a won board, PlayerTie for a full board
// without a winner and EmptyCell while the game can continue.
func (that Board) Result() Mark {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	// the game will continue until all the squares are full
	if !that.IsFull() {
		return EmptyCell
	}

	return PlayerTie
}
