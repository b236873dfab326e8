package game

// StartingBoard returns the standard opening position: twelve men per side on the
// playable squares of the first three rows of each player's home side.
func StartingBoard() Board {
	var b Board
	for index := range b.cells {
		sq := squareAt(index)
		if !sq.Playable() {
			continue
		}
		switch {
		case sq.Y < 3:
			b.cells[index] = cellOf(Computer, Man)
		case sq.Y > 4:
			b.cells[index] = cellOf(Human, Man)
		}
	}
	return b
}
