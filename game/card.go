package game

import "fmt"

type Card struct {
	row, col int
	pairID   int
	symbol   rune

	isOpen, isRemoved bool
}

func newCard(row, col, pairID int) Card {
	return Card{
		row:    row,
		col:    col,
		pairID: pairID,
		symbol: symbolFor(pairID),
	}
}

func symbolFor(pairID int) rune {
	symbols := []rune(Symbols)
	idx := pairID % len(symbols)
	if idx < 0 {
		idx += len(symbols)
	}
	return symbols[idx]
}

func (card *Card) String() string {
	return fmt.Sprintf("Card(%d, %d)", card.row, card.col)
}

func (card *Card) Row() int {
	return card.row
}

func (card *Card) Col() int {
	return card.col
}

func (card *Card) PairID() int {
	return card.pairID
}

func (card *Card) Symbol() rune {
	return card.symbol
}

func (card *Card) IsOpen() bool {
	return card.isOpen
}

func (card *Card) IsRemoved() bool {
	return card.isRemoved
}

// IsSelectable reports whether a click on the card would open it
func (card *Card) IsSelectable() bool {
	return !card.isOpen && !card.isRemoved
}

func (card *Card) open() {
	card.isOpen = true
}

func (card *Card) close() {
	card.isOpen = false
}

func (card *Card) remove() {
	card.isRemoved = true
}

func (card *Card) matches(other *Card) bool {
	return card.pairID == other.pairID
}
