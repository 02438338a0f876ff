package random

import (
	"github.com/they4kman/concentration/game"
)

// Director selects a random face-down card every time it acts
type Director struct {
	board *game.Board
}

func (director *Director) Init(board *game.Board) {
	director.board = board
}

func (director *Director) Observe(*game.Card) {}

func (director *Director) Act() *game.Card {
	if director.board == nil {
		return nil
	}

	candidates := make([]*game.Card, 0, director.board.NumCards())
	for _, card := range director.board.RemainingCards() {
		if card.IsSelectable() {
			candidates = append(candidates, card)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	return candidates[director.board.Rand().Intn(len(candidates))]
}
