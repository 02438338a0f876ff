package game

import (
	"math/rand"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Board struct {
	width, height int // in number of cards
	cards         [][]Card

	seed int64
	rand *rand.Rand
}

func (board *Board) Width() int {
	return board.width
}

func (board *Board) Height() int {
	return board.height
}

func (board *Board) NumCards() int {
	return board.width * board.height
}

func (board *Board) NumPairs() int {
	return board.NumCards() / 2
}

func (board *Board) Seed() int64 {
	return board.seed
}

// Rand is the random source the board was shuffled with. Directors share it
// so a seeded game is reproducible end to end.
func (board *Board) Rand() *rand.Rand {
	return board.rand
}

// CardAt returns nil for coordinates outside the board
func (board *Board) CardAt(row, col int) *Card {
	if row >= 0 && col >= 0 && row < board.height && col < board.width {
		return &board.cards[row][col]
	}
	return nil
}

// Cards lists every card in row-major order
func (board *Board) Cards() []*Card {
	out := make([]*Card, 0, board.NumCards())
	for row := range board.cards {
		for col := range board.cards[row] {
			out = append(out, &board.cards[row][col])
		}
	}
	return out
}

// RemainingCards lists the cards still in play, in row-major order
func (board *Board) RemainingCards() []*Card {
	out := make([]*Card, 0, board.NumCards())
	for _, card := range board.Cards() {
		if !card.isRemoved {
			out = append(out, card)
		}
	}
	return out
}

// IsWon is true once every card has been removed. An empty board is won.
func (board *Board) IsWon() bool {
	for row := range board.cards {
		for col := range board.cards[row] {
			if !board.cards[row][col].isRemoved {
				return false
			}
		}
	}
	return true
}

func (board *Board) closeAll() {
	for row := range board.cards {
		for col := range board.cards[row] {
			board.cards[row][col].close()
		}
	}
}

func validateSize(width, height int) error {
	if width <= 0 || height <= 0 || (width*height)%2 != 0 {
		return errors.Wrapf(ErrInvalidSize, "%dx%d", width, height)
	}
	return nil
}

// createBoard deals width*height/2 pairs, shuffled with a source seeded by seed
func createBoard(width, height int, seed int64) (*Board, error) {
	if err := validateSize(width, height); err != nil {
		return nil, err
	}

	numPairs := width * height / 2
	pairIDs := make([]int, 0, width*height)
	for i := 0; i < 2; i++ {
		for id := 1; id <= numPairs; id++ {
			pairIDs = append(pairIDs, id)
		}
	}

	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(pairIDs), func(i, j int) {
		pairIDs[i], pairIDs[j] = pairIDs[j], pairIDs[i]
	})

	board := fillBoard(width, height, pairIDs)
	board.seed = seed
	board.rand = r

	Log.WithFields(logrus.Fields{
		"width":  width,
		"height": height,
		"seed":   seed,
	}).Debug("dealt shuffled board")

	return board, nil
}

// createBoardFromLayout deals the given rows of pair ids as is, without
// shuffling. seed only initializes the board's random source.
func createBoardFromLayout(layout [][]int, seed int64) (*Board, error) {
	if err := validateLayout(layout); err != nil {
		return nil, err
	}

	height := len(layout)
	width := len(layout[0])
	pairIDs := make([]int, 0, width*height)
	for _, row := range layout {
		pairIDs = append(pairIDs, row...)
	}

	board := fillBoard(width, height, pairIDs)
	board.seed = seed
	board.rand = rand.New(rand.NewSource(seed))

	Log.WithFields(logrus.Fields{
		"width":  width,
		"height": height,
	}).Debug("dealt board from fixed layout")

	return board, nil
}

func fillBoard(width, height int, pairIDs []int) *Board {
	board := Board{
		width:  width,
		height: height,
		cards:  make([][]Card, height),
	}

	for row := 0; row < height; row++ {
		board.cards[row] = make([]Card, width)
		for col := 0; col < width; col++ {
			board.cards[row][col] = newCard(row, col, pairIDs[row*width+col])
		}
	}

	return &board
}

func validateLayout(layout [][]int) error {
	if len(layout) == 0 || len(layout[0]) == 0 {
		return errors.Wrap(ErrInvalidLayout, "layout is empty")
	}

	width := len(layout[0])
	counts := make(map[int]int)
	for i, row := range layout {
		if len(row) != width {
			return errors.Wrapf(ErrInvalidLayout, "row %d has %d cards, expected %d", i, len(row), width)
		}
		for _, id := range row {
			counts[id]++
		}
	}

	if err := validateSize(width, len(layout)); err != nil {
		return errors.Wrap(ErrInvalidLayout, err.Error())
	}

	for id, count := range counts {
		if count != 2 {
			return errors.Wrapf(ErrInvalidLayout, "pair %d appears %d times", id, count)
		}
	}

	return nil
}
