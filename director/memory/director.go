package memory

import (
	"github.com/gammazero/deque"

	"github.com/they4kman/concentration/game"
	"github.com/they4kman/concentration/util/collections"
)

// Director plays like a player with a limited memory: it remembers the last
// Recall cards it has seen face-up, completes pairs it knows about, and
// explores unseen cards otherwise.
type Director struct {
	// Number of cards remembered at once; 0 remembers every card
	Recall int

	board *game.Board

	// Seen cards, oldest first
	memory     deque.Deque
	remembered collections.Set[*game.Card]

	// Cards queued to complete a known pair
	pending deque.Deque
}

func (director *Director) Init(board *game.Board) {
	director.board = board
	director.memory = deque.Deque{}
	director.pending = deque.Deque{}
	director.remembered = make(collections.Set[*game.Card])
}

func (director *Director) Observe(card *game.Card) {
	if director.remembered.Contains(card) {
		return
	}

	director.memory.PushBack(card)
	director.remembered.Add(card)

	if director.Recall > 0 && director.memory.Len() > director.Recall {
		forgotten := director.memory.PopFront().(*game.Card)
		director.remembered.Remove(forgotten)
	}
}

func (director *Director) Act() *game.Card {
	if director.board == nil {
		return nil
	}

	for director.pending.Len() > 0 {
		card := director.pending.PopFront().(*game.Card)
		if card.IsSelectable() {
			return card
		}
	}

	var open *game.Card
	for _, card := range director.board.RemainingCards() {
		if card.IsOpen() {
			open = card
			break
		}
	}

	if open != nil {
		if partner := director.knownPartner(open); partner != nil {
			return partner
		}
		return director.unseenCard()
	}

	if first, second := director.knownPair(); first != nil {
		director.pending.PushBack(second)
		return first
	}

	return director.unseenCard()
}

func (director *Director) knownPartner(card *game.Card) *game.Card {
	for i := 0; i < director.memory.Len(); i++ {
		other := director.memory.At(i).(*game.Card)
		if other != card && other.PairID() == card.PairID() && other.IsSelectable() {
			return other
		}
	}
	return nil
}

func (director *Director) knownPair() (*game.Card, *game.Card) {
	byPair := make(map[int]*game.Card)
	for i := 0; i < director.memory.Len(); i++ {
		card := director.memory.At(i).(*game.Card)
		if !card.IsSelectable() {
			continue
		}
		if first, ok := byPair[card.PairID()]; ok {
			return first, card
		}
		byPair[card.PairID()] = card
	}
	return nil, nil
}

// unseenCard picks a random face-down card it doesn't remember, falling back
// to any face-down card
func (director *Director) unseenCard() *game.Card {
	var unseen, selectable []*game.Card
	for _, card := range director.board.RemainingCards() {
		if !card.IsSelectable() {
			continue
		}
		selectable = append(selectable, card)
		if !director.remembered.Contains(card) {
			unseen = append(unseen, card)
		}
	}

	candidates := unseen
	if len(candidates) == 0 {
		candidates = selectable
	}
	if len(candidates) == 0 {
		return nil
	}

	return candidates[director.board.Rand().Intn(len(candidates))]
}
