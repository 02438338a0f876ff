package game

// Director plays the game in place of the human player
type Director interface {
	/**
	 * Prepare for a freshly dealt board
	 */
	Init(*Board)

	/**
	 * Called whenever a card is shown face-up, including every card
	 * during the reveal-all phase
	 */
	Observe(*Card)

	/**
	 * Pick the next card to select, or nil to pass
	 */
	Act() *Card
}
