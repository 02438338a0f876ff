package game

import "time"

// Symbols are the labels drawn on face-up cards. Pair ids wrap around it on
// boards with more pairs than letters.
const Symbols = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

type JudgeMode int

const (
	// JudgeTimer keeps the frame loop running while a pair is on display
	JudgeTimer JudgeMode = iota
	// JudgeBlocking sleeps for the judge delay before resolving the pair
	JudgeBlocking
)

type Outcome int

const (
	Ignored Outcome = iota
	Opened
	Pending
	Matched
	Mismatched
)

var outcomeNames = map[Outcome]string{
	Ignored:    "ignored",
	Opened:     "opened",
	Pending:    "pending",
	Matched:    "matched",
	Mismatched: "mismatched",
}

func (outcome Outcome) String() string {
	if name, ok := outcomeNames[outcome]; ok {
		return name
	}
	return "unknown"
}

const (
	defaultWidth  = 6
	defaultHeight = 6

	defaultInitialReveal = 3000 * time.Millisecond
	defaultRestartReveal = 1000 * time.Millisecond
	defaultJudgeDelay    = 1000 * time.Millisecond

	defaultDirectorInterval = 500 * time.Millisecond
)

// Screen geometry, in pixels
const (
	defaultScreenWidth  = 640
	defaultScreenHeight = 480

	cardWidth    = 64
	cardHeight   = 64
	cardMargin   = 10
	buttonWidth  = 200
	buttonHeight = 50

	// distance from the bottom of the screen to the top of the restart button
	buttonOffset = 100
)
