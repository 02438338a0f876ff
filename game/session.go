package game

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Session owns the board and all round state of one running game. It is
// driven by a single frame loop: Tick once per frame, Select on clicks.
type Session struct {
	config GameConfig
	board  *Board

	// Cards opened since the last judgement, in selection order
	selected []*Card

	score, combo int
	bestScore    int

	revealing   bool
	revealUntil time.Time

	judging      bool
	judgingUntil time.Time

	nextDirectorAct time.Time

	sleep func(time.Duration)
}

func NewSession(config GameConfig, now time.Time) (*Session, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	seed := config.Seed
	if seed == 0 {
		seed = now.UnixNano()
	}

	session := &Session{
		config: config,
		sleep:  time.Sleep,
	}
	if err := session.deal(seed, now, config.InitialReveal); err != nil {
		return nil, err
	}
	return session, nil
}

func (session *Session) deal(seed int64, now time.Time, reveal time.Duration) error {
	board, err := session.config.createBoard(seed)
	if err != nil {
		return err
	}

	session.board = board
	session.selected = nil
	session.score = 0
	session.combo = 0
	session.judging = false
	session.revealing = true
	session.revealUntil = now.Add(reveal)
	session.nextDirectorAct = session.revealUntil

	if director := session.config.Director; director != nil {
		director.Init(board)
		if reveal > 0 {
			for _, card := range board.Cards() {
				director.Observe(card)
			}
		}
	}

	return nil
}

// SetSleeper replaces the pause used by blocking judgement. It runs after
// the second card is opened and before the pair is judged; nil restores
// time.Sleep.
func (session *Session) SetSleeper(sleep func(time.Duration)) {
	if sleep == nil {
		sleep = time.Sleep
	}
	session.sleep = sleep
}

func (session *Session) Config() GameConfig {
	return session.config
}

func (session *Session) Board() *Board {
	return session.board
}

func (session *Session) Score() int {
	return session.score
}

func (session *Session) BestScore() int {
	return session.bestScore
}

func (session *Session) Combo() int {
	return session.combo
}

func (session *Session) Selected() []*Card {
	out := make([]*Card, len(session.selected))
	copy(out, session.selected)
	return out
}

func (session *Session) IsWon() bool {
	return session.board.IsWon()
}

// IsRevealing reports whether every card should be drawn face-up
func (session *Session) IsRevealing(now time.Time) bool {
	return session.revealing && now.Before(session.revealUntil)
}

// IsJudging reports whether a selected pair is waiting to be judged
func (session *Session) IsJudging() bool {
	return session.judging
}

func (session *Session) AcceptsInput(now time.Time) bool {
	return !session.IsRevealing(now) && !session.judging && !session.IsWon()
}

// Tick advances the timed phases: the end of the reveal-all phase and a
// pending judgement. It returns the judgement outcome, if one was applied.
func (session *Session) Tick(now time.Time) Outcome {
	outcome := Ignored

	if session.revealing && !now.Before(session.revealUntil) {
		session.revealing = false
		session.board.closeAll()
		Log.Debug("reveal-all phase over")
	}

	if session.judging && !now.Before(session.judgingUntil) {
		outcome = session.judge()
	}

	session.recordWin()

	return outcome
}

// Select opens the card at (row, col). Clicks outside the board, on open or
// removed cards, during the reveal-all phase or while a pair is on display
// are ignored.
func (session *Session) Select(row, col int, now time.Time) Outcome {
	card := session.board.CardAt(row, col)
	if card == nil {
		return Ignored
	}

	session.Tick(now)

	if session.revealing || session.judging || !card.IsSelectable() {
		return Ignored
	}

	card.open()
	session.selected = append(session.selected, card)
	if director := session.config.Director; director != nil {
		director.Observe(card)
	}

	Log.WithFields(logrus.Fields{
		"card":   card,
		"symbol": string(card.symbol),
	}).Debug("opened card")

	if len(session.selected) < 2 {
		return Opened
	}

	if session.config.JudgeMode == JudgeBlocking {
		session.sleep(session.config.JudgeDelay)
		return session.judge()
	}

	session.judging = true
	session.judgingUntil = now.Add(session.config.JudgeDelay)
	return Pending
}

func (session *Session) judge() Outcome {
	first, second := session.selected[0], session.selected[1]
	session.selected = nil
	session.judging = false

	var outcome Outcome
	if first.matches(second) {
		first.remove()
		second.remove()
		if session.combo == 1 {
			session.score *= 2
		} else {
			session.score += 2
			session.combo = 1
		}
		outcome = Matched
	} else {
		first.close()
		second.close()
		session.combo = 0
		outcome = Mismatched
	}

	Log.WithFields(logrus.Fields{
		"first":   first,
		"second":  second,
		"outcome": outcome,
		"score":   session.score,
		"combo":   session.combo,
	}).Debug("judged pair")

	session.recordWin()

	return outcome
}

func (session *Session) recordWin() {
	if !session.board.IsWon() {
		return
	}
	if session.score > session.bestScore {
		session.bestScore = session.score
		Log.WithField("best_score", session.bestScore).Info("new best score")
	}
}

// Restart deals a new board with the shorter restart reveal. The best score
// carries over.
func (session *Session) Restart(now time.Time) error {
	seed := session.board.Rand().Int63()
	if err := session.deal(seed, now, session.config.RestartReveal); err != nil {
		return err
	}
	Log.WithField("seed", seed).Info("restarted game")
	return nil
}

// RequestRestart restarts only once the board is won, as the "Play again"
// button does
func (session *Session) RequestRestart(now time.Time) (bool, error) {
	if !session.IsWon() || session.IsRevealing(now) {
		return false, nil
	}
	if err := session.Restart(now); err != nil {
		return false, err
	}
	return true, nil
}

// RequestDirectorAct lets the director select one card, at most once per
// DirectorInterval
func (session *Session) RequestDirectorAct(now time.Time) Outcome {
	director := session.config.Director
	if director == nil || now.Before(session.nextDirectorAct) {
		return Ignored
	}

	session.Tick(now)
	if !session.AcceptsInput(now) {
		return Ignored
	}
	session.nextDirectorAct = now.Add(session.config.DirectorInterval)

	card := director.Act()
	if card == nil {
		return Ignored
	}

	Log.WithField("card", card).Debug("director selected card")
	return session.Select(card.row, card.col, now)
}
