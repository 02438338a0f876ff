package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	config := NewGameConfig()
	config.Seed = 99

	session, err := NewSession(config, testStart)
	require.NoError(t, err)

	assert.Equal(t, 6, session.Board().Width())
	assert.Equal(t, 6, session.Board().Height())
	assert.Equal(t, int64(99), session.Board().Seed())
	assert.Zero(t, session.Score())
	assert.Zero(t, session.Combo())
	assert.Zero(t, session.BestScore())
	assert.Empty(t, session.Selected())
	assert.False(t, session.IsWon())
}

func TestNewSessionInvalidSize(t *testing.T) {
	config := NewGameConfig()
	config.Width = 3
	config.Height = 5

	session, err := NewSession(config, testStart)
	assert.ErrorIs(t, err, ErrInvalidSize)
	assert.Nil(t, session)
}

func TestRevealAll(t *testing.T) {
	config := NewGameConfig()
	config.Layout = [][]int{{1, 1}, {2, 2}}

	session, err := NewSession(config, testStart)
	require.NoError(t, err)

	revealEnd := testStart.Add(3000 * time.Millisecond)
	assert.True(t, session.IsRevealing(testStart))
	assert.True(t, session.IsRevealing(revealEnd.Add(-time.Millisecond)))
	assert.False(t, session.IsRevealing(revealEnd))
	assert.False(t, session.AcceptsInput(testStart))

	// Clicks during the reveal-all phase are ignored
	assert.Equal(t, Ignored, session.Select(0, 0, testStart.Add(time.Second)))
	assert.False(t, session.Board().CardAt(0, 0).IsOpen())
	assert.Empty(t, session.Selected())

	session.Tick(revealEnd)
	assert.True(t, session.AcceptsInput(revealEnd))
	for _, card := range session.Board().Cards() {
		assert.False(t, card.IsOpen())
	}

	assert.Equal(t, Opened, session.Select(0, 0, revealEnd))
	assert.True(t, session.Board().CardAt(0, 0).IsOpen())
}

func TestSelectEndsExpiredReveal(t *testing.T) {
	config := NewGameConfig()
	config.Layout = [][]int{{1, 1}, {2, 2}}

	session, err := NewSession(config, testStart)
	require.NoError(t, err)

	// No Tick since the deal: the click itself notices the phase is over
	assert.Equal(t, Opened, session.Select(1, 1, testStart.Add(config.InitialReveal)))
	assert.Len(t, session.Selected(), 1)
}

func TestEndToEnd(t *testing.T) {
	session, now := newTestSession(t, [][]int{{1, 1}, {2, 2}}, JudgeTimer)

	outcome, now := judgePair(t, session, now, cell{0, 0}, cell{0, 1})
	assert.Equal(t, Matched, outcome)
	assert.True(t, session.Board().CardAt(0, 0).IsRemoved())
	assert.True(t, session.Board().CardAt(0, 1).IsRemoved())
	assert.Equal(t, 2, session.Score())
	assert.Equal(t, 1, session.Combo())
	assert.Empty(t, session.Selected())
	assert.False(t, session.IsWon())

	outcome, now = judgePair(t, session, now, cell{1, 0}, cell{1, 1})
	assert.Equal(t, Matched, outcome)
	assert.Equal(t, 4, session.Score())
	assert.Equal(t, 1, session.Combo())
	assert.True(t, session.IsWon())
	assert.Equal(t, 4, session.BestScore())
	assert.False(t, session.AcceptsInput(now))
}

func TestComboRule(t *testing.T) {
	session, now := newTestSession(t, [][]int{
		{1, 1, 2, 2},
		{3, 4, 3, 4},
	}, JudgeTimer)

	steps := []struct {
		a, b    cell
		outcome Outcome
		score   int
		combo   int
	}{
		{cell{0, 0}, cell{0, 1}, Matched, 2, 1},
		{cell{0, 2}, cell{0, 3}, Matched, 4, 1},
		{cell{1, 0}, cell{1, 1}, Mismatched, 4, 0},
		{cell{1, 0}, cell{1, 2}, Matched, 6, 1},
		{cell{1, 1}, cell{1, 3}, Matched, 12, 1},
	}

	var outcome Outcome
	for i, step := range steps {
		outcome, now = judgePair(t, session, now, step.a, step.b)
		assert.Equal(t, step.outcome, outcome, "step %d", i)
		assert.Equal(t, step.score, session.Score(), "step %d", i)
		assert.Equal(t, step.combo, session.Combo(), "step %d", i)
	}

	assert.True(t, session.IsWon())
	assert.Equal(t, 12, session.BestScore())
}

func TestMismatchClosesCards(t *testing.T) {
	session, now := newTestSession(t, [][]int{{1, 2}, {2, 1}}, JudgeTimer)

	outcome, _ := judgePair(t, session, now, cell{0, 0}, cell{0, 1})
	assert.Equal(t, Mismatched, outcome)

	for _, card := range session.Board().Cards() {
		assert.False(t, card.IsOpen())
		assert.False(t, card.IsRemoved())
	}
	assert.Zero(t, session.Score())
	assert.Empty(t, session.Selected())
}

func TestJudgeIsSymmetric(t *testing.T) {
	layout := [][]int{{1, 2}, {2, 1}}
	pairs := []struct {
		name string
		a, b cell
	}{
		{name: "match", a: cell{0, 0}, b: cell{1, 1}},
		{name: "mismatch", a: cell{0, 0}, b: cell{0, 1}},
	}

	for _, pair := range pairs {
		t.Run(pair.name, func(t *testing.T) {
			forward, now := newTestSession(t, layout, JudgeTimer)
			forwardOutcome, _ := judgePair(t, forward, now, pair.a, pair.b)

			backward, now := newTestSession(t, layout, JudgeTimer)
			backwardOutcome, _ := judgePair(t, backward, now, pair.b, pair.a)

			assert.Equal(t, forwardOutcome, backwardOutcome)
			assert.Equal(t, forward.Score(), backward.Score())
			assert.Equal(t, forward.Combo(), backward.Combo())
			for _, c := range []cell{pair.a, pair.b} {
				f := forward.Board().CardAt(c.row, c.col)
				b := backward.Board().CardAt(c.row, c.col)
				assert.Equal(t, f.IsOpen(), b.IsOpen())
				assert.Equal(t, f.IsRemoved(), b.IsRemoved())
			}
		})
	}
}

func cardStates(session *Session) []bool {
	var states []bool
	for _, card := range session.Board().Cards() {
		states = append(states, card.IsOpen(), card.IsRemoved())
	}
	return states
}

func TestSelectOutOfBounds(t *testing.T) {
	session, now := newTestSession(t, [][]int{{1, 1}, {2, 2}}, JudgeTimer)
	require.Equal(t, Opened, session.Select(0, 0, now))

	before := cardStates(session)
	for _, c := range []cell{{-1, 0}, {2, 0}, {0, -1}, {0, 2}, {-5, -5}} {
		assert.Equal(t, Ignored, session.Select(c.row, c.col, now), "%v", c)
	}

	assert.Equal(t, before, cardStates(session))
	assert.Len(t, session.Selected(), 1)
	assert.Zero(t, session.Score())
	assert.False(t, session.IsJudging())
}

func TestSelectOpenOrRemovedCard(t *testing.T) {
	session, now := newTestSession(t, [][]int{{1, 1}, {2, 2}}, JudgeTimer)

	require.Equal(t, Opened, session.Select(0, 0, now))
	assert.Equal(t, Ignored, session.Select(0, 0, now))
	assert.Len(t, session.Selected(), 1)

	require.Equal(t, Pending, session.Select(0, 1, now))
	now = now.Add(session.config.JudgeDelay)
	require.Equal(t, Matched, session.Tick(now))

	assert.Equal(t, Ignored, session.Select(0, 0, now))
	assert.Equal(t, Ignored, session.Select(0, 1, now))
	assert.Empty(t, session.Selected())
	assert.Equal(t, 2, session.Score())
}

func TestPendingJudgementBlocksInput(t *testing.T) {
	session, now := newTestSession(t, [][]int{{1, 2}, {2, 1}}, JudgeTimer)

	require.Equal(t, Opened, session.Select(0, 0, now))
	require.Equal(t, Pending, session.Select(0, 1, now))
	assert.True(t, session.IsJudging())
	assert.False(t, session.AcceptsInput(now))

	// Both cards stay on display until the delay is over
	almost := now.Add(session.config.JudgeDelay - time.Millisecond)
	assert.Equal(t, Ignored, session.Select(1, 0, almost))
	assert.Equal(t, Ignored, session.Tick(almost))
	assert.True(t, session.Board().CardAt(0, 0).IsOpen())
	assert.True(t, session.Board().CardAt(0, 1).IsOpen())
	assert.False(t, session.Board().CardAt(1, 0).IsOpen())

	done := now.Add(session.config.JudgeDelay)
	assert.Equal(t, Mismatched, session.Tick(done))
	assert.False(t, session.IsJudging())
	assert.True(t, session.AcceptsInput(done))
	assert.Equal(t, Opened, session.Select(1, 0, done))
}

func TestSelectResolvesExpiredJudgement(t *testing.T) {
	session, now := newTestSession(t, [][]int{{1, 2}, {2, 1}}, JudgeTimer)

	require.Equal(t, Opened, session.Select(0, 0, now))
	require.Equal(t, Pending, session.Select(0, 1, now))

	later := now.Add(2 * session.config.JudgeDelay)
	assert.Equal(t, Opened, session.Select(1, 0, later))
	assert.False(t, session.Board().CardAt(0, 0).IsOpen())
	assert.Equal(t, []*Card{session.Board().CardAt(1, 0)}, session.Selected())
}

func TestBlockingJudgement(t *testing.T) {
	session, now := newTestSession(t, [][]int{{1, 1}, {2, 2}}, JudgeBlocking)

	var slept []time.Duration
	session.sleep = func(d time.Duration) {
		slept = append(slept, d)
	}

	assert.Equal(t, Opened, session.Select(0, 0, now))
	assert.Empty(t, slept)
	assert.Equal(t, Matched, session.Select(0, 1, now))
	assert.Equal(t, []time.Duration{time.Second}, slept)
	assert.False(t, session.IsJudging())
	assert.Equal(t, 2, session.Score())

	assert.Equal(t, Opened, session.Select(1, 0, now))
	assert.Equal(t, Matched, session.Select(1, 1, now))
	assert.True(t, session.IsWon())
	assert.Equal(t, 4, session.BestScore())
}

func TestBlockingJudgementShowsPairWhilePaused(t *testing.T) {
	session, now := newTestSession(t, [][]int{{1, 2}, {2, 1}}, JudgeBlocking)

	paused := false
	session.SetSleeper(func(d time.Duration) {
		paused = true
		assert.Equal(t, session.config.JudgeDelay, d)
		assert.True(t, session.Board().CardAt(0, 0).IsOpen())
		assert.True(t, session.Board().CardAt(0, 1).IsOpen())
		assert.Len(t, session.Selected(), 2)
	})

	require.Equal(t, Opened, session.Select(0, 0, now))
	assert.False(t, paused)
	assert.Equal(t, Mismatched, session.Select(0, 1, now))
	assert.True(t, paused)

	assert.False(t, session.Board().CardAt(0, 0).IsOpen())
	assert.False(t, session.Board().CardAt(0, 1).IsOpen())
	assert.Empty(t, session.Selected())
}

func TestBestScore(t *testing.T) {
	session, now := newTestSession(t, [][]int{
		{1, 1, 2, 2},
		{3, 4, 3, 4},
	}, JudgeTimer)

	perfect := [][2]cell{
		{{0, 0}, {0, 1}},
		{{0, 2}, {0, 3}},
		{{1, 0}, {1, 2}},
		{{1, 1}, {1, 3}},
	}
	var outcome Outcome
	for _, pair := range perfect {
		outcome, now = judgePair(t, session, now, pair[0], pair[1])
		require.Equal(t, Matched, outcome)
	}
	require.True(t, session.IsWon())
	assert.Equal(t, 16, session.Score())
	assert.Equal(t, 16, session.BestScore())

	// Re-checking the win every frame doesn't change anything
	for i := 0; i < 10; i++ {
		now = now.Add(16 * time.Millisecond)
		session.Tick(now)
	}
	assert.Equal(t, 16, session.BestScore())

	restarted, err := session.RequestRestart(now)
	require.NoError(t, err)
	require.True(t, restarted)
	assert.Zero(t, session.Score())
	assert.Zero(t, session.Combo())
	assert.Equal(t, 16, session.BestScore())
	assert.False(t, session.IsWon())

	// The restart reveal is shorter than the first one
	assert.True(t, session.IsRevealing(now.Add(999*time.Millisecond)))
	assert.False(t, session.IsRevealing(now.Add(time.Second)))
	now = now.Add(time.Second)
	session.Tick(now)

	// A worse game keeps the previous best
	worse := [][2]cell{
		{{0, 0}, {0, 1}},
		{{0, 2}, {0, 3}},
		{{1, 0}, {1, 1}},
		{{1, 0}, {1, 2}},
		{{1, 1}, {1, 3}},
	}
	for _, pair := range worse {
		_, now = judgePair(t, session, now, pair[0], pair[1])
	}
	require.True(t, session.IsWon())
	assert.Equal(t, 12, session.Score())
	assert.Equal(t, 16, session.BestScore())
}

func TestRequestRestartBeforeWin(t *testing.T) {
	session, now := newTestSession(t, [][]int{{1, 1}, {2, 2}}, JudgeTimer)
	board := session.Board()

	_, now = judgePair(t, session, now, cell{0, 0}, cell{0, 1})

	restarted, err := session.RequestRestart(now)
	require.NoError(t, err)
	assert.False(t, restarted)
	assert.Same(t, board, session.Board())
	assert.Equal(t, 2, session.Score())
}

func TestRestartReshuffles(t *testing.T) {
	config := NewGameConfig()
	config.Seed = 5

	session, err := NewSession(config, testStart)
	require.NoError(t, err)
	first := session.Board()

	require.NoError(t, session.Restart(testStart))
	assert.NotSame(t, first, session.Board())
	assert.NotEqual(t, first.Seed(), session.Board().Seed())
	assert.NotEqual(t, boardKey(first), boardKey(session.Board()))
	assert.True(t, session.IsRevealing(testStart))
	assert.False(t, session.IsRevealing(testStart.Add(config.RestartReveal)))
}

type recordingDirector struct {
	board    *Board
	observed []*Card
	next     []cell
}

func (director *recordingDirector) Init(board *Board) {
	director.board = board
	director.observed = nil
}

func (director *recordingDirector) Observe(card *Card) {
	director.observed = append(director.observed, card)
}

func (director *recordingDirector) Act() *Card {
	if len(director.next) == 0 {
		return nil
	}
	c := director.next[0]
	director.next = director.next[1:]
	return director.board.CardAt(c.row, c.col)
}

func TestRequestDirectorAct(t *testing.T) {
	director := &recordingDirector{
		next: []cell{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	}

	config := NewGameConfig()
	config.Layout = [][]int{{1, 1}, {2, 2}}
	config.Director = director

	session, err := NewSession(config, testStart)
	require.NoError(t, err)
	assert.Same(t, session.Board(), director.board)
	assert.Len(t, director.observed, 4, "every card is observed while revealed")

	// No acting during the reveal-all phase
	assert.Equal(t, Ignored, session.RequestDirectorAct(testStart))

	now := testStart.Add(config.InitialReveal)
	assert.Equal(t, Opened, session.RequestDirectorAct(now))
	assert.Len(t, director.observed, 5)

	// Rate limited by the director interval
	assert.Equal(t, Ignored, session.RequestDirectorAct(now.Add(config.DirectorInterval/2)))

	now = now.Add(config.DirectorInterval)
	assert.Equal(t, Pending, session.RequestDirectorAct(now))

	now = now.Add(config.DirectorInterval)
	assert.Equal(t, Ignored, session.RequestDirectorAct(now), "pair still on display")

	now = now.Add(config.JudgeDelay)
	assert.Equal(t, Opened, session.RequestDirectorAct(now))
	assert.Equal(t, 2, session.Score())
}
