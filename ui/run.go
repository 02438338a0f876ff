package ui

import (
	"fmt"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"github.com/faiface/pixel/text"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/they4kman/concentration/game"
)

var (
	backgroundColor = pixel.RGB(237.0/255, 234.0/255, 216.0/255)
	textColor       = pixel.RGB(48.0/255, 46.0/255, 29.0/255)
	openCardColor   = pixel.RGB(224.0/255, 219.0/255, 182.0/255)
	hiddenCardColor = pixel.RGB(128.0/255, 124.0/255, 97.0/255)
	buttonColor     = pixel.RGB(150.0/255, 139.0/255, 68.0/255)
)

// Run opens the game window and drives session until the window is closed.
// It must be called from within pixelgl.Run.
func Run(config game.GameConfig) error {
	session, err := game.NewSession(config, time.Now())
	if err != nil {
		return err
	}

	board := session.Board()
	layout := game.NewLayout(config, board.Height(), board.Width())

	cfg := pixelgl.WindowConfig{
		Title:  "Memory Puzzle",
		Bounds: layout.Bounds(),
		VSync:  true,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return errors.Wrap(err, "creating window")
	}

	basicAtlas := text.NewAtlas(basicfont.Face7x13, text.ASCII)
	symbolText := text.New(pixel.ZV, basicAtlas)
	scoreText := text.New(pixel.V(10, layout.ScreenHeight-20), basicAtlas)
	messageText := text.New(pixel.ZV, basicAtlas)

	imd := imdraw.New(nil)

	button := layout.ButtonRect()

	// drawFrame renders the session as of now and shows it
	drawFrame := func(now time.Time) {
		win.Clear(backgroundColor)
		imd.Clear()

		board := session.Board()
		revealing := session.IsRevealing(now)

		symbolText.Clear()
		symbolText.Color = textColor
		for _, card := range board.Cards() {
			if card.IsRemoved() {
				continue
			}

			rect := layout.CardRect(card.Row(), card.Col())
			faceUp := card.IsOpen() || revealing

			imd.Color = hiddenCardColor
			if faceUp {
				imd.Color = openCardColor
			}
			imd.Push(rect.Min, rect.Max)
			imd.Rectangle(0) // 0 = filled

			if faceUp {
				drawCentered(symbolText, rect, string(card.Symbol()))
			}
		}

		won := session.IsWon()
		messageText.Clear()
		if won {
			messageText.Color = textColor
			drawCentered(messageText, button.Moved(pixel.V(0, 40+button.H()/2)), "You won!")
			drawCentered(messageText, button.Moved(pixel.V(0, 20+button.H()/2)), fmt.Sprintf("Best score: %d", session.BestScore()))

			imd.Color = buttonColor
			imd.Push(button.Min, button.Max)
			imd.Rectangle(0)
		}

		imd.Draw(win)
		symbolText.Draw(win, pixel.IM)
		messageText.Draw(win, pixel.IM)

		if won {
			label := text.New(pixel.ZV, basicAtlas)
			label.Color = colornames.Black
			drawCentered(label, button, "Play again")
			label.Draw(win, pixel.IM)
		}

		scoreText.Clear()
		scoreText.Color = textColor
		fmt.Fprintf(scoreText, "Score: %d", session.Score())
		scoreText.Draw(win, pixel.IM)

		win.Update()
	}

	// A blocking judgement has to show the second card before it pauses
	session.SetSleeper(func(d time.Duration) {
		drawFrame(time.Now())
		time.Sleep(d)
	})

	var (
		frames = 0
		second = time.Tick(time.Second)
	)

	for !win.Closed() {
		now := time.Now()
		session.Tick(now)
		session.RequestDirectorAct(now)

		drawFrame(now)

		frames++
		select {
		case <-second:
			win.SetTitle(fmt.Sprintf("%s | FPS: %d", cfg.Title, frames))
			frames = 0
		default:
		}

		if !win.JustPressed(pixelgl.MouseButtonLeft) {
			continue
		}

		pos := win.MousePosition()
		if session.IsWon() && button.Contains(pos) {
			restarted, err := session.RequestRestart(now)
			if err != nil {
				return err
			}
			if restarted {
				continue
			}
		}

		row, col := layout.CardAt(pos)
		session.Select(row, col, now)
	}

	return nil
}

// drawCentered writes s into txt so that it is centered on rect
func drawCentered(txt *text.Text, rect pixel.Rect, s string) {
	bounds := txt.BoundsOf(s)
	txt.Dot = pixel.V(
		rect.Center().X-bounds.W()/2,
		rect.Center().Y-bounds.H()/2+txt.Atlas().Descent(),
	)
	fmt.Fprint(txt, s)
}
