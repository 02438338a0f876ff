package cmd

import (
	"fmt"
	"os"

	"github.com/faiface/pixel/pixelgl"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/they4kman/concentration/director/memory"
	"github.com/they4kman/concentration/director/random"
	"github.com/they4kman/concentration/game"
	"github.com/they4kman/concentration/ui"
)

var ErrUnknownDirector = errors.New("unknown director")

var (
	gameConfig   = game.NewGameConfig()
	configPath   string
	directorName string
	recall       int
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "concentration",
	Short: "Play the memory-matching card game",
	Long: `concentration deals a grid of face-down cards, shows them for a
moment, then hides them again. Click two cards to turn them over:
matching pairs are removed, others are flipped back.

Run with no arguments to play manually
	concentration

Use the director flag to make the computer play for you
	concentration -d memory
`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		game.Log.SetLevel(level)

		config, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		var runErr error
		pixelgl.Run(func() {
			runErr = ui.Run(config)
		})
		return runErr
	},
}

// buildConfig layers the config file under any flags given explicitly
func buildConfig(cmd *cobra.Command) (game.GameConfig, error) {
	config := gameConfig

	if configPath != "" {
		fromFile, err := game.LoadConfig(configPath, game.NewGameConfig())
		if err != nil {
			return config, err
		}

		flags := cmd.Flags()
		if !flags.Changed("width") {
			config.Width = fromFile.Width
		}
		if !flags.Changed("height") {
			config.Height = fromFile.Height
		}
		if !flags.Changed("seed") {
			config.Seed = fromFile.Seed
		}
		if !flags.Changed("reveal") {
			config.InitialReveal = fromFile.InitialReveal
		}
		if !flags.Changed("restart-reveal") {
			config.RestartReveal = fromFile.RestartReveal
		}
		if !flags.Changed("judge-delay") {
			config.JudgeDelay = fromFile.JudgeDelay
		}
		if !flags.Changed("judge-mode") {
			config.JudgeMode = fromFile.JudgeMode
		}
		if !flags.Changed("director-interval") {
			config.DirectorInterval = fromFile.DirectorInterval
		}
		config.Layout = fromFile.Layout
		config.ScreenWidth = fromFile.ScreenWidth
		config.ScreenHeight = fromFile.ScreenHeight
	}

	director, err := newDirector(directorName, recall)
	if err != nil {
		return config, err
	}
	config.Director = director

	return config, config.Validate()
}

func newDirector(name string, recall int) (game.Director, error) {
	switch name {
	case "":
		return nil, nil
	case "random":
		return &random.Director{}, nil
	case "memory":
		return &memory.Director{Recall: recall}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownDirector, "%q", name)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

type judgeModeValue game.JudgeMode

func newJudgeModeValue(val game.JudgeMode, p *game.JudgeMode) *judgeModeValue {
	*p = val
	return (*judgeModeValue)(p)
}

func (modeVal *judgeModeValue) String() string {
	return game.JudgeMode(*modeVal).String()
}

func (modeVal *judgeModeValue) Set(value string) error {
	mode, err := game.ParseJudgeMode(value)
	if err != nil {
		return err
	}
	*modeVal = judgeModeValue(mode)
	return nil
}

func (modeVal *judgeModeValue) Type() string {
	return "game.JudgeMode"
}

func init() {
	// Define our root -help without a shorthand, as we'll use -h for --height
	// Ref: https://github.com/spf13/cobra/issues/291
	rootCmd.Flags().Bool("help", false, "Help for this command")

	defaults := game.NewGameConfig()
	flags := rootCmd.Flags()
	flags.IntVarP(&gameConfig.Width, "width", "w", defaults.Width, "Width of game board, in cards")
	flags.IntVarP(&gameConfig.Height, "height", "h", defaults.Height, "Height of game board, in cards")
	flags.Int64Var(&gameConfig.Seed, "seed", 0, "Seed for the first shuffle (0 picks one from the clock)")
	flags.DurationVar(&gameConfig.InitialReveal, "reveal", defaults.InitialReveal, "How long all cards are shown after the first deal")
	flags.DurationVar(&gameConfig.RestartReveal, "restart-reveal", defaults.RestartReveal, "How long all cards are shown after playing again")
	flags.DurationVar(&gameConfig.JudgeDelay, "judge-delay", defaults.JudgeDelay, "How long a selected pair stays face-up before it is judged")
	flags.Var(newJudgeModeValue(defaults.JudgeMode, &gameConfig.JudgeMode), "judge-mode", `How the judge delay is spent.
timer: the window keeps rendering while the pair is shown
blocking: the whole game pauses until the pair is judged`)
	flags.StringVar(&configPath, "config", "", "YAML file with game settings")
	flags.StringVarP(&directorName, "director", "d", "", "Make the computer play (random, memory)")
	flags.IntVar(&recall, "recall", 0, "Cards the memory director can remember (0 = all)")
	flags.DurationVar(&gameConfig.DirectorInterval, "director-interval", defaults.DirectorInterval, "Time between two director moves")
	flags.StringVar(&logLevel, "log-level", "info", "Log level (panic, fatal, error, warn, info, debug, trace)")
}
