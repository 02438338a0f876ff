package game

import (
	"io/ioutil"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type GameConfig struct {
	Width, Height int

	// Seed for the first shuffle; 0 picks one from the clock
	Seed int64

	// Rows of pair ids to deal instead of a shuffled board
	Layout [][]int

	// How long every card is shown face-up after the first deal
	InitialReveal time.Duration
	// How long every card is shown face-up after "Play again"
	RestartReveal time.Duration

	// How long a selected pair stays on display before it is judged
	JudgeDelay time.Duration
	JudgeMode  JudgeMode

	ScreenWidth, ScreenHeight int

	Director Director
	// Time between two director actions
	DirectorInterval time.Duration
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Width:            defaultWidth,
		Height:           defaultHeight,
		InitialReveal:    defaultInitialReveal,
		RestartReveal:    defaultRestartReveal,
		JudgeDelay:       defaultJudgeDelay,
		JudgeMode:        JudgeTimer,
		ScreenWidth:      defaultScreenWidth,
		ScreenHeight:     defaultScreenHeight,
		DirectorInterval: defaultDirectorInterval,
	}
}

func (config GameConfig) Validate() error {
	if config.Layout != nil {
		if err := validateLayout(config.Layout); err != nil {
			return err
		}
	} else if err := validateSize(config.Width, config.Height); err != nil {
		return err
	}
	if config.InitialReveal < 0 || config.RestartReveal < 0 || config.JudgeDelay < 0 {
		return errors.New("durations must not be negative")
	}
	return nil
}

func (config GameConfig) createBoard(seed int64) (*Board, error) {
	if config.Layout != nil {
		return createBoardFromLayout(config.Layout, seed)
	}
	return createBoard(config.Width, config.Height, seed)
}

var judgeModes = map[string]JudgeMode{
	"timer":    JudgeTimer,
	"blocking": JudgeBlocking,
}

func ParseJudgeMode(value string) (JudgeMode, error) {
	if mode, ok := judgeModes[strings.ToLower(value)]; ok {
		return mode, nil
	}
	return JudgeTimer, errors.Wrapf(ErrInvalidJudgeMode, "%q", value)
}

func (mode JudgeMode) String() string {
	for name, m := range judgeModes {
		if m == mode {
			return name
		}
	}
	return "unknown"
}

// configFile mirrors GameConfig in the YAML config file. Unset keys leave the
// base configuration untouched.
type configFile struct {
	Width            *int    `yaml:"width"`
	Height           *int    `yaml:"height"`
	Seed             *int64  `yaml:"seed"`
	Layout           [][]int `yaml:"layout,flow"`
	InitialReveal    string  `yaml:"initial_reveal"`
	RestartReveal    string  `yaml:"restart_reveal"`
	JudgeDelay       string  `yaml:"judge_delay"`
	JudgeMode        string  `yaml:"judge_mode"`
	ScreenWidth      *int    `yaml:"screen_width"`
	ScreenHeight     *int    `yaml:"screen_height"`
	DirectorInterval string  `yaml:"director_interval"`
}

// ParseConfig applies the YAML document in data on top of base
func ParseConfig(data []byte, base GameConfig) (GameConfig, error) {
	var file configFile
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return base, errors.Wrap(err, "parsing config")
	}

	config := base
	if file.Width != nil {
		config.Width = *file.Width
	}
	if file.Height != nil {
		config.Height = *file.Height
	}
	if file.Seed != nil {
		config.Seed = *file.Seed
	}
	if file.Layout != nil {
		config.Layout = file.Layout
		config.Height = len(file.Layout)
		if len(file.Layout) > 0 {
			config.Width = len(file.Layout[0])
		}
	}
	if file.ScreenWidth != nil {
		config.ScreenWidth = *file.ScreenWidth
	}
	if file.ScreenHeight != nil {
		config.ScreenHeight = *file.ScreenHeight
	}
	if file.JudgeMode != "" {
		mode, err := ParseJudgeMode(file.JudgeMode)
		if err != nil {
			return base, err
		}
		config.JudgeMode = mode
	}

	durations := []struct {
		name  string
		value string
		dest  *time.Duration
	}{
		{"initial_reveal", file.InitialReveal, &config.InitialReveal},
		{"restart_reveal", file.RestartReveal, &config.RestartReveal},
		{"judge_delay", file.JudgeDelay, &config.JudgeDelay},
		{"director_interval", file.DirectorInterval, &config.DirectorInterval},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return base, errors.Wrapf(err, "parsing %s", d.name)
		}
		*d.dest = parsed
	}

	return config, config.Validate()
}

func LoadConfig(path string, base GameConfig) (GameConfig, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return base, errors.Wrapf(err, "reading config %s", path)
	}
	return ParseConfig(data, base)
}
