package game

import "github.com/pkg/errors"

var (
	ErrInvalidSize      = errors.New("board must have a positive, even number of cards")
	ErrInvalidLayout    = errors.New("invalid board layout")
	ErrInvalidJudgeMode = errors.New("invalid judge mode")
)
