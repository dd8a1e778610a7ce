package world

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidExtents   = errors.New("invalid extents")
	ErrInvalidColor     = errors.New("invalid color")
	ErrInvalidPath      = errors.New("invalid path")
	ErrInvalidParams    = errors.New("invalid generator parameters")
	ErrInvalidRecord    = errors.New("invalid world record")
	ErrGenerationFailed = errors.New("generation failed")
)

// GenerationError reports a rejection loop that ran out of attempts.
type GenerationError struct {
	Stage    string // "block", "start" or "goal"
	Index    int    // block index for the "block" stage
	Attempts int
}

func (e *GenerationError) Error() string {
	if e.Stage == "block" {
		return fmt.Sprintf("generation failed: no valid position for block %d after %d attempts", e.Index, e.Attempts)
	}
	return fmt.Sprintf("generation failed: no valid %s point after %d attempts", e.Stage, e.Attempts)
}

func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}
