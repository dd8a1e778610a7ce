package world

import (
	"fmt"
	"math"
)

// Color is an RGB display color with components in [0,1]. It has no effect on queries.
type Color [3]float64

// Red is the color every generator paints its blocks with
var Red = Color{1, 0, 0}

func (c Color) Validate() error {
	for _, v := range c {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: %v", ErrInvalidColor, [3]float64(c))
		}
	}
	return nil
}

// Block is an axis-aligned obstacle
type Block struct {
	Extents Extents
	Color   *Color
}

// NewBlock validates the extents and the optional color
func NewBlock(extents Extents, color *Color) (Block, error) {
	if err := extents.Validate(); err != nil {
		return Block{}, err
	}
	b := Block{Extents: extents}
	if color != nil {
		if err := color.Validate(); err != nil {
			return Block{}, err
		}
		c := *color
		b.Color = &c
	}
	return b, nil
}

// redBlock is the generator shortcut; callers pass extents they built themselves
func redBlock(e Extents) Block {
	c := Red
	return Block{Extents: e, Color: &c}
}

func (b Block) clone() Block {
	if b.Color != nil {
		c := *b.Color
		b.Color = &c
	}
	return b
}
