package chain

import (
	"errors"
	"fmt"
	"iter"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/model"
)

var (
	// ErrGenesisMismatch is returned when the target chain has a different genesis block.
	ErrGenesisMismatch = errors.New("target chain has a different genesis block")
	// ErrRewindGenesis is returned when navigation would rewind past the genesis block.
	ErrRewindGenesis = errors.New("cannot rewind past genesis block")
)

// Direction of a navigation step.
type Direction int

const (
	Rewind  Direction = -1
	Advance Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Rewind:
		return "rewind"
	case Advance:
		return "advance"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Step is one block to roll back or apply.
type Step struct {
	Direction Direction
	Header    *model.ChainedHeader
}

// NavigateTowards yields the minimal sequence of steps that turns c into the
// target chain: rewinds down to the fork point, then advances. target is
// re-evaluated before every step so a moving target is followed. An error
// ends the sequence.
func (c *Chain) NavigateTowards(target func() *Chain) iter.Seq2[Step, error] {
	return func(yield func(Step, error) bool) {
		current := c.ToBuilder()
		for {
			t := target()
			if t == nil || t.IsEmpty() {
				return
			}

			tip := current.LastBlock()
			if tip != nil && current.blocks[0].Hash != t.Genesis().Hash {
				yield(Step{}, fmt.Errorf("%w: %s != %s", ErrGenesisMismatch, current.blocks[0].Hash, t.Genesis().Hash))
				return
			}

			var step Step
			switch {
			case tip == nil:
				step = Step{Direction: Advance, Header: t.Genesis()}
			case tip.Height > t.Height() || !t.ContainsAt(tip):
				if tip.Height == 0 {
					yield(Step{}, ErrRewindGenesis)
					return
				}
				step = Step{Direction: Rewind, Header: tip}
			case tip.Height < t.Height():
				next, _ := t.BlockAt(tip.Height + 1)
				step = Step{Direction: Advance, Header: next}
			default:
				return
			}

			if !yield(step, nil) {
				return
			}

			var err error
			if step.Direction == Advance {
				err = current.AddBlock(step.Header)
			} else {
				err = current.RemoveBlock(step.Header)
			}
			if err != nil {
				yield(Step{}, err)
				return
			}
		}
	}
}

// NavigateTowardsChain is NavigateTowards with a fixed target.
func (c *Chain) NavigateTowardsChain(target *Chain) iter.Seq2[Step, error] {
	return c.NavigateTowards(func() *Chain { return target })
}
