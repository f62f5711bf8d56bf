// Package game runs a single round of the guessing game.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/verte-zerg/guessnum/internal/console"
	"github.com/verte-zerg/guessnum/internal/model"
)

// Picker draws the secret number for a round.
type Picker interface {
	Pick(low, high int) int
}

// Prompter reads a bounded integer from the player.
type Prompter interface {
	ReadInt(ctx context.Context, prompt string, min, max int) (int, error)
}

// Engine plays rounds with a fixed configuration.
type Engine struct {
	cfg    model.Config
	picker Picker
	in     Prompter
	out    *console.Console
	now    func() time.Time
}

// NewEngine constructs an Engine. cfg must already be validated.
func NewEngine(cfg model.Config, picker Picker, in Prompter, out *console.Console) *Engine {
	return &Engine{cfg: cfg, picker: picker, in: in, out: out, now: time.Now}
}

// Play runs one round. The only error it returns is the reader's abort signal.
func (e *Engine) Play(ctx context.Context) (model.RoundResult, error) {
	low, high, attempts := e.cfg.Low, e.cfg.High, e.cfg.Attempts
	result := model.RoundResult{
		Secret:    e.picker.Pick(low, high),
		StartedAt: e.now(),
	}
	e.out.Printf("I picked a number between %d and %d. You have %d attempts.", low, high, attempts)

	for i := 1; i <= attempts; i++ {
		guess, err := e.in.ReadInt(ctx, fmt.Sprintf("[Attempt %d/%d] Your guess: ", i, attempts), low, high)
		if err != nil {
			return model.RoundResult{}, err
		}

		if guess == result.Secret {
			e.out.Success("Congratulations, you guessed it!")
			result.Won = true
			result.AttemptsUsed = i
			result.EndedAt = e.now()
			return result, nil
		}

		if guess < result.Secret {
			e.out.Println("Too small.")
		} else {
			e.out.Println("Too big.")
		}

		if e.cfg.HintsEnabled() && i == e.cfg.HintAfter {
			hintLow, hintHigh := Hint(low, high, result.Secret)
			e.out.Hint(fmt.Sprintf("Hint: the number is in [%d, %d].", hintLow, hintHigh))
			result.HintShown = true
		}
	}

	e.out.Printf("Out of attempts. The number was %d.", result.Secret)
	result.AttemptsUsed = attempts
	result.EndedAt = e.now()
	return result, nil
}

// Hint returns [max(low, secret-delta), min(high, secret+delta)] with
// delta = max(1, (high-low)/4). Arithmetic is done in uint64 so the full
// int range cannot overflow.
func Hint(low, high, secret int) (int, int) {
	delta := (uint64(high) - uint64(low)) / 4
	if delta < 1 {
		delta = 1
	}
	hintLow := low
	if uint64(secret)-uint64(low) > delta {
		hintLow = int(uint64(secret) - delta)
	}
	hintHigh := high
	if uint64(high)-uint64(secret) > delta {
		hintHigh = int(uint64(secret) + delta)
	}
	return hintLow, hintHigh
}
