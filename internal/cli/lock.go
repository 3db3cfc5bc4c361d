package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/antara/internal/common"
)

// getPIN is an indirection used to facilitate testing.
var getPIN = GetPIN

// Unlock prompts for the PIN until the session unlocks, the throttle
// engages, or input ends. Each character is fed to the lock as a key press.
func (a *App) Unlock(ctx context.Context) error {
	printlnFn("Welcome back. Enter your passcode to open your sanctuary.")
	for !a.isVisible() {
		if wait := a.ac.Lock.RetryAfter(); wait > 0 {
			return fmt.Errorf("%w: retry in %s", common.ErrThrottled, wait.Round(time.Second))
		}

		pin, err := getPIN(a.reader, "PIN", a.out)
		if err != nil {
			return err
		}

		unlocked, err := a.submit(ctx, pin)
		common.WipeByteArray(pin)
		if err != nil {
			return err
		}
		if unlocked {
			printlnFn("Unlocked.")
			return nil
		}
		printlnFn("Wrong PIN.")
	}
	return nil
}

func (a *App) submit(ctx context.Context, pin []byte) (bool, error) {
	if !common.IsDigits(string(pin), 4) {
		// A malformed entry still counts as a miss.
		return a.ac.Lock.Verify(ctx, string(pin))
	}
	var unlocked bool
	for _, d := range pin {
		var err error
		unlocked, err = a.ac.Lock.SubmitDigit(ctx, rune(d))
		if err != nil {
			return false, err
		}
	}
	return unlocked, nil
}

// SetPin asks for a new PIN twice and stores it.
func (a *App) SetPin(ctx context.Context, _ []string) error {
	first, err := getPIN(a.reader, "New 4-digit PIN", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(first)

	second, err := getPIN(a.reader, "Repeat PIN", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(second)

	if string(first) != string(second) {
		return fmt.Errorf("%w: PINs do not match", common.ErrValidation)
	}
	if err := a.ac.Lock.SetPin(ctx, string(first)); err != nil {
		return err
	}
	printlnFn("PIN set. The journal will be locked next time it starts.")
	return nil
}

func (a *App) ClearPin(ctx context.Context, _ []string) error {
	has, err := a.ac.Lock.HasPin(ctx)
	if err != nil {
		return err
	}
	if !has {
		return errors.New("no PIN is set")
	}
	if err := a.ac.Lock.ClearPin(ctx); err != nil {
		return err
	}
	printlnFn("PIN removed.")
	return nil
}
