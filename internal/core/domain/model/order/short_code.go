package order

import (
	"fmt"
	"math/rand/v2"
	"regexp"

	"fooddelivery/internal/pkg/errs"
)

// shortCodePattern matches one uppercase letter followed by six digits,
// e.g. "B042917". The code is assigned once at creation and never reused.
var shortCodePattern = regexp.MustCompile(`^[A-Z]\d{6}$`)

const shortCodeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewShortCode generates a candidate human-friendly order code. Uniqueness
// is enforced by the order repository; callers regenerate on collision.
func NewShortCode() string {
	letter := shortCodeLetters[rand.IntN(len(shortCodeLetters))] //nolint:gosec // not security sensitive
	return fmt.Sprintf("%c%06d", letter, rand.IntN(1000000))     //nolint:gosec // not security sensitive
}

// ValidateShortCode checks the letter+6-digits format.
func ValidateShortCode(code string) error {
	if !shortCodePattern.MatchString(code) {
		return errs.NewValueIsInvalidErrorWithCause("short code",
			fmt.Errorf("%q does not match letter+6digits", code))
	}
	return nil
}
