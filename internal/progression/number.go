package progression

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidNumber is returned by ParseNumber for text that is not a number.
var ErrInvalidNumber = errors.New("invalid number")

// significantDigits is the precision every generated term is rounded to.
const significantDigits = 15

// Round15 rounds v to 15 significant decimal digits. Repeated additions
// and multiplications by fractional reasons (0.5, 1.5) drift in binary
// floating point; rounding each term hides that drift so a player who
// types the decimal value compares equal.
//
// Validate compares parsed input against Problem.Full with ==. That only
// holds because every term went through Round15 here and nowhere else.
// If the generator stops rounding or rounds differently, Validate must
// change with it.
func Round15(v float64) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', significantDigits, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// ParseNumber reads a number typed by the player. Leading and trailing
// whitespace is ignored, a lone decimal comma is read as a point ("0,5"),
// and simple fractions ("1/2", "-3/2") are accepted.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidNumber)
	}

	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := parseDecimal(num)
		if err != nil {
			return 0, err
		}
		d, err := parseDecimal(den)
		if err != nil {
			return 0, err
		}
		if d == 0 {
			return 0, fmt.Errorf("%w: zero denominator in %q", ErrInvalidNumber, s)
		}
		return n / d, nil
	}
	return parseDecimal(s)
}

func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidNumber)
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	// ParseFloat also takes "inf", "nan" and hex floats; none of those
	// are answers a player means to give.
	for _, r := range s {
		if !strings.ContainsRune("0123456789+-.eE", r) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	if math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidNumber, s)
	}
	return v, nil
}

// FormatNumber renders a term or reason the shortest way that parses
// back to the same value ("4", "0.5", "-13.5").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
