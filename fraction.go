package fount

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fount-one/fount/errors"
)

// Fraction is an exact ratio of two integers. It is used wherever a
// scaling factor must be applied without floating point math: price
// feed rates and funding cycle mint weights.
type Fraction struct {
	Numerator   uint32
	Denominator uint32
}

// Frac is a shortcut constructor.
func Frac(numerator, denominator uint32) Fraction {
	return Fraction{Numerator: numerator, Denominator: denominator}
}

// String returns a human readable fraction representation.
func (f Fraction) String() string {
	if f.Numerator == 0 {
		return "0"
	}
	if f.Denominator == 1 {
		return fmt.Sprint(f.Numerator)
	}
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

// Validate returns an error if this fraction represents an invalid
// value. A zero denominator is allowed only together with a zero
// numerator, representing the zero value.
func (f Fraction) Validate() error {
	if f.Denominator == 0 && f.Numerator != 0 {
		return errors.Wrap(errors.ErrInput, "zero denominator")
	}
	return nil
}

// IsZero returns true for the zero value of a fraction.
func (f Fraction) IsZero() bool {
	return f.Numerator == 0
}

func (f Fraction) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Numerator   uint32 `json:"numerator"`
		Denominator uint32 `json:"denominator"`
	}{
		Numerator:   f.Numerator,
		Denominator: f.Denominator,
	})
}

func (f *Fraction) UnmarshalJSON(raw []byte) error {
	// Prioritize the human readable format.
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		frac, err := ParseFractionString(human)
		if err != nil {
			return errors.Wrap(err, "fraction string")
		}
		*f = frac
		return nil
	}

	var frac struct {
		Numerator   uint32
		Denominator uint32
	}
	if err := json.Unmarshal(raw, &frac); err != nil {
		return err
	}
	f.Numerator = frac.Numerator
	f.Denominator = frac.Denominator
	return nil
}

// ParseFractionString returns a fraction value that is represented by
// the given string. Accepted formats are "1/2" and "3" (denominator 1).
func ParseFractionString(raw string) (Fraction, error) {
	chunks := strings.SplitN(raw, "/", 2)

	numerator, err := strconv.ParseUint(strings.TrimSpace(chunks[0]), 10, 32)
	if err != nil {
		return Fraction{}, errors.Wrap(errors.ErrInput, "invalid numerator")
	}

	var denominator uint64 = 1
	if len(chunks) == 2 {
		denominator, err = strconv.ParseUint(strings.TrimSpace(chunks[1]), 10, 32)
		if err != nil {
			return Fraction{}, errors.Wrap(errors.ErrInput, "invalid denominator")
		}
	}

	f := Fraction{Numerator: uint32(numerator), Denominator: uint32(denominator)}
	return f, f.Validate()
}
