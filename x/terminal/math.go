package terminal

import (
	"math/big"

	fount "github.com/fount-one/fount"
	"github.com/fount-one/fount/errors"
)

// mulDiv computes amount*num/den with the intermediate product held in
// a big integer, truncating towards zero. The result must fit int64.
func mulDiv(amount, num, den int64) (int64, error) {
	if den == 0 {
		return 0, errors.Wrap(errors.ErrInput, "zero divisor")
	}
	p := new(big.Int).Mul(big.NewInt(amount), big.NewInt(num))
	p.Quo(p, big.NewInt(den))
	if !p.IsInt64() {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d * %d / %d", amount, num, den)
	}
	return p.Int64(), nil
}

// weighted applies a fractional weight to an amount, truncating.
func weighted(amount int64, w fount.Fraction) (int64, error) {
	if w.IsZero() {
		return 0, nil
	}
	return mulDiv(amount, int64(w.Numerator), int64(w.Denominator))
}

// convertToBase converts an amount of the given currency into base
// units using a price quoted as currency units per base unit.
func convertToBase(amount int64, price fount.Fraction) (int64, error) {
	if price.Numerator == 0 {
		return 0, errors.Wrap(errors.ErrCurrency, "zero price")
	}
	return mulDiv(amount, int64(price.Denominator), int64(price.Numerator))
}

func addInt64(a, b int64) (int64, error) {
	sum := a + b
	if b > 0 && sum < a {
		return 0, errors.Wrap(errors.ErrOverflow, "int64 addition")
	}
	if b < 0 && sum > a {
		return 0, errors.Wrap(errors.ErrOverflow, "int64 addition")
	}
	return sum, nil
}

func subInt64(a, b int64) (int64, error) {
	diff := a - b
	if b > 0 && diff > a {
		return 0, errors.Wrap(errors.ErrOverflow, "int64 subtraction")
	}
	if b < 0 && diff < a {
		return 0, errors.Wrap(errors.ErrOverflow, "int64 subtraction")
	}
	return diff, nil
}
