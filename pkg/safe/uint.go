// Package safe converts between integer widths with range checks.
package safe

import (
	"fmt"
	"math"
)

// Integer is the set of integer types the conversions accept.
type Integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

func nonNegative[T Integer](v T) (uint64, bool) {
	if v < 0 {
		return 0, false
	}
	return uint64(v), true
}

// Uint32 converts v to uint32, failing when it does not fit.
func Uint32[T Integer](v T) (uint32, error) {
	u, ok := nonNegative(v)
	if !ok || u > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of uint32 range", v)
	}
	return uint32(u), nil
}

// Uint64 converts v to uint64, failing on negative values.
func Uint64[T Integer](v T) (uint64, error) {
	u, ok := nonNegative(v)
	if !ok {
		return 0, fmt.Errorf("value %d out of uint64 range", v)
	}
	return u, nil
}

// Int converts an unsigned value, such as a decoded length, to int.
func Int[T ~uint | ~uint32 | ~uint64](v T) (int, error) {
	if uint64(v) > math.MaxInt {
		return 0, fmt.Errorf("value %d out of int range", v)
	}
	return int(v), nil
}
