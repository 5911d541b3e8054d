// Package numeral implements the digit/value mapping and arbitrary-base
// encode/decode used throughout basejump, plus the expression transcoder
// that rewrites numeral literals between bases.
package numeral

import (
	"basejump/internal/errors"
)

// Supported base range
const (
	MinBase = 2
	MaxBase = 36
)

// BaseInRange reports whether base is a supported radix.
func BaseInRange(base int) bool {
	return base >= MinBase && base <= MaxBase
}

// DigitValue maps a digit character to its numeric value. '0'-'9' map to
// 0-9 and letters of either case map to 10-35. The second return value is
// false for characters with no digit mapping.
func DigitValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10, true
	}
	return 0, false
}

// DigitChar is the inverse of DigitValue. Values 10-35 render as uppercase
// letters. Values outside [0,35] render as '?'.
func DigitChar(v int) byte {
	switch {
	case v >= 0 && v <= 9:
		return '0' + byte(v)
	case v >= 10 && v <= 35:
		return 'A' + byte(v-10)
	}
	return '?'
}

// IsDigitForBase reports whether c is a valid digit under base.
func IsDigitForBase(c byte, base int) bool {
	v, ok := DigitValue(c)
	return ok && v < base
}

// Decode converts a digit string in the given base to its magnitude by
// left-to-right accumulation. The empty string and any character whose
// digit value is not strictly below base are rejected.
//
// Magnitudes past the 64-bit range wrap silently; this matches the
// historical behavior and is a documented limitation.
func Decode(digits string, base int) (uint64, error) {
	if !BaseInRange(base) {
		return 0, errors.Newf(errors.InvalidBase, "base %d out of range [%d,%d]", base, MinBase, MaxBase)
	}
	if digits == "" {
		return 0, errors.New(errors.InvalidDigit, "empty numeral")
	}
	var value uint64
	for i := 0; i < len(digits); i++ {
		d, ok := DigitValue(digits[i])
		if !ok || d >= base {
			return 0, errors.Newf(errors.InvalidDigit, "digit %q not valid for base %d", digits[i], base)
		}
		value = value*uint64(base) + uint64(d)
	}
	return value, nil
}

// Encode converts a magnitude to its digit string in the given base.
// Zero encodes to "0"; otherwise the result carries no leading zeros.
func Encode(value uint64, base int) string {
	if !BaseInRange(base) {
		return ""
	}
	if value == 0 {
		return "0"
	}
	// 64 binary digits is the widest possible encoding
	var buf [64]byte
	i := len(buf)
	for value > 0 {
		i--
		buf[i] = DigitChar(int(value % uint64(base)))
		value /= uint64(base)
	}
	return string(buf[i:])
}
