package numeral

import (
	"strings"

	"basejump/internal/errors"
)

// IsOperator reports whether c belongs to the expression operator set.
func IsOperator(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '%', '^', '(', ')':
		return true
	}
	return false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Transcode rewrites every numeral literal in expr from sourceBase to
// targetBase, leaving operators and whitespace untouched. Literals are
// consumed as maximal runs of characters valid under sourceBase, so a
// letter-digit legal for a large source base absorbs what might look like
// an operand boundary in the target base. A character that is neither a
// valid digit, an operator, nor whitespace aborts the whole call; no
// partial result is produced.
func Transcode(expr string, sourceBase, targetBase int) (string, error) {
	if !BaseInRange(sourceBase) {
		return "", errors.Newf(errors.InvalidBase, "source base %d out of range [%d,%d]", sourceBase, MinBase, MaxBase)
	}
	if !BaseInRange(targetBase) {
		return "", errors.Newf(errors.InvalidBase, "target base %d out of range [%d,%d]", targetBase, MinBase, MaxBase)
	}

	var out strings.Builder
	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case IsDigitForBase(c, sourceBase):
			start := i
			for i < len(expr) && IsDigitForBase(expr[i], sourceBase) {
				i++
			}
			value, err := Decode(expr[start:i], sourceBase)
			if err != nil {
				return "", err
			}
			out.WriteString(Encode(value, targetBase))
		case IsOperator(c) || isSpace(c):
			out.WriteByte(c)
			i++
		default:
			return "", errors.Newf(errors.InvalidCharacter, "character %q not valid in a base %d expression", c, sourceBase)
		}
	}
	return out.String(), nil
}
