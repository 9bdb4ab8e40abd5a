// Package offset parses the offset tokens accepted by orw's command
// language: absolute numeric literals and page-relative deltas.
package offset

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/binpatch/orw/internal/lex"
)

// ErrBadOffset is returned for any offset token that cannot be parsed.
var ErrBadOffset = errors.New("bad offset")

// Parse interprets a trimmed token as either an absolute offset
// ("0x1F", "31") or a page-relative delta ("+0x10", "-8") against
// pageOffset. Relative results are clamped to 0; it never clamps
// against a file size, since Parse has no notion of one.
func Parse(token string, pageOffset uint64) (uint64, error) {
	t := lex.Trim(token)
	if t == "" {
		return 0, fmt.Errorf("%w: empty token", ErrBadOffset)
	}

	if t[0] == '+' || t[0] == '-' {
		delta, err := strconv.ParseInt(t, 0, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %w", ErrBadOffset, token, err)
		}

		v := int64(pageOffset) + delta
		if v < 0 {
			v = 0
		}

		return uint64(v), nil
	}

	v, err := strconv.ParseUint(t, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrBadOffset, token, err)
	}

	return v, nil
}
