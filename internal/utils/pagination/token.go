package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/finbooks/finbooks/internal/apperrors"
)

const tokenSeparator = "|"

// EncodeToken builds an opaque pagination token from the key fields of
// the last row on a page. Callers treat the token as a black box.
func EncodeToken(parts ...string) string {
	return base64.URLEncoding.EncodeToString([]byte(strings.Join(parts, tokenSeparator)))
}

// DecodeToken reverses EncodeToken, checking that the token carries the
// expected number of fields. Malformed tokens map to ErrValidation.
func DecodeToken(token string, expectedParts int) ([]string, error) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed pagination token", apperrors.ErrValidation)
	}
	parts := strings.Split(string(raw), tokenSeparator)
	if len(parts) != expectedParts {
		return nil, fmt.Errorf("%w: unexpected pagination token format", apperrors.ErrValidation)
	}
	return parts, nil
}
