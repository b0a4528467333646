// Package pagination slices ordered collections into pages addressed by opaque
// continuation tokens.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Page size bounds. DefaultLimit is used when the caller does not supply one.
const (
	DefaultLimit = 10
	MaxLimit     = 1024
)

var (
	// ErrInvalidToken is returned when a token cannot be decoded or no longer
	// matches any item in the collection.
	ErrInvalidToken = errors.New("invalid next token")
	// ErrInvalidLimit is returned for page sizes outside 0..MaxLimit.
	ErrInvalidLimit = errors.New("invalid max results")
)

type tokenPayload struct {
	After string `json:"after"`
}

// EncodeToken builds the opaque token that resumes after the item whose
// unique key is key.
func EncodeToken(key string) string {
	raw, _ := json.Marshal(tokenPayload{After: key})
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeToken returns the unique key carried by token.
func DecodeToken(token string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	var payload tokenPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if payload.After == "" {
		return "", ErrInvalidToken
	}
	return payload.After, nil
}

// Paginate returns the items following the one identified by token, at most
// limit of them, and the token for the next page. The next token is empty
// once the end of items is reached. A zero limit selects DefaultLimit; limits
// above MaxLimit are rejected.
//
// Tokens are not snapshots: if items changed since the token was issued the
// page may skip or repeat entries, and a token whose item was removed is
// rejected with ErrInvalidToken.
func Paginate[T any](items []T, key func(T) string, token string, limit int) ([]T, string, error) {
	if limit < 0 || limit > MaxLimit {
		return nil, "", fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	if limit == 0 {
		limit = DefaultLimit
	}

	start := 0
	if strings.TrimSpace(token) != "" {
		after, err := DecodeToken(token)
		if err != nil {
			return nil, "", err
		}
		start = -1
		for i, item := range items {
			if key(item) == after {
				start = i + 1
				break
			}
		}
		if start < 0 {
			return nil, "", fmt.Errorf("%w: %q not found", ErrInvalidToken, after)
		}
	}

	end := start + min(limit, len(items)-start)
	page := make([]T, 0, end-start)
	page = append(page, items[start:end]...)

	next := ""
	if end < len(items) && len(page) > 0 {
		next = EncodeToken(key(page[len(page)-1]))
	}
	return page, next, nil
}
