package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
)

const timeFormat = time.RFC3339Nano

// Page sizes of list endpoints.
const (
	DefaultPageSize = 100
	MaxPageSize     = 500
)

// ClampPageSize maps a requested size to one the stores accept: non-positive means default.
func ClampPageSize(limit int) int {
	switch {
	case limit <= 0:
		return DefaultPageSize
	case limit > MaxPageSize:
		return MaxPageSize
	}
	return limit
}

// EncodeEntryCursor creates an opaque, URL-safe token pointing just past c.
func EncodeEntryCursor(c domain.EntryCursor) string {
	tokenStr := fmt.Sprintf("%s|%s", c.CreatedAt.UTC().Format(timeFormat), c.EntryID)
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeEntryCursor parses a token made by EncodeEntryCursor.
func DecodeEntryCursor(token string) (domain.EntryCursor, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return domain.EntryCursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return domain.EntryCursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	createdAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return domain.EntryCursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	return domain.EntryCursor{CreatedAt: createdAt, EntryID: parts[1]}, nil
}

// NextEntryCursor returns the token of the page after entries, or "" when entries is not a full page.
func NextEntryCursor(entries []domain.JournalEntry, pageSize int) string {
	if len(entries) == 0 || len(entries) < pageSize {
		return ""
	}
	last := entries[len(entries)-1]
	return EncodeEntryCursor(domain.EntryCursor{CreatedAt: last.CreatedAt, EntryID: last.EntryID})
}
