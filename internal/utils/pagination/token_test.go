package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeEntryCursor(t *testing.T) {
	cursor := domain.EntryCursor{
		CreatedAt: time.Date(2026, 5, 15, 14, 30, 45, 123456789, time.UTC),
		EntryID:   "7d1f3c2e-9b8a-4c5d-a1e2-3f4b5c6d7e8f",
	}

	token := EncodeEntryCursor(cursor)
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")

	decoded, err := DecodeEntryCursor(token)
	require.NoError(t, err)
	assert.True(t, cursor.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, cursor.EntryID, decoded.EntryID)
}

func TestDecodeEntryCursorErrors(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		errPart string
	}{
		{"not base64", "this is not base64!", "base64 decode"},
		{"no separator", base64.RawURLEncoding.EncodeToString([]byte("2026-05-15T00:00:00Z")), "split"},
		{"empty id", base64.RawURLEncoding.EncodeToString([]byte("2026-05-15T00:00:00Z|")), "split"},
		{"bad time", base64.RawURLEncoding.EncodeToString([]byte("notadate|abc")), "created_at parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEntryCursor(tt.token)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestClampPageSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, ClampPageSize(0))
	assert.Equal(t, DefaultPageSize, ClampPageSize(-3))
	assert.Equal(t, 20, ClampPageSize(20))
	assert.Equal(t, MaxPageSize, ClampPageSize(1000))
}

func TestNextEntryCursor(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []domain.JournalEntry{
		{EntryID: "b", AuditFields: domain.AuditFields{CreatedAt: at.Add(time.Minute)}},
		{EntryID: "a", AuditFields: domain.AuditFields{CreatedAt: at}},
	}

	assert.Empty(t, NextEntryCursor(nil, 2))
	assert.Empty(t, NextEntryCursor(entries, 3))

	token := NextEntryCursor(entries, 2)
	require.NotEmpty(t, token)
	cursor, err := DecodeEntryCursor(token)
	require.NoError(t, err)
	assert.Equal(t, "a", cursor.EntryID)
	assert.True(t, at.Equal(cursor.CreatedAt))
}
