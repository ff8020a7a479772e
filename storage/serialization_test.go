package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/poiesic/homeqa/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalDocument(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name string
		doc  *core.Document
	}{
		{
			name: "minimal document",
			doc:  &core.Document{Title: "Custom Doc", Content: "This explains custom knowledge about escrow timing."},
		},
		{
			name: "document with url and timestamp",
			doc: &core.Document{
				Title:   "Make home buying transparent - Full Content",
				Content: "## Home Buying Made Transparent\n\nSingle source of truth.",
				URL:     "https://www.notion.so/15ff821f9675800faa69f8d774ab773f",
				AddedAt: now,
			},
		},
		{
			name: "unicode content",
			doc:  &core.Document{Title: "Glossaire", Content: "Le notaire vérifie le dossier – très important."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalDocument(tt.doc)
			require.NoError(t, err)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalDocument(data)
			require.NoError(t, err)
			assert.Equal(t, tt.doc.Title, decoded.Title)
			assert.Equal(t, tt.doc.Content, decoded.Content)
			assert.Equal(t, tt.doc.URL, decoded.URL)
			assert.True(t, tt.doc.AddedAt.Equal(decoded.AddedAt))
		})
	}
}

func TestUnmarshalDocument_Invalid(t *testing.T) {
	t.Run("empty data", func(t *testing.T) {
		_, err := UnmarshalDocument([]byte{})
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})

	t.Run("truncated data", func(t *testing.T) {
		data, err := MarshalDocument(&core.Document{Title: "T", Content: "C"})
		require.NoError(t, err)
		_, err = UnmarshalDocument(data[:len(data)/2])
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})

	t.Run("tampered content", func(t *testing.T) {
		data, err := MarshalDocument(&core.Document{Title: "Escrow", Content: "Deposit due in 3 days"})
		require.NoError(t, err)
		tampered := strings.Replace(string(data), "3 days", "5 days", 1)
		_, err = UnmarshalDocument([]byte(tampered))
		assert.ErrorIs(t, err, ErrFingerprintMismatch)
	})
}
