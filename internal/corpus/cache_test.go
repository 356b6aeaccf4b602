package corpus

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "corpus.json")
	texts := map[string]string{
		"Alan Turing":  "Alan Mathison Turing was an English mathematician.",
		"Ada Lovelace": "Augusta Ada King, Countess of Lovelace.",
	}

	require.NoError(t, Save(path, texts))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, texts, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
