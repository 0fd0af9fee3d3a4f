package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsmith/internal/game"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_EmbeddedDefaults(t *testing.T) {
	l, err := Load(Sources{})
	require.NoError(t, err)

	start, dict := l.Stats()
	assert.Greater(t, start, 0)
	assert.GreaterOrEqual(t, dict, start)
	assert.Contains(t, l.Pool(), "silkworm")

	assert.True(t, l.IsValidWord("silk", "en"))
	assert.True(t, l.IsValidWord("silkworm", "en"))
	assert.False(t, l.IsValidWord("zzzz", "en"))
}

func TestLoad_FromFiles(t *testing.T) {
	startPath := writeFile(t, "start.txt", "Silkworm  \n\n# comment\nbookcase\r\nsilkworm\n")
	dictPath := writeFile(t, "dict.txt", "silk\nWORM\n")

	l, err := Load(Sources{StartFile: startPath, DictionaryFile: dictPath})
	require.NoError(t, err)

	assert.Equal(t, []string{"silkworm", "bookcase"}, l.Pool())
	assert.True(t, l.IsValidWord("worm", "en"))
	assert.True(t, l.IsValidWord("bookcase", "en"), "start words are dictionary words")
	assert.False(t, l.IsValidWord("milk", "en"))

	start, dict := l.Stats()
	assert.Equal(t, 2, start)
	assert.Equal(t, 4, dict)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(Sources{StartFile: filepath.Join(t.TempDir(), "missing.txt")})
	assert.Error(t, err)
}

func TestLoad_EmptyStartPoolIsAllowed(t *testing.T) {
	l, err := Load(Sources{StartFile: writeFile(t, "start.txt", "\n\n")})
	require.NoError(t, err)
	assert.Empty(t, l.Pool())
}

func TestNew_EmptyDictionary(t *testing.T) {
	_, err := New(nil, []string{"", ""})
	assert.ErrorIs(t, err, ErrEmptyDictionary)
}

func TestIsValidWord_LocaleAndCase(t *testing.T) {
	l, err := New(nil, []string{"silk"})
	require.NoError(t, err)

	assert.True(t, l.IsValidWord("SILK", game.Locale))
	assert.False(t, l.IsValidWord("silk", "fr"))
	assert.False(t, l.IsValidWord("silk", ""))
}

func TestPool_ReturnsCopy(t *testing.T) {
	l, err := New([]string{"silkworm"}, nil)
	require.NoError(t, err)

	p := l.Pool()
	p[0] = "tampered"
	assert.Equal(t, []string{"silkworm"}, l.Pool())
}

func TestList_DrivesEngine(t *testing.T) {
	l, err := New([]string{"silkworm"}, []string{"silk", "worm"})
	require.NoError(t, err)

	e := game.New(l)
	e.StartGame(l.Pool())
	assert.Equal(t, game.OutcomeAccepted, e.Submit("silk").Outcome)
	assert.Equal(t, game.OutcomeNotReal, e.Submit("milk").Outcome)
	assert.Equal(t, game.OutcomeSameAsStart, e.Submit("silkworm").Outcome)
}
