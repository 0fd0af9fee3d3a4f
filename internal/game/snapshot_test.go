package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	e := New(allWords)
	e.StartWith("silkworm")
	for _, w := range []string{"silk", "milk", "worm"} {
		require.True(t, e.Submit(w).Accepted())
	}

	snap, err := e.Snapshot()
	require.NoError(t, err)
	assert.JSONEq(t, `"silkworm"`, string(snap[KeyStartingWord]))
	assert.JSONEq(t, `["worm","milk","silk"]`, string(snap[KeyUsedWords]))

	other := New(allWords)
	require.NoError(t, other.Restore(snap))
	assert.Equal(t, e.Session(), other.Session())

	// Restored history still blocks reuse.
	assert.Equal(t, OutcomeAlreadyUsed, other.Submit("milk").Outcome)
}

func TestSnapshot_EmptyHistoryEncodesAsArray(t *testing.T) {
	e := New(allWords)
	e.StartWith("silkworm")

	snap, err := e.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(snap[KeyUsedWords]))
}

func TestRestore_MissingKeys(t *testing.T) {
	e := New(allWords)

	assert.ErrorIs(t, e.Restore(nil), ErrNoSnapshot)
	assert.ErrorIs(t, e.Restore(Snapshot{KeyStartingWord: []byte(`"silkworm"`)}), ErrNoSnapshot)
	assert.ErrorIs(t, e.Restore(Snapshot{KeyUsedWords: []byte(`[]`)}), ErrNoSnapshot)
}

func TestRestore_Malformed(t *testing.T) {
	tests := map[string]Snapshot{
		"bad json word":     {KeyStartingWord: []byte(`silkworm`), KeyUsedWords: []byte(`[]`)},
		"bad json used":     {KeyStartingWord: []byte(`"silkworm"`), KeyUsedWords: []byte(`{"a":1}`)},
		"empty word":        {KeyStartingWord: []byte(`""`), KeyUsedWords: []byte(`[]`)},
		"uppercase word":    {KeyStartingWord: []byte(`"Silkworm"`), KeyUsedWords: []byte(`[]`)},
		"empty used entry":  {KeyStartingWord: []byte(`"silkworm"`), KeyUsedWords: []byte(`["silk",""]`)},
		"uppercase entry":   {KeyStartingWord: []byte(`"silkworm"`), KeyUsedWords: []byte(`["Silk"]`)},
		"duplicate entries": {KeyStartingWord: []byte(`"silkworm"`), KeyUsedWords: []byte(`["silk","milk","silk"]`)},
		"impossible entry":  {KeyStartingWord: []byte(`"silkworm"`), KeyUsedWords: []byte(`["book"]`)},
		"start as entry":    {KeyStartingWord: []byte(`"silkworm"`), KeyUsedWords: []byte(`["silkworm"]`)},
	}
	for name, snap := range tests {
		t.Run(name, func(t *testing.T) {
			e := New(allWords)
			e.StartWith("original")
			require.True(t, e.Submit("rangoli").Accepted())
			before := e.Session()

			err := e.Restore(snap)
			assert.ErrorIs(t, err, ErrMalformedSnapshot)
			assert.Equal(t, before, e.Session(), "failed restore must not touch the session")
		})
	}
}

func TestRestore_NullUsedWords(t *testing.T) {
	s, err := DecodeSnapshot(Snapshot{
		KeyStartingWord: []byte(`"silkworm"`),
		KeyUsedWords:    []byte(`null`),
	})
	require.NoError(t, err)
	assert.Equal(t, Session{StartingWord: "silkworm", UsedWords: []string{}}, s)
}

func TestSnapshot_UnstartedEngineDoesNotRestore(t *testing.T) {
	snap, err := New(allWords).Snapshot()
	require.NoError(t, err)
	assert.ErrorIs(t, New(allWords).Restore(snap), ErrMalformedSnapshot)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, []string{"startingWord", "usedWords"}, Keys())
}
