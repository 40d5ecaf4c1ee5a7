package content

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFieldsMergeKeepsExisting(t *testing.T) {
	base := Fields{"a": "1"}
	got := base.Merge(Fields{"b": "2"})
	require.Equal(t, Fields{"a": "1", "b": "2"}, got)
	// base is untouched
	require.Equal(t, Fields{"a": "1"}, base)

	got = got.Merge(Fields{"a": "3"})
	require.Equal(t, "3", got["a"])
	require.Equal(t, "2", got["b"])
}

func TestTypedRoundTrip(t *testing.T) {
	now := time.Now().UTC()
	d := &Document{Key: KeyAbout, Fields: Fields{"name": "Ayşe", "bio": "x", "legacy": "kept"}, UpdatedAt: now}
	a := AboutFrom(d)
	require.Equal(t, "Ayşe", a.Name)
	require.Equal(t, "x", a.Bio)
	require.Equal(t, now, a.UpdatedAt)

	f := a.Fields()
	require.NotContains(t, f, "legacy")
	require.Equal(t, "Ayşe", f["name"])
}

func TestDecodeNilDocument(t *testing.T) {
	h := Decode(KeyHero, nil).(HeroDocument)
	require.Equal(t, "", h.Title)
	require.True(t, h.UpdatedAt.IsZero())

	c := Decode(KeyContact, &Document{Key: KeyContact}).(ContactDocument)
	require.Equal(t, "", c.Email)
}

func TestDefaultsAndKnownField(t *testing.T) {
	require.Len(t, Defaults(KeyHero), 4)
	require.Len(t, Defaults(KeyAbout), 7)
	require.Len(t, Defaults(KeyContact), 6)
	for _, v := range Defaults(KeyContact) {
		require.Equal(t, "", v)
	}
	require.True(t, KnownField(KeyHero, "photoUrl"))
	require.False(t, KnownField(KeyHero, "bio"))
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey("contact")
	require.NoError(t, err)
	require.Equal(t, KeyContact, k)

	_, err = ParseKey("footer")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWrapStoreError(t *testing.T) {
	require.NoError(t, Wrap("get", nil))
	require.ErrorIs(t, Wrap("get", ErrNotFound), ErrNotFound)

	cause := errors.New("connection refused")
	err := Wrap("get", cause)
	var se *StoreError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "get", se.Op)
	require.ErrorIs(t, err, cause)

	// no double wrapping
	require.Same(t, se, Wrap("list", err).(*StoreError))
}
