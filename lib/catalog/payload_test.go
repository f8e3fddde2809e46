package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodePayloadRejectsNonObjects(t *testing.T) {
	for _, raw := range []string{`[]`, `null`, `"game"`, `{bad`, ``} {
		_, err := DecodePayload([]byte(raw))
		require.Error(t, err, raw)
	}
}

func TestPayloadAccessorsReportPresence(t *testing.T) {
	p := mustPayload(t, `{
		"s": "text",
		"n": 42,
		"f": 1.5,
		"big": 9007199254740993,
		"b": true,
		"l": [1, 2],
		"o": {"inner": "x"},
		"null": null
	}`)

	s, ok := p.String("s")
	require.True(t, ok)
	require.Equal(t, "text", s)
	_, ok = p.String("n")
	require.False(t, ok)

	n, ok := p.Int("n")
	require.True(t, ok)
	require.Equal(t, int64(42), n)
	_, ok = p.Int("f")
	require.False(t, ok, "fractional numbers are not integers")

	big, ok := p.Int("big")
	require.True(t, ok)
	require.Equal(t, int64(9007199254740993), big)

	f, ok := p.Float("f")
	require.True(t, ok)
	require.Equal(t, 1.5, f)

	b, ok := p.Bool("b")
	require.True(t, ok)
	require.True(t, b)

	l, ok := p.List("l")
	require.True(t, ok)
	require.Len(t, l, 2)

	o, ok := p.Object("o")
	require.True(t, ok)
	inner, _ := o.String("inner")
	require.Equal(t, "x", inner)

	require.False(t, p.Has("null"))
	require.False(t, p.Has("missing"))
	require.True(t, p.Has("s"))

	_, ok = p.Object("null")
	require.False(t, ok)
}

func TestPayloadScalar(t *testing.T) {
	p := mustPayload(t, `{"s": "18", "n": 16, "b": false, "o": {}}`)

	for key, expected := range map[string]string{"s": "18", "n": "16", "b": "false"} {
		v, ok := p.Scalar(key)
		require.True(t, ok)
		require.Equal(t, expected, v)
	}
	_, ok := p.Scalar("o")
	require.False(t, ok)
}

func TestEmptyPayload(t *testing.T) {
	require.True(t, Payload{}.Empty())
	require.True(t, Payload(nil).Empty())
	_, ok := Payload(nil).String("type")
	require.False(t, ok)
}
