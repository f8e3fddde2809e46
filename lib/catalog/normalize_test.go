package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func mustPayload(t *testing.T, raw string) Payload {
	t.Helper()
	p, err := DecodePayload([]byte(raw))
	require.NoError(t, err)
	return p
}

func TestNormalizeFullPayload(t *testing.T) {
	details := mustPayload(t, `{
		"type": "game",
		"name": "Portal 2",
		"required_age": 0,
		"is_free": false,
		"dlc": [323180, 323181],
		"short_description": "The sequel.",
		"supported_languages": "English<strong>*</strong>, French<br><strong>*</strong>languages with full audio support",
		"developers": ["Valve", "Someone Else"],
		"price_overview": {"currency": "USD", "initial": 999, "final": 199},
		"platforms": {"windows": true, "mac": true, "linux": false},
		"categories": [
			{"id": 2, "description": "Single-player"},
			{"id": 9, "description": "Co-op"}
		],
		"achievements": {"total": 51, "highlighted": []},
		"release_date": {"coming_soon": false, "date": "18 Apr, 2011"}
	}`)

	record, ok := Normalize(Input{
		AppID:      620,
		Name:       ptr("Portal 2"),
		Details:    details,
		Reviews:    ReviewSummary{TotalPositive: ptr[int64](300), TotalNegative: ptr[int64](4), TotalReviews: ptr[int64](304)},
		PlayersNow: ptr[int64](1234),
	})
	require.True(t, ok)

	expected := GameRecord{
		AppID:            620,
		Name:             ptr("Portal 2"),
		ReleaseDate:      ptr("18 Apr, 2011"),
		Achievements:     51,
		Categories:       ptr("2:Single-player;9:Co-op"),
		Windows:          true,
		Mac:              true,
		Linux:            false,
		Developer:        ptr("Valve"),
		DLCCount:         2,
		Languages:        ptr("English*;French*languages with full audio support"),
		RequiredAge:      "0",
		Price:            ptr(9.99),
		ShortDescription: ptr("The sequel."),
		PlayersNow:       ptr[int64](1234),
		ReviewsPositive:  ptr[int64](300),
		ReviewsNegative:  ptr[int64](4),
	}
	if diff := cmp.Diff(expected, record); diff != "" {
		t.Fatalf("unexpected record (-want +got):\n%s", diff)
	}
}

func TestNormalizeRejectsNonGames(t *testing.T) {
	cases := map[string]string{
		"application": `{"type": "application", "is_free": true}`,
		"dlc":         `{"type": "dlc"}`,
		"demo":        `{"type": "demo"}`,
		"uppercase":   `{"type": "Game"}`,
		"missing":     `{"name": "no type"}`,
		"non-string":  `{"type": 1}`,
		"empty":       `{}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := Normalize(Input{AppID: 1, Details: mustPayload(t, raw)})
			require.False(t, ok)
		})
	}

	_, ok := Normalize(Input{AppID: 1})
	require.False(t, ok, "nil payload is not a game")
}

func TestNormalizeRejectsNonPositiveAppID(t *testing.T) {
	details := mustPayload(t, `{"type": "game"}`)
	for _, id := range []int64{0, -5} {
		_, ok := Normalize(Input{AppID: id, Details: details})
		require.False(t, ok)
	}
}

func TestNormalizeMinimalGameDefaults(t *testing.T) {
	record, ok := Normalize(Input{AppID: 7, Details: mustPayload(t, `{"type": "game"}`)})
	require.True(t, ok)

	expected := GameRecord{AppID: 7, RequiredAge: "0"}
	if diff := cmp.Diff(expected, record); diff != "" {
		t.Fatalf("unexpected record (-want +got):\n%s", diff)
	}
}

func TestNormalizeCountsNeverAbsent(t *testing.T) {
	cases := []string{
		`{"type": "game"}`,
		`{"type": "game", "achievements": {}, "dlc": []}`,
		`{"type": "game", "achievements": {"total": null}, "dlc": null}`,
		`{"type": "game", "achievements": "broken", "dlc": "broken"}`,
	}
	for _, raw := range cases {
		record, ok := Normalize(Input{AppID: 3, Details: mustPayload(t, raw)})
		require.True(t, ok)
		require.Equal(t, int64(0), record.Achievements, raw)
		require.Equal(t, int64(0), record.DLCCount, raw)
	}
}

func TestCleanLanguages(t *testing.T) {
	require.Equal(t, ptr("English;French"), CleanLanguages("<strong>English</strong><br>, French, "))
	require.Equal(t, ptr("English;German;Spanish - Spain"), CleanLanguages("English, German,Spanish - Spain"))
	require.Nil(t, CleanLanguages(""))
	require.Nil(t, CleanLanguages(" , <br>,"))
	// only the three literal markers are removed
	require.Equal(t, ptr("<em>Japanese</em>"), CleanLanguages("<em>Japanese</em>"))
}

func TestJoinCategoriesPreservesOrder(t *testing.T) {
	payload := mustPayload(t, `{"categories": [
		{"id": 2, "description": "Single-player"},
		{"id": 1, "description": "Multi-player"}
	]}`)
	categories, ok := payload.List("categories")
	require.True(t, ok)

	require.Equal(t, ptr("2:Single-player;1:Multi-player"), JoinCategories(categories))
}

func TestJoinCategoriesSkipsIncompleteEntries(t *testing.T) {
	payload := mustPayload(t, `{"categories": [
		{"id": 2},
		{"description": "orphan"},
		"not an object",
		{"id": 22, "description": "Steam Achievements"}
	]}`)
	categories, _ := payload.List("categories")
	require.Equal(t, ptr("22:Steam Achievements"), JoinCategories(categories))

	require.Nil(t, JoinCategories(nil))
	require.Nil(t, JoinCategories([]any{}))
}

func TestPrice(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		expected *float64
	}{
		{"free with overview", `{"is_free": true, "price_overview": {"initial": 1999}}`, ptr(0.0)},
		{"free without overview", `{"is_free": true}`, ptr(0.0)},
		{"paid without overview", `{"is_free": false}`, nil},
		{"paid", `{"is_free": false, "price_overview": {"initial": 1999}}`, ptr(19.99)},
		{"missing flag", `{"price_overview": {"initial": 500, "final": 250}}`, ptr(5.0)},
		{"overview without initial", `{"price_overview": {"final": 250}}`, nil},
		{"non-numeric initial", `{"price_overview": {"initial": "1999"}}`, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.expected, Price(mustPayload(t, c.raw)))
		})
	}
}

func TestRequiredAge(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		expected string
	}{
		{"default", `{}`, "0"},
		{"top level number", `{"required_age": 17}`, "17"},
		{"top level string", `{"required_age": "18"}`, "18"},
		{
			"board required_age wins over top level",
			`{"required_age": 0, "ratings": {"pegi": {"rating": "16", "required_age": "16"}}}`,
			"16",
		},
		{
			"board rating when no required_age",
			`{"required_age": 0, "ratings": {"usk": {"rating": "12", "descriptors": "x"}}}`,
			"12",
		},
		{
			"board order is fixed",
			`{"ratings": {"agcom": {"rating": "3"}, "steam_germany": {"required_age": "18"}}}`,
			"18",
		},
		{
			"unknown boards fall back",
			`{"required_age": "13", "ratings": {"esrb": {"rating": "m"}}}`,
			"13",
		},
		{
			"board without fields falls back",
			`{"ratings": {"pegi": {"descriptors": "Violence"}}}`,
			"0",
		},
		{"null ratings", `{"required_age": 3, "ratings": null}`, "3"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.expected, RequiredAge(mustPayload(t, c.raw)))
		})
	}
}

func TestNormalizeDeveloper(t *testing.T) {
	cases := map[string]*string{
		`{"type": "game", "developers": ["A", "B"]}`: ptr("A"),
		`{"type": "game", "developers": []}`:         nil,
		`{"type": "game", "developers": [5]}`:        nil,
		`{"type": "game"}`:                           nil,
	}
	for raw, expected := range cases {
		record, ok := Normalize(Input{AppID: 1, Details: mustPayload(t, raw)})
		require.True(t, ok)
		require.Equal(t, expected, record.Developer, raw)
	}
}
