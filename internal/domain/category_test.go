package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategoryFilenames(t *testing.T) {
	expected := map[Category]string{
		CategoryEvents:        "events.json",
		CategoryRaids:         "raids.json",
		CategoryResearch:      "research.json",
		CategoryEggs:          "eggs.json",
		CategoryRocketLineups: "rocket-lineups.json",
		CategoryPromoCodes:    "promo-codes.json",
	}

	require.Len(t, Categories(), len(expected))
	for _, cat := range Categories() {
		require.True(t, cat.Valid())
		require.Equal(t, expected[cat], cat.Filename())
	}
}

func TestParseCategory(t *testing.T) {
	cat, err := ParseCategory("rocket-lineups")
	require.NoError(t, err)
	require.Equal(t, CategoryRocketLineups, cat)

	_, err = ParseCategory("gyms")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCategory)

	code, ok := CodeFrom(err)
	require.True(t, ok)
	require.Equal(t, CodeInvalidArgument, code)
}

func TestInvalidCategoryHasNoFilename(t *testing.T) {
	require.False(t, Category("gyms").Valid())
	require.Empty(t, Category("gyms").Filename())
}
