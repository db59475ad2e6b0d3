package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEventActiveAt(t *testing.T) {
	event := Event{
		Name:  "Community Day",
		Start: "2025-06-01T14:00:00.000",
		End:   "2025-06-01T17:00:00.000",
	}

	during := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	before := time.Date(2025, 5, 31, 12, 0, 0, 0, time.UTC)
	after := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	require.True(t, event.ActiveAt(during))
	require.False(t, event.ActiveAt(before))
	require.False(t, event.ActiveAt(after))

	require.True(t, event.UpcomingAt(before))
	require.False(t, event.UpcomingAt(during))
}

func TestEventActiveAtBounds(t *testing.T) {
	event := Event{
		Start: "2025-06-01T14:00:00Z",
		End:   "2025-06-01T17:00:00Z",
	}

	start := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 17, 0, 0, 0, time.UTC)
	require.True(t, event.ActiveAt(start))
	require.True(t, event.ActiveAt(end))
}

func TestEventUnparsableTimesNeverActive(t *testing.T) {
	event := Event{Start: "soon", End: "later"}
	require.False(t, event.ActiveAt(time.Now()))
	require.False(t, event.UpcomingAt(time.Now()))
}

func TestRaidBossDecodeIgnoresUnknownFields(t *testing.T) {
	raw := `{
		"name": "Rayquaza",
		"tier": "Tier 5",
		"canBeShiny": true,
		"types": [{"name": "dragon", "image": ""}, {"name": "flying", "image": ""}],
		"combatPower": {"normal": {"min": 2102, "max": 2191}, "boosted": {"min": 2627, "max": 2739}},
		"boostedWeather": [{"name": "windy", "image": ""}],
		"image": "",
		"futureField": {"nested": true}
	}`

	var boss RaidBoss
	require.NoError(t, json.Unmarshal([]byte(raw), &boss))
	require.Equal(t, "Rayquaza", boss.Name)
	require.True(t, boss.CanBeShiny)
	require.Equal(t, 2627, boss.CombatPower.Boosted.Min)
	require.Len(t, boss.Types, 2)
}

func TestResearchRewardDecodesCollectorShinyFlag(t *testing.T) {
	raw := `{
		"text": "Catch 5 Pokemon",
		"type": "catch",
		"rewards": [
			{"name": "Pikachu", "image": "", "can_be_shiny": true, "combatPower": null}
		]
	}`

	var task ResearchTask
	require.NoError(t, json.Unmarshal([]byte(raw), &task))
	require.Len(t, task.Rewards, 1)
	require.True(t, task.Rewards[0].CanBeShiny)
}

func TestRocketTrainerHelpers(t *testing.T) {
	trainer := RocketTrainer{
		Name:  "Bug Type Grunt",
		Title: "Grunt",
		Type:  "bug",
		Lineups: []RocketLineupSlot{
			{Slot: 1, Pokemon: []RocketPokemon{{Name: "Weedle"}}},
			{Slot: 3, IsEncounter: true, Pokemon: []RocketPokemon{{Name: "Beedrill", CanBeShiny: true}}},
		},
	}
	require.False(t, trainer.IsLeader())

	encounters := trainer.EncounterPokemon()
	require.Len(t, encounters, 1)
	require.Equal(t, "Beedrill", encounters[0].Name)

	leader := RocketTrainer{Title: "Team GO Rocket Boss"}
	require.True(t, leader.IsLeader())
}

func TestPromoCodeExpiredAt(t *testing.T) {
	code := PromoCode{Code: "TESTCODE2025", Expiration: "2025-12-31T23:59:59Z"}
	require.False(t, code.ExpiredAt(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	require.True(t, code.ExpiredAt(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))

	require.False(t, PromoCode{Code: "NOEXPIRY"}.ExpiredAt(time.Now()))
}
