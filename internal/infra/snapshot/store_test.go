package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pogomcp/internal/domain"
)

func writeSnapshotFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
}

func TestStoreLoadEvents(t *testing.T) {
	dir := t.TempDir()
	writeSnapshotFile(t, dir, "events.json", `[{"eventID":"E1","name":"Community Day","eventType":"community-day"}]`)

	store := NewStore(dir, zap.NewNop())
	snap, err := store.Load(context.Background(), domain.CategoryEvents)
	require.NoError(t, err)
	require.Equal(t, domain.CategoryEvents, snap.Category)
	require.Equal(t, 1, snap.Count)

	events, ok := snap.Items.([]domain.Event)
	require.True(t, ok)
	require.Equal(t, "E1", events[0].EventID)
	require.Equal(t, "Community Day", events[0].Name)
}

func TestStoreLoadResearchDecodesFully(t *testing.T) {
	dir := t.TempDir()
	writeSnapshotFile(t, dir, "research.json", `[{
		"text": "Catch 5 Pokemon",
		"rewards": [
			{"name": "Chansey", "can_be_shiny": true, "combatPower": {"min": 523, "max": 564}}
		]
	}]`)

	store := NewStore(dir, zap.NewNop())
	snap, err := store.Load(context.Background(), domain.CategoryResearch)
	require.NoError(t, err)

	expect := []domain.ResearchTask{{
		Text: "Catch 5 Pokemon",
		Rewards: []domain.ResearchReward{{
			Name:        "Chansey",
			CanBeShiny:  true,
			CombatPower: &domain.CombatPowerRange{Min: 523, Max: 564},
		}},
	}}
	if diff := cmp.Diff(expect, snap.Items); diff != "" {
		t.Fatalf("research snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreLoadEmptyArrayIsValid(t *testing.T) {
	dir := t.TempDir()
	writeSnapshotFile(t, dir, "raids.json", `[]`)

	store := NewStore(dir, zap.NewNop())
	snap, err := store.Load(context.Background(), domain.CategoryRaids)
	require.NoError(t, err)
	require.Equal(t, 0, snap.Count)
	require.NotNil(t, snap.Items)
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewStore(t.TempDir(), zap.NewNop())
	_, err := store.Load(context.Background(), domain.CategoryResearch)
	require.Error(t, err)

	code, ok := domain.CodeFrom(err)
	require.True(t, ok)
	require.Equal(t, domain.CodeNotFound, code)
}

func TestStoreLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeSnapshotFile(t, dir, "eggs.json", `{"not":"an array"}`)

	store := NewStore(dir, zap.NewNop())
	_, err := store.Load(context.Background(), domain.CategoryEggs)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrMalformedSnapshot)
}

func TestStoreLoadInvalidCategory(t *testing.T) {
	store := NewStore(t.TempDir(), zap.NewNop())
	_, err := store.Load(context.Background(), domain.Category("gyms"))
	require.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestStoreLoadCanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeSnapshotFile(t, dir, "events.json", `[]`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewStore(dir, zap.NewNop())
	_, err := store.Load(ctx, domain.CategoryEvents)
	require.Error(t, err)
}

func TestStoreLoadRocketLineups(t *testing.T) {
	dir := t.TempDir()
	writeSnapshotFile(t, dir, "rocket-lineups.json", `[{
		"name": "Bug Type Grunt",
		"title": "Grunt",
		"type": "bug",
		"lineups": [
			{"slot": 3, "is_encounter": true, "pokemon": [{"name": "Beedrill", "can_be_shiny": true, "types": ["bug", "poison"]}]}
		]
	}]`)

	store := NewStore(dir, zap.NewNop())
	snap, err := store.Load(context.Background(), domain.CategoryRocketLineups)
	require.NoError(t, err)

	trainers, ok := snap.Items.([]domain.RocketTrainer)
	require.True(t, ok)
	require.Len(t, trainers, 1)
	require.True(t, trainers[0].Lineups[0].IsEncounter)
	require.True(t, trainers[0].Lineups[0].Pokemon[0].CanBeShiny)
}
