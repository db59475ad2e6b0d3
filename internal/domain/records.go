package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Record shapes mirror the collector's JSON output. Decoding ignores unknown
// fields so additive collector changes never break loading.

// TypeRef is a Pokémon type reference with its icon.
type TypeRef struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// WeatherRef is a weather condition reference with its icon.
type WeatherRef struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// CombatPowerRange is a min/max CP window.
type CombatPowerRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// RaidCombatPower holds the catch CP windows for a raid boss.
type RaidCombatPower struct {
	Normal  CombatPowerRange `json:"normal"`
	Boosted CombatPowerRange `json:"boosted"`
}

// Event is a timed in-game event.
type Event struct {
	EventID   string          `json:"eventID"`
	Name      string          `json:"name"`
	EventType string          `json:"eventType"`
	Heading   string          `json:"heading"`
	Link      string          `json:"link"`
	Image     string          `json:"image"`
	Start     string          `json:"start"`
	End       string          `json:"end"`
	ExtraData json.RawMessage `json:"extraData,omitempty"`
}

// eventTimeLayouts covers the collector's timestamp variants: full RFC 3339
// for global events, zone-less local times for local events.
var eventTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999",
	"2006-01-02T15:04:05",
}

func parseEventTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// StartTime parses the event start timestamp.
func (e Event) StartTime() (time.Time, bool) {
	return parseEventTime(e.Start)
}

// EndTime parses the event end timestamp.
func (e Event) EndTime() (time.Time, bool) {
	return parseEventTime(e.End)
}

// ActiveAt reports whether the event is running at the given instant. Events
// with unparsable bounds are never considered active.
func (e Event) ActiveAt(now time.Time) bool {
	start, ok := e.StartTime()
	if !ok {
		return false
	}
	end, ok := e.EndTime()
	if !ok {
		return false
	}
	return !now.Before(start) && !now.After(end)
}

// UpcomingAt reports whether the event starts after the given instant.
func (e Event) UpcomingAt(now time.Time) bool {
	start, ok := e.StartTime()
	if !ok {
		return false
	}
	return start.After(now)
}

// RaidBoss is one entry in the current raid rotation.
type RaidBoss struct {
	Name           string          `json:"name"`
	Tier           string          `json:"tier"`
	CanBeShiny     bool            `json:"canBeShiny"`
	Types          []TypeRef       `json:"types,omitempty"`
	CombatPower    RaidCombatPower `json:"combatPower"`
	BoostedWeather []WeatherRef    `json:"boostedWeather,omitempty"`
	Image          string          `json:"image"`
}

// ResearchReward is a Pokémon encounter reward on a research task. The
// collector emits the shiny flag in snake_case here, unlike raids and eggs.
type ResearchReward struct {
	Name        string            `json:"name"`
	Image       string            `json:"image"`
	CanBeShiny  bool              `json:"can_be_shiny"`
	CombatPower *CombatPowerRange `json:"combatPower,omitempty"`
}

// ResearchTask is a field research task with its rewards.
type ResearchTask struct {
	Text    string           `json:"text"`
	Type    string           `json:"type,omitempty"`
	Rewards []ResearchReward `json:"rewards"`
}

// Egg is one Pokémon in the current egg hatch pool.
type Egg struct {
	Name            string `json:"name"`
	EggType         string `json:"eggType"`
	IsAdventureSync bool   `json:"isAdventureSync"`
	Image           string `json:"image"`
	CanBeShiny      bool   `json:"canBeShiny"`
	CombatPower     int    `json:"combatPower"`
	IsRegional      bool   `json:"isRegional"`
	IsGiftExchange  bool   `json:"isGiftExchange"`
	IsRouteGift     bool   `json:"isRouteGift"`
	Rarity          int    `json:"rarity"`
}

// RocketWeaknesses lists type weaknesses of a shadow Pokémon.
type RocketWeaknesses struct {
	Double []string `json:"double,omitempty"`
	Single []string `json:"single,omitempty"`
}

// RocketPokemon is a shadow Pokémon appearing in a lineup slot. The collector
// emits snake_case keys for this category.
type RocketPokemon struct {
	Name       string           `json:"name"`
	Types      []string         `json:"types,omitempty"`
	Weaknesses RocketWeaknesses `json:"weaknesses"`
	Image      string           `json:"image"`
	CanBeShiny bool             `json:"can_be_shiny"`
}

// RocketLineupSlot is one of the three battle slots of a trainer.
type RocketLineupSlot struct {
	Slot        int             `json:"slot"`
	IsEncounter bool            `json:"is_encounter"`
	Pokemon     []RocketPokemon `json:"pokemon"`
}

// RocketTrainer is a Team GO Rocket trainer with their possible lineups.
type RocketTrainer struct {
	Name    string             `json:"name"`
	Title   string             `json:"title"`
	Quote   string             `json:"quote"`
	Image   string             `json:"image"`
	Type    string             `json:"type"`
	Lineups []RocketLineupSlot `json:"lineups"`
}

// IsLeader reports whether the trainer is a leader or the team boss rather
// than a grunt.
func (t RocketTrainer) IsLeader() bool {
	title := strings.ToLower(t.Title)
	return strings.Contains(title, "leader") || strings.Contains(title, "boss")
}

// EncounterPokemon returns the Pokémon that can be caught after defeating the
// trainer.
func (t RocketTrainer) EncounterPokemon() []RocketPokemon {
	var out []RocketPokemon
	for _, slot := range t.Lineups {
		if !slot.IsEncounter {
			continue
		}
		out = append(out, slot.Pokemon...)
	}
	return out
}

// PromoReward is one item granted by a promo code.
type PromoReward struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// PromoCode is a redeemable promotional code.
type PromoCode struct {
	Code          string        `json:"code"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	RedemptionURL string        `json:"redemption_url"`
	Rewards       []PromoReward `json:"rewards,omitempty"`
	Expiration    string        `json:"expiration,omitempty"`
}

// ExpiredAt reports whether the code has expired at the given instant. Codes
// without a parsable expiration are treated as unexpired.
func (p PromoCode) ExpiredAt(now time.Time) bool {
	if p.Expiration == "" {
		return false
	}
	exp, err := time.Parse(time.RFC3339, p.Expiration)
	if err != nil {
		return false
	}
	return now.After(exp)
}
