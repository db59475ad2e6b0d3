package gateway

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"pogomcp/internal/domain"
)

type rocketResult struct {
	Count    int                    `json:"count" jsonschema:"number of trainers returned"`
	Trainers []domain.RocketTrainer `json:"trainers" jsonschema:"matching Team GO Rocket trainers"`
}

type rocketByTypeInput struct {
	TrainerType string `json:"trainer_type,omitempty" jsonschema:"grunt type to filter by, e.g. bug; leave empty for all trainers"`
}

type rocketEncounterView struct {
	Trainer  string                 `json:"trainer" jsonschema:"trainer offering the encounter"`
	IsLeader bool                   `json:"is_leader" jsonschema:"whether the trainer is a leader or the team boss"`
	Pokemon  []domain.RocketPokemon `json:"pokemon" jsonschema:"Pokemon catchable after defeating this trainer"`
}

type rocketEncountersResult struct {
	Count      int                   `json:"count" jsonschema:"total encounter options across all trainers"`
	ShinyCount int                   `json:"shiny_count" jsonschema:"encounter options that can be shiny"`
	Encounters []rocketEncounterView `json:"encounters" jsonschema:"per-trainer encounter rewards"`
}

type shadowShinyResult struct {
	Count   int               `json:"count" jsonschema:"number of shiny-capable shadow Pokemon"`
	Pokemon []shadowShinyView `json:"pokemon" jsonschema:"shiny-capable shadow Pokemon and who runs them"`
}

type shadowShinyView struct {
	Name     string   `json:"name" jsonschema:"Pokemon name"`
	Trainers []string `json:"trainers" jsonschema:"trainers fielding this Pokemon"`
}

func (g *Gateway) registerRocketTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_rocket_lineups",
		Description: "Get Team GO Rocket trainer lineups, optionally filtered by grunt type",
	}, logged(g.logger, "get_rocket_lineups", g.handleGetRocketLineups))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_rocket_encounters",
		Description: "Get the Pokemon catchable after defeating each Team GO Rocket trainer",
	}, logged(g.logger, "get_rocket_encounters", g.handleGetRocketEncounters))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_shiny_shadow_pokemon",
		Description: "Get shadow Pokemon that can be shiny and the trainers that field them",
	}, logged(g.logger, "get_shiny_shadow_pokemon", g.handleGetShinyShadowPokemon))
}

func (g *Gateway) handleGetRocketLineups(ctx context.Context, _ *mcp.CallToolRequest, input rocketByTypeInput) (*mcp.CallToolResult, rocketResult, error) {
	trainers, err := g.provider.RocketLineups(ctx)
	if err != nil {
		return nil, rocketResult{}, err
	}

	if input.TrainerType == "" {
		return nil, rocketResult{Count: len(trainers), Trainers: trainers}, nil
	}

	matches := make([]domain.RocketTrainer, 0)
	for _, trainer := range trainers {
		if matchesName(trainer.Type, input.TrainerType) {
			matches = append(matches, trainer)
		}
	}
	return nil, rocketResult{Count: len(matches), Trainers: matches}, nil
}

func (g *Gateway) handleGetRocketEncounters(ctx context.Context, _ *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, rocketEncountersResult, error) {
	trainers, err := g.provider.RocketLineups(ctx)
	if err != nil {
		return nil, rocketEncountersResult{}, err
	}

	result := rocketEncountersResult{Encounters: make([]rocketEncounterView, 0)}
	for _, trainer := range trainers {
		encounters := trainer.EncounterPokemon()
		if len(encounters) == 0 {
			continue
		}
		result.Count += len(encounters)
		for _, pokemon := range encounters {
			if pokemon.CanBeShiny {
				result.ShinyCount++
			}
		}
		result.Encounters = append(result.Encounters, rocketEncounterView{
			Trainer:  trainer.Name,
			IsLeader: trainer.IsLeader(),
			Pokemon:  encounters,
		})
	}
	return nil, result, nil
}

func (g *Gateway) handleGetShinyShadowPokemon(ctx context.Context, _ *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, shadowShinyResult, error) {
	trainers, err := g.provider.RocketLineups(ctx)
	if err != nil {
		return nil, shadowShinyResult{}, err
	}

	byName := make(map[string][]string)
	order := make([]string, 0)
	for _, trainer := range trainers {
		for _, slot := range trainer.Lineups {
			for _, pokemon := range slot.Pokemon {
				if !pokemon.CanBeShiny {
					continue
				}
				if _, seen := byName[pokemon.Name]; !seen {
					order = append(order, pokemon.Name)
				}
				byName[pokemon.Name] = append(byName[pokemon.Name], trainer.Name)
			}
		}
	}

	views := make([]shadowShinyView, 0, len(order))
	for _, name := range order {
		views = append(views, shadowShinyView{Name: name, Trainers: dedupe(byName[name])})
	}
	return nil, shadowShinyResult{Count: len(views), Pokemon: views}, nil
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
