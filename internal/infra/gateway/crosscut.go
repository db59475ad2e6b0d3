package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"pogomcp/internal/domain"
)

type sourceMatch struct {
	Source     string `json:"source" jsonschema:"where the Pokemon appears: event, raid, research, egg, or rocket"`
	Detail     string `json:"detail" jsonschema:"tier, task text, egg distance, or trainer name"`
	CanBeShiny bool   `json:"can_be_shiny" jsonschema:"whether this appearance can be shiny"`
}

type pokemonSearchResult struct {
	Query   string        `json:"query" jsonschema:"the searched name"`
	Found   bool          `json:"found" jsonschema:"whether any source matched"`
	Sources []sourceMatch `json:"sources" jsonschema:"every place the Pokemon can currently be obtained"`
}

type pokemonSearchInput struct {
	PokemonName string `json:"pokemon_name,omitempty" jsonschema:"Pokemon to search for across all data sources"`
}

type shinyView struct {
	Name    string   `json:"name" jsonschema:"Pokemon name"`
	Sources []string `json:"sources" jsonschema:"where the shiny can be obtained"`
}

type shinyResult struct {
	Count   int         `json:"count" jsonschema:"number of distinct shiny-capable Pokemon"`
	Pokemon []shinyView `json:"pokemon" jsonschema:"all currently obtainable shinies"`
}

// communityDayExtra is the slice of event extraData the cross-cutting tools
// care about; everything else in the blob stays opaque.
type communityDayExtra struct {
	CommunityDay struct {
		Spawns []struct {
			Name string `json:"name"`
		} `json:"spawns"`
		Shinies []struct {
			Name string `json:"name"`
		} `json:"shinies"`
	} `json:"communityday"`
}

func (g *Gateway) registerCrossCuttingTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_pokemon_everywhere",
		Description: "Search for a Pokemon across events, raids, research, eggs, and Team GO Rocket lineups",
	}, logged(g.logger, "search_pokemon_everywhere", g.handleSearchPokemonEverywhere))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_all_shiny_pokemon",
		Description: "Get every Pokemon currently obtainable as shiny, with its sources",
	}, logged(g.logger, "get_all_shiny_pokemon", g.handleGetAllShinyPokemon))
}

// skipNoData swallows the never-loaded case so an aggregation over five
// categories survives one empty snapshot store slot.
func skipNoData(err error) error {
	if errors.Is(err, domain.ErrNoData) {
		return nil
	}
	return err
}

func (g *Gateway) handleSearchPokemonEverywhere(ctx context.Context, _ *mcp.CallToolRequest, input pokemonSearchInput) (*mcp.CallToolResult, pokemonSearchResult, error) {
	if input.PokemonName == "" {
		return nil, pokemonSearchResult{}, domain.E(domain.CodeInvalidArgument, "gateway.search_pokemon_everywhere", "pokemon_name is required", nil)
	}

	result := pokemonSearchResult{Query: input.PokemonName, Sources: make([]sourceMatch, 0)}

	events, err := g.provider.Events(ctx)
	if err := skipNoData(err); err != nil {
		return nil, pokemonSearchResult{}, err
	}
	for _, event := range events {
		if len(event.ExtraData) == 0 {
			continue
		}
		var extra communityDayExtra
		if err := json.Unmarshal(event.ExtraData, &extra); err != nil {
			continue
		}
		for _, spawn := range extra.CommunityDay.Spawns {
			if matchesName(spawn.Name, input.PokemonName) {
				result.Sources = append(result.Sources, sourceMatch{
					Source: "event",
					Detail: event.Name,
				})
			}
		}
		for _, shiny := range extra.CommunityDay.Shinies {
			if matchesName(shiny.Name, input.PokemonName) {
				result.Sources = append(result.Sources, sourceMatch{
					Source:     "event",
					Detail:     event.Name,
					CanBeShiny: true,
				})
			}
		}
	}

	raids, err := g.provider.Raids(ctx)
	if err := skipNoData(err); err != nil {
		return nil, pokemonSearchResult{}, err
	}
	for _, raid := range raids {
		if matchesName(raid.Name, input.PokemonName) {
			result.Sources = append(result.Sources, sourceMatch{
				Source:     "raid",
				Detail:     raid.Tier,
				CanBeShiny: raid.CanBeShiny,
			})
		}
	}

	tasks, err := g.provider.Research(ctx)
	if err := skipNoData(err); err != nil {
		return nil, pokemonSearchResult{}, err
	}
	for _, task := range tasks {
		for _, reward := range task.Rewards {
			if matchesName(reward.Name, input.PokemonName) {
				result.Sources = append(result.Sources, sourceMatch{
					Source:     "research",
					Detail:     task.Text,
					CanBeShiny: reward.CanBeShiny,
				})
			}
		}
	}

	eggs, err := g.provider.Eggs(ctx)
	if err := skipNoData(err); err != nil {
		return nil, pokemonSearchResult{}, err
	}
	for _, egg := range eggs {
		if matchesName(egg.Name, input.PokemonName) {
			result.Sources = append(result.Sources, sourceMatch{
				Source:     "egg",
				Detail:     egg.EggType,
				CanBeShiny: egg.CanBeShiny,
			})
		}
	}

	trainers, err := g.provider.RocketLineups(ctx)
	if err := skipNoData(err); err != nil {
		return nil, pokemonSearchResult{}, err
	}
	for _, trainer := range trainers {
		for _, slot := range trainer.Lineups {
			for _, pokemon := range slot.Pokemon {
				if matchesName(pokemon.Name, input.PokemonName) {
					result.Sources = append(result.Sources, sourceMatch{
						Source:     "rocket",
						Detail:     trainer.Name,
						CanBeShiny: pokemon.CanBeShiny,
					})
				}
			}
		}
	}

	result.Found = len(result.Sources) > 0
	return nil, result, nil
}

func (g *Gateway) handleGetAllShinyPokemon(ctx context.Context, _ *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, shinyResult, error) {
	sources := make(map[string][]string)

	add := func(name, source string) {
		if name == "" {
			return
		}
		sources[name] = append(sources[name], source)
	}

	events, err := g.provider.Events(ctx)
	if err := skipNoData(err); err != nil {
		return nil, shinyResult{}, err
	}
	for _, event := range events {
		if len(event.ExtraData) == 0 {
			continue
		}
		var extra communityDayExtra
		if err := json.Unmarshal(event.ExtraData, &extra); err != nil {
			continue
		}
		for _, shiny := range extra.CommunityDay.Shinies {
			add(shiny.Name, "Event: "+event.Name)
		}
	}

	raids, err := g.provider.Raids(ctx)
	if err := skipNoData(err); err != nil {
		return nil, shinyResult{}, err
	}
	for _, raid := range raids {
		if raid.CanBeShiny {
			add(raid.Name, "Raid: "+raid.Tier)
		}
	}

	tasks, err := g.provider.Research(ctx)
	if err := skipNoData(err); err != nil {
		return nil, shinyResult{}, err
	}
	for _, task := range tasks {
		for _, reward := range task.Rewards {
			if reward.CanBeShiny {
				add(reward.Name, "Research: "+task.Text)
			}
		}
	}

	eggs, err := g.provider.Eggs(ctx)
	if err := skipNoData(err); err != nil {
		return nil, shinyResult{}, err
	}
	for _, egg := range eggs {
		if egg.CanBeShiny {
			add(egg.Name, fmt.Sprintf("Egg: %s", egg.EggType))
		}
	}

	trainers, err := g.provider.RocketLineups(ctx)
	if err := skipNoData(err); err != nil {
		return nil, shinyResult{}, err
	}
	for _, trainer := range trainers {
		for _, slot := range trainer.Lineups {
			for _, pokemon := range slot.Pokemon {
				if pokemon.CanBeShiny {
					add(pokemon.Name, "Rocket: "+trainer.Name)
				}
			}
		}
	}

	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	views := make([]shinyView, 0, len(names))
	for _, name := range names {
		views = append(views, shinyView{Name: name, Sources: dedupe(sources[name])})
	}
	return nil, shinyResult{Count: len(views), Pokemon: views}, nil
}
