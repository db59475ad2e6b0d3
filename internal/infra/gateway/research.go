package gateway

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"pogomcp/internal/domain"
)

type researchResult struct {
	Count int                   `json:"count" jsonschema:"number of research tasks returned"`
	Tasks []domain.ResearchTask `json:"tasks" jsonschema:"matching field research tasks"`
}

type searchResearchInput struct {
	PokemonName string `json:"pokemon_name" jsonschema:"reward Pokemon to search for"`
}

func (g *Gateway) registerResearchTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_research_tasks",
		Description: "Get all current field research tasks and their rewards",
	}, logged(g.logger, "get_research_tasks", g.handleGetResearchTasks))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_research_by_reward",
		Description: "Find field research tasks rewarding a specific Pokemon",
	}, logged(g.logger, "search_research_by_reward", g.handleSearchResearchByReward))
}

func (g *Gateway) handleGetResearchTasks(ctx context.Context, _ *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, researchResult, error) {
	tasks, err := g.provider.Research(ctx)
	if err != nil {
		return nil, researchResult{}, err
	}
	return nil, researchResult{Count: len(tasks), Tasks: tasks}, nil
}

func (g *Gateway) handleSearchResearchByReward(ctx context.Context, _ *mcp.CallToolRequest, input searchResearchInput) (*mcp.CallToolResult, researchResult, error) {
	if input.PokemonName == "" {
		return nil, researchResult{}, domain.E(domain.CodeInvalidArgument, "gateway.search_research_by_reward", "pokemon_name is required", nil)
	}

	tasks, err := g.provider.Research(ctx)
	if err != nil {
		return nil, researchResult{}, err
	}

	matches := make([]domain.ResearchTask, 0)
	for _, task := range tasks {
		for _, reward := range task.Rewards {
			if matchesName(reward.Name, input.PokemonName) {
				matches = append(matches, task)
				break
			}
		}
	}
	return nil, researchResult{Count: len(matches), Tasks: matches}, nil
}
