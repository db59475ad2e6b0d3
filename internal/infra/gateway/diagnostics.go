package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"pogomcp/internal/domain"
)

type categoryStatusView struct {
	Category string `json:"category" jsonschema:"data category"`
	Loaded   bool   `json:"loaded" jsonschema:"whether a snapshot is held in memory"`
	Count    int    `json:"count" jsonschema:"records in the held snapshot"`
	LoadedAt string `json:"loaded_at,omitempty" jsonschema:"RFC 3339 time the snapshot was loaded"`
	Age      string `json:"age,omitempty" jsonschema:"time since the snapshot was loaded"`
}

type serverStatusResult struct {
	Server     string               `json:"server" jsonschema:"server name"`
	Version    string               `json:"version" jsonschema:"server version"`
	Categories []categoryStatusView `json:"categories" jsonschema:"per-category cache state"`
}

type refreshDataInput struct {
	Category string `json:"category,omitempty"`
}

type refreshDataResult struct {
	Cleared string `json:"cleared" jsonschema:"the category that was invalidated, or all"`
	Message string `json:"message" jsonschema:"human-readable confirmation"`
}

func refreshDataInputSchema() *jsonschema.Schema {
	categories := []any{"all"}
	for _, cat := range domain.Categories() {
		categories = append(categories, string(cat))
	}
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"category": {
				Type:        "string",
				Description: "category to invalidate; omit or pass all for every category",
				Enum:        categories,
			},
		},
	}
}

func (g *Gateway) registerDiagnosticTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "server_status",
		Description: "Report per-category cache state: loaded, record count, load time, and age",
	}, logged(g.logger, "server_status", g.handleServerStatus))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "refresh_data",
		Description: "Invalidate cached data so the next query reloads from disk",
		InputSchema: refreshDataInputSchema(),
	}, logged(g.logger, "refresh_data", g.handleRefreshData))
}

func (g *Gateway) handleServerStatus(_ context.Context, _ *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, serverStatusResult, error) {
	statuses := g.provider.Status()
	views := make([]categoryStatusView, 0, len(statuses))
	for _, status := range statuses {
		view := categoryStatusView{
			Category: string(status.Category),
			Loaded:   status.Loaded,
			Count:    status.Count,
		}
		if status.Loaded {
			view.LoadedAt = status.LoadedAt.Format(time.RFC3339)
			view.Age = status.Age.Round(time.Second).String()
		}
		views = append(views, view)
	}
	return nil, serverStatusResult{
		Server:     serverName,
		Version:    serverVersion,
		Categories: views,
	}, nil
}

func (g *Gateway) handleRefreshData(_ context.Context, _ *mcp.CallToolRequest, input refreshDataInput) (*mcp.CallToolResult, refreshDataResult, error) {
	if err := g.provider.ClearCache(input.Category); err != nil {
		return nil, refreshDataResult{}, err
	}

	cleared := input.Category
	if cleared == "" {
		cleared = "all"
	}
	return nil, refreshDataResult{
		Cleared: cleared,
		Message: fmt.Sprintf("cache cleared for %s; data reloads on next query", cleared),
	}, nil
}
