package gateway

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"pogomcp/internal/domain"
)

// eventView is the tool-facing shape of an event. It drops the opaque
// extraData blob and adds the resolved active/upcoming flags.
type eventView struct {
	ID       string `json:"id" jsonschema:"event identifier"`
	Name     string `json:"name" jsonschema:"event name"`
	Type     string `json:"type" jsonschema:"event type slug"`
	Heading  string `json:"heading" jsonschema:"event category heading"`
	Link     string `json:"link" jsonschema:"announcement link"`
	Start    string `json:"start" jsonschema:"start time as published"`
	End      string `json:"end" jsonschema:"end time as published"`
	Active   bool   `json:"active" jsonschema:"running right now"`
	Upcoming bool   `json:"upcoming" jsonschema:"starts in the future"`
}

type eventsResult struct {
	Count  int         `json:"count" jsonschema:"number of events returned"`
	Events []eventView `json:"events" jsonschema:"matching events"`
}

type searchEventsInput struct {
	Query string `json:"query,omitempty" jsonschema:"case-insensitive substring matched against event names"`
}

func (g *Gateway) registerEventTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_events",
		Description: "Get all known Pokemon GO events, past announcements included",
	}, logged(g.logger, "get_events", g.handleGetEvents))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_active_events",
		Description: "Get events that are running right now",
	}, logged(g.logger, "get_active_events", g.handleGetActiveEvents))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_upcoming_events",
		Description: "Get events that have not started yet",
	}, logged(g.logger, "get_upcoming_events", g.handleGetUpcomingEvents))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_events",
		Description: "Search events by name",
	}, logged(g.logger, "search_events", g.handleSearchEvents))
}

func (g *Gateway) eventViews(ctx context.Context, keep func(domain.Event) bool) (eventsResult, error) {
	events, err := g.provider.Events(ctx)
	if err != nil {
		return eventsResult{}, err
	}

	now := g.now()
	views := make([]eventView, 0, len(events))
	for _, event := range events {
		if keep != nil && !keep(event) {
			continue
		}
		views = append(views, eventView{
			ID:       event.EventID,
			Name:     event.Name,
			Type:     event.EventType,
			Heading:  event.Heading,
			Link:     event.Link,
			Start:    event.Start,
			End:      event.End,
			Active:   event.ActiveAt(now),
			Upcoming: event.UpcomingAt(now),
		})
	}
	return eventsResult{Count: len(views), Events: views}, nil
}

func (g *Gateway) handleGetEvents(ctx context.Context, _ *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, eventsResult, error) {
	result, err := g.eventViews(ctx, nil)
	return nil, result, err
}

func (g *Gateway) handleGetActiveEvents(ctx context.Context, _ *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, eventsResult, error) {
	now := g.now()
	result, err := g.eventViews(ctx, func(e domain.Event) bool { return e.ActiveAt(now) })
	return nil, result, err
}

func (g *Gateway) handleGetUpcomingEvents(ctx context.Context, _ *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, eventsResult, error) {
	now := g.now()
	result, err := g.eventViews(ctx, func(e domain.Event) bool { return e.UpcomingAt(now) })
	return nil, result, err
}

func (g *Gateway) handleSearchEvents(ctx context.Context, _ *mcp.CallToolRequest, input searchEventsInput) (*mcp.CallToolResult, eventsResult, error) {
	if input.Query == "" {
		return nil, eventsResult{}, domain.E(domain.CodeInvalidArgument, "gateway.search_events", "query is required", nil)
	}
	result, err := g.eventViews(ctx, func(e domain.Event) bool { return matchesName(e.Name, input.Query) })
	return nil, result, err
}
