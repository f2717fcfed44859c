// Package mcp exposes the live monitoring session over the Model
// Context Protocol. Assistant tooling gets the same four operations the
// other surfaces offer: list, export, status and confirmed clear, plus
// the export artifact as a readable resource.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sandevgo/pulseboard/internal/advisor"
	"github.com/sandevgo/pulseboard/internal/core"
	"github.com/sandevgo/pulseboard/internal/render"
	"github.com/sandevgo/pulseboard/internal/service/session"
)

// ExportResourceURI identifies the plain-text export artifact.
const ExportResourceURI = "pulseboard://session/export"

// NewServer builds a stdio-ready MCP server bound to one live session
// store. Stats arrive through a callback so the package stays
// independent of the monitor.
func NewServer(store *session.Store, stats func() core.SessionStats) *server.MCPServer {
	s := server.NewMCPServer(
		core.PulseName,
		core.PulseVersion,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(true, false),
	)

	registerRecommendationsTool(s, store)
	registerExportTool(s, store)
	registerStatusTool(s, store, stats)
	registerClearTool(s, store)

	registerExportResource(s, store)

	return s
}

func registerRecommendationsTool(s *server.MCPServer, store *session.Store) {
	tool := mcp.NewTool("pulse_recommendations",
		mcp.WithDescription("List the current recommendation history, newest first. Optionally filter by category."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("category",
			mcp.Description(fmt.Sprintf("Category filter, one of: %s. Empty or 'all' returns everything.", strings.Join(advisor.Categories(), ", "))),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter := render.FilterAll
		if c, err := req.RequireString("category"); err == nil && c != "" && !strings.EqualFold(c, "all") {
			matched, ok := resolveCategory(c)
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("unknown category %q, one of: %s", c, strings.Join(advisor.Categories(), ", "))), nil
			}
			filter = matched
		}

		p := render.BuildProjection(store.Snapshot(), filter)

		out := struct {
			Total  int                   `json:"total"`
			Shown  int                   `json:"shown"`
			Filter string                `json:"filter,omitempty"`
			Items  []core.Recommendation `json:"items"`
		}{
			Total:  p.Total,
			Shown:  len(p.Items),
			Filter: p.Filter,
			Items:  p.Items,
		}

		data, _ := json.MarshalIndent(out, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerExportTool(s *server.MCPServer, store *session.Store) {
	tool := mcp.NewTool("pulse_export",
		mcp.WithDescription("Export the full recommendation history as plain text, newest first. Ignores any active category filter."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		artifact, ok := store.Export()
		if !ok {
			return mcp.NewToolResultText(render.EmptyNotice), nil
		}
		return mcp.NewToolResultText(artifact), nil
	})
}

func registerStatusTool(s *server.MCPServer, store *session.Store, stats func() core.SessionStats) {
	tool := mcp.NewTool("pulse_status",
		mcp.WithDescription("Get live session counters: stream connection, frames, faces, advisories seen and stored recommendations."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		st := stats()

		out := map[string]interface{}{
			"connected":      st.Connected,
			"frames":         st.Frames,
			"faces_detected": st.FacesDetected,
			"advice_seen":    st.AdviceSeen,
			"stored":         store.Count(),
			"capacity":       session.HistoryCapacity,
		}
		if !st.StartedAt.IsZero() {
			out["started_at"] = st.StartedAt.Format(time.RFC3339)
		}
		if st.LastDiagnosis != nil {
			out["last_diagnosis"] = st.LastDiagnosis
		}

		data, _ := json.MarshalIndent(out, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerClearTool(s *server.MCPServer, store *session.Store) {
	tool := mcp.NewTool("pulse_clear",
		mcp.WithDescription("Clear the stored recommendation history and reset repeat detection. Requires confirm=true."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithBoolean("confirm",
			mcp.Required(),
			mcp.Description("Must be true; clearing cannot be undone."),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		confirm, err := req.RequireBool("confirm")
		if err != nil {
			return mcp.NewToolResultError("confirm is required"), nil
		}
		if !confirm {
			return mcp.NewToolResultError("refusing to clear without confirm=true"), nil
		}

		cleared := store.Count()
		store.Clear()

		result := map[string]interface{}{
			"cleared": cleared,
			"message": fmt.Sprintf("Removed %d recommendation(s)", cleared),
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerExportResource(s *server.MCPServer, store *session.Store) {
	resource := mcp.NewResource(
		ExportResourceURI,
		"Session Export",
		mcp.WithResourceDescription("Plain-text export of the current recommendation history, newest first."),
		mcp.WithMIMEType("text/plain"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		artifact, ok := store.Export()
		if !ok {
			artifact = render.EmptyNotice + "\n"
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "text/plain",
				Text:     artifact,
			},
		}, nil
	})
}

func resolveCategory(input string) (string, bool) {
	for _, name := range advisor.Categories() {
		if strings.EqualFold(input, name) {
			return name, true
		}
	}
	return "", false
}
