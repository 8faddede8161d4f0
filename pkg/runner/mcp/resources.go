package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/bnote/pkg/glyph"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerDaysResource(srv, svc)
	registerDraftResource(srv, svc)
	registerRulesResource(srv)
}

func registerDaysResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"bnote://days",
		"Days",
		mcp.WithResourceDescription("Saved entries grouped by calendar day, newest first."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		days, err := svc.ListDays(0)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"days":  days,
			"count": len(days),
		})
	})
}

func registerDraftResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"bnote://draft",
		"Draft",
		mcp.WithResourceDescription("The unconfirmed editor text."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dto, err := svc.Draft()
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, dto)
	})
}

func registerRulesResource(srv *server.MCPServer) {
	resource := mcp.NewResource(
		"bnote://rules",
		"Marker rules",
		mcp.WithResourceDescription("Which leading marker maps to which entry type."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		type row struct {
			Key    string `json:"key"`
			Symbol string `json:"symbol"`
			Type   string `json:"type"`
		}
		var rows []row
		for _, g := range glyph.Default().Glyphs() {
			rows = append(rows, row{Key: g.Key, Symbol: g.Symbol.String(), Type: g.Type.String()})
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"glyphs": rows,
			"legend": glyph.Rules(glyph.CurrentRules),
		})
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
