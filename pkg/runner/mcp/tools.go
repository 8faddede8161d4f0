package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/bnote/pkg/timeutil"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerParseNoteTool(srv, svc)
	registerInsertSymbolTool(srv, svc)
	registerConfirmNoteTool(srv, svc)
	registerListDaysTool(srv, svc)
	registerDeleteEntryTool(srv, svc)
	registerToggleCompleteTool(srv, svc)
	registerGetDraftTool(srv, svc)
	registerSetDraftTool(srv, svc)
}

func registerParseNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"parse_note",
		mcp.WithDescription("Classify the marked lines of a note without saving them. Lines starting with • are tasks, O events, – or - notes; other lines are ignored."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Multi-line note text."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		entries, err := svc.ParseNote(text)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"entries": entries,
			"count":   len(entries),
		})
	})
}

func registerInsertSymbolTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"insert_symbol",
		mcp.WithDescription("Place a marker at the start of the line holding the cursor, replacing any marker already there. Edits the stored draft when text is omitted."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Marker to insert: task, event, note, dash, or the literal symbol."),
		),
		mcp.WithNumber("start",
			mcp.Required(),
			mcp.Description("Byte offset of the cursor or selection start."),
			mcp.Min(0),
		),
		mcp.WithNumber("end",
			mcp.Description("Byte offset of the selection end (defaults to start)."),
			mcp.Min(0),
		),
		mcp.WithString("text",
			mcp.Description("Text to edit. The stored draft is used when omitted."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		start := request.GetInt("start", 0)
		end := request.GetInt("end", start)

		var text *string
		if raw, ok := request.GetArguments()["text"].(string); ok {
			text = &raw
		}

		res, err := svc.InsertSymbol(ctx, text, start, end, symbol)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerConfirmNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"confirm_note",
		mcp.WithDescription("Save the marked lines of text, or of the stored draft, as a new batch and clear the draft."),
		mcp.WithString("text",
			mcp.Description("Note text. The stored draft is confirmed when omitted."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		batch, err := svc.ConfirmNote(ctx, request.GetString("text", ""))
		if err != nil && batch == nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		payload := map[string]any{"batch": batch}
		if err != nil {
			payload["warning"] = err.Error()
		}
		return toJSONResult(payload)
	})
}

func registerListDaysTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_days",
		mcp.WithDescription("List saved entries grouped by calendar day, newest first."),
		mcp.WithString("last",
			mcp.Description("Optional window such as 3d or 1w2d."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var window time.Duration
		if last := request.GetString("last", ""); last != "" {
			d, _, err := timeutil.ParseWindow(last)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			window = d
		}
		days, err := svc.ListDays(window)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"days":  days,
			"count": len(days),
		})
	})
}

func registerDeleteEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_entry",
		mcp.WithDescription("Delete a saved entry."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier."),
		),
		mcp.WithString("batch_id",
			mcp.Description("Batch holding the entry. Every batch is searched when omitted."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteEntry(ctx, id, request.GetString("batch_id", "")); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": id})
	})
}

func registerToggleCompleteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_complete",
		mcp.WithDescription("Mark a task done, or reopen it when it is already done."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task entry identifier."),
		),
		mcp.WithString("batch_id",
			mcp.Description("Batch holding the entry."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.ToggleComplete(ctx, id, request.GetString("batch_id", ""))
		if err != nil && dto == nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerGetDraftTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_draft",
		mcp.WithDescription("Fetch the stored draft text."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.Draft()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSetDraftTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_draft",
		mcp.WithDescription("Replace the stored draft text."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("New draft text; may be empty."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Text string `json:"text"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.SetDraft(ctx, args.Text)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
