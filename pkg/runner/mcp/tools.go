package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/mistakes/pkg/ledger"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerStatusTool(srv, svc)
	registerAddMistakeTool(srv, svc)
	registerNewFlagTool(srv, svc)
	registerDeleteFlagTool(srv, svc)
	registerSetDisplayModeTool(srv, svc)
	registerSetDisplayFromTool(srv, svc)
}

func registerStatusTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"status",
		mcp.WithDescription("Show the status line and every flag with its mistake count."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.State(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAddMistakeTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_mistake",
		mcp.WithDescription("Record one mistake. Every flag, including the Total, is incremented."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.AddMistake(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerNewFlagTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"new_flag",
		mcp.WithDescription("Start a new flag today. Rejected if the latest flag already started today."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.NewFlag(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteFlagTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_flag",
		mcp.WithDescription("Delete a flag by index. The Total flag at index 0 can not be deleted."),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Description("Index of the flag to delete, as listed by the status tool."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		index, err := request.RequireInt("index")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.DeleteFlag(ctx, index)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSetDisplayModeTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_display_mode",
		mcp.WithDescription("Choose whether the status line shows the flag start date."),
		mcp.WithString("mode",
			mcp.Required(),
			mcp.Description("since-date shows the start date, clean shows the count only."),
			mcp.Enum(string(ledger.SinceDate), string(ledger.Clean)),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mode, err := request.RequireString("mode")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.SetDisplayMode(ctx, mode)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSetDisplayFromTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_display_from",
		mcp.WithDescription("Choose which flag's count the status line shows."),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Description("Index of the flag to display (0 = Total)."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		index, err := request.RequireInt("index")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.SetDisplayFrom(ctx, index)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
