package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/numwords/internal/config"
	"github.com/hpungsan/numwords/internal/conversion"
	"github.com/hpungsan/numwords/internal/errors"
	"github.com/hpungsan/numwords/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db   *sql.DB
	cfg  *config.Config
	memo *ops.Memo
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config, memo *ops.Memo) *Handlers {
	return &Handlers{db: db, cfg: cfg, memo: memo}
}

// ConvertTextRequest represents the arguments for convert_text.
type ConvertTextRequest struct {
	Text      *string `json:"text"`
	Explain   bool    `json:"explain,omitempty"`
	NoHistory bool    `json:"no_history,omitempty"`
}

// ConvertBatchRequest represents the arguments for convert_batch.
type ConvertBatchRequest struct {
	Texts     []string `json:"texts"`
	Explain   bool     `json:"explain,omitempty"`
	NoHistory bool     `json:"no_history,omitempty"`
}

// HistoryListRequest represents the arguments for history_list.
type HistoryListRequest struct {
	Source string `json:"source,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// HistorySearchRequest represents the arguments for history_search.
type HistorySearchRequest struct {
	Query  string `json:"query"`
	Source string `json:"source,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// HistoryFetchRequest represents the arguments for history_fetch.
type HistoryFetchRequest struct {
	ID string `json:"id"`
}

// HistoryPurgeRequest represents the arguments for history_purge.
type HistoryPurgeRequest struct {
	Source        *string `json:"source,omitempty"`
	OlderThanDays *int    `json:"older_than_days,omitempty"`
}

// HandleConvertText handles the convert_text tool.
func (h *Handlers) HandleConvertText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[ConvertTextRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	if args.Text == nil {
		return errorResult(errors.NewInvalidRequest("text is required")), nil
	}

	result, err := ops.Convert(ctx, h.db, h.cfg, h.memo, ops.ConvertInput{
		Text:      *args.Text,
		Source:    conversion.SourceMCP,
		Explain:   args.Explain,
		NoHistory: args.NoHistory,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleConvertBatch handles the convert_batch tool.
func (h *Handlers) HandleConvertBatch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[ConvertBatchRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.ConvertBatch(ctx, h.db, h.cfg, h.memo, ops.BatchInput{
		Texts:     args.Texts,
		Source:    conversion.SourceMCP,
		Explain:   args.Explain,
		NoHistory: args.NoHistory,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleHistoryList handles the history_list tool.
func (h *Handlers) HandleHistoryList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[HistoryListRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.List(ctx, h.db, ops.ListInput{
		Source: args.Source,
		Limit:  args.Limit,
		Offset: args.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleHistorySearch handles the history_search tool.
func (h *Handlers) HandleHistorySearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[HistorySearchRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Search(ctx, h.db, ops.SearchInput{
		Query:  args.Query,
		Source: args.Source,
		Limit:  args.Limit,
		Offset: args.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleHistoryFetch handles the history_fetch tool.
func (h *Handlers) HandleHistoryFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[HistoryFetchRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Fetch(ctx, h.db, ops.FetchInput{ID: args.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleHistoryPurge handles the history_purge tool.
func (h *Handlers) HandleHistoryPurge(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decode[HistoryPurgeRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Purge(ctx, h.db, ops.PurgeInput{
		Source:        args.Source,
		OlderThanDays: args.OlderThanDays,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// errorResult creates an MCP error result carrying the structured error as JSON.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var nErr *errors.NumwordsError
	if stderrors.As(err, &nErr) {
		_, message := errors.From(err)
		errorObj := map[string]any{
			"code":    nErr.Code,
			"message": message,
			"status":  nErr.Status,
		}
		// Internal details can carry paths or SQL text
		if nErr.Code != errors.ErrInternal && len(nErr.Details) > 0 {
			errorObj["details"] = nErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    errors.ErrInternal,
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
