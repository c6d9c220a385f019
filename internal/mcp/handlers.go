package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/VdBondarev/notes-management-app-backend/internal/errors"
	"github.com/VdBondarev/notes-management-app-backend/internal/note"
	"github.com/VdBondarev/notes-management-app-backend/internal/notes"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	svc *notes.Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(svc *notes.Service) *Handlers {
	return &Handlers{svc: svc}
}

// Request types for each tool

// CreateRequest represents the arguments for note_create.
type CreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
}

// GetRequest represents the arguments for note_get.
type GetRequest struct {
	ID string `json:"id"`
}

// ListRequest represents the arguments for note_list.
type ListRequest struct {
	Page int    `json:"page,omitempty"`
	Size int    `json:"size,omitempty"`
	Sort string `json:"sort,omitempty"`
}

// UpdateRequest represents the arguments for note_update.
type UpdateRequest struct {
	ID      string  `json:"id"`
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// DeleteRequest represents the arguments for note_delete.
type DeleteRequest struct {
	ID string `json:"id"`
}

// SearchRequest represents the arguments for note_search.
type SearchRequest struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
	Page    int    `json:"page,omitempty"`
	Size    int    `json:"size,omitempty"`
	Sort    string `json:"sort,omitempty"`
}

// Handler implementations

// HandleCreate handles the note_create tool call.
func (h *Handlers) HandleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CreateRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := h.svc.Create(notes.CreateInput{
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleGet handles the note_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := h.svc.Get(input.ID)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the note_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := h.svc.List(note.PageSpec{
		Page: input.Page,
		Size: input.Size,
		Sort: input.Sort,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleUpdate handles the note_update tool call.
func (h *Handlers) HandleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := h.svc.Update(notes.UpdateInput{
		ID:      input.ID,
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the note_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	if err := h.svc.Delete(input.ID); err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{
		"deleted": true,
		"id":      input.ID,
	})
}

// HandleSearch handles the note_search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := h.svc.Search(notes.SearchInput{
		Title:   input.Title,
		Content: input.Content,
		Page: note.PageSpec{
			Page: input.Page,
			Size: input.Size,
			Sort: input.Sort,
		},
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if sErr, ok := err.(*errors.ServiceError); ok {
		errorObj := map[string]any{
			"code":    sErr.Code,
			"message": sErr.Message,
			"status":  sErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if sErr.Code != errors.ErrInternal && sErr.Details != nil {
			errorObj["details"] = sErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
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
