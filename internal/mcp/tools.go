package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions for the six note operations.

var createToolDef = mcp.NewTool("note_create",
	mcp.WithDescription("Create a note with a title and optional content"),
	mcp.WithString("title", mcp.Required(), mcp.Description("Note title (must not be blank)")),
	mcp.WithString("content", mcp.Description("Note body (markdown)")),
)

var getToolDef = mcp.NewTool("note_get",
	mcp.WithDescription("Fetch a single note by id"),
	mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
)

var listToolDef = mcp.NewTool("note_list",
	mcp.WithDescription("List notes, most recently updated first by default"),
	mcp.WithNumber("page", mcp.Description("Zero-based page number (default 0)")),
	mcp.WithNumber("size", mcp.Description("Page size (default 20, max 100)")),
	mcp.WithString("sort", mcp.Description("Sort key, e.g. last_updated_at_desc, created_at_asc, title_asc")),
)

var updateToolDef = mcp.NewTool("note_update",
	mcp.WithDescription("Partially update a note; omitted or blank fields keep their stored value"),
	mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
	mcp.WithString("title", mcp.Description("New title")),
	mcp.WithString("content", mcp.Description("New content")),
)

var deleteToolDef = mcp.NewTool("note_delete",
	mcp.WithDescription("Soft-delete a note (idempotent)"),
	mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
)

var searchToolDef = mcp.NewTool("note_search",
	mcp.WithDescription("Search notes by case-insensitive substring match on title and/or content"),
	mcp.WithString("title", mcp.Description("Title search term")),
	mcp.WithString("content", mcp.Description("Content search term")),
	mcp.WithNumber("page", mcp.Description("Zero-based page number (default 0)")),
	mcp.WithNumber("size", mcp.Description("Page size (default 20, max 100)")),
	mcp.WithString("sort", mcp.Description("Sort key, e.g. last_updated_at_desc")),
)
