// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the Notion page operations as MCP tools for AI assistants.
package mcp

import (
	"context"
	"fmt"

	"github.com/ravenhall-io/notionctl/internal/core"
	"github.com/ravenhall-io/notionctl/pkg/models"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the workspace service and exposes it as MCP tools.
type Server struct {
	server    *gomcp.Server
	workspace core.WorkspaceService
}

// NewServer creates an MCP server over the given workspace service.
func NewServer(workspace core.WorkspaceService, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		workspace: workspace,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "notionctl", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type searchPagesInput struct {
	Query      string `json:"query,omitempty" jsonschema:"search query matched against page titles. Empty returns all accessible pages."`
	NumResults int    `json:"num_results,omitempty" jsonschema:"number of results to return. Defaults to 10."`
}

type pageSummaryOutput struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	PublicURL  string `json:"public_url,omitempty"`
}

type searchPagesOutput struct {
	Pages []pageSummaryOutput `json:"pages"`
	Count int                 `json:"count"`
}

type getPageBlocksInput struct {
	PageID    string `json:"page_id" jsonschema:"required,the Notion page ID to retrieve"`
	NumBlocks int    `json:"num_blocks,omitempty" jsonschema:"maximum number of top-level blocks. Defaults to 100."`
}

type blockOutput struct {
	ID          string         `json:"id"`
	CreatedAt   string         `json:"created_at"`
	ModifiedAt  string         `json:"modified_at"`
	Type        string         `json:"type"`
	Data        map[string]any `json:"data,omitempty"`
	HasChildren bool           `json:"has_children"`
	Children    []blockOutput  `json:"children,omitempty"`
}

type getPageBlocksOutput struct {
	Blocks []blockOutput `json:"blocks"`
	Count  int           `json:"count"`
}

type getPageTextInput struct {
	PageID    string `json:"page_id" jsonschema:"required,the Notion page ID to retrieve"`
	NumBlocks int    `json:"num_blocks,omitempty" jsonschema:"maximum number of top-level blocks. Defaults to 100."`
}

type getPageTextOutput struct {
	Text string `json:"text"`
}

type createPageInput struct {
	ParentID string `json:"parent_id" jsonschema:"required,page ID of the parent page the new page is created under"`
	Title    string `json:"title" jsonschema:"required,title of the new page"`
	Content  string `json:"content,omitempty" jsonschema:"page body in Markdown"`
}

type createPageOutput struct {
	PageID  string `json:"page_id"`
	Message string `json:"message"`
}

type insertParagraphInput struct {
	ParentID     string `json:"parent_id" jsonschema:"required,page or block ID the content is appended to"`
	Content      string `json:"content" jsonschema:"required,content in Markdown"`
	AfterBlockID string `json:"after_block_id,omitempty" jsonschema:"insert after this block instead of at the bottom"`
}

type insertParagraphOutput struct {
	BlockID string `json:"block_id"`
	Message string `json:"message"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "search_pages",
		Description: "Search Notion pages by title, sorted by last edited time descending. An empty query returns all pages shared with the integration.",
	}, s.handleSearchPages)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_page_blocks",
		Description: "Retrieve a page's block tree. Each block carries its type, type-specific data, and hydrated children.",
	}, s.handleGetPageBlocks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_page_text",
		Description: "Retrieve a page's content rendered as Markdown-flavored text.",
	}, s.handleGetPageText)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "create_page",
		Description: "Create a new page under an existing page (not a database). The Markdown content becomes the page body.",
	}, s.handleCreatePage)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "insert_paragraph",
		Description: "Append Markdown content as blocks at the bottom of a page, or after a specific block.",
	}, s.handleInsertParagraph)
}

// --- Tool handlers ---

func (s *Server) handleSearchPages(ctx context.Context, _ *gomcp.CallToolRequest, input searchPagesInput) (*gomcp.CallToolResult, searchPagesOutput, error) {
	limit := input.NumResults
	if limit <= 0 {
		limit = 10
	}

	pages, err := s.workspace.SearchPages(ctx, input.Query, limit)
	if err != nil {
		return errorResult(fmt.Sprintf("searching pages: %s", err)), searchPagesOutput{}, nil
	}

	out := searchPagesOutput{
		Pages: make([]pageSummaryOutput, len(pages)),
		Count: len(pages),
	}
	for i, p := range pages {
		out.Pages[i] = pageSummaryOutput{
			ID:         p.ID,
			CreatedAt:  p.CreatedAt,
			ModifiedAt: p.ModifiedAt,
			Title:      p.Title,
			URL:        p.URL,
			PublicURL:  p.PublicURL,
		}
	}

	return nil, out, nil
}

func (s *Server) handleGetPageBlocks(ctx context.Context, _ *gomcp.CallToolRequest, input getPageBlocksInput) (*gomcp.CallToolResult, getPageBlocksOutput, error) {
	if input.PageID == "" {
		return errorResult("page_id is required"), getPageBlocksOutput{}, nil
	}

	blocks, err := s.workspace.PageBlocks(ctx, input.PageID, input.NumBlocks)
	if err != nil {
		return errorResult(fmt.Sprintf("getting blocks of page %s: %s", input.PageID, err)), getPageBlocksOutput{}, nil
	}

	out := getPageBlocksOutput{
		Blocks: blocksToOutput(blocks),
		Count:  len(blocks),
	}
	return nil, out, nil
}

func (s *Server) handleGetPageText(ctx context.Context, _ *gomcp.CallToolRequest, input getPageTextInput) (*gomcp.CallToolResult, getPageTextOutput, error) {
	if input.PageID == "" {
		return errorResult("page_id is required"), getPageTextOutput{}, nil
	}

	text, err := s.workspace.PageText(ctx, input.PageID, input.NumBlocks)
	if err != nil {
		return errorResult(fmt.Sprintf("getting text of page %s: %s", input.PageID, err)), getPageTextOutput{}, nil
	}

	return nil, getPageTextOutput{Text: text}, nil
}

func (s *Server) handleCreatePage(ctx context.Context, _ *gomcp.CallToolRequest, input createPageInput) (*gomcp.CallToolResult, createPageOutput, error) {
	if input.ParentID == "" {
		return errorResult("parent_id is required"), createPageOutput{}, nil
	}
	if input.Title == "" {
		return errorResult("title is required"), createPageOutput{}, nil
	}

	id, err := s.workspace.CreatePage(ctx, input.ParentID, input.Title, input.Content)
	if err != nil {
		return errorResult(fmt.Sprintf("creating page under %s: %s", input.ParentID, err)), createPageOutput{}, nil
	}

	out := createPageOutput{
		PageID:  id,
		Message: fmt.Sprintf("Page created with ID %s", id),
	}
	return nil, out, nil
}

func (s *Server) handleInsertParagraph(ctx context.Context, _ *gomcp.CallToolRequest, input insertParagraphInput) (*gomcp.CallToolResult, insertParagraphOutput, error) {
	if input.ParentID == "" {
		return errorResult("parent_id is required"), insertParagraphOutput{}, nil
	}
	if input.Content == "" {
		return errorResult("content is required"), insertParagraphOutput{}, nil
	}

	id, err := s.workspace.InsertParagraph(ctx, input.ParentID, input.Content, input.AfterBlockID)
	if err != nil {
		return errorResult(fmt.Sprintf("inserting paragraph into %s: %s", input.ParentID, err)), insertParagraphOutput{}, nil
	}

	out := insertParagraphOutput{
		BlockID: id,
		Message: fmt.Sprintf("Paragraph inserted with ID %s", id),
	}
	return nil, out, nil
}

// --- Helpers ---

func blocksToOutput(blocks []models.Block) []blockOutput {
	out := make([]blockOutput, len(blocks))
	for i, b := range blocks {
		out[i] = blockOutput{
			ID:          b.ID,
			CreatedAt:   b.CreatedAt,
			ModifiedAt:  b.ModifiedAt,
			Type:        b.Type,
			Data:        b.Data,
			HasChildren: b.HasChildren,
			Children:    blocksToOutput(b.Children),
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
