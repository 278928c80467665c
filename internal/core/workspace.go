package core

import (
	"context"
	"fmt"
	"time"

	"github.com/ravenhall-io/notionctl/internal/markdown"
	"github.com/ravenhall-io/notionctl/internal/observability"
	"github.com/ravenhall-io/notionctl/pkg/models"
	"go.uber.org/zap"
)

// PageAPI captures the Notion client operations the workspace service
// depends on, so tests can substitute a fake.
type PageAPI interface {
	SearchPages(ctx context.Context, query string, limit int) ([]models.PageSummary, error)
	BlockChildren(ctx context.Context, blockID string, maxBlocks int) ([]models.Block, error)
	CreatePage(ctx context.Context, parentID, title string, children []map[string]any) (string, error)
	AppendChildren(ctx context.Context, parentID string, children []map[string]any, after string) (string, error)
}

// WorkspaceService exposes the Notion page operations offered by the CLI
// and the MCP tools.
type WorkspaceService interface {
	// SearchPages searches accessible pages by title, newest edits first.
	// An empty query matches every page shared with the integration.
	SearchPages(ctx context.Context, query string, limit int) ([]models.PageSummary, error)

	// PageBlocks retrieves a page's block tree, up to maxBlocks top-level
	// blocks, with non-page children hydrated recursively.
	PageBlocks(ctx context.Context, pageID string, maxBlocks int) ([]models.Block, error)

	// PageText retrieves a page's content rendered as text.
	PageText(ctx context.Context, pageID string, maxBlocks int) (string, error)

	// CreatePage creates a child page under an existing page, converting the
	// markdown content to blocks. Returns the new page ID.
	CreatePage(ctx context.Context, parentID, title, content string) (string, error)

	// InsertParagraph appends markdown content as blocks at the bottom of a
	// page or block, or after afterBlockID when given. Returns the ID of the
	// first inserted block.
	InsertParagraph(ctx context.Context, parentID, content, afterBlockID string) (string, error)
}

type workspaceService struct {
	api    PageAPI
	audit  observability.AuditLog // may be nil
	logger *zap.Logger
}

// NewWorkspaceService creates a WorkspaceService over the given API client.
// audit may be nil to disable operation auditing.
func NewWorkspaceService(api PageAPI, audit observability.AuditLog, logger *zap.Logger) WorkspaceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &workspaceService{
		api:    api,
		audit:  audit,
		logger: logger,
	}
}

func (ws *workspaceService) SearchPages(ctx context.Context, query string, limit int) ([]models.PageSummary, error) {
	pages, err := ws.api.SearchPages(ctx, query, limit)
	ws.record("search_pages", err, map[string]any{"query": query, "limit": limit})
	if err != nil {
		return nil, err
	}
	return pages, nil
}

func (ws *workspaceService) PageBlocks(ctx context.Context, pageID string, maxBlocks int) ([]models.Block, error) {
	blocks, err := ws.api.BlockChildren(ctx, pageID, maxBlocks)
	ws.record("get_page_blocks", err, map[string]any{"page_id": pageID})
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

func (ws *workspaceService) PageText(ctx context.Context, pageID string, maxBlocks int) (string, error) {
	blocks, err := ws.api.BlockChildren(ctx, pageID, maxBlocks)
	ws.record("get_page_text", err, map[string]any{"page_id": pageID})
	if err != nil {
		return "", err
	}
	return markdown.RenderBlocks(blocks), nil
}

func (ws *workspaceService) CreatePage(ctx context.Context, parentID, title, content string) (string, error) {
	if parentID == "" {
		return "", fmt.Errorf("parent page ID is required")
	}
	if title == "" {
		return "", fmt.Errorf("page title is required")
	}

	children := markdown.ToBlocks(content)
	id, err := ws.api.CreatePage(ctx, parentID, title, children)
	ws.record("create_page", err, map[string]any{"parent_id": parentID, "title": title})
	if err != nil {
		return "", err
	}

	ws.logger.Debug("page created", zap.String("id", id), zap.String("parent_id", parentID))
	return id, nil
}

func (ws *workspaceService) InsertParagraph(ctx context.Context, parentID, content, afterBlockID string) (string, error) {
	if parentID == "" {
		return "", fmt.Errorf("parent ID is required")
	}

	children := markdown.ToBlocks(content)
	if len(children) == 0 {
		return "", fmt.Errorf("content produced no blocks")
	}

	id, err := ws.api.AppendChildren(ctx, parentID, children, afterBlockID)
	ws.record("insert_paragraph", err, map[string]any{"parent_id": parentID, "after": afterBlockID})
	if err != nil {
		return "", err
	}

	ws.logger.Debug("blocks inserted", zap.String("id", id), zap.String("parent_id", parentID))
	return id, nil
}

// record writes an audit entry for an operation. Audit failures are logged
// and otherwise ignored so they never mask the operation's own outcome.
func (ws *workspaceService) record(op string, opErr error, data map[string]any) {
	if ws.audit == nil {
		return
	}

	entry := observability.Entry{
		Time:    time.Now().UTC(),
		Level:   "INFO",
		Op:      op,
		Message: op,
		Data:    data,
	}
	if opErr != nil {
		entry.Level = "ERROR"
		entry.Message = opErr.Error()
	}

	if err := ws.audit.Record(entry); err != nil {
		ws.logger.Warn("recording audit entry", zap.String("op", op), zap.Error(err))
	}
}
