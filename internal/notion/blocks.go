package notion

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-resty/resty/v2"
	"github.com/ravenhall-io/notionctl/pkg/models"
	"golang.org/x/sync/errgroup"
)

// childConcurrency bounds how many child-block subtrees are hydrated in
// parallel per level, keeping well under Notion's rate limits.
const childConcurrency = 8

// BlockChildren lists the children of a page or block, following pagination
// cursors until maxBlocks blocks are collected. Blocks that themselves have
// children (other than child pages, which are boundaries) are hydrated
// recursively with bounded concurrency.
func (c *Client) BlockChildren(ctx context.Context, blockID string, maxBlocks int) ([]models.Block, error) {
	if maxBlocks <= 0 {
		maxBlocks = maxPageSize
	}
	pageSize := min(maxBlocks, maxPageSize)

	var blocks []models.Block
	cursor := ""
	for len(blocks) < maxBlocks {
		path := fmt.Sprintf("/blocks/%s/children?page_size=%d", url.PathEscape(blockID), pageSize)
		if cursor != "" {
			path += "&start_cursor=" + url.QueryEscape(cursor)
		}

		var resp childrenResponse
		if err := c.do(ctx, resty.MethodGet, path, nil, &resp); err != nil {
			return nil, fmt.Errorf("listing children of block %s: %w", blockID, err)
		}

		converted := make([]models.Block, len(resp.Results))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(childConcurrency)
		for i, obj := range resp.Results {
			g.Go(func() error {
				b, err := c.blockFromObject(gctx, obj)
				if err != nil {
					return err
				}
				converted[i] = b
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("hydrating children of block %s: %w", blockID, err)
		}
		blocks = append(blocks, converted...)

		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	return blocks, nil
}

// blockFromObject converts a raw block object into a models.Block, fetching
// its children when present. Child pages are not descended into; they are
// rendered as links instead.
func (c *Client) blockFromObject(ctx context.Context, obj map[string]any) (models.Block, error) {
	typ := stringField(obj, "type")
	b := models.Block{
		ID:          stringField(obj, "id"),
		CreatedAt:   stringField(obj, "created_time"),
		ModifiedAt:  stringField(obj, "last_edited_time"),
		Type:        typ,
		HasChildren: boolField(obj, "has_children"),
	}
	if data, ok := obj[typ].(map[string]any); ok {
		b.Data = data
	}

	if b.HasChildren && typ != "child_page" {
		children, err := c.BlockChildren(ctx, b.ID, maxPageSize)
		if err != nil {
			return models.Block{}, err
		}
		b.Children = children
	}

	return b, nil
}
