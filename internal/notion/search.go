package notion

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/ravenhall-io/notionctl/pkg/models"
)

// maxPageSize is the largest page_size the Notion API accepts per request.
const maxPageSize = 100

type searchSort struct {
	Direction string `json:"direction"`
	Timestamp string `json:"timestamp"`
}

type searchRequest struct {
	Query       string     `json:"query"`
	Sort        searchSort `json:"sort"`
	PageSize    int        `json:"page_size"`
	StartCursor string     `json:"start_cursor,omitempty"`
}

// SearchPages searches accessible pages by title, most recently edited
// first. An empty query returns every page shared with the integration.
// It follows pagination cursors until limit results are collected or the
// server reports no more pages.
func (c *Client) SearchPages(ctx context.Context, query string, limit int) ([]models.PageSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	pageSize := min(limit, maxPageSize)

	var pages []models.PageSummary
	cursor := ""
	for len(pages) < limit {
		req := searchRequest{
			Query: query,
			Sort: searchSort{
				Direction: "descending",
				Timestamp: "last_edited_time",
			},
			PageSize:    pageSize,
			StartCursor: cursor,
		}

		var resp searchResponse
		if err := c.do(ctx, resty.MethodPost, "/search", req, &resp); err != nil {
			return nil, fmt.Errorf("searching pages: %w", err)
		}

		for _, p := range resp.Results {
			pages = append(pages, pageSummaryFromObject(p))
		}

		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	if len(pages) > limit {
		pages = pages[:limit]
	}
	return pages, nil
}
