package notion

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

type createPageRequest struct {
	Parent     map[string]string `json:"parent"`
	Properties map[string]any    `json:"properties"`
	Children   []map[string]any  `json:"children"`
}

type createPageResponse struct {
	ID string `json:"id"`
}

// CreatePage creates a new page under an existing parent page with the given
// title and pre-built block children, returning the new page's ID. Database
// parents are not supported.
func (c *Client) CreatePage(ctx context.Context, parentID, title string, children []map[string]any) (string, error) {
	req := createPageRequest{
		Parent: map[string]string{"page_id": parentID},
		Properties: map[string]any{
			"title": map[string]any{
				"id":   "title",
				"type": "title",
				"title": []map[string]any{
					{"type": "text", "text": map[string]any{"content": title}},
				},
			},
		},
		Children: children,
	}

	var resp createPageResponse
	if err := c.do(ctx, resty.MethodPost, "/pages", req, &resp); err != nil {
		return "", fmt.Errorf("creating page under %s: %w", parentID, err)
	}

	return resp.ID, nil
}

type appendChildrenRequest struct {
	Children []map[string]any `json:"children"`
	After    string           `json:"after,omitempty"`
}

// AppendChildren appends pre-built blocks to a page or block. When after is
// non-empty the blocks are inserted after that block instead of at the
// bottom. It returns the ID of the first appended block.
func (c *Client) AppendChildren(ctx context.Context, parentID string, children []map[string]any, after string) (string, error) {
	req := appendChildrenRequest{
		Children: children,
		After:    after,
	}

	var resp childrenResponse
	path := fmt.Sprintf("/blocks/%s/children", parentID)
	if err := c.do(ctx, resty.MethodPatch, path, req, &resp); err != nil {
		return "", fmt.Errorf("appending children to %s: %w", parentID, err)
	}

	if len(resp.Results) == 0 {
		return "", fmt.Errorf("appending children to %s: server returned no blocks", parentID)
	}
	return stringField(resp.Results[0], "id"), nil
}
