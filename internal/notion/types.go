package notion

import (
	"github.com/ravenhall-io/notionctl/pkg/models"
)

// pageObject is the subset of the Notion page object consumed by search.
type pageObject struct {
	ID             string         `json:"id"`
	CreatedTime    string         `json:"created_time"`
	LastEditedTime string         `json:"last_edited_time"`
	URL            string         `json:"url"`
	PublicURL      string         `json:"public_url"`
	Properties     map[string]any `json:"properties"`
}

// searchResponse is the paginated envelope returned by POST /search.
type searchResponse struct {
	Results    []pageObject `json:"results"`
	HasMore    bool         `json:"has_more"`
	NextCursor string       `json:"next_cursor"`
}

// childrenResponse is the paginated envelope returned by the block children
// endpoints. Block payloads are type-keyed, so results stay generic maps
// until converted.
type childrenResponse struct {
	Results    []map[string]any `json:"results"`
	HasMore    bool             `json:"has_more"`
	NextCursor string           `json:"next_cursor"`
}

// pageSummaryFromObject flattens a page object into a PageSummary.
func pageSummaryFromObject(p pageObject) models.PageSummary {
	return models.PageSummary{
		ID:         p.ID,
		CreatedAt:  p.CreatedTime,
		ModifiedAt: p.LastEditedTime,
		Title:      pageTitle(p.Properties),
		URL:        p.URL,
		PublicURL:  p.PublicURL,
	}
}

// pageTitle digs the plain-text title out of the page properties
// (properties.title.title[0].plain_text).
func pageTitle(props map[string]any) string {
	prop, ok := props["title"].(map[string]any)
	if !ok {
		return ""
	}
	spans, ok := prop["title"].([]any)
	if !ok || len(spans) == 0 {
		return ""
	}
	first, ok := spans[0].(map[string]any)
	if !ok {
		return ""
	}
	text, _ := first["plain_text"].(string)
	return text
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func boolField(obj map[string]any, key string) bool {
	b, _ := obj[key].(bool)
	return b
}
