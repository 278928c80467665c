// Package models defines the shared data structures used across the
// notionctl system: page summaries, block trees, and configuration.
package models

// PageSummary is the condensed view of a Notion page returned by search.
type PageSummary struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	PublicURL  string `json:"public_url,omitempty"`
}

// Block represents a single Notion block with its type-specific payload and
// any hydrated children. Data holds the payload object keyed under the block
// type in the wire format (e.g. the "paragraph" object for a paragraph
// block); its shape varies per type, so it is kept as a generic map.
type Block struct {
	ID          string         `json:"id"`
	CreatedAt   string         `json:"created_at"`
	ModifiedAt  string         `json:"modified_at"`
	Type        string         `json:"type"`
	Data        map[string]any `json:"data,omitempty"`
	HasChildren bool           `json:"has_children"`
	Children    []Block        `json:"children,omitempty"`
}
