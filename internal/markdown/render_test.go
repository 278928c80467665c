package markdown

import (
	"testing"

	"github.com/ravenhall-io/notionctl/pkg/models"
)

func richText(texts ...string) []any {
	spans := make([]any, len(texts))
	for i, t := range texts {
		spans[i] = map[string]any{"plain_text": t}
	}
	return spans
}

func textBlock(typ, text string) models.Block {
	return models.Block{
		ID:   "b-" + typ,
		Type: typ,
		Data: map[string]any{"rich_text": richText(text)},
	}
}

func TestRenderBlocksHeadingsAndParagraph(t *testing.T) {
	got := RenderBlocks([]models.Block{
		textBlock("heading_1", "Title"),
		textBlock("heading_2", "Section"),
		textBlock("heading_3", "Detail"),
		textBlock("paragraph", "Body text."),
	})
	want := "# Title\n## Section\n### Detail\nBody text."
	if got != want {
		t.Errorf("RenderBlocks = %q, want %q", got, want)
	}
}

func TestRenderBlocksLists(t *testing.T) {
	got := RenderBlocks([]models.Block{
		textBlock("numbered_list_item", "first"),
		textBlock("numbered_list_item", "second"),
		textBlock("bulleted_list_item", "loose"),
	})
	want := "1. first\n2. second\n- loose"
	if got != want {
		t.Errorf("RenderBlocks = %q, want %q", got, want)
	}
}

func TestRenderBlocksNestedChildrenIndented(t *testing.T) {
	parent := textBlock("bulleted_list_item", "outer")
	parent.HasChildren = true
	parent.Children = []models.Block{textBlock("bulleted_list_item", "inner")}

	got := RenderBlocks([]models.Block{parent})
	want := "- outer\n\t- inner"
	if got != want {
		t.Errorf("RenderBlocks = %q, want %q", got, want)
	}
}

func TestRenderBlocksDeepNestingIndentsEveryLine(t *testing.T) {
	inner := textBlock("bulleted_list_item", "deep")
	mid := textBlock("bulleted_list_item", "mid")
	mid.HasChildren = true
	mid.Children = []models.Block{inner}
	outer := textBlock("bulleted_list_item", "outer")
	outer.HasChildren = true
	outer.Children = []models.Block{mid}

	got := RenderBlocks([]models.Block{outer})
	want := "- outer\n\t- mid\n\t\t- deep"
	if got != want {
		t.Errorf("RenderBlocks = %q, want %q", got, want)
	}
}

func TestRenderBlocksCode(t *testing.T) {
	b := models.Block{
		Type: "code",
		Data: map[string]any{
			"language":  "go",
			"rich_text": richText("fmt.Println(1)"),
		},
	}
	want := "```go\nfmt.Println(1)\n```"
	if got := RenderBlocks([]models.Block{b}); got != want {
		t.Errorf("RenderBlocks = %q, want %q", got, want)
	}
}

func TestRenderBlocksQuoteAndDivider(t *testing.T) {
	got := RenderBlocks([]models.Block{
		textBlock("quote", "wisdom"),
		{Type: "divider", Data: map[string]any{}},
	})
	if got != "> wisdom\n---" {
		t.Errorf("RenderBlocks = %q", got)
	}
}

func TestRenderBlocksToDo(t *testing.T) {
	open := textBlock("to_do", "pending")
	done := textBlock("to_do", "shipped")
	done.Data["checked"] = true

	got := RenderBlocks([]models.Block{open, done})
	if got != "- [ ] pending\n- [x] shipped" {
		t.Errorf("RenderBlocks = %q", got)
	}
}

func TestRenderBlocksChildPageLink(t *testing.T) {
	b := models.Block{
		ID:   "sub-id",
		Type: "child_page",
		Data: map[string]any{"title": "Sub page"},
	}
	want := "[Sub page](page_id=sub-id)"
	if got := RenderBlocks([]models.Block{b}); got != want {
		t.Errorf("RenderBlocks = %q, want %q", got, want)
	}
}

func TestRenderBlocksTablePlaceholder(t *testing.T) {
	b := models.Block{ID: "tbl-1", Type: "table", Data: map[string]any{}}
	want := "[Table](table_id=tbl-1)"
	if got := RenderBlocks([]models.Block{b}); got != want {
		t.Errorf("RenderBlocks = %q, want %q", got, want)
	}
}

func TestRenderBlocksHostedImage(t *testing.T) {
	b := models.Block{
		Type: "image",
		Data: map[string]any{
			"type":     "external",
			"external": map[string]any{"url": "https://example.com/d.png"},
		},
	}
	want := "![https://example.com/d.png](https://example.com/d.png)"
	if got := RenderBlocks([]models.Block{b}); got != want {
		t.Errorf("RenderBlocks = %q, want %q", got, want)
	}
}

func TestRenderBlocksMention(t *testing.T) {
	b := models.Block{
		Type: "mention",
		Data: map[string]any{
			"type": "paragraph",
			"paragraph": map[string]any{
				"rich_text": richText("mentioned"),
			},
		},
	}
	if got := RenderBlocks([]models.Block{b}); got != "mentioned" {
		t.Errorf("RenderBlocks = %q, want %q", got, "mentioned")
	}
}

func TestRenderBlocksUnknownTypeIsBlank(t *testing.T) {
	b := models.Block{Type: "unsupported_widget", Data: map[string]any{}}
	if got := RenderBlocks([]models.Block{b}); got != "" {
		t.Errorf("RenderBlocks = %q, want empty", got)
	}
}

func TestRichTextStringLinks(t *testing.T) {
	spans := []any{
		map[string]any{"plain_text": "see "},
		map[string]any{"plain_text": "the docs", "href": "https://example.com"},
	}
	want := "see (the docs)[https://example.com]"
	if got := richTextString(spans); got != want {
		t.Errorf("richTextString = %q, want %q", got, want)
	}
}

func TestRichTextStringNonArray(t *testing.T) {
	if got := richTextString(nil); got != "" {
		t.Errorf("richTextString(nil) = %q, want empty", got)
	}
	if got := richTextString("not an array"); got != "" {
		t.Errorf("richTextString(string) = %q, want empty", got)
	}
}
