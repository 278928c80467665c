// Package markdown converts between Markdown text and Notion block objects.
//
// ToBlocks parses Markdown with goldmark and emits the block JSON the Notion
// API expects for page creation and appends. RenderBlocks walks a hydrated
// block tree the other way, producing readable Markdown-flavored text.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// parser is the shared goldmark instance. Tables and strikethrough are GFM
// extensions rather than core Markdown.
var parser = goldmark.New(
	goldmark.WithExtensions(extension.Table, extension.Strikethrough),
)

// ToBlocks converts Markdown source into Notion block objects suitable for
// the children field of page-create and block-append requests.
func ToBlocks(md string) []map[string]any {
	src := []byte(md)
	doc := parser.Parser().Parse(text.NewReader(src))

	var blocks []map[string]any
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		blocks = append(blocks, blockToNotion(node, src)...)
	}
	return blocks
}

// blockToNotion converts one top-level (or quoted/list-nested) block node.
// A single Markdown node may yield several Notion blocks because inline
// images are hoisted out as sibling image blocks.
func blockToNotion(node ast.Node, src []byte) []map[string]any {
	switch n := node.(type) {
	case *ast.Heading:
		spans, images := inlineToRichText(n, src, inlineStyle{})
		// Notion supports three heading levels.
		level := min(n.Level, 3)
		return append(makeBlock(headingType(level), map[string]any{"rich_text": orEmpty(spans)}), images...)

	case *ast.Paragraph:
		spans, images := inlineToRichText(n, src, inlineStyle{})
		return append(makeBlock("paragraph", map[string]any{"rich_text": orEmpty(spans)}), images...)

	case *ast.Blockquote:
		var spans, images []map[string]any
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			s, img := inlineToRichText(child, src, inlineStyle{})
			spans = append(spans, s...)
			images = append(images, img...)
		}
		return append(makeBlock("quote", map[string]any{"rich_text": orEmpty(spans)}), images...)

	case *ast.FencedCodeBlock:
		return codeBlock(n, string(n.Language(src)), src)

	case *ast.CodeBlock:
		return codeBlock(n, "", src)

	case *ast.List:
		return listToNotion(n, src)

	case *east.Table:
		return tableToNotion(n, src)

	case *ast.ThematicBreak:
		return makeBlock("divider", nil)

	case *ast.HTMLBlock:
		// Raw HTML has no Notion equivalent; keep it readable in a code block.
		return codeBlock(n, "html", src)

	default:
		return nil
	}
}

func headingType(level int) string {
	switch level {
	case 1:
		return "heading_1"
	case 2:
		return "heading_2"
	default:
		return "heading_3"
	}
}

// codeBlock builds a Notion code block from a node's raw lines.
func codeBlock(node ast.Node, language string, src []byte) []map[string]any {
	content := strings.TrimRight(rawLines(node, src), "\n")
	data := map[string]any{
		"rich_text": []map[string]any{plainSpan(content)},
	}
	if language != "" {
		data["language"] = language
	}
	return makeBlock("code", data)
}

// listToNotion flattens a Markdown list into sibling list-item blocks,
// nesting sub-lists as block children.
func listToNotion(list *ast.List, src []byte) []map[string]any {
	listType := "bulleted_list_item"
	if list.IsOrdered() {
		listType = "numbered_list_item"
	}

	var items []map[string]any
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		items = append(items, listItemToNotion(item, listType, src)...)
	}
	return items
}

func listItemToNotion(item ast.Node, listType string, src []byte) []map[string]any {
	var spans, images, children []map[string]any
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		if nested, ok := child.(*ast.List); ok {
			children = append(children, listToNotion(nested, src)...)
			continue
		}
		s, img := inlineToRichText(child, src, inlineStyle{})
		spans = append(spans, s...)
		images = append(images, img...)
	}

	data := map[string]any{"rich_text": orEmpty(spans)}
	if len(images) > 0 || len(children) > 0 {
		data["children"] = append(images, children...)
	}
	return makeBlock(listType, data)
}

// tableToNotion builds a Notion table block. The width is the widest row
// because Markdown rows may be ragged. Notion table cells cannot hold
// images, so any are dropped.
func tableToNotion(table *east.Table, src []byte) []map[string]any {
	var rows []map[string]any
	width := 0
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var cells [][]map[string]any
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			spans, _ := inlineToRichText(cell, src, inlineStyle{})
			if spans == nil {
				spans = []map[string]any{}
			}
			cells = append(cells, spans)
		}
		width = max(width, len(cells))
		rows = append(rows, makeBlock("table_row", map[string]any{"cells": cells})...)
	}

	return makeBlock("table", map[string]any{
		"table_width": width,
		"children":    rows,
	})
}

// inlineStyle carries the annotation state accumulated while descending
// nested inline nodes (e.g. bold inside a link).
type inlineStyle struct {
	bold          bool
	italic        bool
	code          bool
	strikethrough bool
	link          string
}

// inlineToRichText walks the inline children of node, producing Notion rich
// text spans plus any inline images hoisted out as standalone image blocks.
func inlineToRichText(node ast.Node, src []byte, style inlineStyle) (spans, images []map[string]any) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			content := string(n.Segment.Value(src))
			if content != "" {
				spans = append(spans, styledSpan(content, style))
			}
			if n.SoftLineBreak() || n.HardLineBreak() {
				spans = append(spans, styledSpan("\n", style))
			}

		case *ast.String:
			spans = append(spans, styledSpan(string(n.Value), style))

		case *ast.Emphasis:
			st := style
			if n.Level >= 2 {
				st.bold = true
			} else {
				st.italic = true
			}
			s, img := inlineToRichText(n, src, st)
			spans = append(spans, s...)
			images = append(images, img...)

		case *ast.CodeSpan:
			st := style
			st.code = true
			s, img := inlineToRichText(n, src, st)
			spans = append(spans, s...)
			images = append(images, img...)

		case *east.Strikethrough:
			st := style
			st.strikethrough = true
			s, img := inlineToRichText(n, src, st)
			spans = append(spans, s...)
			images = append(images, img...)

		case *ast.Link:
			st := style
			st.link = string(n.Destination)
			s, img := inlineToRichText(n, src, st)
			spans = append(spans, s...)
			images = append(images, img...)

		case *ast.AutoLink:
			st := style
			st.link = string(n.URL(src))
			spans = append(spans, styledSpan(st.link, st))

		case *ast.Image:
			images = append(images, makeBlock("image", map[string]any{
				"type": "external",
				"external": map[string]any{
					"url": string(n.Destination),
				},
			})...)

		default:
			s, img := inlineToRichText(child, src, style)
			spans = append(spans, s...)
			images = append(images, img...)
		}
	}
	return spans, images
}

// makeBlock wraps a type-keyed payload in the Notion block envelope. It
// returns a one-element slice so call sites can append sibling blocks.
func makeBlock(typ string, data map[string]any) []map[string]any {
	if data == nil {
		data = map[string]any{}
	}
	return []map[string]any{{
		"object": "block",
		"type":   typ,
		typ:      data,
	}}
}

// orEmpty keeps rich_text arrays present in the wire format even when a
// node has no inline content.
func orEmpty(spans []map[string]any) []map[string]any {
	if spans == nil {
		return []map[string]any{}
	}
	return spans
}

// plainSpan builds an unannotated text span.
func plainSpan(content string) map[string]any {
	return styledSpan(content, inlineStyle{})
}

// styledSpan builds a rich text span carrying the given annotations.
func styledSpan(content string, style inlineStyle) map[string]any {
	txt := map[string]any{"content": content}

	annotations := map[string]any{}
	if style.bold {
		annotations["bold"] = true
	}
	if style.italic {
		annotations["italic"] = true
	}
	if style.code {
		annotations["code"] = true
	}
	if style.strikethrough {
		annotations["strikethrough"] = true
	}

	span := map[string]any{
		"type":        "text",
		"text":        txt,
		"annotations": annotations,
		"plain_text":  content,
	}
	if style.link != "" {
		txt["link"] = map[string]any{"url": style.link}
		span["href"] = style.link
	}
	return span
}

// rawLines concatenates the source segments of a block node.
func rawLines(node ast.Node, src []byte) string {
	var sb strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return sb.String()
}
