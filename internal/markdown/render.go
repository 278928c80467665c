package markdown

import (
	"fmt"
	"strings"

	"github.com/ravenhall-io/notionctl/pkg/models"
)

// RenderBlocks renders a hydrated block tree as text, one block per line,
// with children indented by tabs.
func RenderBlocks(blocks []models.Block) string {
	lines := make([]string, len(blocks))
	for i, b := range blocks {
		lines[i] = renderBlock(b, i)
	}
	return strings.Join(lines, "\n")
}

// renderBlock renders one block. pos is the block's index among its
// siblings, used to number list items.
func renderBlock(b models.Block, pos int) string {
	switch b.Type {
	case "bookmark":
		caption := richTextString(b.Data["caption"])
		return fmt.Sprintf("[%s](%s)", caption, dataString(b.Data, "url"))

	case "breadcrumb", "table_of_contents":
		return ""

	case "bulleted_list_item":
		return "- " + richTextString(b.Data["rich_text"]) + renderChildren(b)

	case "callout":
		return richTextString(b.Data["rich_text"])

	case "child_database", "child_page":
		return fmt.Sprintf("[%s](page_id=%s)", dataString(b.Data, "title"), b.ID)

	case "code":
		return fmt.Sprintf("```%s\n%s\n```", dataString(b.Data, "language"), richTextString(b.Data["rich_text"]))

	case "column_list", "synced_block":
		return renderChildren(b)

	case "divider":
		return "---"

	case "embed", "link_preview":
		url := dataString(b.Data, "url")
		return fmt.Sprintf("[%s](%s)", url, url)

	case "equation":
		return dataString(b.Data, "expression")

	case "file":
		caption := richTextString(b.Data["caption"])
		name := dataString(b.Data, "name")
		url := dataString(b.Data, "url")
		label := caption
		if label == "" {
			label = name
		}
		if label == "" {
			label = url
		}
		return fmt.Sprintf("[%s](%s)", label, url)

	case "heading_1", "heading_2", "heading_3":
		level := int(b.Type[len(b.Type)-1] - '0')
		text := richTextString(b.Data["rich_text"])
		return strings.Repeat("#", level) + " " + text + renderChildren(b)

	case "image", "pdf", "video":
		url := hostedFileURL(b.Data)
		return fmt.Sprintf("![%s](%s)", url, url)

	case "mention":
		// A mention payload is itself a type-keyed object.
		inner := models.Block{Type: dataString(b.Data, "type")}
		if d, ok := b.Data[inner.Type].(map[string]any); ok {
			inner.Data = d
		}
		return renderBlock(inner, 0)

	case "numbered_list_item":
		return fmt.Sprintf("%d. ", pos+1) + richTextString(b.Data["rich_text"]) + renderChildren(b)

	case "paragraph":
		return richTextString(b.Data["rich_text"]) + renderChildren(b)

	case "quote":
		return "> " + richTextString(b.Data["rich_text"]) + renderChildren(b)

	case "table":
		// TODO: render the actual rows once table_row children are hydrated
		// past the first level.
		return fmt.Sprintf("[Table](table_id=%s)", b.ID)

	case "to_do":
		prefix := "- [ ] "
		if checked, _ := b.Data["checked"].(bool); checked {
			prefix = "- [x] "
		}
		return prefix + richTextString(b.Data["rich_text"]) + renderChildren(b)

	case "toggle":
		return richTextString(b.Data["rich_text"]) + renderChildren(b)

	default:
		return ""
	}
}

// renderChildren renders a block's children indented one tab level deeper.
func renderChildren(b models.Block) string {
	if !b.HasChildren || len(b.Children) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, child := range b.Children {
		text := renderBlock(child, i)
		sb.WriteString("\n\t")
		sb.WriteString(strings.ReplaceAll(text, "\n", "\n\t"))
	}
	return sb.String()
}

// richTextString flattens a rich text array into plain text, rendering
// linked spans as (text)[href].
func richTextString(v any) string {
	arr, ok := v.([]any)
	if !ok {
		return ""
	}
	var sb strings.Builder
	for _, item := range arr {
		span, ok := item.(map[string]any)
		if !ok {
			continue
		}
		text, _ := span["plain_text"].(string)
		if href, _ := span["href"].(string); href != "" {
			fmt.Fprintf(&sb, "(%s)[%s]", text, href)
		} else {
			sb.WriteString(text)
		}
	}
	return sb.String()
}

// hostedFileURL resolves the URL of a file-backed block, which nests the
// URL under a "file" or "external" key named by the payload's type field.
func hostedFileURL(data map[string]any) string {
	typ := dataString(data, "type")
	inner, ok := data[typ].(map[string]any)
	if !ok {
		return ""
	}
	return dataString(inner, "url")
}

func dataString(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}
