package diff

import (
	"fmt"
	"strings"
)

// RenderPRBody generates a markdown body summarizing catalog changes.
func RenderPRBody(cs *ChangeSet) string {
	var b strings.Builder

	b.WriteString("## Catalog Update\n\n")
	fmt.Fprintf(&b, "**%d** new, **%d** updated, **%d** removed, %d unchanged\n\n",
		len(cs.New), len(cs.Updated), len(cs.Removed), cs.Unchanged)

	if len(cs.New) > 0 {
		b.WriteString("<details>\n<summary>New Models</summary>\n\n")
		b.WriteString("| Model | Provider | Context |\n")
		b.WriteString("|-------|----------|--------|\n")
		for _, mc := range cs.New {
			fmt.Fprintf(&b, "| `%s` | %s | %d |\n",
				mc.ModelID, mc.Record.Provider, mc.Record.ContextLength)
		}
		b.WriteString("\n</details>\n\n")
	}

	if len(cs.Updated) > 0 {
		b.WriteString("<details>\n<summary>Updated Models</summary>\n\n")
		b.WriteString("| Model | Field | Old | New |\n")
		b.WriteString("|-------|-------|-----|-----|\n")
		for _, mu := range cs.Updated {
			for _, fc := range mu.Changes {
				fmt.Fprintf(&b, "| `%s` | %s | %v | %v |\n",
					mu.ModelID, fc.Field, renderValue(fc.OldValue), renderValue(fc.NewValue))
			}
		}
		b.WriteString("\n</details>\n\n")
	}

	if len(cs.Removed) > 0 {
		b.WriteString("<details>\n<summary>Removed Models</summary>\n\n")
		for _, mc := range cs.Removed {
			fmt.Fprintf(&b, "- `%s` (%s)\n", mc.ModelID, mc.Record.Provider)
		}
		b.WriteString("\n</details>\n\n")
	}

	return b.String()
}

func renderValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "—"
	case *float64:
		if t == nil {
			return "—"
		}
		return fmt.Sprintf("%g", *t)
	default:
		return fmt.Sprintf("%v", v)
	}
}
