package pipeline

import (
	"fmt"
	"strings"

	"newscope/internal/model"
)

func placeholder(label string) string {
	return fmt.Sprintf("No results found from %s.", label)
}

// sectionContent renders one source's snippet block, or its placeholder when
// the source failed or returned nothing.
func sectionContent(section model.SourceSection, maxItems int) string {
	if section.Err != "" || len(section.Items) == 0 {
		return placeholder(section.Label)
	}

	items := section.Items
	if len(items) > maxItems {
		items = items[:maxItems]
	}

	snippets := make([]string, 0, len(items))
	for _, item := range items {
		snippets = append(snippets, item.Snippet)
	}
	return strings.Join(snippets, "\n")
}

// assembleContent builds the combined material sent to synthesis: one labeled
// section per source, blank line between sections, hard byte cut at budget.
// caps[i] bounds how many of section i's items contribute.
func assembleContent(sections []model.SourceSection, caps []int, budget int) string {
	parts := make([]string, 0, len(sections))
	for i, section := range sections {
		maxItems := 2
		if i < len(caps) && caps[i] > 0 {
			maxItems = caps[i]
		}
		parts = append(parts, section.Label+":\n"+sectionContent(section, maxItems))
	}

	combined := strings.Join(parts, "\n\n")
	if len(combined) > budget {
		combined = combined[:budget]
	}
	return combined
}

// formatMaterials numbers grounding passages for the report prompt.
func formatMaterials(materials []string) string {
	blocks := make([]string, 0, len(materials))
	for i, m := range materials {
		blocks = append(blocks, fmt.Sprintf("Source %d:\n%s", i+1, m))
	}
	return strings.Join(blocks, "\n\n")
}
