package service

import (
	"fmt"
	"strings"
)

// buildPrompt assembles the generation request text from building attributes,
// caller-supplied area context, and the labels of any attached images. The
// ten-key response contract mirrors the InsightRecord schema exactly.
func buildPrompt(attrs BuildingAttributes, contextNotes string, imageLabels []string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert real-estate and urban-planning analyst. ")
	sb.WriteString("Analyze the building described below and produce a structured assessment.\n\n")

	sb.WriteString("Building data:\n")
	sb.WriteString(fmt.Sprintf("- Footprint area: %.1f square meters\n", attrs.AreaSqMeters))
	sb.WriteString(fmt.Sprintf("- Location: latitude %.6f, longitude %.6f\n", attrs.Latitude, attrs.Longitude))
	sb.WriteString(fmt.Sprintf("- Footprint detection confidence: %.2f\n", attrs.Confidence))
	if attrs.PlusCode != "" {
		sb.WriteString(fmt.Sprintf("- Plus code: %s\n", attrs.PlusCode))
	}

	if contextNotes != "" {
		sb.WriteString("\nArea context:\n")
		sb.WriteString(contextNotes)
		sb.WriteString("\n")
	}

	if len(imageLabels) > 0 {
		sb.WriteString(fmt.Sprintf(
			"\nAttached are %d street-level photo(s) of the building, captured from direction(s): %s. ",
			len(imageLabels), strings.Join(imageLabels, ", ")))
		sb.WriteString("Use them to assess the exterior, condition, visible floors, architectural style, and any signboards.\n")
	}

	sb.WriteString(`
Return a JSON object with this exact structure:
{
    "building_type": "<estimated building type>",
    "size_category": "<small/medium/large/very large>",
    "estimated_floors": "<estimated number of floors>",
    "likely_use": "<residential/commercial/mixed-use/institutional>",
    "area_characteristics": "<description of the surrounding area>",
    "property_insights": "<market and value insights>",
    "architectural_style": "<typical architectural style in this area>",
    "nearby_amenities": "<list of typical nearby amenities>",
    "recommendations": "<suggestions for property use or development>",
    "summary": "<comprehensive 2-3 sentence summary>"
}

Respond ONLY with the JSON object. Be specific and informative.`)

	return sb.String()
}
