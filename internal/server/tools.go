package server

import (
	"github.com/ironsheep/photofrog-mcp/internal/filter"
	"github.com/ironsheep/photofrog-mcp/internal/imaging"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema shared by every tool that reads a source photo.
var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the source photo",
}

// formatProperty is the schema shared by every tool that returns an image.
var formatProperty = map[string]interface{}{
	"type":        "string",
	"enum":        imaging.SupportedFormats(),
	"description": "Output format. Default png",
	"default":     "png",
}

func operationNames() []string {
	ops := filter.Operations()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = string(op)
	}
	return names
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Source Information
		{
			Name:        "image_load",
			Description: "Load a source photo and return its dimensions, format and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of a source photo.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Expression Styling
		{
			Name:        "frog_expressions",
			Description: "List the expression presets and the filter steps each one applies.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name: "frog_apply_expression",
			Description: "Style a frog photo with an expression (happy, sad, surprised, excited, determined) " +
				"and return it as base64. Unknown expressions return the photo unchanged. Results are cached " +
				"per expression and output size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"expression": map[string]interface{}{
						"type":        "string",
						"description": "Expression preset name",
						"examples":    filter.Expressions(),
					},
					"size": map[string]interface{}{
						"type":        "string",
						"enum":        imaging.SupportedSizes(),
						"description": "Optional output size. The photo is resized and center-cropped to fill it. Omit to keep the source size",
					},
					"format": formatProperty,
				},
				"required": []string{"path", "expression"},
			},
		},
		{
			Name:        "frog_adjust",
			Description: "Apply a single filter operation to a photo and return it as base64. Not cached.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"operation": map[string]interface{}{
						"type":        "string",
						"enum":        operationNames(),
						"description": "Filter operation",
					},
					"value": map[string]interface{}{
						"type":        "number",
						"description": "Factor for color and sharpness operations (1.0 = unchanged); odd radius for blur",
					},
					"format": formatProperty,
				},
				"required": []string{"path", "operation", "value"},
			},
		},

		// Helpers
		{
			Name:        "frog_size_dimensions",
			Description: "Resolve an output size name (small, medium, large) to pixel dimensions. Unknown names resolve to medium.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"size": map[string]interface{}{
						"type":        "string",
						"description": "Size name",
					},
				},
				"required": []string{"size"},
			},
		},
		{
			Name:        "frog_cache_stats",
			Description: "Report filter cache entries, hits and misses, and the number of cached source photos.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}
