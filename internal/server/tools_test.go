package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"frog_expressions",
		"frog_apply_expression",
		"frog_adjust",
		"frog_size_dimensions",
		"frog_cache_stats",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema missing properties")
			}

			// Every required field must be declared.
			required, _ := tool.InputSchema["required"].([]string)
			for _, field := range required {
				if _, ok := props[field]; !ok {
					t.Errorf("required field %s not in properties", field)
				}
			}
		})
	}
}

func TestToolDefinitions_AdjustListsOperations(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if tool.Name != "frog_adjust" {
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		op := props["operation"].(map[string]interface{})
		enum := op["enum"].([]string)
		if len(enum) != 6 {
			t.Errorf("operation enum: got %v", enum)
		}
		return
	}
	t.Fatal("frog_adjust not defined")
}
