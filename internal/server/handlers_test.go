package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createTestImageFile writes a solid-color PNG and returns its path.
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "frog.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// callTool sends a tools/call request and returns the raw response.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	params, err := json.Marshal(map[string]interface{}{
		"name":      name,
		"arguments": args,
	})
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  params,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// callToolResult calls a tool, requires success and decodes the text content
// into a map.
func callToolResult(t *testing.T, s *Server, name string, args map[string]interface{}) map[string]interface{} {
	t.Helper()

	resp := callTool(t, s, name, args)
	if resp.Error != nil {
		t.Fatalf("%s: unexpected error: %+v", name, resp.Error)
	}

	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	text := content[0]["text"].(string)

	var out map[string]interface{}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		t.Fatalf("%s: result is not JSON: %v", name, err)
	}
	return out
}

// decodePNG decodes the base64 PNG payload of a result.
func decodePNG(t *testing.T, result map[string]interface{}) image.Image {
	t.Helper()

	data, err := base64.StdEncoding.DecodeString(result["image_base64"].(string))
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("payload is not PNG: %v", err)
	}
	return img
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	path := createTestImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255})
	result := callToolResult(t, New(), "image_load", map[string]interface{}{"path": path})

	if result["width"] != float64(100) || result["height"] != float64(80) {
		t.Errorf("size: got %vx%v, want 100x80", result["width"], result["height"])
	}
	if result["format"] != "png" {
		t.Errorf("format: got %v, want png", result["format"])
	}
}

func TestHandleToolsCall_ImageDimensions(t *testing.T) {
	path := createTestImageFile(t, 20, 10, color.White)
	result := callToolResult(t, New(), "image_dimensions", map[string]interface{}{"path": path})

	if result["width"] != float64(20) || result["height"] != float64(10) {
		t.Errorf("got %v", result)
	}
}

func TestHandleToolsCall_MissingPath(t *testing.T) {
	for _, tool := range []string{"image_load", "image_dimensions", "frog_apply_expression", "frog_adjust"} {
		t.Run(tool, func(t *testing.T) {
			resp := callTool(t, New(), tool, map[string]interface{}{})
			if resp.Error == nil || resp.Error.Code != -32000 {
				t.Errorf("expected tool error, got %+v", resp.Error)
			}
		})
	}
}

func TestHandleToolsCall_Expressions(t *testing.T) {
	result := callToolResult(t, New(), "frog_expressions", nil)

	list := result["expressions"].([]interface{})
	if len(list) != 5 {
		t.Errorf("got %d expressions, want 5", len(list))
	}
	if result["fallback"] != "identity" {
		t.Errorf("fallback: got %v, want identity", result["fallback"])
	}
}

func TestHandleToolsCall_ApplyExpression(t *testing.T) {
	path := createTestImageFile(t, 120, 90, color.RGBA{100, 150, 80, 255})
	result := callToolResult(t, New(), "frog_apply_expression", map[string]interface{}{
		"path":       path,
		"expression": "Happy",
		"size":       "small",
	})

	if result["expression"] != "happy" || result["requested"] != "Happy" {
		t.Errorf("expression: got %v (requested %v)", result["expression"], result["requested"])
	}
	if result["width"] != float64(300) || result["height"] != float64(200) {
		t.Errorf("size: got %vx%v, want 300x200", result["width"], result["height"])
	}
	if result["mime_type"] != "image/png" {
		t.Errorf("mime_type: got %v", result["mime_type"])
	}

	img := decodePNG(t, result)
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 200 {
		t.Errorf("decoded size: got %v", b)
	}
}

func TestHandleToolsCall_ApplyExpression_KeepsSourceSize(t *testing.T) {
	path := createTestImageFile(t, 33, 21, color.RGBA{10, 20, 30, 255})
	result := callToolResult(t, New(), "frog_apply_expression", map[string]interface{}{
		"path":       path,
		"expression": "sad",
		"format":     "jpg",
	})

	if result["width"] != float64(33) || result["height"] != float64(21) {
		t.Errorf("size: got %vx%v, want 33x21", result["width"], result["height"])
	}
	if result["mime_type"] != "image/jpeg" {
		t.Errorf("mime_type: got %v, want image/jpeg", result["mime_type"])
	}
}

func TestHandleToolsCall_ApplyExpression_UnknownIsUnchanged(t *testing.T) {
	path := createTestImageFile(t, 10, 10, color.RGBA{12, 34, 56, 255})
	result := callToolResult(t, New(), "frog_apply_expression", map[string]interface{}{
		"path":       path,
		"expression": "grumpy",
	})

	if result["expression"] != "identity" {
		t.Errorf("expression: got %v, want identity", result["expression"])
	}
	r, g, b, _ := decodePNG(t, result).At(4, 4).RGBA()
	if r>>8 != 12 || g>>8 != 34 || b>>8 != 56 {
		t.Errorf("pixel: got (%d,%d,%d), want (12,34,56)", r>>8, g>>8, b>>8)
	}
}

func TestHandleToolsCall_ApplyExpression_SameSizeSharesResult(t *testing.T) {
	s := New()
	green := createTestImageFile(t, 16, 16, color.RGBA{0, 200, 0, 255})
	blue := createTestImageFile(t, 16, 16, color.RGBA{0, 0, 200, 255})

	first := callToolResult(t, s, "frog_apply_expression", map[string]interface{}{
		"path": green, "expression": "excited",
	})
	second := callToolResult(t, s, "frog_apply_expression", map[string]interface{}{
		"path": blue, "expression": "excited",
	})

	if first["image_base64"] != second["image_base64"] {
		t.Error("same expression and size should return the cached result")
	}

	stats := callToolResult(t, s, "frog_cache_stats", nil)
	f := stats["filter"].(map[string]interface{})
	if f["entries"] != float64(1) || f["hits"] != float64(1) || f["misses"] != float64(1) {
		t.Errorf("filter stats: got %v", f)
	}
	if stats["sources"] != float64(2) {
		t.Errorf("sources: got %v, want 2", stats["sources"])
	}
}

func TestHandleToolsCall_ApplyExpression_BadFormat(t *testing.T) {
	path := createTestImageFile(t, 4, 4, color.White)
	resp := callTool(t, New(), "frog_apply_expression", map[string]interface{}{
		"path":       path,
		"expression": "happy",
		"format":     "gif",
	})
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Errorf("expected tool error for gif output, got %+v", resp.Error)
	}
}

func TestHandleToolsCall_Adjust(t *testing.T) {
	path := createTestImageFile(t, 5, 5, color.RGBA{100, 100, 100, 255})

	tests := []struct {
		name    string
		op      string
		value   interface{}
		wantErr bool
	}{
		{"brightness", "brightness", 1.5, false},
		{"blur", "blur", 3, false},
		{"sharpness", "sharpness", 1.1, false},
		{"even blur", "blur", 2, true},
		{"zero warmth", "warmth", 0, true},
		{"unknown op", "vignette", 1, true},
		{"missing value", "contrast", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]interface{}{"path": path, "operation": tt.op}
			if tt.value != nil {
				args["value"] = tt.value
			}
			resp := callTool(t, New(), "frog_adjust", args)
			if tt.wantErr {
				if resp.Error == nil {
					t.Error("expected an error")
				}
				return
			}
			if resp.Error != nil {
				t.Errorf("unexpected error: %+v", resp.Error)
			}
		})
	}
}

func TestHandleToolsCall_AdjustBrightnessPixels(t *testing.T) {
	path := createTestImageFile(t, 3, 3, color.RGBA{100, 50, 20, 255})
	result := callToolResult(t, New(), "frog_adjust", map[string]interface{}{
		"path": path, "operation": "brightness", "value": 2,
	})

	r, g, b, _ := decodePNG(t, result).At(1, 1).RGBA()
	if r>>8 != 200 || g>>8 != 100 || b>>8 != 40 {
		t.Errorf("pixel: got (%d,%d,%d), want (200,100,40)", r>>8, g>>8, b>>8)
	}
}

func TestHandleToolsCall_SizeDimensions(t *testing.T) {
	tests := []struct {
		size          string
		width, height float64
	}{
		{"small", 300, 200},
		{"large", 900, 600},
		{"gigantic", 600, 400},
	}
	for _, tt := range tests {
		t.Run(tt.size, func(t *testing.T) {
			result := callToolResult(t, New(), "frog_size_dimensions", map[string]interface{}{"size": tt.size})
			if result["width"] != tt.width || result["height"] != tt.height {
				t.Errorf("got %vx%v, want %vx%v", result["width"], result["height"], tt.width, tt.height)
			}
		})
	}
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	resp := callTool(t, New(), "image_ocr_full", nil)
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Errorf("expected tool error, got %+v", resp.Error)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	resp := New().handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`5`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("expected -32602, got %+v", resp.Error)
	}
}
