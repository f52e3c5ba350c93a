package server

import (
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ironsheep/photofrog-mcp/internal/filter"
	"github.com/ironsheep/photofrog-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "frog_apply_expression").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	logger := log.WithFields(log.Fields{
		"tool":     params.Name,
		"duration": time.Since(start),
	})
	if err != nil {
		logger.WithError(err).Warn("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	logger.Debug("tool done")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Source Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Expression Styling
	case "frog_expressions":
		return s.handleExpressions()
	case "frog_apply_expression":
		return s.handleApplyExpression(args)
	case "frog_adjust":
		return s.handleAdjust(args)

	// Helpers
	case "frog_size_dimensions":
		return s.handleSizeDimensions(args)
	case "frog_cache_stats":
		return s.handleCacheStats()

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments, treating empty arguments as {}.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// outputFormat applies the png default and validates the requested format.
func outputFormat(format string) (string, error) {
	if format == "" {
		return "png", nil
	}
	if !imaging.IsValidFormat(format) {
		return "", fmt.Errorf("unsupported format %q (supported: %v)", format, imaging.SupportedFormats())
	}
	return format, nil
}

// === Source Information Handlers ===

type pathArgs struct {
	Path string `json:"path"`
}

func (a pathArgs) validate() error {
	if a.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.sources, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.sources, a.Path)
}

// === Expression Styling Handlers ===

// ExpressionsResult lists the built-in presets.
type ExpressionsResult struct {
	Expressions []filter.Preset `json:"expressions"`
	Fallback    string          `json:"fallback"`
}

func (s *Server) handleExpressions() (interface{}, error) {
	return &ExpressionsResult{
		Expressions: filter.Presets(),
		Fallback:    filter.Identity.Name,
	}, nil
}

// StyledImageResult is the output of frog_apply_expression.
type StyledImageResult struct {
	imaging.EncodedImage

	// Expression is the preset that was applied ("identity" for unknown names).
	Expression string `json:"expression"`

	// Requested is the expression name as given by the caller.
	Requested string `json:"requested"`

	// Size is the named output size, empty when the source size was kept.
	Size string `json:"size,omitempty"`
}

type applyExpressionArgs struct {
	Path       string `json:"path"`
	Expression string `json:"expression"`
	Size       string `json:"size"`
	Format     string `json:"format"`
}

func (s *Server) handleApplyExpression(args json.RawMessage) (interface{}, error) {
	var a applyExpressionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	format, err := outputFormat(a.Format)
	if err != nil {
		return nil, err
	}

	src, err := s.sources.Load(a.Path)
	if err != nil {
		return nil, err
	}

	var raster *filter.Raster
	if a.Size != "" {
		raster = filter.FromImage(imaging.Fit(src, a.Size))
	} else {
		raster = filter.FromImage(src)
	}

	start := time.Now()
	styled, err := s.pipeline.Apply(raster, a.Expression)
	if err != nil {
		return nil, fmt.Errorf("failed to apply expression %q: %w", a.Expression, err)
	}
	preset := filter.Resolve(a.Expression)
	log.WithFields(log.Fields{
		"expression": preset.Name,
		"width":      styled.Width(),
		"height":     styled.Height(),
		"duration":   time.Since(start),
	}).Info("expression applied")

	encoded, err := imaging.EncodeBase64(styled, format)
	if err != nil {
		return nil, err
	}

	return &StyledImageResult{
		EncodedImage: *encoded,
		Expression:   preset.Name,
		Requested:    a.Expression,
		Size:         a.Size,
	}, nil
}

// AdjustResult is the output of frog_adjust.
type AdjustResult struct {
	imaging.EncodedImage

	Operation string  `json:"operation"`
	Value     float64 `json:"value"`
}

type adjustArgs struct {
	Path      string   `json:"path"`
	Operation string   `json:"operation"`
	Value     *float64 `json:"value"`
	Format    string   `json:"format"`
}

func (s *Server) handleAdjust(args json.RawMessage) (interface{}, error) {
	var a adjustArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if a.Operation == "" {
		return nil, fmt.Errorf("operation is required")
	}
	if a.Value == nil {
		return nil, fmt.Errorf("value is required")
	}
	format, err := outputFormat(a.Format)
	if err != nil {
		return nil, err
	}

	src, err := s.sources.Load(a.Path)
	if err != nil {
		return nil, err
	}

	step := filter.Step{Op: filter.Operation(a.Operation), Param: *a.Value}
	out, err := step.Apply(filter.FromImage(src))
	if err != nil {
		return nil, fmt.Errorf("failed to apply %s: %w", step, err)
	}

	encoded, err := imaging.EncodeBase64(out, format)
	if err != nil {
		return nil, err
	}

	return &AdjustResult{
		EncodedImage: *encoded,
		Operation:    a.Operation,
		Value:        *a.Value,
	}, nil
}

// === Helper Handlers ===

// SizeResult is the output of frog_size_dimensions.
type SizeResult struct {
	Size   string `json:"size"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) handleSizeDimensions(args json.RawMessage) (interface{}, error) {
	var a struct {
		Size string `json:"size"`
	}
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	d := imaging.DimensionsForSize(a.Size)
	return &SizeResult{Size: a.Size, Width: d.Width, Height: d.Height}, nil
}

// CacheStatsResult is the output of frog_cache_stats.
type CacheStatsResult struct {
	Filter  filter.CacheStats `json:"filter"`
	Sources int               `json:"sources"`
}

func (s *Server) handleCacheStats() (interface{}, error) {
	return &CacheStatsResult{
		Filter:  s.pipeline.Cache().Stats(),
		Sources: s.sources.Len(),
	}, nil
}
