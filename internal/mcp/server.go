// Package mcp exposes format detection and conversion as MCP tools over
// stdio, so editors and agents can call the detector without shelling out.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"testmorph/internal/convert"
	"testmorph/internal/detect"
	"testmorph/internal/formats"
)

// Server wraps the MCP SDK server around one detector.
type Server struct {
	MCPServer *sdkmcp.Server
	detector  *detect.Detector
}

// NewServer creates an MCP server with detection and conversion tools.
func NewServer(d *detect.Detector) *Server {
	s := &Server{detector: d}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "testmorph", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves MCP over stdio until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "detect_format",
		Description: "Detect the test-management export format of a JSON document. Returns the best-guess format and the full confidence distribution.",
	}, s.handleDetectFormat)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "convert_document",
		Description: "Detect a JSON document's format and convert it to the canonical test-management model.",
	}, s.handleConvertDocument)
}

// --- Tool input/output types ---

type detectFormatInput struct {
	Document string `json:"document" jsonschema:"the raw JSON document to classify"`
}

type detectFormatOutput struct {
	Format      string             `json:"format"`
	Confidences map[string]float64 `json:"confidences"`
}

type convertDocumentInput struct {
	Document string `json:"document" jsonschema:"the raw JSON document to convert"`
	Format   string `json:"format,omitempty" jsonschema:"source format override; empty = auto-detect"`
}

type convertDocumentOutput struct {
	Format    string           `json:"format"`
	Canonical convert.Document `json:"canonical"`
}

// --- Handlers ---

// decodeDocument parses the raw payload. This is the only place in the
// pipeline where malformed JSON is an error: the detector itself never
// sees undecoded text.
func decodeDocument(raw string) (any, error) {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("document is not valid JSON: %w", err)
	}
	return doc, nil
}

func (s *Server) handleDetectFormat(_ context.Context, _ *sdkmcp.CallToolRequest, input detectFormatInput) (*sdkmcp.CallToolResult, detectFormatOutput, error) {
	doc, err := decodeDocument(input.Document)
	if err != nil {
		return nil, detectFormatOutput{}, err
	}
	res := s.detector.Detect(doc)
	out := detectFormatOutput{
		Format:      string(res.Format),
		Confidences: make(map[string]float64, len(res.Confidences)),
	}
	for f, p := range res.Confidences {
		out.Confidences[string(f)] = p
	}
	return nil, out, nil
}

func (s *Server) handleConvertDocument(_ context.Context, _ *sdkmcp.CallToolRequest, input convertDocumentInput) (*sdkmcp.CallToolResult, convertDocumentOutput, error) {
	doc, err := decodeDocument(input.Document)
	if err != nil {
		return nil, convertDocumentOutput{}, err
	}
	format := s.detector.Detect(doc).Format
	if input.Format != "" {
		// Unknown overrides fall through to the generic mapper downstream.
		format = formats.SupportedFormat(input.Format)
	}
	return nil, convertDocumentOutput{
		Format:    string(format),
		Canonical: convert.Convert(doc, format),
	}, nil
}
