package tools

import (
	"context"
	_ "embed"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const GuideURI = "weather://guide"

//go:embed guide.md
var guide string

func readGuide(_ context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: GuideURI, MIMEType: "text/markdown", Text: guide},
		},
	}, nil
}
