package seo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
)

// ToolName is the capability name advertised to the completion provider.
const ToolName = "fetchPage"

const toolDescription = "Fetch a webpage and extract its SEO-relevant HTML elements for analysis"

type fetchPageParams struct {
	URL string `json:"url" jsonschema:"required,description=The full URL of the page to analyze"`
}

// NewTool wraps the fetch-and-extract pipeline as an eino invokable tool.
// Every failure mode becomes a textual error payload in the tool result, so
// the model can relay it in natural language instead of the turn aborting.
func NewTool(fetcher *Fetcher) (tool.InvokableTool, error) {
	run := func(ctx context.Context, params *fetchPageParams) (string, error) {
		return fetchAndExtract(ctx, fetcher, params.URL), nil
	}
	return utils.InferTool(ToolName, toolDescription, run)
}

func fetchAndExtract(ctx context.Context, fetcher *Fetcher, rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return errorPayload(fmt.Sprintf("Invalid URL: %q", rawURL))
	}

	result := fetcher.Fetch(ctx, rawURL)
	if result.Err != "" {
		return errorPayload(result.Err)
	}

	record := Extract(result.HTML, rawURL)
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return errorPayload(fmt.Sprintf("Failed to serialize extraction result: %v", err))
	}
	return string(data)
}

func errorPayload(message string) string {
	data, _ := json.Marshal(map[string]string{"error": message})
	return string(data)
}
