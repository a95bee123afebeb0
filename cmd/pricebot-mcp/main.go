// Command pricebot-mcp is a stdio MCP server that fronts the pricebot HTTP
// API, exposing price checks as a tool for MCP clients.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// checkRequest mirrors the pricebot API request model.
type checkRequest struct {
	Product string `json:"product,omitempty"`
	Timeout int    `json:"timeout,omitempty"`
	MaxAge  int    `json:"max_age,omitempty"`
}

// checkResponse mirrors the pricebot API response model.
type checkResponse struct {
	Success bool   `json:"success"`
	Product string `json:"product"`
	Price   string `json:"price"`
	Offers  []struct {
		Price string `json:"price"`
		Title string `json:"title"`
	} `json:"offers"`
	CacheStatus string `json:"cache_status"`
	Error       *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	apiURL := os.Getenv("PRICEBOT_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("PRICEBOT_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "PRICEBOT_API_KEY is required")
		os.Exit(1)
	}

	s := server.NewMCPServer(
		"pricebot",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	checkPriceTool := mcp.NewTool("check_price",
		mcp.WithDescription("Search the configured retail site for a product and return the first displayed price. Uses a headless browser, so a call takes several seconds."),
		mcp.WithString("product",
			mcp.Description("Product search term (default: the server's configured product)"),
		),
		mcp.WithNumber("timeout",
			mcp.Description("Maximum duration of the check in seconds (default: 60, max: 120)"),
		),
		mcp.WithNumber("max_age",
			mcp.Description("Accept a cached result no older than this many milliseconds (default: 0, no cache)"),
		),
	)

	s.AddTool(checkPriceTool, handleCheckPrice(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleCheckPrice(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 150 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		reqBody := checkRequest{
			Product: request.GetString("product", ""),
			Timeout: request.GetInt("timeout", 0),
			MaxAge:  request.GetInt("max_age", 0),
		}

		body, err := json.Marshal(reqBody)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal request: %v", err)), nil
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/api/v1/check", bytes.NewReader(body))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("X-API-Key", apiKey)

		resp, err := client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
		}

		var checkResp checkResponse
		if err := json.Unmarshal(respBody, &checkResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !checkResp.Success {
			errMsg := fmt.Sprintf("check failed for %q", checkResp.Product)
			if checkResp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", checkResp.Error.Code, checkResp.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("First price for %s: %s\n", checkResp.Product, checkResp.Price))
		if len(checkResp.Offers) > 0 {
			sb.WriteString(fmt.Sprintf("\nAll %d displayed prices:\n", len(checkResp.Offers)))
			for _, o := range checkResp.Offers {
				if o.Title != "" {
					sb.WriteString(fmt.Sprintf("- %s — %s\n", o.Price, o.Title))
				} else {
					sb.WriteString(fmt.Sprintf("- %s\n", o.Price))
				}
			}
		}
		if checkResp.CacheStatus == "hit" {
			sb.WriteString("\n(served from cache)")
		}

		return mcp.NewToolResultText(sb.String()), nil
	}
}
