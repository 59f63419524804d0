// Package claude implements the model backends (news ranking and price
// outlooks) on the Anthropic SDK.
package claude

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/tkhongsap/commodity-currency-research/internal/forecast"
	"github.com/tkhongsap/commodity-currency-research/internal/news"
)

// Client wraps the Anthropic API for ranking and forecast calls. It
// implements news.Ranker and forecast.Generator.
type Client struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
}

// New creates a Claude client for the given API key and model name.
func New(apiKey, model string) *Client {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Client{
		client:    &client,
		model:     anthropic.Model(model),
		modelName: model,
	}
}

const rankSystemPrompt = `You are a commodity and currency market risk analyst. You rate news
articles by their potential market-moving impact on a 1-10 scale,
considering these risk categories: geopolitical, supply-chain, policy,
market volatility, disaster, central-bank, trade-war, commodity-supply.

Respond with ONLY a JSON array, one entry per article:
[{"index": <article index>, "score": <1-10>, "reason": "<one sentence>"}]
No prose before or after the JSON.`

// Rank asks the model for a base risk score per candidate article.
// Parse failures surface as errors; the caller treats any error as a
// backend failure and falls back to heuristic ranking.
func (c *Client) Rank(ctx context.Context, req *news.RankRequest) (*news.RankResponse, error) {
	var sb strings.Builder
	if req.Instrument != "" {
		fmt.Fprintf(&sb, "Instrument context: %s\n\n", req.Instrument)
	}
	sb.WriteString("Articles:\n")
	for _, cand := range req.Candidates {
		fmt.Fprintf(&sb, "[%d] %s\nSource: %s | Published: %s\n%s\n\n",
			cand.Index, cand.Title, cand.Source, cand.PublishedAt, cand.Description)
	}

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: rankSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(sb.String())),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}
	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("empty response from anthropic")
	}

	content := cleanJSONResponse(resp.Content[0].Text, '[', ']')

	var scores []news.RankScore
	if err := json.Unmarshal([]byte(content), &scores); err != nil {
		return nil, fmt.Errorf("failed to parse ranking response: %w, content: %s", err, content)
	}

	return &news.RankResponse{
		Model:  c.modelName,
		Scores: scores,
	}, nil
}

const outlookSystemPrompt = `You are a commodity and currency market analyst. Give a short-term
(1-2 week) outlook for the requested instrument.

Respond with ONLY a JSON object:
{"direction": "up"|"down"|"sideways", "confidence": <0-100>, "narrative": "<2-3 sentences>"}
No prose before or after the JSON.`

// Outlook asks the model for a short-term direction call on one
// instrument.
func (c *Client) Outlook(ctx context.Context, symbol string) (*forecast.Outlook, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 512,
		System: []anthropic.TextBlockParam{
			{Text: outlookSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("Instrument: " + symbol)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}
	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("empty response from anthropic")
	}

	content := cleanJSONResponse(resp.Content[0].Text, '{', '}')

	var parsed struct {
		Direction  string `json:"direction"`
		Confidence int    `json:"confidence"`
		Narrative  string `json:"narrative"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse outlook response: %w, content: %s", err, content)
	}

	return &forecast.Outlook{
		Direction:  parsed.Direction,
		Confidence: parsed.Confidence,
		Narrative:  parsed.Narrative,
		Model:      c.modelName,
	}, nil
}

// cleanJSONResponse strips markdown fences and surrounding prose some
// model responses wrap around the JSON payload.
func cleanJSONResponse(content string, open, closing byte) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.IndexByte(content, open)
	end := strings.LastIndexByte(content, closing)
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
