// Package ai proposes candidate restaurant mentions for a video so the
// operator can pre-fill staged reviews instead of typing names from scratch.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Suggestion is one proposed restaurant mention.
type Suggestion struct {
	Name         string `json:"name"`
	StartSeconds int64  `json:"start_seconds"`
}

type Client struct {
	client  *genai.Client
	modelID string
}

// NewClient returns a nil client when no API key is provided; suggestion
// calls on a nil client degrade to an empty result.
func NewClient(ctx context.Context, apiKey, modelID string) (*Client, error) {
	if apiKey == "" {
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Client{client: client, modelID: modelID}, nil
}

// SuggestMentions extracts likely restaurant mentions from a video's title
// and description. Start offsets are taken from timestamps in the text when
// present, 0 otherwise.
func (c *Client) SuggestMentions(ctx context.Context, title, description string) ([]Suggestion, error) {
	if c == nil || c.client == nil {
		return nil, nil // Graceful degradation
	}

	prompt := fmt.Sprintf(`
This is the title and description of a YouTube food-review video:
Title: %q
Description: %q

Task: list every restaurant the video appears to review. For each, give the
restaurant name and the offset in seconds where its segment starts (use the
timestamps in the description when present, otherwise 0). Do not invent
restaurants that are not mentioned.

Output JSON adhering to the schema.
`, title, description)

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.1), // deterministic output
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {
						Type:        genai.TypeString,
						Description: "Restaurant name exactly as mentioned.",
					},
					"start_seconds": {
						Type:        genai.TypeInteger,
						Description: "Offset in seconds where the restaurant's segment starts, 0 if unknown.",
					},
				},
				Required: []string{"name", "start_seconds"},
			},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelID, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("gemini generation failed: %w", err)
	}

	// Clean up potential markdown formatting just in case
	jsonStr := strings.TrimSpace(resp.Text())
	jsonStr = strings.TrimPrefix(jsonStr, "```json")
	jsonStr = strings.TrimPrefix(jsonStr, "```")
	jsonStr = strings.TrimSuffix(jsonStr, "```")
	if jsonStr == "" {
		return nil, fmt.Errorf("no text part in response")
	}

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(jsonStr), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to parse gemini response: %w", err)
	}
	return suggestions, nil
}
