// Package generation drafts profile content with AWS Bedrock. The generator
// returns suggested field values; nothing is persisted here. The profile
// service decides which suggestions actually differ and writes only those.
package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/ignite/brandhub/internal/domain"
)

// ErrUnavailable is returned when the model call fails. Callers surface it
// without retrying; editing continues to work without generation.
var ErrUnavailable = errors.New("generation unavailable")

// DefaultModelID is used when the config leaves the model unset.
const DefaultModelID = "anthropic.claude-3-sonnet-20240229-v1:0"

// Generator produces draft field values for one profile section.
type Generator struct {
	client  *bedrockruntime.Client
	modelID string
}

type bedrockMessage struct {
	Role    string                `json:"role"`
	Content []bedrockContentBlock `json:"content"`
}

type bedrockContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type bedrockRequest struct {
	AnthropicVersion string           `json:"anthropic_version"`
	MaxTokens        int              `json:"max_tokens"`
	System           string           `json:"system,omitempty"`
	Messages         []bedrockMessage `json:"messages"`
	Temperature      float64          `json:"temperature,omitempty"`
}

type bedrockResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// New loads the default AWS config chain and builds a Bedrock-backed
// generator for the given region and model.
func New(ctx context.Context, region, modelID string) (*Generator, error) {
	if region == "" {
		region = "us-east-1"
	}
	if modelID == "" {
		modelID = DefaultModelID
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	g := &Generator{
		client:  bedrockruntime.NewFromConfig(cfg),
		modelID: modelID,
	}
	log.Printf("[generation.Generator] Initialized with model=%s, region=%s", modelID, region)
	return g, nil
}

// Brief is the company context handed to the model.
type Brief struct {
	Name        string
	Website     string
	Industry    string
	Description string
}

// Generate drafts values for the fields of one profile section. The result
// maps field names (as the profile service knows them) to suggested text;
// fields the model declined to fill are absent.
func (g *Generator) Generate(ctx context.Context, brief Brief, kind domain.ProfileKind) (map[string]string, error) {
	fields, ok := kindFields[kind]
	if !ok {
		return nil, fmt.Errorf("generate: unknown profile kind %q", kind)
	}

	req := bedrockRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        1500,
		System:           systemPrompt,
		Messages: []bedrockMessage{{
			Role: "user",
			Content: []bedrockContentBlock{
				{Type: "text", Text: buildPrompt(brief, kind, fields)},
			},
		}},
		Temperature: 0.7,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	output, err := g.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(g.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		log.Printf("[generation.Generator] Bedrock call failed for kind=%s: %v", kind, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var resp bedrockResponse
	if err := json.Unmarshal(output.Body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	var text string
	for _, c := range resp.Content {
		if c.Type == "text" {
			text += c.Text
		}
	}

	values, err := parseFields(text, fields)
	if err != nil {
		return nil, err
	}

	log.Printf("[generation.Generator] Drafted %d field(s) for kind=%s (in: %d tokens, out: %d tokens)",
		len(values), kind, resp.Usage.InputTokens, resp.Usage.OutputTokens)
	return values, nil
}

const systemPrompt = `You are a brand strategist for IGNITE, a marketing platform for small businesses. You write concise, specific profile content grounded in the company details provided. Respond with a single JSON object and nothing else. Omit any field you cannot ground in the provided details.`

// kindFields whitelists the JSON keys accepted per section. Anything else
// the model emits is dropped.
var kindFields = map[domain.ProfileKind][]string{
	domain.KindStrategy:      {"mission", "target_audience", "value_proposition", "differentiators"},
	domain.KindBranding:      {"tagline", "primary_color", "secondary_color", "font_family"},
	domain.KindVoice:         {"tone", "personality", "guidelines", "keywords"},
	domain.KindEmailSettings: {"sender_name", "footer"},
}

func buildPrompt(brief Brief, kind domain.ProfileKind, fields []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s\n", brief.Name)
	if brief.Website != "" {
		fmt.Fprintf(&b, "Website: %s\n", brief.Website)
	}
	if brief.Industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n", brief.Industry)
	}
	if brief.Description != "" {
		fmt.Fprintf(&b, "About: %s\n", brief.Description)
	}
	fmt.Fprintf(&b, "\nDraft the %s section of this company's brand profile.\n", kind)
	fmt.Fprintf(&b, "Return a JSON object with any of these keys: %s.\n", strings.Join(fields, ", "))
	b.WriteString("Each value must be a short plain-text string. Omit keys you are not confident about.")
	return b.String()
}

// parseFields extracts the JSON object from the model output, tolerating
// markdown fences, and keeps only whitelisted non-empty string values.
func parseFields(text string, fields []string) (map[string]string, error) {
	raw := extractJSON(text)
	if raw == "" {
		return nil, fmt.Errorf("%w: no JSON object in model output", ErrUnavailable)
	}

	var parsed map[string]string
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("%w: malformed model output: %v", ErrUnavailable, err)
	}

	out := make(map[string]string)
	for _, f := range fields {
		if v := strings.TrimSpace(parsed[f]); v != "" {
			out[f] = v
		}
	}
	return out, nil
}

// extractJSON returns the first top-level {...} span in text.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}
