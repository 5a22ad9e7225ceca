// Package gemini provides a client for the Google Gemini API
package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/kay207/money-life/internal/common"
	"github.com/kay207/money-life/internal/interfaces"
	"github.com/kay207/money-life/internal/models"
)

const (
	DefaultModel = "gemini-2.5-flash"

	chatSystemInstruction = "You are a helpful financial advisor."

	// Emitted when a chat stream breaks mid-reply.
	streamErrorNotice = "网络连接不稳定，请稍后再试。"
)

// Client implements the AdvisoryClient interface
type Client struct {
	client *genai.Client
	model  string
	logger *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client: genaiClient,
		model:  DefaultModel,
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Close closes the client
func (c *Client) Close() error {
	// The genai client doesn't have a Close method
	return nil
}

// analysisSchema constrains the model output to the GoalAnalysisResult shape.
func analysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"evaluation": {
				Type:        genai.TypeString,
				Description: "Short verdict like '极佳', '稳健', '有挑战', '需调整'",
			},
			"summary": {
				Type:        genai.TypeString,
				Description: "Analysis of the gap or success factor",
			},
			"suggestions": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "3-4 concrete steps",
			},
			"riskWarning": {
				Type:        genai.TypeString,
				Description: "What could go wrong?",
			},
		},
		Required:         []string{"evaluation", "summary", "suggestions", "riskWarning"},
		PropertyOrdering: []string{"evaluation", "summary", "suggestions", "riskWarning"},
	}
}

// AnalyzeGoal requests a structured narrative assessment of an evaluated goal.
func (c *Client) AnalyzeGoal(ctx context.Context, goal *models.GoalContext) (*models.GoalAnalysisResult, error) {
	c.logger.Debug().Str("model", c.model).Str("goal_type", string(goal.Type)).Msg("Requesting goal analysis")

	prompt := buildGoalAnalysisPrompt(goal)
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   analysisSchema(),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate analysis: %w", err)
	}

	text, err := extractTextFromResponse(result)
	if err != nil {
		return nil, err
	}

	var analysis models.GoalAnalysisResult
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}

	return &analysis, nil
}

// StreamChat sends a new user message with the prior conversation and streams
// reply fragments on the returned channel. A mid-stream failure closes the
// channel after a fixed notice fragment.
func (c *Client) StreamChat(ctx context.Context, history []models.ChatMessage, message string) (<-chan string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(chatSystemInstruction, genai.RoleUser),
	}

	chat, err := c.client.Chats.Create(ctx, c.model, config, historyContents(history))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		for resp, err := range chat.SendStream(ctx, &genai.Part{Text: message}) {
			if err != nil {
				c.logger.Warn().Err(err).Msg("Chat stream failed")
				select {
				case out <- streamErrorNotice:
				case <-ctx.Done():
				}
				return
			}
			text, err := extractTextFromResponse(resp)
			if err != nil || text == "" {
				continue
			}
			select {
			case out <- text:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// historyContents converts stored conversation turns into genai content.
func historyContents(history []models.ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := genai.Role(genai.RoleUser)
		if m.Role == models.ChatRoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	return contents
}

// extractTextFromResponse extracts text from a generate content response
func extractTextFromResponse(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text := ""
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	return text, nil
}

// buildGoalAnalysisPrompt creates a prompt for goal analysis
func buildGoalAnalysisPrompt(goal *models.GoalContext) string {
	goalType := "Retirement/FIRE"
	if goal.Type == models.GoalTypePurchase {
		goalType = "Major Purchase (e.g., House/Car)"
	}

	achievable := "NO"
	if goal.IsAchievable {
		achievable = "YES"
	}

	prompt := fmt.Sprintf(`Analyze this financial goal scientifically.

Context:
- Goal Type: %s
- Current Assets: ¥%.0f
- Monthly Savings: ¥%.0f
- Expected Annual Return: %.1f%%
- Target Amount Needed: ¥%.0f
- Projected Amount (Calculated): ¥%.0f
- Is Achievable via math: %s
`,
		goalType,
		goal.CurrentPrincipal,
		goal.MonthlySavings,
		goal.ExpectedReturnRate,
		goal.RequiredAmount,
		goal.ProjectedAmount,
		achievable,
	)

	switch goal.Type {
	case models.GoalTypePurchase:
		prompt += fmt.Sprintf("- Years to Goal: %d\n", goal.YearsToGoal)
	case models.GoalTypeRetirement:
		prompt += fmt.Sprintf("- Desired Monthly Passive Income: ¥%.0f\n", goal.TargetMonthlyExpense)
	}

	prompt += `
Task:
Provide actionable advice. If the goal is not achievable, suggest specific ways to close the gap.

Output JSON strictly matching the schema.
Translate response to Chinese.
`

	return prompt
}

// Ensure Client implements AdvisoryClient
var _ interfaces.AdvisoryClient = (*Client)(nil)
