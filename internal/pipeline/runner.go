package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/harrison/advisor/internal/models"
)

// RoleRunner invokes a role once with a fully rendered prompt and returns
// its textual output. Implementations handle tool calls internally.
type RoleRunner interface {
	RunRole(ctx context.Context, role *models.Role, prompt string, structured bool) (string, error)
}

// ChatCompleter is the slice of the OpenAI client the runner needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// maxToolRounds bounds the tool-call loop within one role invocation so a
// confused model cannot spin forever.
const maxToolRounds = 6

// OpenAIRunner drives roles through chat completions against an Azure
// deployment, exposing the role's tools via function calling. Tool
// failures come back inline in the conversation (the tools absorb them);
// only model-level failures surface as errors.
//
// A runner lives for one pipeline run. For roles with Memory set it
// keeps the prior exchanges and replays them on the role's later tasks.
// Not safe for concurrent use; the executor invokes roles sequentially.
type OpenAIRunner struct {
	client     ChatCompleter
	deployment string

	memory map[string][]openai.ChatCompletionMessage
}

// NewOpenAIRunner creates a runner bound to the given client and model
// deployment name.
func NewOpenAIRunner(client ChatCompleter, deployment string) *OpenAIRunner {
	return &OpenAIRunner{
		client:     client,
		deployment: deployment,
		memory:     make(map[string][]openai.ChatCompletionMessage),
	}
}

// RunRole implements RoleRunner.
func (r *OpenAIRunner) RunRole(ctx context.Context, role *models.Role, prompt string, structured bool) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(role, structured)},
	}
	if role.Memory {
		messages = append(messages, r.memory[role.Name]...)
	}
	userMsg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt}
	messages = append(messages, userMsg)

	req := openai.ChatCompletionRequest{
		Model:       r.deployment,
		Messages:    messages,
		Temperature: role.Temperature,
		Tools:       toolDefinitions(role.Tools),
	}
	if structured {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	for round := 0; round <= maxToolRounds; round++ {
		resp, err := r.complete(ctx, role, req)
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("model returned no choices")
		}

		msg := resp.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			if role.Memory {
				r.memory[role.Name] = append(r.memory[role.Name], userMsg,
					openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: msg.Content})
			}
			return msg.Content, nil
		}

		req.Messages = append(req.Messages, msg)
		for _, call := range msg.ToolCalls {
			result := r.executeToolCall(ctx, role, call)
			req.Messages = append(req.Messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}

	return "", fmt.Errorf("role %s exceeded %d tool rounds without a final answer", role.Name, maxToolRounds)
}

// complete performs one chat completion with the role's retry budget.
func (r *OpenAIRunner) complete(ctx context.Context, role *models.Role, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	var lastErr error
	attempts := role.MaxRetries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		resp, err := r.client.CreateChatCompletion(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return openai.ChatCompletionResponse{}, fmt.Errorf("chat completion for role %s: %w", role.Name, lastErr)
}

// executeToolCall runs one requested tool. Unknown tools and malformed
// arguments produce inline error strings, mirroring the tool contract.
func (r *OpenAIRunner) executeToolCall(ctx context.Context, role *models.Role, call openai.ToolCall) string {
	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return fmt.Sprintf("%s failed: malformed arguments: %v", call.Function.Name, err)
	}

	for _, tool := range role.Tools {
		if toolFunctionName(tool.Name()) == call.Function.Name {
			return tool.Run(ctx, args.Query)
		}
	}
	return fmt.Sprintf("%s failed: no such tool bound to role %s", call.Function.Name, role.Name)
}

// systemPrompt builds the persona message from the role definition.
func systemPrompt(role *models.Role, structured bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s.\n\n%s\n\nYour goal: %s", role.Name, strings.TrimSpace(role.Backstory), role.Goal)
	if !role.AllowDelegation {
		sb.WriteString("\n\nComplete the work yourself; do not defer it to others.")
	}
	if structured {
		sb.WriteString("\n\nRespond with a single valid JSON object matching the requested fields. No markdown, no code fences, no prose outside the JSON.")
	}
	return sb.String()
}

// toolDefinitions exposes the role's tools as callable functions. Every
// tool takes one required string argument, "query".
func toolDefinitions(bound []models.Tool) []openai.Tool {
	if len(bound) == 0 {
		return nil
	}
	defs := make([]openai.Tool, 0, len(bound))
	for _, tool := range bound {
		defs = append(defs, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        toolFunctionName(tool.Name()),
				Description: tool.Description(),
				Parameters: json.RawMessage(`{
					"type": "object",
					"properties": {
						"query": {
							"type": "string",
							"description": "The search query or URL to operate on"
						}
					},
					"required": ["query"]
				}`),
			},
		})
	}
	return defs
}

// toolFunctionName converts a display name to a function-call identifier,
// e.g. "DuckDuckGo Search" -> "duckduckgo_search".
func toolFunctionName(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return strings.Trim(sb.String(), "_")
}
