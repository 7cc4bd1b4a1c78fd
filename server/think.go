package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/thinkmcp/codec"
	"github.com/thinkmcp/logger"
	"github.com/thinkmcp/mcp"
	"github.com/thinkmcp/think"
	"github.com/thinkmcp/validate"
)

const ThinkToolName = "think"

var ThinkTool = mcp.ToolDescription{
	Name:        ThinkToolName,
	Description: "Instructs Claude to use explicit, structured reasoning before providing an answer",
	Parameters: mcp.Schema{
		Type: "object",
		Properties: map[string]mcp.Property{
			"prompt": {
				Type:        "string",
				Description: "The question or task Claude should think about",
			},
		},
		Required: []string{"prompt"},
	},
}

const (
	msgMissingPrompt = "Missing required parameter: prompt"
	msgEmptyPrompt   = "Prompt cannot be empty"
)

// thinkHandler validates the prompt and renders it through think.Format.
func thinkHandler(log *logger.Logger) mcp.ToolHandler {
	return func(ctx context.Context, args json.RawMessage) (string, error) {
		if !hasPrompt(args) {
			return "", codec.NewRPCError(codec.InvalidParams, msgMissingPrompt)
		}

		if err := validate.Arguments(ThinkTool, args); err != nil {
			var argErr *validate.ArgumentsError
			if errors.As(err, &argErr) {
				return "", codec.NewRPCError(codec.InvalidParams, "Invalid params: "+argErr.Violations[0])
			}
			return "", err
		}

		var parsed struct {
			Prompt string `json:"prompt"`
		}
		if err := json.Unmarshal(args, &parsed); err != nil {
			return "", fmt.Errorf("decode think arguments: %w", err)
		}

		prompt := strings.TrimSpace(parsed.Prompt)
		if prompt == "" {
			return "", codec.NewRPCError(codec.InvalidParams, msgEmptyPrompt)
		}

		for _, d := range validate.DetectHiddenUnicode(prompt) {
			log.Warn(fmt.Sprintf("Hidden character in prompt: %s (%s) at byte %d", d.Hex, d.Category, d.Index))
		}
		log.Info(fmt.Sprintf("Processing 'think' request for prompt: %s", preview(prompt, 50)))

		return think.Format(prompt), nil
	}
}

// hasPrompt treats a missing prompt, and one that is null, "", 0 or false,
// as absent.
func hasPrompt(args json.RawMessage) bool {
	var fields map[string]json.RawMessage
	if len(args) == 0 || json.Unmarshal(args, &fields) != nil || fields == nil {
		return false
	}
	raw, ok := fields["prompt"]
	if !ok {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch v := v.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case float64:
		return v != 0
	}
	return true
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
