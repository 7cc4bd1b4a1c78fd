package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/thinkmcp/mcp"

	"github.com/xeipuuv/gojsonschema"
)

// ArgumentsError lists every schema violation found in a tool's arguments.
type ArgumentsError struct {
	Tool       string
	Violations []string
}

func (e *ArgumentsError) Error() string {
	return fmt.Sprintf("input validation failed for tool '%s': %s", e.Tool, strings.Join(e.Violations, "; "))
}

// Arguments checks raw tool arguments against the parameter schema the tool
// announces. Absent arguments are validated as an empty object.
func Arguments(tool mcp.ToolDescription, args json.RawMessage) error {
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(tool.Parameters))
	if err != nil {
		return fmt.Errorf("internal schema error for tool '%s': %w", tool.Name, err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(args))
	if err != nil {
		return fmt.Errorf("internal validation error for tool '%s': %w", tool.Name, err)
	}

	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return &ArgumentsError{Tool: tool.Name, Violations: violations}
}
