package docpath

import (
	"encoding/json"
	"fmt"

	"github.com/expr-lang/expr"
)

// Eval runs an expr-lang expression against the JSON view of root, so field
// names are the document's JSON keys: `education.items[0].major`,
// `len(education.items)`, `filter(education.items, .enable)`. The document
// is also reachable as `data`.
func Eval(root any, expression string) (any, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}

	env, err := jsonEnv(root)
	if err != nil {
		return nil, err
	}

	program, err := expr.Compile(expression, expr.Env(env), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, err)
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("evaluate %q: %w", expression, err)
	}
	return out, nil
}

func jsonEnv(root any) (map[string]any, error) {
	raw, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	env := map[string]any{}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("document must encode to a JSON object: %w", err)
	}
	data := make(map[string]any, len(env))
	for k, v := range env {
		data[k] = v
	}
	env[rootAlias] = data
	return env, nil
}
