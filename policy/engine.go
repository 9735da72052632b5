// Package policy decides whether a classified lookup may be dispatched.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Decision is the outcome of a policy evaluation.
type Decision string

const (
	DecisionAllow Decision = "allow"
	DecisionBlock Decision = "block"
)

// Input is the document the policy is evaluated against.
type Input struct {
	Query     string `json:"query"`
	QueryType string `json:"query_type"`
}

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.lookup_policy"),
		rego.Module("lookup_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks the lookup policy and returns the decision with an
// optional reason.
func (e *Engine) Evaluate(ctx context.Context, input Input) (Decision, string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(map[string]interface{}{
		"query":      input.Query,
		"query_type": input.QueryType,
	}))
	if err != nil {
		return "", "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return DecisionAllow, "default", nil
	}

	doc, ok := results[0].Expressions[0].Value.(map[string]interface{})
	if !ok {
		return DecisionAllow, "unexpected return type", nil
	}

	reason, _ := doc["reason"].(string)
	switch d, _ := doc["decision"].(string); Decision(d) {
	case DecisionBlock:
		return DecisionBlock, reason, nil
	case DecisionAllow, "":
		return DecisionAllow, reason, nil
	default:
		return "", "", fmt.Errorf("unknown policy decision %q", d)
	}
}

// DefaultPolicy allows every lookup. Restrictions are opted into by
// pointing POLICY_PATH at a policy such as block_loopback.rego.
const DefaultPolicy = `
package lookup_policy

default decision = "allow"

default reason = ""
`
