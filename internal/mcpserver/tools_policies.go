package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasbind/binder"
)

type policiesInput struct {
	Spec specInput `json:"spec" jsonschema:"The API description document to bind"`
}

type policyAttachment struct {
	Handler   string `json:"handler"`
	Cache     string `json:"cache,omitempty"`
	Retry     string `json:"retry,omitempty"`
	RateLimit string `json:"rate_limit,omitempty"`
}

type policiesOutput struct {
	CachePolicies    []binder.CachePolicy    `json:"cache_policies,omitempty"`
	RetryPolicies    []binder.RetryPolicy    `json:"retry_policies,omitempty"`
	RateLimiters     []string                `json:"rate_limiters,omitempty"`
	SecurityPolicies []binder.SecurityPolicy `json:"security_policies,omitempty"`
	Attachments      []policyAttachment      `json:"attachments,omitempty"`
}

func handlePolicies(_ context.Context, _ *mcp.CallToolRequest, input policiesInput) (*mcp.CallToolResult, policiesOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), policiesOutput{}, nil
	}
	set, err := binder.Bind(doc)
	if err != nil {
		return errResult(err), policiesOutput{}, nil
	}

	output := policiesOutput{
		CachePolicies:    set.CachePolicies,
		RetryPolicies:    set.RetryPolicies,
		RateLimiters:     set.RateLimiters,
		SecurityPolicies: set.SecurityPolicies,
	}
	for _, h := range set.Handlers {
		if h.CachePolicy == "" && h.RetryPolicy == "" && h.RateLimitPolicy == "" {
			continue
		}
		output.Attachments = append(output.Attachments, policyAttachment{
			Handler:   h.Name,
			Cache:     h.CachePolicy,
			Retry:     h.RetryPolicy,
			RateLimit: h.RateLimitPolicy,
		})
	}
	return nil, output, nil
}
