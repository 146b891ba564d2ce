package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasbind/binder"
)

type describeInput struct {
	Spec              specInput `json:"spec"                         jsonschema:"The API description document to bind"`
	IncludeDeprecated bool      `json:"include_deprecated,omitempty" jsonschema:"Bind deprecated schemas and operations instead of skipping them"`
}

type describeSchema struct {
	Name       string `json:"name"`
	RawName    string `json:"raw_name,omitempty"`
	Kind       string `json:"kind"`
	Properties int    `json:"properties,omitempty"`
	Members    int    `json:"members,omitempty"`
	Nested     int    `json:"nested,omitempty"`
}

type describeHandler struct {
	Name       string `json:"name"`
	Method     string `json:"method"`
	Path       string `json:"path"`
	Parameters int    `json:"parameters,omitempty"`
	HasBody    bool   `json:"has_body,omitempty"`
	BodyIsFile bool   `json:"body_is_file,omitempty"`
	ResultType string `json:"result_type,omitempty"`
}

type describeUnion struct {
	BaseType              string `json:"base_type"`
	DiscriminatorProperty string `json:"discriminator_property,omitempty"`
	Explicit              bool   `json:"explicit,omitempty"`
	CustomConverter       bool   `json:"custom_converter,omitempty"`
	Variants              int    `json:"variants"`
}

type describeOutput struct {
	Schemas  []describeSchema  `json:"schemas,omitempty"`
	Handlers []describeHandler `json:"handlers,omitempty"`
	Unions   []describeUnion   `json:"unions,omitempty"`
	Issues   []string          `json:"issues,omitempty"`
	Warnings int               `json:"warnings,omitempty"`
	Success  bool              `json:"success"`
}

func handleDescribe(_ context.Context, _ *mcp.CallToolRequest, input describeInput) (*mcp.CallToolResult, describeOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), describeOutput{}, nil
	}

	var opts []binder.Option
	if input.IncludeDeprecated {
		opts = append(opts, binder.WithIncludeDeprecated())
	}
	set, err := binder.Bind(doc, opts...)
	if err != nil {
		return errResult(err), describeOutput{}, nil
	}

	output := describeOutput{
		Warnings: set.WarningCount,
		Success:  set.Success,
	}
	for _, s := range set.Schemas {
		output.Schemas = append(output.Schemas, describeSchema{
			Name:       s.Name,
			RawName:    s.RawName,
			Kind:       s.Kind.String(),
			Properties: len(s.Properties),
			Members:    len(s.Members),
			Nested:     len(s.Nested),
		})
	}
	for _, h := range set.Handlers {
		output.Handlers = append(output.Handlers, describeHandler{
			Name:       h.Name,
			Method:     h.Method,
			Path:       h.Path,
			Parameters: len(h.Parameters),
			HasBody:    h.HasBody,
			BodyIsFile: h.BodyIsFile,
			ResultType: h.ResultType.String(),
		})
	}
	for _, u := range set.Unions {
		output.Unions = append(output.Unions, describeUnion{
			BaseType:              u.BaseType,
			DiscriminatorProperty: u.DiscriminatorProperty,
			Explicit:              u.IsDiscriminatorExplicit,
			CustomConverter:       u.UsesCustomConverter,
			Variants:              len(u.Variants),
		})
	}
	for _, issue := range set.Issues {
		output.Issues = append(output.Issues, issue.String())
	}
	return nil, output, nil
}
