package mcpserver

import (
	"fmt"

	"github.com/erraggy/oasbind/spec"
)

// specInput represents the two ways a document can be provided to a tool.
// Exactly one of File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an API description file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline API description content (JSON or YAML)"`
}

// resolve loads the document from whichever source the input provides.
func (in specInput) resolve() (*spec.Document, error) {
	switch {
	case in.File != "" && in.Content != "":
		return nil, fmt.Errorf("provide either file or content, not both")
	case in.File != "":
		return spec.Load(in.File)
	case in.Content != "":
		return spec.LoadBytes([]byte(in.Content))
	default:
		return nil, fmt.Errorf("no document provided: set file or content")
	}
}
