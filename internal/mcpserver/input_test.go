package mcpserver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `
openapi: 3.0.3
info:
  title: Sample
  version: 1.0.0
paths:
  /ping:
    get:
      operationId: ping
      responses:
        "204":
          description: pong
`

func TestSpecInputResolveContent(t *testing.T) {
	doc, err := specInput{Content: sampleDoc}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "3.0.3", doc.OpenAPI)
}

func TestSpecInputResolveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	doc, err := specInput{File: path}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "3.0.3", doc.OpenAPI)
}

func TestSpecInputResolveErrors(t *testing.T) {
	_, err := specInput{}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no document provided")

	_, err = specInput{File: "a.yaml", Content: sampleDoc}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not both")
}
