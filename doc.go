// Package oasbind turns parsed OpenAPI 3.x documents into typed code-generation
// descriptors: schema classifications, conflict-free type references, polymorphic
// union configurations, cascading cross-cutting policy configurations, and
// per-operation handler descriptors.
//
// oasbind is the semantic half of a code generator. It decides, for every schema
// and operation, what kind of artifact should be generated, what its name and
// shape are, and which cross-cutting policies (caching, retry, rate limiting,
// security) apply. It never renders target-language source text; that belongs to
// an emission layer consuming the descriptor values this module produces.
//
// # Overview
//
// The library consists of three primary packages:
//
//   - spec: The in-memory OpenAPI document model, YAML/JSON loading, and local
//     $ref resolution
//   - binder: The classification, type-resolution, polymorphic-analysis, and
//     policy-cascade engine producing a DescriptorSet
//   - union: Runtime support for ordered try-each-variant decoding of unions
//     that carry no discriminator
//
// # Quick Start
//
// Bind a specification to descriptors:
//
//	import (
//		"github.com/erraggy/oasbind/binder"
//		"github.com/erraggy/oasbind/spec"
//	)
//
//	doc, err := spec.Load("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	set, err := binder.Bind(doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("schemas: %d, handlers: %d\n", len(set.Schemas), len(set.Handlers))
//
// Every descriptor in the returned DescriptorSet is an immutable value: the
// input document is never mutated, and re-binding the same document yields
// identical output.
//
// # Policy Cascade
//
// Cross-cutting behavior is declared with x- extension keys at document, path,
// or operation level. Each policy field resolves independently from the most
// specific level that declares it, falling back upward:
//
//	x-cache-policy: catalog      # name a cache policy
//	x-cache-expiration: 300      # document-level default
//	paths:
//	  /products:
//	    x-cache-expiration: 60   # overrides for this path
//	    get:
//	      x-cache-tags: [hot]    # operation-level field, expiration still 60
//
// Tag-style fields are unioned across levels rather than overridden.
//
// # Error Handling
//
// Failures are synchronous and fail-fast: an unresolvable $ref or a nil input
// document halts the whole run. Structured error types in the binderrors
// package support errors.Is and errors.As. A document with nothing to emit is
// not an error; it produces an empty DescriptorSet.
//
// # Command-Line Interface
//
// A thin CLI wraps the engine for inspection and tooling integration:
//
//	# Dump descriptors for a spec
//	oasbind describe openapi.yaml
//
//	# Run the MCP stdio server
//	oasbind mcp
//
// Install the CLI:
//
//	go install github.com/erraggy/oasbind/cmd/oasbind@latest
package oasbind
