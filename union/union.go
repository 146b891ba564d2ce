// Package union provides ordered try-parse decoding for polymorphic types
// that carry no discriminator property. Decoding attempts each candidate
// variant in order with strict field matching, so a payload only binds to a
// variant whose shape it matches exactly.
package union

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Errors collects the per-variant decode failures of an exhausted try-parse.
type Errors []error

// Error joins the variant failures into one message, in attempt order.
func (e Errors) Error() string {
	if len(e) == 0 {
		return "no variants to decode"
	}
	var sb strings.Builder
	sb.WriteString("no variant matched payload:")
	for i, err := range e {
		fmt.Fprintf(&sb, " [%d] %v;", i, err)
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// DecodeFirst decodes data into the first target that accepts it and returns
// that target's index. Targets must be pointers; unknown fields fail a target
// so later, more permissive variants still get their turn in declared order.
// When every target fails, the returned error is an Errors value carrying one
// entry per target.
func DecodeFirst(data []byte, targets ...any) (int, error) {
	failures := make(Errors, 0, len(targets))
	for i, target := range targets {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(target); err != nil {
			failures = append(failures, err)
			continue
		}
		return i, nil
	}
	return -1, failures
}
