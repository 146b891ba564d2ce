package binder

import (
	"sort"
	"strings"

	"github.com/erraggy/oasbind/internal/maputil"
	"github.com/erraggy/oasbind/internal/naming"
	"github.com/erraggy/oasbind/spec"
)

// bindOperations builds a HandlerDescriptor per operation, walking paths in
// lexicographic order and methods in a fixed order so output is stable.
func (b *binding) bindOperations() error {
	takenNames := make(map[string]bool)

	for _, path := range b.doc.Paths.SortedPaths() {
		item := b.doc.Paths[path]
		if item == nil {
			continue
		}
		for _, mo := range item.Operations() {
			op := mo.Operation
			if op.Deprecated && !b.cfg.includeDeprecated {
				b.addIssue(mo.Method+" "+path, "deprecated operation skipped", SeverityInfo)
				continue
			}
			handler, err := b.buildHandler(path, mo.Method, item, op, takenNames)
			if err != nil {
				return err
			}
			b.set.Handlers = append(b.set.Handlers, handler)
		}
	}
	return nil
}

func (b *binding) buildHandler(path, method string, item *spec.PathItem, op *spec.Operation, takenNames map[string]bool) (HandlerDescriptor, error) {
	name := naming.Dedupe(handlerName(op.OperationID, method, path), takenNames)
	takenNames[name] = true

	handler := HandlerDescriptor{
		Name:              name,
		Path:              path,
		Method:            method,
		Summary:           op.Summary,
		ParameterTypeName: name + "Params",
		Deprecated:        op.Deprecated,
	}
	b.logger.Debug("binding operation", "method", method, "path", path, "handler", name)

	params, err := b.buildParameters(name, item, op)
	if err != nil {
		return HandlerDescriptor{}, err
	}
	handler.Parameters = params

	if err := b.buildBody(&handler, op); err != nil {
		return HandlerDescriptor{}, err
	}
	if err := b.buildResult(&handler, path, method, op); err != nil {
		return HandlerDescriptor{}, err
	}

	if policy, ok := b.policies.cachePolicy(op, item); ok {
		handler.CachePolicy = policy
	}
	if policy, ok := b.policies.retryPolicy(op, item); ok {
		handler.RetryPolicy = policy
	}
	if policy, ok := b.policies.rateLimitPolicy(op); ok {
		handler.RateLimitPolicy = policy
	}

	// An operation-level security list overrides the document default, even
	// when empty (an explicit opt-out).
	reqs := b.doc.Security
	if op.Security != nil {
		reqs = op.Security
	}
	handler.Security = b.security.requirements(reqs)

	return handler, nil
}

// buildParameters merges path-level and operation-level parameters (operation
// wins on name and location), resolves each to a descriptor, and orders the
// result required-before-optional, defaultless-before-defaulted, with
// declaration order preserved within each group.
func (b *binding) buildParameters(handlerName string, item *spec.PathItem, op *spec.Operation) ([]ParameterDescriptor, error) {
	merged, err := b.mergeParameters(item, op)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool)
	descriptors := make([]ParameterDescriptor, 0, len(merged))
	for _, param := range merged {
		desc, err := b.buildParameter(handlerName, param, taken)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, desc)
	}

	sort.SliceStable(descriptors, func(i, j int) bool {
		if descriptors[i].Required != descriptors[j].Required {
			return descriptors[i].Required
		}
		return !descriptors[i].HasDefault && descriptors[j].HasDefault
	})
	return descriptors, nil
}

func (b *binding) mergeParameters(item *spec.PathItem, op *spec.Operation) ([]*spec.Parameter, error) {
	type key struct{ name, in string }

	var merged []*spec.Parameter
	index := make(map[key]int)

	add := func(params []*spec.Parameter) error {
		for _, param := range params {
			resolved, err := b.doc.DerefParameter(param)
			if err != nil {
				return err
			}
			if resolved == nil {
				continue
			}
			k := key{resolved.Name, resolved.In}
			if i, ok := index[k]; ok {
				merged[i] = resolved
				continue
			}
			index[k] = len(merged)
			merged = append(merged, resolved)
		}
		return nil
	}

	if item != nil {
		if err := add(item.Parameters); err != nil {
			return nil, err
		}
	}
	if err := add(op.Parameters); err != nil {
		return nil, err
	}
	return merged, nil
}

func (b *binding) buildParameter(handlerName string, param *spec.Parameter, taken map[string]bool) (ParameterDescriptor, error) {
	required := param.Required || param.In == string(LocationPath)

	wireName := param.Name
	displayName := wireName
	if alias, ok := spec.StringExt(param.Extra, extName); ok && alias != "" {
		displayName = alias
	} else if param.In == string(LocationHeader) {
		displayName = strings.TrimPrefix(strings.TrimPrefix(wireName, "X-"), "x-")
	}
	paramName := naming.Dedupe(naming.SanitizeParamName(displayName), taken)
	taken[paramName] = true

	var nested []SchemaNode
	ref, err := b.typeRef(param.Schema, required, handlerName+naming.ToPascalCase(displayName), &nested)
	if err != nil {
		return ParameterDescriptor{}, err
	}
	b.promoteInline(nested)

	desc := ParameterDescriptor{
		RawName:     wireName,
		Name:        paramName,
		Location:    ParameterLocation(param.In),
		Type:        ref,
		Required:    required,
		Deprecated:  param.Deprecated,
		Description: param.Description,
	}
	// A default on a required parameter is meaningless for positional
	// targets; the argument is always supplied. Only optional parameters
	// carry one, which keeps the ordering invariant (no defaultless
	// parameter after a defaulted one) intact.
	if !required && param.Schema != nil && param.Schema.Default != nil {
		desc.HasDefault = true
		desc.Default = param.Schema.Default
	}
	return desc, nil
}

// buildBody resolves the request body, distinguishing typed payloads from
// raw file uploads (octet-stream and multipart content).
func (b *binding) buildBody(handler *HandlerDescriptor, op *spec.Operation) error {
	if op.RequestBody == nil {
		return nil
	}
	body, err := b.doc.DerefRequestBody(op.RequestBody)
	if err != nil {
		return err
	}
	if body == nil || len(body.Content) == 0 {
		return nil
	}

	handler.HasBody = true
	handler.BodyRequired = body.Required

	for _, mediaType := range maputil.SortedKeys(body.Content) {
		if mediaType == "application/octet-stream" || strings.HasPrefix(mediaType, "multipart/") {
			handler.BodyIsFile = true
			return nil
		}
	}

	media := pickJSONMedia(body.Content)
	if media == nil || media.Schema == nil {
		handler.BodyIsFile = true
		return nil
	}

	var nested []SchemaNode
	ref, err := b.typeRef(media.Schema, body.Required, handler.Name+"Request", &nested)
	if err != nil {
		return err
	}
	b.promoteInline(nested)
	handler.BodyType = &ref
	return nil
}

// buildResult resolves the success response type from the first 2xx response
// in sorted code order, falling back to the default response. Operations
// without a response schema keep a zero result type.
func (b *binding) buildResult(handler *HandlerDescriptor, path, method string, op *spec.Operation) error {
	if op.Responses == nil {
		return nil
	}

	var chosen *spec.Response
	for _, code := range op.Responses.SortedCodes() {
		if !strings.HasPrefix(code, "2") {
			continue
		}
		resolved, err := b.doc.DerefResponse(op.Responses.Codes[code])
		if err != nil {
			return err
		}
		if resolved != nil && len(resolved.Content) > 0 {
			chosen = resolved
			break
		}
	}
	if chosen == nil && op.Responses.Default != nil {
		resolved, err := b.doc.DerefResponse(op.Responses.Default)
		if err != nil {
			return err
		}
		chosen = resolved
	}
	if chosen == nil || len(chosen.Content) == 0 {
		return nil
	}

	media := pickJSONMedia(chosen.Content)
	if media == nil || media.Schema == nil {
		b.addIssue(method+" "+path, "success response has no decodable schema", SeverityInfo)
		return nil
	}

	var nested []SchemaNode
	ref, err := b.typeRef(media.Schema, true, handler.Name+"Result", &nested)
	if err != nil {
		return err
	}
	b.promoteInline(nested)
	handler.ResultType = ref
	return nil
}

// pickJSONMedia selects the media type to bind: exact application/json first,
// then any JSON-flavored type, then the first by sorted name.
func pickJSONMedia(content map[string]*spec.MediaType) *spec.MediaType {
	if media, ok := content["application/json"]; ok {
		return media
	}
	keys := maputil.SortedKeys(content)
	for _, key := range keys {
		if strings.Contains(key, "json") {
			return content[key]
		}
	}
	if len(keys) > 0 {
		return content[keys[0]]
	}
	return nil
}

// promoteInline moves types promoted from request or response positions into
// the top-level schema list, reclassifying anonymous objects as inline
// records since they did not come from the shared schema collection.
func (b *binding) promoteInline(nested []SchemaNode) {
	for _, node := range nested {
		if node.Kind == KindObject {
			node.Kind = KindInlineRecord
		}
		b.set.Schemas = append(b.set.Schemas, node)
	}
}

// handlerName derives the generated method name: the operationId when the
// document declares one, otherwise the method plus the path with template
// segments turned into "By" clauses ("GET /pets/{petId}" becomes
// "GetPetsByPetId").
func handlerName(operationID, method, path string) string {
	if operationID != "" {
		return naming.ToPascalCase(operationID)
	}
	cleaned := strings.ReplaceAll(path, "{", "by ")
	cleaned = strings.ReplaceAll(cleaned, "}", "")
	return naming.ToPascalCase(strings.ToLower(method) + " " + cleaned)
}
