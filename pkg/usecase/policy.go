package usecase

import (
	"fmt"

	"github.com/m-mizutani/approval-checker/pkg/domain/model"
)

// ValidatePolicy checks a decoded policy document against the policy schema
// and converts it. The document must be a mapping; orgs, teams and users must
// be lists of strings and admins must be a boolean when present. Unknown keys
// are ignored.
func ValidatePolicy(doc *model.PolicyDocument) (*model.AuthorizationPolicy, error) {
	var data any
	if doc != nil {
		data = doc.Data
	}

	fields, ok := toMapping(data)
	if !ok {
		return nil, &model.ConfigError{
			Kind: model.ErrKindSchemaViolation,
			Violations: []model.Violation{
				{Reason: fmt.Sprintf("policy must be a mapping, got %s", typeName(data))},
			},
		}
	}

	var (
		policy     model.AuthorizationPolicy
		violations []model.Violation
	)

	for _, list := range []struct {
		key  string
		dest *[]string
	}{
		{key: "orgs", dest: &policy.Orgs},
		{key: "teams", dest: &policy.Teams},
		{key: "users", dest: &policy.Users},
	} {
		v, exists := fields[list.key]
		if !exists {
			continue
		}
		values, vs := stringList(list.key, v)
		violations = append(violations, vs...)
		*list.dest = values
	}

	if v, exists := fields["admins"]; exists {
		b, ok := v.(bool)
		if !ok {
			violations = append(violations, model.Violation{
				Field:  "admins",
				Reason: fmt.Sprintf("must be a boolean, got %s", typeName(v)),
			})
		}
		policy.Admins = b
	}

	if len(violations) > 0 {
		return nil, &model.ConfigError{
			Kind:       model.ErrKindSchemaViolation,
			Violations: violations,
		}
	}

	return &policy, nil
}

func toMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			// Non-string keys cannot be one of the known fields
			if key, ok := k.(string); ok {
				out[key] = val
			}
		}
		return out, true
	}
	return nil, false
}

func stringList(key string, v any) ([]string, []model.Violation) {
	items, ok := v.([]any)
	if !ok {
		return nil, []model.Violation{{
			Field:  key,
			Reason: fmt.Sprintf("must be a list of strings, got %s", typeName(v)),
		}}
	}

	var violations []model.Violation
	values := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			violations = append(violations, model.Violation{
				Field:  fmt.Sprintf("%s[%d]", key, i),
				Reason: fmt.Sprintf("must be a string, got %s", typeName(item)),
			})
			continue
		}
		values = append(values, s)
	}
	return values, violations
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "list"
	case map[string]any, map[any]any:
		return "mapping"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
