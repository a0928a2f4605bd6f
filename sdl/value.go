package sdl

import (
	"encoding/json"
	"reflect"
	"sort"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/ccbrown/schema-fu/graphql/schema"
)

var valueJSON = jsoniter.Config{
	UseNumber:   true,
	SortMapKeys: true,
	TagKey:      "graphql",
}.Froze()

// Value converts a Go value to a GraphQL literal of the given type. The value is first normalized
// through JSON, so anything that marshals to JSON can be converted. Strings given for enum types
// become enum values. The type may be nil, in which case the literal's kind is inferred.
func Value(v interface{}, t schema.Type) (*ast.Value, error) {
	if isNull(v) {
		return nullValue(), nil
	}
	buf, err := valueJSON.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "error marshaling value")
	}
	var normalized interface{}
	if err := valueJSON.Unmarshal(buf, &normalized); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling value")
	}
	return literal(normalized, t), nil
}

func isNull(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

func nullValue() *ast.Value {
	return &ast.Value{
		Kind: ast.NullValue,
		Raw:  "null",
	}
}

func literal(v interface{}, t schema.Type) *ast.Value {
	t = schema.UnwrapNonNull(t)

	if list, ok := t.(*schema.ListType); ok {
		if _, ok := v.([]interface{}); !ok && v != nil {
			// a single item is coerced to a list of one
			return literal(v, list.Type)
		}
	}

	switch v := v.(type) {
	case nil:
		return nullValue()
	case []interface{}:
		var elem schema.Type
		if list, ok := t.(*schema.ListType); ok {
			elem = list.Type
		}
		ret := &ast.Value{
			Kind: ast.ListValue,
		}
		for _, item := range v {
			ret.Children = append(ret.Children, &ast.ChildValue{
				Value: literal(item, elem),
			})
		}
		return ret
	case map[string]interface{}:
		ret := &ast.Value{
			Kind: ast.ObjectValue,
		}
		for _, name := range objectKeys(v, t) {
			var fieldType schema.Type
			if obj, ok := t.(*schema.InputObjectType); ok {
				if f := obj.Field(name); f != nil {
					fieldType = f.Type
				}
			}
			ret.Children = append(ret.Children, &ast.ChildValue{
				Name:  name,
				Value: literal(v[name], fieldType),
			})
		}
		return ret
	case bool:
		return &ast.Value{
			Kind: ast.BooleanValue,
			Raw:  strconv.FormatBool(v),
		}
	case json.Number:
		kind := ast.IntValue
		if strings.ContainsAny(string(v), ".eE") {
			kind = ast.FloatValue
		}
		return &ast.Value{
			Kind: kind,
			Raw:  string(v),
		}
	case string:
		if schema.IsEnumType(t) {
			return &ast.Value{
				Kind: ast.EnumValue,
				Raw:  v,
			}
		}
		return &ast.Value{
			Kind: ast.StringValue,
			Raw:  v,
		}
	}
	return nullValue()
}

// objectKeys orders the keys of an object by the input object's fields, falling back to sorted
// order for anything the type doesn't define.
func objectKeys(v map[string]interface{}, t schema.Type) []string {
	var ret []string
	seen := map[string]struct{}{}
	if obj, ok := t.(*schema.InputObjectType); ok {
		for _, f := range obj.Fields {
			if _, ok := v[f.Name]; ok {
				ret = append(ret, f.Name)
				seen[f.Name] = struct{}{}
			}
		}
	}
	var rest []string
	for name := range v {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(ret, rest...)
}
