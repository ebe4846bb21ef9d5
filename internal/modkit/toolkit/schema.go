package toolkit

import (
	"encoding/json"
	"reflect"

	perr "liveness/internal/platform/errors"

	"github.com/invopop/jsonschema"
)

var emptyObjectSchema = json.RawMessage(`{"type":"object"}`)

// inputOf resolves an input prototype to its struct type and rendered schema
// nil yields no type and the empty object schema
func inputOf(proto any) (reflect.Type, json.RawMessage, error) {
	if proto == nil {
		return nil, emptyObjectSchema, nil
	}
	typ := reflect.TypeOf(proto)
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct || typ.Name() == "" {
		return nil, nil, perr.InvalidArgf("tool input must be a named struct, got %s", typ)
	}
	schema, err := SchemaFor(typ)
	if err != nil {
		return nil, nil, err
	}
	return typ, schema, nil
}

// SchemaFor renders the JSON schema of a struct type with definitions inlined
func SchemaFor(typ reflect.Type) (json.RawMessage, error) {
	r := jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
		Anonymous:      true,
	}
	s := r.ReflectFromType(typ)
	// MCP clients expect a bare object schema
	s.Version = ""
	s.ID = ""
	b, err := json.Marshal(s)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "render schema for %s", typ)
	}
	return b, nil
}
