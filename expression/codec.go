package expression

import (
	"reflect"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// TagKey is the struct tag key read by the codec. Child fields carry
// `filter:"-"` and are encoded as nested documents instead.
const TagKey = "filter"

// TypeKey is the discriminant key of a node document.
const TypeKey = "Type"

// use struct field name as key and force emit empty
var jsoniterForExpression = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	TagKey:                 TagKey,
}.Froze()

// Marshal encodes e as a tagged-union document. A nil expression encodes as null.
func Marshal(e Expression) ([]byte, error) {
	if e == nil {
		return []byte("null"), nil
	}
	nt := lookup(e)

	doc, err := sjson.SetBytes([]byte("{}"), TypeKey, string(e.Kind()))
	if err != nil {
		return nil, errors.Wrapf(err, "set %s discriminant", e.Kind())
	}

	params, err := jsoniterForExpression.Marshal(e)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal %s parameters", e.Kind())
	}
	gjson.ParseBytes(params).ForEach(func(key, value gjson.Result) bool {
		doc, err = sjson.SetRawBytes(doc, key.String(), []byte(value.Raw))
		return err == nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "set %s parameters", e.Kind())
	}

	v := reflect.ValueOf(e)
	for _, idx := range nt.children {
		name := nt.typ.Field(idx).Name
		child, _ := v.Field(idx).Interface().(Expression)
		childDoc, err := Marshal(child)
		if err != nil {
			return nil, errors.Wrapf(err, "%s.%s", e.Kind(), name)
		}
		doc, err = sjson.SetRawBytes(doc, name, childDoc)
		if err != nil {
			return nil, errors.Wrapf(err, "set %s.%s", e.Kind(), name)
		}
	}
	return doc, nil
}

// Unmarshal decodes a tagged-union document. null decodes to a nil expression.
func Unmarshal(data []byte) (Expression, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid expression document")
	}
	return unmarshal(gjson.ParseBytes(data))
}

// UnmarshalBool decodes a document whose root must be a boolean expression.
func UnmarshalBool(data []byte) (Bool, error) {
	e, err := Unmarshal(data)
	if err != nil || e == nil {
		return nil, err
	}
	b, ok := e.(Bool)
	if !ok {
		return nil, errors.Errorf("root %s is not a boolean expression", e.Kind())
	}
	return b, nil
}

func unmarshal(doc gjson.Result) (Expression, error) {
	if doc.Type == gjson.Null {
		return nil, nil
	}
	if !doc.IsObject() {
		return nil, errors.Errorf("expression document must be an object, got %s", doc.Type)
	}
	kind := Kind(doc.Get(TypeKey).String())
	nt, ok := nodeTypesByKind[kind]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownKind, "%q", kind)
	}

	ptr := reflect.New(nt.typ)
	if err := jsoniterForExpression.UnmarshalFromString(doc.Raw, ptr.Interface()); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s parameters", kind)
	}
	for _, idx := range nt.children {
		field := nt.typ.Field(idx)
		raw := doc.Get(field.Name)
		if !raw.Exists() || raw.Type == gjson.Null {
			return nil, errors.Errorf("%s.%s is missing", kind, field.Name)
		}
		child, err := unmarshal(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "%s.%s", kind, field.Name)
		}
		cv := reflect.ValueOf(child)
		if !cv.Type().Implements(field.Type) {
			return nil, errors.Errorf("%s.%s expects a %s expression, got %s", kind, field.Name, resultTypes[field.Type], child.Kind())
		}
		ptr.Elem().Field(idx).Set(cv)
	}
	return ptr.Elem().Interface().(Expression), nil
}
