package legacy

import (
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// enumHook lets documents spell enums as numbers, numeric strings or names.
func enumHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	switch to {
	case reflect.TypeOf(ConditionType(0)):
		return ParseConditionType(s)
	case reflect.TypeOf(Operator(0)):
		return ParseOperator(s)
	case reflect.TypeOf(BaseCondition(0)):
		switch s {
		case "Include", "include":
			return BaseConditionInclude, nil
		case "Exclude", "exclude":
			return BaseConditionExclude, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, errors.Errorf("unknown base condition %q", s)
		}
		return BaseCondition(n), nil
	}
	return data, nil
}

func decode(input, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(enumHook),
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return errors.Wrap(err, "new decoder")
	}
	return decoder.Decode(input)
}

// DecodeConditions decodes loosely typed condition documents, as read from
// JSON or YAML, into conditions.
func DecodeConditions(docs []map[string]any) ([]Condition, error) {
	var conditions []Condition
	if err := decode(docs, &conditions); err != nil {
		return nil, errors.Wrap(err, "decode conditions")
	}
	return conditions, nil
}

// DecodeFilter decodes a loosely typed filter document.
func DecodeFilter(doc map[string]any) (*Filter, error) {
	var f Filter
	if err := decode(doc, &f); err != nil {
		return nil, errors.Wrap(err, "decode filter")
	}
	return &f, nil
}
