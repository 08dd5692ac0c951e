package sorting

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/theplant/animefilter/expression"
)

// Marshal encodes the chain as [{"Selector":{...},"Descending":true}].
// An empty chain encodes as null.
func Marshal(c Criteria) ([]byte, error) {
	if len(c) == 0 {
		return []byte("null"), nil
	}
	doc := []byte("[]")
	for i, key := range c {
		selector, err := expression.Marshal(key.Selector)
		if err != nil {
			return nil, errors.Wrapf(err, "sort key %d", i)
		}
		item, err := sjson.SetRawBytes([]byte("{}"), "Selector", selector)
		if err != nil {
			return nil, errors.Wrapf(err, "sort key %d", i)
		}
		item, err = sjson.SetBytes(item, "Descending", key.Descending)
		if err != nil {
			return nil, errors.Wrapf(err, "sort key %d", i)
		}
		doc, err = sjson.SetRawBytes(doc, "-1", item)
		if err != nil {
			return nil, errors.Wrapf(err, "sort key %d", i)
		}
	}
	return doc, nil
}

// Unmarshal decodes a chain written by Marshal.
func Unmarshal(data []byte) (Criteria, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid sort document")
	}
	doc := gjson.ParseBytes(data)
	if doc.Type == gjson.Null {
		return nil, nil
	}
	if !doc.IsArray() {
		return nil, errors.Errorf("sort document must be an array, got %s", doc.Type)
	}

	var (
		c   Criteria
		err error
	)
	doc.ForEach(func(_, item gjson.Result) bool {
		idx := len(c)
		var selector expression.Expression
		selector, err = expression.Unmarshal([]byte(item.Get("Selector").Raw))
		if err != nil {
			err = errors.Wrapf(err, "sort key %d", idx)
			return false
		}
		if selector == nil {
			err = errors.Errorf("sort key %d has no selector", idx)
			return false
		}
		c = append(c, Key{Selector: selector, Descending: item.Get("Descending").Bool()})
		return true
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
