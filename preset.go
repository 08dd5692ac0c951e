package animefilter

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/theplant/animefilter/expression"
	"github.com/theplant/animefilter/sorting"
)

// Preset is a saved filter definition.
type Preset struct {
	ID   int
	Name string
	// Expression selects the entities. A nil expression matches everything.
	Expression expression.Bool
	// Sorting orders the matches. An empty chain sorts by sorting name.
	Sorting sorting.Criteria
	// ApplyAtSeriesLevel evaluates each series instead of each group.
	ApplyAtSeriesLevel bool

	Hidden    bool
	Locked    bool
	Directory bool
	ParentID  *int
}

// IsUserDependent reports whether evaluating the preset needs a user.
func (p *Preset) IsUserDependent() bool {
	return expression.IsUserDependent(p.Expression) || p.Sorting.IsUserDependent()
}

// IsTimeDependent reports whether the preset result changes with the clock.
func (p *Preset) IsTimeDependent() bool {
	return expression.IsTimeDependent(p.Expression) || p.Sorting.IsTimeDependent()
}

// Validate reports malformed expression trees or sort chains.
func (p *Preset) Validate() error {
	if p.Expression != nil {
		if err := expression.Validate(p.Expression); err != nil {
			return errors.Wrap(err, "invalid expression")
		}
	}
	if err := p.Sorting.Validate(); err != nil {
		return errors.Wrap(err, "invalid sorting")
	}
	return nil
}

// MarshalJSON encodes the preset with its expression and sort chain in the
// tagged-union form.
func (p Preset) MarshalJSON() ([]byte, error) {
	expr, err := expression.Marshal(p.Expression)
	if err != nil {
		return nil, errors.Wrap(err, "marshal expression")
	}
	sort, err := sorting.Marshal(p.Sorting)
	if err != nil {
		return nil, errors.Wrap(err, "marshal sorting")
	}

	doc := []byte("{}")
	for _, field := range []struct {
		path  string
		value any
	}{
		{"ID", p.ID},
		{"Name", p.Name},
		{"ApplyAtSeriesLevel", p.ApplyAtSeriesLevel},
		{"Hidden", p.Hidden},
		{"Locked", p.Locked},
		{"Directory", p.Directory},
		{"ParentID", p.ParentID},
	} {
		if doc, err = sjson.SetBytes(doc, field.path, field.value); err != nil {
			return nil, errors.Wrapf(err, "set %s", field.path)
		}
	}
	if doc, err = sjson.SetRawBytes(doc, "Expression", expr); err != nil {
		return nil, errors.Wrap(err, "set Expression")
	}
	if doc, err = sjson.SetRawBytes(doc, "Sorting", sort); err != nil {
		return nil, errors.Wrap(err, "set Sorting")
	}
	return doc, nil
}

// UnmarshalJSON decodes a preset written by MarshalJSON.
func (p *Preset) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errors.New("invalid preset document")
	}
	doc := gjson.ParseBytes(data)

	var out Preset
	if raw := doc.Get("Expression"); raw.Exists() {
		expr, err := expression.UnmarshalBool([]byte(raw.Raw))
		if err != nil {
			return errors.Wrap(err, "unmarshal expression")
		}
		out.Expression = expr
	}
	if raw := doc.Get("Sorting"); raw.Exists() {
		sort, err := sorting.Unmarshal([]byte(raw.Raw))
		if err != nil {
			return errors.Wrap(err, "unmarshal sorting")
		}
		out.Sorting = sort
	}
	out.ID = int(doc.Get("ID").Int())
	out.Name = doc.Get("Name").String()
	out.ApplyAtSeriesLevel = doc.Get("ApplyAtSeriesLevel").Bool()
	out.Hidden = doc.Get("Hidden").Bool()
	out.Locked = doc.Get("Locked").Bool()
	out.Directory = doc.Get("Directory").Bool()
	if parent := doc.Get("ParentID"); parent.Exists() && parent.Type != gjson.Null {
		id := int(parent.Int())
		out.ParentID = &id
	}
	*p = out
	return nil
}
