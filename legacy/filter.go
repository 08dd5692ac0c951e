package legacy

import (
	"github.com/pkg/errors"

	"github.com/theplant/animefilter"
	"github.com/theplant/animefilter/expression"
)

// BaseCondition tells whether the conditions select or reject entities.
type BaseCondition int

const (
	BaseConditionInclude BaseCondition = 1
	BaseConditionExclude BaseCondition = 2
)

// Filter is a complete legacy filter definition.
type Filter struct {
	ID            int           `mapstructure:"GroupFilterID" json:"GroupFilterID" yaml:"GroupFilterID"`
	Name          string        `mapstructure:"GroupFilterName" json:"GroupFilterName" yaml:"GroupFilterName"`
	Conditions    []Condition   `mapstructure:"Conditions" json:"Conditions" yaml:"Conditions"`
	BaseCondition BaseCondition `mapstructure:"BaseCondition" json:"BaseCondition" yaml:"BaseCondition"`
	ApplyToSeries bool          `mapstructure:"ApplyToSeries" json:"ApplyToSeries" yaml:"ApplyToSeries"`
	// Sorting is the stored sort string, see ParseSorting.
	Sorting   string `mapstructure:"SortingCriteria" json:"SortingCriteria" yaml:"SortingCriteria"`
	Invisible bool   `mapstructure:"InvisibleInClients" json:"InvisibleInClients" yaml:"InvisibleInClients"`
	Locked    bool   `mapstructure:"Locked" json:"Locked" yaml:"Locked"`
	Directory bool   `mapstructure:"IsDirectory" json:"IsDirectory" yaml:"IsDirectory"`
	ParentID  *int   `mapstructure:"ParentGroupFilterID" json:"ParentGroupFilterID" yaml:"ParentGroupFilterID"`
}

// ConvertFilter converts a legacy filter into a preset. An excluding base
// condition negates the whole conjunction.
func ConvertFilter(f Filter, suppressErrors bool) (*animefilter.Preset, error) {
	expr, err := ConvertConditions(f.Conditions, suppressErrors)
	if err != nil {
		return nil, errors.Wrapf(err, "filter %d", f.ID)
	}
	if f.BaseCondition == BaseConditionExclude && expr != nil {
		expr = expression.Not{Expression: expr}
	}

	keys, err := ParseSorting(f.Sorting)
	if err != nil {
		return nil, errors.Wrapf(err, "filter %d", f.ID)
	}
	criteria, err := ConvertSorting(keys)
	if err != nil {
		return nil, errors.Wrapf(err, "filter %d", f.ID)
	}

	return &animefilter.Preset{
		ID:                 f.ID,
		Name:               f.Name,
		Expression:         expr,
		Sorting:            criteria,
		ApplyAtSeriesLevel: f.ApplyToSeries,
		Hidden:             f.Invisible,
		Locked:             f.Locked,
		Directory:          f.Directory,
		ParentID:           f.ParentID,
	}, nil
}
