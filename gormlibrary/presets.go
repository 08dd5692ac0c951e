package gormlibrary

import (
	"context"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/theplant/animefilter"
	"github.com/theplant/animefilter/expression"
	"github.com/theplant/animefilter/sorting"
)

// PresetStore persists presets in the filter_presets table.
type PresetStore struct {
	db *gorm.DB
}

func NewPresetStore(db *gorm.DB) *PresetStore {
	return &PresetStore{db: db}
}

func toModel(p *animefilter.Preset) (*FilterPreset, error) {
	expr, err := expression.Marshal(p.Expression)
	if err != nil {
		return nil, errors.Wrap(err, "marshal expression")
	}
	sort, err := sorting.Marshal(p.Sorting)
	if err != nil {
		return nil, errors.Wrap(err, "marshal sorting")
	}
	return &FilterPreset{
		ID:                 uint(p.ID),
		ParentID:           animefilter.PtrAs[int, uint](p.ParentID),
		Name:               p.Name,
		Expression:         datatypes.JSON(expr),
		Sorting:            datatypes.JSON(sort),
		ApplyAtSeriesLevel: p.ApplyAtSeriesLevel,
		Hidden:             p.Hidden,
		Locked:             p.Locked,
		Directory:          p.Directory,
	}, nil
}

func fromModel(m *FilterPreset) (*animefilter.Preset, error) {
	p := &animefilter.Preset{
		ID:                 int(m.ID),
		ParentID:           animefilter.PtrAs[uint, int](m.ParentID),
		Name:               m.Name,
		ApplyAtSeriesLevel: m.ApplyAtSeriesLevel,
		Hidden:             m.Hidden,
		Locked:             m.Locked,
		Directory:          m.Directory,
	}
	if len(m.Expression) > 0 {
		expr, err := expression.UnmarshalBool(m.Expression)
		if err != nil {
			return nil, errors.Wrapf(err, "preset %d: unmarshal expression", m.ID)
		}
		p.Expression = expr
	}
	if len(m.Sorting) > 0 {
		sort, err := sorting.Unmarshal(m.Sorting)
		if err != nil {
			return nil, errors.Wrapf(err, "preset %d: unmarshal sorting", m.ID)
		}
		p.Sorting = sort
	}
	return p, nil
}

// Save validates and stores p. A zero ID inserts a new row and assigns p.ID.
func (s *PresetStore) Save(ctx context.Context, p *animefilter.Preset) error {
	if err := p.Validate(); err != nil {
		return errors.Wrapf(err, "preset %q", p.Name)
	}
	m, err := toModel(p)
	if err != nil {
		return errors.Wrapf(err, "preset %q", p.Name)
	}
	if err := s.db.WithContext(ctx).Save(m).Error; err != nil {
		return errors.Wrapf(err, "save preset %q", p.Name)
	}
	p.ID = int(m.ID)
	return nil
}

func (s *PresetStore) Get(ctx context.Context, id int) (*animefilter.Preset, error) {
	var m FilterPreset
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, errors.Wrapf(err, "get preset %d", id)
	}
	return fromModel(&m)
}

// FindByName returns the first preset with the given name.
func (s *PresetStore) FindByName(ctx context.Context, name string) (*animefilter.Preset, error) {
	var m FilterPreset
	if err := s.db.WithContext(ctx).Where("name = ?", name).Order("id").First(&m).Error; err != nil {
		return nil, errors.Wrapf(err, "get preset %q", name)
	}
	return fromModel(&m)
}

// List returns every preset ordered by id.
func (s *PresetStore) List(ctx context.Context) ([]*animefilter.Preset, error) {
	var models []*FilterPreset
	if err := s.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "list presets")
	}
	presets := make([]*animefilter.Preset, 0, len(models))
	for _, m := range models {
		p, err := fromModel(m)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, nil
}

// Delete removes a preset. Locked presets are refused.
func (s *PresetStore) Delete(ctx context.Context, id int) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.Locked {
		return errors.Wrapf(ErrLocked, "delete preset %d", id)
	}
	if err := s.db.WithContext(ctx).Delete(&FilterPreset{}, id).Error; err != nil {
		return errors.Wrapf(err, "delete preset %d", id)
	}
	return nil
}

// ErrLocked is returned when modifying a locked preset.
var ErrLocked = errors.New("preset is locked")

// IsNotFound reports whether err wraps gorm.ErrRecordNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Children lists the presets whose parent is the given directory.
func (s *PresetStore) Children(ctx context.Context, parentID int) ([]*animefilter.Preset, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(all, func(p *animefilter.Preset, _ int) bool {
		return p.ParentID != nil && *p.ParentID == parentID
	}), nil
}
