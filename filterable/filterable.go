package filterable

import (
	"fmt"
)

// MissingAttributeError is the panic value raised when an attribute is read
// from a bag whose adapter never supplied it.
type MissingAttributeError struct {
	Attribute string
	User      bool
}

func (e *MissingAttributeError) Error() string {
	if e.User {
		return fmt.Sprintf("filterable: user attribute %s was not supplied", e.Attribute)
	}
	return fmt.Sprintf("filterable: attribute %s was not supplied", e.Attribute)
}

type cell struct {
	compute func() (any, error)
	value   any
	err     error
	done    bool
}

// bag is not safe for concurrent use. One evaluation owns one bag.
type bag struct {
	cells map[int]*cell
}

func (b *bag) set(key attributeKey, compute func() (any, error)) {
	if compute == nil {
		panic(fmt.Sprintf("filterable: nil closure for attribute %s", key.name))
	}
	if b.cells == nil {
		b.cells = make(map[int]*cell)
	}
	b.cells[key.id] = &cell{compute: compute}
}

func (b *bag) get(key attributeKey, user bool) (any, error) {
	c, ok := b.cells[key.id]
	if !ok {
		panic(&MissingAttributeError{Attribute: key.name, User: user})
	}
	if !c.done {
		c.value, c.err = c.compute()
		c.done = true
		c.compute = nil
	}
	return c.value, c.err
}

func (b *bag) has(key attributeKey) bool {
	_, ok := b.cells[key.id]
	return ok
}

// Filterable is the memoized fact bag of one series or group.
type Filterable struct {
	ID    int
	facts bag
}

// New returns an empty bag for the entity id. Adapters fill it with Attribute.Set.
func New(id int) *Filterable {
	return &Filterable{ID: id}
}

// Supplies reports whether the adapter registered the attribute.
func Supplies[T any](f *Filterable, attr Attribute[T]) bool {
	return f.facts.has(attr.key)
}

// UserInfo is the memoized fact bag of one entity as seen by one user.
type UserInfo struct {
	ID     int
	UserID int
	facts  bag
}

func NewUserInfo(id, userID int) *UserInfo {
	return &UserInfo{ID: id, UserID: userID}
}

func SuppliesUser[T any](u *UserInfo, attr UserAttribute[T]) bool {
	return u.facts.has(attr.key)
}
