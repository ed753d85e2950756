// Package sorting reorders the record collection in place.
//
// Every sort is stable: records that tie on the key keep their prior relative
// order. Name comparisons ignore case.
package sorting

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/roach88/roster/internal/record"
	"github.com/roach88/roster/internal/textfold"
)

// Key selects the field to sort on.
type Key string

const (
	KeyID   Key = "id"
	KeyName Key = "name"
	KeyAge  Key = "age"
)

// Direction selects ascending or descending order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Keys lists every sort key.
var Keys = []Key{KeyID, KeyName, KeyAge}

// Variant is one key and direction combination.
type Variant struct {
	Key       Key
	Direction Direction
}

func (v Variant) String() string {
	return fmt.Sprintf("%s %s", v.Key, v.Direction)
}

// Variants returns all six key × direction combinations.
func Variants() []Variant {
	var out []Variant
	for _, k := range Keys {
		out = append(out, Variant{k, Ascending}, Variant{k, Descending})
	}
	return out
}

// Sortable is a collection that can be stably reordered in place.
// *store.Store satisfies it.
type Sortable interface {
	SortStableFunc(cmp func(a, b record.Record) int)
}

// SortBy stably reorders st by key in direction.
// Only an unknown key or direction is an error.
func SortBy(st Sortable, key Key, dir Direction) error {
	compare, err := comparator(key)
	if err != nil {
		return err
	}

	switch dir {
	case Ascending:
		st.SortStableFunc(compare)
	case Descending:
		st.SortStableFunc(func(a, b record.Record) int { return compare(b, a) })
	default:
		return fmt.Errorf("unknown sort direction %q", dir)
	}
	return nil
}

// ParseKey converts user input ("id", "Name", ...) into a Key.
func ParseKey(s string) (Key, error) {
	k := Key(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Keys {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q: must be one of id, name, age", s)
}

// ParseDirection accepts asc/ascending and desc/descending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", fmt.Errorf("unknown sort direction %q: must be asc or desc", s)
}

func comparator(key Key) (func(a, b record.Record) int, error) {
	switch key {
	case KeyID:
		return func(a, b record.Record) int { return cmp.Compare(a.ID, b.ID) }, nil
	case KeyName:
		return func(a, b record.Record) int { return textfold.Compare(a.Name, b.Name) }, nil
	case KeyAge:
		return func(a, b record.Record) int { return cmp.Compare(a.Age, b.Age) }, nil
	}
	return nil, fmt.Errorf("unknown sort key %q", key)
}
