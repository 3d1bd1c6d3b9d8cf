package facet

import (
	"maps"
	"slices"
	"strings"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/types"
)

// KeyField is an inverted index from a string value to the ids of the
// products carrying it. One KeyField exists per filterable dimension.
type KeyField struct {
	Name string
	Keys map[string]types.IdList
}

func NewKeyField(name string) *KeyField {
	return &KeyField{
		Name: name,
		Keys: map[string]types.IdList{},
	}
}

func (f *KeyField) Add(value string, id uint) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if ids, ok := f.Keys[value]; ok {
		ids.Add(id)
	} else {
		f.Keys[value] = types.IdList{id: struct{}{}}
	}
}

func (f *KeyField) Remove(value string, id uint) {
	if ids, ok := f.Keys[value]; ok {
		delete(ids, id)
		if len(ids) == 0 {
			delete(f.Keys, value)
		}
	}
}

// Match returns the union of ids linked to any of the requested values.
// A nil return means the dimension is unconstrained.
func (f *KeyField) Match(values []string) types.IdList {
	if len(values) == 0 {
		return nil
	}
	ret := types.IdList{}
	for _, value := range values {
		if ids, ok := f.Keys[value]; ok {
			ret.Merge(ids)
		}
	}
	return ret
}

// ValuesIn lists the distinct values still present inside the given id set,
// sorted for deterministic responses.
func (f *KeyField) ValuesIn(ids types.IdList) []string {
	ret := make([]string, 0, len(f.Keys))
	for value, linked := range f.Keys {
		if ids == nil {
			if len(linked) > 0 {
				ret = append(ret, value)
			}
			continue
		}
		if linked.IntersectionLen(ids) > 0 {
			ret = append(ret, value)
		}
	}
	slices.Sort(ret)
	return ret
}

func (f *KeyField) Values() []string {
	ret := slices.Collect(maps.Keys(f.Keys))
	slices.Sort(ret)
	return ret
}

func (f *KeyField) Len() int {
	return len(f.Keys)
}
