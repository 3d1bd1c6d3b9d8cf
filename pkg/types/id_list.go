package types

type IdList map[uint]struct{}

var empty = struct{}{}

func (r IdList) Add(id uint) {
	r[id] = empty
}

func (r IdList) Has(id uint) bool {
	_, ok := r[id]
	return ok
}

func (r IdList) Merge(other IdList) {
	for id := range other {
		r[id] = empty
	}
}

func (r IdList) Intersect(other IdList) {
	for id := range r {
		if _, ok := other[id]; !ok {
			delete(r, id)
		}
	}
}

func (r IdList) IntersectionLen(other IdList) int {
	small, large := r, other
	if len(large) < len(small) {
		small, large = large, small
	}
	count := 0
	for id := range small {
		if _, ok := large[id]; ok {
			count++
		}
	}
	return count
}
