package spritelayer

// SortKey orders objects inside the y-sort. The convention is fixed: a larger
// up-axis value produces a smaller key, so ascending key order is descending
// position order and objects higher up are drawn first.
//
// Equal positions produce equal keys; ties are left to the sorter. NaN and
// missing positions use the key of position 0.
type SortKey struct {
	v float32
}

// NewSortKey builds the key for an up-axis position.
func NewSortKey(y float32) SortKey {
	if y != y {
		y = 0
	}
	// -0 and 0 compare equal below, so no normalisation is needed.
	return SortKey{v: -y}
}

// MissingSortKey is the key used for objects without a position.
func MissingSortKey() SortKey {
	return NewSortKey(0)
}

// Compare returns -1, 0 or +1.
func (k SortKey) Compare(o SortKey) int {
	switch {
	case k.v < o.v:
		return -1
	case k.v > o.v:
		return 1
	default:
		return 0
	}
}

func (k SortKey) Less(o SortKey) bool {
	return k.v < o.v
}
