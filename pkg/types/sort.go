package types

// Sort is the price sort order. The wire literals are "asc" and "dsc",
// anything else means unsorted.
type Sort string

const (
	SortNone       Sort = ""
	SortAscending  Sort = "asc"
	SortDescending Sort = "dsc"
)

func ParseSort(value string) Sort {
	switch value {
	case "asc":
		return SortAscending
	case "dsc":
		return SortDescending
	}
	return SortNone
}
