package enums

import (
	"fmt"
	"strings"
)

// Sort is a Reddit listing sort. The value is stored on fetched posts
// as their relevance tag.
type Sort string

const (
	SortHot    Sort = "hot"
	SortNew    Sort = "new"
	SortTop    Sort = "top"
	SortRising Sort = "rising"
)

func ParseSort(s string) (Sort, error) {
	switch Sort(strings.ToLower(strings.TrimSpace(s))) {
	case SortHot:
		return SortHot, nil
	case SortNew:
		return SortNew, nil
	case SortTop:
		return SortTop, nil
	case SortRising:
		return SortRising, nil
	}
	return "", fmt.Errorf("invalid sort %q: must be one of hot, new, top, rising", s)
}
