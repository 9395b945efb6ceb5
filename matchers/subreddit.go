package matchers

import "strings"

// SubredditFilter restricts matching to an include list and always honors
// the exclude list. An empty include list allows everything not excluded.
type SubredditFilter struct {
	Include []string
	Exclude []string
}

func (f SubredditFilter) Matches(subreddit string) bool {
	for _, excluded := range f.Exclude {
		if strings.EqualFold(excluded, subreddit) {
			return false
		}
	}

	if len(f.Include) == 0 {
		return true
	}

	for _, included := range f.Include {
		if strings.EqualFold(included, subreddit) {
			return true
		}
	}

	return false
}
