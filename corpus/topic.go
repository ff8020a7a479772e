package corpus

import "strings"

// homeBuyingTitleMarkers are the lowercase title fragments that mark a
// document as home-buying content.
var homeBuyingTitleMarkers = []string{
	"make home buying transparent",
	"home buying",
	"buyer",
	"real estate",
}

// HomeBuyingTopic reports whether title names home-buying content.
// Matching is case-insensitive on title fragments.
func HomeBuyingTopic(title string) bool {
	lower := strings.ToLower(title)
	for _, marker := range homeBuyingTitleMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
