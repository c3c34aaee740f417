package demotests

import (
	"regexp"
	"strings"

	"github.com/demos-qa/telerik-demos-tests/helpers"
)

// ProductCheck is the outcome of looking for a list of product names on a page, where only
// some of them have to be present.
type ProductCheck struct {
	Found    []string
	Missing  []string
	Required int
}

func (p ProductCheck) OK() bool {
	return len(p.Found) >= p.Required
}

// CheckProductPresence asks present about each name and passes if at least required of them
// are found.
func CheckProductPresence(names []string, required int, present func(string) bool) ProductCheck {
	ret := ProductCheck{Required: required}
	for _, name := range names {
		if present(name) {
			ret.Found = append(ret.Found, name)
		} else {
			ret.Missing = append(ret.Missing, name)
		}
	}
	return ret
}

// firstMatching returns the index of the first selector for which probe is true, or -1.
// The site's markup changes often enough that most structural checks accept any of
// several selectors.
func firstMatching(selectors []string, probe func(string) bool) int {
	for i, s := range selectors {
		if probe(s) {
			return i
		}
	}
	return -1
}

// matchesURLPattern reports whether the lower-cased href contains any of the patterns.
func matchesURLPattern(href string, patterns []string) bool {
	lower := strings.ToLower(href)
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func isFocusableTag(tag string, focusable []string) bool {
	for _, f := range focusable {
		if tag == f {
			return true
		}
	}
	return false
}

// buttonStyle is what two buttons are compared on when checking for consistent styling.
type buttonStyle struct {
	Class      string
	Background string
}

// consistentWith reports whether two buttons look alike: either they share a class list or
// they share a background color.
func (b buttonStyle) consistentWith(other buttonStyle) bool {
	return b.Class == other.Class || b.Background == other.Background
}

// auditCandidates picks the links whose href attribute, as written in the page, starts with
// prefix and whose text matches keywords, in page order. Relative hrefs never match an
// absolute prefix.
func auditCandidates(links []helpers.Link, prefix string, keywords *regexp.Regexp) []string {
	var ret []string
	for _, l := range links {
		if strings.HasPrefix(l.RawHref, prefix) && keywords.MatchString(l.Text) {
			ret = append(ret, l.Href)
		}
	}
	return ret
}

// isMeaningfulHref rejects hrefs that do not lead anywhere.
func isMeaningfulHref(href string) bool {
	return href != "" && href != "#"
}
