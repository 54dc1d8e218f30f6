package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/feranick/gwyddion-py3-sub000/internal/tiff"
)

// LookupTag resolves a tag given on the command line. It accepts a tag
// number, a known tag name in any case, or failing both the closest fuzzy
// match among known names.
func LookupTag(name string) (tiff.Tag, bool) {
	if n, err := strconv.ParseUint(name, 10, 16); err == nil {
		return tiff.Tag(n), true
	}
	known := tiff.KnownTags()
	names := make([]string, 0, len(known))
	for s, t := range known {
		if strings.EqualFold(s, name) {
			return t, true
		}
		names = append(names, s)
	}
	if name == "" {
		return 0, false
	}
	sort.Strings(names)
	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return 0, false
	}
	return known[names[matches[0].Index]], true
}
