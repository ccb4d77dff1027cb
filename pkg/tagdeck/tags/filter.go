package tags

import (
	"sort"
	"strings"

	"github.com/tagdeck/tagdeck/pkg/tagdeck/models"
)

// PopularLimit is how many tags the popular ranking returns
const PopularLimit = 5

// Filter is the view state the visible set is computed from. ShowInactive is
// only honored for admin viewers; everyone else always gets the active set.
type Filter struct {
	Search       string
	Category     string
	ShowInactive bool
	IsAdmin      bool
}

// Visible returns the tags matching the search term (name or description,
// case-insensitive), the selected category ("all" or empty matches every
// category), and the active flag.
func Visible(all []models.Tag, f Filter) []models.Tag {
	showInactive := f.ShowInactive && f.IsAdmin
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]models.Tag, 0, len(all))
	for _, tag := range all {
		if search != "" &&
			!strings.Contains(strings.ToLower(tag.Name), search) &&
			!strings.Contains(strings.ToLower(tag.Description), search) {
			continue
		}
		if f.Category != "" && f.Category != "all" && tag.Category != f.Category {
			continue
		}
		if !showInactive && !tag.IsActive {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// Popular returns the top active tags by click count, ties keeping their
// original order, truncated to PopularLimit.
func Popular(all []models.Tag) []models.Tag {
	active := make([]models.Tag, 0, len(all))
	for _, tag := range all {
		if tag.IsActive {
			active = append(active, tag)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].ClickCount > active[j].ClickCount
	})
	if len(active) > PopularLimit {
		active = active[:PopularLimit]
	}
	return active
}

// ActiveCategories returns the distinct categories among active tags, or
// among all tags when showInactive is set, in first-seen order.
func ActiveCategories(all []models.Tag, showInactive bool) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tag := range all {
		if !showInactive && !tag.IsActive {
			continue
		}
		if tag.Category == "" || seen[tag.Category] {
			continue
		}
		seen[tag.Category] = true
		out = append(out, tag.Category)
	}
	return out
}

// Stats is the count summary shown under the tag list
type Stats struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Popular    int `json:"popular"`
	Categories int `json:"categories"`
}

// ComputeStats summarizes a tag set for the stats bar
func ComputeStats(all []models.Tag, showInactive bool) Stats {
	active := 0
	for _, tag := range all {
		if tag.IsActive {
			active++
		}
	}
	return Stats{
		Total:      len(all),
		Active:     active,
		Popular:    len(Popular(all)),
		Categories: len(ActiveCategories(all, showInactive)),
	}
}
