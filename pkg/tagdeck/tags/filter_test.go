package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tagdeck/tagdeck/pkg/tagdeck/models"
)

func filterFixture() []models.Tag {
	return []models.Tag{
		{ID: "1", Name: "Go Docs", Description: "language reference", Category: "技术", IsActive: true, ClickCount: 10},
		{ID: "2", Name: "Cooking", Description: "recipes", Category: "生活", IsActive: true, ClickCount: 25},
		{ID: "3", Name: "Old wiki", Description: "archived notes", Category: "技术", IsActive: false, ClickCount: 99},
		{ID: "4", Name: "Music", Description: "playlists", Category: "娱乐", IsActive: true, ClickCount: 25},
		{ID: "5", Name: "Timesheets", Description: "weekly reporting", Category: "工作", IsActive: true, ClickCount: 1},
		{ID: "6", Name: "Flashcards", Description: "go vocabulary drills", Category: "学习", IsActive: true, ClickCount: 3},
		{ID: "7", Name: "Scratch", Description: "", Category: "其他", IsActive: true, ClickCount: 0},
	}
}

func TestVisibleMatchesAllPredicates(t *testing.T) {
	all := filterFixture()
	f := Filter{Search: "go", Category: "技术", ShowInactive: false}

	got := Visible(all, f)

	assert.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestVisibleSearchesNameAndDescription(t *testing.T) {
	all := filterFixture()

	byName := Visible(all, Filter{Search: "COOK", Category: "all"})
	assert.Len(t, byName, 1)
	assert.Equal(t, "2", byName[0].ID)

	byDescription := Visible(all, Filter{Search: "vocabulary", Category: "all"})
	assert.Len(t, byDescription, 1)
	assert.Equal(t, "6", byDescription[0].ID)
}

func TestVisibleHidesInactiveForNonAdmin(t *testing.T) {
	all := filterFixture()

	// ShowInactive from a non-admin viewer must be ignored
	got := Visible(all, Filter{Category: "all", ShowInactive: true, IsAdmin: false})
	for _, tag := range got {
		assert.True(t, tag.IsActive, "tag %s should not be visible", tag.ID)
	}

	asAdmin := Visible(all, Filter{Category: "all", ShowInactive: true, IsAdmin: true})
	assert.Len(t, asAdmin, len(all))
}

func TestVisibleEmptyAndAllCategory(t *testing.T) {
	all := filterFixture()

	assert.Equal(t, Visible(all, Filter{Category: "all"}), Visible(all, Filter{}))
}

func TestPopularOnlyActiveSortedAndCapped(t *testing.T) {
	all := filterFixture()

	got := Popular(all)

	assert.LessOrEqual(t, len(got), PopularLimit)
	for _, tag := range got {
		assert.True(t, tag.IsActive)
		assert.NotEqual(t, "3", tag.ID, "inactive tag must never rank")
	}
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].ClickCount, got[i].ClickCount)
	}
}

func TestPopularTiesKeepOriginalOrder(t *testing.T) {
	all := filterFixture()

	got := Popular(all)

	// Tags 2 and 4 tie on clicks; 2 appears first in the input
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "4", got[1].ID)
}

func TestPopularCapsAtLimit(t *testing.T) {
	var all []models.Tag
	for i := 0; i < 10; i++ {
		all = append(all, models.Tag{ID: string(rune('a' + i)), Name: "t", IsActive: true, ClickCount: uint(i)})
	}

	got := Popular(all)

	assert.Len(t, got, PopularLimit)
	assert.Equal(t, uint(9), got[0].ClickCount)
}

func TestActiveCategories(t *testing.T) {
	all := filterFixture()

	activeOnly := ActiveCategories(all, false)
	assert.NotContains(t, activeOnly, "")
	assert.ElementsMatch(t, []string{"技术", "生活", "娱乐", "工作", "学习", "其他"}, activeOnly)

	// Deactivate every 技术 tag; the category disappears from the active set
	for i := range all {
		if all[i].Category == "技术" {
			all[i].IsActive = false
		}
	}
	assert.NotContains(t, ActiveCategories(all, false), "技术")
	assert.Contains(t, ActiveCategories(all, true), "技术")
}

func TestComputeStats(t *testing.T) {
	all := filterFixture()

	got := ComputeStats(all, false)

	assert.Equal(t, 7, got.Total)
	assert.Equal(t, 6, got.Active)
	assert.Equal(t, PopularLimit, got.Popular)
	assert.Equal(t, 6, got.Categories)
}
