package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewCriteria_Normalize(t *testing.T) {
	c := ViewCriteria{Query: "milk", Status: StatusPending}.Normalize()

	assert.Equal(t, "milk", c.Query)
	assert.Equal(t, QuickAll, c.Quick)
	assert.Equal(t, CategoryAll, c.Category)
	assert.Equal(t, StatusPending, c.Status)
	assert.Equal(t, SortByDueDate, c.Sort)
	assert.NoError(t, c.Validate())
}

func TestViewCriteria_Validate(t *testing.T) {
	valid := DefaultCriteria()
	assert.NoError(t, valid.Validate())

	withCategory := valid
	withCategory.Category = CategoryFilter(CategoryHealth)
	assert.NoError(t, withCategory.Validate())

	invalid := []ViewCriteria{
		{Quick: "later", Category: CategoryAll, Status: StatusAll, Sort: SortByTitle},
		{Quick: QuickAll, Category: "chores", Status: StatusAll, Sort: SortByTitle},
		{Quick: QuickAll, Category: CategoryAll, Status: "archived", Sort: SortByTitle},
		{Quick: QuickAll, Category: CategoryAll, Status: StatusAll, Sort: "random"},
	}
	for _, c := range invalid {
		assert.Error(t, c.Validate(), c)
	}
}
