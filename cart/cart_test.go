package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/geprek-app/models"
)

var (
	geprek = MenuItemRef{ID: 1, Name: "Ayam Geprek Original", Price: 15000, Category: models.CategoryMain}
	esTeh  = MenuItemRef{ID: 2, Name: "Es Teh", Price: 20000, Category: models.CategoryDrink}
)

func TestAddSameLineIncrementsQuantity(t *testing.T) {
	for _, calls := range []int{1, 2, 5, 17} {
		c := New()
		for i := 0; i < calls; i++ {
			c.Add(geprek, 3)
		}
		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, calls, lines[0].Quantity)
		assert.Equal(t, calls, c.TotalItems())
	}
}

func TestAddDifferentSpicyMakesDistinctLines(t *testing.T) {
	c := New()
	c.Add(geprek, 1)
	c.Add(geprek, 4)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].SpicyLevel)
	assert.Equal(t, 4, lines[1].SpicyLevel)
	assert.Equal(t, 2, c.TotalItems())
}

func TestTotalPrice(t *testing.T) {
	c := New()
	c.Add(geprek, 0)
	c.Add(geprek, 0)
	c.Add(esTeh, 0)

	var want int64
	for _, l := range c.Lines() {
		want += l.MenuItem.Price * int64(l.Quantity)
	}
	assert.Equal(t, want, c.TotalPrice())
	assert.Equal(t, int64(50000), c.TotalPrice())
}

func TestRemoveDropsEverySpicyLevel(t *testing.T) {
	c := New()
	c.Add(geprek, 1)
	c.Add(geprek, 5)
	c.Add(esTeh, 0)

	c.Remove(geprek.ID)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, esTeh.ID, lines[0].MenuItem.ID)
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	c.Add(geprek, 1)
	c.Add(geprek, 2)
	c.Add(esTeh, 0)

	c.UpdateQuantity(geprek.ID, 3)
	assert.Equal(t, 7, c.TotalItems())

	c.UpdateQuantity(geprek.ID, 0)
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, esTeh.ID, lines[0].MenuItem.ID)

	c.UpdateQuantity(esTeh.ID, -2)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.TotalPrice())
}

func TestClearAndFromLines(t *testing.T) {
	c := New()
	c.Add(geprek, 2)
	c.Add(esTeh, 0)

	restored := FromLines(append(c.Lines(), Line{MenuItem: esTeh, Quantity: 0}))
	assert.Equal(t, c.TotalPrice(), restored.TotalPrice())
	assert.Len(t, restored.Lines(), 2)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalItems())
	assert.Len(t, restored.Lines(), 2)
}

func TestAddMenuItem(t *testing.T) {
	c := New()

	err := c.AddMenuItem(models.MenuItem{ID: 9, Price: 5000, Category: models.CategoryMain, IsAvailable: false}, 0)
	assert.ErrorIs(t, err, ErrItemUnavailable)

	err = c.AddMenuItem(models.MenuItem{ID: 1, Price: 15000, Category: models.CategoryMain, IsAvailable: true}, 6)
	assert.ErrorIs(t, err, ErrInvalidSpicy)

	require.NoError(t, c.AddMenuItem(models.MenuItem{ID: 2, Price: 5000, Category: models.CategoryDrink, IsAvailable: true}, 3))
	require.NoError(t, c.AddMenuItem(models.MenuItem{ID: 2, Price: 5000, Category: models.CategoryDrink, IsAvailable: true}, 1))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 0, lines[0].SpicyLevel)
	assert.Equal(t, 2, lines[0].Quantity)
}
