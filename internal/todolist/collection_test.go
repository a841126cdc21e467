package todolist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todolist/internal/model"
)

func TestInsertAssignsMonotonicIDs(t *testing.T) {
	c := New()
	assert.Equal(t, uint32(0), c.NextID())

	for i, desc := range []string{"Buy milk", "Walk dog", "Read book"} {
		require.True(t, c.Insert(desc))
		it, ok := c.FindByDescription(desc)
		require.True(t, ok)
		assert.Equal(t, uint32(i), it.ID)
		assert.False(t, it.Done)
	}
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, uint32(3), c.NextID())
}

func TestInsertDuplicateIgnoresCase(t *testing.T) {
	c := New()
	require.True(t, c.Insert("Buy milk"))

	for _, desc := range []string{"Buy milk", "buy milk", "BUY MILK", "bUy MiLk"} {
		assert.False(t, c.Insert(desc), desc)
	}
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, uint32(1), c.NextID())
}

func TestInsertStoresNormalizedDescription(t *testing.T) {
	c := New()
	require.True(t, c.Insert("Call MOM"))

	it, ok := c.FindByID(0)
	require.True(t, ok)
	assert.Equal(t, "call mom", it.Description)
}

func TestIDsAreNotReusedAfterRemove(t *testing.T) {
	c := New()
	require.True(t, c.Insert("a"))
	require.True(t, c.Insert("b"))

	_, ok := c.RemoveByID(1)
	require.True(t, ok)
	assert.Equal(t, uint32(2), c.NextID())

	require.True(t, c.Insert("c"))
	it, ok := c.FindByDescription("c")
	require.True(t, ok)
	assert.Equal(t, uint32(2), it.ID)

	// removing does not free the description's old id either
	require.True(t, c.Insert("b"))
	it, _ = c.FindByDescription("b")
	assert.Equal(t, uint32(3), it.ID)
}

func TestInsertRefusedWhenIDsExhausted(t *testing.T) {
	c, err := ParseJSON([]byte(`{"items":{"a":{"id":0,"description":"a","done":false}},"next_id":4294967295}`))
	require.NoError(t, err)
	require.True(t, c.Full())

	assert.False(t, c.Insert("b"))
	assert.False(t, c.Insert("c"))
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, uint32(4294967295), c.NextID())

	it, ok := c.FindByID(0)
	require.True(t, ok)
	assert.Equal(t, "a", it.Description)

	data, err := c.JSON()
	require.NoError(t, err)
	got, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, c.Items(), got.Items())
	assert.Equal(t, c.NextID(), got.NextID())
}

func TestFindByIDAndDescriptionAgree(t *testing.T) {
	c := New()
	for _, d := range []string{"one", "two", "three"} {
		require.True(t, c.Insert(d))
	}
	for _, it := range c.Items() {
		byID, ok := c.FindByID(it.ID)
		require.True(t, ok)
		byDesc, ok := c.FindByDescription(it.Description)
		require.True(t, ok)
		assert.Equal(t, byID, byDesc)
	}

	_, ok := c.FindByID(42)
	assert.False(t, ok)
	_, ok = c.FindByDescription("missing")
	assert.False(t, ok)
}

func TestFindByDescriptionIgnoresCase(t *testing.T) {
	c := New()
	require.True(t, c.Insert("walk dog"))
	it, ok := c.FindByDescription("Walk Dog")
	require.True(t, ok)
	assert.Equal(t, uint32(0), it.ID)
}

func TestFindReturnsCopy(t *testing.T) {
	c := New()
	require.True(t, c.Insert("x"))

	it, _ := c.FindByID(0)
	it.Toggle()

	again, _ := c.FindByID(0)
	assert.False(t, again.Done)
}

func TestUpdateTogglesTwice(t *testing.T) {
	tests := []struct {
		name   string
		update func(c *Collection) (bool, bool)
	}{
		{"by id", func(c *Collection) (bool, bool) { return c.UpdateByID(0) }},
		{"by description", func(c *Collection) (bool, bool) { return c.UpdateByDescription("Buy Milk") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			require.True(t, c.Insert("buy milk"))

			done, ok := tt.update(c)
			require.True(t, ok)
			assert.True(t, done)
			it, _ := c.FindByID(0)
			assert.True(t, it.Done)

			done, ok = tt.update(c)
			require.True(t, ok)
			assert.False(t, done)
			it, _ = c.FindByID(0)
			assert.False(t, it.Done)
		})
	}
}

func TestUpdateMissing(t *testing.T) {
	c := New()
	require.True(t, c.Insert("a"))

	_, ok := c.UpdateByID(7)
	assert.False(t, ok)
	_, ok = c.UpdateByDescription("b")
	assert.False(t, ok)

	it, _ := c.FindByID(0)
	assert.False(t, it.Done)
}

func TestRemoveByDescription(t *testing.T) {
	c := New()
	require.True(t, c.Insert("a"))
	require.True(t, c.Insert("b"))

	it, ok := c.RemoveByDescription("A")
	require.True(t, ok)
	assert.Equal(t, model.Item{ID: 0, Description: "a"}, it)
	assert.Equal(t, 1, c.Len())

	_, ok = c.FindByID(0)
	assert.False(t, ok, "id index must follow removal")

	_, ok = c.RemoveByDescription("a")
	assert.False(t, ok)
}

func TestRemoveByIDMissing(t *testing.T) {
	c := New()
	require.True(t, c.Insert("a"))
	_, ok := c.RemoveByID(5)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestScenarioBuyMilkWalkDog(t *testing.T) {
	c := New()

	assert.True(t, c.Insert("Buy milk"))
	it, _ := c.FindByDescription("buy milk")
	assert.Equal(t, uint32(0), it.ID)

	assert.False(t, c.Insert("buy milk"))

	assert.True(t, c.Insert("Walk dog"))
	it, _ = c.FindByDescription("walk dog")
	assert.Equal(t, uint32(1), it.ID)

	removed, ok := c.RemoveByID(0)
	require.True(t, ok)
	assert.Equal(t, "buy milk", removed.Description)

	_, ok = c.FindByID(0)
	assert.False(t, ok)
	assert.Equal(t, uint32(2), c.NextID())
}

func TestItemsSortedByID(t *testing.T) {
	c := New()
	for _, d := range []string{"z", "m", "a", "q"} {
		require.True(t, c.Insert(d))
	}
	_, _ = c.RemoveByID(1)

	var ids []uint32
	for _, it := range c.Items() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []uint32{0, 2, 3}, ids)
}

func TestStats(t *testing.T) {
	c := New()
	for _, d := range []string{"a", "b", "c"} {
		require.True(t, c.Insert(d))
	}
	_, _ = c.UpdateByID(1)

	done, pending := c.Stats()
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, pending)
}
