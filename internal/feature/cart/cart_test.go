package cart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetNeverStoresNonPositive(t *testing.T) {
	c := Cart{}
	c.Set("teddy-bear", 3)
	assert.Equal(t, 3, c["teddy-bear"])

	c.Set("teddy-bear", 0)
	_, ok := c["teddy-bear"]
	assert.False(t, ok, "zero quantity must remove the entry")

	c.Set("lego-castle", -2)
	assert.NotContains(t, c, "lego-castle")
}

func TestAddRoundtrip(t *testing.T) {
	c := Cart{"teddy-bear": 2}
	c.Add("teddy-bear", 1)
	c.Add("teddy-bear", -1)
	assert.Equal(t, 2, c["teddy-bear"], "inc then dec must return to the original quantity")

	c.Add("teddy-bear", -5)
	assert.NotContains(t, c, "teddy-bear")
}

func TestCountAndSubtotal(t *testing.T) {
	c := Cart{"teddy-bear": 2, "jigsaw-puzzle": 1, "gone-product": 3}
	assert.Equal(t, 6, c.Count())

	prices := map[string]int64{"teddy-bear": 1299, "jigsaw-puzzle": 1499}
	got := c.Subtotal(func(slug string) (int64, bool) {
		p, ok := prices[slug]
		return p, ok
	})
	// 下架商品跳过：2×1299 + 1×1499
	assert.Equal(t, int64(4097), got)
}

func TestFileStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "cart.json")
	s := NewFileStore(path)

	cl, err := Open(s)
	require.NoError(t, err)
	assert.Equal(t, 0, cl.Count())

	require.NoError(t, cl.Set("teddy-bear", 2))
	require.NoError(t, cl.Add("jigsaw-puzzle", 1))

	// 重新打开，状态还在
	cl2, err := Open(NewFileStore(path))
	require.NoError(t, err)
	assert.Equal(t, 3, cl2.Count())
	assert.Equal(t, 2, cl2.Quantity("teddy-bear"))

	require.NoError(t, cl2.Set("teddy-bear", 0))
	cl3, err := Open(NewFileStore(path))
	require.NoError(t, err)
	assert.Equal(t, 0, cl3.Quantity("teddy-bear"))
	assert.Equal(t, 1, cl3.Count())
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	c, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Empty(t, c, "corrupt state falls back to an empty cart")
}

func TestFileStoreDropsStoredNonPositive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"teddy-bear":0,"lego-castle":2}`), 0o644))

	c, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.NotContains(t, c, "teddy-bear")
	assert.Equal(t, 2, c["lego-castle"])
}

func TestClientItemsIsACopy(t *testing.T) {
	cl, err := Open(NewFileStore(filepath.Join(t.TempDir(), "cart.json")))
	require.NoError(t, err)
	require.NoError(t, cl.Set("teddy-bear", 1))

	items := cl.Items()
	items["teddy-bear"] = 99
	assert.Equal(t, 1, cl.Quantity("teddy-bear"))
}
