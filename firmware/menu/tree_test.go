package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceSelect(t *testing.T) {
	tests := []struct {
		id   uint8
		want uint8
	}{
		{0, 0b001},
		{1, 0b010},
		{2, 0b100},
		{3, 0b110},
		{4, 0},
		{255, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SourceSelect(tt.id), "source %d", tt.id)
	}
	assert.Equal(t, SourceSelect(1)|SourceSelect(2), SourceSelect(3))
}

func TestDefaultTreeIsATree(t *testing.T) {
	tree := DefaultTree()
	require.Len(t, tree, int(NumPages))
	assert.Equal(t, NoPage, tree[PageSource].Parent)

	for id, p := range tree {
		require.NotEmpty(t, p.Entries, p.Name)
		if PageID(id) == PageSource {
			continue
		}
		// Walking parents always reaches the root.
		seen := map[PageID]bool{}
		for cur := PageID(id); cur != PageSource; cur = tree[cur].Parent {
			require.False(t, seen[cur], "cycle at %s", tree[cur].Name)
			seen[cur] = true
			require.Less(t, int(tree[cur].Parent), len(tree))
		}
		for _, e := range p.Entries {
			if e.Action.Kind == ActGotoChild {
				assert.Equal(t, PageID(id), tree[e.Action.Page].Parent, "%s -> %s", p.Name, tree[e.Action.Page].Name)
			}
		}
	}
}
