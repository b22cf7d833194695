package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-patience/internal/engine"
	_ "github.com/vovakirdan/tui-patience/internal/games/freecell"
	_ "github.com/vovakirdan/tui-patience/internal/games/klondike"
	_ "github.com/vovakirdan/tui-patience/internal/games/lucie"
	"github.com/vovakirdan/tui-patience/internal/registry"
)

func TestList(t *testing.T) {
	games := registry.List()
	require.Len(t, games, 3)
	assert.Equal(t, []registry.GameInfo{
		{ID: "freecell", Title: "FreeCell", GameID: 8},
		{ID: "klondike", Title: "Klondike", GameID: 2},
		{ID: "lucie", Title: "La Belle Lucie", GameID: 901},
	}, games)
}

func TestCreateReturnsFreshInstances(t *testing.T) {
	a, err := registry.Create("lucie")
	require.NoError(t, err)
	b, err := registry.Create("lucie")
	require.NoError(t, err)
	assert.NotSame(t, a, b)

	_, err = registry.Create("spider")
	assert.Error(t, err)
	assert.False(t, registry.Exists("spider"))
	assert.True(t, registry.Exists("klondike"))
}

func TestLookupByGameID(t *testing.T) {
	v, ok := registry.Lookup(8)
	require.True(t, ok)
	assert.Equal(t, "FreeCell", v.Info().Name)

	name, ok := registry.Name(901)
	require.True(t, ok)
	assert.Equal(t, "lucie", name)

	_, ok = registry.Lookup(12345)
	assert.False(t, ok)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		v, _ := registry.Create("freecell")
		registry.Register("freecell", func() engine.Variant { return v })
	})
}
