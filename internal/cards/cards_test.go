package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDecks(t *testing.T) {
	deck := NewDecks(2)
	require.Len(t, deck, 104)
	assert.Equal(t, "AC", deck[0].String())
	assert.Equal(t, "KC", deck[12].String())
	assert.Equal(t, "AS", deck[13].String())
	assert.Equal(t, "KD", deck[51].String())
	assert.Equal(t, 1, deck[52].Deck)
	for i, c := range deck {
		assert.Equal(t, i, c.ID)
		assert.False(t, c.FaceUp)
	}
}

func TestColor(t *testing.T) {
	assert.Equal(t, 0, Clubs.Color())
	assert.Equal(t, 0, Spades.Color())
	assert.Equal(t, 1, Hearts.Color())
	assert.Equal(t, 1, Diamonds.Color())
}

func TestParseCard(t *testing.T) {
	s, r, err := ParseCard("TH")
	require.NoError(t, err)
	assert.Equal(t, Hearts, s)
	assert.Equal(t, Ten, r)

	_, _, err = ParseCard("1X")
	assert.Error(t, err)
	_, _, err = ParseCard("ACE")
	assert.Error(t, err)
}

func TestFlipAndJoin(t *testing.T) {
	c := &Card{Suit: Spades, Rank: Queen}
	c.Flip()
	assert.True(t, c.FaceUp)
	c.Flip()
	assert.False(t, c.FaceUp)
	assert.Equal(t, "QS AC", Join([]*Card{c, {Suit: Clubs, Rank: Ace}}))
}
