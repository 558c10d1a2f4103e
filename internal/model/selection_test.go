package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionSelectAndPlace(t *testing.T) {
	b := NewBoardState()
	var sel Selection

	moved, err := sel.Click(b, 4, 1)
	require.NoError(t, err)
	assert.False(t, moved)
	require.NotNil(t, sel.Selected())
	assert.Equal(t, sq(t, "e2"), *sel.Selected())
	assert.ElementsMatch(t, squares(t, "e3", "e4"), sel.Destinations())

	moved, err = sel.Click(b, 4, 3)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Nil(t, sel.Selected())
	assert.Empty(t, sel.Destinations())
	assert.Equal(t, PlayerColorBlack, b.PlayerColor())
	assert.Equal(t, "P", b.BoardView()[4][3])
}

func TestSelectionToggleAndSwitch(t *testing.T) {
	b := NewBoardState()
	var sel Selection

	sel.Click(b, 4, 1)
	sel.Click(b, 4, 1)
	assert.Nil(t, sel.Selected(), "second click on the same square deselects")

	sel.Click(b, 4, 1)
	sel.Click(b, 6, 0)
	require.NotNil(t, sel.Selected())
	assert.Equal(t, sq(t, "g1"), *sel.Selected())
	assert.ElementsMatch(t, squares(t, "f3", "h3"), sel.Destinations())
}

func TestSelectionIgnoresOtherClicks(t *testing.T) {
	b := NewBoardState()
	var sel Selection

	tests := []struct {
		name string
		x, y int
	}{
		{"empty square with nothing selected", 4, 4},
		{"opponent piece", 4, 6},
		{"off board", 8, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moved, err := sel.Click(b, tt.x, tt.y)
			assert.NoError(t, err)
			assert.False(t, moved)
			assert.Nil(t, sel.Selected())
		})
	}

	sel.Click(b, 4, 1)
	moved, err := sel.Click(b, 4, 4)
	assert.NoError(t, err)
	assert.False(t, moved, "e5 is not a safe square of e2")
	assert.NotNil(t, sel.Selected())
	assert.Equal(t, PlayerColorWhite, b.PlayerColor())
}

func TestSelectionPinnedPieceHasNoDestinations(t *testing.T) {
	b := mustFEN(t, "4r2k/8/8/8/8/8/4B3/4K3 w - - 0 1")
	var sel Selection

	sel.Click(b, 4, 1)
	require.NotNil(t, sel.Selected())
	assert.Empty(t, sel.Destinations())

	moved, err := sel.Click(b, 3, 2)
	assert.NoError(t, err)
	assert.False(t, moved)
}

func TestRender(t *testing.T) {
	b := NewBoardState()
	var sel Selection
	sel.Click(b, 4, 1)

	out := Render(b, &sel)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "8  r  n  b  q  k  b  n  r ", lines[0])
	assert.Equal(t, "4  .  :  .  :  *  :  .  : ", lines[4])
	assert.Equal(t, "3  :  .  :  .  *  .  :  . ", lines[5])
	assert.Equal(t, "2  P  P  P  P [P] P  P  P ", lines[6])
	assert.Equal(t, "   a  b  c  d  e  f  g  h", lines[8])

	sel.Click(b, 4, 3)
	out = Render(b, nil)
	assert.Contains(t, out, "4  .  :  .  : (P) :  .  : ")
}

func TestRenderMarksCheckedKing(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/8/8/8/8/4K2R w - - 0 1")
	require.NoError(t, b.Move(7, 0, 7, 7))

	lines := strings.Split(Render(b, nil), "\n")
	assert.Equal(t, "8  .  :  .  : !k! :  . (R)", lines[0])

	var sel Selection
	sel.Click(b, 4, 7)
	lines = strings.Split(Render(b, &sel), "\n")
	assert.Equal(t, "8  .  :  .  : [k] :  . (R)", lines[0])
}
