package model

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestQueue(t *testing.T) {
	q := NewQueue()

	_, _, ok := q.GetNextPair()
	assert.False(t, ok)

	assert.NoError(t, q.AddPlayer("a"))
	assert.True(t, errors.Is(q.AddPlayer("a"), ErrAlreadyQueued))
	assert.NoError(t, q.AddPlayer("b"))
	assert.NoError(t, q.AddPlayer("c"))
	assert.Equal(t, 3, q.Size())

	q.RemovePlayer("b")
	q.RemovePlayer("missing")
	assert.Equal(t, 2, q.Size())

	p1, p2, ok := q.GetNextPair()
	assert.True(t, ok)
	assert.Equal(t, "a", p1)
	assert.Equal(t, "c", p2)
	assert.Equal(t, 0, q.Size())
}
