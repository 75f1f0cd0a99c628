package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestionCursor_Bounds(t *testing.T) {
	c := NewQuestionCursor(3)

	assert.False(t, c.Prev(), "must not move below zero")
	assert.Equal(t, 0, c.Index())

	assert.True(t, c.Next())
	assert.True(t, c.Next())
	assert.Equal(t, 2, c.Index())

	assert.False(t, c.Next(), "must not move past the last question")
	assert.Equal(t, 2, c.Index())
}

func TestQuestionCursor_Select(t *testing.T) {
	c := NewQuestionCursor(4)

	assert.True(t, c.Select(3))
	assert.Equal(t, 3, c.Index())

	assert.False(t, c.Select(4))
	assert.False(t, c.Select(-1))
	assert.Equal(t, 3, c.Index())
}

func TestQuestionCursor_AtEnd(t *testing.T) {
	c := NewQuestionCursor(2)
	assert.False(t, c.AtEnd())

	c.Next()
	assert.True(t, c.AtEnd())

	empty := NewQuestionCursor(0)
	assert.False(t, empty.AtEnd(), "empty set has no end-interview control")

	single := NewQuestionCursor(1)
	assert.True(t, single.AtEnd())
}
