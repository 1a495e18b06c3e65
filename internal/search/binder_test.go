package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinderTokensArePositional(t *testing.T) {
	b := NewBinder()

	assert.Equal(t, "?1", b.Add("first"))
	assert.Equal(t, "?2", b.Add(2.5))
	assert.Equal(t, "?3", b.Add(3))

	assert.Equal(t, []interface{}{"first", 2.5, 3}, b.Args())
	assert.Equal(t, 3, b.Len())
}

func TestBinderStartsEmpty(t *testing.T) {
	b := NewBinder()
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Args())
}
