package loadbalancer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextRoundRobin(t *testing.T) {
	pool := New("http://a:1", "http://b:2")
	assert.Equal(t, "http://a:1", pool.Next())
	assert.Equal(t, "http://b:2", pool.Next())
	assert.Equal(t, "http://a:1", pool.Next())
}

func TestNextSingleBackend(t *testing.T) {
	pool := New("http://only:1")
	assert.Equal(t, "http://only:1", pool.Next())
	assert.Equal(t, "http://only:1", pool.Next())
}

func TestNextEmptyPool(t *testing.T) {
	assert.Equal(t, "", New().Next())
}
