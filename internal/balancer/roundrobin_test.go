package balancer

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestNewRoundRobinEmpty(t *testing.T) {
	rr, err := NewRoundRobin("")
	assert.NilError(t, err)
	assert.Equal(t, rr.Count(), 0)
	assert.Assert(t, rr.Next() == nil)
}

func TestNewRoundRobinRejectsRelativeURL(t *testing.T) {
	_, err := NewRoundRobin("localhost:9000")
	assert.ErrorContains(t, err, "absolute URL")
}

func TestNextRotates(t *testing.T) {
	rr, err := NewRoundRobin("http://a:9000, http://b:9000")
	assert.NilError(t, err)
	assert.Equal(t, rr.Count(), 2)
	assert.Equal(t, rr.Next().Host, "a:9000")
	assert.Equal(t, rr.Next().Host, "b:9000")
	assert.Equal(t, rr.Next().Host, "a:9000")
}
