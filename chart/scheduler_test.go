package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameScheduler_Coalesce(t *testing.T) {
	s := NewFrameScheduler()
	var calls []string

	assert.False(t, s.Tick())

	s.Request(func() { calls = append(calls, "a") })
	s.Request(func() { calls = append(calls, "b") })
	assert.True(t, s.Pending())

	assert.True(t, s.Tick())
	assert.Equal(t, []string{"b"}, calls)
	assert.False(t, s.Pending())
	assert.False(t, s.Tick())
}

func TestFrameScheduler_RequestDuringDraw(t *testing.T) {
	s := NewFrameScheduler()
	count := 0
	s.Request(func() {
		count++
		s.Request(func() { count++ })
	})

	s.Tick()
	assert.Equal(t, 1, count)
	assert.True(t, s.Pending())
	s.Tick()
	assert.Equal(t, 2, count)
}
