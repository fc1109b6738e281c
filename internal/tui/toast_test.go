package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToastController_PushAndEvict(t *testing.T) {
	c := NewToastController()
	for _, s := range []string{"a", "b", "c", "d"} {
		c.Push(s)
	}
	assert.Equal(t, []string{"b", "c", "d"}, c.Texts())
}

func TestToastController_Expire(t *testing.T) {
	c := NewToastController()
	c.Push("saved")

	c.Tick(defaultToastTTL - time.Millisecond)
	assert.True(t, c.HasToasts())

	c.Tick(time.Millisecond)
	assert.False(t, c.HasToasts())
}

func TestToastController_Ticking(t *testing.T) {
	c := NewToastController()
	assert.Nil(t, c.StartTicking())

	c.Push("saved")
	assert.NotNil(t, c.StartTicking())
	assert.Nil(t, c.StartTicking(), "second start is a no-op while ticking")

	c.Tick(defaultToastTTL)
	assert.Nil(t, c.HandleTick(), "countdown stops once every toast expired")

	c.Push("again")
	assert.NotNil(t, c.StartTicking())
}
