package countdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pearlworks/countdown/internal/countdown"
)

func TestShouldNotify(t *testing.T) {
	var notified []int
	for remaining := 60; remaining >= -1; remaining-- {
		if countdown.ShouldNotify(remaining) {
			notified = append(notified, remaining)
		}
	}
	assert.Equal(t, []int{60, 50, 40, 30, 20, 10, 5, 4, 3, 2, 1}, notified)
}
