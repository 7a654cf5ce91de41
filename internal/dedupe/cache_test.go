// ABOUTME: Tests for the duplicate-update cache
// ABOUTME: Covers check-and-mark semantics, TTL expiry, and size-bounded eviction

package dedupe

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeen_FirstTimeIsNew(t *testing.T) {
	c := New(time.Minute, 100)
	defer c.Close()

	assert.False(t, c.Seen("update-1"))
	assert.True(t, c.Seen("update-1"))
}

func TestSeen_DistinctKeys(t *testing.T) {
	c := New(time.Minute, 100)
	defer c.Close()

	assert.False(t, c.Seen("update-1"))
	assert.False(t, c.Seen("update-2"))
}

func TestSeen_ExpiredKeyIsNewAgain(t *testing.T) {
	c := New(10*time.Millisecond, 100)
	defer c.Close()

	assert.False(t, c.Seen("update-1"))
	time.Sleep(20 * time.Millisecond)
	assert.False(t, c.Seen("update-1"))
}

func TestSeen_EvictsOldestAtCapacity(t *testing.T) {
	c := New(time.Minute, 3)
	defer c.Close()

	for i := 0; i < 4; i++ {
		c.Seen(fmt.Sprintf("update-%d", i))
	}

	// update-0 was evicted to make room, the rest are still tracked
	assert.False(t, c.Seen("update-0"))
	assert.True(t, c.Seen("update-3"))
}

func TestClose_Twice(t *testing.T) {
	c := New(time.Minute, 10)
	c.Close()
	c.Close()
}
