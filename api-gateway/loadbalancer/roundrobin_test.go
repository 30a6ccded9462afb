package loadbalancer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundRobinNext(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8080", "http://b:8080", "http://c:8080"})

	got := []string{rr.Next(), rr.Next(), rr.Next(), rr.Next()}
	assert.Equal(t, []string{"http://a:8080", "http://b:8080", "http://c:8080", "http://a:8080"}, got)
}

func TestRoundRobinEmpty(t *testing.T) {
	rr := NewRoundRobin(nil)
	assert.Equal(t, "", rr.Next())
}

func TestRoundRobinAddRemove(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8080"})

	rr.AddServer("http://b:8080")
	assert.Equal(t, []string{"http://a:8080", "http://b:8080"}, rr.GetServers())

	// Cursor stays valid after removing the server it pointed at
	assert.Equal(t, "http://a:8080", rr.Next())
	rr.RemoveServer("http://b:8080")
	assert.Equal(t, []string{"http://a:8080"}, rr.GetServers())
	assert.Equal(t, "http://a:8080", rr.Next())

	rr.RemoveServer("http://nope:8080")
	assert.Equal(t, []string{"http://a:8080"}, rr.GetServers())
}

func TestRoundRobinStats(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8080", "http://b:8080"})
	rr.Next()

	stats := rr.GetStats()
	assert.Equal(t, "round-robin", stats["algorithm"])
	assert.Equal(t, 2, stats["server_count"])
	assert.Equal(t, 1, stats["current_index"])
}
