package observability

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector()

	c.OnRequest("GET", "https://example.com/a")
	c.OnResponse("GET", "https://example.com/a", 401, 1)
	c.OnRefresh(true)
	c.OnRequest("GET", "https://example.com/a")
	c.OnResponse("GET", "https://example.com/a", 200, 2)

	s := c.Snapshot()
	assert.Equal(t, int64(2), s.Requests)
	assert.Equal(t, int64(1), s.Retries)
	assert.Equal(t, int64(1), s.Refreshes)
	assert.Equal(t, int64(0), s.RefreshFailed)
	assert.Equal(t, int64(1), s.StatusCounts[401])
	assert.Equal(t, int64(1), s.StatusCounts[200])
}

func TestCollectorConcurrent(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.OnRequest("GET", "u")
			c.OnResponse("GET", "u", 200, 1)
		}()
	}
	wg.Wait()

	s := c.Snapshot()
	assert.Equal(t, int64(50), s.Requests)
	assert.Equal(t, int64(50), s.StatusCounts[200])
}

func TestSnapshotIsCopy(t *testing.T) {
	c := NewCollector()
	c.OnResponse("GET", "u", 200, 1)

	s := c.Snapshot()
	s.StatusCounts[200] = 99

	assert.Equal(t, int64(1), c.Snapshot().StatusCounts[200])
}
