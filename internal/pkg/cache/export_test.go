//go:build unit

package cache

func (c *Cache) InFlight() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.loads)
}
