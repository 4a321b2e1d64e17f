// SPDX-License-Identifier: MIT
package game

import "github.com/katalvlaran/heatscan/geometry"

// Waiters reports how many callers are attached to the cache entry for g.
func (c *OperatorCache) Waiters(g geometry.Grid) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[cacheKey{size: g.Size, material: g.Material}]
	if !ok {
		return 0
	}
	return e.waiters
}

// HoldInit occupies g's Initialize slot until the returned func is called.
func HoldInit(g *Game) (release func()) {
	g.init <- struct{}{}
	return func() { <-g.init }
}
