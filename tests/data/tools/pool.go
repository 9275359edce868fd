// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package tools

import "sync"

type Counter struct {
	mu sync.Mutex
	n  int
}

func (c *Counter) AddAll(values []int) int {
	var wg sync.WaitGroup
	for _, v := range values {
		if v <= 0 {
			continue
		}
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			c.mu.Lock()
			c.n += v
			c.mu.Unlock()
		}(v)
	}
	wg.Wait()
	return c.n
}
