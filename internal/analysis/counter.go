package analysis

import "sort"

// TermCount is a term (word, phrase or emoji) with its frequency.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// KeyCount is one entry of a value-count table.
type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// counter counts keys and remembers first-seen order for tie-breaking.
type counter struct {
	index map[string]int
	keys  []string
	count []int
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(key string) {
	c.addN(key, 1)
}

func (c *counter) addN(key string, n int) {
	i, ok := c.index[key]
	if !ok {
		i = len(c.keys)
		c.index[key] = i
		c.keys = append(c.keys, key)
		c.count = append(c.count, 0)
	}
	c.count[i] += n
}

func (c *counter) len() int {
	return len(c.keys)
}

// ranked returns key indexes by descending count, ties in first-seen order.
func (c *counter) ranked() []int {
	idx := make([]int, len(c.keys))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return c.count[idx[a]] > c.count[idx[b]]
	})
	return idx
}

// top returns at most n terms by descending count; n <= 0 means all.
func (c *counter) top(n int) []TermCount {
	if c.len() == 0 {
		return nil
	}
	ranked := c.ranked()
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	out := make([]TermCount, 0, len(ranked))
	for _, i := range ranked {
		out = append(out, TermCount{Term: c.keys[i], Count: c.count[i]})
	}
	return out
}

func (c *counter) keyCounts() []KeyCount {
	if c.len() == 0 {
		return nil
	}
	out := make([]KeyCount, 0, c.len())
	for _, i := range c.ranked() {
		out = append(out, KeyCount{Key: c.keys[i], Count: c.count[i]})
	}
	return out
}
