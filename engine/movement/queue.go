package movement

import "github.com/nathoo/titanhunt/engine/hex"

type pathNode struct {
	coord    hex.Coord
	cost     int
	priority int
}

// frontier is a min-heap on priority, ties broken by q then r so that
// searches expand in a deterministic order.
type frontier []pathNode

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].priority != f[j].priority {
		return f[i].priority < f[j].priority
	}
	if f[i].coord.Q != f[j].coord.Q {
		return f[i].coord.Q < f[j].coord.Q
	}
	return f[i].coord.R < f[j].coord.R
}
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(pathNode)) }
func (f *frontier) Pop() interface{} {
	old := *f
	n := old[len(old)-1]
	*f = old[:len(old)-1]
	return n
}
