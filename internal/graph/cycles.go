package graph

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CycleStats summarizes one BuildCycles run.
type CycleStats struct {
	Total     int
	Corrected int
}

// BuildCycles enumerates every simple cycle of at most maxDepth edges
// that starts and ends at the WSOL node, anchors each one so WSOL is
// its first token, and records it canonicalized so rotations and
// reversals of the same physical cycle collapse to one entry.
func (g *Graph) BuildCycles(maxDepth int) (CycleStats, error) {
	if g.wsolNode == noWSOLNode {
		return CycleStats{}, fmt.Errorf("%w: WSOL token never appeared in any pool", ErrMissingField)
	}

	start := time.Now()

	visitedEdges := make([]bool, len(g.Edges))
	path := make([]int, 0, maxDepth)
	found := make(map[string][]int)

	g.dfs(g.wsolNode, g.wsolNode, visitedEdges, path, maxDepth, found)

	stats := CycleStats{}
	all := make(map[string][]int, len(found))
	for key, cycle := range found {
		corrected := append([]int(nil), cycle...)
		if g.CheckCycle(corrected) {
			stats.Corrected++
		}
		all[key] = corrected
		stats.Total++
	}
	g.AllCycles = all

	if g.log != nil {
		g.log.WithFields(logrus.Fields{
			"cycles":         stats.Total,
			"wrong_cycles":   stats.Corrected,
			"build_duration": time.Since(start),
		}).Info("cycles built")
	}

	return stats, nil
}

// dfs walks the adjacency graph depth-first from currentNode, marking
// edges visited along the current path so no edge is reused within one
// cycle, and records a cycle every time it returns to startNode with
// at least two hops.
func (g *Graph) dfs(startNode, currentNode int, visitedEdges []bool, path []int, maxDepth int, cycles map[string][]int) {
	if len(path) >= maxDepth {
		return
	}

	for edgeIndex := range g.adjacency[currentNode] {
		if visitedEdges[edgeIndex] {
			continue
		}

		edge := &g.Edges[edgeIndex]
		otherNode, ok := edge.GetOtherNode(currentNode)
		if !ok {
			continue
		}

		visitedEdges[edgeIndex] = true
		path = append(path, edgeIndex)

		if otherNode == startNode && len(path) >= 2 {
			canonical := g.Canonicalize(path)
			if pos := g.wsolAnchorPosition(canonical); pos > 0 {
				canonical = rotateLeft(canonical, pos)
			}
			cycles[cycleKey(canonical)] = canonical
		}

		g.dfs(startNode, otherNode, visitedEdges, path, maxDepth, cycles)

		path = path[:len(path)-1]
		visitedEdges[edgeIndex] = false
	}
}

// wsolAnchorPosition finds the first edge in cycle touching the WSOL
// node, so the cycle can be rotated to start there.
func (g *Graph) wsolAnchorPosition(cycle []int) int {
	for pos, edgeIndex := range cycle {
		edge := &g.Edges[edgeIndex]
		if edge.NodeLowest == g.wsolNode || edge.NodeHighest == g.wsolNode {
			return pos
		}
	}
	return 0
}

// CheckCycle verifies that cycle actually forms a closed walk starting
// and ending at the WSOL node, correcting it with a single rotation if
// not. It returns true when a correction was needed.
func (g *Graph) CheckCycle(cycle []int) bool {
	cycleLen := len(cycle)
	needChange := false
	lastNode := g.wsolNode
	problematicIndex := cycleLen

	for index, edgeIndex := range cycle {
		edge := &g.Edges[edgeIndex]
		other, ok := edge.GetOtherNode(lastNode)
		if !ok {
			needChange = true
			problematicIndex = index
			break
		}
		lastNode = other
	}

	if !needChange && lastNode != g.wsolNode {
		problematicIndex = cycleLen - 1
		needChange = true
	}

	if !needChange {
		return false
	}

	switch {
	case problematicIndex == 0:
		rotateInPlace(cycle, cycleLen-1)
	case problematicIndex > 0 && problematicIndex < cycleLen:
		rotateInPlace(cycle, 1)
	}

	return true
}

// Canonicalize picks a single canonical representation for a cycle out
// of its 2*len(cycle) equivalent rotations/reversals: rotate so the
// lowest edge index comes first, do the same to the reversed walk, and
// keep whichever of the two sorts first.
func (g *Graph) Canonicalize(cycle []int) []int {
	n := len(cycle)
	if n == 0 {
		return []int{}
	}

	forward := rotateLeft(cycle, minIndex(cycle))

	reversed := reverseOf(cycle)
	reversed = rotateLeft(reversed, minIndex(reversed))

	if lessOrEqual(forward, reversed) {
		return forward
	}
	return reversed
}

func minIndex(cycle []int) int {
	min := 0
	for i, v := range cycle {
		if v < cycle[min] {
			min = i
		}
	}
	return min
}

func rotateLeft(cycle []int, by int) []int {
	n := len(cycle)
	if n == 0 {
		return []int{}
	}
	by %= n
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = cycle[(by+i)%n]
	}
	return out
}

// rotateInPlace rotates cycle left by `by` positions, writing the result
// back into cycle through a temporary rotated copy.
func rotateInPlace(cycle []int, by int) {
	n := len(cycle)
	if n == 0 {
		return
	}
	by %= n
	if by == 0 {
		return
	}
	rotated := rotateLeft(cycle, by)
	copy(cycle, rotated)
}

func reverseOf(cycle []int) []int {
	n := len(cycle)
	out := make([]int, n)
	for i, v := range cycle {
		out[n-1-i] = v
	}
	return out
}

func lessOrEqual(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) <= len(b)
}

func cycleKey(cycle []int) string {
	parts := make([]string, len(cycle))
	for i, v := range cycle {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ",")
}

// ArbitrageCandidate is a cycle together with its summed log exchange
// rate in both directions of traversal.
type ArbitrageCandidate struct {
	Cycle       []int
	ForwardSum  float64
	BackwardSum float64
	Positive    bool
}

// ArbitrageCandidates scores every cycle built by BuildCycles in both
// directions, walking it from the WSOL node and taking each edge's rate
// in the direction that walk crosses it. Cycles with an edge that has
// no price data yet are left out. A cycle is reported with Positive set
// when either its forward or backward log-rate sum is greater than
// zero: a sum of unnegated log10(rate) values greater than zero already
// means a net multiplicative gain around the loop.
func (g *Graph) ArbitrageCandidates() ([]ArbitrageCandidate, error) {
	candidates := make([]ArbitrageCandidate, 0, len(g.AllCycles))

cycles:
	for _, cycle := range g.AllCycles {
		forwardSum := 0.0
		node := g.wsolNode
		for _, edgeIndex := range cycle {
			edge := &g.Edges[edgeIndex]
			rate, err := edge.GetLogExchangeRate(node == edge.NodeLowest)
			if errors.Is(err, ErrNoPriceData) {
				continue cycles
			}
			if err != nil {
				return nil, err
			}
			forwardSum += rate
			node, _ = edge.GetOtherNode(node)
		}

		backwardSum := 0.0
		node = g.wsolNode
		for i := len(cycle) - 1; i >= 0; i-- {
			edge := &g.Edges[cycle[i]]
			rate, err := edge.GetLogExchangeRate(node == edge.NodeLowest)
			if err != nil {
				return nil, err
			}
			backwardSum += rate
			node, _ = edge.GetOtherNode(node)
		}

		candidates = append(candidates, ArbitrageCandidate{
			Cycle:       append([]int(nil), cycle...),
			ForwardSum:  forwardSum,
			BackwardSum: backwardSum,
			Positive:    forwardSum > 0 || backwardSum > 0,
		})
	}

	return candidates, nil
}
