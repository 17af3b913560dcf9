// Package tool holds the block-walking editing tools.
package tool

import "github.com/memmaker/voxedit/engine/geom"

// neighbours in visiting order.
var neighbours = [6]geom.Vector{
	{X: 1}, {X: -1},
	{Z: 1}, {Z: -1},
	{Y: 1}, {Y: -1},
}

// Walk visits the 6-connected block positions reachable from origin
// depth first. A position is skipped if it lies farther than radius from
// origin or was seen before; otherwise visit is called once for it and
// its neighbours are explored only if visit returns true. An error from
// visit ends the walk and is returned unchanged.
//
// The order matches a recursive walk taking neighbours in +X, -X, +Z,
// -Z, +Y, -Y order.
func Walk(origin geom.Vector, radius float64, visit func(pos geom.Vector) (bool, error)) error {
	origin = origin.ToBlockPoint()
	visited := make(map[geom.Vector]struct{})
	stack := []geom.Vector{origin}
	for len(stack) > 0 {
		pos := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if origin.Distance(pos) > radius {
			continue
		}
		if _, seen := visited[pos]; seen {
			continue
		}
		visited[pos] = struct{}{}

		descend, err := visit(pos)
		if err != nil {
			return err
		}
		if !descend {
			continue
		}
		for i := len(neighbours) - 1; i >= 0; i-- {
			stack = append(stack, pos.Add(neighbours[i]))
		}
	}
	return nil
}
