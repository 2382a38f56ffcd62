package grid

// Components walks the closed path and returns the corners of each link
// component in travel order. A component alternates X and O corners:
// [X0, O0, X1, O1, ...], where X_k->O_k is a vertical segment and
// O_k->X_{k+1} (wrapping to X0) is a horizontal one.
//
// Each walk starts at the X of the lowest-numbered column not yet visited,
// so the output is deterministic. A knot has exactly one component.
func (d *Diagram) Components() [][]Point {
	idx := d.index()
	visited := make([]bool, d.n)
	var comps [][]Point

	for start := 0; start < d.n; start++ {
		if visited[start] {
			continue
		}
		var corners []Point
		col := start
		for {
			visited[col] = true
			corners = append(corners,
				Point{Row: idx.xRow[col], Col: col},
				Point{Row: idx.oRow[col], Col: col},
			)
			col = idx.xCol[idx.oRow[col]]
			if col == start {
				break
			}
		}
		comps = append(comps, corners)
	}
	return comps
}

// ComponentCount returns the number of link components.
func (d *Diagram) ComponentCount() int {
	return len(d.Components())
}
