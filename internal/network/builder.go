package network

import "math"

// Bipartite describes a two-layer plant/animal interaction network.
// Rows are plant-type entities, columns animal-type. Either layer may
// be nil; at least one must be present.
type Bipartite struct {
	Pollination [][]float64 // B
	Dispersal   [][]float64 // S

	PollinationStrength float64 // m
	DispersalStrength   float64 // d
	Competition         float64 // c, magnitude (>= 0)
}

// Matrices holds the signed interaction matrices over the flattened
// species ordering: plants occupy indices [0, Plants), animals
// [Plants, Plants+Animals). Mut[i][j] >= 0 and Comp[i][j] <= 0 for
// every cell, and at most one of the two is nonzero.
type Matrices struct {
	Mut     [][]float64
	Comp    [][]float64
	Plants  int
	Animals int
}

func (m *Matrices) Total() int { return m.Plants + m.Animals }

type layer struct {
	mat      [][]float64
	strength float64
}

// Build constructs interaction matrices from a bipartite description.
// Missing or undersized layers are zero-padded to the common
// (plants, animals) shape. Competition acts within each type, split
// evenly over the other active members of that layer; mutualism acts
// across types with sqrt-degree normalization, which caps but does not
// fully flatten per-entity mutualistic input.
func Build(b Bipartite) (*Matrices, error) {
	var layers []layer
	if len(b.Pollination) > 0 {
		layers = append(layers, layer{b.Pollination, b.PollinationStrength})
	}
	if len(b.Dispersal) > 0 {
		layers = append(layers, layer{b.Dispersal, b.DispersalStrength})
	}
	if len(layers) == 0 {
		return nil, &ConfigError{Reason: "no interaction layers supplied (need pollination or dispersal)"}
	}

	np, na := 0, 0
	for _, l := range layers {
		if len(l.mat) > np {
			np = len(l.mat)
		}
		for _, row := range l.mat {
			if len(row) > na {
				na = len(row)
			}
		}
	}
	if np == 0 || na == 0 {
		return nil, &ConfigError{Reason: "interaction layer has zero plants or zero animals"}
	}

	nt := np + na
	acc := squareMatrix(nt)

	for _, l := range layers {
		padded := pad(l.mat, np, na)
		accumulateCompetition(acc, padded, np, na, b.Competition)
		accumulateMutualism(acc, padded, np, l.strength)
	}

	return split(acc, np, na), nil
}

// BuildRing constructs a synthetic ring of n species: neighbours on
// the ring are mutualists with flat strength m, every other pair
// competes with flat magnitude c. No degree normalization here.
func BuildRing(n int, m, c float64) (*Matrices, error) {
	if n < 2 {
		return nil, &ConfigError{Reason: "ring needs at least 2 species"}
	}

	acc := squareMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			acc[i][j] = -c
		}
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		acc[i][j] = m
		acc[j][i] = m
	}

	return split(acc, n, 0), nil
}

func squareMatrix(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}

func pad(mat [][]float64, rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		if i < len(mat) {
			copy(out[i], mat[i])
		}
	}
	return out
}

// accumulateCompetition adds within-type competition for this layer:
// only entities with at least one incident edge in the layer compete,
// and the magnitude is shared over the other active members.
func accumulateCompetition(acc, mat [][]float64, np, na int, c float64) {
	activeP := make([]bool, np)
	activeA := make([]bool, na)
	for i := 0; i < np; i++ {
		for j := 0; j < na; j++ {
			if mat[i][j] != 0 {
				activeP[i] = true
				activeA[j] = true
			}
		}
	}

	addWithin(acc, activeP, 0, c)
	addWithin(acc, activeA, np, c)
}

func addWithin(acc [][]float64, active []bool, offset int, c float64) {
	count := 0
	for _, a := range active {
		if a {
			count++
		}
	}
	if count < 2 {
		return
	}
	share := c / math.Max(float64(count-1), 1)
	for i, ai := range active {
		if !ai {
			continue
		}
		for j, aj := range active {
			if !aj || i == j {
				continue
			}
			acc[offset+i][offset+j] -= share
		}
	}
}

// accumulateMutualism adds bidirectional cross-type credit for every
// positive edge, normalized by the square root of the giver's degree
// sum within this layer. Zero-sum denominators are skipped.
func accumulateMutualism(acc, mat [][]float64, np int, strength float64) {
	rowSum := make([]float64, len(mat))
	colSum := make([]float64, len(mat[0]))
	for i, row := range mat {
		for j, w := range row {
			rowSum[i] += w
			colSum[j] += w
		}
	}

	for i, row := range mat {
		for j, w := range row {
			if w <= 0 {
				continue
			}
			if rowSum[i] > 0 {
				acc[i][np+j] += strength * w / math.Sqrt(rowSum[i])
			}
			if colSum[j] > 0 {
				acc[np+j][i] += strength * w / math.Sqrt(colSum[j])
			}
		}
	}
}

// split partitions the signed accumulator by sign. Competition and
// mutualism have already been combined per cell, so a cell that would
// receive both collapses to its net sign here.
func split(acc [][]float64, np, na int) *Matrices {
	n := len(acc)
	out := &Matrices{
		Mut:     squareMatrix(n),
		Comp:    squareMatrix(n),
		Plants:  np,
		Animals: na,
	}
	for i := range acc {
		for j, v := range acc[i] {
			if v > 0 {
				out.Mut[i][j] = v
			} else if v < 0 {
				out.Comp[i][j] = v
			}
		}
	}
	return out
}
