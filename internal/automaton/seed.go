package automaton

// Rand is the random stream consumed by seeding. IntN returns a uniformly
// distributed value in [0, n) and is only called with n > 0.
type Rand interface {
	IntN(n int) int
}

// SeedAlteration is one planned symmetric write: a shared color and the
// primary address followed by its horizontal, vertical and double mirrors.
type SeedAlteration struct {
	Color     uint32
	Addresses [4]Address
}

// QuadrantAddresses lists the top-left quadrant candidates in row-major
// order. A trailing odd row or column is excluded.
func QuadrantAddresses(g *Grid) []Address {
	rows, columns := g.height/2, g.width/2
	addrs := make([]Address, 0, rows*columns)
	for row := 0; row < rows; row++ {
		for column := 0; column < columns; column++ {
			addrs = append(addrs, Address{Row: row, Column: column})
		}
	}
	return addrs
}

// SeedRounds returns how many alterations PlanSeed draws for g.
func SeedRounds(g *Grid) int {
	if g.height/2 == 0 || g.width/2 == 0 {
		return 0
	}
	return g.height / 2
}

// PlanSeed draws every alteration without touching the grid. Each round
// draws an index into the full candidate list, then a color in [0, modulus).
// The candidate list never shrinks, so an address may be picked repeatedly.
func PlanSeed(g *Grid, r Rand, modulus uint32) ([]SeedAlteration, error) {
	if modulus == 0 {
		return nil, ErrInvalidModulus
	}
	candidates := QuadrantAddresses(g)
	rounds := SeedRounds(g)
	alterations := make([]SeedAlteration, 0, rounds)
	for i := 0; i < rounds; i++ {
		addr := candidates[r.IntN(len(candidates))]
		mirrors := [4]Address{
			addr,
			g.Reflect(addr, false, true),
			g.Reflect(addr, true, false),
			g.Reflect(addr, true, true),
		}
		color := uint32(r.IntN(int(modulus)))
		alterations = append(alterations, SeedAlteration{Color: color, Addresses: mirrors})
	}
	return alterations, nil
}

// ApplySeed writes alterations in order; later rounds win on overlap.
func ApplySeed(g *Grid, alterations []SeedAlteration) {
	for _, alt := range alterations {
		for _, addr := range alt.Addresses {
			g.Find(addr).Color = alt.Color
		}
	}
}

// Seed plans and applies a symmetric pattern on g and returns the plan.
func Seed(g *Grid, r Rand, modulus uint32) ([]SeedAlteration, error) {
	alterations, err := PlanSeed(g, r, modulus)
	if err != nil {
		return nil, err
	}
	ApplySeed(g, alterations)
	return alterations, nil
}
