package structure

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ChainGap is the Z clearance, in angstroms, left between stacked chains.
const ChainGap = 10.0

// DefaultPreset names the parameterization used when none is requested.
const DefaultPreset = "alpha"

// Backbone atom offsets from the alpha carbon. They keep N, CA and C of one
// residue off a common line so ribbon splines have something to bend around.
var (
	offsetN = r3.Vec{X: -0.55, Y: 0.85, Z: -0.60}
	offsetC = r3.Vec{X: 0.65, Y: 0.90, Z: 0.55}
	offsetO = r3.Vec{X: 0.60, Y: 2.10, Z: 0.75}
)

// Preset is one parameterization of the helical placement.
type Preset struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Step        float64 `json:"step_degrees"`
	Radius      float64 `json:"radius"`
	Rise        float64 `json:"rise"`
	Oxygen      bool    `json:"carbonyl_oxygen"`
}

// AtomsPerResidue is 4 when carbonyl oxygens are placed, 3 otherwise.
func (p Preset) AtomsPerResidue() int {
	if p.Oxygen {
		return 4
	}
	return 3
}

var presets = []Preset{
	{Name: "alpha", Description: "helical trace with carbonyl oxygens", Step: 100, Radius: 2.3, Rise: 1.5, Oxygen: true},
	{Name: "alpha-3", Description: "helical trace, N/CA/C only", Step: 100, Radius: 2.3, Rise: 1.5},
	{Name: "tight", Description: "narrow helix with a 60 degree step", Step: 60, Radius: 2.0, Rise: 1.5, Oxygen: true},
	{Name: "extended", Description: "stretched helix approximating an extended strand", Step: 100, Radius: 2.0, Rise: 3.8, Oxygen: true},
	{Name: "linear", Description: "straight trace along Z; some ribbon renderers collapse it", Step: 0, Radius: 0, Rise: 3.8, Oxygen: true},
}

// Presets returns every named parameterization, default first.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// LookupPreset resolves a preset by name. An empty name selects DefaultPreset.
func LookupPreset(name string) (Preset, error) {
	if name == "" {
		name = DefaultPreset
	}
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidArgument, name)
}

// Generator places synthetic backbone atoms. The zero value is not useful;
// build one with NewGenerator.
type Generator struct {
	preset Preset
}

// NewGenerator returns a generator for the given preset.
func NewGenerator(p Preset) Generator {
	return Generator{preset: p}
}

// Preset returns the generator's parameterization.
func (g Generator) Preset() Preset { return g.preset }

// Trace converts seq into one chain. Residue i (0-based) puts its alpha carbon
// at angle i*step on a helix of the preset radius, i*rise above zOffset.
// Atoms are emitted N, CA, C[, O] per residue with serials starting at 1.
// An empty sequence yields a chain with no atoms.
func (g Generator) Trace(seq Sequence, chain byte, zOffset float64) Chain {
	p := g.preset
	out := Chain{ID: chain, Seq: seq, Atoms: make([]Atom, 0, seq.Len()*p.AtomsPerResidue())}
	step := p.Step * math.Pi / 180

	for i := 0; i < seq.Len(); i++ {
		angle := float64(i) * step
		ca := r3.Vec{
			X: p.Radius * math.Cos(angle),
			Y: p.Radius * math.Sin(angle),
			Z: zOffset + float64(i)*p.Rise,
		}
		place := func(name, element string, pos r3.Vec) {
			out.Atoms = append(out.Atoms, Atom{
				Serial:  len(out.Atoms) + 1,
				Name:    name,
				Element: element,
				ResName: PlaceholderResidue,
				ResSeq:  i + 1,
				Chain:   chain,
				Pos:     pos,
			})
		}
		place("N", "N", r3.Add(ca, offsetN))
		place("CA", "C", ca)
		place("C", "C", r3.Add(ca, offsetC))
		if p.Oxygen {
			place("O", "O", r3.Add(ca, offsetO))
		}
	}
	return out
}

// ChainSpec requests one chain of a structure.
type ChainSpec struct {
	ID      byte
	Seq     Sequence
	ZOffset float64
}

// Stack returns a copy of specs with Z offsets assigned so that consecutive
// chains never overlap: each chain starts ChainGap above the end of the
// previous chain's length times the preset rise.
func (g Generator) Stack(specs []ChainSpec) []ChainSpec {
	out := make([]ChainSpec, len(specs))
	z := 0.0
	for i, s := range specs {
		s.ZOffset = z
		out[i] = s
		z += float64(s.Seq.Len())*g.preset.Rise + ChainGap
	}
	return out
}

// Assemble traces every spec and renumbers atom serials across the whole
// record so they run 1..N without gaps. Chain identifiers must be unique.
func (g Generator) Assemble(remarks []string, specs ...ChainSpec) (*Record, error) {
	seen := make(map[byte]bool, len(specs))
	rec := &Record{Remarks: append([]string(nil), remarks...)}
	serial := 0
	for _, s := range specs {
		if seen[s.ID] {
			return nil, fmt.Errorf("%w: duplicate chain id %q", ErrInvalidArgument, s.ID)
		}
		seen[s.ID] = true

		c := g.Trace(s.Seq, s.ID, s.ZOffset)
		for i := range c.Atoms {
			serial++
			c.Atoms[i].Serial = serial
		}
		rec.Chains = append(rec.Chains, c)
	}
	return rec, nil
}
