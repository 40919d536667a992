package structure

import (
	"errors"
	"fmt"
	"testing"
)

func mustPreset(t *testing.T, name string) Preset {
	t.Helper()
	p, err := LookupPreset(name)
	if err != nil {
		t.Fatalf("LookupPreset(%q): %v", name, err)
	}
	return p
}

func TestNewSequence(t *testing.T) {
	got := NewSequence("  mkt ayiak\n qrqisfvk \t")
	if got != "MKTAYIAKQRQISFVK" {
		t.Errorf("NewSequence = %q, want %q", got, "MKTAYIAKQRQISFVK")
	}
	if got.Len() != 16 {
		t.Errorf("Len = %d, want 16", got.Len())
	}
}

func TestLookupPreset(t *testing.T) {
	p, err := LookupPreset("")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != DefaultPreset {
		t.Errorf("default preset = %q, want %q", p.Name, DefaultPreset)
	}

	_, err = LookupPreset("beta-barrel")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("unknown preset error = %v, want ErrInvalidArgument", err)
	}
}

func TestTraceDeterministic(t *testing.T) {
	for _, p := range Presets() {
		t.Run(p.Name, func(t *testing.T) {
			g := NewGenerator(p)
			seq := NewSequence("MKTAYIAKQRQISFVKSHFSRQ")
			a := formatPDB(t, &Record{Chains: []Chain{g.Trace(seq, 'A', 12.5)}})
			b := formatPDB(t, &Record{Chains: []Chain{g.Trace(seq, 'A', 12.5)}})
			if a != b {
				t.Error("two traces with identical arguments differ")
			}
		})
	}
}

func TestTraceAtomCountAndSerials(t *testing.T) {
	for _, p := range Presets() {
		for _, n := range []int{1, 7, 40} {
			t.Run(fmt.Sprintf("%s/%d", p.Name, n), func(t *testing.T) {
				seq := make([]byte, n)
				for i := range seq {
					seq[i] = "ACDEFGHIKLMNPQRSTVWY"[i%20]
				}
				c := NewGenerator(p).Trace(Sequence(seq), 'B', 0)

				want := n * p.AtomsPerResidue()
				if len(c.Atoms) != want {
					t.Fatalf("atom count = %d, want %d", len(c.Atoms), want)
				}
				for i, a := range c.Atoms {
					if a.Serial != i+1 {
						t.Fatalf("atom %d serial = %d, want %d", i, a.Serial, i+1)
					}
				}
			})
		}
	}
}

func TestTraceAtomOrderAndUniqueness(t *testing.T) {
	c := NewGenerator(mustPreset(t, "alpha")).Trace(NewSequence("GSXB"), 'A', 0)

	order := []string{"N", "CA", "C", "O"}
	seen := make(map[string]bool)
	for i, a := range c.Atoms {
		if a.Name != order[i%4] {
			t.Errorf("atom %d name = %q, want %q", i, a.Name, order[i%4])
		}
		if a.ResSeq != i/4+1 {
			t.Errorf("atom %d residue = %d, want %d", i, a.ResSeq, i/4+1)
		}
		// Unrecognized letters still get the placeholder residue.
		if a.ResName != PlaceholderResidue {
			t.Errorf("atom %d residue name = %q, want %q", i, a.ResName, PlaceholderResidue)
		}
		key := fmt.Sprintf("%s/%d/%c", a.Name, a.ResSeq, a.Chain)
		if seen[key] {
			t.Errorf("duplicate atom key %s", key)
		}
		seen[key] = true
	}
}

func TestTraceResiduesNotCollinear(t *testing.T) {
	c := NewGenerator(mustPreset(t, "alpha")).Trace(NewSequence("AAA"), 'A', 0)
	ca := []int{1, 5, 9}
	for _, i := range ca {
		if c.Atoms[i].Name != "CA" {
			t.Fatalf("atom %d is %q, want CA", i, c.Atoms[i].Name)
		}
	}
	a, b, d := c.Atoms[1].Pos, c.Atoms[5].Pos, c.Atoms[9].Pos
	// Cross product of (b-a) and (d-a) vanishes only for collinear points.
	ux, uy, uz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	vx, vy, vz := d.X-a.X, d.Y-a.Y, d.Z-a.Z
	cx, cy, cz := uy*vz-uz*vy, uz*vx-ux*vz, ux*vy-uy*vx
	if cx*cx+cy*cy+cz*cz < 1e-6 {
		t.Error("successive alpha carbons are collinear")
	}
}

func TestTraceEmpty(t *testing.T) {
	c := NewGenerator(mustPreset(t, "alpha")).Trace("", 'A', 0)
	if len(c.Atoms) != 0 {
		t.Errorf("empty sequence produced %d atoms", len(c.Atoms))
	}
}

func TestStackedChainsDoNotOverlap(t *testing.T) {
	for _, p := range Presets() {
		t.Run(p.Name, func(t *testing.T) {
			g := NewGenerator(p)
			specs := g.Stack([]ChainSpec{
				{ID: 'A', Seq: NewSequence("MKTAYIAKQRQISFVKSHFSRQLEERLGLIEVQ")},
				{ID: 'H', Seq: NewSequence("EVQLVESGGG")},
				{ID: 'L', Seq: NewSequence("DIQMTQSPSSLSASVGDRVT")},
			})
			rec, err := g.Assemble(nil, specs...)
			if err != nil {
				t.Fatal(err)
			}
			for i := 1; i < len(rec.Chains); i++ {
				_, prevHi := rec.Chains[i-1].ZRange()
				lo, _ := rec.Chains[i].ZRange()
				if lo <= prevHi {
					t.Errorf("chain %c starts at z=%.3f, below chain %c top z=%.3f",
						rec.Chains[i].ID, lo, rec.Chains[i-1].ID, prevHi)
				}
			}
		})
	}
}

func TestAssembleSerialsAcrossChains(t *testing.T) {
	g := NewGenerator(mustPreset(t, "alpha-3"))
	rec, err := g.Assemble([]string{"test"},
		ChainSpec{ID: 'A', Seq: "AAAA"},
		ChainSpec{ID: 'B', Seq: "GG", ZOffset: 50},
	)
	if err != nil {
		t.Fatal(err)
	}
	if rec.AtomCount() != 18 {
		t.Fatalf("AtomCount = %d, want 18", rec.AtomCount())
	}
	serial := 0
	for _, c := range rec.Chains {
		for _, a := range c.Atoms {
			serial++
			if a.Serial != serial {
				t.Fatalf("chain %c atom serial = %d, want %d", c.ID, a.Serial, serial)
			}
		}
	}
}

func TestAssembleDuplicateChain(t *testing.T) {
	g := NewGenerator(mustPreset(t, "alpha"))
	_, err := g.Assemble(nil, ChainSpec{ID: 'A', Seq: "AA"}, ChainSpec{ID: 'A', Seq: "GG"})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("duplicate chain error = %v, want ErrInvalidArgument", err)
	}
}
