// Package antibody grafts CDR loops onto fixed variable-domain frameworks and
// scores and ranks candidate CDR sets.
package antibody

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is returned when CDR input violates the graft contract.
var ErrInvalidArgument = errors.New("invalid argument")

// CDRCount is the number of CDR loops per chain.
const CDRCount = 3

// Framework holds the four framework regions of one variable domain.
type Framework struct {
	FR1 string `json:"fr1"`
	FR2 string `json:"fr2"`
	FR3 string `json:"fr3"`
	FR4 string `json:"fr4"`
}

// Trastuzumab frameworks, split at IMGT CDR boundaries.
var (
	TrastuzumabHeavy = Framework{
		FR1: "EVQLVESGGGLVQPGGSLRLSCAAS",
		FR2: "IHWVRQAPGKGLEWVAR",
		FR3: "RYADSVKGRFTISADTSKNTAYLQMNSLRAEDTAVYYC",
		FR4: "WGQGTLVTVSS",
	}
	TrastuzumabLight = Framework{
		FR1: "DIQMTQSPSSLSASVGDRVTITCRAS",
		FR2: "VAWYQQKPGKAPKLLIY",
		FR3: "FLYSGVPSRFSGSRSGTDFTLTISSLQPEDFATYYC",
		FR4: "FGQGTKVEIK",
	}
)

// Splice returns FR1+CDR1+FR2+CDR2+FR3+CDR3+FR4. cdrs must hold CDRCount loops.
func (f Framework) Splice(cdrs []string) (string, error) {
	if len(cdrs) != CDRCount {
		return "", fmt.Errorf("%w: want %d CDRs, got %d", ErrInvalidArgument, CDRCount, len(cdrs))
	}
	var b strings.Builder
	for _, seg := range []string{f.FR1, cdrs[0], f.FR2, cdrs[1], f.FR3, cdrs[2], f.FR4} {
		b.WriteString(seg)
	}
	return b.String(), nil
}

// Region labels returned by Regions.
const (
	RegionFramework = "FW"
	RegionCDR1      = "CDR1"
	RegionCDR2      = "CDR2"
	RegionCDR3      = "CDR3"
)

// Regions labels every residue of Splice(cdrs): element i is the region of
// residue i+1.
func (f Framework) Regions(cdrs []string) ([]string, error) {
	if len(cdrs) != CDRCount {
		return nil, fmt.Errorf("%w: want %d CDRs, got %d", ErrInvalidArgument, CDRCount, len(cdrs))
	}
	var out []string
	label := func(seg, region string) {
		for range seg {
			out = append(out, region)
		}
	}
	label(f.FR1, RegionFramework)
	label(cdrs[0], RegionCDR1)
	label(f.FR2, RegionFramework)
	label(cdrs[1], RegionCDR2)
	label(f.FR3, RegionFramework)
	label(cdrs[2], RegionCDR3)
	label(f.FR4, RegionFramework)
	return out, nil
}

// Grafter splices CDRs into a heavy and a light framework.
type Grafter struct {
	Heavy Framework
	Light Framework
}

// NewGrafter returns a grafter over the given frameworks.
func NewGrafter(heavy, light Framework) *Grafter {
	return &Grafter{Heavy: heavy, Light: light}
}

// DefaultGrafter grafts onto the trastuzumab frameworks.
func DefaultGrafter() *Grafter {
	return NewGrafter(TrastuzumabHeavy, TrastuzumabLight)
}

// Graft builds full heavy and light variable-domain sequences. Each chain
// needs exactly three CDRs in CDR1..CDR3 order; no alignment or length
// checks are applied to the loops themselves.
func (g *Grafter) Graft(heavy, light []string) (heavyFull, lightFull string, err error) {
	heavyFull, err = g.Heavy.Splice(heavy)
	if err != nil {
		return "", "", fmt.Errorf("heavy chain: %w", err)
	}
	lightFull, err = g.Light.Splice(light)
	if err != nil {
		return "", "", fmt.Errorf("light chain: %w", err)
	}
	return heavyFull, lightFull, nil
}

// Regions labels the residues of the chains Graft would build.
func (g *Grafter) Regions(heavy, light []string) (heavyRegions, lightRegions []string, err error) {
	heavyRegions, err = g.Heavy.Regions(heavy)
	if err != nil {
		return nil, nil, fmt.Errorf("heavy chain: %w", err)
	}
	lightRegions, err = g.Light.Regions(light)
	if err != nil {
		return nil, nil, fmt.Errorf("light chain: %w", err)
	}
	return heavyRegions, lightRegions, nil
}
