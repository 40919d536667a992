package antibody

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// EisenbergConsensus is the normalized consensus hydrophobicity scale
// (Eisenberg et al., 1984). Letters outside the table score 0.
var EisenbergConsensus = map[rune]float64{
	'A': 0.62, 'R': -2.53, 'N': -0.78, 'D': -0.90, 'C': 0.29,
	'Q': -0.85, 'E': -0.74, 'G': 0.48, 'H': -0.40, 'I': 1.38,
	'L': 1.06, 'K': -1.50, 'M': 0.64, 'F': 1.19, 'P': 0.12,
	'S': -0.18, 'T': -0.05, 'W': 0.81, 'Y': 0.26, 'V': 1.08,
}

const (
	aromaticWeight = 3.0
	hydroxylWeight = 1.5

	cdrH3MinLen   = 10
	cdrH3MaxLen   = 16
	lengthBonus   = 5.0
	lengthPenalty = -3.0

	momentWeight = 10.0
	momentTarget = 0.1
)

// Terms is the breakdown of a CDR set score.
type Terms struct {
	Composition float64 `json:"composition"`
	Length      float64 `json:"length"`
	Moment      float64 `json:"moment"`
	Total       float64 `json:"total"`
}

// Score returns the suitability score of a heavy/light CDR set.
func Score(heavy, light []string) float64 {
	return Breakdown(heavy, light).Total
}

// Breakdown computes the three additive score terms:
//
//	composition = 3.0*(Y+W) + 1.5*(S+T) over all CDRs
//	length      = +5.0 if 10 <= len(CDR-H3) <= 16, else -3.0
//	moment      = 10*(1 - |mean hydrophobicity(CDR-H3) - 0.1|), 0 for an empty CDR-H3
//
// Total is their sum rounded to two decimals. A missing CDR-H3 counts as empty.
func Breakdown(heavy, light []string) Terms {
	var t Terms

	var aromatic, hydroxyl int
	for _, cdr := range append(append([]string(nil), heavy...), light...) {
		for _, r := range strings.ToUpper(cdr) {
			switch r {
			case 'Y', 'W':
				aromatic++
			case 'S', 'T':
				hydroxyl++
			}
		}
	}
	t.Composition = aromaticWeight*float64(aromatic) + hydroxylWeight*float64(hydroxyl)

	h3 := ""
	if len(heavy) >= CDRCount {
		h3 = strings.ToUpper(heavy[CDRCount-1])
	}
	if n := len(h3); n >= cdrH3MinLen && n <= cdrH3MaxLen {
		t.Length = lengthBonus
	} else {
		t.Length = lengthPenalty
	}

	if h3 != "" {
		values := make([]float64, 0, len(h3))
		for _, r := range h3 {
			values = append(values, EisenbergConsensus[r])
		}
		t.Moment = momentWeight * (1 - math.Abs(stat.Mean(values, nil)-momentTarget))
	}

	t.Total = math.Round((t.Composition+t.Length+t.Moment)*100) / 100
	return t
}
