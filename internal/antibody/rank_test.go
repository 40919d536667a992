package antibody

import (
	"errors"
	"testing"
)

func TestRankOrdersByScore(t *testing.T) {
	r := DefaultRanker()
	for _, motif := range r.Motifs() {
		got := r.Rank(motif)
		if len(got) != len(DefaultLibrary[motif]) {
			t.Fatalf("Rank(%q) = %d candidates, want %d", motif, len(got), len(DefaultLibrary[motif]))
		}
		for i := 1; i < len(got); i++ {
			if got[i].Score > got[i-1].Score {
				t.Errorf("Rank(%q): %s (%.2f) ranked below %s (%.2f)",
					motif, got[i].Name, got[i].Score, got[i-1].Name, got[i-1].Score)
			}
		}
		for _, c := range got {
			if c.Score != Score(c.HeavyCDRs, c.LightCDRs) {
				t.Errorf("%s: Score = %v, want %v", c.Name, c.Score, Score(c.HeavyCDRs, c.LightCDRs))
			}
			heavy, light, err := DefaultGrafter().Graft(c.HeavyCDRs, c.LightCDRs)
			if err != nil {
				t.Fatal(err)
			}
			if c.Heavy != heavy || c.Light != light {
				t.Errorf("%s: grafted sequences differ from Graft", c.Name)
			}
			if c.Motif != motif {
				t.Errorf("%s: Motif = %q, want %q", c.Name, c.Motif, motif)
			}
		}
	}
}

func TestRankStableForTies(t *testing.T) {
	cdrs := Entry{Heavy: []string{"GFTFSRYT", "ISSSGGST", "ARTVRYGMDV"}, Light: []string{"QSVSSY", "DAS", "QQRSSWPFT"}}
	first, second, low := cdrs, cdrs, cdrs
	first.Name, second.Name = "first", "second"
	low.Name = "low"
	low.Heavy = []string{"G", "G", "G"}

	r, err := NewRanker(DefaultGrafter(), Library{"M": {low, first, second}})
	if err != nil {
		t.Fatal(err)
	}
	got := r.Rank("M")
	names := []string{got[0].Name, got[1].Name, got[2].Name}
	want := []string{"first", "second", "low"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order = %v, want %v", names, want)
		}
	}
}

func TestRankUnknownMotif(t *testing.T) {
	got := DefaultRanker().Rank("NoSuchMotif")
	if got == nil {
		t.Fatal("Rank returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("Rank = %d candidates, want 0", len(got))
	}
}

func TestRankMotifCaseInsensitive(t *testing.T) {
	r := DefaultRanker()
	if len(r.Rank(" globo-h ")) != len(DefaultLibrary["Globo-H"]) {
		t.Error("motif lookup should ignore case and surrounding space")
	}
}

func TestRankDoesNotMutateLibrary(t *testing.T) {
	lib := Library{"Tn": {{Name: "a", Heavy: []string{"A", "B", "CDE"}, Light: []string{"F", "G", "H"}}}}
	r, err := NewRanker(DefaultGrafter(), lib)
	if err != nil {
		t.Fatal(err)
	}
	got := r.Rank("Tn")
	got[0].HeavyCDRs[2] = "MUTATED"

	if lib["Tn"][0].Heavy[2] != "CDE" {
		t.Errorf("library entry mutated: %q", lib["Tn"][0].Heavy[2])
	}
	if again := r.Rank("Tn"); again[0].HeavyCDRs[2] != "CDE" {
		t.Errorf("second Rank saw %q", again[0].HeavyCDRs[2])
	}
}

func TestNewRankerRejectsBadLibrary(t *testing.T) {
	_, err := NewRanker(DefaultGrafter(), Library{"Tn": {{Name: "short", Heavy: []string{"A", "B"}, Light: []string{"C", "D", "E"}}}})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("short entry error = %v, want ErrInvalidArgument", err)
	}

	_, err = NewRanker(DefaultGrafter(), Library{"Tn": nil, "TN": nil})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("colliding motif error = %v, want ErrInvalidArgument", err)
	}
}
