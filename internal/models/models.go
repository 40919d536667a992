package models

// Campaign status values.
const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

// Campaign represents a campaign entry in the meta database. Each campaign
// owns an isolated design database.
type Campaign struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DBPath      string `json:"db_path"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Design kinds recorded in a campaign's history.
const (
	KindAntigen  = "antigen"
	KindGraft    = "graft"
	KindScore    = "score"
	KindRank     = "rank"
	KindEngineer = "engineer"
	KindComplex  = "complex"
	KindHotSpots = "hotspots"
	KindContacts = "contacts"
	KindParatope = "paratope"
)

// Design is one recorded pipeline result.
type Design struct {
	ID     string   `json:"id"`
	Kind   string   `json:"kind"`
	Name   string   `json:"name"`
	Motif  string   `json:"motif,omitempty"`
	Score  *float64 `json:"score,omitempty"`
	Format string   `json:"format"`
	// Input is the tool arguments as JSON.
	Input string `json:"input"`
	// Output is the produced artifact: structure text, FASTA or a JSON table.
	// Listings leave it empty.
	Output    string `json:"output,omitempty"`
	CreatedAt string `json:"created_at"`
}
