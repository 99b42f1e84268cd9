package models

import "time"

// IgnoredPair records a dismissed merge suggestion. The pair is stored
// canonicalized (LocationA is the lexically smaller id), which makes the
// relation symmetric by construction and dismissal commutative.
//
// Modeled as its own table rather than an ignore array on each Location: a
// per-row array invites a two-sided write race and cannot be checked in
// O(1).
type IgnoredPair struct {
	LocationA string    `gorm:"column:location_a;primaryKey" json:"location_a"`
	LocationB string    `gorm:"column:location_b;primaryKey" json:"location_b"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName sets the table name for IgnoredPair.
func (IgnoredPair) TableName() string {
	return "ignored_location_pairs"
}

// CanonicalPair orders two location ids into canonical (A, B) form.
func CanonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// PairSet is an in-memory snapshot of the ignore relation with O(1)
// membership checks. Scans preload it once instead of querying per pair.
type PairSet map[[2]string]struct{}

// Add inserts a pair in canonical form.
func (s PairSet) Add(a, b string) {
	x, y := CanonicalPair(a, b)
	s[[2]string{x, y}] = struct{}{}
}

// Contains checks membership regardless of argument order.
func (s PairSet) Contains(a, b string) bool {
	x, y := CanonicalPair(a, b)
	_, ok := s[[2]string{x, y}]
	return ok
}
