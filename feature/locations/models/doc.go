// Package models defines the persisted rows (Location, Entry,
// IgnoredPair) and derived read-model types (EntryOnlyLocationGroup,
// EntryDerivedPlace, MergeSuggestion) of the locations engine.
//
// Nullable columns are pointers throughout: the engine's grouping and
// enrichment semantics distinguish "null" from "empty", and the derived
// grouping rules depend on exact null equality.
package models
