// Package queue defines message payloads exchanged over the message broker
// and the background consumer that drains them.
package queue

// UnitViewedEvent is published whenever a client viewing of a unit variant
// is recorded.  It carries enough context for downstream analytics to work
// without querying the primary database.
type UnitViewedEvent struct {
	ViewID        uint64 `json:"view_id"`
	ClientID      uint64 `json:"client_id"`
	ClientName    string `json:"client_name"`
	UnitVariantID uint64 `json:"unit_variant_id"`
	UnitName      string `json:"unit_name"`
	ProjectID     uint64 `json:"project_id"`
	ViewedAt      string `json:"viewed_at"`
}
