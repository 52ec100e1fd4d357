package model

import "time"

// Client is a prospective buyer tracked by agents.  Clients are catalog
// records, not login identities; they never authenticate.
type Client struct {
	ID        uint64    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ClientView records that a client was shown a unit variant.  Rows are
// written when an agent records a viewing and mirrored to the analytics
// queue.
type ClientView struct {
	ID            uint64    `json:"id"`
	ClientID      uint64    `json:"clientId"`
	UnitVariantID uint64    `json:"unitVariantId"`
	ViewedAt      time.Time `json:"viewedAt"`
}
