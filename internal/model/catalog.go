package model

import "time"

// The catalog is a strict hierarchy: country -> state -> city -> project ->
// unit variant.  Names are unique within their parent.  Each level keeps a
// parent foreign key; deleting a parent with children is rejected at the
// store layer.

// Country is the top of the catalog hierarchy.
type Country struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// State belongs to a country.
type State struct {
	ID        uint64    `json:"id"`
	CountryID uint64    `json:"countryId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// City belongs to a state.
type City struct {
	ID        uint64    `json:"id"`
	StateID   uint64    `json:"stateId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Project is a real-estate development within a city.
type Project struct {
	ID          uint64    `json:"id"`
	CityID      uint64    `json:"cityId"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UnitVariant is a sellable unit layout offered within a project.
type UnitVariant struct {
	ID         uint64    `json:"id"`
	ProjectID  uint64    `json:"projectId"`
	Name       string    `json:"name"`
	Bedrooms   uint8     `json:"bedrooms"`
	Bathrooms  uint8     `json:"bathrooms"`
	AreaSqft   uint32    `json:"areaSqft"`
	PriceCents uint64    `json:"priceCents"`
	CreatedAt  time.Time `json:"createdAt"`
}
