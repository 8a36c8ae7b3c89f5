package entity

import "time"

// Registry sources that can answer a CNPJ lookup.
const (
	SourceCNPJA     = "cnpja"
	SourceBrasilAPI = "brasilapi"
)

// Activity is an economic activity (CNAE) code paired with its description.
type Activity struct {
	Code        string `json:"code,omitempty"`
	Description string `json:"description"`
}

// Label renders the activity as "<code> - <text>", or just the text when no code is known.
func (a Activity) Label() string {
	if a.Code == "" {
		return a.Description
	}
	return a.Code + " - " + a.Description
}

// Address holds the postal address components of a registered office.
type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	State      string `json:"state"`
}

// RegistryRecord is the normalized company profile returned by a CNPJ lookup.
type RegistryRecord struct {
	CNPJ                 string     `json:"cnpj"`
	LegalName            string     `json:"legal_name"`
	TradeName            string     `json:"trade_name"`
	Address              Address    `json:"address"`
	Phone                *string    `json:"phone,omitempty"`
	PrimaryActivity      Activity   `json:"primary_activity"`
	PrimaryActivityLabel string     `json:"primary_activity_label"`
	SecondaryActivities  []Activity `json:"secondary_activities"`
	Status               *string    `json:"status,omitempty"`
	Latitude             *float64   `json:"latitude,omitempty"`
	Longitude            *float64   `json:"longitude,omitempty"`
	Source               string     `json:"source"`
	ResolvedAt           time.Time  `json:"resolved_at"`
}
