package models

// PropertyType classifies a property for tax purposes.
type PropertyType string

const (
	TypeResidential PropertyType = "Residential"
	TypeCommercial  PropertyType = "Commercial"
	TypeIndustrial  PropertyType = "Industrial"
)

// TaxRates is the fixed fractional tax rate per property type.
// There is no configuration override.
var TaxRates = map[PropertyType]float64{
	TypeResidential: 0.01,
	TypeCommercial:  0.015,
	TypeIndustrial:  0.02,
}

// Valid reports whether the type is one of the three enumerated values.
func (t PropertyType) Valid() bool {
	_, ok := TaxRates[t]
	return ok
}

// Property represents a taxable real-estate unit owned by one user.
// PropertyID is the external identifier, unique across all users.
// Size is stored verbatim as entered; no numeric parsing is applied.
type Property struct {
	ID               int64        `json:"id"`
	UserID           int64        `json:"user_id"`
	PropertyID       string       `json:"property_id"`
	Address          string       `json:"address"`
	Size             string       `json:"size"`
	Type             PropertyType `json:"type"`
	OwnershipDetails string       `json:"ownership_details"`
}
