package models

// PaymentDateFormat is the layout for server-assigned payment timestamps.
const PaymentDateFormat = "2006-01-02 15:04:05"

// Payment is an immutable record of a tax amount paid against a property.
// PropertyID references Property.PropertyID (the external id), not the
// numeric row id. Rows are append-only.
type Payment struct {
	ID          int64   `json:"id"`
	PropertyID  string  `json:"property_id"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"`
}
