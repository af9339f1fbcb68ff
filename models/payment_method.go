package models

// PaymentMethodPayload is the kind-specific document of [KindPaymentMethod].
type PaymentMethodPayload struct {
	Name     string `json:"name"`
	IconName string `json:"icon_name,omitempty"`

	// IsDefault marks the method preselected for new transactions.
	IsDefault bool `json:"is_default,omitempty"`
}
