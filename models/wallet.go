package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// DefaultAccentColor is applied when a client omits an entity color.
const DefaultAccentColor = "#6366F1"

// WalletPayload is the kind-specific document of [KindWallet].
type WalletPayload struct {
	Name     string `json:"name"`
	IconName string `json:"icon_name,omitempty"`
	Color    string `json:"color,omitempty"`

	// Currency is an uppercase ISO-4217 code, e.g. "USD".
	Currency string `json:"currency"`

	Balance decimal.Decimal `json:"balance"`

	// IsDefault marks the wallet preselected for new transactions.
	// At most one wallet per user should carry it; the latest write wins.
	IsDefault  bool  `json:"is_default,omitempty"`
	OrderIndex int32 `json:"order_index,omitempty"`
}

// AdjustWalletBalance returns the wallet document with delta added to its
// balance. The rewrite goes through a generic map, like
// [ApplyPayloadDefaults], so document fields unknown to this server
// version survive.
func AdjustWalletBalance(payload json.RawMessage, delta decimal.Decimal) (json.RawMessage, error) {
	var wallet WalletPayload
	if err := json.Unmarshal(payload, &wallet); err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, err
	}
	doc["balance"] = wallet.Balance.Add(delta)

	return json.Marshal(doc)
}
