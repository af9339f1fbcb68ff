package models

import "encoding/json"

// DefaultIconName returns the icon applied when a client omits one.
// Kinds without a cosmetic icon return "".
func DefaultIconName(kind EntityKind) string {
	switch kind {
	case KindWallet:
		return "wallet"
	case KindCategory:
		return "category"
	case KindObjective:
		return "flag"
	case KindPaymentMethod:
		return "credit_card"
	}

	return ""
}

// ApplyPayloadDefaults fills omitted cosmetic fields (accent color, icon
// name) of a payload document with the kind's defaults and returns the
// possibly rewritten document. Kinds without cosmetic fields, and
// documents that already carry values, pass through untouched.
//
// The rewrite goes through a generic map so document fields unknown to
// this server version survive the round trip. Applied on the REST create
// path only: sync submissions are stored byte-exact so idempotent
// replays keep hashing the same.
func ApplyPayloadDefaults(kind EntityKind, payload json.RawMessage) (json.RawMessage, error) {
	defaults := map[string]string{}
	switch kind {
	case KindWallet, KindCategory, KindObjective:
		defaults["color"] = DefaultAccentColor
		defaults["icon_name"] = DefaultIconName(kind)
	case KindPaymentMethod:
		defaults["icon_name"] = DefaultIconName(kind)
	default:
		return payload, nil
	}

	var doc map[string]any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, err
	}

	changed := false
	for key, value := range defaults {
		if current, ok := doc[key]; ok && current != nil && current != "" {
			continue
		}
		doc[key] = value
		changed = true
	}

	if !changed {
		return payload, nil
	}

	return json.Marshal(doc)
}

// SetDocumentField returns the payload document with one field set,
// preserving fields unknown to this server version.
func SetDocumentField(payload json.RawMessage, key string, value any) (json.RawMessage, error) {
	var doc map[string]any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, err
	}
	doc[key] = value

	return json.Marshal(doc)
}
