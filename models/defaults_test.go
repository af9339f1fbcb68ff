package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPayloadDefaults_FillsOmittedFields(t *testing.T) {
	out, err := ApplyPayloadDefaults(KindWallet, json.RawMessage(`{"name":"Daily","currency":"USD"}`))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, DefaultAccentColor, doc["color"])
	assert.Equal(t, "wallet", doc["icon_name"])
	assert.Equal(t, "Daily", doc["name"])
}

func TestApplyPayloadDefaults_KeepsProvidedValues(t *testing.T) {
	in := json.RawMessage(`{"name":"Food","color":"#FF0000","icon_name":"pizza"}`)
	out, err := ApplyPayloadDefaults(KindCategory, in)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "#FF0000", doc["color"])
	assert.Equal(t, "pizza", doc["icon_name"])
}

func TestApplyPayloadDefaults_PreservesUnknownFields(t *testing.T) {
	in := json.RawMessage(`{"name":"Cash","future_field":42}`)
	out, err := ApplyPayloadDefaults(KindPaymentMethod, in)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, float64(42), doc["future_field"])
	assert.Equal(t, "credit_card", doc["icon_name"])
}

func TestApplyPayloadDefaults_PassesThroughKindsWithoutDefaults(t *testing.T) {
	in := json.RawMessage(`{"wallet_id":"w-1","amount":"9.90"}`)
	out, err := ApplyPayloadDefaults(KindTransaction, in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestApplyPayloadDefaults_MalformedDocument(t *testing.T) {
	_, err := ApplyPayloadDefaults(KindWallet, json.RawMessage(`{"name":`))
	require.Error(t, err)
}
