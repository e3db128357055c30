package audit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyAuditLog(t *testing.T) {
	key := []byte("test-signing-key")
	log := NewAuditLog(
		EntityTypeRule,
		"8f14e45f-ceea-4f31-9452-8d9f4b2ff2f3",
		ActionCreate,
		"admin",
		nil,
		json.RawMessage(`{"name":"Limit ceny","weight":8}`),
	)

	sig, err := SignAuditLog(log, key)
	require.NoError(t, err)
	require.NotEmpty(t, sig)
	log.Signature = sig

	ok, err := VerifyAuditLogSignature(log, key)
	require.NoError(t, err)
	assert.True(t, ok)

	// Tampering with the payload invalidates the signature.
	log.Actor = "intruder"
	ok, err = VerifyAuditLogSignature(log, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyAuditLog_NoSignature(t *testing.T) {
	log := NewAuditLog(EntityTypeWarningRule, "x", ActionDelete, "admin", nil, nil)
	ok, err := VerifyAuditLogSignature(log, []byte("key"))
	require.NoError(t, err)
	assert.False(t, ok)
}
