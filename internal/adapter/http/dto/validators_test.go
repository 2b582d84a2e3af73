package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := TransferRequest{
		SenderWalletID:  "  3f2b8c1e  ",
		ReceiverOwnerID: " owner ",
		Description:     " rent for march ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "3f2b8c1e", req.SenderWalletID)
	assert.Equal(t, "owner", req.ReceiverOwnerID)
	assert.Equal(t, "rent for march", req.Description)
}

func TestSanitizeStruct_EscapesHTML(t *testing.T) {
	req := SetWalletStatusRequest{
		Status: "BLOCKED",
		Reason: "chargeback <script>alert('x')</script> review",
		Actor:  "ops:alice",
	}
	SanitizeStruct(&req)

	assert.Contains(t, req.Reason, "&lt;script&gt;")
	assert.NotContains(t, req.Reason, "<script>")
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
}

// --- Custom Validator tests ---

func TestSafeReference_Valid(t *testing.T) {
	cases := []string{
		"ref-001",
		"REF_002",
		"a.b.c",
		"simple123",
		"ABC-def_GHI.123",
	}
	for _, tc := range cases {
		assert.True(t, safeReferenceRe.MatchString(tc), "expected valid: %s", tc)
	}
}

func TestSafeReference_Invalid(t *testing.T) {
	cases := []string{
		"ref 001",     // space
		"ref<001>",    // angle brackets
		"ref;DROP",    // semicolon
		"",            // empty
		"hello world", // space
		"ref\n001",    // newline
	}
	for _, tc := range cases {
		assert.False(t, safeReferenceRe.MatchString(tc), "expected invalid: %s", tc)
	}
}
