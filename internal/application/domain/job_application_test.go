package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatusLabel(t *testing.T) {
	assert.Equal(t, StatusApplied, ParseStatusLabel("APPLIED"))
	assert.Equal(t, StatusInterviewing, ParseStatusLabel("interviewing"))
	assert.Equal(t, StatusOffer, ParseStatusLabel("  OFFER \n"))
	assert.Equal(t, StatusRejected, ParseStatusLabel("Rejected"))

	// Anything outside the known set degrades to OTHER
	assert.Equal(t, StatusOther, ParseStatusLabel("MAYBE"))
	assert.Equal(t, StatusOther, ParseStatusLabel(""))
	assert.Equal(t, StatusOther, ParseStatusLabel("The status is APPLIED"))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "APPLIED", StatusLabel(StatusApplied))
	assert.Equal(t, "REJECTED", StatusLabel(StatusRejected))
	assert.Equal(t, "OTHER", StatusLabel(42))
}

func TestIsValidStatus(t *testing.T) {
	for id := StatusApplied; id <= StatusRejected; id++ {
		assert.True(t, IsValidStatus(id))
	}
	assert.False(t, IsValidStatus(0))
	assert.False(t, IsValidStatus(6))
}
