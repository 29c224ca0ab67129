package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToModelTrimsAllFields(t *testing.T) {
	req := &SubmitRegistrationRequest{
		FullName:       "  Asha Rao  ",
		Email:          "\tasha@example.com\n",
		ContactNumber:  " 9876543210 ",
		BatchNo:        "  B-42  ",
		Gender:         " Female ",
		ReferralSource: "  Friend ",
	}

	reg := req.ToModel()
	assert.Equal(t, "Asha Rao", reg.FullName)
	assert.Equal(t, "asha@example.com", reg.Email)
	assert.Equal(t, "9876543210", reg.ContactNumber)
	assert.Equal(t, "B-42", reg.BatchNo)
	assert.Equal(t, "Female", reg.Gender)
	assert.Equal(t, "Friend", reg.ReferralSource)
}

func TestToModelLeavesAdministrativeFieldsAlone(t *testing.T) {
	reg := (&SubmitRegistrationRequest{FullName: "Asha Rao"}).ToModel()
	assert.Zero(t, reg.ID)
	assert.True(t, reg.SubmittedAt.IsZero())
	assert.False(t, reg.AccountCreated)
	assert.Nil(t, reg.CreatedUserID)
}

func TestParseOptionalDate(t *testing.T) {
	parsed := parseOptionalDate(" 2001-07-15 ")
	require.NotNil(t, parsed)
	assert.Equal(t, time.Date(2001, 7, 15, 0, 0, 0, 0, time.UTC), *parsed)

	// Blank and malformed values are dropped, not rejected.
	assert.Nil(t, parseOptionalDate(""))
	assert.Nil(t, parseOptionalDate("   "))
	assert.Nil(t, parseOptionalDate("15/07/2001"))
	assert.Nil(t, parseOptionalDate("2001-13-40"))
}
