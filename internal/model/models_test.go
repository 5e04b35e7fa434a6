package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerProjections(t *testing.T) {
	p := &Player{
		ID:          uuid.New(),
		Username:    "rizky",
		Email:       "rizky@example.com",
		Name:        "Rizky",
		Avatar:      "a.png",
		PhoneNumber: "081234567890",
	}

	profile := p.Profile()
	assert.Equal(t, p.ID, profile.ID)
	assert.Equal(t, "rizky", profile.Username)
	assert.Equal(t, "rizky@example.com", profile.Email)

	summary := p.Summary()
	assert.Equal(t, PlayerSummary{ID: p.ID, Name: "Rizky", PhoneNumber: "081234567890", Avatar: "a.png"}, summary)
}

func TestProfileUpdate_IsEmpty(t *testing.T) {
	assert.True(t, ProfileUpdate{}.IsEmpty())

	name := "x"
	assert.False(t, ProfileUpdate{Name: &name}.IsEmpty())
}

func TestTransactionJSON_AmountsAreNumbers(t *testing.T) {
	tx := Transaction{
		Tax:   decimal.NewFromInt(10000),
		Value: decimal.NewFromInt(90000),
		HistoryVoucherTopup: VoucherTopupSnapshot{
			GameName: "Mobile Legends",
			Price:    decimal.NewFromInt(100000),
		},
	}

	raw, err := json.Marshal(tx)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, float64(90000), decoded["value"])
	assert.Equal(t, float64(10000), decoded["tax"])
	topup := decoded["historyVoucherTopup"].(map[string]any)
	assert.Equal(t, float64(100000), topup["price"])
	assert.NotContains(t, decoded, "category")
}
