package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_Arithmetic(t *testing.T) {
	price := MustMoney("19.99")

	assert.Equal(t, "39.98", price.Times(2).String())
	assert.Equal(t, "0.30", MustMoney("0.10").Plus(MustMoney("0.20")).String())
	assert.Equal(t, "0.00", Money{}.String())
}

func TestMoney_JSON(t *testing.T) {
	b, err := json.Marshal(MustMoney("5"))
	require.NoError(t, err)
	assert.Equal(t, `"5.00"`, string(b))

	var fromString, fromNumber Money
	require.NoError(t, json.Unmarshal([]byte(`"12.345"`), &fromString))
	require.NoError(t, json.Unmarshal([]byte(`12.5`), &fromNumber))
	assert.Equal(t, "12.35", fromString.String())
	assert.Equal(t, "12.50", fromNumber.String())
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan(float64(39.98)))
	assert.Equal(t, "39.98", m.String())

	require.NoError(t, m.Scan("20.00"))
	assert.True(t, m.Equal(MustMoney("20").Decimal))

	require.NoError(t, m.Scan(int64(7)))
	assert.Equal(t, "7.00", m.String())
}
