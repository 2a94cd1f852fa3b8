package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddressChecksumsKnownVectors(t *testing.T) {
	// EIP-55 reference vectors.
	vectors := []string{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
		"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
	}

	for _, want := range vectors {
		t.Run(want, func(t *testing.T) {
			got, err := NewAddress(want)
			require.NoError(t, err)
			assert.Equal(t, want, got.String())
		})
	}
}

func TestNewAddressNormalizesCasing(t *testing.T) {
	canonical := "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

	lower, err := NewAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	require.NoError(t, err)
	upper, err := NewAddress("0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED")
	require.NoError(t, err)

	assert.Equal(t, Address(canonical), lower)
	assert.Equal(t, lower, upper)
}

func TestNewAddressRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"missing prefix", "5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"},
		{"too short", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1bea"},
		{"too long", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed00"},
		{"non-hex", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaezz"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewAddress(tc.in)
			assert.ErrorIs(t, err, ErrInvalidAddress)
		})
	}
}

func TestDifficultyBounds(t *testing.T) {
	for v := 1; v <= 5; v++ {
		d, err := NewDifficulty(v)
		require.NoError(t, err)
		assert.Equal(t, v*10, d.ReputationPoints())
	}

	for _, v := range []int{0, -1, 6, 100} {
		_, err := NewDifficulty(v)
		assert.ErrorIs(t, err, ErrInvalidDifficulty, "difficulty %d", v)
	}
}

func TestQuestTypeIndexMatchesCanonicalOrder(t *testing.T) {
	for i, qt := range QuestTypes {
		assert.Equal(t, i, qt.Index())
		assert.True(t, qt.IsValid())
	}

	assert.Equal(t, -1, QuestType("speedrun").Index())
	assert.False(t, QuestType("speedrun").IsValid())
}
