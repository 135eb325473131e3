package statediff_test

import (
	"testing"

	"github.com/NethermindEth/netdiff/statediff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func results(blockNumbers ...uint64) []statediff.TransactionResult {
	rs := make([]statediff.TransactionResult, len(blockNumbers))
	for i, n := range blockNumbers {
		rs[i].BlockNumber = n
	}
	return rs
}

func TestValidateOrdering(t *testing.T) {
	t.Run("non-decreasing sequences pass", func(t *testing.T) {
		assert.NoError(t, statediff.ValidateOrdering(nil))
		assert.NoError(t, statediff.ValidateOrdering(results(5)))
		assert.NoError(t, statediff.ValidateOrdering(results(5, 7, 9)))
	})

	t.Run("equal block numbers pass", func(t *testing.T) {
		assert.NoError(t, statediff.ValidateOrdering(results(5, 5, 7, 7)))
	})

	t.Run("decreasing block numbers fail", func(t *testing.T) {
		err := statediff.ValidateOrdering(results(5, 7, 6))
		require.ErrorContains(t, err, "out of order")
		require.ErrorContains(t, err, "entry 2")
		require.ErrorContains(t, err, "block 6")
	})
}
