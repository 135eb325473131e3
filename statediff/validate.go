package statediff

import "fmt"

// ValidateOrdering asserts that the given results are in execution order,
// i.e. their block numbers never decrease. Merging out-of-order transactions
// would silently produce a diff that corresponds to no real execution
// history, so this is checked before any merging happens. Equal block
// numbers are fine: a block can hold several of the transactions.
func ValidateOrdering(results []TransactionResult) error {
	for i := 1; i < len(results); i++ {
		if results[i].BlockNumber < results[i-1].BlockNumber {
			return fmt.Errorf("transactions out of order: entry %d executed in block %d, before entry %d in block %d",
				i, results[i].BlockNumber, i-1, results[i-1].BlockNumber)
		}
	}
	return nil
}
