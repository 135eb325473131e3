package statediff

import (
	"fmt"

	"github.com/NethermindEth/netdiff/utils"
)

type slotState struct {
	original Slot
	dirty    Slot
}

// ComputeNetStateDiff collapses the given change entries, in the exact order
// the transactions wrote them, into one entry per (address, key) pair: the
// original value is the one first seen for the pair, the dirty value the one
// last seen. A slot written back to its original value is still reported; the
// output records that a slot was touched, not only net-nonzero changes.
//
// Output order is deterministic: addresses appear in the order each was first
// encountered, and keys within an address likewise. Entries whose raw list
// does not hold exactly one diff violate the upstream data contract and abort
// the merge, since their meaning is undefined.
func ComputeNetStateDiff(entries []StateDiff) ([]StateDiff, error) {
	accumulated := utils.NewOrderedMap[Address, *utils.OrderedMap[Slot, *slotState]]()

	for _, entry := range entries {
		if len(entry.Raw) != 1 {
			return nil, fmt.Errorf("state diff entry for address %s holds %d raw diffs, want exactly 1",
				entry.Address, len(entry.Raw))
		}
		raw := entry.Raw[0]

		slots, ok := accumulated.Get(raw.Address)
		if !ok {
			slots = utils.NewOrderedMap[Slot, *slotState]()
			accumulated.Put(raw.Address, slots)
		}

		if state, seen := slots.Get(raw.Key); seen {
			// Last write wins; the first-seen original stays fixed.
			state.dirty = raw.Dirty
		} else {
			slots.Put(raw.Key, &slotState{original: raw.Original, dirty: raw.Dirty})
		}
	}

	net := []StateDiff{}
	for _, addr := range accumulated.Keys() {
		slots, _ := accumulated.Get(addr)
		for _, key := range slots.Keys() {
			state, _ := slots.Get(key)
			net = append(net, StateDiff{
				Address: addr,
				Raw: []RawSlotDiff{{
					Address:  addr,
					Key:      key,
					Original: state.original,
					Dirty:    state.dirty,
				}},
			})
		}
	}
	return net, nil
}
