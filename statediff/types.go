// Package statediff holds the wire types for per-transaction storage diffs
// and the logic that collapses an ordered sequence of them into one net diff.
package statediff

// Address is a 20-byte contract address in hex form. It is only ever used as
// a lookup key, so the exact casing received upstream is preserved.
type Address string

// Slot is a 32-byte hex value identifying either a storage key or a storage
// value. Slots are opaque; they are never interpreted numerically.
type Slot string

// RawSlotDiff records a single storage write: slot Key at Address changed
// from Original to Dirty during one transaction.
type RawSlotDiff struct {
	Address  Address `json:"address"`
	Key      Slot    `json:"key"`
	Original Slot    `json:"original"`
	Dirty    Slot    `json:"dirty"`
}

// StateDiff is one change entry of a transaction's state diff as reported by
// the simulation API. SolType, Original and Dirty carry the API's decoded
// representation of the slot; decoding does not work for proxied contracts,
// so they are kept only to reproduce the upstream document shape and are
// always serialized as null. Raw wraps exactly one RawSlotDiff per entry.
type StateDiff struct {
	Address  Address       `json:"address"`
	SolType  any           `json:"soltype"`
	Original any           `json:"original"`
	Dirty    any           `json:"dirty"`
	Raw      []RawSlotDiff `json:"raw"`
}

// Transaction is the document returned by the simulation API for a single
// transaction hash.
type Transaction struct {
	Hash        string      `json:"hash"`
	BlockNumber uint64      `json:"block_number"`
	StateDiff   []StateDiff `json:"state_diff"`
}

// TransactionResult is the decoded outcome of resolving one input entry,
// whether it came from the API or from a local simulation document.
type TransactionResult struct {
	StateDiff   []StateDiff
	BlockNumber uint64
}
