// Package diffsource resolves input-list entries into transaction results.
// An entry is either a 0x-prefixed transaction hash, served by the simulation
// API, or a path to a simulation document saved on disk earlier.
package diffsource

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/NethermindEth/netdiff/clients/simulator"
	"github.com/NethermindEth/netdiff/statediff"
	"github.com/pkg/errors"
)

//go:generate mockgen -destination=../mocks/mock_diffsource.go -package=mocks github.com/NethermindEth/netdiff/diffsource Source
type Source interface {
	TransactionResult(ctx context.Context, entry string) (*statediff.TransactionResult, error)
}

// simulationDocument mirrors the layout of a saved simulation: the block
// number sits at the top level while the diffs are nested one level deeper
// than in the API response.
type simulationDocument struct {
	BlockNumber uint64 `json:"block_number"`
	Simulation  struct {
		Info struct {
			StateDiff []statediff.StateDiff `json:"state_diff"`
		} `json:"info"`
	} `json:"simulation"`
}

type Resolver struct {
	client *simulator.Client
}

var _ Source = (*Resolver)(nil)

func New(client *simulator.Client) *Resolver {
	return &Resolver{client: client}
}

func (r *Resolver) TransactionResult(ctx context.Context, entry string) (*statediff.TransactionResult, error) {
	if strings.HasPrefix(entry, "0x") {
		tx, err := r.client.TransactionStateDiff(ctx, entry)
		if err != nil {
			return nil, err
		}
		return &statediff.TransactionResult{
			StateDiff:   tx.StateDiff,
			BlockNumber: tx.BlockNumber,
		}, nil
	}
	return resultFromFile(entry)
}

func resultFromFile(path string) (*statediff.TransactionResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read simulation %s", path)
	}

	doc := new(simulationDocument)
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, errors.Wrapf(err, "decode simulation %s", path)
	}

	return &statediff.TransactionResult{
		StateDiff:   doc.Simulation.Info.StateDiff,
		BlockNumber: doc.BlockNumber,
	}, nil
}
