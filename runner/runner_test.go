package runner_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/NethermindEth/netdiff/mocks"
	"github.com/NethermindEth/netdiff/runner"
	"github.com/NethermindEth/netdiff/statediff"
	"github.com/NethermindEth/netdiff/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	addr = statediff.Address("0x6B175474E89094C44Da98b954EedeAC495271d0F")
	key1 = statediff.Slot("0x0000000000000000000000000000000000000000000000000000000000000001")
	key2 = statediff.Slot("0x0000000000000000000000000000000000000000000000000000000000000002")
)

func newConfig(t *testing.T, listContent string) *runner.Config {
	t.Helper()

	dir := t.TempDir()
	inputFile := filepath.Join(dir, "txs.txt")
	require.NoError(t, os.WriteFile(inputFile, []byte(listContent), 0o600))

	return &runner.Config{
		LogLevel:    utils.ERROR,
		InputFile:   inputFile,
		OutputDir:   filepath.Join(dir, "out"),
		APIURL:      "http://localhost:8080",
		MaxFetchers: 4,
	}
}

func result(blockNumber uint64, entries ...statediff.StateDiff) *statediff.TransactionResult {
	return &statediff.TransactionResult{StateDiff: entries, BlockNumber: blockNumber}
}

func change(key, original, dirty statediff.Slot) statediff.StateDiff {
	return statediff.StateDiff{
		Address: addr,
		Raw: []statediff.RawSlotDiff{{
			Address:  addr,
			Key:      key,
			Original: original,
			Dirty:    dirty,
		}},
	}
}

func TestNew(t *testing.T) {
	t.Run("missing input file is rejected before any I/O", func(t *testing.T) {
		cfg := newConfig(t, "0xaaa\n")
		cfg.InputFile = ""

		_, err := runner.New(cfg, "test")
		require.ErrorContains(t, err, "invalid configuration")
		require.ErrorContains(t, err, "InputFile")
	})

	t.Run("fetcher count must be positive", func(t *testing.T) {
		cfg := newConfig(t, "0xaaa\n")
		cfg.MaxFetchers = 0

		_, err := runner.New(cfg, "test")
		require.ErrorContains(t, err, "invalid configuration")
	})

	t.Run("api url must parse", func(t *testing.T) {
		cfg := newConfig(t, "0xaaa\n")
		cfg.APIURL = "not a url"

		_, err := runner.New(cfg, "test")
		require.ErrorContains(t, err, "invalid configuration")
	})
}

func TestRun(t *testing.T) {
	t.Run("merges transactions and writes the net diff", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		source := mocks.NewMockSource(mockCtrl)

		cfg := newConfig(t, "0xaaa\n0xbbb first repays, second borrows\n")
		r, err := runner.New(cfg, "test")
		require.NoError(t, err)
		r = r.WithSource(source)

		source.EXPECT().TransactionResult(gomock.Any(), "0xaaa").
			Return(result(100, change(key1, "0x0", "0x1"), change(key2, "0x2", "0x3")), nil)
		source.EXPECT().TransactionResult(gomock.Any(), "0xbbb").
			Return(result(101, change(key1, "0x1", "0x6")), nil)

		require.NoError(t, r.Run(t.Context()))

		encoded, err := os.ReadFile(r.OutputPath())
		require.NoError(t, err)

		var net []statediff.StateDiff
		require.NoError(t, json.Unmarshal(encoded, &net))
		require.Len(t, net, 2)
		assert.Equal(t, change(key1, "0x0", "0x6"), net[0])
		assert.Equal(t, change(key2, "0x2", "0x3"), net[1])

		// Placeholder decoding fields serialize as literal nulls.
		var loose []map[string]any
		require.NoError(t, json.Unmarshal(encoded, &loose))
		for _, field := range []string{"soltype", "original", "dirty"} {
			val, ok := loose[0][field]
			require.True(t, ok)
			assert.Nil(t, val)
		}
	})

	t.Run("output file name derives from the input list", func(t *testing.T) {
		cfg := newConfig(t, "0xaaa\n")
		r, err := runner.New(cfg, "test")
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(cfg.OutputDir, "txs.netdiff.json"), r.OutputPath())
	})

	t.Run("out-of-order transactions abort before merging", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		source := mocks.NewMockSource(mockCtrl)

		cfg := newConfig(t, "0xaaa\n0xbbb\n0xccc\n")
		r, err := runner.New(cfg, "test")
		require.NoError(t, err)
		r = r.WithSource(source)

		source.EXPECT().TransactionResult(gomock.Any(), "0xaaa").Return(result(5), nil)
		source.EXPECT().TransactionResult(gomock.Any(), "0xbbb").Return(result(7), nil)
		source.EXPECT().TransactionResult(gomock.Any(), "0xccc").Return(result(6), nil)

		err = r.Run(t.Context())
		require.ErrorContains(t, err, "out of order")
		assert.NoFileExists(t, r.OutputPath())
	})

	t.Run("raw diff contract violation writes nothing", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		source := mocks.NewMockSource(mockCtrl)

		cfg := newConfig(t, "0xaaa\n")
		r, err := runner.New(cfg, "test")
		require.NoError(t, err)
		r = r.WithSource(source)

		twoRaw := statediff.StateDiff{
			Address: addr,
			Raw: []statediff.RawSlotDiff{
				{Address: addr, Key: key1, Original: "0x1", Dirty: "0x2"},
				{Address: addr, Key: key2, Original: "0x3", Dirty: "0x4"},
			},
		}
		source.EXPECT().TransactionResult(gomock.Any(), "0xaaa").Return(result(100, twoRaw), nil)

		err = r.Run(t.Context())
		require.ErrorContains(t, err, "raw diffs")
		assert.NoFileExists(t, r.OutputPath())
	})

	t.Run("resolution failures propagate", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		source := mocks.NewMockSource(mockCtrl)

		cfg := newConfig(t, "0xaaa\n")
		r, err := runner.New(cfg, "test")
		require.NoError(t, err)
		r = r.WithSource(source)

		source.EXPECT().TransactionResult(gomock.Any(), "0xaaa").
			Return(nil, assert.AnError)

		require.ErrorIs(t, r.Run(t.Context()), assert.AnError)
		assert.NoFileExists(t, r.OutputPath())
	})

	t.Run("empty input list", func(t *testing.T) {
		cfg := newConfig(t, "# only comments\n")
		r, err := runner.New(cfg, "test")
		require.NoError(t, err)

		require.ErrorContains(t, r.Run(t.Context()), "no entries")
	})
}
