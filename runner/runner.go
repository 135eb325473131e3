// Package runner wires the input list, the diff sources and the merge into
// one run of the tool.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/NethermindEth/netdiff/clients/simulator"
	"github.com/NethermindEth/netdiff/diffsource"
	"github.com/NethermindEth/netdiff/inputlist"
	"github.com/NethermindEth/netdiff/statediff"
	"github.com/NethermindEth/netdiff/utils"
	"github.com/NethermindEth/netdiff/validator"
	"github.com/olekukonko/tablewriter"
	"github.com/sourcegraph/conc/iter"
)

// Config is the top-level netdiff configuration.
type Config struct {
	LogLevel utils.LogLevel `mapstructure:"log-level"`
	Colour   bool           `mapstructure:"colour"`

	InputFile   string `mapstructure:"input-file" validate:"required"`
	OutputDir   string `mapstructure:"output-dir" validate:"required"`
	APIURL      string `mapstructure:"api-url" validate:"required,url"`
	AccessKey   string `mapstructure:"access-key"`
	MaxFetchers int    `mapstructure:"max-fetchers" validate:"gte=1"`
	Summary     bool   `mapstructure:"summary"`
}

// NetDiffRunner is the surface the command-line entry point drives.
type NetDiffRunner interface {
	Run(ctx context.Context) error
}

type NewRunnerFn func(cfg *Config, version string) (NetDiffRunner, error)

type Runner struct {
	cfg    *Config
	log    utils.SimpleLogger
	source diffsource.Source
}

var _ NetDiffRunner = (*Runner)(nil)

// New validates the config and builds the logger and the diff sources. Any
// configuration error is reported here, before a single byte of I/O happens.
func New(cfg *Config, version string) (*Runner, error) {
	if err := validator.Validator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := utils.NewZapLogger(cfg.LogLevel, cfg.Colour)
	if err != nil {
		return nil, err
	}

	client := simulator.NewClient(cfg.APIURL).
		WithLogger(log).
		WithUserAgent(fmt.Sprintf("netdiff/%s", version))
	if cfg.AccessKey != "" {
		client = client.WithAccessKey(cfg.AccessKey)
	}

	return &Runner{
		cfg:    cfg,
		log:    log,
		source: diffsource.New(client),
	}, nil
}

func (r *Runner) WithSource(source diffsource.Source) *Runner {
	r.source = source
	return r
}

// Run resolves every input entry, checks execution order, merges and writes
// the net diff. Nothing is written unless every stage succeeded.
func (r *Runner) Run(ctx context.Context) error {
	entries, err := inputlist.ParseFile(r.cfg.InputFile)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("input list %s holds no entries", r.cfg.InputFile)
	}
	r.log.Infow("Resolving transaction diffs", "entries", len(entries))

	// Entries resolve concurrently, but the mapper hands results back in
	// input-line order; both the ordering check and the merge depend on it.
	mapper := iter.Mapper[string, *statediff.TransactionResult]{MaxGoroutines: r.cfg.MaxFetchers}
	resolved, err := mapper.MapErr(entries, func(entry *string) (*statediff.TransactionResult, error) {
		return r.source.TransactionResult(ctx, *entry)
	})
	if err != nil {
		return err
	}

	results := make([]statediff.TransactionResult, len(resolved))
	for i, res := range resolved {
		results[i] = *res
	}

	if err := statediff.ValidateOrdering(results); err != nil {
		return err
	}

	var flattened []statediff.StateDiff
	for _, res := range results {
		flattened = append(flattened, res.StateDiff...)
	}

	net, err := statediff.ComputeNetStateDiff(flattened)
	if err != nil {
		return err
	}

	path, err := r.writeNetDiff(net)
	if err != nil {
		return err
	}
	r.log.Infow("Wrote net state diff", "path", path, "transactions", len(results), "slots", len(net))

	if r.cfg.Summary {
		renderSummary(os.Stdout, net)
	}
	return nil
}

// OutputPath reports where Run writes the net diff: the input list's base
// name, inside the output directory.
func (r *Runner) OutputPath() string {
	base := filepath.Base(r.cfg.InputFile)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(r.cfg.OutputDir, base+".netdiff.json")
}

func (r *Runner) writeNetDiff(net []statediff.StateDiff) (string, error) {
	encoded, err := json.MarshalIndent(net, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", r.cfg.OutputDir, err)
	}

	path := r.OutputPath()
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return "", fmt.Errorf("write net state diff %s: %w", path, err)
	}
	return path, nil
}

func renderSummary(out io.Writer, net []statediff.StateDiff) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Address", "Key", "Original", "Dirty"})
	for _, entry := range net {
		raw := entry.Raw[0]
		table.Append([]string{string(raw.Address), string(raw.Key), string(raw.Original), string(raw.Dirty)})
	}
	table.SetFooter([]string{"Total", fmt.Sprintf("%d", len(net)), "", ""})
	table.Render()
}
