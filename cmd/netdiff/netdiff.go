package main

import (
	"github.com/NethermindEth/netdiff/runner"
	"github.com/NethermindEth/netdiff/utils"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Version = "dev"

const (
	configF      = "config"
	logLevelF    = "log-level"
	colourF      = "colour"
	inputFileF   = "input-file"
	outputDirF   = "output-dir"
	apiURLF      = "api-url"
	accessKeyF   = "access-key"
	maxFetchersF = "max-fetchers"
	summaryF     = "summary"

	defaultConfig      = ""
	defaultColour      = true
	defaultInputFile   = ""
	defaultOutputDir   = "netdiffs"
	defaultAPIURL      = ""
	defaultAccessKey   = ""
	defaultMaxFetchers = 4
	defaultSummary     = false

	configFlagUsage    = "The yaml configuration file."
	logLevelFlagUsage  = "Options: debug, info, warn, error."
	colourFlagUsage    = "Use colour in logs."
	inputFileFlagUsage = "File listing the transactions to collapse, one per line in execution order. " +
		"Entries are either 0x-prefixed transaction hashes or paths to saved simulation documents."
	outputDirFlagUsage   = "Directory the net state diff is written to; created if absent."
	apiURLFlagUsage      = "Base URL of the transaction-simulation API."
	accessKeyFlagUsage   = "Access key sent with every simulation API request."
	maxFetchersFlagUsage = "Number of diffs fetched concurrently. Results are merged in input order regardless."
	summaryFlagUsage     = "Print a per-slot summary table after writing the net diff."
)

func NewCmd(newRunnerFn runner.NewRunnerFn) *cobra.Command {
	netdiffCmd := &cobra.Command{
		Use:     "netdiff [flags]",
		Short:   "Collapse an ordered sequence of transaction state diffs into one net diff.",
		Version: Version,
	}

	var cfgFile string
	defaultLogLevel := utils.INFO

	netdiffCmd.Flags().StringVar(&cfgFile, configF, defaultConfig, configFlagUsage)
	netdiffCmd.Flags().Var(&defaultLogLevel, logLevelF, logLevelFlagUsage)
	netdiffCmd.Flags().Bool(colourF, defaultColour, colourFlagUsage)
	netdiffCmd.Flags().String(inputFileF, defaultInputFile, inputFileFlagUsage)
	netdiffCmd.Flags().String(outputDirF, defaultOutputDir, outputDirFlagUsage)
	netdiffCmd.Flags().String(apiURLF, defaultAPIURL, apiURLFlagUsage)
	netdiffCmd.Flags().String(accessKeyF, defaultAccessKey, accessKeyFlagUsage)
	netdiffCmd.Flags().Int(maxFetchersF, defaultMaxFetchers, maxFetchersFlagUsage)
	netdiffCmd.Flags().Bool(summaryF, defaultSummary, summaryFlagUsage)

	netdiffCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		v := viper.New()
		if cfgFile != "" {
			v.SetConfigType("yaml")
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return err
			}
		}

		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		cfg := new(runner.Config)
		if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
		))); err != nil {
			return err
		}

		r, err := newRunnerFn(cfg, Version)
		if err != nil {
			return err
		}
		return r.Run(cmd.Context())
	}

	return netdiffCmd
}
