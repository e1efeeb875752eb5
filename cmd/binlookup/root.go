package main

import (
	"flag"
	"fmt"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/vitalvas/binlookup/binlookup"
	"github.com/vitalvas/binlookup/config"
	"github.com/vitalvas/binlookup/oauth1"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

type rootOptions struct {
	configPath string
	output     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "binlookup",
		Short: "Mastercard BIN Lookup API client with OAuth 1.0a RSA-SHA256 signing",
		Long: `binlookup signs requests to the Mastercard BIN Lookup API with OAuth 1.0a
RSA-SHA256 and prints the results.

Credentials come from a YAML file (--config) and the environment:
  MASTERCARD_CONSUMER_KEY, MASTERCARD_P12_FILE_PATH, MASTERCARD_KEYSTORE_PASSWORD,
  MASTERCARD_BASE_URL, MASTERCARD_TIMEOUT, SANDBOX_ADDR, SANDBOX_MAX_AGE.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if opts.output != outputTable && opts.output != outputJSON {
				return fmt.Errorf("unsupported output format %q", opts.output)
			}

			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a YAML configuration file")
	flags.StringVarP(&opts.output, "output", "o", outputTable, "output format: table or json")

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	flags.AddGoFlagSet(klogFlags)

	for _, name := range []string{"alsologtostderr", "log_backtrace_at", "log_dir", "log_file", "log_file_max_size", "logtostderr", "one_output", "skip_headers", "skip_log_headers", "stderrthreshold", "add_dir_header"} {
		_ = flags.MarkHidden(name)
	}

	cmd.AddCommand(
		newLookupCmd(opts),
		newRangesCmd(opts),
		newDetailsCmd(opts),
		newSearchCmd(opts),
		newSignCmd(opts),
		newSandboxCmd(opts),
		newKeygenCmd(opts),
	)

	return cmd
}

func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Context(), o.configPath)
	if err != nil {
		return nil, err
	}

	klog.V(2).InfoS("Loaded configuration", "config", cfg.String())

	return cfg, nil
}

func (o *rootOptions) newClient(cmd *cobra.Command) (*binlookup.Client, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	return binlookup.NewFromConfig(cfg)
}

func (o *rootOptions) loadIdentity(cmd *cobra.Command) (*oauth1.Identity, *config.Config, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	id, err := oauth1.LoadIdentity(cfg.ConsumerKey, cfg.KeystorePath, cfg.KeystorePassword)
	if err != nil {
		return nil, nil, err
	}

	return id, cfg, nil
}
