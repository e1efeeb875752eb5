package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/vitalvas/binlookup/keygen"
)

func newKeygenCmd(opts *rootOptions) *cobra.Command {
	var (
		out      string
		password string
		force    bool
		keyOpts  keygen.Options
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Create a PKCS#12 key container for the sandbox",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			if out == "" {
				out = cfg.KeystorePath
			}

			if password == "" {
				password = cfg.KeystorePassword
			}

			if out == "" || password == "" {
				return errors.New("keygen: output path and password are required (flags or MASTERCARD_P12_FILE_PATH and MASTERCARD_KEYSTORE_PASSWORD)")
			}

			if !force {
				if _, err := os.Stat(out); err == nil {
					return fmt.Errorf("keygen: %s already exists, use --force to replace it", out)
				}
			}

			if _, err := keygen.WriteFile(out, password, keyOpts); err != nil {
				return err
			}

			klog.V(2).InfoS("Wrote key container", "path", out)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)

			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&out, "out", "", "container path (default from MASTERCARD_P12_FILE_PATH)")
	flags.StringVar(&password, "password", "", "container password (default from MASTERCARD_KEYSTORE_PASSWORD)")
	flags.BoolVar(&force, "force", false, "replace an existing file")
	flags.IntVar(&keyOpts.Bits, "bits", keygen.DefaultBits, "RSA key size")
	flags.StringVar(&keyOpts.CommonName, "cn", "", "certificate common name")
	flags.DurationVar(&keyOpts.Validity, "validity", 0, "certificate lifetime (default one year)")

	return cmd
}
