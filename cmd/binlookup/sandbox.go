package main

import (
	"crypto/rsa"
	"fmt"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/vitalvas/binlookup/sandbox"
)

func newSandboxCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Serve a mock BIN Lookup API that verifies signed requests",
		Long: `sandbox serves demo BIN data and accepts requests signed with the key
container from the configuration. Point MASTERCARD_BASE_URL at it to exercise
the client end to end. Create a container with "binlookup keygen".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, cfg, err := opts.loadIdentity(cmd)
			if err != nil {
				return err
			}

			pub, ok := id.Key().Public().(*rsa.PublicKey)
			if !ok {
				return fmt.Errorf("sandbox: key container holds a %T, want an RSA key", id.Key().Public())
			}

			srv, err := sandbox.New(sandbox.Config{
				Consumers: map[string]*rsa.PublicKey{id.ConsumerKey(): pub},
				MaxAge:    cfg.SandboxMaxAge,
			})
			if err != nil {
				return err
			}

			if addr == "" {
				addr = cfg.SandboxAddr
			}

			klog.InfoS("Starting sandbox", "consumerKey", id.ConsumerKey(), "sampleBINs", sandbox.SampleBINs())

			return sandbox.ListenAndServe(cmd.Context(), addr, srv)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from SANDBOX_ADDR)")

	return cmd
}
