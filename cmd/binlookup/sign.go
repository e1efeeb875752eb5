package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vitalvas/binlookup/oauth1"
)

func newSignCmd(opts *rootOptions) *cobra.Command {
	var body, bodyFile string

	cmd := &cobra.Command{
		Use:   "sign METHOD URL",
		Short: "Print the OAuth 1.0a Authorization header for a request",
		Example: `  binlookup sign GET "https://sandbox.api.mastercard.com/bin-ranges?page=1&size=25"
  binlookup sign POST https://sandbox.api.mastercard.com/bin-ranges/search --body '{"countryCode":"US"}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if body != "" && bodyFile != "" {
				return errors.New("--body and --body-file are mutually exclusive")
			}

			payload := []byte(body)
			if bodyFile != "" {
				data, err := os.ReadFile(bodyFile)
				if err != nil {
					return err
				}

				payload = data
			}

			id, _, err := opts.loadIdentity(cmd)
			if err != nil {
				return err
			}

			a, err := oauth1.NewAuthorizer(oauth1.Config{Identity: id})
			if err != nil {
				return err
			}

			header, err := a.BuildHeader(args[0], args[1], payload)
			if err != nil {
				return err
			}

			if opts.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"authorization": header})
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), header)

			return err
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "request body")
	cmd.Flags().StringVar(&bodyFile, "body-file", "", "read the request body from a file")

	return cmd
}
