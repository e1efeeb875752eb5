package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/vitalvas/binlookup/binlookup"
)

func newLookupCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup BIN [BIN...]",
		Short: "Look up issuer and product information for one or more BINs",
		Example: `  binlookup lookup 545454
  binlookup lookup "5454 5412" 424242 -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bins := make([]string, 0, len(args))
			for _, arg := range args {
				if !binlookup.IsValidBIN(arg) {
					return fmt.Errorf("%w: %q", binlookup.ErrInvalidBIN, arg)
				}

				bins = append(bins, binlookup.CleanBIN(arg))
			}

			client, err := opts.newClient(cmd)
			if err != nil {
				return err
			}

			infos := make([]binlookup.BINInfo, 0, len(bins))
			for _, bin := range bins {
				info, err := client.LookupBIN(cmd.Context(), bin)
				if err != nil {
					return fmt.Errorf("lookup %s: %w", bin, err)
				}

				klog.V(4).InfoS("BIN resolved", "bin", bin, "issuer", info.IssuerName)
				infos = append(infos, *info)
			}

			return printBINInfo(cmd.OutOrStdout(), opts.output, infos...)
		},
	}
}

func newRangesCmd(opts *rootOptions) *cobra.Command {
	var page, size int
	var sort string

	cmd := &cobra.Command{
		Use:   "ranges",
		Short: "List account ranges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.newClient(cmd)
			if err != nil {
				return err
			}

			result, err := client.AccountRanges(cmd.Context(), page, size, sort)
			if err != nil {
				return err
			}

			return printPage(cmd.OutOrStdout(), opts.output, result)
		},
	}

	cmd.Flags().IntVar(&page, "page", binlookup.DefaultPage, "page number, starting at 1")
	cmd.Flags().IntVar(&size, "size", binlookup.DefaultSize, "results per page")
	cmd.Flags().StringVar(&sort, "sort", binlookup.DefaultSort, `sort field, prefix with "-" for descending`)

	return cmd
}

func newDetailsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "details LOW HIGH",
		Short: "Show the account range bounded by LOW and HIGH",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient(cmd)
			if err != nil {
				return err
			}

			info, err := client.BINDetails(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			return printBINInfo(cmd.OutOrStdout(), opts.output, *info)
		},
	}
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var params binlookup.SearchParams
	var post bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search account ranges by issuer, country or product type",
		Example: `  binlookup search --issuer chase
  binlookup search --country US --product DEBIT --post`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.newClient(cmd)
			if err != nil {
				return err
			}

			search := client.SearchBINs
			if post {
				search = client.PostSearch
			}

			result, err := search(cmd.Context(), params)
			if err != nil {
				return err
			}

			return printPage(cmd.OutOrStdout(), opts.output, result)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&params.IssuerName, "issuer", "", "issuer name substring")
	flags.StringVar(&params.CountryCode, "country", "", "ISO country code")
	flags.StringVar(&params.ProductType, "product", "", "product type, e.g. CREDIT or DEBIT")
	flags.IntVar(&params.Page, "page", binlookup.DefaultPage, "page number, starting at 1")
	flags.IntVar(&params.Size, "size", binlookup.DefaultSize, "results per page")
	flags.BoolVar(&post, "post", false, "send the criteria as a signed JSON body")

	return cmd
}
