// briefing-cli прогоняет пайплайн списка объявлений по JSON-дампу без сервиса и бэкенда.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	listingsPath string
	presetPath   string
	output       string
	limit        int
	precision    int
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "briefing-cli",
		Short:         "Offline filtering, sorting and briefing of listing dumps",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.listingsPath, "listings", "l", "", "path to a JSON dump of listings (array or {\"items\": [...]})")
	root.PersistentFlags().StringVarP(&opts.presetPath, "preset", "p", "", "YAML preset with filters, customer, briefing and sort")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "output format: table, json or yaml")
	_ = root.MarkPersistentFlagRequired("listings")

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "Print the composed listing view",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runView(cmd.OutOrStdout(), opts)
		},
	}
	viewCmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "print at most n listings (0 - all)")

	briefingCmd := &cobra.Command{
		Use:   "briefing",
		Short: "Print listings with a briefing status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBriefing(cmd.OutOrStdout(), opts)
		},
	}

	clustersCmd := &cobra.Command{
		Use:   "clusters",
		Short: "Print briefing summary per map cell",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClusters(cmd.OutOrStdout(), opts)
		},
	}
	clustersCmd.Flags().IntVar(&opts.precision, "precision", 6, "geohash precision of a cell (1-12)")

	root.AddCommand(viewCmd, briefingCmd, clustersCmd)
	return root
}
