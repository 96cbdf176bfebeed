package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tierscope/tierscope/pkg/tier"
)

func newThresholdsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "thresholds",
		Short: "Validate and print the effective threshold tables",
		Long: `Loads the configuration, validates every category's threshold
profile, and prints the effective cutoffs. A table missing a metric
direction fails here rather than mid-assessment.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThresholds(configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file (default: nearest .tierscope/config.yaml)")

	return cmd
}

func runThresholds(configPath string) error {
	cfg, err := resolveConfig(configPath)
	if err != nil {
		return err
	}

	tables, err := cfg.Tables()
	if err != nil {
		return fmt.Errorf("invalid threshold configuration: %w", err)
	}

	categories := make([]string, 0, len(tables))
	for category := range tables {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		table := tables[category]
		fmt.Printf("%s\n", category)
		for _, metric := range table.Metrics() {
			fmt.Printf("  %s (%s)\n", metric, table.Directions[metric])
			for i := 1; i < len(tier.Order); i++ {
				t := tier.Order[i]
				cutoff, ok := table.Cutoffs[t][metric]
				if !ok {
					continue
				}
				fmt.Printf("    %-10s %v\n", t, cutoff)
			}
		}
	}

	fmt.Printf("\n%d categories valid\n", len(categories))
	return nil
}
