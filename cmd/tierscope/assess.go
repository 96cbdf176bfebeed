package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tierscope/tierscope/pkg/assess"
	"github.com/tierscope/tierscope/pkg/config"
	"github.com/tierscope/tierscope/pkg/portfolio"
	"github.com/tierscope/tierscope/pkg/tier"
)

func newAssessCmd() *cobra.Command {
	var (
		inputPath  string
		configPath string
		controller string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Grade a portfolio of entities against tiered thresholds",
		Long: `Reads extracted metric values, evaluates every entity in every
category against the configured threshold tables, derives the roll-up
grades, and saves an assessment run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssess(assessOpts{
				inputPath:  inputPath,
				configPath: configPath,
				controller: controller,
				outputPath: outputPath,
			})
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Metrics JSON file: category -> entity -> metric values (required)")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file (default: nearest .tierscope/config.yaml)")
	cmd.Flags().StringVar(&controller, "controller", "", "Controller name (overrides config)")
	cmd.Flags().StringVar(&outputPath, "output", "", "Run output path (default: ~/.cache/tierscope/<controller>/runs/<id>.json)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

type assessOpts struct {
	inputPath  string
	configPath string
	controller string
	outputPath string
}

func runAssess(opts assessOpts) error {
	cfg, err := resolveConfig(opts.configPath)
	if err != nil {
		return err
	}
	controller := firstNonEmpty(opts.controller, cfg.Controller)

	fmt.Fprintf(os.Stderr, "Step 1/3: Validating thresholds...\n")
	tables, err := cfg.Tables()
	if err != nil {
		return fmt.Errorf("invalid threshold configuration: %w", err)
	}
	fmt.Fprintf(os.Stderr, "  %d category tables validated\n", len(tables))

	fmt.Fprintf(os.Stderr, "Step 2/3: Evaluating entities...\n")
	input, err := loadMetricsInput(opts.inputPath)
	if err != nil {
		return err
	}

	run, err := assess.EvaluateAll(controller, input, tables)
	if err != nil {
		return fmt.Errorf("evaluating entities: %w", err)
	}
	portfolio.DeriveOverall(run)

	entities := 0
	for _, category := range run.Categories {
		entities += len(run.Scores[category])
	}
	fmt.Fprintf(os.Stderr, "  %d scores across %d categories\n", entities, len(run.Categories))

	fmt.Fprintf(os.Stderr, "Step 3/3: Saving run...\n")
	outPath := opts.outputPath
	if outPath == "" {
		outPath = filepath.Join(config.RunDir(controller), run.ID+".json")
	}
	if err := assess.SaveRun(outPath, run); err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Run %s saved to %s\n", run.ID, outPath)

	printDistribution(run)
	return nil
}

// loadMetricsInput reads the extracted metric values: a JSON object
// keyed by category, then entity, then metric-id.
func loadMetricsInput(path string) (map[string]map[string]assess.MetricSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metrics input: %w", err)
	}
	var input map[string]map[string]assess.MetricSnapshot
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("parsing metrics input: %w", err)
	}
	return input, nil
}

// printDistribution writes the roll-up tier counts for quick feedback.
func printDistribution(run *assess.Run) {
	overall, ok := run.Scores[assess.CategoryOverall]
	if !ok {
		return
	}
	dist := make(map[tier.Tier]int, len(tier.Order))
	for _, score := range overall {
		dist[score.Overall]++
	}
	fmt.Printf("Overall grades (%d entities):\n", len(overall))
	for i := len(tier.Order) - 1; i >= 0; i-- {
		fmt.Printf("  %-10s %d\n", tier.Order[i], dist[tier.Order[i]])
	}
}

func resolveConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	if found := config.FindConfigFile(cwd); found != "" {
		cfg, err := config.Load(found)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}
	return config.DefaultConfig(), nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
