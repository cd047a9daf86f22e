package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"foliogen/internal/analyzer"
	"foliogen/internal/config"
	"foliogen/internal/extractor"
	"foliogen/internal/generator"
	"foliogen/internal/llm"
	"foliogen/internal/logging"
	"foliogen/internal/notify"
	"foliogen/internal/pipeline"
	"foliogen/internal/storage"
	"foliogen/pkg/utils"
)

var (
	flagConfig     string
	flagOutputDir  string
	flagBrainModel string
	flagCoderModel string
)

var generateCmd = &cobra.Command{
	Use:   "generate <cv.pdf>",
	Short: "Generate a portfolio website from a CV document",
	Long: `Generate runs the full pipeline on the given CV: text extraction,
structured analysis, site generation, and persistence.

Examples:
  foliogen generate resume.pdf
  foliogen generate resume.pdf --output ./site
  foliogen generate resume.pdf --brain-model deepseek-r1:14b --coder-model qwen2.5-coder:32b`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&flagConfig, "config", "configs/config.yaml", "Path to the configuration file")
	generateCmd.Flags().StringVarP(&flagOutputDir, "output", "o", "", "Output directory (overrides config)")
	generateCmd.Flags().StringVar(&flagBrainModel, "brain-model", "", "Model for CV analysis (overrides config)")
	generateCmd.Flags().StringVar(&flagCoderModel, "coder-model", "", "Model for site generation (overrides config)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	docPath := args[0]

	cfg, err := config.LoadConfig(flagConfig)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.Output.Dir = utils.GetStringOrDefault(flagOutputDir, cfg.Output.Dir)
	cfg.LLM.BrainModel = utils.GetStringOrDefault(flagBrainModel, cfg.LLM.BrainModel)
	cfg.LLM.CoderModel = utils.GetStringOrDefault(flagCoderModel, cfg.LLM.CoderModel)

	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	llmManager := llm.NewManager(cfg)
	if err := llmManager.Start(); err != nil {
		return fmt.Errorf("failed to start inference manager: %w", err)
	}
	defer llmManager.Stop()

	store, err := storage.NewFileStore(cfg.Output.Dir)
	if err != nil {
		return err
	}

	p := pipeline.New(
		extractor.NewPDFExtractor(),
		analyzer.NewAnalyzer(cfg, llmManager),
		generator.NewGenerator(cfg, llmManager),
		store,
		notify.NewConsoleNotifier(),
	)

	// Each inference call is bounded by the provider's own timeout; the run
	// as a whole only aborts on Ctrl-C
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result := p.Run(ctx, docPath)
	if !result.Success {
		// The pipeline already notified and logged; the exit code is the
		// only thing left to communicate
		os.Exit(1)
	}

	fmt.Printf("Portfolio written to %s\n", result.Artifacts.IndexPath)
	return nil
}
