package cli

import (
	"context"
	"fmt"

	"careercompass/internal/ai"
	"careercompass/internal/common"
	"careercompass/internal/config"
	"careercompass/internal/engine"
	"careercompass/internal/errors"
	"careercompass/internal/types"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-file] [job-description-file]",
	Short: "Analyze how well a resume matches a job description",
	Long: `Analyze a resume against a job description and produce a match score,
matched and missing skills, experience and education gaps, and
prioritized recommendations for improving the resume.

The analysis includes:
- Overall match score (0-100)
- Skill-by-skill matching with relevance
- Missing skills with importance and suggestions
- Experience, education and keyword gap detection
- Actionable recommendations and a single top tip`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var analyzeConfig common.CommandConfig

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

// augmentService builds the AI service used to refine skill extraction.
// Returns nil when no provider is available, which drops the analysis
// back to the pure heuristic path.
func augmentService(cfg *config.Config, logger *errors.Logger) *ai.Service {
	augmentConfig := cfg.AI.GetAugmentConfig()
	service, err := ai.NewService(&augmentConfig, "augment", cfg.Knowledge.EmbedModel, logger)
	if err != nil {
		logger.Warn("AI augmentation unavailable, using heuristic analysis", "error", err)
		return nil
	}
	return service
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	analyzer := &engine.Analyzer{
		Weights: cfg.Analysis.Scoring.Weights(),
		Model:   "heuristic",
	}
	service := augmentService(cfg, logger)
	if service != nil {
		analyzer.Augmenter = service
		analyzer.Model = service.Model()
	}

	createInput := func(contents []string) (types.AnalyzeInput, error) {
		if len(contents) != 2 {
			return types.AnalyzeInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return types.AnalyzeInput{
			ResumeText:     contents[0],
			JobDescription: contents[1],
		}, nil
	}

	logDetails := func(input types.AnalyzeInput, cfg common.CommandConfig) {
		logger.Info("Starting resume analysis",
			"resume_chars", len(input.ResumeText),
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	analyzeOperation := func(ctx context.Context, input types.AnalyzeInput) (types.AnalyzeOutput, error) {
		out := analyzer.Analyze(ctx, input.ResumeText, input.JobDescription)
		if service != nil && len(out.Gaps) > 0 {
			if tip, err := service.SuggestTopTip(ctx, out.Gaps, input.JobDescription); err == nil {
				out.TopTip = tip
			} else {
				logger.Debug("Tip generation unavailable, keeping heuristic tip", "error", err)
			}
		}
		return out, nil
	}

	err := common.RunFileCommand(
		cmd.Context(),
		logger,
		analyzeConfig,
		args,
		createInput,
		analyzeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}
	logger.Info("Resume analysis completed successfully")
	return nil
}
