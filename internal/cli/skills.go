package cli

import (
	"context"
	"fmt"

	"careercompass/internal/common"
	"careercompass/internal/engine"
	"careercompass/internal/types"

	"github.com/spf13/cobra"
)

var skillsCmd = &cobra.Command{
	Use:   "skills [text-file]",
	Short: "Extract skills from a resume or job description",
	Long: `Extract a deduplicated, sorted list of recognized skills from a resume
or job description. The heuristic extractor always runs; when an AI
provider is configured its suggestions are merged in on top.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if skillsConfig.OutputFormat == "" {
			skillsConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(skillsConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runSkills,
}

var skillsConfig common.CommandConfig

func init() {
	skillsCmd.Flags().StringVarP(&skillsConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	skillsCmd.Flags().StringVar(&skillsConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
}

func runSkills(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	model := "heuristic"
	var gen engine.Generator
	if service := augmentService(cfg, logger); service != nil {
		gen = service
		model = service.Model()
	}

	createInput := func(contents []string) (types.ExtractSkillsInput, error) {
		if len(contents) != 1 {
			return types.ExtractSkillsInput{}, fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return types.ExtractSkillsInput{Text: contents[0]}, nil
	}

	logDetails := func(input types.ExtractSkillsInput, cfg common.CommandConfig) {
		logger.Info("Starting skill extraction",
			"text_chars", len(input.Text),
			"output_format", cfg.OutputFormat)
	}

	skillsOperation := func(ctx context.Context, input types.ExtractSkillsInput) (types.ExtractSkillsOutput, error) {
		skills := engine.ExtractSkillsWithAI(ctx, gen, input.Text)
		return types.ExtractSkillsOutput{Skills: skills, Model: model}, nil
	}

	err := common.RunFileCommand(
		cmd.Context(),
		logger,
		skillsConfig,
		args,
		createInput,
		skillsOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to extract skills: %w", err)
	}
	logger.Info("Skill extraction completed successfully")
	return nil
}
