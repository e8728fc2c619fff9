package cli

import (
	"context"
	"fmt"
	"strings"

	"careercompass/internal/ai"
	"careercompass/internal/common"
	"careercompass/internal/config"
	"careercompass/internal/engine"
	"careercompass/internal/errors"
	"careercompass/internal/knowledge"
	"careercompass/internal/types"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// maxChatHistory caps the number of turns replayed to the model
const maxChatHistory = 20

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive career coaching session",
	Long: `Start an interactive career coaching session. When a resume and a job
description are supplied the session is grounded in an analysis of the
two, so the coach can speak to your actual match score and gaps. When
the knowledge base is enabled, relevant guidance snippets are retrieved
for every question.

Type "exit" or press Ctrl-C to end the session.`,
	RunE: runChat,
}

var (
	chatResumeFile string
	chatJobFile    string
)

func init() {
	chatCmd.Flags().StringVar(&chatResumeFile, "resume", "", "Resume file to ground the session (optional)")
	chatCmd.Flags().StringVar(&chatJobFile, "job", "", "Job description file to ground the session (optional)")
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := getConfigFromContext(ctx)
	logger := getLoggerFromContext(ctx)

	chatContext, err := buildChatContext(ctx, cfg, logger)
	if err != nil {
		return err
	}

	var service *ai.Service
	chatAIConfig := cfg.AI.GetChatConfig()
	service, err = ai.NewService(&chatAIConfig, "chat", cfg.Knowledge.EmbedModel, logger)
	if err != nil {
		logger.Warn("AI chat unavailable, serving canned guidance", "error", err)
		service = nil
	}
	client := ai.NewChatClient(service, logger)

	base := openKnowledgeBase(ctx, cfg, logger)

	fmt.Println("Career coaching session started. Type \"exit\" to quit.")
	if chatContext != nil && chatContext.MatchScore > 0 {
		fmt.Printf("Grounded in your resume analysis (match score %d/100).\n", chatContext.MatchScore)
	}
	fmt.Println()

	prompt := promptui.Prompt{Label: "You"}
	var history []types.ChatTurn

	for {
		message, err := prompt.Run()
		if err != nil {
			if err == promptui.ErrInterrupt || err == promptui.ErrEOF {
				fmt.Println("Session ended.")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		message = strings.TrimSpace(message)
		if message == "" {
			continue
		}
		if message == "exit" || message == "quit" {
			fmt.Println("Session ended.")
			return nil
		}

		var retrieved []string
		if base != nil {
			results, err := base.Search(ctx, message, cfg.Knowledge.TopK)
			if err != nil {
				logger.Warn("Knowledge base search failed", "error", err)
			} else {
				retrieved = knowledge.Snippets(results, 500)
			}
		}

		input := types.ChatInput{
			Message: message,
			Context: chatContext,
			History: history,
		}
		output, _, err := client.Respond(ctx, input, retrieved)
		if err != nil {
			logger.LogError(err, "Chat turn failed")
			fmt.Println("Coach: Something went wrong, please try again.")
			continue
		}

		fmt.Printf("\nCoach: %s\n\n", output.Response)

		history = append(history,
			types.ChatTurn{Role: "user", Content: message},
			types.ChatTurn{Role: "assistant", Content: output.Response},
		)
		if len(history) > maxChatHistory {
			history = history[len(history)-maxChatHistory:]
		}
	}
}

// buildChatContext reads the optional resume and job description files and,
// when both are present, runs a heuristic analysis so the coach knows the
// match score and gaps up front.
func buildChatContext(ctx context.Context, cfg *config.Config, logger *errors.Logger) (*types.ChatContext, error) {
	if chatResumeFile == "" && chatJobFile == "" {
		return nil, nil
	}

	fileProcessor := common.NewFileProcessor(logger)
	chatContext := &types.ChatContext{}

	if chatResumeFile != "" {
		text, err := fileProcessor.ReadFile(chatResumeFile)
		if err != nil {
			return nil, err
		}
		chatContext.ResumeText = text
	}
	if chatJobFile != "" {
		text, err := fileProcessor.ReadFile(chatJobFile)
		if err != nil {
			return nil, err
		}
		chatContext.JobDescription = text
	}

	if chatContext.ResumeText != "" && chatContext.JobDescription != "" {
		analyzer := &engine.Analyzer{
			Weights: cfg.Analysis.Scoring.Weights(),
			Model:   "heuristic",
		}
		result := analyzer.Analyze(ctx, chatContext.ResumeText, chatContext.JobDescription)
		chatContext.MatchScore = result.MatchScore
		for _, gap := range result.Gaps {
			chatContext.Gaps = append(chatContext.Gaps, gap.Description)
		}
		logger.Info("Chat session grounded in analysis",
			"match_score", result.MatchScore,
			"gaps", len(result.Gaps))
	}

	return chatContext, nil
}

// openKnowledgeBase loads the knowledge base for retrieval. A disabled or
// unloadable knowledge base means the session runs without retrieval.
func openKnowledgeBase(ctx context.Context, cfg *config.Config, logger *errors.Logger) *knowledge.Base {
	if !cfg.Knowledge.Enabled {
		return nil
	}

	var embedder knowledge.Embedder
	augmentConfig := cfg.AI.GetAugmentConfig()
	if service, err := ai.NewService(&augmentConfig, "embed", cfg.Knowledge.EmbedModel, logger); err != nil {
		logger.Warn("Embedding service unavailable, using keyword search", "error", err)
	} else {
		embedder = service
	}

	base := knowledge.NewBase(cfg.Knowledge.Path, cfg.Knowledge.TopK, embedder, logger)
	if err := base.Reload(ctx); err != nil {
		logger.Warn("Knowledge base unavailable, coaching without retrieval", "error", err)
		return nil
	}

	logger.Info("Knowledge base loaded", "documents", base.Count())
	return base
}
