package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"careercompass/internal/common"
	"careercompass/internal/extract"
	"careercompass/internal/types"
	"careercompass/internal/utils"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [document-file]",
	Short: "Extract plain text from a PDF, DOCX or TXT document",
	Long: `Extract plain text from a document so it can be fed into analysis.
Supported formats are PDF, DOCX and plain text files. The file type is
taken from the file extension.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if extractConfig.OutputFormat == "" {
			extractConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(extractConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runExtract,
}

var extractConfig common.CommandConfig

func init() {
	extractCmd.Flags().StringVarP(&extractConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().StringVar(&extractConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())
	fileName := args[0]

	// Documents are read as raw bytes, not text
	fileProcessor := common.NewFileProcessor(logger)
	data, err := fileProcessor.ReadRawFile(fileName)
	if err != nil {
		return err
	}

	if cfg.App.MaxFileSize > 0 && int64(len(data)) > cfg.App.MaxFileSize {
		return fmt.Errorf("file %s exceeds the maximum size of %s",
			fileName, utils.FormatFileSize(cfg.App.MaxFileSize))
	}

	if !utils.IsDocumentFile(fileName) && !utils.IsTextFile(fileName) {
		logger.Warn("Unrecognized file extension, attempting extraction anyway",
			"file", fileName)
	}

	fileType := strings.TrimPrefix(utils.GetFileExtension(fileName), ".")
	logger.Info("Starting text extraction",
		"file", fileName,
		"file_type", fileType,
		"size", utils.FormatFileSize(int64(len(data))))

	text, err := extract.Text(filepath.Base(fileName), fileType, data)
	if err != nil {
		return fmt.Errorf("failed to extract text from %s: %w", fileName, err)
	}

	result := types.ExtractTextOutput{
		Text:      text,
		CharCount: utf8.RuneCountInString(text),
	}

	if err := common.NewOutputHandler(logger).HandleOutput(result, extractConfig); err != nil {
		return err
	}
	logger.Info("Text extraction completed successfully",
		"file", fileName, "chars", result.CharCount)
	return nil
}
