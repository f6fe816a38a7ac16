package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/analyzer"
	"github.com/spigell/resume-matcher/internal/document"
	"github.com/spigell/resume-matcher/internal/logger"
)

var errNoJobDescription = errors.New("no job description provided")

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume file against a job description and print the result as JSON",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("resume", "r", "", "resume file (.pdf or .docx)")
	analyzeCmd.Flags().StringP("job-description", "t", "", "job description text")
	analyzeCmd.Flags().StringP("job-description-file", "f", "", "file with the job description text")

	analyzeCmd.MarkFlagRequired("resume")
	analyzeCmd.MarkFlagsMutuallyExclusive("job-description", "job-description-file")
}

func analyze(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync() //nolint:errcheck

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	resumePath, _ := cmd.Flags().GetString("resume")
	resumeText, err := readResume(resumePath)
	if err != nil {
		logger.Fatal("reading the resume", zap.String("path", resumePath), zap.Error(err))
	}

	jdText, err := readJobDescription(cmd)
	if err != nil {
		logger.Fatal("reading the job description", zap.Error(err))
	}

	an, cleanup, err := newAnalyzer(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the analyzer", zap.Error(err))
	}
	defer cleanup()

	result, err := an.Analyze(ctx, resumeText, jdText)
	if err != nil {
		logger.Fatal("analyzing", zap.Error(err))
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Fatal("encoding the result", zap.Error(err))
	}
	fmt.Println(string(out))
}

// readResume extracts the resume text, reporting problems with the same messages as the API.
func readResume(path string) (string, error) {
	kind, err := document.KindFromFilename(path)
	if err != nil {
		return "", analyzer.InputValidation("Unsupported file type. Please upload PDF or DOCX.")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	text, err := document.Extract(data, kind)
	if err != nil {
		return "", analyzer.Extraction(err)
	}
	if text == "" {
		return "", analyzer.EmptyContent()
	}

	return text, nil
}

func readJobDescription(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("job-description") {
		return cmd.Flags().GetString("job-description")
	}

	if path, _ := cmd.Flags().GetString("job-description-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading job description file: %w", err)
		}
		return string(data), nil
	}

	if !isTerminal(os.Stdin) {
		return "", errNoJobDescription
	}

	prompt := promptui.Prompt{
		Label: "Job description",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errNoJobDescription
			}
			return nil
		},
	}

	return prompt.Run()
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
