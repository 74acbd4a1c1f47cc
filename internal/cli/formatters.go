package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kazumasamatsumoto/algo/internal/formatter"
	"github.com/spf13/cobra"
)

// resolveFormat picks the --output flag when given, else the configured default
func resolveFormat(cmd *cobra.Command, flagValue, configured string) string {
	if f := cmd.Flag("output"); f != nil && f.Changed {
		return flagValue
	}
	if configured != "" {
		return configured
	}
	return flagValue
}

// writeReport formats report and writes it to outputFile, or stdout when empty
func writeReport(cmd *cobra.Command, report *formatter.Report, format, outputFile string) error {
	// colour codes never go to files or machine formats
	color := outputFile == "" && useColor()

	f, err := formatter.New(format, color)
	if err != nil {
		return fmt.Errorf("%w (available formats: %s)", err, strings.Join(formatter.Formats, ", "))
	}

	output, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if outputFile != "" {
		if err := writeOutputBytesToFile(output, outputFile); err != nil {
			return fmt.Errorf("failed to write output to file: %w", err)
		}
		if isVerbose() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Output saved to: %s\n", outputFile)
		}
		return nil
	}

	_, err = cmd.OutOrStdout().Write(output)
	return err
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
