// SPDX-License-Identifier: MIT
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/fisherprime/fortrs/translate"
)

const outputExtension = ".rs"

var (
	outputFile  string
	diagnostics bool
	indentWidth int
	workers     int
)

var translateCmd = &cobra.Command{
	Use:   "translate [file...]",
	Short: "Translate Fortran sources into Rust",
	Long: `Translate a Fortran source into Rust, writing the output file & echoing it to stdout.

Without arguments the configured input (default: ` + DefInput + `) is read. With several
files each is translated concurrently & written beside its source with a .rs extension.`,
	RunE: runTranslate,
}

func init() {
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: "+DefOutput+")")
	translateCmd.Flags().BoolVar(&diagnostics, "diagnostics", false, "emit diagnostics for unclassified rules instead of failing")
	translateCmd.Flags().IntVar(&indentWidth, "indent-width", translate.DefIndentWidth, "spaces per block depth")
	translateCmd.Flags().IntVar(&workers, "workers", 0, "translation pool size for several files (default: CPU count)")
	rootCmd.AddCommand(translateCmd)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if flags.Changed("output") {
		config.Output = outputFile
	}
	if flags.Changed("diagnostics") {
		config.Diagnostics = diagnostics
	}
	if flags.Changed("indent-width") {
		config.IndentWidth = indentWidth
	}
	if flags.Changed("workers") {
		config.Workers = workers
	}

	tr := translate.New(config.translatorOptions()...)

	if len(args) > 1 {
		return translateFiles(cmd, tr, args)
	}

	input := config.Input
	if len(args) == 1 {
		input = args[0]
	}

	src, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	output, err := tr.Translate(cmd.Context(), string(src))
	if err != nil {
		return fmt.Errorf("failed to translate %s: %w", input, err)
	}

	if err = os.WriteFile(config.Output, []byte(output), 0o644); err != nil {
		return err
	}
	logger.Infof("translated %s to %s", input, config.Output)

	_, err = fmt.Fprint(cmd.OutOrStdout(), output)

	return err
}

// translateFiles translates several inputs on the Translator's pool.
func translateFiles(cmd *cobra.Command, tr *translate.Translator, inputs []string) error {
	sources := make([]string, len(inputs))
	for index, input := range inputs {
		src, err := os.ReadFile(input)
		if err != nil {
			return err
		}
		sources[index] = string(src)
	}

	results, err := tr.TranslateAll(cmd.Context(), sources)
	for index, result := range results {
		if result.Err != nil {
			logger.Errorf("failed to translate %s: %v", inputs[index], result.Err)
			continue
		}

		output := outputPath(inputs[index])
		if writeErr := os.WriteFile(output, []byte(result.Output), 0o644); writeErr != nil {
			return writeErr
		}
		logger.Infof("translated %s to %s", inputs[index], output)

		fmt.Fprintf(cmd.OutOrStdout(), "// %s\n%s", output, result.Output)
	}

	return err
}

// outputPath replaces the extension of input with outputExtension.
func outputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + outputExtension
}
