// SPDX-License-Identifier: MIT
package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"gitlab.com/fisherprime/fortrs/lexer"
	"gopkg.in/yaml.v3"
)

// tokenRecord is the YAML rendering of a lexer.Token.
type tokenRecord struct {
	Kind  string `yaml:"kind"`
	Value string `yaml:"value,omitempty"`
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
}

var lexFormat string

var lexCmd = &cobra.Command{
	Use:   "lex <text>",
	Short: "Tokenize numeric & operator text",
	Long: `Tokenize prints one token per line with its byte span.

Whitespace & '!' comments are skipped; lexing stops at the first unknown character.`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	lexCmd.Flags().StringVar(&lexFormat, "format", "text", "output format, text or yaml")
	rootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	tokens, err := lexer.Tokenize(args[0], lexer.WithLogger(logger), lexer.WithDebug(config.Debug))
	if err != nil {
		return err
	}

	return writeTokens(cmd.OutOrStdout(), tokens, lexFormat)
}

func writeTokens(w io.Writer, tokens []lexer.Token, format string) error {
	switch format {
	case "text":
		for _, tok := range tokens {
			fmt.Fprintln(w, tok)
		}

		return nil
	case "yaml":
		records := make([]tokenRecord, len(tokens))
		for index, tok := range tokens {
			records[index] = newTokenRecord(tok)
		}

		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(records); err != nil {
			return err
		}

		return encoder.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func newTokenRecord(tok lexer.Token) (record tokenRecord) {
	record.Start, record.End = tok.Start, tok.End

	switch tok.Kind.Type {
	case lexer.TypeInteger:
		record.Kind, record.Value = "Integer", strconv.FormatUint(tok.Kind.Integer, 10)
	case lexer.TypeDecimal:
		record.Kind, record.Value = "Decimal", strconv.FormatFloat(tok.Kind.Decimal, 'f', -1, 64)
	case lexer.TypePlus:
		record.Kind = "Plus"
	}

	return
}
