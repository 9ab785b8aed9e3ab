// Command lessparse exposes the lexer and structural parser as a CLI,
// replacing the teacher's plain-flag cmd/lessgo with a cobra command
// tree (mirroring the pack's cobra-based CLI layout) built around
// lesscore's own lex/parse/compare pipeline instead of CSS compilation.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-less/lesscore/compare"
	"github.com/go-less/lesscore/lexer"
	"github.com/go-less/lesscore/parsedebug"
	"github.com/go-less/lesscore/parser"
)

var debugFlag bool

func main() {
	root := &cobra.Command{
		Use:   "lessparse",
		Short: "Lex, parse, and compare LESS source with lesscore",

		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&debugFlag, "debug", false, "dump intermediate structures with go-spew")

	root.AddCommand(tokensCmd(), parseCmd(), compareCmd(), fmtCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("lessparse: %w", err)
	}
	return string(data), nil
}

func tokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token-tree lexer produces for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}
			tts, err := lexer.Lex(src)
			if err != nil {
				return err
			}
			if debugFlag {
				fmt.Fprintln(cmd.OutOrStdout(), parsedebug.Dump(tts))
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(tts)
		},
	}
}

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the parsed stylesheet AST for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}
			sheet, err := parser.Parse(src)
			if err != nil {
				return err
			}
			if debugFlag {
				fmt.Fprintln(cmd.OutOrStdout(), parsedebug.Dump(sheet))
				return nil
			}
			data, err := compare.MarshalJSON(sheet)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <file>",
		Short: "Emit the JSON-AST comparison shape for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}
			sheet, err := parser.Parse(src)
			if err != nil {
				return err
			}
			node := compare.Stylesheet(sheet)
			data, err := json.MarshalIndent(node, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func fmtCmd() *cobra.Command {
	var indent int
	cmd := &cobra.Command{
		Use:   "fmt <files...>",
		Short: "Reformat LESS files in place",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				src, err := readSource(path)
				if err != nil {
					return err
				}
				sheet, err := parser.Parse(src)
				if err != nil {
					return fmt.Errorf("lessparse: %s: %w", path, err)
				}
				formatted := newFormatter(indent).format(sheet)
				if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
					return fmt.Errorf("lessparse: %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "formatted %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&indent, "indent", 2, "indentation width in spaces")
	return cmd
}
