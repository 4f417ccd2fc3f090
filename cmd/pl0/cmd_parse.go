package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/pl0/format"
	"github.com/dhamidi/pl0/parser"
	"github.com/dhamidi/pl0/source"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var trace bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a source file and dump the tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := source.ReadBuffer(args[0])
			if err != nil {
				return fmt.Errorf("read source file: %w", err)
			}

			opts := []parser.Option{parser.WithOutput(os.Stderr)}
			if trace {
				opts = append(opts, parser.WithTrace())
			}
			result, err := parser.ParseProgram(buf, opts...)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			result.Errors.Flush()
			if result.Errors.HadErrors() {
				result.Errors.Summary()
				return fmt.Errorf("%s contains errors", args[0])
			}

			var encoder format.Encoder
			switch outputFormat {
			case "text":
				encoder = format.NewTextEncoder(os.Stdout)
			case "json":
				encoder = format.NewJSONEncoder(os.Stdout)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if err := encoder.Encode(result.Program); err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&trace, "trace", false, "narrate rule entry, exit and recovery")

	return cmd
}
