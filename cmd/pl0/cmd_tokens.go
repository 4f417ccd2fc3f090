package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/pl0/parser"
	"github.com/dhamidi/pl0/source"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Scan a source file and list its tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := source.ReadBuffer(args[0])
			if err != nil {
				return fmt.Errorf("read source file: %w", err)
			}

			errors := source.NewDiagnostics(os.Stderr, buf)
			lexer := parser.NewLexer(buf, errors)

			for {
				tok := lexer.NextToken()
				switch tok.Kind {
				case parser.TokenIdent:
					fmt.Printf("%s\t%s %s\n", tok.Pos, tok.Kind, tok.Literal)
				case parser.TokenNumber:
					fmt.Printf("%s\t%s %d\n", tok.Pos, tok.Kind, tok.Value)
				default:
					fmt.Printf("%s\t%s\n", tok.Pos, tok.Kind)
				}
				if tok.Kind == parser.TokenEOF {
					break
				}
			}

			errors.Flush()
			if errors.HadErrors() {
				errors.Summary()
				return fmt.Errorf("%s contains errors", args[0])
			}
			return nil
		},
	}
}
