package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/pl0/parser"
	"github.com/dhamidi/pl0/project"
	"github.com/dhamidi/pl0/source"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var rootDir string

	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Parse sources and report diagnostics",
		Long: `Check parses the given files and prints every diagnostic with its
source line. With no arguments it loads the project manifest (pl0.toml)
from the root directory and checks every .pl0 file below the project's
source directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := project.LoadFrom(rootDir)
			if err != nil {
				return err
			}

			files := args
			if len(files) == 0 {
				files, err = proj.SourceFiles()
				if err != nil {
					return err
				}
			}
			if len(files) == 0 {
				return fmt.Errorf("no source files found in %s", proj.SrcDir)
			}

			failed := 0
			for _, file := range files {
				ok, err := checkFile(file, proj)
				if err != nil {
					return err
				}
				if !ok {
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files contain errors", failed, len(files))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&rootDir, "root", "C", ".", "project root directory")

	return cmd
}

func checkFile(path string, proj *project.Project) (bool, error) {
	buf, err := source.ReadBuffer(path)
	if err != nil {
		return false, fmt.Errorf("read source file: %w", err)
	}

	opts := []parser.Option{parser.WithOutput(os.Stdout)}
	if proj.Trace {
		opts = append(opts, parser.WithTrace())
	}
	if proj.MaxErrors > 0 {
		opts = append(opts, parser.WithMaxErrors(proj.MaxErrors))
	}

	fmt.Printf("== %s\n", path)
	result, err := parser.ParseProgram(buf, opts...)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", path, err)
	}

	result.Errors.Flush()
	result.Errors.Summary()
	return !result.Errors.HadErrors(), nil
}
