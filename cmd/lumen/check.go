package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lumen/internal/diag"
	"lumen/internal/engine"
)

var (
	checkConfigPath string

	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	codeColor    = color.New(color.FgWhite, color.Faint)
)

func init() {
	checkCmd.Flags().StringVar(&checkConfigPath, "config", "", "path to lumen.toml (defaults omitted fields)")
}

var checkCmd = &cobra.Command{
	Use:   "check <manifest.toml>",
	Short: "Resolve a declared module tree and report diagnostics",
	Long: `check loads a declarative manifest describing modules, structs, enums,
functions, consts and imports, drives them through the resolution engine,
and prints whatever diagnostics the run produced.

Real lumen source is not lexed or parsed here: check stands in for the
output a parser would hand the engine, since this tool's only concern is
what happens after parsing.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := engine.DefaultConfig()
	if checkConfigPath != "" {
		loaded, err := engine.LoadConfig(checkConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	manifest, err := LoadManifest(args[0])
	if err != nil {
		return err
	}

	eng := engine.New(cfg)
	visitor := &engine.CollectingVisitor{}
	eng.Visitor = visitor

	if err := ApplyManifest(eng, manifest); err != nil {
		return err
	}

	eng.Run()

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))

	printDiagnostics(cmd.OutOrStdout(), eng.Diagnostics(), useColor)
	fmt.Fprintf(cmd.OutOrStdout(), "%d item(s) resolved\n", len(visitor.Metas))

	if eng.HasErrors() {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("check found errors")
	}
	return nil
}

func printDiagnostics(out io.Writer, diags []*diag.Diagnostic, useColor bool) {
	for _, d := range diags {
		label := d.Severity.String()
		if useColor {
			switch d.Severity {
			case diag.SevError:
				label = errorColor.Sprint(label)
			case diag.SevWarning:
				label = warningColor.Sprint(label)
			case diag.SevInfo:
				label = infoColor.Sprint(label)
			}
		}
		code := fmt.Sprintf("[%s]", d.Code)
		if useColor {
			code = codeColor.Sprint(code)
		}
		fmt.Fprintf(out, "%s %s %s: %s\n", label, code, d.Primary, d.Message)
		for _, note := range d.Notes {
			fmt.Fprintf(out, "    note: %s: %s\n", note.Span, note.Msg)
		}
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
