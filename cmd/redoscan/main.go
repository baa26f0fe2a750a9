// redoscan flags regular expressions whose backtracking behavior can
// blow up super-linearly on adversarial input.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"redoscan/analysis"
	"redoscan/internal/scan"
	"redoscan/regex"
)

var (
	verbose   bool
	maxStates int
	dotPath   string
	rulesPath string
)

func main() {
	root := &cobra.Command{
		Use:           "redoscan",
		Short:         "detect catastrophic-backtracking (ReDoS) risk in regular expressions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	check := &cobra.Command{
		Use:   "check <pattern>",
		Short: "analyze a single pattern",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
	check.Flags().IntVar(&maxStates, "max-states", scan.DefaultMaxStates, "abort exploration past this many states (0 = unbounded)")
	check.Flags().StringVar(&dotPath, "dot", "", "write the explored state space as Graphviz to this file")

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "analyze every rule in a YAML rule file",
		Args:  cobra.NoArgs,
		RunE:  runScan,
	}
	scanCmd.Flags().StringVarP(&rulesPath, "config", "c", "", "rule file to scan")
	_ = scanCmd.MarkFlagRequired("config")

	root.AddCommand(check, scanCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "redoscan:", err)
		os.Exit(1)
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	pattern := args[0]
	tree, err := regex.Parse(pattern)
	if err != nil {
		return err
	}
	ss, err := regex.ExploreBounded(tree, maxStates)
	if err != nil {
		return err
	}

	if dotPath != "" {
		f, err := os.Create(dotPath)
		if err != nil {
			return err
		}
		defer f.Close()
		analysis.ExportDOT(f, ss)
	}

	rep := analysis.Classify(ss)
	printReport(pattern, rep)
	if rep.Dangerous() {
		os.Exit(2)
	}
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := scan.Load(rulesPath)
	if err != nil {
		return err
	}
	runner := &scan.Runner{Log: slog.Default()}

	dangerous := 0
	for _, f := range runner.Run(cfg) {
		name := f.Rule.Name
		if name == "" {
			name = f.Rule.Pattern
		}
		switch {
		case f.Err != nil:
			fmt.Printf("%-24s error: %v\n", name, f.Err)
			dangerous++
		default:
			printReport(name, f.Report)
			if f.Report.Dangerous() {
				dangerous++
			}
		}
	}
	if dangerous > 0 {
		os.Exit(2)
	}
	return nil
}

func printReport(name string, rep analysis.Report) {
	extra := ""
	if rep.Degree == analysis.Polynomial {
		extra = fmt.Sprintf(" degree=%d", rep.PolyDegree)
	}
	if rep.Witness != "" {
		extra += fmt.Sprintf(" witness=%s", rep.Witness)
	}
	fmt.Printf("%-24s %s (%d states)%s\n", name, rep.Degree, rep.States, extra)
}
