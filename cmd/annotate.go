package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/marketrisk/advisor"
	"github.com/etnz/marketrisk/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type annotateCmd struct {
	scenarioFlags
}

func (*annotateCmd) Name() string { return "annotate" }
func (*annotateCmd) Synopsis() string {
	return "runs the analysis and asks the AI analyst to comment it"
}
func (*annotateCmd) Usage() string {
	return `mrk annotate [-scenario <file>]

  Runs the full risk analysis, prints the report, then sends it to the
  Gemini-backed analyst and prints its commentary. Requires Gemini
  credentials in the environment (GEMINI_API_KEY or a Google Cloud
  project).

Usage Examples:
$ mrk annotate -scenario crash.yaml

`
}

func (p *annotateCmd) SetFlags(f *flag.FlagSet) { p.scenarioFlags.SetFlags(f) }

func (p *annotateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := p.run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	// The report is worth printing even when the analyst is unreachable.
	md := renderer.ReportMarkdown(report)
	printMarkdown(md)

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}
	analyst := advisor.NewAnalyst()
	if err := analyst.Start(ctx, client); err != nil {
		fmt.Fprintln(os.Stderr, "Error starting the analyst session:", err)
		return subcommands.ExitFailure
	}
	comment, err := analyst.Comment(ctx, md)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error asking the analyst:", err)
		return subcommands.ExitFailure
	}
	printMarkdown("## Analyst commentary\n\n" + comment + "\n")
	return subcommands.ExitSuccess
}
