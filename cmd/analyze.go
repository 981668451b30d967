package main

import (
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/call-coach/internal/model"
)

var (
	analyzeHint   string
	analyzePretty bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [transcript-file]",
	Short: "Analyze a sales-call transcript and print the report JSON",
	Long:  "Reads a transcript from the given file (or stdin when omitted), runs the analysis pipeline, and prints the coaching report as JSON.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("analyze"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		transcript, err := readTranscript(args)
		if err != nil {
			return err
		}

		runner, cleanup, err := newRunner(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		var report *model.Report
		if analyzeHint != "" {
			report, err = runner.RunWithHint(ctx, transcript, analyzeHint)
		} else {
			report, err = runner.Run(ctx, transcript)
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		if analyzePretty {
			enc.SetIndent("", "  ")
		}
		return eris.Wrap(enc.Encode(report), "encode report")
	},
}

func readTranscript(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", eris.Wrapf(err, "read transcript %s", args[0])
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", eris.Wrap(err, "read transcript from stdin")
	}
	return string(data), nil
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeHint, "sentiment-hint", "", "externally supplied sentiment hint (legacy; sentiment is normally computed from the transcript)")
	analyzeCmd.Flags().BoolVar(&analyzePretty, "pretty", false, "indent the report JSON")
	rootCmd.AddCommand(analyzeCmd)
}
