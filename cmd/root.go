package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/call-coach/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "call-coach",
	Short: "Sales-call coaching analysis pipeline",
	Long:  "Runs concurrent heuristic analyzers over sales-call transcripts, grounds coaching advice in a knowledge base, and merges everything into one structured report.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
