package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/call-coach/internal/rag"
)

var (
	kbGenericDir  string
	kbCompanyRoot string
	kbManifest    string
	kbCompany     string
)

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Manage the coaching knowledge base",
}

var kbIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Ingest best-practice documents into the knowledge base",
	Long:  "Indexes generic .txt documents, per-company .txt/.md trees, and YAML snippet manifests into the configured store. The index is built offline; the analysis pipeline only reads it.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("kb"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		indexer := rag.NewIndexer(store)
		total := 0

		if kbGenericDir != "" {
			n, err := indexer.IndexGenericDir(ctx, kbGenericDir)
			if err != nil {
				return err
			}
			total += n
		}
		if kbCompanyRoot != "" {
			n, err := indexer.IndexCompanyRoot(ctx, kbCompanyRoot)
			if err != nil {
				return err
			}
			total += n
		}
		if kbManifest != "" {
			n, err := indexer.IndexManifest(ctx, kbManifest)
			if err != nil {
				return err
			}
			total += n
		}

		count, err := store.Count(ctx)
		if err != nil {
			return err
		}
		zap.L().Info("kb: indexing complete",
			zap.Int("added", total),
			zap.Int("total_snippets", count),
		)
		return nil
	},
}

var kbQueryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Query the knowledge base and print the retrieved snippets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("kb"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		retriever := rag.NewRetriever(store, cfg.RAG.Fake, cfg.RAG.TopK)

		company := kbCompany
		if company == "" {
			company = cfg.RAG.Company
		}

		for i, snippet := range retriever.Retrieve(ctx, args[0], company) {
			fmt.Printf("%d. %s\n", i+1, snippet)
		}
		return nil
	},
}

func init() {
	kbIndexCmd.Flags().StringVar(&kbGenericDir, "generic-dir", "", "directory of generic best-practice .txt documents")
	kbIndexCmd.Flags().StringVar(&kbCompanyRoot, "company-root", "", "root directory with one subdirectory of .txt/.md documents per company")
	kbIndexCmd.Flags().StringVar(&kbManifest, "manifest", "", "YAML manifest of pre-chunked snippets")

	kbQueryCmd.Flags().StringVar(&kbCompany, "company", "", "company knowledge base to prioritize (default from config)")

	kbCmd.AddCommand(kbIndexCmd)
	kbCmd.AddCommand(kbQueryCmd)
	rootCmd.AddCommand(kbCmd)
}
