package rag

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Chunking parameters for document ingestion.
const (
	chunkSize    = 500
	chunkOverlap = 50
)

// Indexer ingests best-practice documents into the knowledge-base
// store. The corpus layout is a directory of generic .txt files plus a
// company root with one subdirectory of .txt/.md files per company.
// YAML manifests may list pre-chunked snippets directly.
type Indexer struct {
	store Store
}

// NewIndexer creates an Indexer over the given store.
func NewIndexer(store Store) *Indexer {
	return &Indexer{store: store}
}

// IndexGenericDir ingests every .txt file under dir as generic
// snippets. Returns the number of snippets added.
func (ix *Indexer) IndexGenericDir(ctx context.Context, dir string) (int, error) {
	files, err := collectFiles(dir, ".txt")
	if err != nil {
		return 0, err
	}

	var snippets []Snippet
	for _, path := range files {
		chunks, err := chunkFile(path)
		if err != nil {
			return 0, err
		}
		for _, chunk := range chunks {
			snippets = append(snippets, Snippet{
				Content: chunk,
				Type:    TypeGeneric,
				Source:  relSource(dir, path),
			})
		}
	}

	if err := ix.store.Add(ctx, snippets); err != nil {
		return 0, err
	}
	zap.L().Info("rag: indexed generic documents",
		zap.String("dir", dir),
		zap.Int("files", len(files)),
		zap.Int("snippets", len(snippets)),
	)
	return len(snippets), nil
}

// IndexCompanyRoot ingests root/<company>/**.{txt,md} trees, tagging
// each snippet with its company name.
func (ix *Indexer) IndexCompanyRoot(ctx context.Context, root string) (int, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return 0, eris.Wrapf(err, "rag: read company root %s", root)
	}

	total := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		company := entry.Name()
		companyDir := filepath.Join(root, company)

		files, err := collectFiles(companyDir, ".txt", ".md")
		if err != nil {
			return 0, err
		}

		var snippets []Snippet
		for _, path := range files {
			chunks, err := chunkFile(path)
			if err != nil {
				return 0, err
			}
			for _, chunk := range chunks {
				snippets = append(snippets, Snippet{
					Content: chunk,
					Type:    TypeCompany,
					Company: company,
					Source:  relSource(companyDir, path),
				})
			}
		}

		if err := ix.store.Add(ctx, snippets); err != nil {
			return 0, err
		}
		zap.L().Info("rag: indexed company documents",
			zap.String("company", company),
			zap.Int("files", len(files)),
			zap.Int("snippets", len(snippets)),
		)
		total += len(snippets)
	}
	return total, nil
}

// IndexManifest ingests a YAML manifest of pre-chunked snippets.
func (ix *Indexer) IndexManifest(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, eris.Wrapf(err, "rag: read manifest %s", path)
	}

	var snippets []Snippet
	if err := yaml.Unmarshal(data, &snippets); err != nil {
		return 0, eris.Wrapf(err, "rag: parse manifest %s", path)
	}

	kept := snippets[:0]
	for _, sn := range snippets {
		sn.Content = strings.TrimSpace(sn.Content)
		if sn.Content == "" {
			continue
		}
		if sn.Source == "" {
			sn.Source = filepath.Base(path)
		}
		kept = append(kept, sn)
	}

	if err := ix.store.Add(ctx, kept); err != nil {
		return 0, err
	}
	return len(kept), nil
}

// collectFiles walks root and returns files with one of the given
// extensions, sorted by walk order. A missing root yields no files.
func collectFiles(root string, exts ...string) ([]string, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range exts {
			if ext == want {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, eris.Wrapf(err, "rag: walk %s", root)
	}
	return files, nil
}

func chunkFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "rag: read %s", path)
	}
	return chunkText(string(data)), nil
}

// chunkText splits text into roughly chunkSize-rune pieces with
// chunkOverlap runes of overlap, breaking on whitespace where possible.
func chunkText(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + chunkSize
		if end >= len(runes) {
			if chunk := strings.TrimSpace(string(runes[start:])); chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		// Back up to the nearest whitespace so words stay intact.
		cut := end
		for cut > start+chunkSize/2 && !unicode.IsSpace(runes[cut]) {
			cut--
		}
		if cut == start+chunkSize/2 {
			cut = end
		}

		if chunk := strings.TrimSpace(string(runes[start:cut])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		start = cut - chunkOverlap
	}
	return chunks
}

func relSource(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
