package server

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/werewolfd/internal/fileutil"
	"github.com/lox/werewolfd/internal/game"
)

// ResultsWriter persists finished-game records as JSON files, one per
// session, named after the session id.
type ResultsWriter struct {
	dir    string
	logger *log.Logger
}

// NewResultsWriter ensures the output directory exists. An empty dir
// disables recording: Write becomes a no-op.
func NewResultsWriter(dir string, logger *log.Logger) (*ResultsWriter, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create results directory: %w", err)
		}
	}
	return &ResultsWriter{dir: dir, logger: logger.WithPrefix("results")}, nil
}

// Write records one finished game. Files land atomically so a crash
// mid-write never leaves a truncated record.
func (w *ResultsWriter) Write(results *game.GameResults) error {
	if w.dir == "" {
		return nil
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	filename := filepath.Join(w.dir, results.SessionID+".json")
	if err := fileutil.WriteFileAtomic(filename, data, 0o644); err != nil {
		return err
	}

	w.logger.Info("game results recorded", "session", results.SessionID, "winner", results.Winner, "file", filename)
	return nil
}

// ResultsSummary aggregates every recorded game in the directory.
type ResultsSummary struct {
	Games  int            `json:"games"`
	Wins   map[string]int `json:"wins"`
	Nights int            `json:"nights"`
	Deaths int            `json:"deaths"`
}

// Summarize reads all recorded games and tallies them. Records are
// decoded in parallel; a single corrupt file fails the whole summary
// rather than silently skewing the tally.
func (w *ResultsWriter) Summarize(ctx context.Context) (*ResultsSummary, error) {
	summary := &ResultsSummary{Wins: make(map[string]int)}
	if w.dir == "" {
		return summary, nil
	}

	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read results directory: %w", err)
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		filename := filepath.Join(w.dir, entry.Name())

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", filename, err)
			}
			var results game.GameResults
			if err := json.Unmarshal(data, &results); err != nil {
				return fmt.Errorf("failed to decode %s: %w", filename, err)
			}

			deaths := 0
			for _, p := range results.Players {
				if !p.Survived {
					deaths++
				}
			}

			mu.Lock()
			summary.Games++
			summary.Wins[results.Winner]++
			summary.Nights += len(results.Nights)
			summary.Deaths += deaths
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}
