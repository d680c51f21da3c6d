package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/lexandro/docscan/finder"
	"github.com/lexandro/docscan/ignore"
	"github.com/lexandro/docscan/index"
	"github.com/lexandro/docscan/server"
	"github.com/lexandro/docscan/tools"
	"github.com/lexandro/docscan/watcher"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the indexed documents over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			logger.Info("starting docscan serve", "root", cfg.Root, "config", cfg.ConfigFile)
			startTime := time.Now()

			matcher := ignore.NewMatcher(ignore.MatcherOptions{
				RootDir:        cfg.Root,
				CustomPatterns: cfg.Exclude,
				UseGitignore:   cfg.Gitignore,
			})
			svc, err := newDocService(cfg.Root, matcher, logger)
			if err != nil {
				return err
			}
			defer svc.contentIndex.Close()

			result, err := svc.rescan()
			if err != nil {
				return fmt.Errorf("initial scan: %w", err)
			}
			logger.Info("initial scan complete",
				"readmes", result.Readmes,
				"docs", result.Docs,
				"skipped", result.Skipped,
				"duration", result.Duration,
			)

			docWatcher, err := watcher.NewWatcher(cfg.Root, matcher, logger)
			if err != nil {
				logger.Warn("failed to start file watcher, continuing without live updates", "error", err)
			} else {
				go docWatcher.Start()
				go svc.handleWatcherEvents(docWatcher.Events())
				defer docWatcher.Close()
			}

			mcpServer := server.Setup(server.Handlers{
				List:    &tools.ListHandler{DocumentIndex: svc.docIndex, Logger: logger},
				Read:    &tools.ReadHandler{ContentIndex: svc.contentIndex, Logger: logger},
				Preview: &tools.PreviewHandler{DocumentIndex: svc.docIndex, Logger: logger},
				Search:  &tools.SearchHandler{ContentIndex: svc.contentIndex, Logger: logger},
				Status: &tools.StatusHandler{
					DocumentIndex: svc.docIndex,
					ContentIndex:  svc.contentIndex,
					StartTime:     startTime,
					RootDir:       cfg.Root,
					LastScan:      svc.lastScan,
					Logger:        logger,
				},
				Rescan: &tools.RescanHandler{DoRescan: svc.rescanOutcome, Logger: logger},
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.Info("MCP server starting on stdio")
			if err := mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
				return fmt.Errorf("MCP server: %w", err)
			}
			return nil
		},
	}
}

// docService owns the indexes of one root and serializes rescans over them.
type docService struct {
	matcher      *ignore.Matcher
	finder       *finder.Finder
	docIndex     *index.DocumentIndex
	contentIndex *index.ContentIndex
	logger       *slog.Logger

	mu        sync.Mutex // one scan at a time
	scannedAt time.Time
}

func newDocService(rootDir string, matcher *ignore.Matcher, logger *slog.Logger) (*docService, error) {
	contentIndex, err := index.NewContentIndex()
	if err != nil {
		return nil, fmt.Errorf("creating content index: %w", err)
	}
	return &docService{
		matcher:      matcher,
		finder:       finder.New(rootDir, matcher, logger),
		docIndex:     index.NewDocumentIndex(),
		contentIndex: contentIndex,
		logger:       logger,
	}, nil
}

// rescan rebuilds both indexes from disk.
func (s *docService) rescan() (ScanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := performScan(s.finder, s.docIndex, s.contentIndex, s.logger)
	if err != nil {
		return result, err
	}
	s.scannedAt = time.Now()
	return result, nil
}

// rescanOutcome reloads ignore rules and rescans, for the docs_rescan tool.
func (s *docService) rescanOutcome() (tools.RescanOutcome, error) {
	s.matcher.Reload()
	result, err := s.rescan()
	if err != nil {
		return tools.RescanOutcome{}, err
	}
	return tools.RescanOutcome{
		Readmes: result.Readmes,
		Docs:    result.Docs,
		Skipped: result.Skipped,
		Elapsed: result.Duration,
	}, nil
}

func (s *docService) lastScan() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scannedAt
}

// handleWatcherEvents turns each debounced batch into one full rescan.
// Ignore rules are reloaded first when the batch touches an ignore file.
func (s *docService) handleWatcherEvents(batches <-chan []watcher.Change) {
	for batch := range batches {
		for _, change := range batch {
			if s.matcher.IsIgnoreFile(change.Path) {
				s.logger.Info("ignore file changed, reloading rules", "path", change.Path)
				s.matcher.Reload()
				break
			}
		}

		result, err := s.rescan()
		if err != nil {
			s.logger.Error("rescan after change failed", "error", err)
			continue
		}
		s.logger.Info("rescan after change",
			"changes", len(batch),
			"readmes", result.Readmes,
			"docs", result.Docs,
			"skipped", result.Skipped,
			"duration", result.Duration,
		)
	}
}
