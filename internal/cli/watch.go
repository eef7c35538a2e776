package cli

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/viewlens/viewlens/internal/cache"
	"github.com/viewlens/viewlens/internal/extractor"
	"github.com/viewlens/viewlens/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-extract a file whenever it changes",
	Long: `Watch extracts the file immediately and again after each save,
printing one JSON result per extraction. Unchanged saves are served from
the result cache. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(args[0])
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(path string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg := loadConfigOrDefault()
	engine := extractor.New()
	resultCache := cache.New(cfg.Cache.TTL(), cfg.Cache.MaxEntries)

	emit := func() {
		writeJSON(os.Stdout, extractPath(engine, resultCache, path))
	}
	emit()

	fw, err := watcher.NewFileWatcher(path, cfg.Watch.Debounce())
	if err != nil {
		return err
	}
	defer fw.Stop()

	if err := fw.Start(ctx, emit); err != nil {
		return err
	}
	if verbose {
		log.Printf("watching %s", path)
	}

	<-ctx.Done()
	return nil
}
