package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/viewlens/viewlens/internal/cache"
	"github.com/viewlens/viewlens/internal/config"
	"github.com/viewlens/viewlens/internal/extractor"
)

var showCacheStats bool

var extractCmd = &cobra.Command{
	Use:   "extract [file...]",
	Short: "Extract UI component metadata from Python source files",
	Long: `Extract parses each file and prints the components, errors, and view
declarations it finds as JSON. A single path prints one result object;
multiple paths print a map keyed by path. One file's failure never
aborts the rest.`,
	Run: func(cmd *cobra.Command, args []string) {
		if code := runExtract(args, cmd.OutOrStdout(), os.Stderr); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	extractCmd.Flags().BoolVar(&showCacheStats, "cache-stats", false, "print cache statistics to stderr after the run")
	rootCmd.AddCommand(extractCmd)
}

// runExtract implements the extract command. Exit code 1 is reserved for
// the one contract violation — no path supplied; producing a result, even
// one full of errors, exits 0.
func runExtract(paths []string, stdout, stderr io.Writer) int {
	if len(paths) == 0 {
		writeJSON(stdout, noPathResult())
		return 1
	}

	cfg := loadConfigOrDefault()
	engine := extractor.New()
	resultCache := cache.New(cfg.Cache.TTL(), cfg.Cache.MaxEntries)
	matcher := config.NewPathMatcher(cfg.Paths)

	for _, path := range paths {
		if !matcher.Matches(path) {
			fmt.Fprintf(stderr, "warning: %s does not match the configured source patterns\n", path)
		}
	}

	if len(paths) == 1 {
		writeJSON(stdout, extractPath(engine, resultCache, paths[0]))
	} else {
		results := make(map[string]*extractor.ExtractResult, len(paths))
		bar := newExtractProgress(len(paths), stderr)
		for _, path := range paths {
			results[path] = extractPath(engine, resultCache, path)
			bar.Add(1)
		}
		fmt.Fprintln(stderr)
		writeJSON(stdout, results)
	}

	if showCacheStats {
		statsJSON, _ := json.Marshal(resultCache.Stats())
		fmt.Fprintf(stderr, "cache: %s\n", statsJSON)
	}
	return 0
}

// extractPath reads one file and extracts it, consulting the cache.
// Read failures become an error result rather than aborting the run.
func extractPath(engine *extractor.Engine, resultCache *cache.ResultCache, path string) *extractor.ExtractResult {
	content, err := os.ReadFile(path)
	if err != nil {
		return &extractor.ExtractResult{
			Components: []extractor.Component{},
			Errors: []extractor.Diagnostic{{
				Severity: extractor.SeverityError,
				Kind:     extractor.ErrInternal,
				Message:  fmt.Sprintf("Parse error: %v", err),
			}},
			Views: []extractor.ViewDecl{},
		}
	}

	if result, ok := resultCache.Get(path, content); ok {
		return result
	}
	result := engine.Extract(content)
	resultCache.Set(path, content, result)
	return result
}

func loadConfigOrDefault() *config.Config {
	wd, err := os.Getwd()
	if err != nil {
		return config.Default()
	}
	cfg, err := config.NewLoader(wd).Load()
	if err != nil {
		log.Printf("config: %v (using defaults)", err)
		return config.Default()
	}
	return cfg
}

// noPathResult is the single top-level error emitted when the command is
// invoked without a file path.
func noPathResult() *extractor.ExtractResult {
	return &extractor.ExtractResult{
		Components: []extractor.Component{},
		Errors: []extractor.Diagnostic{{
			Severity: extractor.SeverityError,
			Message:  "No file path provided",
		}},
		Views: []extractor.ViewDecl{},
	}
}

func newExtractProgress(total int, out io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("Extracting files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
	)
}

func writeJSON(out io.Writer, v any) {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		log.Printf("encode result: %v", err)
	}
}
