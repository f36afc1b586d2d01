package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"testmorph/internal/detect"
	"testmorph/internal/history"
	"testmorph/internal/logging"
	"testmorph/internal/render"
)

var (
	detectAll       bool
	detectMarkdown  bool
	detectParallel  int
	detectNoHistory bool
)

var detectCmd = &cobra.Command{
	Use:   "detect <file>...",
	Short: "Detect the source format of one or more JSON export files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDetect,
}

func init() {
	detectCmd.Flags().BoolVar(&detectAll, "all", false, "Print the full confidence distribution per file")
	detectCmd.Flags().BoolVar(&detectMarkdown, "markdown", false, "Render tables as Markdown")
	detectCmd.Flags().IntVar(&detectParallel, "parallel", 1, "Number of files to process concurrently")
	detectCmd.Flags().BoolVar(&detectNoHistory, "no-history", false, "Do not record results in the history store")
}

type fileResult struct {
	path string
	hash string
	res  detect.Result
	err  error
}

func runDetect(cmd *cobra.Command, args []string) error {
	logger := logging.New("detect")
	detector, err := buildDetector()
	if err != nil {
		return err
	}

	// Detection is safe to fan out: the detector is read-only and every
	// call owns its own accumulator.
	results := make([]fileResult, len(args))
	var g errgroup.Group
	g.SetLimit(max(detectParallel, 1))
	for i, path := range args {
		g.Go(func() error {
			doc, hash, err := loadDocument(path)
			if err != nil {
				results[i] = fileResult{path: path, err: err}
				return err
			}
			results[i] = fileResult{path: path, hash: hash, res: detector.Detect(doc)}
			return nil
		})
	}
	runErr := g.Wait()

	var store history.Store
	if !detectNoHistory {
		store, err = openHistory()
		if err != nil {
			logger.Warn("history store unavailable", "error", err)
		} else {
			defer store.Close()
		}
	}

	out := cmd.OutOrStdout()
	for _, r := range results {
		if r.err != nil {
			continue
		}
		conf := r.res.Confidences[r.res.Format]
		fmt.Fprintf(out, "%s: %s (%s)\n", r.path, r.res.Format, render.Percent(conf))
		if detectAll {
			fmt.Fprintln(out, confidenceTable(r.res))
		}
		if store != nil {
			if _, err := store.SaveDetection(&history.Record{
				FileName:   r.path,
				SHA256:     r.hash,
				Format:     string(r.res.Format),
				Confidence: conf,
			}); err != nil {
				logger.Warn("record detection", "file", r.path, "error", err)
			}
		}
	}
	return runErr
}

// confidenceTable renders the full distribution, highest first.
func confidenceTable(res detect.Result) string {
	mode := render.ASCII
	if detectMarkdown {
		mode = render.Markdown
	}
	type entry struct {
		format string
		p      float64
	}
	entries := make([]entry, 0, len(res.Confidences))
	for f, p := range res.Confidences {
		entries = append(entries, entry{string(f), p})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].p != entries[j].p {
			return entries[i].p > entries[j].p
		}
		return entries[i].format < entries[j].format
	})

	tb := render.NewTable(mode)
	tb.Header("Format", "Confidence")
	tb.Columns(render.ColumnConfig{Number: 2, Align: render.AlignRight})
	for _, e := range entries {
		tb.Row(e.format, render.Percent(e.p))
	}
	return tb.String()
}
