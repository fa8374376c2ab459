package commands

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/handiism/beatmap-browser/internal/commands/options"
	"github.com/handiism/beatmap-browser/internal/download"
	"github.com/handiism/beatmap-browser/internal/route"
)

func addDownload(topLevel *cobra.Command, ro *options.RootOptions) {
	do := &options.DownloadOptions{}

	cmd := &cobra.Command{
		Use:   "download <id|url>...",
		Short: "Download beatmap set archives.",
		Long: `Download beatmap set archives into the downloads folder.

Sets are resolved on the mirror first. Archives that already exist are
skipped, failed downloads are retried with an exponential cooldown.`,
		Example: `
beatmap-dl download 39804
beatmap-dl download 39804 1001 --no-video -d ~/Songs
beatmap-dl download https://osu.ppy.sh/beatmapsets/39804 --preview --playlist
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := parseID(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			e, err := setup(ro)
			if err != nil {
				return err
			}
			defer e.Close()
			do.Apply(e.settings)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			p := &printer{w: out, verbose: do.Verbose}
			manager := download.NewManager(e.settings, e.http, e.mirror, p.print)

			if err := manager.Initialize(ctx, ids); err != nil {
				return err
			}

			if do.DryRun {
				_, _ = fmt.Fprintln(out, "Dry run, not downloading:")
				for _, name := range manager.GetSetNames() {
					_, _ = fmt.Fprintln(out, "  "+name)
				}
				return nil
			}

			err = manager.StartDownloads(ctx)
			if ctx.Err() != nil {
				return errors.New("download cancelled")
			}

			received, files, total := manager.GetProgress()
			done := color.New(color.FgGreen, color.Bold)
			if err != nil {
				done = color.New(color.FgYellow, color.Bold)
			}
			_, _ = fmt.Fprintln(out, done.Sprintf("Downloaded %d/%d files (%.2f MB)", files, total, float64(received)/1024/1024))
			return err
		},
	}

	options.AddDownloadArgs(cmd, do)

	topLevel.AddCommand(cmd)
}

var levelColors = map[download.ProgressLevel]*color.Color{
	download.LevelInfo:    color.New(color.FgCyan),
	download.LevelVerbose: color.New(color.Faint),
	download.LevelWarning: color.New(color.FgYellow),
	download.LevelError:   color.New(color.FgRed),
	download.LevelSuccess: color.New(color.FgGreen),
}

// printer writes progress events. The manager calls it from several
// goroutines.
type printer struct {
	mu      sync.Mutex
	w       io.Writer
	verbose bool
}

func (p *printer) print(event download.ProgressEvent) {
	if event.Level == download.LevelVerbose && !p.verbose {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	label := fmt.Sprintf("%-7s", event.Level)
	if c, ok := levelColors[event.Level]; ok {
		label = c.Sprint(label)
	}
	_, _ = fmt.Fprintf(p.w, "%s %s\n", label, event.Message)
}

// parseID accepts a bare set id or any URL or path whose route names a set,
// such as https://osu.ppy.sh/beatmapsets/39804#osu/123.
func parseID(arg string) (int64, error) {
	arg = strings.TrimSpace(arg)
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		if id <= 0 {
			return 0, fmt.Errorf("invalid beatmap set id %q", arg)
		}
		return id, nil
	}

	path := arg
	if u, err := url.Parse(arg); err == nil && u.Path != "" {
		path = u.Path
	}
	r := route.Parse(path)
	if r.Kind != route.KindBeatmapset {
		return 0, fmt.Errorf("not a beatmap set id or link: %q", arg)
	}
	return r.ID, nil
}
