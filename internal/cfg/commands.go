package cfg

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"strconv"
	"time"

	"media-dupes/internal/domain/keys"
	"media-dupes/internal/models"
	"media-dupes/internal/parsing"
	"media-dupes/internal/queue"
	"media-dupes/internal/server"
	"media-dupes/internal/utils/logging"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// addCmd queues URLs from args and/or a file.
func addCmd(p *Program) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "add [URL...]",
		Short: "Add URLs to the queue",
		Long:  "Validate, normalize and queue URLs. Duplicates of queued URLs are skipped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			urls := args
			if file != "" {
				fromFile, err := parsing.NewURLFileParser(file).ParseURLs()
				if err != nil {
					return fmt.Errorf("failed to read URL file: %w", err)
				}
				urls = append(urls, fromFile...)
			}
			if len(urls) == 0 {
				return errors.New("please enter at least one URL, or a URL file with --file")
			}

			a, err := p.storeApp(cmd.Context())
			if err != nil {
				return err
			}

			added, rejected, err := enqueueAll(cmd, a.Enqueue, urls)
			if err != nil {
				return err
			}
			logging.I("Queued %d new URL(s), queue size is now %s", added, humanize.Comma(int64(a.Queue.Size())))
			if added == 0 && rejected > 0 {
				return fmt.Errorf("none of the %d URL(s) were valid", rejected)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, keys.URLFile, "", "File with one URL per line ('#' comments out a line)")
	return cmd
}

// queueCmd shows and resets the queue.
func queueCmd(p *Program) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Show or reset the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showQueue(cmd, p)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "List queued URLs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showQueue(cmd, p)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Remove every URL from the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := p.storeApp(cmd.Context())
			if err != nil {
				return err
			}
			n := a.Queue.Size()
			if err := a.ResetQueue(cmd.Context()); err != nil {
				return err
			}
			logging.S("Removed %d URL(s) from the queue", n)
			return nil
		},
	})
	return cmd
}

func showQueue(cmd *cobra.Command, p *Program) error {
	a, err := p.storeApp(cmd.Context())
	if err != nil {
		return err
	}
	if a.Queue.Size() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s queued URL(s):\n%s\n", humanize.Comma(int64(a.Queue.Size())), a.Queue)
	return nil
}

// startCmd downloads everything in the queue.
func startCmd(p *Program) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "start [URL...]",
		Short: "Download the queue",
		Long:  "Queue any URLs given, then download the whole queue in audio or video mode.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := p.settings()
			if err != nil {
				return err
			}
			a, err := p.batchApp(ctx, s)
			if err != nil {
				return err
			}
			defer p.waitNotifications()
			if _, _, err := enqueueAll(cmd, a.Enqueue, args); err != nil {
				return err
			}

			r, ok, err := a.RunBatch(ctx, models.Mode(mode), s)
			if err != nil {
				return err
			}
			if !ok {
				logging.I("Queue is empty, nothing to download")
				return nil
			}
			if r.Classification == models.TotalFailure || r.Classification == models.Cancelled {
				return errors.New(r.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, keys.Mode, string(models.ModeAudio), "Download mode (audio or video)")
	return cmd
}

// historyCmd lists finished batches.
func historyCmd(p *Program) *cobra.Command {
	var (
		since string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List finished batches",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now := time.Now()

			from, err := parsing.ParseSince(since, now)
			if err != nil {
				return err
			}

			a, err := p.storeApp(ctx)
			if err != nil {
				return err
			}
			recs, err := a.History(ctx, from, limit)
			if err != nil {
				return err
			}
			counts, err := a.SiteCounts(ctx, from)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(recs) == 0 {
				fmt.Fprintln(out, "No finished batches")
				return nil
			}
			for _, rec := range recs {
				fmt.Fprintln(out, formatBatch(rec, now))
			}
			if len(counts) > 0 {
				fmt.Fprintln(out, "\nDownloads per site:")
				for _, line := range formatSiteCounts(counts) {
					fmt.Fprintln(out, line)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&since, keys.Since, "", "Only batches finished after this (e.g. 7d, 36h, 2026-03-01)")
	cmd.Flags().IntVar(&limit, keys.Limit, 20, "Maximum batches to list (0 for all)")
	return cmd
}

// settingsCmd shows and changes persisted settings.
func settingsCmd(p *Program) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSettings(cmd, p)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show every setting",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSettings(cmd, p)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change a setting and save it to the config file",
		Long:  "Change a setting and save it to the config file. List values (notifyURLs) are comma separated.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := p.store.Set(args[0], args[1]); err != nil {
				return err
			}
			logging.S("Set %s to %q", args[0], args[1])
			return nil
		},
	})
	return cmd
}

func showSettings(cmd *cobra.Command, p *Program) error {
	all := p.store.All()
	for _, k := range SettableKeys() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", k, all[k])
	}
	return nil
}

// serveCmd runs the web API until interrupted.
func serveCmd(p *Program) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the queue and downloads over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := p.settings()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed(keys.Port) {
				port = p.store.ServerPort()
			}

			events := server.NewEventLogSink(0)
			a, err := p.batchApp(ctx, s, events)
			if err != nil {
				return err
			}
			defer p.waitNotifications()
			defer a.Settle()

			addr := net.JoinHostPort("", strconv.Itoa(port))
			return server.StartServer(ctx, addr, server.NewRouter(ctx, a, s, events))
		},
	}

	cmd.Flags().IntVar(&port, keys.Port, 0, "Port to listen on (defaults to the serverPort setting)")
	return cmd
}

// enqueueAll queues each URL, logging rejected ones instead of failing.
func enqueueAll(cmd *cobra.Command, enqueue func(context.Context, string) (string, bool, error), urls []string) (int, int, error) {
	var added, rejected int
	for _, u := range urls {
		_, duplicate, err := enqueue(cmd.Context(), u)
		var emptyErr *queue.EmptyURLError
		var invalidErr *queue.InvalidURLError
		switch {
		case errors.As(err, &emptyErr), errors.As(err, &invalidErr):
			logging.W("Skipping: %v", err)
			rejected++
		case err != nil:
			return added, rejected, err
		case !duplicate:
			added++
		}
	}
	return added, rejected, nil
}

// formatBatch renders one history line.
func formatBatch(rec models.BatchRecord, now time.Time) string {
	id := rec.ID
	if len(id) > 8 {
		id = id[:8]
	}
	c := rec.Counters
	return fmt.Sprintf("%s  %-5s  %-15s  %d total, %d succeeded, %d failed, %d cancelled  finished %s",
		id, rec.Mode, rec.Classification, c.Total, c.Succeeded, c.Failed, c.Cancelled,
		humanize.RelTime(rec.FinishedAt, now, "ago", "from now"))
}

// formatSiteCounts renders site counts, most downloaded first.
func formatSiteCounts(counts map[string]int) []string {
	sites := make([]string, 0, len(counts))
	for site := range counts {
		sites = append(sites, site)
	}
	sort.Slice(sites, func(i, j int) bool {
		if counts[sites[i]] != counts[sites[j]] {
			return counts[sites[i]] > counts[sites[j]]
		}
		return sites[i] < sites[j]
	})

	lines := make([]string, 0, len(sites))
	for _, site := range sites {
		name := site
		if name == "" {
			name = "(unknown)"
		}
		lines = append(lines, fmt.Sprintf("  %-24s %s", name, humanize.Comma(int64(counts[site]))))
	}
	return lines
}
