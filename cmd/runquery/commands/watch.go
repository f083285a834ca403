package commands

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/teranos/runquery/am"
	"github.com/teranos/runquery/display"
	"github.com/teranos/runquery/logger"
	"github.com/teranos/runquery/messages"
	"github.com/teranos/runquery/naming"
	"github.com/teranos/runquery/ndjson"
	"github.com/teranos/runquery/query"
	"github.com/teranos/runquery/report"
	"github.com/teranos/runquery/sym"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: sym.Watch + " Follow a message file while the run is in progress",
		Long: `Follow a message file and keep a live summary on screen.

Messages already in the file are read first; lines appended afterwards
are picked up as they are written. Watching ends when the file is removed
or on Ctrl-C, and the final summary is printed.

The naming section of the project configuration is reloaded when the file
changes.`,
		Example: `  runquery watch run.ndjson
  runquery watch run.ndjson --refresh 1 --strategy short`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}
	cmd.Flags().Float64("refresh", -1, "Redraws per second, 0 redraws on every message (default from config)")
	addNamingFlags(cmd)
	addStoreFlags(cmd)
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := configFrom(cmd)
	log := logger.ComponentLogger("watch")

	strategy, err := strategyFor(cmd, cfg)
	if err != nil {
		return err
	}
	repo, err := newRepository(cmd, cfg)
	if err != nil {
		return err
	}
	q, err := newQuery(repo, cfg)
	if err != nil {
		return err
	}

	refresh := cfg.Watch.RefreshPerSecond
	if v, _ := cmd.Flags().GetFloat64("refresh"); v >= 0 {
		refresh = v
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var draw func(string)
	if display.IsTerminal(os.Stdout) {
		area, err := pterm.DefaultArea.Start()
		if err != nil {
			return err
		}
		defer func() { _ = area.Stop() }()
		draw = func(text string) { area.Update(text) }
	}
	view := newLiveView(q, strategy, refresh, draw)
	viewCtx, stopView := context.WithCancel(ctx)
	defer stopView()
	ticking := make(chan struct{})
	go func() {
		defer close(ticking)
		view.run(viewCtx)
	}()

	if path := watchedConfig(cmd); path != "" {
		cw, err := am.NewConfigWatcher(path, time.Duration(cfg.Watch.DebounceMS)*time.Millisecond)
		if err != nil {
			log.Warnw("config changes will not be picked up", logger.FieldPath, path, logger.FieldError, err)
		} else {
			cw.OnReload(func(c *am.Config) error {
				s, err := c.NamingStrategy()
				if err != nil {
					return err
				}
				view.setStrategy(s)
				return nil
			})
			am.SetGlobalWatcher(cw)
			cw.Start()
			defer func() { _ = cw.Stop() }()
		}
	}

	followErr := ndjson.Follow(ctx, args[0], func(env *messages.Envelope) error {
		repo.Update(env)
		view.changed()
		return nil
	})

	// Follow returns with ctx still live when the file is removed; the
	// ticker must be gone before the last frame is drawn.
	stopView()
	<-ticking

	final := view.final()
	if draw == nil {
		if _, err := cmd.OutOrStdout().Write([]byte(final)); err != nil {
			return err
		}
	}
	return followErr
}

// watchedConfig returns the file whose changes should reach a running
// watch: --config if given, otherwise the project file.
func watchedConfig(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return am.ProjectConfigPath()
}

// liveView redraws the summary of a growing store, at most limit times
// per second. A change that arrives while the limiter is exhausted is
// drawn by the next tick.
type liveView struct {
	q       *query.Query
	limiter *rate.Limiter
	every   time.Duration
	draw    func(string)

	mu       sync.Mutex
	strategy naming.Strategy
	pending  bool
}

// newLiveView builds a view. perSecond <= 0 redraws on every change; a
// nil draw makes the view silent until render is called.
func newLiveView(q *query.Query, strategy naming.Strategy, perSecond float64, draw func(string)) *liveView {
	v := &liveView{
		q:        q,
		limiter:  rate.NewLimiter(rate.Inf, 1),
		draw:     draw,
		strategy: strategy,
	}
	if perSecond > 0 {
		v.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		v.every = time.Duration(float64(time.Second) / perSecond)
	}
	return v
}

func (v *liveView) setStrategy(s naming.Strategy) {
	v.mu.Lock()
	v.strategy = s
	v.pending = true
	v.mu.Unlock()
	v.flush()
}

func (v *liveView) changed() {
	v.mu.Lock()
	v.pending = true
	v.mu.Unlock()
	v.flush()
}

func (v *liveView) flush() {
	if v.draw == nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.pending || !v.limiter.Allow() {
		return
	}
	v.pending = false
	v.draw(v.renderLocked())
}

// run draws pending changes on every tick until ctx is done.
func (v *liveView) run(ctx context.Context) {
	if v.every == 0 || v.draw == nil {
		return
	}
	ticker := time.NewTicker(v.every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			v.flush()
		}
	}
}

// final draws the current state regardless of the limiter and returns it.
func (v *liveView) final() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pending = false
	text := v.renderLocked()
	if v.draw != nil {
		v.draw(text)
	}
	return text
}

func (v *liveView) render() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.renderLocked()
}

func (v *liveView) renderLocked() string {
	var b strings.Builder
	if err := report.Build(v.q, v.strategy).WriteText(&b); err != nil {
		return err.Error()
	}
	return b.String()
}
