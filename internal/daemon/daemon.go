package daemon

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"github.com/tjjh89017/fxsandbox/internal/config"
	"github.com/tjjh89017/fxsandbox/internal/ctrl"
	"github.com/tjjh89017/fxsandbox/internal/dom"
	"github.com/tjjh89017/fxsandbox/internal/driver"
	"github.com/tjjh89017/fxsandbox/internal/entity"
	"github.com/tjjh89017/fxsandbox/internal/metrics"
	"github.com/tjjh89017/fxsandbox/internal/plugin"
	"github.com/tjjh89017/fxsandbox/internal/queue"
	"github.com/tjjh89017/fxsandbox/internal/scaffold"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

var DefaultSet = wire.NewSet(
	New,
	dom.NewDocument,
)

var (
	ErrLeak              = errors.New("composition leaked resources")
	ErrCompositionFailed = errors.New("composition did not apply cleanly")
)

const (
	checkFrames = 30
	frameStep   = 16 * time.Millisecond
)

type Daemon struct {
	config   *config.Config
	doc      *dom.Document
	preview  *ctrl.PreviewController
	registry *plugin.Registry
	driver   *driver.Driver
	metrics  *metrics.Collector
	logger   zerolog.Logger
}

func New(
	config *config.Config,
	doc *dom.Document,
	preview *ctrl.PreviewController,
	registry *plugin.Registry,
	driver *driver.Driver,
	metrics *metrics.Collector,
	logger *zerolog.Logger) *Daemon {
	return &Daemon{
		config:   config,
		doc:      doc,
		preview:  preview,
		registry: registry,
		driver:   driver,
		metrics:  metrics,
		logger:   logger.With().Str("component", "daemon").Logger(),
	}
}

func (d *Daemon) compositions() [][]entity.PluginId {
	compositions := make([][]entity.PluginId, 0, len(d.config.Preview.Compositions))
	for _, c := range d.config.Preview.Compositions {
		ids := make([]entity.PluginId, len(c))
		for i, id := range c {
			ids[i] = entity.PluginId(id)
		}
		compositions = append(compositions, ids)
	}
	return compositions
}

// Run mounts the scaffold and cycles the configured compositions until ctx
// is done or a signal arrives.
func (d *Daemon) Run(ctx context.Context) error {
	daemonCtx, cancel := context.WithCancel(ctx)

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	defer func() {
		d.logger.Info().Msg("shutting down")
		signal.Stop(signalChan)
		close(signalChan)
		cancel()
	}()

	container, err := scaffold.Mount(d.doc, d.config.Preview.Container)
	if err != nil {
		return err
	}
	defer func() {
		d.preview.Teardown(context.Background(), container)
		d.release()
		container.Unmount()
	}()

	g, gctx := errgroup.WithContext(daemonCtx)

	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-signalChan:
			cancel()
		}
		return nil
	})
	g.Go(func() error {
		return d.driver.Run(gctx, d.doc)
	})
	if d.config.Metrics.Listen != "" {
		g.Go(func() error {
			return d.metrics.Serve(gctx, d.config.Metrics.Listen)
		})
	}

	requests := queue.New[[]entity.PluginId]()
	g.Go(func() error {
		return d.schedule(gctx, requests)
	})
	g.Go(func() error {
		return d.apply(gctx, container, requests)
	})

	d.logger.Info().Msgf("daemon started with cycle interval %s", d.config.Preview.CycleInterval)

	return g.Wait()
}

// schedule enqueues the configured compositions round robin, one per cycle
// interval.
func (d *Daemon) schedule(ctx context.Context, requests *queue.Queue[[]entity.PluginId]) error {
	defer requests.Close()

	compositions := d.compositions()
	if len(compositions) == 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(d.config.Preview.CycleInterval)
	defer ticker.Stop()

	for i := 0; ; i = (i + 1) % len(compositions) {
		if err := requests.Enqueue(ctx, compositions[i]); err != nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (d *Daemon) apply(ctx context.Context, container *dom.Container, requests *queue.Queue[[]entity.PluginId]) error {
	for ids := range requests.Dequeue() {
		report := d.preview.SetComposition(ctx, container, ids)
		d.logReport(report)
	}
	return nil
}

// RunOneshot applies every configured composition in turn, exercises it and
// tears it down again, verifying that the scaffold is left exactly as it was
// mounted.
func (d *Daemon) RunOneshot(ctx context.Context) error {
	d.logger.Info().Msg("running in oneshot mode")

	container, err := scaffold.Mount(d.doc, d.config.Preview.Container)
	if err != nil {
		return err
	}
	defer container.Unmount()

	pristine, err := d.snapshot(container)
	if err != nil {
		return err
	}

	var errs []error
	compositions := d.compositions()
	for i, ids := range compositions {
		d.logger.Info().Msgf("oneshot composition %d/%d", i+1, len(compositions))

		report := d.preview.SetComposition(ctx, container, ids)
		d.logReport(report)
		if !report.Clean() {
			errs = append(errs, fmt.Errorf("%w: %v", ErrCompositionFailed, ids))
		}

		d.exercise(container)

		if failures := d.preview.Teardown(ctx, container); len(failures) > 0 {
			errs = append(errs, fmt.Errorf("%w: %d cleanup failures for %v", ErrCompositionFailed, len(failures), ids))
		}

		if err := d.verify(container, pristine); err != nil {
			errs = append(errs, fmt.Errorf("%w: %v: %w", ErrLeak, ids, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	d.logger.Info().Msg("oneshot mode completed")
	return nil
}

// Render applies ids to a fresh scaffold, runs frames of animation and writes
// the resulting document to w.
func (d *Daemon) Render(ctx context.Context, w io.Writer, ids []entity.PluginId, frames int) (*entity.CompositionReport, error) {
	container, err := scaffold.Mount(d.doc, d.config.Preview.Container)
	if err != nil {
		return nil, err
	}
	defer func() {
		d.preview.Teardown(ctx, container)
		container.Unmount()
	}()

	report := d.preview.SetComposition(ctx, container, ids)
	d.logReport(report)

	driver.Pump(d.doc, frames, frameStep)

	return report, d.doc.Render(w)
}

// release cleans up every instance a plugin still tracks, including ones
// applied outside the preview controller.
func (d *Daemon) release() {
	var err error
	d.doc.Exclusive(func() {
		err = d.registry.CleanupAll()
	})
	if err != nil {
		d.logger.Warn().Err(err).Msg("global plugin cleanup failed")
	}
}

// exercise drives frames, timers and synthetic input through the container.
func (d *Daemon) exercise(container *dom.Container) {
	var hero, cta *html.Node
	d.doc.Exclusive(func() {
		hero = first(container, scaffold.Hero)
		cta = first(container, scaffold.CTA)
	})

	driver.Pump(d.doc, checkFrames/2, frameStep)

	if cta != nil {
		d.doc.Dispatch(&dom.Event{Type: dom.PointerEnter, Target: cta, ClientX: 150, ClientY: 430})
		d.doc.Dispatch(&dom.Event{Type: dom.PointerMove, Target: cta, ClientX: 300, ClientY: 460})
		d.doc.Dispatch(&dom.Event{Type: dom.PointerLeave, Target: cta})
	}
	if hero != nil {
		d.doc.Dispatch(&dom.Event{Type: dom.PointerMove, Target: hero, ClientX: 900, ClientY: 120})
		d.doc.Dispatch(&dom.Event{Type: dom.PointerLeave, Target: hero})
	}
	d.doc.Dispatch(&dom.Event{Type: dom.Scroll, Target: d.doc.Body(), ScrollY: 320})

	driver.Pump(d.doc, checkFrames/2, frameStep)
}

func first(container *dom.Container, selector string) *html.Node {
	nodes, err := container.Query(selector)
	if err != nil || len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

func (d *Daemon) snapshot(container *dom.Container) (string, error) {
	var buf bytes.Buffer
	var err error
	d.doc.Exclusive(func() {
		err = html.Render(&buf, container.Root())
	})
	return buf.String(), err
}

func (d *Daemon) verify(container *dom.Container, pristine string) error {
	stats := d.doc.Stats()
	if stats.Listeners != 0 || stats.Frames != 0 || stats.Timers != 0 || stats.OwnedNodes != 0 {
		return fmt.Errorf("%d listeners, %d frames, %d timers, %d owned nodes left",
			stats.Listeners, stats.Frames, stats.Timers, stats.OwnedNodes)
	}

	markup, err := d.snapshot(container)
	if err != nil {
		return err
	}
	if markup != pristine {
		return fmt.Errorf("scaffold markup changed")
	}

	return nil
}

func (d *Daemon) logReport(report *entity.CompositionReport) {
	event := d.logger.Info()
	if !report.Clean() {
		event = d.logger.Warn()
	}

	event.
		Str("container", string(report.Container)).
		Strs("requested", pluginIds(report.Requested)).
		Int("applied", len(report.Applied)).
		Strs("unresolved", pluginIds(report.Unresolved)).
		Strs("unmatched", pluginIds(report.Unmatched)).
		Int("apply_failures", len(report.ApplyFailures)).
		Int("cleanup_failures", len(report.CleanupFailures)).
		Bool("superseded", report.Superseded).
		Bool("deferred", report.Deferred).
		Msg("composition report")
}

func pluginIds(ids []entity.PluginId) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
