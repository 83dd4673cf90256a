package ctrl

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/tjjh89017/fxsandbox/internal/config"
	"github.com/tjjh89017/fxsandbox/internal/dom"
	"github.com/tjjh89017/fxsandbox/internal/entity"
	"github.com/tjjh89017/fxsandbox/internal/plugin"
)

var ErrUnknownOwner = errors.New("instance owner is not registered")

// slot serializes composition changes for one container. generation is
// bumped by every request so a request waiting to settle can tell it was
// overtaken.
type slot struct {
	mu sync.Mutex

	state      sync.Mutex
	generation uint64
	wake       chan struct{}
	pending    *request
	draining   bool
}

// request is a composition change issued from the document loop, replayed
// once the loop is released.
type request struct {
	ids        []entity.PluginId
	teardown   bool
	generation uint64
	overtaken  <-chan struct{}
}

func newSlot() *slot {
	return &slot{wake: make(chan struct{})}
}

func (s *slot) bump() (uint64, <-chan struct{}) {
	s.state.Lock()
	defer s.state.Unlock()

	return s.bumpLocked()
}

func (s *slot) bumpLocked() (uint64, <-chan struct{}) {
	s.generation++
	close(s.wake)
	s.wake = make(chan struct{})

	return s.generation, s.wake
}

func (s *slot) current(generation uint64) bool {
	s.state.Lock()
	defer s.state.Unlock()

	return s.generation == generation
}

// postpone records r as the latest deferred request and reports whether the
// caller must start a drainer.
func (s *slot) postpone(r request) bool {
	s.state.Lock()
	defer s.state.Unlock()

	r.generation, r.overtaken = s.bumpLocked()
	s.pending = &r

	if s.draining {
		return false
	}
	s.draining = true
	return true
}

func (s *slot) next() *request {
	s.state.Lock()
	defer s.state.Unlock()

	r := s.pending
	s.pending = nil
	if r == nil {
		s.draining = false
	}
	return r
}

type PreviewController struct {
	resolver     PluginResolver
	compositions CompositionRepository
	metrics      CompositionMetrics
	settleDelay  time.Duration
	logger       zerolog.Logger

	mu    sync.Mutex
	slots map[entity.ContainerId]*slot
}

func NewPreviewController(config *config.Config, resolver PluginResolver, compositions CompositionRepository, metrics CompositionMetrics, logger *zerolog.Logger) *PreviewController {
	return &PreviewController{
		resolver:     resolver,
		compositions: compositions,
		metrics:      metrics,
		settleDelay:  config.Preview.SettleDelay,
		logger:       logger.With().Str("controller", "preview").Logger(),
		slots:        make(map[entity.ContainerId]*slot),
	}
}

func (c *PreviewController) slot(container entity.ContainerId) *slot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.slots[container]
	if !ok {
		s = newSlot()
		c.slots[container] = s
	}
	return s
}

// SetComposition replaces the active plugins of container with ids. The
// previous composition is torn down completely before anything is applied.
// Failures never abort the request, they are logged and reported.
//
// Called from the document loop, for example by a listener, the request is
// deferred until the loop is released and the returned report only has
// Deferred set.
func (c *PreviewController) SetComposition(ctx context.Context, container *dom.Container, ids []entity.PluginId) *entity.CompositionReport {
	containerId := entity.ContainerId(container.Id())
	s := c.slot(containerId)

	if container.Document().OnLoop() {
		report := entity.NewCompositionReport(containerId, append([]entity.PluginId(nil), ids...))
		report.Deferred = true
		c.postpone(ctx, container, s, request{ids: report.Requested})
		return report
	}

	generation, overtaken := s.bump()
	return c.compose(ctx, container, s, ids, generation, overtaken)
}

func (c *PreviewController) compose(ctx context.Context, container *dom.Container, s *slot, ids []entity.PluginId, generation uint64, overtaken <-chan struct{}) *entity.CompositionReport {
	start := time.Now()
	containerId := entity.ContainerId(container.Id())
	logger := c.logger.With().Str("container", string(containerId)).Logger()

	report := entity.NewCompositionReport(containerId, append([]entity.PluginId(nil), ids...))

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current(generation) {
		report.Superseded = true
		logger.Debug().Msg("composition superseded before teardown")
		c.metrics.ObserveComposition(report, time.Since(start))
		return report
	}

	container.Document().Exclusive(func() {
		report.Removed, report.CleanupFailures = c.teardown(ctx, containerId, &logger)
	})
	c.metrics.SetActive(containerId, c.compositions.Count(ctx, containerId))

	if !c.settle(ctx, s, generation, overtaken) {
		report.Superseded = true
		logger.Debug().Msg("composition superseded while settling")
		c.metrics.ObserveComposition(report, time.Since(start))
		return report
	}

	entries := c.resolve(ids, report, &logger)

	container.Document().Exclusive(func() {
		c.apply(ctx, container, entries, report, &logger)
	})

	active := c.compositions.Count(ctx, containerId)
	c.metrics.SetActive(containerId, active)
	c.metrics.ObserveComposition(report, time.Since(start))

	logger.Info().
		Int("requested", len(ids)).
		Int("applied", len(report.Applied)).
		Int("removed", report.Removed).
		Int("active", active).
		Msg("composition updated")

	return report
}

// Teardown removes every active instance from container and cancels any
// request still waiting to settle. Called from the document loop it is
// deferred like SetComposition and returns no failures.
func (c *PreviewController) Teardown(ctx context.Context, container *dom.Container) []entity.PluginFailure {
	s := c.slot(entity.ContainerId(container.Id()))

	if container.Document().OnLoop() {
		c.postpone(ctx, container, s, request{teardown: true})
		return nil
	}

	generation, _ := s.bump()
	return c.clear(ctx, container, s, generation, true)
}

// clear tears container down. Unless force is set it does nothing once
// generation has been overtaken.
func (c *PreviewController) clear(ctx context.Context, container *dom.Container, s *slot, generation uint64, force bool) []entity.PluginFailure {
	containerId := entity.ContainerId(container.Id())
	logger := c.logger.With().Str("container", string(containerId)).Logger()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !force && !s.current(generation) {
		logger.Debug().Msg("teardown superseded")
		return nil
	}

	var removed int
	var failures []entity.PluginFailure
	container.Document().Exclusive(func() {
		removed, failures = c.teardown(ctx, containerId, &logger)
	})
	c.metrics.SetActive(containerId, 0)

	logger.Info().Int("removed", removed).Int("failures", len(failures)).Msg("container torn down")

	return failures
}

// postpone queues r behind the current loop pass. Only the newest deferred
// request per container survives, and it loses to any request made after it.
func (c *PreviewController) postpone(ctx context.Context, container *dom.Container, s *slot, r request) {
	c.logger.Debug().
		Str("container", container.Id()).
		Bool("teardown", r.teardown).
		Msg("composition change requested from the document loop, deferred")

	if !s.postpone(r) {
		return
	}

	go func() {
		for r := s.next(); r != nil; r = s.next() {
			if r.teardown {
				c.clear(ctx, container, s, r.generation, false)
				continue
			}
			c.compose(ctx, container, s, r.ids, r.generation, r.overtaken)
		}
	}()
}

func (c *PreviewController) ActiveInstances(ctx context.Context, container entity.ContainerId) []*entity.Instance {
	instances, err := c.compositions.ListByContainer(ctx, container)
	if err != nil {
		c.logger.Error().Err(err).Str("container", string(container)).Msg("failed to list instances")
		return []*entity.Instance{}
	}
	return instances
}

// teardown must run on the document loop. Instances are cleaned up newest
// first and always dropped from the repository.
func (c *PreviewController) teardown(ctx context.Context, container entity.ContainerId, logger *zerolog.Logger) (int, []entity.PluginFailure) {
	instances, err := c.compositions.ListByContainer(ctx, container)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list active instances")
		return 0, nil
	}

	failures := make([]entity.PluginFailure, 0)
	for i := len(instances) - 1; i >= 0; i-- {
		instance := instances[i]

		if err := c.cleanup(instance); err != nil {
			logger.Warn().Err(err).
				Str("plugin", string(instance.Owner())).
				Str("instance", instance.Id().String()).
				Msg("cleanup failed")
			failures = append(failures, entity.PluginFailure{
				Plugin:   instance.Owner(),
				Instance: instance.Id(),
				Err:      err,
			})
		}

		c.compositions.Delete(ctx, instance.Id())
	}

	return len(instances), failures
}

func (c *PreviewController) cleanup(instance *entity.Instance) error {
	entry, ok := c.resolver.Get(instance.Owner())
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOwner, instance.Owner())
	}
	return entry.Plugin.Cleanup(instance.Id())
}

func (c *PreviewController) settle(ctx context.Context, s *slot, generation uint64, overtaken <-chan struct{}) bool {
	if c.settleDelay > 0 {
		timer := time.NewTimer(c.settleDelay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-overtaken:
		case <-ctx.Done():
		}
	}

	return ctx.Err() == nil && s.current(generation)
}

func (c *PreviewController) resolve(ids []entity.PluginId, report *entity.CompositionReport, logger *zerolog.Logger) []*plugin.Entry {
	seen := make(map[entity.PluginId]struct{}, len(ids))
	entries := make([]*plugin.Entry, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			logger.Warn().Str("plugin", string(id)).Msg("duplicate plugin id ignored")
			report.Duplicates = append(report.Duplicates, id)
			continue
		}
		seen[id] = struct{}{}

		entry, ok := c.resolver.Get(id)
		if !ok {
			logger.Warn().Str("plugin", string(id)).Msg("unknown plugin id skipped")
			report.Unresolved = append(report.Unresolved, id)
			continue
		}
		entries = append(entries, entry)
	}

	return entries
}

// apply must run on the document loop.
func (c *PreviewController) apply(ctx context.Context, container *dom.Container, entries []*plugin.Entry, report *entity.CompositionReport, logger *zerolog.Logger) {
	containerId := entity.ContainerId(container.Id())

	for _, entry := range entries {
		targets, err := container.Query(entry.TargetSelector)
		if err != nil {
			report.ApplyFailures = append(report.ApplyFailures, entity.PluginFailure{Plugin: entry.Id, Err: err})
			logger.Warn().Err(err).Str("plugin", string(entry.Id)).Msg("target lookup failed")
			continue
		}
		if len(targets) == 0 {
			report.Unmatched = append(report.Unmatched, entry.Id)
			logger.Warn().Str("plugin", string(entry.Id)).Str("selector", entry.TargetSelector).Msg("no attachment point matched")
			continue
		}

		for _, target := range targets {
			id, err := entry.Plugin.Apply(plugin.Target{Document: container.Document(), Element: target})
			if err != nil {
				report.ApplyFailures = append(report.ApplyFailures, entity.PluginFailure{Plugin: entry.Id, Err: err})
				logger.Warn().Err(err).Str("plugin", string(entry.Id)).Msg("apply failed")
				continue
			}

			instance := entity.NewInstance(id, entry.Id, containerId, target)
			c.compositions.Save(ctx, instance)
			report.Applied = append(report.Applied, instance)

			logger.Debug().Str("plugin", string(entry.Id)).Str("instance", id.String()).Msg("plugin applied")
		}
	}
}
