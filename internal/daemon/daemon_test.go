package daemon_test

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tjjh89017/fxsandbox/internal/config"
	"github.com/tjjh89017/fxsandbox/internal/ctrl"
	"github.com/tjjh89017/fxsandbox/internal/daemon"
	"github.com/tjjh89017/fxsandbox/internal/dom"
	"github.com/tjjh89017/fxsandbox/internal/driver"
	"github.com/tjjh89017/fxsandbox/internal/effects"
	"github.com/tjjh89017/fxsandbox/internal/entity"
	"github.com/tjjh89017/fxsandbox/internal/metrics"
	"github.com/tjjh89017/fxsandbox/internal/plugin"
	"github.com/tjjh89017/fxsandbox/internal/repo"
	"github.com/tjjh89017/fxsandbox/internal/scaffold"
)

func testConfig(compositions ...[]string) *config.Config {
	cfg := &config.Config{}
	cfg.Preview.Container = "sandbox"
	cfg.Preview.FrameRate = 120
	cfg.Preview.CycleInterval = 10 * time.Millisecond
	cfg.Preview.Compositions = compositions
	return cfg
}

func newDaemon(t *testing.T, cfg *config.Config, registry *plugin.Registry) (*daemon.Daemon, *metrics.Collector) {
	t.Helper()

	d, collector, _ := newDaemonWithDocument(t, cfg, registry)
	return d, collector
}

func newDaemonWithDocument(t *testing.T, cfg *config.Config, registry *plugin.Registry) (*daemon.Daemon, *metrics.Collector, *dom.Document) {
	t.Helper()

	logger := zerolog.Nop()
	if registry == nil {
		var err error
		registry, err = plugin.NewManager(effects.Builtins(), &logger).LoadRegistry(context.TODO(), nil)
		require.NoError(t, err)
	}

	collector := metrics.NewCollector(&logger)
	preview := ctrl.NewPreviewController(cfg, registry, repo.NewCompositions(), collector, &logger)
	doc := dom.NewDocument()

	return daemon.New(cfg, doc, preview, registry, driver.New(cfg, &logger), collector, &logger), collector, doc
}

func TestRunOneshot_AllBuiltinsLeaveNoTrace(t *testing.T) {
	cfg := testConfig(
		[]string{effects.ParticleDrift, effects.TwinkleStars, effects.GradientLayers},
		[]string{effects.ScrollParallax, effects.TiltHover},
		[]string{effects.MagneticCursor, effects.GlowOutline},
		[]string{effects.TextShimmer, effects.Typewriter},
		[]string{},
	)
	d, _ := newDaemon(t, cfg, nil)

	assert.NoError(t, d.RunOneshot(context.TODO()))
}

func TestRunOneshot_ReportsUnresolved(t *testing.T) {
	d, _ := newDaemon(t, testConfig([]string{"does-not-exist"}), nil)

	err := d.RunOneshot(context.TODO())
	assert.ErrorIs(t, err, daemon.ErrCompositionFailed)
	assert.NotErrorIs(t, err, daemon.ErrLeak)
}

func TestRunOneshot_DetectsLeak(t *testing.T) {
	// cleanup forgets the listener registered by apply
	leaky := plugin.Entry{
		Descriptor: entity.Descriptor{
			Id:             "leaky",
			DisplayName:    "Leaky",
			Category:       entity.CategoryHover,
			TargetSelector: scaffold.CTA,
		},
		Plugin: plugin.New(
			func(target plugin.Target, _ entity.InstanceId) (dom.ListenerId, error) {
				return target.Document.AddEventListener(target.Element, dom.PointerMove, func(*dom.Event) {}), nil
			},
			func(entity.InstanceId, plugin.Target, dom.ListenerId) error { return nil },
		),
	}
	registry, err := plugin.NewRegistry([]plugin.Entry{leaky})
	require.NoError(t, err)

	d, _ := newDaemon(t, testConfig([]string{"leaky"}), registry)

	err = d.RunOneshot(context.TODO())
	assert.True(t, errors.Is(err, daemon.ErrLeak), "RunOneshot() error = %v, want %v", err, daemon.ErrLeak)
}

func TestRender(t *testing.T) {
	d, _ := newDaemon(t, testConfig(), nil)

	var buf bytes.Buffer
	report, err := d.Render(context.TODO(), &buf, []entity.PluginId{effects.ParticleDrift, effects.TextShimmer}, 5)
	require.NoError(t, err)

	assert.True(t, report.Clean())
	assert.Len(t, report.Applied, 2)
	assert.Contains(t, buf.String(), "fx-particles")
	assert.Contains(t, buf.String(), "fx-shimmer")
	assert.Contains(t, buf.String(), `data-fx-shared="particle-drift"`)
}

func TestRun_CyclesUntilCancelled(t *testing.T) {
	cfg := testConfig([]string{effects.ParticleDrift}, []string{effects.GlowOutline})
	d, collector := newDaemon(t, cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- d.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		families, err := collector.Registry().Gather()
		if err != nil {
			return false
		}
		for _, family := range families {
			if family.GetName() != "fxsandbox_composition_applied_instances_total" {
				continue
			}
			return len(family.GetMetric()) == 2
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestRun_ReleasesStrayInstances(t *testing.T) {
	var cleaned atomic.Int32
	stray := plugin.Entry{
		Descriptor: entity.Descriptor{
			Id:             "stray",
			DisplayName:    "Stray",
			Category:       entity.CategoryBackground,
			TargetSelector: scaffold.Hero,
		},
		Plugin: plugin.New(
			func(plugin.Target, entity.InstanceId) (struct{}, error) { return struct{}{}, nil },
			func(entity.InstanceId, plugin.Target, struct{}) error {
				cleaned.Add(1)
				return nil
			},
		),
	}
	registry, err := plugin.NewRegistry([]plugin.Entry{stray})
	require.NoError(t, err)

	d, _, doc := newDaemonWithDocument(t, testConfig(), registry)

	// applied directly, the preview controller never sees it
	doc.Exclusive(func() {
		_, err = stray.Plugin.Apply(plugin.Target{Document: doc, Element: doc.Body()})
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, d.Run(ctx))

	assert.Equal(t, int32(1), cleaned.Load())
	assert.Zero(t, stray.Plugin.Instances())
}
