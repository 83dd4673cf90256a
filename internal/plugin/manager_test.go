package plugin

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/tjjh89017/fxsandbox/internal/entity"
	pluginapi "github.com/tjjh89017/fxsandbox/pluginapi"
)

type fakeOptions struct {
	Count int `mapstructure:"count"`
}

func fakeFactory(category entity.Category, selector string) BuiltinFactory {
	return func(id entity.PluginId, config pluginapi.PluginConfig) (Entry, error) {
		opts := fakeOptions{Count: 1}
		if err := DecodeOptions(config, &opts); err != nil {
			return Entry{}, err
		}

		return Entry{
			Descriptor: entity.Descriptor{
				Id:             id,
				DisplayName:    "Fake",
				Category:       category,
				TargetSelector: selector,
			},
			Plugin: New(
				func(Target, entity.InstanceId) (int, error) { return opts.Count, nil },
				func(entity.InstanceId, Target, int) error { return nil },
			),
		}, nil
	}
}

func testCatalog() *Catalog {
	c := NewCatalog()
	c.Register("hero-fx", fakeFactory(entity.CategoryBackground, `[data-attach="hero"]`))
	c.Register("cta-fx", fakeFactory(entity.CategoryHover, `[data-attach="cta"]`))
	return c
}

func newTestManager() *Manager {
	logger := zerolog.Nop()
	return NewManager(testCatalog(), &logger)
}

func TestLoadRegistry_EmptyDefinitionsUsesBuiltins(t *testing.T) {
	m := newTestManager()

	r, err := m.LoadRegistry(context.Background(), nil)
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}

	ids := r.AllIds()
	if len(ids) != 2 || ids[0] != "hero-fx" || ids[1] != "cta-fx" {
		t.Errorf("AllIds() = %v, want [hero-fx cta-fx]", ids)
	}
}

func TestLoadRegistry_Definitions(t *testing.T) {
	m := newTestManager()

	definitions := map[string]pluginapi.PluginDefinition{
		"dense": {
			Type: "hero-fx",
			Config: pluginapi.PluginConfig{
				"count":        "80",
				"display_name": "Dense",
			},
		},
		"button": {Type: "cta-fx"},
		"alpha":  {Type: "hero-fx"},
	}

	r, err := m.LoadRegistry(context.Background(), definitions)
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}

	ids := r.AllIds()
	want := []entity.PluginId{"alpha", "dense", "button"}
	if len(ids) != len(want) {
		t.Fatalf("AllIds() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("AllIds()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}

	dense, _ := r.Get("dense")
	if dense.DisplayName != "Dense" {
		t.Errorf("DisplayName = %q, want %q", dense.DisplayName, "Dense")
	}

	// display_name must not leak into the option decoder
	if _, ok := definitions["dense"].Config["display_name"]; !ok {
		t.Error("LoadRegistry() mutated the caller's definitions")
	}
}

func TestLoadRegistry_SelectorOverride(t *testing.T) {
	m := newTestManager()

	definitions := map[string]pluginapi.PluginDefinition{
		"cta-hero": {
			Type:   "cta-fx",
			Config: pluginapi.PluginConfig{"selector": `[data-attach="hero"]`},
		},
	}

	r, err := m.LoadRegistry(context.Background(), definitions, WithAttachmentPoints(`[data-attach="hero"]`))
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}

	e, _ := r.Get("cta-hero")
	if e.TargetSelector != `[data-attach="hero"]` {
		t.Errorf("TargetSelector = %q", e.TargetSelector)
	}
}

func TestLoadRegistry_Errors(t *testing.T) {
	tests := []struct {
		name        string
		definition  pluginapi.PluginDefinition
		wantErrText string
		wantErr     error
	}{
		{
			name:        "unsupported type",
			definition:  pluginapi.PluginDefinition{Type: "unsupported_type"},
			wantErrText: "unsupported plugin type: unsupported_type",
		},
		{
			name: "unknown option",
			definition: pluginapi.PluginDefinition{
				Type:   "hero-fx",
				Config: pluginapi.PluginConfig{"colour": "red"},
			},
			wantErr: ErrDecodeOptions,
		},
		{
			name: "display name not a string",
			definition: pluginapi.PluginDefinition{
				Type:   "hero-fx",
				Config: pluginapi.PluginConfig{"display_name": 12},
			},
			wantErrText: "plugin 'display_name' must be a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager()

			_, err := m.LoadRegistry(context.Background(), map[string]pluginapi.PluginDefinition{
				"test_plugin": tt.definition,
			})
			if err == nil {
				t.Fatal("LoadRegistry() should return error")
			}
			if !strings.HasPrefix(err.Error(), "failed to create plugin test_plugin") {
				t.Errorf("LoadRegistry() error = %q, want plugin name prefix", err.Error())
			}
			if tt.wantErrText != "" && !strings.Contains(err.Error(), tt.wantErrText) {
				t.Errorf("LoadRegistry() error = %q, want error containing %q", err.Error(), tt.wantErrText)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadRegistry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRegistry_AttachmentViolation(t *testing.T) {
	m := newTestManager()

	_, err := m.LoadRegistry(context.Background(), nil, WithAttachmentPoints(`[data-attach="hero"]`))
	if !errors.Is(err, ErrUnknownAttachment) {
		t.Errorf("LoadRegistry() error = %v, want ErrUnknownAttachment", err)
	}
}
