package plugin

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"github.com/tjjh89017/fxsandbox/internal/entity"
	pluginapi "github.com/tjjh89017/fxsandbox/pluginapi"
)

var DefaultSet = wire.NewSet(
	NewManager,
)

// Manager builds a Registry from plugin definitions using the builtin
// catalog.
type Manager struct {
	catalog *Catalog
	logger  zerolog.Logger
}

func NewManager(catalog *Catalog, logger *zerolog.Logger) *Manager {
	return &Manager{
		catalog: catalog,
		logger:  logger.With().Str("component", "plugin_manager").Logger(),
	}
}

// LoadRegistry creates one entry per definition. Without definitions every
// builtin is registered under its own name with default options.
func (m *Manager) LoadRegistry(ctx context.Context, definitions map[string]pluginapi.PluginDefinition, opts ...RegistryOption) (*Registry, error) {
	if len(definitions) == 0 {
		definitions = make(map[string]pluginapi.PluginDefinition)
		for _, name := range m.catalog.Names() {
			definitions[name] = pluginapi.PluginDefinition{Type: name}
		}
	}

	ids := make([]string, 0, len(definitions))
	for id := range definitions {
		ids = append(ids, id)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		ti, tj := m.catalog.index(definitions[ids[i]].Type), m.catalog.index(definitions[ids[j]].Type)
		if ti != tj {
			return ti < tj
		}
		return ids[i] < ids[j]
	})

	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		entry, err := m.createPlugin(ctx, entity.PluginId(id), definitions[id])
		if err != nil {
			return nil, fmt.Errorf("failed to create plugin %s: %w", id, err)
		}
		entries = append(entries, entry)

		m.logger.Debug().
			Str("plugin", id).
			Str("type", definitions[id].Type).
			Str("category", string(entry.Category)).
			Str("selector", entry.TargetSelector).
			Msg("plugin registered")
	}

	return NewRegistry(entries, opts...)
}

func (m *Manager) createPlugin(ctx context.Context, id entity.PluginId, def pluginapi.PluginDefinition) (Entry, error) {
	factory, ok := m.catalog.Lookup(def.Type)
	if !ok {
		return Entry{}, fmt.Errorf("unsupported plugin type: %s", def.Type)
	}

	options := make(pluginapi.PluginConfig, len(def.Config))
	for k, v := range def.Config {
		options[k] = v
	}

	displayName, err := popString(options, pluginapi.KeyDisplayName)
	if err != nil {
		return Entry{}, err
	}
	selector, err := popString(options, pluginapi.KeySelector)
	if err != nil {
		return Entry{}, err
	}

	entry, err := factory(id, options)
	if err != nil {
		return Entry{}, err
	}

	entry.Id = id
	if displayName != "" {
		entry.DisplayName = displayName
	}
	if selector != "" {
		entry.TargetSelector = selector
	}

	return entry, nil
}

func popString(config pluginapi.PluginConfig, key string) (string, error) {
	value, ok := config[key]
	if !ok {
		return "", nil
	}
	delete(config, key)

	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("plugin '%s' must be a string", key)
	}
	return str, nil
}
