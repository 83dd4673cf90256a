package plugin

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/tjjh89017/fxsandbox/internal/entity"
	pluginapi "github.com/tjjh89017/fxsandbox/pluginapi"
)

var (
	ErrDecodeOptions = errors.New("failed to decode plugin options")
)

// BuiltinFactory creates a registry entry for id from configuration
type BuiltinFactory func(id entity.PluginId, config pluginapi.PluginConfig) (Entry, error)

// Catalog holds the builtin effect factories in registration order
type Catalog struct {
	names     []string
	factories map[string]BuiltinFactory
}

func NewCatalog() *Catalog {
	return &Catalog{
		factories: make(map[string]BuiltinFactory),
	}
}

// Register adds a builtin factory. Registering a name twice is a programming
// error and panics.
func (c *Catalog) Register(name string, factory BuiltinFactory) {
	if _, exists := c.factories[name]; exists {
		panic(fmt.Sprintf("builtin plugin %s already registered", name))
	}

	c.factories[name] = factory
	c.names = append(c.names, name)
}

func (c *Catalog) Lookup(name string) (BuiltinFactory, bool) {
	factory, ok := c.factories[name]
	return factory, ok
}

// Names returns the registered builtin names in registration order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

func (c *Catalog) index(name string) int {
	for i, n := range c.names {
		if n == name {
			return i
		}
	}
	return len(c.names)
}

// DecodeOptions decodes effect options into out, rejecting unknown keys.
// Fields absent from config keep their value, configured lists and maps
// replace it.
func DecodeOptions(config pluginapi.PluginConfig, out interface{}) error {
	if len(config) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		ZeroFields:       true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecodeOptions, err)
	}

	if err := decoder.Decode(map[string]interface{}(config)); err != nil {
		return fmt.Errorf("%w: %v", ErrDecodeOptions, err)
	}
	return nil
}
