package pluginapi

// PluginConfig holds the options of one configured plugin
type PluginConfig map[string]interface{}

// PluginDefinition defines a plugin from YAML. Type names the builtin effect
// implementing it, the remaining keys are its options.
type PluginDefinition struct {
	Type   string       `mapstructure:"type"`
	Config PluginConfig `mapstructure:",remain"`
}

// Reserved keys consumed by the manager before options reach the effect.
const (
	KeyDisplayName = "display_name"
	KeySelector    = "selector"
)
