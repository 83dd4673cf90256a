package entity

type PluginFailure struct {
	Plugin   PluginId
	Instance InstanceId
	Err      error
}

// CompositionReport describes what a composition request actually did.
type CompositionReport struct {
	Container       ContainerId
	Requested       []PluginId
	Applied         []*Instance
	Removed         int
	Unresolved      []PluginId
	Duplicates      []PluginId
	Unmatched       []PluginId
	ApplyFailures   []PluginFailure
	CleanupFailures []PluginFailure
	Superseded      bool

	// Deferred is set when the request was issued from the document loop
	// and will run once the loop is released.
	Deferred bool
}

func NewCompositionReport(container ContainerId, requested []PluginId) *CompositionReport {
	return &CompositionReport{
		Container: container,
		Requested: requested,
		Applied:   make([]*Instance, 0),
	}
}

// Clean reports whether every requested plugin resolved and applied without
// error.
func (r *CompositionReport) Clean() bool {
	return !r.Superseded &&
		!r.Deferred &&
		len(r.Unresolved) == 0 &&
		len(r.ApplyFailures) == 0 &&
		len(r.CleanupFailures) == 0
}
