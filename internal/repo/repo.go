package repo

import (
	"github.com/google/wire"
	"github.com/tjjh89017/fxsandbox/internal/ctrl"
)

var DefaultSet = wire.NewSet(
	NewCompositions,
	wire.Bind(new(ctrl.CompositionRepository), new(*Compositions)),
)
