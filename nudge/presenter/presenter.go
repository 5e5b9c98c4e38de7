package presenter

import (
	"context"

	"github.com/nudgeworks/nudge/nudge/gate"
)

// Presenter renders an alert and reports the single action the user chose.
type Presenter interface {
	Present(ctx context.Context, alert Alert) (gate.Action, error)
}
