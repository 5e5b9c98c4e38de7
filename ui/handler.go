package ui

import (
	"context"
	"sync"

	"github.com/wagoodman/go-partybus"
	"github.com/wagoodman/jotframe/pkg/frame"

	nudgeEvent "github.com/nudgeworks/nudge/nudge/event"
)

// Handler renders check events as lines of a terminal frame.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (r *Handler) RespondsTo(event partybus.Event) bool {
	switch event.Type {
	case nudgeEvent.CheckStarted,
		nudgeEvent.CheckSuppressed,
		nudgeEvent.AlertPresented,
		nudgeEvent.ActionResolved:
		return true
	default:
		return false
	}
}

func (r *Handler) Handle(ctx context.Context, fr *frame.Frame, event partybus.Event, wg *sync.WaitGroup) error {
	switch event.Type {
	case nudgeEvent.CheckStarted:
		return r.CheckStartedHandler(ctx, fr, event, wg)
	case nudgeEvent.CheckSuppressed:
		return r.CheckSuppressedHandler(ctx, fr, event, wg)
	case nudgeEvent.AlertPresented:
		return r.AlertPresentedHandler(ctx, fr, event, wg)
	case nudgeEvent.ActionResolved:
		return r.ActionResolvedHandler(ctx, fr, event, wg)
	}
	return nil
}
