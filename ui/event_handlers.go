package ui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gookit/color"
	"github.com/wagoodman/go-partybus"
	"github.com/wagoodman/go-progress"
	"github.com/wagoodman/jotframe/pkg/frame"

	"github.com/nudgeworks/nudge/internal/ui/components"
	nudgeEventParsers "github.com/nudgeworks/nudge/nudge/event/parsers"
)

const statusTitleColumn = 26
const completedStatus = "✔"
const failedStatus = "✘"
const tileFormat = color.Bold

var auxInfoFormat = color.HEX("#777777")
var statusTitleTemplate = fmt.Sprintf(" %%s %%-%ds ", statusTitleColumn)

func (r *Handler) CheckStartedHandler(ctx context.Context, fr *frame.Frame, event partybus.Event, wg *sync.WaitGroup) error {
	appIdentifier, prog, err := nudgeEventParsers.ParseCheckStarted(event)
	if err != nil {
		return fmt.Errorf("bad %s event: %w", event.Type, err)
	}

	line, err := fr.Append()
	if err != nil {
		return err
	}

	wg.Add(1)

	spinner := components.NewSpinner(components.SpinnerDotSet)
	stream := progress.Stream(ctx, prog, 100*time.Millisecond)
	title := tileFormat.Sprintf("Checking %s", appIdentifier)

	formatFn := func() {
		spin := color.Magenta.Sprint(spinner.Next())
		auxInfo := auxInfoFormat.Sprintf("[%s]", prog.Stage())
		_, _ = io.WriteString(line, fmt.Sprintf(statusTitleTemplate+"%s", spin, title, auxInfo))
	}

	go func() {
		defer wg.Done()

		formatFn()
		for range stream {
			formatFn()
		}

		status := color.Green.Sprint(completedStatus)
		title = tileFormat.Sprintf("Checked %s", appIdentifier)
		if err := prog.Error(); err != nil && !progress.IsErrCompleted(err) {
			status = color.Red.Sprint(failedStatus)
		}
		auxInfo := auxInfoFormat.Sprintf("[%s]", prog.Stage())
		_, _ = io.WriteString(line, fmt.Sprintf(statusTitleTemplate+"%s", status, title, auxInfo))
	}()
	return nil
}

func (r *Handler) CheckSuppressedHandler(_ context.Context, fr *frame.Frame, event partybus.Event, _ *sync.WaitGroup) error {
	outcome, err := nudgeEventParsers.ParseCheckSuppressed(event)
	if err != nil {
		return fmt.Errorf("bad %s event: %w", event.Type, err)
	}

	line, err := fr.Append()
	if err != nil {
		return err
	}

	title := tileFormat.Sprint("No alert")
	auxInfo := auxInfoFormat.Sprintf("[%s]", outcome.Reason.Description())
	_, _ = io.WriteString(line, fmt.Sprintf(statusTitleTemplate+"%s", color.Gray.Sprint("-"), title, auxInfo))
	return nil
}

func (r *Handler) AlertPresentedHandler(_ context.Context, fr *frame.Frame, event partybus.Event, _ *sync.WaitGroup) error {
	alert, err := nudgeEventParsers.ParseAlertPresented(event)
	if err != nil {
		return fmt.Errorf("bad %s event: %w", event.Type, err)
	}

	line, err := fr.Prepend()
	if err != nil {
		return err
	}

	message := color.Magenta.Sprintf("A %s update is available: %s → %s", alert.Severity, alert.InstalledVersion, alert.StoreVersion)
	_, _ = io.WriteString(line, message)
	return nil
}

func (r *Handler) ActionResolvedHandler(_ context.Context, fr *frame.Frame, event partybus.Event, _ *sync.WaitGroup) error {
	action, err := nudgeEventParsers.ParseActionResolved(event)
	if err != nil {
		return fmt.Errorf("bad %s event: %w", event.Type, err)
	}

	line, err := fr.Append()
	if err != nil {
		return err
	}

	title := tileFormat.Sprint("Recorded response")
	auxInfo := auxInfoFormat.Sprintf("[%s]", action)
	_, _ = io.WriteString(line, fmt.Sprintf(statusTitleTemplate+"%s", color.Green.Sprint(completedStatus), title, auxInfo))
	return nil
}
