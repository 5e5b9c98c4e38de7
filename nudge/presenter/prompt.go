package presenter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/nudgeworks/nudge/nudge/gate"
)

var _ Presenter = (*Prompt)(nil)

// ErrPromptInterrupted is returned when the user aborts the prompt (e.g. ctrl-c).
var ErrPromptInterrupted = errors.New("alert prompt interrupted")

type askFunc func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error

// Prompt renders an alert as an interactive terminal selection.
type Prompt struct {
	in     terminal.FileReader
	out    terminal.FileWriter
	errOut io.Writer
	ask    askFunc
}

func NewPrompt() *Prompt {
	return NewPromptWithStdio(os.Stdin, os.Stdout, os.Stderr)
}

func NewPromptWithStdio(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) *Prompt {
	return &Prompt{
		in:     in,
		out:    out,
		errOut: errOut,
		ask:    survey.AskOne,
	}
}

func (p *Prompt) Present(ctx context.Context, alert Alert) (gate.Action, error) {
	options := alert.Options()
	if len(options) == 0 {
		return gate.UnknownAction, nil
	}
	if err := ctx.Err(); err != nil {
		return gate.UnknownAction, err
	}

	title, err := alert.Title()
	if err != nil {
		return gate.UnknownAction, err
	}
	message, err := alert.Message()
	if err != nil {
		return gate.UnknownAction, err
	}

	strs := alert.Strings.WithDefaults()
	labels := make([]string, 0, len(options))
	defaultIdx := 0
	for idx, action := range options {
		labels = append(labels, strs.Label(action))
		if action == gate.UpdateAction {
			defaultIdx = idx
		}
	}

	// answers are read back by index since labels are free text and need not be unique
	prompt := &survey.Select{
		Message: fmt.Sprintf("%s\n  %s\n", title, message),
		Options: labels,
		Default: defaultIdx,
		Help:    alert.ReleaseNotes,
	}

	var answer int
	err = p.ask(prompt, &answer, survey.WithStdio(p.in, p.out, p.errOut))
	if errors.Is(err, terminal.InterruptErr) {
		return gate.UnknownAction, ErrPromptInterrupted
	}
	if err != nil {
		return gate.UnknownAction, fmt.Errorf("unable to prompt: %w", err)
	}

	if answer < 0 || answer >= len(options) {
		return gate.UnknownAction, fmt.Errorf("unexpected answer index %d", answer)
	}
	return options[answer], nil
}
