package format

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/nudgeworks/nudge/nudge"
)

// Report is the outcome of one check, as shown to the user.
type Report struct {
	AppIdentifier string
	Result        *nudge.Result
	// Now anchors relative times (e.g. "released 3 days ago").
	Now time.Time
}

// Presenter writes a report in a single format.
type Presenter interface {
	Present(io.Writer) error
}

// GetPresenter retrieves a Presenter that matches a CLI option
func GetPresenter(f Format, r Report) Presenter {
	switch f {
	case TextFormat:
		return textPresenter{report: r}
	case JSONFormat:
		return jsonPresenter{report: r}
	case YAMLFormat:
		return yamlPresenter{report: r}
	default:
		return nil
	}
}

type document struct {
	AppIdentifier string `json:"appIdentifier" yaml:"appIdentifier"`
	*nudge.Result `yaml:",inline"`
}

type jsonPresenter struct {
	report Report
}

func (p jsonPresenter) Present(output io.Writer) error {
	enc := json.NewEncoder(output)
	// prevent > and < from being escaped in the payload
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	return enc.Encode(document{AppIdentifier: p.report.AppIdentifier, Result: p.report.Result})
}

type yamlPresenter struct {
	report Report
}

func (p yamlPresenter) Present(output io.Writer) error {
	// route through json so the document keys and enum names match the json report
	by, err := json.Marshal(document{AppIdentifier: p.report.AppIdentifier, Result: p.report.Result})
	if err != nil {
		return fmt.Errorf("unable to encode report: %w", err)
	}
	var generic yaml.MapSlice
	if err := yaml.Unmarshal(by, &generic); err != nil {
		return fmt.Errorf("unable to encode report: %w", err)
	}
	out, err := yaml.Marshal(generic)
	if err != nil {
		return fmt.Errorf("unable to encode report: %w", err)
	}
	_, err = output.Write(out)
	return err
}
