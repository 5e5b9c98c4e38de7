package format

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"

	"github.com/nudgeworks/nudge/internal/bus"
	"github.com/nudgeworks/nudge/internal/file"
	"github.com/nudgeworks/nudge/internal/log"
)

type ReportWriter interface {
	Write(report Report) error
	io.Closer
}

var _ ReportWriter = (*reportMultiWriter)(nil)

// MakeReportWriter creates a ReportWriter for output or returns an error. this will either return a valid writer
// or an error but neither both and if there is no error, ReportWriter.Close() should be called
func MakeReportWriter(fs afero.Fs, outputs []string, defaultFile string) (ReportWriter, error) {
	outputOptions, err := parseOutputFlags(outputs, defaultFile)
	if err != nil {
		return nil, err
	}

	return newMultiWriter(fs, outputOptions...)
}

// parseOutputFlags utility to parse command-line option strings and retain the existing behavior of default format and file
func parseOutputFlags(outputs []string, defaultFile string) (out []reportWriterDescription, errs error) {
	// always should have one option -- we generally get the default of "text", but just make sure
	if len(outputs) == 0 {
		outputs = append(outputs, TextFormat.String())
	}

	for _, name := range outputs {
		name = strings.TrimSpace(name)

		// split to at most two parts for <format>=<file>
		parts := strings.SplitN(name, "=", 2)

		// the format name is the first part
		name = parts[0]

		// default to the --file or empty string if not specified
		path := defaultFile

		// If a file is specified as part of the output formatName, use that
		if len(parts) > 1 {
			path = parts[1]
		}

		f := Parse(name)
		if f == UnknownFormat {
			errs = multierror.Append(errs, fmt.Errorf(`unsupported output format "%s", supported formats are: %+v`, name, AvailableFormats))
			continue
		}

		out = append(out, newWriterDescription(f, path))
	}
	return out, errs
}

// reportWriterDescription Format and path strings used to create a ReportWriter
type reportWriterDescription struct {
	Format Format
	Path   string
}

func newWriterDescription(f Format, p string) reportWriterDescription {
	expandedPath, err := homedir.Expand(p)
	if err != nil {
		log.Warnf("could not expand given writer output path=%q: %+v", p, err)
		// ignore errors
		expandedPath = p
	}
	return reportWriterDescription{
		Format: f,
		Path:   expandedPath,
	}
}

// reportMultiWriter holds a list of child writers to apply all Write and Close operations to
type reportMultiWriter struct {
	writers []ReportWriter
}

// newMultiWriter create all report writers from input options; reports without a file go to the event bus
func newMultiWriter(fs afero.Fs, options ...reportWriterDescription) (_ *reportMultiWriter, err error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("no output options provided")
	}

	out := &reportMultiWriter{}
	defer func() {
		if err != nil {
			_ = out.Close()
		}
	}()

	for _, option := range options {
		if option.Path == "" {
			out.writers = append(out.writers, &reportPublisher{format: option.Format})
			continue
		}

		// create any missing subdirectories
		if dir := filepath.Dir(option.Path); dir != "" {
			if err := fs.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("output path does not contain a valid directory: %s: %w", option.Path, err)
			}
		}
		w, closer, err := file.GetWriter(fs, nil, option.Path)
		if err != nil {
			return nil, err
		}
		out.writers = append(out.writers, &reportStreamWriter{
			format: option.Format,
			out:    w,
			closer: closer,
		})
	}

	return out, nil
}

// Write writes the report to all writers. When every report goes to a file nothing is published for the UI to
// show, so the UI is told to exit instead.
func (m *reportMultiWriter) Write(r Report) (errs error) {
	published := false
	for _, w := range m.writers {
		if _, ok := w.(*reportPublisher); ok {
			published = true
		}
		if err := w.Write(r); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("unable to write report: %w", err))
		}
	}
	// on error the worker reports it and the event loop unsubscribes on its own
	if !published && errs == nil {
		bus.Exit()
	}
	return errs
}

// Close closes all writers
func (m *reportMultiWriter) Close() (errs error) {
	for _, w := range m.writers {
		if err := w.Close(); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("unable to close report writer: %w", err))
		}
	}
	return errs
}

// reportStreamWriter implements ReportWriter for a given format and io.Writer, also providing a close function for cleanup
type reportStreamWriter struct {
	format Format
	out    io.Writer
	closer func() error
}

// Write the provided report to the data stream
func (w *reportStreamWriter) Write(r Report) error {
	if err := GetPresenter(w.format, r).Present(w.out); err != nil {
		return fmt.Errorf("unable to encode report: %w", err)
	}
	return nil
}

// Close any resources, such as open files
func (w *reportStreamWriter) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer()
}

// reportPublisher implements ReportWriter that publishes reports to the event bus
type reportPublisher struct {
	format Format
}

// Write the provided report to the event bus, where the UI shows it after teardown
func (w *reportPublisher) Write(r Report) error {
	buf := &bytes.Buffer{}
	if err := GetPresenter(w.format, r).Present(buf); err != nil {
		return fmt.Errorf("unable to encode report: %w", err)
	}

	bus.Report(r.AppIdentifier, buf.String())
	return nil
}

func (w *reportPublisher) Close() error {
	return nil
}
