package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nudgeworks/nudge/internal"
	"github.com/nudgeworks/nudge/internal/config"
	"github.com/nudgeworks/nudge/internal/format"
	"github.com/nudgeworks/nudge/internal/log"
	"github.com/nudgeworks/nudge/internal/stringutil"
	"github.com/nudgeworks/nudge/internal/ui"
	"github.com/nudgeworks/nudge/nudge/gate"
	"github.com/nudgeworks/nudge/nudge/policy"
	"github.com/nudgeworks/nudge/nudge/presenter"
)

var persistentOpts = config.CliOnlyOptions{}

var rootCmd = &cobra.Command{
	Use:   internal.ApplicationName,
	Short: "Decide whether to prompt for an app update",
	Long: stringutil.Tprintf(`Looks up the store listing of an app, compares it with the installed version and decides,
based on the configured rules and the remembered alert history, whether an update alert is due.

    {{.appName}} --bundle-id com.example.App --installed-version 1.2.0
    {{.appName}} --bundle-id com.example.App --installed-version 1.2.0 --presenter defer -o json
    {{.appName}} resolve skip --bundle-id com.example.App --store-version 1.3.0
`, map[string]interface{}{
		"appName": internal.ApplicationName,
	}),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return requireApp(true)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if appConfig.Presenter == config.PromptPresenter && (appConfig.Quiet || internal.IsPipedInput()) {
			log.Warn("unable to prompt without a terminal (or in quiet mode), alerts will be logged instead")
			appConfig.Presenter = config.LogPresenter
		}
		interactive := appConfig.Presenter == config.PromptPresenter
		reporter, closer, err := reportWriter()
		defer func() {
			if err := closer(); err != nil {
				log.Warnf("unable to write to report destination: %+v", err)
			}
		}()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		return eventLoop(
			checkExec(ctx, reporter),
			setupSignals(),
			eventSubscription,
			cancel,
			ui.Select(isVerbose(), appConfig.Quiet, interactive, os.Stdout)...,
		)
	},
}

type flagBinding struct {
	flag string
	key  string
}

// persistentBindings are shared by every command since they identify the app being checked
var persistentBindings = []flagBinding{
	{"quiet", "quiet"},
	{"bundle-id", "app.bundle-id"},
	{"name", "app.name"},
	{"installed-version", "app.installed-version"},
	{"os-version", "app.os-version"},
	{"app-id", "app.app-id"},
	{"country", "lookup.country"},
	{"state-dir", "state.dir"},
}

var rootBindings = []flagBinding{
	{"output", "output"},
	{"file", "file"},
	{"presenter", "presenter"},
	{"release-age-days", "release-age-days"},
	{"preset", "rules.preset"},
}

func init() {
	setPersistentFlags(rootCmd.PersistentFlags())
	setRootFlags(rootCmd.Flags())
}

func setPersistentFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&persistentOpts.ConfigPath, "config", "c", "", "application config file")
	flags.CountVarP(&persistentOpts.Verbosity, "verbose", "v", "increase verbosity (-v = info, -vv = debug)")
	flags.BoolP("quiet", "q", false, "suppress all logging output")

	flags.String("bundle-id", "", "the store bundle identifier of the app to check")
	flags.String("name", "", "the app name shown in alerts")
	flags.String("installed-version", "", "the version of the app that is installed")
	flags.String("os-version", "", "the running OS version (the OS compatibility check is skipped when empty)")
	flags.String("app-id", "", "the numeric store id of the app (looked up when empty)")
	flags.String("country", "us", "the storefront country to look the app up in")
	flags.String("state-dir", "", "where to remember alert history (defaults to the user data dir)")
}

func setRootFlags(flags *pflag.FlagSet) {
	flags.StringArrayP(
		"output", "o", []string{"text"},
		fmt.Sprintf("report output format (<format>=<file> to write a report to a file), options=%v", format.AvailableFormats),
	)
	flags.StringP("file", "", "", "file to write the default report output to (default is STDOUT)")
	flags.String("presenter", config.PromptPresenter,
		fmt.Sprintf("how to show interactive alerts, options=%v", config.PresenterOptions))
	flags.Int("release-age-days", 1, "days a release must be public before alerting")
	flags.String("preset", "", fmt.Sprintf("rule preset applied to every update severity, options=%v", policy.PresetNames()))
}

func bindPersistentConfigOptions(flags *pflag.FlagSet) error {
	return bindFlags(flags, persistentBindings)
}

func bindRootConfigOptions(flags *pflag.FlagSet) error {
	return bindFlags(flags, rootBindings)
}

func bindFlags(flags *pflag.FlagSet, bindings []flagBinding) error {
	for _, b := range bindings {
		if err := viper.BindPFlag(b.key, flags.Lookup(b.flag)); err != nil {
			return fmt.Errorf("unable to bind flag '%s': %w", b.flag, err)
		}
	}
	return nil
}

func isVerbose() bool {
	// piped input disables the ETUI as well
	return appConfig.CliOptions.Verbosity > 0 || internal.IsPipedInput()
}

func requireApp(needsInstalledVersion bool) error {
	var missing []string
	if appConfig.App.BundleID == "" {
		missing = append(missing, "--bundle-id")
	}
	if needsInstalledVersion && appConfig.App.InstalledVersion == "" {
		missing = append(missing, "--installed-version")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required options: %s", strings.Join(missing, ", "))
	}
	return nil
}

func reportWriter() (format.ReportWriter, func() error, error) {
	nop := func() error { return nil }
	w, err := format.MakeReportWriter(afero.NewOsFs(), appConfig.Output, appConfig.File)
	if err != nil {
		return nil, nop, err
	}
	return w, w.Close, nil
}

func checkExec(ctx context.Context, reporter format.ReportWriter) <-chan error {
	errs := make(chan error)
	go func() {
		defer close(errs)

		m, err := newManager(presenterFor(appConfig.Presenter))
		if err != nil {
			errs <- err
			return
		}

		res, err := m.Check(ctx)
		if err != nil {
			errs <- fmt.Errorf("failed to check for updates: %w", err)
			return
		}
		if res.Outcome.Reason == gate.ReasonDataMissing || res.Outcome.Reason == gate.ReasonOSUnsupported {
			log.Warnf("no alert: %+v", res.Outcome.Err())
		}

		if err := reporter.Write(format.Report{
			AppIdentifier: appConfig.App.BundleID,
			Result:        res,
			Now:           time.Now(),
		}); err != nil {
			errs <- err
		}
	}()
	return errs
}

func presenterFor(name string) presenter.Presenter {
	switch name {
	case config.PromptPresenter:
		return presenter.NewPrompt()
	case config.LogPresenter:
		return presenter.Logger{}
	case config.UpdatePresenter:
		return presenter.Static{Action: gate.UpdateAction}
	case config.NextTimePresenter:
		return presenter.Static{Action: gate.NextTimeAction}
	case config.SkipPresenter:
		return presenter.Static{Action: gate.SkipAction}
	}
	// the caller presents the alert and reports back with "resolve"
	return nil
}
