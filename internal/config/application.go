package config

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/nudgeworks/nudge/internal"
)

var ErrApplicationConfigNotFound = fmt.Errorf("application config not found")

// presenter hints accepted by the "presenter" option
const (
	PromptPresenter   = "prompt"
	LogPresenter      = "log"
	DeferPresenter    = "defer"
	UpdatePresenter   = "update"
	NextTimePresenter = "next-time"
	SkipPresenter     = "skip"
)

var PresenterOptions = []string{PromptPresenter, LogPresenter, DeferPresenter, UpdatePresenter, NextTimePresenter, SkipPresenter}

type defaultValueLoader interface {
	loadDefaultValues(*viper.Viper)
}

type parser interface {
	parseConfigValues() error
}

type Application struct {
	ConfigPath     string         `yaml:",omitempty" json:"configPath"` // the location where the application config was read from (either from -c or discovered while loading)
	Verbosity      uint           `yaml:"verbosity,omitempty" json:"verbosity" mapstructure:"verbosity"`
	Output         []string       `yaml:"output" json:"output" mapstructure:"output"`                               // -o, the formats (and optional files) to write the check report with
	File           string         `yaml:"file" json:"file" mapstructure:"file"`                                     // --file, the file to write report output to
	Quiet          bool           `yaml:"quiet" json:"quiet" mapstructure:"quiet"`                                  // -q, indicates to not show any status output to stderr
	Presenter      string         `yaml:"presenter" json:"presenter" mapstructure:"presenter"`                      // how interactive alerts are shown (prompt, log, defer, or a fixed answer)
	ReleaseAgeDays int            `yaml:"release-age-days" json:"release-age-days" mapstructure:"release-age-days"` // days a release must be public before alerting
	CliOptions     CliOnlyOptions `yaml:"-" json:"-"`
	App            app            `yaml:"app" json:"app" mapstructure:"app"`
	Lookup         lookupConfig   `yaml:"lookup" json:"lookup" mapstructure:"lookup"`
	Rules          rules          `yaml:"rules" json:"rules" mapstructure:"rules"`
	State          stateConfig    `yaml:"state" json:"state" mapstructure:"state"`
	Alert          alert          `yaml:"alert" json:"alert" mapstructure:"alert"`
	Log            logging        `yaml:"log" json:"log" mapstructure:"log"`
}

func newApplicationConfig(v *viper.Viper, cliOpts CliOnlyOptions) *Application {
	config := &Application{
		CliOptions: cliOpts,
	}
	config.loadDefaultValues(v)

	return config
}

func LoadApplicationConfig(v *viper.Viper, cliOpts CliOnlyOptions) (*Application, error) {
	// the user may not have a config, and this is OK, we can use the default config + default cobra cli values instead
	config := newApplicationConfig(v, cliOpts)

	if err := readConfig(v, cliOpts.ConfigPath); err != nil && !errors.Is(err, ErrApplicationConfigNotFound) {
		return nil, err
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}
	config.ConfigPath = v.ConfigFileUsed()

	if err := config.parseConfigValues(); err != nil {
		return nil, fmt.Errorf("invalid application config: %w", err)
	}

	return config, nil
}

// init loads the default configuration values into the viper instance (before the config values are read and parsed).
func (cfg Application) loadDefaultValues(v *viper.Viper) {
	// set the default values for primitive fields in this struct
	v.SetDefault("output", []string{"text"})
	v.SetDefault("presenter", PromptPresenter)
	v.SetDefault("release-age-days", 1)

	// for each field in the configuration struct, see if the field implements the defaultValueLoader interface and invoke it if it does
	value := reflect.ValueOf(cfg)
	for i := 0; i < value.NumField(); i++ {
		// note: the defaultValueLoader method receiver is NOT a pointer receiver.
		if loadable, ok := value.Field(i).Interface().(defaultValueLoader); ok {
			// the field implements defaultValueLoader, call it
			loadable.loadDefaultValues(v)
		}
	}
}

func (cfg *Application) parseConfigValues() error {
	// parse application config options
	for _, optionFn := range []func() error{
		cfg.parseLogLevelOption,
		cfg.parsePresenterOption,
		cfg.parseReleaseAgeOption,
	} {
		if err := optionFn(); err != nil {
			return err
		}
	}

	// parse nested config options
	// for each field in the configuration struct, see if the field implements the parser interface
	// note: the app config is a pointer, so we need to grab the elements explicitly (to traverse the address)
	value := reflect.ValueOf(cfg).Elem()
	for i := 0; i < value.NumField(); i++ {
		// note: since the interface method of parser is a pointer receiver we need to get the value of the field as a pointer.
		if parsable, ok := value.Field(i).Addr().Interface().(parser); ok {
			// the field implements parser, call it
			if err := parsable.parseConfigValues(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (cfg *Application) parseLogLevelOption() error {
	switch {
	case cfg.Quiet:
		// quiet only silences the console, a log file is still written at the configured level (or warn)
		cfg.Log.LevelOpt = logrus.PanicLevel
		if cfg.Log.FileLocation != "" {
			cfg.Log.LevelOpt = logrus.WarnLevel
		}

	case cfg.CliOptions.Verbosity > 0:
		cfg.Log.LevelOpt = levelFromVerbosity(cfg.CliOptions.Verbosity)

	case cfg.Log.Level != "":
		var err error
		cfg.Log.LevelOpt, err = levelFromString(cfg.Log.Level)
		if err != nil {
			return err
		}

		if cfg.Log.LevelOpt >= logrus.InfoLevel {
			cfg.Verbosity = 1
		}
	default:
		cfg.Log.LevelOpt = logrus.WarnLevel
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = cfg.Log.LevelOpt.String()
	}

	return nil
}

func (cfg *Application) parsePresenterOption() error {
	cfg.Presenter = strings.ToLower(strings.TrimSpace(cfg.Presenter))
	for _, option := range PresenterOptions {
		if cfg.Presenter == option {
			return nil
		}
	}
	return fmt.Errorf("bad presenter value %q (options=%v)", cfg.Presenter, PresenterOptions)
}

func (cfg *Application) parseReleaseAgeOption() error {
	if cfg.ReleaseAgeDays < 0 {
		return fmt.Errorf("release-age-days must not be negative: %d", cfg.ReleaseAgeDays)
	}
	return nil
}

func (cfg Application) String() string {
	// yaml is pretty human friendly (at least when compared to json)
	appCfgStr, err := yaml.Marshal(&cfg)

	if err != nil {
		return err.Error()
	}

	return string(appCfgStr)
}

// readConfig attempts to read the given config path from disk or discover an alternate store location
func readConfig(v *viper.Viper, configPath string) error {
	var err error
	v.AutomaticEnv()
	v.SetEnvPrefix(internal.ApplicationName)
	// allow for nested options to be specified via environment variables
	// e.g. pod.context = APPNAME_POD_CONTEXT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// use explicitly the given user config
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("unable to read application config=%q : %w", configPath, err)
		}
		// don't fall through to other options if the config path was explicitly provided
		return nil
	}

	// start searching for valid configs in order...

	// 1. look for .<appname>.yaml (in the current directory)
	v.AddConfigPath(".")
	v.SetConfigName("." + internal.ApplicationName)
	if err = v.ReadInConfig(); err == nil {
		return nil
	} else if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return fmt.Errorf("unable to parse config=%q: %w", v.ConfigFileUsed(), err)
	}

	// 2. look for .<appname>/config.yaml (in the current directory)
	v.AddConfigPath("." + internal.ApplicationName)
	v.SetConfigName("config")
	if err = v.ReadInConfig(); err == nil {
		return nil
	} else if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return fmt.Errorf("unable to parse config=%q: %w", v.ConfigFileUsed(), err)
	}

	// 3. look for ~/.<appname>.yaml
	home, err := homedir.Dir()
	if err == nil {
		v.AddConfigPath(home)
		v.SetConfigName("." + internal.ApplicationName)
		if err = v.ReadInConfig(); err == nil {
			return nil
		} else if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("unable to parse config=%q: %w", v.ConfigFileUsed(), err)
		}
	}

	// 4. look for <appname>/config.yaml in xdg locations (starting with xdg home config dir, then moving upwards)
	v.AddConfigPath(path.Join(xdg.ConfigHome, internal.ApplicationName))
	for _, dir := range xdg.ConfigDirs {
		v.AddConfigPath(path.Join(dir, internal.ApplicationName))
	}
	v.SetConfigName("config")
	if err = v.ReadInConfig(); err == nil {
		return nil
	} else if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return fmt.Errorf("unable to parse config=%q: %w", v.ConfigFileUsed(), err)
	}

	return ErrApplicationConfigNotFound
}
