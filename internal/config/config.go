package config

// CliOnlyOptions are options that can only be given on the command line (never from a config file).
type CliOnlyOptions struct {
	ConfigPath string
	Verbosity  int
}
