// Package config manages the lanscan user configuration file.
//
// The configuration is a small YAML file stored in the OS-appropriate
// location ($XDG_CONFIG_HOME/lanscan/config.yaml on Linux). It holds the
// server listen address, an optional log level, and the scan countdown
// duration. A missing file yields the defaults; an invalid file is an error.
package config
