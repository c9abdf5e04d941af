/*
Package config loads jdi settings from YAML, JSON, or TOML files.

# Overview

Config wraps a map[string]any and provides typed accessors that fall back to
a default when a key is missing or holds the wrong type. Settings is the
resolved, validated view the CLI and HTTP server consume.

# Basic Usage

	s, err := config.LoadSettings("jdi.yaml")
	if err != nil {
	    return err
	}
	fmt.Println(s.Listen, s.DiagSink)

Lower-level access works on any decoded document:

	cfg, err := config.FromTOML(data)
	timeout := cfg.Duration("shutdown_timeout", 10*time.Second)
	sink := cfg.Sub("diag").String("sink", "stderr")

# Type Coercion

Duration accepts strings ("30s", "1h30m"), numbers as seconds, and
time.Duration values. Int accepts int, int64 (as produced by the TOML
decoder), and whole float64 values (as produced by the JSON decoder).

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
