// Package config resolves the editor configuration.
//
// Sources are applied in increasing precedence:
//
//	built-in defaults
//	config file        (TOML, or YAML for .yaml/.yml)
//	environment        (QUILL_<SECTION>_<KEY>)
//	command-line flags
//
// Maps are deep-merged, so a file that sets one theme color keeps the
// rest. The merged result is decoded into Config and validated; unknown
// keys are rejected.
//
// A config file looks like:
//
//	[editor]
//	tab_size = 8
//	soft_tabs = true
//	show_line_numbers = true
//
//	[theme]
//	name = "monokai"
//	colors = { comment = "#75715e" }
//
//	[keymap]
//	save = "Ctrl+W"
//	find = "<C-g>"
//
//	[languages]
//	path = "~/.config/quill/languages.yaml"
//
//	[log]
//	level = "debug"
//	file = "/tmp/quill.log"
//
// Watch reports changes to the file so a running editor can reload it.
package config
