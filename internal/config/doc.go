// Package config loads hashroute.toml.
//
// Configuration is layered: built-in defaults, the base file, an optional
// overlay selected by HASHROUTE_ENV (hashroute.<env>.toml) and finally
// HASHROUTE_* environment variables. A missing base file is not an error.
//
// Example hashroute.toml:
//
//	[server]
//	addr = ":8080"
//	title = "My App"
//
//	[logging]
//	level = "debug"
//
//	[manifest]
//	path = "routes.toml"
//	templates = "templates"
//
//	[metrics]
//	enabled = true
package config
