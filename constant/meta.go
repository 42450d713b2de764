// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// App is the canonical application identifier used for filesystem paths, env prefixes and CLI branding.
	App = "vjlooper"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// Repository is the public home of the project.
	Repository = "github.com/mbeissinger/vj-looper"
)

// Build metadata, overridden with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
