package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Routing (E001-E009)
	"E001": {
		Category:   CategoryRouting,
		Message:    "No route matched and no default route is registered",
		Detail:     `The hash did not match any registered path and there is no route registered at "/" to fall back to.`,
		Suggestion: `Register a route with Path "/"`,
	},
	"E002": {
		Category:   CategoryRouting,
		Message:    "Hash has segments beyond the sub-route",
		Detail:     "Strict segment checking is enabled and the hash carries more than one segment after a two-level base route.",
		Suggestion: "Remove the extra segments or disable strict segments",
	},
	"E003": {
		Category: CategoryRouting,
		Message:  "Invalid percent escape in hash segment",
		Detail:   "A percent sign must be followed by two hexadecimal digits.",
	},

	// Manifest (E010-E019)
	"E010": {
		Category: CategoryManifest,
		Message:  "Route manifest could not be parsed",
		Detail:   "The manifest must be a TOML document with one [[route]] table per route.",
	},
	"E011": {
		Category:   CategoryManifest,
		Message:    "Unknown controller",
		Detail:     "A route names a controller that is not in the controller registry.",
		Suggestion: `Use one of the registered controllers, for example "replace" or "append"`,
	},
	"E012": {
		Category: CategoryManifest,
		Message:  "Duplicate route name",
		Detail:   "Route names identify routes and must be unique within a manifest.",
	},
	"E013": {
		Category:   CategoryManifest,
		Message:    "Template could not be loaded",
		Detail:     "A route references a template file that could not be read from the template directory.",
		Suggestion: "Check manifest.templates in the configuration",
	},
	"E014": {
		Category: CategoryManifest,
		Message:  "Manifest source could not be read",
		Detail:   "The manifest file or S3 object could not be fetched.",
	},
	"E015": {
		Category: CategoryManifest,
		Message:  "Route has no path",
		Detail:   `Every route needs a path such as "/" or "/users".`,
	},
	"E016": {
		Category:   CategoryManifest,
		Message:    "Duplicate route path",
		Detail:     "Two routes in the manifest share a path, so only one of them could ever be dispatched.",
		Suggestion: "Give each route its own path or remove one of the entries",
	},

	// Configuration (E020-E029)
	"E020": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration",
		Suggestion: "Check hashroute.toml and HASHROUTE_* environment variables",
	},

	// CLI (E030-E039)
	"E030": {
		Category:   CategoryCLI,
		Message:    "Unknown project template",
		Suggestion: "Run 'hashroute init --list' to see the available templates",
	},
	"E031": {
		Category:   CategoryCLI,
		Message:    "Project directory is not empty",
		Detail:     "hashroute init refuses to overwrite existing files.",
		Suggestion: "Choose an empty directory or pass --force",
	},
}

// GetAllCodes returns all registered error codes in order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds or replaces an error template. Call it during init.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
