package config

// CurrentVersion is the only registry file version understood.
const CurrentVersion = 1

// Preference keys.
const (
	// KeyTheme holds the colour theme, "dark" or "light".
	KeyTheme = "weatherAppTheme"
)

// Registry represents the entire user configuration file.
type Registry struct {
	Version     int               `yaml:"version"`
	Preferences map[string]string `yaml:"preferences,omitempty"`

	// path is where the registry was loaded from and will be saved to.
	path string
}

// NewRegistry creates a new Registry with default values, bound to path.
func NewRegistry(path string) *Registry {
	return &Registry{
		Version:     CurrentVersion,
		Preferences: make(map[string]string),
		path:        path,
	}
}

// Path returns the file the registry is bound to.
func (r *Registry) Path() string {
	return r.path
}

// Get returns a preference value.
func (r *Registry) Get(key string) (string, bool) {
	v, ok := r.Preferences[key]
	return v, ok
}

// Set updates a preference in memory. Call Save to persist it.
func (r *Registry) Set(key, value string) {
	if r.Preferences == nil {
		r.Preferences = make(map[string]string)
	}
	r.Preferences[key] = value
}
