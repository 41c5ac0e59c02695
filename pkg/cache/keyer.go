package cache

// ArtifactKeyOpts holds everything besides the chart identity that changes
// the bytes of a rendered artifact.
type ArtifactKeyOpts struct {
	// Revision identifies the definition content, e.g. a hash of the
	// definition file. Empty for compiled definitions.
	Revision   string `json:"revision,omitempty"`
	Debug      bool   `json:"debug,omitempty"`
	NoDataText string `json:"no_data_text,omitempty"`
	DataURL    string `json:"data_url,omitempty"`
	Refresh    int    `json:"refresh,omitempty"`
	Height     string `json:"height,omitempty"`
}

// Keyer generates cache keys for the artifacts of one chart. chartID is
// the chart identity hash.
type Keyer interface {
	OptionsKey(chartID string, opts ArtifactKeyOpts) string
	DataKey(chartID string, opts ArtifactKeyOpts) string
	EmbedKey(chartID string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "<kind>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// OptionsKey keys the static chart configuration.
func (DefaultKeyer) OptionsKey(chartID string, opts ArtifactKeyOpts) string {
	return hashKey("options", chartID, opts.Revision, opts.Debug, opts.NoDataText)
}

// DataKey keys the live data. Debug and DataURL do not affect data, so
// they are left out and all views of one chart share the entry.
func (DefaultKeyer) DataKey(chartID string, opts ArtifactKeyOpts) string {
	return hashKey("data", chartID, opts.Revision)
}

// EmbedKey keys the HTML snippet, which inlines options and data. Every
// field takes part.
func (DefaultKeyer) EmbedKey(chartID string, opts ArtifactKeyOpts) string {
	return hashKey("embed", chartID, opts)
}

var _ Keyer = DefaultKeyer{}
