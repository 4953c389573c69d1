package cache

// Keyer generates cache keys for the cached artifacts.
type Keyer interface {
	// LayoutKey is the key of a computed layout.
	LayoutKey(configHash string, opts LayoutKeyOpts) string

	// ReportKey is the key of a validation report.
	ReportKey(configHash string, opts LayoutKeyOpts) string
}

// LayoutKeyOpts holds the settings that change a layout for the same
// configuration.
type LayoutKeyOpts struct {
	Mode string `json:"mode"`
	ID   string `json:"id,omitempty"`
}

// DefaultKeyer produces unscoped keys of the form "layout:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey hashes the configuration hash together with opts.
func (DefaultKeyer) LayoutKey(configHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", configHash, opts)
}

// ReportKey hashes the configuration hash together with opts.
func (DefaultKeyer) ReportKey(configHash string, opts LayoutKeyOpts) string {
	return hashKey("report", configHash, opts)
}
