package vectorset

// Config holds the tunables of a Client.
type Config struct {
	// DefaultListCount is used when a ListRequest has a zero Count.
	// Default: 100
	DefaultListCount int `yaml:"defaultListCount" envconfig:"VECTORSET_DEFAULT_LIST_COUNT"`

	// DefaultSearchCount is used when a SearchRequest has a zero Count.
	// Default: 10
	DefaultSearchCount int `yaml:"defaultSearchCount" envconfig:"VECTORSET_DEFAULT_SEARCH_COUNT"`

	// ScanBatchSize is the COUNT hint sent with each SCAN page by ListKeys.
	// Default: 100
	ScanBatchSize int `yaml:"scanBatchSize" envconfig:"VECTORSET_SCAN_BATCH_SIZE"`
}

// Default values for configuration
const (
	DefaultListCount     = 100
	DefaultSearchCount   = 10
	DefaultScanBatchSize = 100
)

func (c Config) withDefaults() Config {
	if c.DefaultListCount <= 0 {
		c.DefaultListCount = DefaultListCount
	}
	if c.DefaultSearchCount <= 0 {
		c.DefaultSearchCount = DefaultSearchCount
	}
	if c.ScanBatchSize <= 0 {
		c.ScanBatchSize = DefaultScanBatchSize
	}
	return c
}
