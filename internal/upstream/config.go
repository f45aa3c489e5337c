package upstream

// Config contains upstream HTTP settings shared by every backend.
type Config struct {
	Timeout        int   `env:"UPSTREAM_TIMEOUT"          envDefault:"120"`
	ErrorBodyLimit int64 `env:"UPSTREAM_ERROR_BODY_LIMIT" envDefault:"65536"`
}
