package redis

// Config contains buffered response cache settings.
type Config struct {
	Enabled  bool   `env:"CACHE_ENABLED"  envDefault:"false"`
	Addr     string `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"       envDefault:"0"`
	TTL      int    `env:"CACHE_TTL"      envDefault:"3600"`
}
