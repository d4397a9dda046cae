package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "CATALOG_CONFIG_FILE"

// MemoryConnectionString selects the in-process products storage instead
// of MongoDB.
const MemoryConnectionString = "memory://"

type database struct {
	ConnectionString string        `mapstructure:"connection_string"`
	DatabaseName     string        `mapstructure:"database_name"`
	CollectionName   string        `mapstructure:"collection_name"`
	Seed             bool          `mapstructure:"seed"`
	ConnectTimeout   time.Duration `mapstructure:"connect_timeout"`
	ConnectAttempts  int           `mapstructure:"connect_attempts"`
}

type topics struct {
	ProductEvents string `mapstructure:"product_events"`
}

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	Topics             topics   `mapstructure:"topics"`
	TLS                tlsFiles `mapstructure:"tls"`
}

type Config struct {
	LogLevel       slog.Level    `mapstructure:"log_level"`
	HTTPServerAddr string        `mapstructure:"http_server_addr"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Database       database      `mapstructure:"database"`
	Broker         broker        `mapstructure:"broker"`
}

// EventsEnabled reports whether product events should be produced.
func (c Config) EventsEnabled() bool {
	return len(c.Broker.SeedBrokers) != 0 && c.Broker.Topics.ProductEvents != ""
}

// TLSEnabled reports whether all broker TLS files are set.
func (c Config) TLSEnabled() bool {
	t := c.Broker.TLS
	return t.CA != "" && t.Cert != "" && t.Key != ""
}

func Load() Config {
	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

func LoadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, err
	}

	var cfg Config
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.UnmarshalExact(&cfg, decodeHook); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("request_timeout", "5s")
	v.SetDefault("database.connection_string", "mongodb://localhost:27017")
	v.SetDefault("database.database_name", "CatalogDb")
	v.SetDefault("database.collection_name", "Products")
	v.SetDefault("database.seed", true)
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("database.connect_attempts", 5)
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	cmdLine.ParseErrorsWhitelist.UnknownFlags = true
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	RequestTimeout=%q

	Database:
	ConnectionString=%q
	DatabaseName=%q
	CollectionName=%q
	Seed=%t
	ConnectTimeout=%q
	ConnectAttempts=%d

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		ProductEvents=%q
	TLS=%t

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.RequestTimeout,
		redactURI(c.Database.ConnectionString),
		c.Database.DatabaseName,
		c.Database.CollectionName,
		c.Database.Seed,
		c.Database.ConnectTimeout,
		c.Database.ConnectAttempts,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.ProductEvents,
		c.TLSEnabled(),
	)
}

// redactURI hides the userinfo part of a connection string.
func redactURI(uri string) string {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return uri
	}
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return uri
	}
	return scheme + "://***@" + rest[at+1:]
}
