package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/exemplo/appserver/internal/server"
	"github.com/exemplo/appserver/internal/version"
)

const (
	envPrefix      = "APPSERVER"
	configFileName = "config"
	dotEnvFile     = ".env"
)

var configSearchPaths = []string{".", "/etc/appserver"}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"bind":      "http.host",
	"port":      "http.port",
	"cert":      "http.cert_file",
	"key":       "http.key_file",
	"log-level": "log.level",
}

// loadConfig resolves the server config. Precedence, highest first:
// flags, APPSERVER_* env (and PORT), config file, defaults.
func loadConfig(cmd *cobra.Command) (*server.Config, error) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", dotEnvFile, err)
	}

	v := viper.New()
	setDefaults(v)

	if f := cmd.Flag("config"); f != nil && f.Changed {
		v.SetConfigFile(f.Value.String())
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config read %q: %w", v.ConfigFileUsed(), err)
		}
	} else {
		v.SetConfigName(configFileName)
		for _, p := range configSearchPaths {
			v.AddConfigPath(p)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config read %q: %w", v.ConfigFileUsed(), err)
			}
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("http.port", envPrefix+"_HTTP_PORT", "PORT"); err != nil {
		return nil, err
	}

	for name, key := range flagKeys {
		if f := cmd.Flag(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %q: %w", name, err)
			}
		}
	}

	cfg := &server.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config decode: %w", err)
	}
	cfg.Path = v.ConfigFileUsed()

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := server.DefaultConfig()
	v.SetDefault("http.host", def.HTTP.Host)
	v.SetDefault("http.port", def.HTTP.Port)
	v.SetDefault("http.cert_file", def.HTTP.CertFile)
	v.SetDefault("http.key_file", def.HTTP.KeyFile)
	v.SetDefault("http.read_header_timeout", def.HTTP.ReadHeaderTimeout)
	v.SetDefault("http.idle_timeout", def.HTTP.IdleTimeout)
	v.SetDefault("http.shutdown_timeout", def.HTTP.ShutdownTimeout)
	v.SetDefault("http.trusted_proxies", []string{})
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("rate_limit", def.RateLimit)
}

func logConfig(cfg *server.Config) {
	path := cfg.Path
	if path == "" {
		path = "(none)"
	}
	slog.Info("appserver config",
		"build", version.Get(),
		"config", path,
		"addr", cfg.HTTP.Addr(),
		"tls", cfg.HTTP.TLSEnabled(),
		"trustedProxies", cfg.HTTP.TrustedProxies,
		"rateLimit", cfg.RateLimit,
		"logLevel", cfg.Log.Level,
		"logFile", cfg.Log.File,
	)
}
