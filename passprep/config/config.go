package config

import (
	"fmt"
	"path/filepath"
	"strings"

	internal "github.com/opabravo/tensorflow-1.4-billion-password-analysis/passprep"

	"github.com/spf13/viper"
)

// Config stores all configuration of the pipeline.
// The values are read by viper from a config file or environment variables.
// Artifact locations are explicit configuration here rather than process-wide
// temp-dir globals, so tests and parallel runs can inject their own paths.
type Config struct {
	Corpus    CorpusConfig    `mapstructure:"corpus"`
	Encoding  EncodingConfig  `mapstructure:"encoding"`
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
}

// CorpusConfig stores corpus file format details.
type CorpusConfig struct {
	// Separator is the single-character field delimiter. Each line holds
	// three fields: identifier, password, transformed password.
	Separator string `mapstructure:"separator"`
}

// EncodingConfig stores vocabulary and tensor shape settings.
type EncodingConfig struct {
	MaxPasswordLength int    `mapstructure:"maxPasswordLength"`
	MaxVocabSize      int    `mapstructure:"maxVocabSize"`
	OOVChar           string `mapstructure:"oovChar"`
	PadChar           string `mapstructure:"padChar"`
}

// ArtifactsConfig stores where the persisted mappings and dataset live.
type ArtifactsConfig struct {
	Dir string `mapstructure:"dir"`
}

// TokenIndicesPath is the char→index mapping artifact location.
func (c *Config) TokenIndicesPath() string {
	return filepath.Join(c.Artifacts.Dir, internal.TokenIndicesFilename)
}

// IndicesTokenPath is the index→char mapping artifact location.
func (c *Config) IndicesTokenPath() string {
	return filepath.Join(c.Artifacts.Dir, internal.IndicesTokenFilename)
}

// DatasetPath is the compressed inputs/targets archive location.
func (c *Config) DatasetPath() string {
	return filepath.Join(c.Artifacts.Dir, internal.DatasetFilename)
}

// OOVRune returns the configured out-of-vocabulary sentinel as a rune.
func (c *Config) OOVRune() rune {
	return firstRune(c.Encoding.OOVChar, internal.OOVChar)
}

// PadRune returns the configured padding sentinel as a rune.
func (c *Config) PadRune() rune {
	return firstRune(c.Encoding.PadChar, internal.PadChar)
}

func firstRune(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}

var AppConfig Config

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Set default values
	viper.SetDefault("corpus.separator", internal.DefaultSeparator)
	viper.SetDefault("encoding.maxPasswordLength", internal.DefaultMaxPasswordLength)
	viper.SetDefault("encoding.maxVocabSize", internal.DefaultMaxVocabSize)
	viper.SetDefault("encoding.oovChar", string(internal.OOVChar))
	viper.SetDefault("encoding.padChar", string(internal.PadChar))
	viper.SetDefault("artifacts.dir", internal.DefaultArtifactDir)

	viper.AutomaticEnv()                                   // Read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // e.g. artifacts.dir becomes ARTIFACTS_DIR

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; defaults will be used.
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &AppConfig, nil
}
