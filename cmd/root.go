package cmd

import (
	"log"
	"time"

	"github.com/spigell/lente/internal/candidates"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "lente"
)

type Config struct {
	Locale      string                   `mapstructure:"locale"`
	ExcludeFile string                   `mapstructure:"exclude-file"`
	Search      *SearchConfig            `mapstructure:"search"`
	Source      *candidates.SourceConfig `mapstructure:"source"`
}

type SearchConfig struct {
	Query     string        `mapstructure:"query"`
	MinScore  *int          `mapstructure:"min-score"`
	Languages []string      `mapstructure:"languages"`
	Workers   int           `mapstructure:"workers"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "lente ranks candidate profiles against a free-text search query",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("source.supabase.url", "LENTE_SUPABASE_URL"); err != nil {
		log.Fatalf("binding LENTE_SUPABASE_URL environment variable: %v", err)
	}

	viper.SetDefault("locale", "en")
	viper.SetDefault("search.timeout", 5*time.Second)
	viper.SetDefault("source.kind", candidates.SourceFile)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is lente.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Only search needs the config file.
	if searchCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// Flags and environment are enough without a config file.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
