package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/attest/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "attest",
	Short: "Attest - acceptance-test generation from prescriptive requirements",
	Long: `Attest parses prescriptive requirement sentences ("The system must..."),
classifies their MoSCoW priority, extracts actors, actions, targets and
measurable constraints, and generates Given/When/Then acceptance-test
stubs with full traceability back to the source line.

Attest never silently drops input: every line either becomes a
requirement or appears in the skip manifest with a reason.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Attest.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("attest v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.attest/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.attest")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match ATTEST_*
	viper.SetEnvPrefix("ATTEST")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// baseConfig builds the configuration from defaults plus config-file
// overrides; command flags apply on top of the result
func baseConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("annotator.backend"); v != "" {
		cfg.Annotator.Backend = v
	}
	if v := viper.GetString("annotator.base_url"); v != "" {
		cfg.Annotator.BaseURL = v
	}
	if v := viper.GetFloat64("annotator.requests_per_second"); v > 0 {
		cfg.Annotator.RequestsPerSecond = v
	}
	if v := viper.GetInt("concurrency.extract_workers"); v > 0 {
		cfg.Concurrency.ExtractWorkers = v
	}
	if v := viper.GetInt("concurrency.batch_workers"); v > 0 {
		cfg.Concurrency.BatchWorkers = v
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetFloat64("modality.confidence_threshold"); v > 0 {
		cfg.Modality.ConfidenceThreshold = v
	}

	cfg.Output.Verbose = verbose
	return cfg
}

// applyLLMConfig wires the LLM provider settings, reading API keys from
// the environment only
func applyLLMConfig(cfg *model.Config, provider, llmModel string) error {
	cfg.LLM.Provider = provider
	cfg.LLM.Model = llmModel

	switch provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}
