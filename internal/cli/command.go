package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hotchpotch/NEKO-translate/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nekotranslate",
		Short: "English/Japanese translation with NEKO-Translate",
		Long: `nekotranslate translates text between English and Japanese using a
local NEKO-Translate model.

The language pair is resolved from --input-lang/--output-lang; with
neither flag the input language is auto-detected. Input is taken from
--text or piped via stdin.

Examples:
  nekotranslate --text "Hello"                 # auto-detect, prints Japanese
  echo "おはよう" | nekotranslate               # stdin input
  nekotranslate --output-lang en --text "猫"   # force target language`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.nekotranslate.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.Model, "model", "m", flags.Model, "Path to MLX model directory")
	cmd.Flags().StringVarP(&flags.Text, "text", "t", "", "Input text (if omitted, read from stdin)")
	cmd.Flags().StringVar(&flags.InputLang, "input-lang", "", "Input language (en/ja)")
	cmd.Flags().StringVar(&flags.OutputLang, "output-lang", "", "Output language (en/ja)")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List models served by the inference server (openai engine)")

	// Generation flags
	cmd.Flags().IntVar(&flags.MaxNewTokens, "max-new-tokens", flags.MaxNewTokens, "Maximum number of new tokens to generate")
	cmd.Flags().Float64Var(&flags.Temperature, "temperature", flags.Temperature, "Sampling temperature (0 disables sampling)")
	cmd.Flags().Float64Var(&flags.TopP, "top-p", flags.TopP, "Top-p sampling value")
	cmd.Flags().IntVar(&flags.TopK, "top-k", flags.TopK, "Top-k sampling value")
	cmd.Flags().BoolVar(&flags.TrustRemoteCode, "trust-remote-code", false, "Trust remote code when loading tokenizers")
	cmd.Flags().BoolVar(&flags.NoChatTemplate, "no-chat-template", false, "Disable chat template even if the tokenizer provides one")

	// Engine flags
	cmd.Flags().StringVar(&flags.Engine, "engine", flags.Engine, "Inference engine: mlx or openai")
	cmd.Flags().StringVar(&flags.BaseURL, "base-url", flags.BaseURL, "Base URL of the OpenAI-compatible server (openai engine)")
	cmd.Flags().StringVar(&flags.Python, "python", flags.Python, "Python interpreter running mlx_lm (mlx engine)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("inference.engine", cmd.Flags().Lookup("engine"))
	viper.BindPFlag("inference.base_url", cmd.Flags().Lookup("base-url"))
	viper.BindPFlag("inference.python", cmd.Flags().Lookup("python"))
	viper.BindPFlag("inference.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("generation.max_new_tokens", cmd.Flags().Lookup("max-new-tokens"))
	viper.BindPFlag("generation.temperature", cmd.Flags().Lookup("temperature"))
	viper.BindPFlag("generation.top_p", cmd.Flags().Lookup("top-p"))
	viper.BindPFlag("generation.top_k", cmd.Flags().Lookup("top-k"))
}

// ApplyConfig overlays config-file and environment values onto flags
// the user did not set explicitly. Command-line flags always win over
// the config file.
func ApplyConfig(cmd *cobra.Command, flags *Flags) {
	if !cmd.Flags().Changed("engine") && viper.IsSet("inference.engine") {
		flags.Engine = viper.GetString("inference.engine")
	}
	if !cmd.Flags().Changed("base-url") && viper.IsSet("inference.base_url") {
		flags.BaseURL = viper.GetString("inference.base_url")
	}
	if !cmd.Flags().Changed("python") && viper.IsSet("inference.python") {
		flags.Python = viper.GetString("inference.python")
	}
	if !cmd.Flags().Changed("model") && viper.IsSet("inference.model") {
		flags.Model = viper.GetString("inference.model")
	}
	if !cmd.Flags().Changed("max-new-tokens") && viper.IsSet("generation.max_new_tokens") {
		flags.MaxNewTokens = viper.GetInt("generation.max_new_tokens")
	}
	if !cmd.Flags().Changed("temperature") && viper.IsSet("generation.temperature") {
		flags.Temperature = viper.GetFloat64("generation.temperature")
	}
	if !cmd.Flags().Changed("top-p") && viper.IsSet("generation.top_p") {
		flags.TopP = viper.GetFloat64("generation.top_p")
	}
	if !cmd.Flags().Changed("top-k") && viper.IsSet("generation.top_k") {
		flags.TopK = viper.GetInt("generation.top_k")
	}
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".nekotranslate" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".nekotranslate")
	}

	// Environment variables
	viper.SetEnvPrefix("NEKOTRANSLATE")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetAPIKey retrieves the inference server API key from environment or
// config. Local servers usually accept any value, including an empty
// one.
func GetAPIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("inference.api_key")
}
