package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hotchpotch/NEKO-translate/internal"
	"github.com/hotchpotch/NEKO-translate/internal/convert"
)

var (
	// Flags
	cfgFile         string
	modelList       []string
	qbits           []int
	outputDir       string
	qGroupSize      int
	dtype           string
	trustRemoteCode bool
	python          string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mlxconvert",
	Short: "Convert NEKO-Translate checkpoints to quantized MLX format",
	Long: `mlxconvert converts Hugging Face model checkpoints to the MLX
runtime format, quantized to 4 or 8 bits, by driving the external
mlx_lm convert command. One conversion runs per (model, qbits)
combination and existing output directories are never overwritten.

Example:
  mlxconvert                                    # both default checkpoints, q8 and q4
  mlxconvert --model cyberagent/NEKO-Translate-0.8b --qbits 4`,
	Args:    cobra.NoArgs,
	RunE:    runCommand,
	Version: internal.Version,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.nekotranslate.yaml)")

	// Local flags
	rootCmd.Flags().StringArrayVar(&modelList, "model", nil, "Hugging Face model repo (can be repeated)")
	rootCmd.Flags().IntSliceVar(&qbits, "qbits", convert.DefaultQBits, "Quantization bits")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "output/mlx", "Base output directory")
	rootCmd.Flags().IntVar(&qGroupSize, "q-group-size", 0, "Quantization group size for mlx_lm convert")
	rootCmd.Flags().StringVar(&dtype, "dtype", "", "Data type for non-quantized parameters (float16, bfloat16 or float32)")
	rootCmd.Flags().BoolVar(&trustRemoteCode, "trust-remote-code", false, "Trust remote code when loading tokenizer")
	rootCmd.Flags().StringVar(&python, "python", "python3", "Python interpreter running mlx_lm")

	viper.BindPFlag("convert.output_dir", rootCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("inference.python", rootCmd.Flags().Lookup("python"))
}

// initConfig mirrors the translation binary's config loading so one
// file serves both tools.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".nekotranslate")
	}

	viper.SetEnvPrefix("NEKOTRANSLATE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// applyConfig overlays config-file values onto flags the user did not
// set explicitly. Command-line flags always win over the config file.
func applyConfig(cmd *cobra.Command) {
	if !cmd.Flags().Changed("output-dir") && viper.IsSet("convert.output_dir") {
		outputDir = viper.GetString("convert.output_dir")
	}
	if !cmd.Flags().Changed("python") && viper.IsSet("inference.python") {
		python = viper.GetString("inference.python")
	}
}

func runCommand(cmd *cobra.Command, args []string) error {
	applyConfig(cmd)

	switch dtype {
	case "", "float16", "bfloat16", "float32":
	default:
		return fmt.Errorf("invalid dtype %q (choose from float16, bfloat16, float32)", dtype)
	}

	models := modelList
	if len(models) == 0 {
		models = convert.DefaultModels
	}

	opts := &convert.Options{
		Models:          models,
		QBits:           qbits,
		OutputDir:       outputDir,
		QGroupSize:      qGroupSize,
		DType:           dtype,
		TrustRemoteCode: trustRemoteCode,
		Python:          python,
	}
	return convert.Run(context.Background(), opts, convert.ExecRunner{})
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
