package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/bopomofo/internal"
)

// Handler runs a subcommand once flags and configuration are resolved
type Handler func(cmd *cobra.Command, args []string) error

// Handlers connects the subcommands to their implementation
type Handlers struct {
	Download Handler
	Generate Handler
	Anki     Handler
}

// configBindings maps config file keys to flag names
var configBindings = []struct {
	key  string
	flag string
}{
	{"output.directory", "output"},
	{"output.table", "table"},
	{"output.categories", "category"},
	{"pipeline.max_consecutive_failures", "max-consecutive-failures"},
	{"download.base_url", "base-url"},
	{"download.file_name", "remote-file"},
	{"download.timeout", "timeout"},
	{"audio.provider", "provider"},
	{"audio.fallback_provider", "fallback-provider"},
	{"audio.language", "language"},
	{"audio.format", "format"},
	{"audio.provider_url", "provider-url"},
	{"audio.openai_model", "openai-model"},
	{"audio.openai_voice", "openai-voice"},
	{"audio.openai_speed", "openai-speed"},
	{"audio.openai_instruction", "openai-instruction"},
	{"audio.gemini_model", "gemini-model"},
	{"audio.gemini_voice", "gemini-voice"},
	{"audio.gemini_language", "gemini-language"},
	{"audio.espeak_voice", "espeak-voice"},
	{"audio.espeak_speed", "espeak-speed"},
	{"anki.deck_name", "deck-name"},
	{"anki.output", "anki-output"},
}

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags, handlers Handlers) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bopomofo",
		Short: "Bopomofo pronunciation clip fetcher",
		Long: `bopomofo fills a local directory with pronunciation clips for the
37 Bopomofo (Zhuyin) symbols and the 5 Mandarin tones.

Clips are either downloaded from the GCIN voice data mirror or synthesized
with a text-to-speech provider. Existing clips are kept, so runs can be
repeated until every symbol has a clip.

Examples:
  bopomofo download                        # Recorded clips into ./audio
  bopomofo generate --provider openai      # Synthesized clips via OpenAI
  bopomofo download --category tones       # Only the tone clips
  bopomofo anki --output audio             # Flashcard deck from the clips`,
		Version:      internal.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			bindFlagsToViper(cmd)
			return ApplyConfig(cmd)
		},
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	rootCmd.AddCommand(
		newDownloadCommand(flags, handlers.Download),
		newGenerateCommand(flags, handlers.Generate),
		newAnkiCommand(flags, handlers.Anki),
	)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.bopomofo.yaml)")
	pf.StringVarP(&flags.OutputDir, "output", "o", flags.OutputDir, "Output directory for the clips")
	pf.StringVar(&flags.TableFile, "table", "", "Read the symbol table from file instead of the built-in one")
	pf.StringSliceVar(&flags.Categories, "category", nil, "Only process these categories (consonants, vowels, tones)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "Print diagnostic logs to stderr")
	pf.BoolVar(&flags.Archive, "archive", false, "Move the existing output directory to ../archive before running")
	pf.Uint32Var(&flags.MaxConsecutiveFailures, "max-consecutive-failures", 0, "Fail remaining fetches fast after this many failures in a row (0 disables)")
}

func newDownloadCommand(flags *Flags, handler Handler) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download recorded clips from the GCIN voice data mirror",
		Args:  cobra.NoArgs,
		RunE:  handler,
	}

	cmd.Flags().StringVar(&flags.BaseURL, "base-url", flags.BaseURL, "Mirror root URL")
	cmd.Flags().StringVar(&flags.RemoteFileName, "remote-file", flags.RemoteFileName, "File to fetch from each syllable folder")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Timeout per download")

	return cmd
}

func newGenerateCommand(flags *Flags, handler Handler) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Synthesize clips with a text-to-speech provider",
		Args:  cobra.NoArgs,
		RunE:  handler,
	}

	f := cmd.Flags()
	f.StringVar(&flags.Provider, "provider", flags.Provider, "TTS provider: google, openai, gemini or espeak")
	f.StringVar(&flags.FallbackProvider, "fallback-provider", "", "Provider to use when the primary one fails")
	f.StringVar(&flags.Language, "language", flags.Language, "Language tag of the spoken text")
	f.StringVarP(&flags.AudioFormat, "format", "f", flags.AudioFormat, "Audio format (mp3 or wav; openai also opus, aac, flac)")
	f.StringVar(&flags.ProviderURL, "provider-url", "", "Override the provider API endpoint (google, openai, gemini)")
	f.BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI speech models for the current API key")

	// OpenAI flags
	f.StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	f.StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, ballad, coral, echo, fable, onyx, nova, sage, shimmer, verse")
	f.Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0, may be ignored by gpt-4o-mini-tts)")
	f.StringVar(&flags.OpenAIInstruction, "openai-instruction", flags.OpenAIInstruction, "Voice instructions for gpt-4o-mini-tts model")

	// Gemini flags
	f.StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini speech model")
	f.StringVar(&flags.GeminiVoice, "gemini-voice", flags.GeminiVoice, "Gemini prebuilt voice name")
	f.StringVar(&flags.GeminiLanguage, "gemini-language", flags.GeminiLanguage, "Gemini language code")

	// espeak-ng flags
	f.StringVar(&flags.ESpeakVoice, "espeak-voice", flags.ESpeakVoice, "espeak-ng voice (cmn, yue, ...)")
	f.IntVar(&flags.ESpeakSpeed, "espeak-speed", flags.ESpeakSpeed, "espeak-ng speed in words per minute (80 to 450)")

	return cmd
}

func newAnkiCommand(flags *Flags, handler Handler) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anki",
		Short: "Export an Anki deck from the clips in the output directory",
		Args:  cobra.NoArgs,
		RunE:  handler,
	}

	cmd.Flags().StringVarP(&flags.AudioFormat, "format", "f", flags.AudioFormat, "Extension of the clips to include")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")
	cmd.Flags().BoolVar(&flags.AnkiCSV, "anki-csv", false, "Generate CSV format instead of APKG")
	cmd.Flags().StringVar(&flags.AnkiOutput, "anki-output", "", "Output file (default: <deck-name>.apkg next to the output directory)")

	return cmd
}

// lookupFlag finds a local or inherited flag of cmd
func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag
	}
	return cmd.InheritedFlags().Lookup(name)
}

func bindFlagsToViper(cmd *cobra.Command) {
	for _, b := range configBindings {
		if flag := lookupFlag(cmd, b.flag); flag != nil {
			viper.BindPFlag(b.key, flag)
		}
	}
}

// ApplyConfig fills flags that were not given on the command line from the
// config file and environment
func ApplyConfig(cmd *cobra.Command) error {
	for _, b := range configBindings {
		flag := lookupFlag(cmd, b.flag)
		if flag == nil || flag.Changed || !viper.IsSet(b.key) {
			continue
		}

		value := viper.GetString(b.key)
		if flag.Value.Type() == "stringSlice" {
			value = strings.Join(viper.GetStringSlice(b.key), ",")
		}

		if err := flag.Value.Set(value); err != nil {
			return fmt.Errorf("invalid value %q for %s in config: %w", value, b.key, err)
		}
	}
	return nil
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// A .env file in the working directory is optional
	_ = godotenv.Load()

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

		// Search config in home directory with name ".bopomofo" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".bopomofo")
	}

	// Environment variables, e.g. BOPOMOFO_AUDIO_PROVIDER
	viper.SetEnvPrefix("BOPOMOFO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("audio.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("audio.gemini_key")
}
