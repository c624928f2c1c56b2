package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"contentfield/models"
	"contentfield/tui"
	"contentfield/web"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
)

var (
	// Flags that override the environment
	flagAddress    string
	flagDBPath     string
	flagSuggestURL string
	flagLogLevel   string

	suggestType    string
	suggestCountry string

	tokenEntry string
	tokenField string
)

var rootCmd = &cobra.Command{
	Use:   "contentfield",
	Short: "Content type link field for the CMS entry editor",
	Long: `contentfield serves the content type link widget: an editor picks a content
type, searches remote suggestions for a market and links the entry to one of them.

Configuration comes from CONTENTFIELD_* environment variables; flags override them.

Examples:
  # Run the widget server
  contentfield serve --addr :8000

  # One-off lookup against the suggestion endpoints
  contentfield suggest --type BRAND --country SE samsung

  # Mint a field token for local testing
  contentfield token --entry entry-123`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAddress, "addr", "", "Listen address")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Field store file path")
	rootCmd.PersistentFlags().StringVar(&flagSuggestURL, "suggest-url", "", "Suggestion endpoint base URL")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug|info|warn|error")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the widget server",
		RunE:  runServe,
	}

	suggestCmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Look up suggestions and print them as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runSuggest,
	}
	suggestCmd.Flags().StringVarP(&suggestType, "type", "t", string(models.ContentTypeCategory), "Content type: CATEGORY|SUBCATEGORY|MERCHANT|BRAND")
	suggestCmd.Flags().StringVarP(&suggestCountry, "country", "c", string(models.DefaultCountryCode), "Country code: SE|DK|UK")

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Print a field token for an entry",
		RunE:  runToken,
	}
	tokenCmd.Flags().StringVar(&tokenEntry, "entry", "", "Entry id (required)")
	tokenCmd.Flags().StringVar(&tokenField, "field", "contentType", "Field id")
	_ = tokenCmd.MarkFlagRequired("entry")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Edit an entry's field from the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&tokenEntry, "entry", "", "Entry id (required)")
	_ = tuiCmd.MarkFlagRequired("entry")

	rootCmd.AddCommand(serveCmd, suggestCmd, tokenCmd, tuiCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the environment, applies flag overrides and validates.
func loadConfig(cmd *cobra.Command) (*models.AppConfig, error) {
	cfg, err := models.LoadAppConfig()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Address = flagAddress
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("suggest-url") {
		cfg.SuggestBaseURL = flagSuggestURL
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.SetLogLevel(cfg.LogLevel)
	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := models.InitJWT(cfg.JWTSecret); err != nil {
		return serr.Wrap(err, "failed to initialize field tokens")
	}

	if err := models.InitDB(cfg.DBPath); err != nil {
		return serr.Wrap(err, "failed to initialize field store")
	}
	defer models.CloseDB()

	srv := web.NewServer(cfg)
	return web.Run(srv, cfg.Address)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ct, err := models.ParseContentType(suggestType)
	if err != nil || !ct.IsSet() {
		return serr.New("--type must be one of CATEGORY, SUBCATEGORY, MERCHANT, BRAND")
	}
	cc, err := models.ParseCountryCode(suggestCountry)
	if err != nil {
		return err
	}

	gateway := models.NewSuggestionGateway(cfg.SuggestBaseURL, cfg.SuggestTimeout)
	suggestions, err := gateway.FetchSuggestions(context.Background(), ct, args[0], cc)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(suggestions, "", "  ")
	if err != nil {
		return serr.Wrap(err, "failed to encode suggestions")
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := models.InitJWT(cfg.JWTSecret); err != nil {
		return err
	}

	token, err := models.GenerateFieldToken(tokenEntry, tokenField)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := models.InitDB(cfg.DBPath); err != nil {
		return serr.Wrap(err, "failed to initialize field store")
	}
	defer models.CloseDB()

	gateway := models.NewSuggestionGateway(cfg.SuggestBaseURL, cfg.SuggestTimeout)
	return tui.Run(gateway, models.EntryFieldStore(tokenEntry), tokenEntry)
}
