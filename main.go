// stringify — keeps Android and iOS localization files in sync with a shared spreadsheet.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pblondin/stringify/config"
	"github.com/pblondin/stringify/diskfs"
	"github.com/pblondin/stringify/i18n"
	"github.com/pblondin/stringify/langmeta"
	"github.com/pblondin/stringify/pipeline"
	"github.com/pblondin/stringify/sheet"
	"github.com/pblondin/stringify/sheet/google"
	"github.com/pblondin/stringify/sheet/xlsx"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// cliLogger adapts the log helpers to the pipeline's Logger.
type cliLogger struct{}

func (cliLogger) Infof(format string, args ...interface{})    { logInfo(format, args...) }
func (cliLogger) Warningf(format string, args ...interface{}) { logWarning(format, args...) }

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	flagSpreadsheet string
	flagPath        string
	flagCredentials string
	flagXMLName     string
	flagDefaultLang string
	flagIOSFilename string
)

// buildConfig layers defaults, the project file, and flags.
func buildConfig(mode config.Mode) (config.Config, error) {
	cfg, err := loadConfig(mode)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadConfig is buildConfig without validation, for read-only commands
// that work on an unconfigured checkout.
func loadConfig(mode config.Mode) (config.Config, error) {
	cfg := config.NewConfig()
	cfg, err := config.Discover(cfg, ".")
	if err != nil {
		return cfg, err
	}

	cfg.Mode = mode
	if flagSpreadsheet != "" {
		cfg.Spreadsheet = flagSpreadsheet
	}
	if flagPath != "" {
		cfg.Path = flagPath
	}
	if flagCredentials != "" {
		cfg.CredentialsPath = flagCredentials
	}
	if flagXMLName != "" {
		cfg.Android.XMLName = flagXMLName
	}
	if flagDefaultLang != "" {
		cfg.Android.DefaultLanguage = flagDefaultLang
	}
	if flagIOSFilename != "" {
		cfg.IOS.Filename = flagIOSFilename
	}
	return cfg, nil
}

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stringify",
		Short: "Sync mobile localization files with a shared spreadsheet",
		Long: `stringify — keeps Android and iOS localization files in sync with a shared spreadsheet.

The spreadsheet holds one key column and one column per language.
Export regenerates values-XX/strings.xml and XX.lproj/Localizable.strings
files from it; import rebuilds the spreadsheet from the files on disk.

The spreadsheet is a Google Sheets document addressed by title, or a
local Excel workbook when the name ends in .xlsx.

Commands:
  export      Write resource files from the spreadsheet
  import      Rebuild the spreadsheet from resource files
  auth        Run the Google authorization flow
  status      Show the effective configuration and detected languages`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags — inherited by all subcommands
	pf := root.PersistentFlags()
	pf.StringVarP(&flagSpreadsheet, "spreadsheet", "s", "", "Spreadsheet title, or path to a local .xlsx workbook")
	pf.StringVarP(&flagPath, "path", "p", "", "Resource root directory (default \".\")")
	pf.StringVar(&flagCredentials, "credentials", "", "OAuth token cache location (default \".credentials\")")
	pf.StringVar(&flagXMLName, "xml-name", "", "Android resource file name (default \"strings.xml\")")
	pf.StringVar(&flagDefaultLang, "default-language", "", "Language of the bare values/ directory (default \"en\")")
	pf.StringVar(&flagIOSFilename, "ios-filename", "", "iOS strings file name (default \"Localizable.strings\")")

	root.AddCommand(
		newExportCmd(),
		newImportCmd(),
		newAuthCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Setup("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// export / import
// ---------------------------------------------------------------------------

// exportModes maps the --platform flag to a run mode.
var exportModes = map[string]config.Mode{
	"all":     config.ModeExportAll,
	"android": config.ModeExportAndroid,
	"ios":     config.ModeExportIOS,
}

var importModes = map[string]config.Mode{
	"android": config.ModeImportAndroid,
	"ios":     config.ModeImportIOS,
}

func newExportCmd() *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write resource files from the spreadsheet",
		Long: `Fetch the spreadsheet and regenerate one resource file per language.

Android files land in <path>/values-XX/, iOS files in <path>/XX.lproj/.
The default language's Android file goes to the bare values/ directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, ok := exportModes[platform]
			if !ok {
				return fmt.Errorf("unknown platform %q (valid: all, android, ios)", platform)
			}
			return runSync(cmd.Context(), mode)
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "all", "Platform to export: all, android or ios")
	return cmd
}

func newImportCmd() *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Rebuild the spreadsheet from resource files",
		Long: `Scan the resource root for one platform's localization files and
replace the spreadsheet contents with the merged result.

Files whose language cannot be determined from their path are skipped
with a warning.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, ok := importModes[platform]
			if !ok {
				return fmt.Errorf("unknown platform %q (valid: android, ios)", platform)
			}
			return runSync(cmd.Context(), mode)
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "Platform to import: android or ios")
	_ = cmd.MarkFlagRequired("platform")
	return cmd
}

func runSync(ctx context.Context, mode config.Mode) error {
	cfg, err := buildConfig(mode)
	if err != nil {
		return err
	}

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}

	if mode.IsExport() {
		logInfo(i18n.T("Fetching spreadsheet %s", cfg.Spreadsheet))
	} else {
		logInfo(i18n.T("Scanning %s for resource files", cfg.Path))
	}

	if err := pipeline.Run(ctx, cfg, backend, cliLogger{}); err != nil {
		if errors.Is(err, sheet.ErrDocumentNotFound) {
			return errors.New(i18n.T("Spreadsheet %q was not found", cfg.Spreadsheet))
		}
		return err
	}
	logSuccess("done")
	return nil
}

// openBackend picks the spreadsheet backend from the document name: a
// .xlsx name is a local workbook, anything else is a Google Sheets
// title.
func openBackend(ctx context.Context, cfg config.Config) (sheet.ReadWriter, error) {
	if cfg.UseWorkbook() {
		return xlsx.New(), nil
	}
	return google.Connect(ctx, google.Options{
		ClientID:        os.Getenv("STRINGIFY_CLIENT_ID"),
		ClientSecret:    os.Getenv("STRINGIFY_CLIENT_SECRET"),
		CredentialsPath: cfg.CredentialsPath,
		Authorize:       promptAuthorize,
	})
}

// promptAuthorize walks the user through the browser consent flow.
func promptAuthorize(authURL string) (string, error) {
	fmt.Fprintln(os.Stderr, i18n.T("Open this URL in your browser and paste the code below:"))
	fmt.Fprintln(os.Stderr, "  "+authURL)
	fmt.Fprint(os.Stderr, i18n.T("Authorization code: "))

	code, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading authorization code: %w", err)
	}
	return strings.TrimSpace(code), nil
}

// ---------------------------------------------------------------------------
// auth (run the consent flow ahead of time)
// ---------------------------------------------------------------------------

func newAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Run the Google authorization flow",
		Long: `Obtain and cache an OAuth token for Google Sheets access.

The token is stored at the credentials path (default .credentials) and
reused by later export and import runs. Local .xlsx workbooks do not
need authorization.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(config.ModeExportAll)
			if err != nil {
				return err
			}

			_, err = google.Connect(cmd.Context(), google.Options{
				ClientID:        os.Getenv("STRINGIFY_CLIENT_ID"),
				ClientSecret:    os.Getenv("STRINGIFY_CLIENT_SECRET"),
				CredentialsPath: cfg.CredentialsPath,
				Authorize:       promptAuthorize,
			})
			if err != nil {
				return err
			}
			logSuccess("token cached at %s", cfg.CredentialsPath)
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// status (read-only: effective config + languages on disk)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the effective configuration and detected languages",
		Long: `Show the configuration after applying the project file and flags,
plus the languages found under the resource root. Does not modify any
files and does not contact the spreadsheet.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(config.ModeExportAll)
			if err != nil {
				return err
			}
			runStatus(cfg)
			return nil
		},
	}
}

func runStatus(cfg config.Config) {
	fmt.Fprintf(os.Stderr, "\n%sConfiguration%s\n", colorBlue, colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))

	spreadsheet := cfg.Spreadsheet
	if spreadsheet == "" {
		spreadsheet = "(not set)"
	}
	backend := "Google Sheets"
	if cfg.UseWorkbook() {
		backend = "local workbook"
	}
	absPath, _ := filepath.Abs(cfg.Path)

	fmt.Fprintf(os.Stderr, "  Spreadsheet:  %s (%s)\n", spreadsheet, backend)
	fmt.Fprintf(os.Stderr, "  Path:         %s\n", absPath)
	fmt.Fprintf(os.Stderr, "  Credentials:  %s\n", cfg.CredentialsPath)
	fmt.Fprintf(os.Stderr, "  Android:      %s (default language %s)\n", cfg.Android.XMLName, cfg.Android.DefaultLanguage)
	fmt.Fprintf(os.Stderr, "  iOS:          %s\n", cfg.IOS.Filename)
	fmt.Fprintln(os.Stderr)

	for _, p := range []pipeline.Platform{pipeline.PlatformAndroid, pipeline.PlatformIOS} {
		langs, err := detectLanguages(cfg, p)
		if err != nil {
			logWarning("scanning for %s files: %v", p, err)
			continue
		}
		if len(langs) == 0 {
			fmt.Fprintf(os.Stderr, "  %-9s no resource files found\n", string(p)+":")
			continue
		}
		names := make([]string, 0, len(langs))
		for _, lang := range langs {
			names = append(names, fmt.Sprintf("%s (%s)", lang, langmeta.Name(lang)))
		}
		fmt.Fprintf(os.Stderr, "  %-9s %s\n", string(p)+":", strings.Join(names, ", "))
	}
	fmt.Fprintln(os.Stderr)
}

// detectLanguages lists the languages that have a resource file on
// disk for the platform.
func detectLanguages(cfg config.Config, p pipeline.Platform) ([]string, error) {
	fileName := cfg.Android.XMLName
	language := func(path string) (string, error) {
		return pipeline.LanguageFromPath(pipeline.PlatformAndroid, path, cfg)
	}
	if p == pipeline.PlatformIOS {
		fileName = cfg.IOS.Filename
		language = func(path string) (string, error) {
			return pipeline.LanguageFromPath(pipeline.PlatformIOS, path, cfg)
		}
	}

	paths, err := diskfs.FindFiles(cfg.Path, func(path string) bool {
		return filepath.Base(path) == fileName
	})
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var langs []string
	for _, path := range paths {
		lang, err := language(path)
		if err != nil {
			continue
		}
		if !seen[lang] {
			seen[lang] = true
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	return langs, nil
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("stringify version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}
}
