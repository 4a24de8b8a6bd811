// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface (CLI) for Confstore using the
// Cobra library. It defines the root command, subcommands (like get, set,
// profile), flags, and the main entry point for execution.

package cli

import (
	"errors"
	"fmt"
	"os"

	"runtime/debug"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quillbox/confstore/buildvars"
	"github.com/quillbox/confstore/internal/bus"
	"github.com/quillbox/confstore/internal/config"
	"github.com/quillbox/confstore/internal/configstore"
	"github.com/quillbox/confstore/internal/crypto"
	"github.com/quillbox/confstore/internal/db"
	"github.com/quillbox/confstore/internal/i18n"
	"github.com/quillbox/confstore/internal/logging"
)

var version = "dev"   // this will be set by the linker
var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)
var cfgFile string
var verbose bool
var showVersionFlag bool

var appConfig config.Config
var settings *configstore.Service

func setupDefaultServices(cmd *cobra.Command, args []string) error {
	// Load optional config file argument from cli
	optionalConfigPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	defaults := map[string]any{
		"database.type":   "sqlite",
		"database.dsn":    "./confstore.db",
		"profile":         "default",
		"default_profile": "default",
		"language":        "en",
	}

	appConfig, err = config.LoadConfig[config.Config](cmd, defaults, optionalConfigPath)
	// A "file not found" error is expected on first run, so we handle it
	// specifically. Other errors during loading are fatal.
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		// This is the first run, or the config file was deleted. Create a
		// default one.
		if writeErr := config.WriteConfigFile(&appConfig, false); writeErr != nil {
			// Log a warning but don't fail, as the app can run on defaults.
			log.Warnf("Warning: could not write default config file: %v", writeErr)
		} else {
			log.Info(i18n.T("config.wrote_default"))
		}
	} else if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Post-process config to ensure critical values are not empty, falling
	// back to defaults. This handles cases where the user's config file has
	// empty values for these fields.
	if appConfig.Database.Type == "" {
		appConfig.Database.Type = defaults["database.type"].(string)
	}
	if appConfig.Database.DSN == "" {
		appConfig.Database.DSN = defaults["database.dsn"].(string)
	}
	if appConfig.Profile == "" {
		appConfig.Profile = defaults["profile"].(string)
	}
	if appConfig.DefaultProfile == "" {
		appConfig.DefaultProfile = defaults["default_profile"].(string)
	}
	if appConfig.Language == "" {
		appConfig.Language = defaults["language"].(string)
	}

	// Initialize i18n
	i18n.Init(appConfig.Language)

	if appConfig.Debug || verbose {
		logging.SetDebug(true)
		db.SetDebug(true)
	}

	// Initialize the database if not already initialized by tests or
	// earlier setup.
	if !db.IsInitialized() {
		if _, err := db.New(appConfig.Database.Type, appConfig.Database.DSN); err != nil {
			return errors.New(i18n.T("config.error_init_db", err))
		}
	}

	store := db.DefaultStore()
	settings = configstore.New(store, storedHasher(store, appConfig.DefaultProfile),
		bus.New(), appConfig.DefaultProfile, appConfig.Profile)

	return nil
}

// storedHasher builds the password hasher from the persisted encryption
// parameters of the default profile, falling back to the built-in defaults
// on a fresh database.
func storedHasher(store db.Store, defaultProfile string) crypto.Hasher {
	read := func(name string) string {
		if entry, err := store.GetConfig(defaultProfile, name); err == nil && entry != nil {
			return entry.Value
		}
		if entry, err := store.GetDefaultValue(name); err == nil && entry != nil {
			return entry.Value
		}
		return ""
	}
	return crypto.NewPBKDF2Hasher(read("encryptSalt"), read("encryptIter"), read("encryptKeySize"))
}

// Execute runs the CLI entrypoint. The main package should call this
// function and handle process exit.
func Execute() error {
	rootCmd := NewRootCmd()
	return rootCmd.Execute()
}

func applyDefaultFlags(cmd *cobra.Command) {
	// Avoid redefining flags if they already exist (NewRootCmd may be called
	// multiple times in tests which creates a new root but uses package-level
	// subcommands). pflag will panic on duplicate flag definitions, so check
	// first.
	if cmd.Flags().Lookup("database.type") == nil {
		cmd.Flags().String("database.type", "sqlite", "Database type (e.g., sqlite, postgres)")
	}
	if cmd.Flags().Lookup("database.dsn") == nil {
		cmd.Flags().String("database.dsn", "./confstore.db", "Database connection string (DSN)")
	}
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if cmd.Flags().Changed("config") {
		path, err := cmd.Flags().GetString("config")
		if err != nil {
			// This is unlikely if Changed() is true, but good practice.
			return nil, fmt.Errorf("could not read --config flag: %w", err)
		}

		// If the flag is set but the value is empty, do nothing.
		if path == "" {
			return nil, nil
		}

		// Make sure the user-provided file exists to avoid unwanted behavior.
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
		}
		return &path, nil
	}
	return nil, nil
}

// NewRootCmd creates and configures a new root cobra command.
// This function is used to create the main application command as well as
// fresh instances for isolated testing.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "confstore",
		Short: "Confstore is a profile-scoped settings store for Quillbox.",
		Long: `Confstore keeps every Quillbox setting in a single database,
scoped to named profiles. Profiles can inherit the shared default
settings or keep their own, and the parameters that encrypt note
content are backed up before any change can make old content
unreadable.

Running without a subcommand prints the resolved settings of the
active profile.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if showVersionFlag {
				fmt.Printf("%s\n", compositeVersion())
				os.Exit(0)
			}
			if verbose {
				db.SetDebug(true)
			}
			return setupDefaultServices(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Services are already initialized by PersistentPreRunE.
			return runShow(cmd, args)
		},
	}

	cmd.Version = compositeVersion()

	// Register debug command
	cmd.AddCommand(debugCmd)

	// Define flags
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (sets -v for DB logs)")
	cmd.PersistentFlags().BoolVarP(&showVersionFlag, "version", "V", false, "Print version and exit")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("language", "en", `output language ("en", "de")`)
	cmd.PersistentFlags().StringP("profile", "p", "default", "profile to operate on")
	applyDefaultFlags(cmd)

	// Add subcommand flags
	applyDefaultFlags(getCmd)
	if getCmd.Flags().Lookup("default") == nil {
		getCmd.Flags().String("default", "", "Fallback value when the setting is absent")
	}
	applyDefaultFlags(showCmd)
	applyDefaultFlags(setCmd)
	applyDefaultFlags(useDefaultsCmd)
	applyDefaultFlags(resetEncryptCmd)
	applyDefaultFlags(profilesCmd)
	applyDefaultFlags(profileCmd)
	applyDefaultFlags(backupCmd)
	applyDefaultFlags(restoreCmd)
	applyDefaultFlags(dbMaintainCmd)

	// Add a lightweight `version` subcommand so users and CI can run
	// `confstore version`.
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(nil)
			if d == "" {
				d = "unknown"
			}
			fmt.Println(i18n.T("version.format", v, c, d))
		},
	}

	cmd.AddCommand(
		getCmd,
		showCmd,
		setCmd,
		useDefaultsCmd,
		resetEncryptCmd,
		profilesCmd,
		profileCmd,
		backupCmd,
		restoreCmd,
		dbMaintainCmd,
		versionCmd,
	)

	return cmd
}

// compositeVersion renders version, commit and build date into the single
// string shown by --version.
func compositeVersion() string {
	v, c, d := resolveBuildVersion(nil)
	composite := v
	if c != "" && c != "dev" {
		composite = composite + " (" + c + ")"
	}
	if d != "" {
		composite = composite + " built: " + d
	}
	return composite
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If `info` is nil, it reads build info from
// the runtime. This helper is separated to make unit testing straightforward.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault(version)
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	if info == nil {
		if infoLocal, found := debug.ReadBuildInfo(); found {
			info = infoLocal
		}
	}
	if info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	return resolvedVersion, resolvedCommit, resolvedDate
}
