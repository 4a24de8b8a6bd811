// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.
package cli

import (
	"fmt"
	"os"
	"strings"

	log "github.com/charmbracelet/log"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quillbox/confstore/internal/i18n"
	"github.com/quillbox/confstore/internal/model"
)

// getCmd reads a single setting of the active profile.
var getCmd = &cobra.Command{
	Use:     "get <name>",
	Short:   "Print one setting of the active profile",
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		fallback, _ := cmd.Flags().GetString("default")
		fmt.Println(settings.GetConfig(args[0], fallback))
	},
}

// showCmd prints the full resolved settings object as YAML.
var showCmd = &cobra.Command{
	Use:     "show",
	Short:   "Print all resolved settings of the active profile",
	Args:    cobra.NoArgs,
	PreRunE: setupDefaultServices,
	RunE:    runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	object := settings.GetObject()
	data, err := yaml.Marshal(object)
	if err != nil {
		return fmt.Errorf("%s", i18n.T("object.error_marshal", err))
	}
	fmt.Print(string(data))
	return nil
}

// setCmd persists one batch of name=value assignments.
var setCmd = &cobra.Command{
	Use:   "set <name=value> [name=value ...]",
	Short: "Save settings in the active profile",
	Long: `Saves one or more settings as a single batch. All entries of the
batch are persisted before a single change notification fires.

The encryption password is never stored in clear text. Pass the bare
name 'encryptPass' (without a value) to be prompted without echoing:

  confstore set encrypt=1 encryptPass`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		batch, err := parseAssignments(args)
		if err != nil {
			log.Fatalf("%v", err)
		}
		if err := settings.SaveObjects(batch, appConfig.Profile); err != nil {
			log.Fatalf("%s", i18n.T("set.error_save", err))
		}
		fmt.Println(i18n.T("set.success", len(batch)))
	},
}

// parseAssignments turns name=value arguments into a save batch. The bare
// name 'encryptPass' triggers an interactive no-echo prompt.
func parseAssignments(args []string) (map[string]string, error) {
	batch := make(map[string]string, len(args))
	for _, arg := range args {
		if arg == model.NameEncryptPass {
			pass, err := promptPassword()
			if err != nil {
				return nil, fmt.Errorf("%s", i18n.T("set.error_read_password", err))
			}
			batch[model.NameEncryptPass] = pass
			continue
		}
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%s", i18n.T("set.error_parse_pair", arg))
		}
		batch[name] = value
	}
	return batch, nil
}

func promptPassword() (string, error) {
	fmt.Print(i18n.T("set.password_prompt"))
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pass), nil
}

// useDefaultsCmd toggles inheritance of the shared default settings.
var useDefaultsCmd = &cobra.Command{
	Use:     "use-defaults <on|off>",
	Short:   "Toggle inheritance of the shared default settings",
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		var value string
		switch args[0] {
		case "on":
			value = "1"
		case "off":
			value = "0"
		default:
			log.Fatalf("%s", i18n.T("use_defaults.invalid_mode", args[0]))
		}

		batch := map[string]string{model.NameUseDefaultConfigs: value}
		if err := settings.SaveObjects(batch, appConfig.Profile); err != nil {
			log.Fatalf("%s", i18n.T("use_defaults.error_save", err))
		}
		if value == "1" {
			fmt.Println(i18n.T("use_defaults.enabled", appConfig.Profile))
		} else {
			fmt.Println(i18n.T("use_defaults.disabled", appConfig.Profile))
		}
	},
}

// resetEncryptCmd discards the preserved encryption backup.
var resetEncryptCmd = &cobra.Command{
	Use:   "reset-encrypt",
	Short: "Discard the preserved encryption backup",
	Long: `Clears the snapshot of pre-change encryption parameters kept for
the active profile. Use this after confirming that all content has
been re-encrypted with the current parameters.`,
	Args:    cobra.NoArgs,
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		if err := settings.ResetEncrypt(); err != nil {
			log.Fatalf("%s", i18n.T("reset_encrypt.error", err))
		}
		fmt.Println(i18n.T("reset_encrypt.success"))
	},
}
