// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.
package cli

import (
	"errors"
	"fmt"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/quillbox/confstore/internal/db"
	"github.com/quillbox/confstore/internal/i18n"
)

// profilesCmd lists the profiles visible from the active profile.
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the profiles visible from the active profile",
	Long: `Lists the selectable profiles. From the default profile this is the
default profile plus every registered profile that inherits the shared
settings. A profile that keeps its own settings sees only itself.`,
	Args:    cobra.NoArgs,
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		profiles, err := settings.GetProfiles()
		if err != nil {
			log.Fatalf("%s", i18n.T("profiles.error_list", err))
		}
		if len(profiles) == 0 {
			fmt.Println(i18n.T("profiles.none"))
			return
		}
		for _, p := range profiles {
			fmt.Println(p)
		}
	},
}

// profileCmd groups the profile management subcommands.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage profiles",
}

var profileCreateCmd = &cobra.Command{
	Use:     "create <name>",
	Short:   "Create a new profile",
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		name, err := settings.CreateProfile(args[0])
		if err != nil {
			if errors.Is(err, db.ErrDuplicate) {
				log.Fatalf("%s", i18n.T("profile.exists", args[0]))
			}
			log.Fatalf("%s", i18n.T("profile.error_create", err))
		}
		fmt.Println(i18n.T("profile.created", name))
	},
}

var profileRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Short:   "Remove a profile and all of its settings",
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		if err := settings.RemoveProfile(args[0]); err != nil {
			log.Fatalf("%s", i18n.T("profile.error_remove", err))
		}
		fmt.Println(i18n.T("profile.removed", args[0]))
	},
}

func init() {
	profileCmd.AddCommand(profileCreateCmd, profileRemoveCmd)
}
