// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	log "github.com/charmbracelet/log"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var debugCmd = &cobra.Command{
	Use:     "debug",
	Short:   "Dump debug information about config, env, flags and settings",
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("--- CONFSTORE DEBUG ---")
		// Config file used
		used := viper.ConfigFileUsed()
		fmt.Printf("Config file used: %s\n", used)

		fmt.Printf("Database: %s (%s)\n", appConfig.Database.Type, appConfig.Database.DSN)
		fmt.Printf("Profile: %s (default: %s)\n", appConfig.Profile, appConfig.DefaultProfile)

		// Viper settings
		allSettings := viper.AllSettings()
		b, err := json.MarshalIndent(allSettings, "", "  ")
		if err != nil {
			log.Errorf("could not marshal viper settings: %v", err)
		} else {
			fmt.Println("-- viper.AllSettings() --")
			fmt.Println(string(b))
		}

		// Flags
		fmt.Println("-- flags --")
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			fmt.Printf("%s = %s\n", f.Name, f.Value.String())
		})

		// Environment variables of interest
		fmt.Println("-- environment (CONFSTORE_*, CONFIG*) --")
		for _, e := range os.Environ() {
			if strings.HasPrefix(e, "CONFSTORE") || strings.HasPrefix(e, "CONFIG") {
				fmt.Println(e)
			}
		}

		fmt.Printf("PWD=%s\n", os.Getenv("PWD"))
		fmt.Println("--- END DEBUG ---")
	},
}
