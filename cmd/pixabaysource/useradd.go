package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moddengine/pixabay-assetsource/internal/config"
	"github.com/moddengine/pixabay-assetsource/store"
)

var useraddCmd = &cobra.Command{
	Use:   "useradd user password",
	Short: "Create or replace a basic auth user for serve",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := cmd.Flags().GetInt("level")
		if err != nil {
			return err
		}
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		st, err := store.Open(cfg.Database, cfg.Cache.TTL, nil)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.AddUser(args[0], args[1], level); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user %s saved\n", args[0])
		return nil
	},
}

func init() {
	useraddCmd.Flags().Int("level", 1, "access level")
	rootCmd.AddCommand(useraddCmd)
}
