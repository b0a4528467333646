package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memohai/ssmcontacts/internal/contacts"
	"github.com/memohai/ssmcontacts/internal/logger"
	"github.com/memohai/ssmcontacts/internal/seed"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Work with contact fixture files",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <file>",
		Short: "Validate a fixture by replaying it into a scratch backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := provideConfig(configFile(configPath))
			if err != nil {
				return err
			}
			f, err := seed.Load(args[0])
			if err != nil {
				return err
			}
			accountID, region := seedScope(cfg, f)
			stats, err := seed.Apply(contacts.NewBackend(logger.Discard(), accountID, region), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d contacts, %d channels, %s/%s)\n",
				args[0], stats.Contacts, stats.Channels, accountID, region)
			return nil
		},
	})
	return cmd
}
