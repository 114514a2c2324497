package main

import (
	"fmt"
	"strings"
	"time"

	"brigade/internal/api"

	"github.com/spf13/cobra"
)

// stationsCmd prints every station in scan order
var stationsCmd = &cobra.Command{
	Use:     "stations",
	Short:   "List stations with their dishes and stock",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := Cfg.Catalog()
		if err != nil {
			return err
		}
		manager, err := Cfg.BuildKitchen(catalog)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, s := range manager.Stations() {
			headingColor.Fprintf(out, "%d. %s\n", i+1, s.Name())
			var dishes []string
			for _, d := range s.Dishes() {
				dishes = append(dishes, d.Name())
			}
			fmt.Fprintf(out, "   dishes: %s\n", strings.Join(dishes, ", "))
			for _, ing := range s.Ingredients() {
				fmt.Fprintf(out, "   %s\n", ing)
			}
		}
		return nil
	},
}

// tokenCmd mints a bearer token for the API's write routes
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, err := cmd.Flags().GetString("subject")
		if err != nil {
			return fmt.Errorf("failed to get subject flag: %w", err)
		}
		ttl, err := cmd.Flags().GetDuration("ttl")
		if err != nil {
			return fmt.Errorf("failed to get ttl flag: %w", err)
		}
		token, err := api.IssueToken(Cfg.Auth.JWTSecret, subject, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(stationsCmd)
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("subject", "chef", "token subject")
	tokenCmd.Flags().Duration("ttl", 12*time.Hour, "token lifetime")
}
