package main

import (
	"fmt"

	"brigade/internal/database"
	"brigade/internal/menu"
	"brigade/internal/models"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// processCmd queues the requested dishes and runs one batch pass
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Queue dishes and run one batch pass over every station",
	Long: `Queue every --order (repeatable) with the requested dietary adjustments,
run one batch pass and print the kitchen report, the dishes left in the queue and
the remaining backup inventory.`,
	Example: `  brigade process --order "Chicken Plate" --order "Pecan Pie" --nut-free`,
	RunE:    runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	menuFile, err := cmd.Flags().GetString("menu")
	if err != nil {
		return fmt.Errorf("failed to get menu flag: %w", err)
	}
	if menuFile != "" {
		Cfg.MenuFile = menuFile
	}
	orders, err := cmd.Flags().GetStringArray("order")
	if err != nil {
		return fmt.Errorf("failed to get order flag: %w", err)
	}
	if len(orders) == 0 {
		return fmt.Errorf("at least one --order is required")
	}
	req, err := dietaryRequest(cmd)
	if err != nil {
		return err
	}

	catalog, err := Cfg.Catalog()
	if err != nil {
		return err
	}
	manager, err := Cfg.BuildKitchen(catalog)
	if err != nil {
		return err
	}

	for _, name := range orders {
		dish, err := catalog.Dish(name)
		if err != nil {
			return fmt.Errorf("cannot order %q: %w (menu: %v)", name, err, catalog.Names())
		}
		manager.AddDishToQueueWithRequest(dish, req)
	}

	out := cmd.OutOrStdout()
	manager.SetReportWriter(newReportWriter(out))
	summary := manager.ProcessAllDishes()

	fmt.Fprintln(out)
	headingColor.Fprintf(out, "Prepared %d, requeued %d\n", len(summary.Prepared), len(summary.Requeued))
	if len(summary.Requeued) > 0 {
		fmt.Fprintln(out, "Remaining queue:")
		manager.DisplayDishQueue(out)
	}
	fmt.Fprintln(out, "Backup inventory:")
	for _, ing := range manager.BackupIngredients() {
		fmt.Fprintf(out, "  %s\n", ing)
	}

	save, err := cmd.Flags().GetBool("save")
	if err != nil {
		return fmt.Errorf("failed to get save flag: %w", err)
	}
	if save {
		if Cfg.Database.Dialect == "" {
			return database.ErrNoStore
		}
		store, err := database.Open(Cfg.Database.Dialect, Cfg.Database.URL)
		if err != nil {
			return err
		}
		defer store.Close()
		snap, err := store.SaveKitchen(manager, "cli")
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(out, "Saved snapshot %d\n", snap.ID)
	}
	return nil
}

func dietaryRequest(cmd *cobra.Command) (models.DietaryRequest, error) {
	var req models.DietaryRequest
	flags := []struct {
		name string
		dst  *bool
	}{
		{"vegetarian", &req.Vegetarian},
		{"vegan", &req.Vegan},
		{"gluten-free", &req.GlutenFree},
		{"nut-free", &req.NutFree},
		{"low-sodium", &req.LowSodium},
		{"low-sugar", &req.LowSugar},
	}
	for _, f := range flags {
		v, err := cmd.Flags().GetBool(f.name)
		if err != nil {
			return req, fmt.Errorf("failed to get %s flag: %w", f.name, err)
		}
		*f.dst = v
	}
	return req, nil
}

// menuCmd lists the dishes the kitchen can take orders for
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "List the dishes on the menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := Cfg.Catalog()
		if err != nil {
			return err
		}
		return printMenu(cmd, catalog)
	},
}

func printMenu(cmd *cobra.Command, catalog *menu.Catalog) error {
	out := cmd.OutOrStdout()
	for _, name := range catalog.Names() {
		dish, err := catalog.Dish(name)
		if err != nil {
			return err
		}
		kind := string(dish.Spec().Type)
		if kind == "" {
			kind = "DISH"
		}
		fmt.Fprintf(out, "%-12s %-20s %-10s %3d min %6.2f\n", kind, name, dish.Cuisine(), dish.PrepTime(), dish.Price())
	}
	return nil
}

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(menuCmd)

	processCmd.Flags().String("menu", "", "menu CSV file (overrides menu_file)")
	processCmd.Flags().StringArray("order", nil, "dish to order, repeatable")
	processCmd.Flags().Bool("vegetarian", false, "apply a vegetarian request to every order")
	processCmd.Flags().Bool("vegan", false, "apply a vegan request to every order")
	processCmd.Flags().Bool("gluten-free", false, "apply a gluten-free request to every order")
	processCmd.Flags().Bool("nut-free", false, "apply a nut-free request to every order")
	processCmd.Flags().Bool("low-sodium", false, "apply a low-sodium request to every order")
	processCmd.Flags().Bool("low-sugar", false, "apply a low-sugar request to every order")
	processCmd.Flags().Bool("save", false, "save a snapshot of the kitchen afterwards")
}
