package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"feriwala/admin"
	"feriwala/config"
	"feriwala/database"
	"feriwala/loader"
	"feriwala/model"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func openDB() (*sqlx.DB, error) {
	cfg := config.GetConfig()
	zap.S().Infow("Connecting to database...", "path", cfg.Database.Path)
	return database.Open(cfg.Database.Path)
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, config.GetConfig())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or show database migrations",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "up"
			if len(args) == 1 {
				action = args[0]
			}
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			switch action {
			case "up":
				if err := loader.InitDatabase(db); err != nil {
					return err
				}
			case "down":
				if err := database.MigrateDown(db); err != nil {
					return err
				}
			case "status":
			default:
				return fmt.Errorf("unknown migrate action %q", action)
			}
			v, err := database.MigrationVersion(db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
			return nil
		},
	}
	return cmd
}

func newAdminCmd() *cobra.Command {
	var email, password, role string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()
			if err := loader.InitDatabase(db); err != nil {
				return err
			}

			a, err := admin.Create(context.Background(), db, email, password, model.Role(role))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s %s (%s)\n", a.Role, a.Email, a.ID)
			return nil
		},
	}
	create.Flags().StringVar(&email, "email", "", "login email")
	create.Flags().StringVar(&password, "password", "", "login password")
	create.Flags().StringVar(&role, "role", string(model.RoleAdmin), "admin or superAdmin")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	cmd := &cobra.Command{Use: "admin", Short: "Manage admin accounts"}
	cmd.AddCommand(create)
	return cmd
}

func newCatalogCmd() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import products from CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()
			if err := loader.InitDatabase(db); err != nil {
				return err
			}
			n, err := loader.ImportProductsCSV(db, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d products\n", n)
			return nil
		},
	}
	cmd := &cobra.Command{Use: "catalog", Short: "Bulk catalog operations"}
	cmd.AddCommand(importCmd)
	return cmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load categories, sliders, products, admins and delivery charges from YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()
			if err := loader.InitDatabase(db); err != nil {
				return err
			}
			res, err := loader.LoadSeedFile(db, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d categories, %d sliders, %d products, %d admins\n",
				res.Categories, res.Sliders, res.Products, res.Admins)
			return nil
		},
	}
}
