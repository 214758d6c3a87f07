package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pet-catalog-api/internal/auth"
	"github.com/pet-catalog-api/internal/config"
	"github.com/pet-catalog-api/internal/database"
	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/internal/repository"
	"github.com/pet-catalog-api/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// env bundles what every database-backed command needs. The caller must defer env.Close().
type env struct {
	cfg *config.Config
	db  *database.DB
	log zerolog.Logger
}

func (e *env) Close() {
	e.db.Close()
}

func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("loading config: %w", err)
	}
	return cfg, logger.New(cfg.Log.Level, cfg.Log.Format), nil
}

func newEnv() (*env, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return &env{cfg: cfg, db: db, log: log}, nil
}

var rootCmd = &cobra.Command{
	Use:          "catalogctl",
	Short:        "Operator tool for the pet catalog",
	SilenceUsage: true,
}

// migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()
		return e.db.RunMigrations(e.cfg.Database.MigrationsPath)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the last migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()
		return e.db.MigrateDown(e.cfg.Database.MigrationsPath)
	},
}

var migrateGotoCmd = &cobra.Command{
	Use:   "goto <version>",
	Short: "Migrate up or down to a specific version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}

		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()
		return e.db.MigrateToVersion(e.cfg.Database.MigrationsPath, uint(version))
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the applied schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		version, dirty, err := e.db.MigrationVersion(e.cfg.Database.MigrationsPath)
		if err != nil {
			return err
		}
		fmt.Printf("Version: %d\n", version)
		fmt.Printf("Dirty:   %t\n", dirty)
		return nil
	},
}

// token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token for local use",
	Long: "Mint an access token signed with JWT_SECRET. Pass --user and --role, " +
		"or --email to take both from an existing user.",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		roleName, _ := cmd.Flags().GetString("role")
		email, _ := cmd.Flags().GetString("email")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}

		role := models.UserRole(strings.ToUpper(roleName))
		if email != "" {
			db, err := database.New(&cfg.Database, log)
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			defer db.Close()

			var user *models.User
			err = runWithTimeout(cmd.Context(), func(ctx context.Context) error {
				var err error
				user, err = repository.NewUserRepo(db).GetByEmail(ctx, normalizeEmail(email))
				return err
			})
			if err != nil {
				return fmt.Errorf("looking up user: %w", err)
			}
			if user == nil {
				return fmt.Errorf("no user with email %s", email)
			}
			userID = user.ID
			if !cmd.Flags().Changed("role") {
				role = user.Role
			}
		}
		if userID == "" {
			return fmt.Errorf("--user or --email is required")
		}

		token, err := auth.Mint(cfg.Auth, time.Now(), userID, role, ttl)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func init() {
	// migrate subcommands
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateGotoCmd)
	migrateCmd.AddCommand(migrateVersionCmd)

	tokenCmd.Flags().String("user", "", "User ID to put in the subject claim")
	tokenCmd.Flags().String("role", string(models.RoleUser), "Role claim (ADMIN, EDITOR or USER)")
	tokenCmd.Flags().String("email", "", "Look the user up by email instead of --user")
	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime (defaults to JWT_TTL)")

	userCreateCmd.Flags().String("email", "", "Email address (required)")
	userCreateCmd.Flags().String("name", "", "Display name")
	userCreateCmd.Flags().String("role", string(models.RoleUser), "Role (ADMIN, EDITOR or USER)")
	userCreateCmd.Flags().String("password", "", "Password (required)")
	userCreateCmd.MarkFlagRequired("email")
	userCreateCmd.MarkFlagRequired("password")
	userCmd.AddCommand(userCreateCmd)

	seedCmd.Flags().String("admin-email", "admin@legalpets.com", "Email of the seeded admin")
	seedCmd.Flags().String("admin-password", "admin123", "Password of the seeded admin")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(seedCmd)
}

// runWithTimeout bounds the database work of one command
func runWithTimeout(parent context.Context, fn func(ctx context.Context) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, time.Minute)
	defer cancel()
	return fn(ctx)
}
