package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/internal/repository"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage catalog users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user with a bcrypt password hash",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")
		roleName, _ := cmd.Flags().GetString("role")
		password, _ := cmd.Flags().GetString("password")

		user, err := newUser(email, name, models.UserRole(strings.ToUpper(roleName)), password)
		if err != nil {
			return err
		}

		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		err = runWithTimeout(cmd.Context(), func(ctx context.Context) error {
			return repository.NewUserRepo(e.db).Create(ctx, user)
		})
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}

		fmt.Printf("Created user %s\n", user.Email)
		fmt.Printf("ID:   %s\n", user.ID)
		fmt.Printf("Role: %s\n", user.Role)
		return nil
	},
}

// newUser builds a user record, hashing password with bcrypt
func newUser(email, name string, role models.UserRole, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email %q", email)
	}
	if !models.ValidRoles[role] {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if name = strings.TrimSpace(name); name != "" {
		user.Name = &name
	}
	return user, nil
}
