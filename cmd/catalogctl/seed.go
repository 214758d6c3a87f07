package main

import (
	"context"
	"fmt"

	"github.com/pet-catalog-api/internal/cache"
	"github.com/pet-catalog-api/internal/models"
	"github.com/pet-catalog-api/internal/repository"
	"github.com/pet-catalog-api/internal/service"
	"github.com/spf13/cobra"
)

var seedTags = []string{"Dog", "Cat", "Bird", "Reptile"}

var seedPet = models.CreatePetInput{
	Slug:           "siberian-husky",
	CommonName:     "Siberian Husky",
	ScientificName: strPtr("Canis lupus familiaris"),
	ShortIntro: strPtr("The Siberian Husky is a medium-sized working sled dog breed known for its " +
		"endurance and friendly temperament."),
	Background: strPtr("The Siberian Husky originated in Northeast Asia where they were bred by the " +
		"Chukchi people of Siberia. They were used as sled dogs and companions, capable of traveling " +
		"long distances in harsh conditions."),
	History: strPtr("Siberian Huskies were brought to Alaska in 1908 for sled-dog racing. They gained " +
		"fame during the 1925 serum run to Nome, where teams of sled dogs delivered diphtheria " +
		"antitoxin across Alaska."),
	Diet: strPtr("Siberian Huskies require a high-quality diet rich in protein. They typically need " +
		"2-3 cups of dry dog food per day, divided into two meals. Active dogs may require more calories."),
	OwnershipGuide: strPtr("Siberian Huskies are energetic and require daily exercise. They need a secure " +
		"yard as they are known escape artists. Regular grooming is essential, especially during " +
		"shedding season. They are social dogs and do not do well when left alone for long periods."),
	Status: models.PetStatusPublished,
	Tags:   []string{"Dog"},
	Classifications: []models.ClassificationInput{
		{Type: "Species", Value: "Canis lupus familiaris"},
		{Type: "Breed", Value: "Siberian Husky"},
		{Type: "LegalStatus", Value: "Legal in most jurisdictions"},
	},
}

// seed command. Every step skips records that already exist, so it can be rerun.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load an admin user, starter tags and a sample pet",
	RunE: func(cmd *cobra.Command, args []string) error {
		adminEmail, _ := cmd.Flags().GetString("admin-email")
		adminPassword, _ := cmd.Flags().GetString("admin-password")

		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		repos := repository.New(e.db)

		var tagCache service.TagCache = cache.Noop{}
		if e.cfg.Redis.Enabled() {
			redisCache := cache.NewRedisTagCache(cache.NewRedisClient(e.cfg.Redis), e.cfg.Redis.TagTTL, e.log)
			defer redisCache.Close()
			tagCache = redisCache
		}
		// seeding never uploads media, so no object store is needed
		services := service.NewServices(repos, e.cfg, nil, tagCache, e.log)

		return runWithTimeout(cmd.Context(), func(ctx context.Context) error {
			admin, err := seedAdmin(ctx, repos, adminEmail, adminPassword)
			if err != nil {
				return err
			}
			if err := seedTagList(ctx, repos, tagCache); err != nil {
				return err
			}
			return seedSamplePet(ctx, repos, services, admin)
		})
	},
}

func seedAdmin(ctx context.Context, repos *repository.Repositories, email, password string) (*models.User, error) {
	existing, err := repos.User.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("looking up admin: %w", err)
	}
	if existing != nil {
		fmt.Printf("Admin user exists: %s\n", existing.Email)
		return existing, nil
	}

	admin, err := newUser(email, "Admin User", models.RoleAdmin, password)
	if err != nil {
		return nil, err
	}
	if err := repos.User.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("creating admin: %w", err)
	}
	fmt.Printf("Created admin user: %s\n", admin.Email)
	return admin, nil
}

func seedTagList(ctx context.Context, repos *repository.Repositories, tagCache service.TagCache) error {
	err := repos.Tx.WithinTx(ctx, func(tx *repository.Repositories) error {
		for _, name := range seedTags {
			if _, err := tx.Tag.FindOrCreate(ctx, name, service.Slugify(name)); err != nil {
				return fmt.Errorf("creating tag %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := tagCache.InvalidateTags(ctx); err != nil {
		fmt.Printf("Warning: tag cache not invalidated: %v\n", err)
	}
	fmt.Printf("Tags: %v\n", seedTags)
	return nil
}

func seedSamplePet(ctx context.Context, repos *repository.Repositories, services *service.Services, admin *models.User) error {
	existing, err := repos.Pet.GetBySlug(ctx, seedPet.Slug)
	if err != nil {
		return fmt.Errorf("looking up sample pet: %w", err)
	}
	if existing != nil {
		fmt.Printf("Sample pet exists: %s\n", existing.CommonName)
		return nil
	}

	in := seedPet
	pet, err := services.Catalog.Create(ctx, &in)
	if err != nil {
		return fmt.Errorf("creating sample pet: %w", err)
	}
	services.Admin.Record(ctx, models.AuditLog{
		UserID:     &admin.ID,
		Action:     models.AuditPetCreated,
		EntityType: "pet",
		EntityID:   pet.ID,
		Metadata:   map[string]any{"slug": pet.Slug, "source": "seed"},
	})
	fmt.Printf("Created sample pet: %s\n", pet.CommonName)
	return nil
}

func strPtr(s string) *string {
	return &s
}
