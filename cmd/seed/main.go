// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the dev user (dev@example.com) already exists.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"spacehub/backend/internal/config"
	"spacehub/backend/internal/db"
	memberdomain "spacehub/backend/internal/membership/domain"
	membershiprepo "spacehub/backend/internal/membership/repository"
	orgdomain "spacehub/backend/internal/organization/domain"
	orgrepo "spacehub/backend/internal/organization/repository"
	"spacehub/backend/internal/security"
	spacedomain "spacehub/backend/internal/space/domain"
	spacerepo "spacehub/backend/internal/space/repository"
	taskdomain "spacehub/backend/internal/task/domain"
	taskrepo "spacehub/backend/internal/task/repository"
	userdomain "spacehub/backend/internal/user/domain"
	userrepo "spacehub/backend/internal/user/repository"
)

const (
	devAdminEmail  = "dev@example.com"
	devMemberEmail = "member@example.com"
	devPassword    = "password123"

	devOrgID        = "dev-org-001"
	devAdminID      = "dev-user-001"
	devMemberID     = "dev-user-002"
	devSpaceID      = "dev-space-001"
	devMembershipID = "dev-membership-001"
	devTaskID       = "dev-task-001"
	devTask2ID      = "dev-task-002"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	users := userrepo.NewPostgresRepository(conn)
	orgs := orgrepo.NewPostgresRepository(conn)
	spaces := spacerepo.NewPostgresRepository(conn)
	memberships := membershiprepo.NewPostgresRepository(conn)
	tasks := taskrepo.NewPostgresRepository(conn)

	ctx := context.Background()

	_, found, err := users.GetByEmail(ctx, devAdminEmail)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if found {
		log.Println("Seed already applied (dev@example.com exists). Skipping.")
		os.Exit(0)
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	passwordHash, err := hasher.Hash([]byte(devPassword))
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	now := time.Now().UTC()

	if err := orgs.Create(ctx, &orgdomain.Org{
		ID:        devOrgID,
		Name:      "Acme Dev",
		CreatedAt: now,
	}); err != nil {
		log.Fatalf("create org: %v", err)
	}

	if err := users.Create(ctx, &userdomain.User{
		ID:           devAdminID,
		Email:        devAdminEmail,
		Name:         "Dev Admin",
		PasswordHash: passwordHash,
		Role:         userdomain.RoleAdmin,
		OrgID:        devOrgID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		log.Fatalf("create admin user: %v", err)
	}

	if err := users.Create(ctx, &userdomain.User{
		ID:           devMemberID,
		Email:        devMemberEmail,
		Name:         "Member User",
		PasswordHash: passwordHash,
		Role:         userdomain.RoleUser,
		OrgID:        devOrgID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		log.Fatalf("create member user: %v", err)
	}

	if err := spaces.Create(ctx, &spacedomain.Space{
		ID:          devSpaceID,
		Name:        "Getting Started",
		Description: "Sample space seeded for local development",
		OrgID:       devOrgID,
		CreatedBy:   devAdminID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		log.Fatalf("create space: %v", err)
	}

	if err := memberships.Create(ctx, &memberdomain.Membership{
		ID:          devMembershipID,
		SpaceID:     devSpaceID,
		UserID:      devMemberID,
		Role:        memberdomain.RoleViewer,
		Permissions: map[string]bool{"read": true},
		CreatedAt:   now,
	}); err != nil {
		log.Fatalf("create membership: %v", err)
	}

	seedTasks := []*taskdomain.Task{
		{
			ID:          devTaskID,
			SpaceID:     devSpaceID,
			Title:       "Invite your team",
			Description: "Add teammates as space members",
			Status:      taskdomain.StatusTodo,
			CreatedBy:   devAdminID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          devTask2ID,
			SpaceID:     devSpaceID,
			Title:       "Review the sample space",
			Description: "",
			Status:      taskdomain.StatusInProgress,
			AssigneeID:  devMemberID,
			CreatedBy:   devAdminID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
	for _, t := range seedTasks {
		if err := tasks.Create(ctx, t); err != nil {
			log.Fatalf("create task %s: %v", t.ID, err)
		}
	}

	log.Println("Seed completed successfully.")
	fmt.Printf("Admin login: %s / %s\n", devAdminEmail, devPassword)
	fmt.Printf("Member login: %s / %s\n", devMemberEmail, devPassword)
}
