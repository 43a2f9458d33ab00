// Command seed loads development fixtures: an admin account, two
// caseworkers, their clients, and a handful of case notes. Existing
// usernames and client ids are left untouched, so reruns are safe.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/casewise/case-management-api/internal/core/domain"
	"github.com/casewise/case-management-api/internal/core/ports"
	"github.com/casewise/case-management-api/internal/infrastructure/config"
	mongodb "github.com/casewise/case-management-api/internal/infrastructure/db/mongo"
	"github.com/casewise/case-management-api/pkg/logger"
)

type seedUser struct {
	username   string
	password   string
	firstName  string
	lastName   string
	employeeID string
	department string
	superuser  bool
}

type seedClient struct {
	clientID   string
	firstName  string
	lastName   string
	caseworker string // username
}

type seedNote struct {
	clientID        string
	content         string
	interactionType domain.InteractionType
}

var seedUsers = []seedUser{
	{username: "admin", password: "admin123", firstName: "System", lastName: "Administrator", employeeID: "EMP-ADMIN", department: "IT", superuser: true},
	{username: "sarah.smith", password: "testpass123", firstName: "Sarah", lastName: "Smith", employeeID: "EMP-SARAHSMITH", department: "Community Services"},
	{username: "john.doe", password: "testpass123", firstName: "John", lastName: "Doe", employeeID: "EMP-JOHNDOE", department: "Community Services"},
}

var seedClients = []seedClient{
	{clientID: "CL-2024-001", firstName: "Jane", lastName: "Wilson", caseworker: "sarah.smith"},
	{clientID: "CL-2024-002", firstName: "Robert", lastName: "Brown", caseworker: "sarah.smith"},
	{clientID: "CL-2024-003", firstName: "Maria", lastName: "Garcia", caseworker: "john.doe"},
}

var seedNotes = []seedNote{
	{
		clientID:        "CL-2024-001",
		content:         "Initial assessment completed. Client is seeking assistance with housing application. Discussed available options and next steps.",
		interactionType: domain.InteractionInPerson,
	},
	{
		clientID:        "CL-2024-001",
		content:         "Follow-up phone call regarding housing application progress. Client has submitted required documents. Waiting for approval.",
		interactionType: domain.InteractionPhone,
	},
	{
		clientID:        "CL-2024-002",
		content:         "Home visit conducted. Assessed living conditions and discussed family support services. Client expressed interest in parenting classes.",
		interactionType: domain.InteractionInPerson,
	},
}

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	userRepo := mongodb.NewUserRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	noteRepo := mongodb.NewCaseNoteRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := clientRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("client indexes failed")
	}
	if err := noteRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("case note indexes failed")
	}

	now := time.Now().UTC()
	userIDs := make(map[string]string) // username -> id

	for _, su := range seedUsers {
		existing, err := userRepo.FindByUsername(ctx, su.username)
		if err == nil {
			userIDs[su.username] = existing.ID
			log.Info().Str("username", su.username).Msg("user exists, skipping")
			continue
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			log.Fatal().Err(err).Msg("user lookup failed")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("password hash failed")
		}
		user := &domain.User{
			ID:           uuid.NewString(),
			Username:     su.username,
			FirstName:    su.firstName,
			LastName:     su.lastName,
			Email:        su.username + "@example.com",
			PasswordHash: string(hash),
			EmployeeID:   su.employeeID,
			PhoneNumber:  "+1234567890",
			Department:   su.department,
			IsStaff:      su.superuser,
			IsSuperuser:  su.superuser,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, err := userRepo.Create(ctx, user); err != nil {
			log.Fatal().Err(err).Str("username", su.username).Msg("user create failed")
		}
		userIDs[su.username] = user.ID
		log.Info().Str("username", su.username).Msg("created user")
	}

	clientIDs := make(map[string]string) // human-readable id -> record id

	for _, sc := range seedClients {
		record := &domain.Client{
			ID:                 uuid.NewString(),
			ClientID:           sc.clientID,
			FirstName:          sc.firstName,
			LastName:           sc.lastName,
			AssignedCaseworker: userIDs[sc.caseworker],
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := clientRepo.Create(ctx, record); err != nil {
			// Unique index on client_id: an existing row means a rerun.
			existing, _, ferr := clientRepo.Search(ctx, ports.ClientQuery{Text: sc.clientID, Limit: 1})
			if ferr != nil || len(existing) == 0 {
				log.Fatal().Err(err).Str("client_id", sc.clientID).Msg("client create failed")
			}
			clientIDs[sc.clientID] = existing[0].ID
			log.Info().Str("client_id", sc.clientID).Msg("client exists, skipping")
			continue
		}
		clientIDs[sc.clientID] = record.ID
		log.Info().Str("client_id", sc.clientID).Msg("created client")
	}

	for _, sn := range seedNotes {
		recordID, ok := clientIDs[sn.clientID]
		if !ok {
			continue
		}
		target := seedClientByID(sn.clientID)
		authorID := userIDs[target.caseworker]
		author := seedUserByUsername(target.caseworker)
		note := &domain.CaseNote{
			ID:              uuid.NewString(),
			ClientID:        recordID,
			Content:         sn.content,
			InteractionType: sn.interactionType,
			CreatedBy:       authorID,
			CreatedByName:   author.firstName + " " + author.lastName,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := noteRepo.Insert(ctx, note); err != nil {
			log.Fatal().Err(err).Str("client_id", sn.clientID).Msg("case note create failed")
		}
		log.Info().Str("client_id", sn.clientID).Msg("created case note")
	}

	log.Info().Msg("seeding complete")
}

func seedClientByID(clientID string) seedClient {
	for _, sc := range seedClients {
		if sc.clientID == clientID {
			return sc
		}
	}
	return seedClient{}
}

func seedUserByUsername(username string) seedUser {
	for _, su := range seedUsers {
		if su.username == username {
			return su
		}
	}
	return seedUser{}
}
