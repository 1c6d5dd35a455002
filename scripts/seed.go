package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"pumpadmin/auth"
	"pumpadmin/config"
	"pumpadmin/db"
	"pumpadmin/models"
	"pumpadmin/repo"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	cfg := config.Load()
	cfg.Validate()

	// Initialize Firestore
	ctx := context.Background()
	store, err := db.NewFirestoreDB(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firestore: %v", err)
	}
	defer store.Close()

	log.Println("🌱 Starting database seeding...")

	adminID, err := seedAdmin(ctx, store)
	if err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	if err := seedTeams(ctx, store, adminID); err != nil {
		log.Fatalf("Failed to seed teams: %v", err)
	}

	if err := seedPumps(ctx, store, adminID); err != nil {
		log.Fatalf("Failed to seed petrol pumps: %v", err)
	}

	log.Println("✅ Database seeding completed successfully!")
}

func seedAdmin(ctx context.Context, store *db.FirestoreDB) (string, error) {
	users := repo.NewUsers(store)

	admin := models.User{
		FirstName:          "Dashboard",
		LastName:           "Admin",
		Mobile:             "+919000000001",
		Email:              "admin@pumpadmin.dev",
		UserType:           models.UserTypeAdmin,
		TeamMemberStatus:   models.MemberActive,
		PreferredCompanies: []models.Company{models.CompanyHPCL, models.CompanyBPCL, models.CompanyIOCL},
	}

	created, err := users.Create(ctx, admin, "seed")
	if err != nil {
		return "", fmt.Errorf("failed to create admin: %w", err)
	}

	hash, err := auth.HashPassword("ChangeMe123")
	if err != nil {
		return "", fmt.Errorf("failed to hash admin password: %w", err)
	}
	if err := store.StorePasswordHash(ctx, created.UserID, hash); err != nil {
		return "", fmt.Errorf("failed to store admin password: %w", err)
	}

	log.Printf("  ✓ Created admin user: %s", created.Mobile)
	return created.UserID, nil
}

func seedTeams(ctx context.Context, store *db.FirestoreDB, actor string) error {
	teams := repo.NewTeams(store)

	samples := []models.Team{
		{
			Name:          "North Zone Surveyors",
			TeamCode:      "NZS001",
			Owner:         "Rakesh Sharma",
			ActiveMembers: 4,
			MemberCount:   6,
			Stats:         models.TeamStats{Uploads: 120, DistanceKm: 842.5, Visits: 96, FuelLitres: 310.2},
		},
		{
			Name:          "Coastal Field Team",
			TeamCode:      "CFT002",
			Owner:         "Anita Desai",
			ActiveMembers: 3,
			MemberCount:   3,
			Stats:         models.TeamStats{Uploads: 58, DistanceKm: 412.0, Visits: 40, FuelLitres: 150.7},
		},
	}

	for _, team := range samples {
		created, err := teams.Create(ctx, team, actor)
		if err != nil {
			return fmt.Errorf("failed to create team %s: %w", team.TeamCode, err)
		}
		log.Printf("  ✓ Created team: %s (%s)", created.Name, created.TeamCode)
	}

	return nil
}

func seedPumps(ctx context.Context, store *db.FirestoreDB, actor string) error {
	pumps := repo.NewPumps(store)

	samples := []models.PetrolPump{
		{
			CustomerName:   "Shree Balaji Fuels",
			DealerName:     "R K Gupta",
			Company:        models.CompanyHPCL,
			Zone:           "North",
			SalesArea:      "Delhi Retail SA",
			RegionalOffice: "Delhi RO",
			District:       "New Delhi",
			SapCode:        "41052736",
			AddressLine1:   "NH-44, Azadpur",
			Pincode:        "110033",
			Contact:        "+919811022033",
			Location:       models.GeoPoint{Latitude: 28.7077, Longitude: 77.1756},
			Verified:       true,
			Active:         true,
		},
		{
			CustomerName:   "Sagar Highway Services",
			DealerName:     "P Naidu",
			Company:        models.CompanyIOCL,
			Zone:           "South",
			SalesArea:      "Chennai Retail SA",
			RegionalOffice: "Chennai RO",
			District:       "Kanchipuram",
			SapCode:        "52218401",
			AddressLine1:   "GST Road, Chengalpattu",
			Pincode:        "603002",
			Contact:        "+919444155266",
			Location:       models.GeoPoint{Latitude: 12.6921, Longitude: 79.9776},
			Verified:       true,
			Active:         true,
		},
		{
			CustomerName:   "Maa Sharda Filling Station",
			DealerName:     "S Verma",
			Company:        models.CompanyBPCL,
			Zone:           "Central",
			SalesArea:      "Bhopal Retail SA",
			RegionalOffice: "Bhopal RO",
			District:       "Sehore",
			SapCode:        "60917433",
			AddressLine1:   "Indore Road, Ashta",
			Pincode:        "466116",
			Contact:        "+919826077445",
			Location:       models.GeoPoint{Latitude: 23.0175, Longitude: 76.7221},
			Verified:       false,
			Active:         true,
		},
	}

	for _, pump := range samples {
		created, err := pumps.Create(ctx, pump, actor)
		if err != nil {
			return fmt.Errorf("failed to create pump %s: %w", pump.SapCode, err)
		}
		log.Printf("  ✓ Created pump: %s (%s)", created.CustomerName, created.SapCode)
	}

	return nil
}
