package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/internal/models"
	"github.com/Pincessis17/MerchFlow/internal/services"
	"github.com/Pincessis17/MerchFlow/pkg/config"
	"github.com/Pincessis17/MerchFlow/pkg/logger"
)

// createuser adds a user to an existing workspace from the command
// line, for bootstrapping and support work.
func main() {
	companyID := flag.Uint("company", 0, "workspace id to add the user to")
	name := flag.String("name", "", "display name")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "initial password, at least 6 characters")
	role := flag.String("role", models.UserRoleStaff, "role: staff, admin or accountant")
	flag.Parse()

	if *companyID == 0 || *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}
	if len(*password) < 6 {
		log.Fatal("password must be at least 6 characters")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	if err := database.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	db := database.GetDB()

	var company models.Company
	if err := db.First(&company, *companyID).Error; err != nil {
		log.Fatalf("Workspace %d not found", *companyID)
	}

	user, err := services.NewUserService().Create(*companyID, *name, *email, *password, *role)
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("Created user %d (%s) in workspace %q with role %s\n",
		user.ID, user.Email, company.Name, user.Role)
}
