package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"go-farm-ledger/internal/model"
	"go-farm-ledger/pkg/database"

	"github.com/joho/godotenv"
)

// Interactive bootstrap for the first admin account. Run once after the
// database is up, then log in through the API.
func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.User{}, &model.Privilege{}, &model.Role{})

	reader := bufio.NewReader(os.Stdin)

	username := prompt(reader, "Username")
	if username == "" {
		log.Fatal("❌ Username is required")
	}

	var existing model.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		log.Fatalf("❌ User %s already exists", username)
	}

	email := prompt(reader, "Email")
	password := prompt(reader, "Password (min 6 chars)")
	if len(password) < 6 {
		log.Fatal("❌ Password must be at least 6 characters")
	}

	admin := &model.User{
		Username: username,
		Email:    email,
		IsAdmin:  true,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword(password); err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	if err := db.Create(admin).Error; err != nil {
		log.Fatalf("❌ Failed to create admin user: %v", err)
	}

	log.Printf("✅ Admin user %s created", username)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Printf("%s: ", label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
