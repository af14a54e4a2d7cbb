package database

import (
	"fmt"
	"log"

	config "github.com/prasaja/job_portal/configs"
	"github.com/prasaja/job_portal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:            false,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.Application{},
		&models.PreSelectionTest{},
		&models.SkillAssessment{},
		&models.Question{},
		&models.Attempt{},
		&models.Certificate{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

// SeedDeveloper bootstraps the platform account that authors skill
// assessments. Companies and jobhunters register themselves.
func SeedDeveloper() {
	devEmail := config.Config("DEVELOPER_EMAIL")
	devPassword := config.Config("DEVELOPER_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", devEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for developer user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Developer user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(devPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash developer password: %v", err)
		return
	}

	devUser := models.User{
		FullName: config.Config("DEVELOPER_FULL_NAME"),
		Email:    devEmail,
		Password: string(hashedPassword),
		Role:     models.RoleDeveloper,
	}

	if err := DB.Create(&devUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed developer user: %v", err)
		return
	}

	log.Println("✅ Developer user seeded successfully")
}
