package main

import (
	"os"
	"time"

	"github.com/shkhalid/maxerp/internal/balance"
	"github.com/shkhalid/maxerp/internal/domain"
	"github.com/shkhalid/maxerp/internal/leave"
	"github.com/shkhalid/maxerp/internal/shared/connection"
	"github.com/shkhalid/maxerp/internal/user"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedUser struct {
	Name  string
	Email string
	Role  domain.Role
}

var demoUsers = []seedUser{
	{Name: "Alice Manager", Email: "manager@example.com", Role: domain.RoleManager},
	{Name: "Bob Employee", Email: "employee@example.com", Role: domain.RoleEmployee},
	{Name: "Carol Employee", Email: "carol@example.com", Role: domain.RoleEmployee},
}

var defaultEntitlements = map[string]int{
	leave.TypeVacation: 20,
	leave.TypeSick:     10,
	leave.TypePersonal: 5,
}

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	db, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}

	if err := seed(db); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
	logger.Info("seed complete", zap.Int("users", len(demoUsers)))
}

func seed(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	year := time.Now().Year()

	for _, su := range demoUsers {
		u := user.User{
			Name:     su.Name,
			Email:    su.Email,
			Password: string(hash),
			Role:     su.Role,
		}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).Create(&u).Error; err != nil {
			return err
		}

		// Re-read so the ID is set even when the user already existed.
		if err := db.Where("email = ?", su.Email).First(&u).Error; err != nil {
			return err
		}

		for leaveType, total := range defaultEntitlements {
			b := balance.LeaveBalance{
				UserID:        u.ID,
				LeaveType:     leaveType,
				Year:          year,
				TotalDays:     total,
				UsedDays:      0,
				RemainingDays: total,
			}
			if err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "leave_type"}, {Name: "year"}},
				DoNothing: true,
			}).Create(&b).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
