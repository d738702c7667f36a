package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	departmentDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/department"
	roleDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/role"
	userDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/user"
	"github.com/civicgrid/hr-management/internal/role"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			fmt.Println("Clearing existing data...")
			for _, table := range []string{"role_audit_log", "user_roles", "attendance_records", "leave_requests", "users", "departments"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
		}

		seedDepartments(db)
		seedUsers(db, cfg.Security.BCryptCost)

		fmt.Println("Seeding complete.")
	},
}

func seedDepartments(db *gorm.DB) {
	departments := []departmentDatamodel.Department{
		{Name: "Sanitation", Description: "Waste management and street cleaning", IsActive: true},
		{Name: "Public Works", Description: "Roads, drainage and civil maintenance", IsActive: true},
		{Name: "Revenue", Description: "Property tax and trade licensing", IsActive: true},
		{Name: "Health", Description: "Public health and dispensaries", IsActive: true},
		{Name: "Administration", Description: "General administration and HR", IsActive: true},
	}

	for _, dept := range departments {
		var count int64
		db.Model(&departmentDatamodel.Department{}).Where("name = ?", dept.Name).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&dept).Error; err != nil {
			log.Fatalf("failed to seed department %s: %v", dept.Name, err)
		}
		fmt.Println("Seeded department:", dept.Name)
	}
}

func seedUsers(db *gorm.DB, bcryptCost int) {
	hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcryptCost)
	if err != nil {
		log.Fatalf("failed to hash seed password: %v", err)
	}

	admin := "Administration"
	health := "Health"
	sanitation := "Sanitation"
	joined := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)

	users := []struct {
		user userDatamodel.User
		role string
	}{
		{
			user: userDatamodel.User{
				Email:            "admin@city.gov",
				FullName:         "Asha Kulkarni",
				Department:       &admin,
				Designation:      ptr("System Administrator"),
				EmploymentStatus: "active",
				JoinDate:         &joined,
				IsActive:         true,
			},
			role: role.RoleAdmin.String(),
		},
		{
			user: userDatamodel.User{
				Email:            "hr.manager@city.gov",
				FullName:         "Vikram Shinde",
				Department:       &admin,
				Designation:      ptr("HR Manager"),
				EmploymentStatus: "active",
				JoinDate:         &joined,
				IsActive:         true,
			},
			role: role.RoleHRManager.String(),
		},
		{
			user: userDatamodel.User{
				Email:            "dept.head@city.gov",
				FullName:         "Meera Joshi",
				Department:       &health,
				Designation:      ptr("Medical Officer"),
				EmploymentStatus: "active",
				JoinDate:         &joined,
				IsActive:         true,
			},
			role: role.RoleDepartmentHead.String(),
		},
		{
			user: userDatamodel.User{
				Email:            "employee@city.gov",
				FullName:         "Ravi Patil",
				Department:       &sanitation,
				Designation:      ptr("Field Supervisor"),
				EmploymentStatus: "active",
				JoinDate:         &joined,
				IsActive:         true,
			},
			role: role.RoleEmployee.String(),
		},
	}

	for _, entry := range users {
		var existing userDatamodel.User
		err := db.Where("email = ?", entry.user.Email).First(&existing).Error
		if err == nil {
			fmt.Println("User already exists:", entry.user.Email)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("failed to check user %s: %v", entry.user.Email, err)
		}

		entry.user.PasswordHash = string(hash)
		if err := db.Create(&entry.user).Error; err != nil {
			log.Fatalf("failed to seed user %s: %v", entry.user.Email, err)
		}

		assignment := roleDatamodel.UserRole{
			UserID: entry.user.ID,
			Role:   entry.role,
		}
		if err := db.Create(&assignment).Error; err != nil {
			log.Fatalf("failed to assign role to %s: %v", entry.user.Email, err)
		}

		fmt.Printf("Seeded user %s with role %s\n", entry.user.Email, entry.role)
	}
}

func ptr(s string) *string {
	return &s
}
