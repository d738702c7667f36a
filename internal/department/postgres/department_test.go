package postgres_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	departmentDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/department"
	departmentPostgres "github.com/civicgrid/hr-management/internal/department/postgres"
)

func TestDepartmentPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Department Postgres Suite")
}

var _ = Describe("Department PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo *departmentPostgres.Repository
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error
		// SQLite in-memory stands in for Postgres in these specs.
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&departmentDatamodel.Department{})
		Expect(err).NotTo(HaveOccurred())

		repo = departmentPostgres.NewRepository(db)
		ctx = context.Background()
	})

	Describe("Create and GetByID", func() {
		It("persists a department with a generated id", func() {
			dept := &departmentDatamodel.Department{Name: "Sanitation", IsActive: true}

			err := repo.Create(ctx, dept)
			Expect(err).NotTo(HaveOccurred())
			Expect(dept.ID).NotTo(BeEmpty())

			loaded, err := repo.GetByID(ctx, dept.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).NotTo(BeNil())
			Expect(loaded.Name).To(Equal("Sanitation"))
		})

		It("returns nil for an unknown id", func() {
			loaded, err := repo.GetByID(ctx, "00000000-0000-0000-0000-00000000dead")
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(BeNil())
		})
	})

	Describe("GetByName", func() {
		It("finds a department by exact name", func() {
			Expect(repo.Create(ctx, &departmentDatamodel.Department{Name: "Revenue", IsActive: true})).To(Succeed())

			loaded, err := repo.GetByName(ctx, "Revenue")
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).NotTo(BeNil())

			missing, err := repo.GetByName(ctx, "Sewage")
			Expect(err).NotTo(HaveOccurred())
			Expect(missing).To(BeNil())
		})
	})

	Describe("GetAll", func() {
		It("orders departments by name", func() {
			Expect(repo.Create(ctx, &departmentDatamodel.Department{Name: "Revenue", IsActive: true})).To(Succeed())
			Expect(repo.Create(ctx, &departmentDatamodel.Department{Name: "Health", IsActive: true})).To(Succeed())

			departments, err := repo.GetAll(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(departments).To(HaveLen(2))
			Expect(departments[0].Name).To(Equal("Health"))
			Expect(departments[1].Name).To(Equal("Revenue"))
		})
	})

	Describe("Update", func() {
		It("saves state changes", func() {
			dept := &departmentDatamodel.Department{Name: "Health", IsActive: true}
			Expect(repo.Create(ctx, dept)).To(Succeed())

			dept.IsActive = false
			Expect(repo.Update(ctx, dept)).To(Succeed())

			loaded, err := repo.GetByID(ctx, dept.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.IsActive).To(BeFalse())
		})
	})
})
