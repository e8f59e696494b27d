// Package testutil wires integration tests to a throwaway Postgres
// database. Tests that need it skip unless TEST_DATABASE_URL is set, so
// the unit suite stays runnable without infrastructure.
package testutil

import (
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	bModel "growlog_backend/internals/features/cultivation/batches/model"
	gModel "growlog_backend/internals/features/cultivation/genetics/model"
	lModel "growlog_backend/internals/features/cultivation/locations/model"
	pModel "growlog_backend/internals/features/cultivation/plants/model"
	userModel "growlog_backend/internals/features/users/user/model"
)

var enumDDL = []string{
	`DO $$ BEGIN CREATE TYPE genetic_type_enum AS ENUM ('sativa','indica','hybrid'); EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`DO $$ BEGIN CREATE TYPE batch_status_enum AS ENUM ('active','completed','cancelled'); EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`DO $$ BEGIN CREATE TYPE location_type_enum AS ENUM ('room','tent','greenhouse','outdoor'); EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`DO $$ BEGIN CREATE TYPE plant_source_enum AS ENUM ('seed','clone','mother','tissue_culture'); EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`DO $$ BEGIN CREATE TYPE plant_stage_enum AS ENUM ('seedling','vegetative','flowering','drying','curing','harvested','destroyed'); EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`DO $$ BEGIN CREATE TYPE plant_sex_enum AS ENUM ('male','female','hermaphrodite','unknown'); EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`DO $$ BEGIN CREATE TYPE plant_health_enum AS ENUM ('healthy','sick','pest','recovering'); EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
}

// OpenTestDB connects to TEST_DATABASE_URL, ensures the schema exists and
// truncates every table so each test starts clean. Skips the test when the
// env var is unset.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("connect test database: %v", err)
	}

	for _, ddl := range enumDDL {
		if err := db.Exec(ddl).Error; err != nil {
			t.Fatalf("create enum type: %v", err)
		}
	}

	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&gModel.GeneticModel{},
		&lModel.LocationModel{},
		&bModel.BatchModel{},
		&pModel.PlantModel{},
	); err != nil {
		t.Fatalf("migrate test schema: %v", err)
	}

	if err := db.Exec(`TRUNCATE plants, batches, locations, genetics, users RESTART IDENTITY CASCADE`).Error; err != nil {
		t.Fatalf("truncate tables: %v", err)
	}

	return db
}

// SeedTestUser inserts one user and returns it, for created_by/owner FKs.
func SeedTestUser(t *testing.T, db *gorm.DB) *userModel.UserModel {
	t.Helper()

	u := &userModel.UserModel{
		UserName: "tester",
		Email:    "tester@example.com",
		Password: "irrelevant",
		IsActive: true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed test user: %v", err)
	}
	return u
}
