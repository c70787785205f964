package models

import (
	"fmt"
	"log"
	"os"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GenerateModels migrates the schema for every entity and emits typed
// query helpers. Triggered by GENERATE_MODELS=true at startup; the
// process exits after generation instead of serving traffic.
func GenerateModels(db *gorm.DB) {
	// First, ensure the database is ready
	if err := db.Exec("SELECT 1").Error; err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	// Set up verbose logging for migration
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             0,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./generated",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})

	g.UseDB(db)

	// Specify models for which to generate code
	g.ApplyBasic(
		Blog{},
		Project{},
		Skill{},
		Profile{},
		Contact{},
	)

	fmt.Println("Starting database migration...")

	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
		Logger:                 newLogger,
	})

	if err := migrateDB.AutoMigrate(
		&Blog{},
		&Project{},
		&Skill{},
		&Profile{},
		&Contact{},
	); err != nil {
		fmt.Printf("Error during models migration: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Database migration completed successfully!")

	g.Execute()
	fmt.Println("Model generation complete!")
}
