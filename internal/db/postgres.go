package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/librisapp/library-backend/internal/logger"
	"github.com/librisapp/library-backend/internal/types"
	"github.com/librisapp/library-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "library", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

// AutoMigrateAll creates the four relations plus the structural constraints
// the lending rules rely on. The partial unique index is the storage-level
// guarantee that at most one open borrow record exists per book; the
// application-level pre-checks remain as defense in depth.
func AutoMigrateAll(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&types.Author{},
		&types.Book{},
		&types.Member{},
		&types.BorrowRecord{},
	); err != nil {
		return err
	}

	if err := gdb.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_borrow_record_open_book
		ON borrow_record (book_id)
		WHERE return_date IS NULL
	`).Error; err != nil {
		return fmt.Errorf("failed to create open-loan unique index: %w", err)
	}

	// SQLite (tests) has no ALTER TABLE ADD CONSTRAINT.
	if gdb.Dialector.Name() != "postgres" {
		return nil
	}
	if err := gdb.Exec(`
		DO $$ BEGIN
			ALTER TABLE "book"
			ADD CONSTRAINT "fk_book_author_id"
			FOREIGN KEY ("author_id") REFERENCES "author"("id")
			ON DELETE RESTRICT;
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$;
	`).Error; err != nil {
		return fmt.Errorf("failed to add fk_book_author_id: %w", err)
	}
	if err := gdb.Exec(`
		DO $$ BEGIN
			ALTER TABLE "borrow_record"
			ADD CONSTRAINT "fk_borrow_record_book_id"
			FOREIGN KEY ("book_id") REFERENCES "book"("id")
			ON DELETE CASCADE;
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$;
	`).Error; err != nil {
		return fmt.Errorf("failed to add fk_borrow_record_book_id: %w", err)
	}
	if err := gdb.Exec(`
		DO $$ BEGIN
			ALTER TABLE "borrow_record"
			ADD CONSTRAINT "fk_borrow_record_member_id"
			FOREIGN KEY ("member_id") REFERENCES "member"("id")
			ON DELETE CASCADE;
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$;
	`).Error; err != nil {
		return fmt.Errorf("failed to add fk_borrow_record_member_id: %w", err)
	}
	return nil
}
