package database

import (
	"fmt"
	"os"

	"survey-booking/logger"
	"survey-booking/models/blockeddate"
	"survey-booking/models/booking"
	"survey-booking/models/calculation"
	"survey-booking/models/client"
	"survey-booking/models/deedparse"
	"survey-booking/models/log"
	"survey-booking/models/mapdata"
	"survey-booking/models/report"
	"survey-booking/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	dbUser := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, dbUser, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createForeignKeyConstraints(); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return nil, err
	}
	logger.Success("All foreign key constraints created successfully")

	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models in dependency order.
func autoMigrate() error {
	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&user.User{},
		&client.Client{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Models with dependencies on Stage 1
	stage2Models := []interface{}{
		&booking.Booking{},
		&blockeddate.BlockedDate{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Models hanging off bookings
	stage3Models := []interface{}{
		&booking.BookingStatusEvent{},
		&calculation.Calculation{},
		&report.Report{},
		&mapdata.MapData{},
	}

	for _, model := range stage3Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Remaining models
	remainingModels := []interface{}{
		&log.Log{},
		&deedparse.DeedParseRequest{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	indexes := []struct {
		name string
		sql  string
	}{
		{"idx_users_uuid", "CREATE INDEX IF NOT EXISTS idx_users_uuid ON users(uuid)"},
		{"idx_users_email", "CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)"},
		{"idx_clients_phone", "CREATE INDEX IF NOT EXISTS idx_clients_phone ON clients(phone)"},
		{"idx_clients_name", "CREATE INDEX IF NOT EXISTS idx_clients_name ON clients(name)"},
		{"idx_bookings_status", "CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)"},
		{"idx_bookings_scheduled_date", "CREATE INDEX IF NOT EXISTS idx_bookings_scheduled_date ON bookings(scheduled_date)"},
		{"idx_bookings_surveyor_date", "CREATE INDEX IF NOT EXISTS idx_bookings_surveyor_date ON bookings(surveyor_id, scheduled_date)"},
		{"idx_blocked_dates_surveyor_date", "CREATE UNIQUE INDEX IF NOT EXISTS idx_blocked_dates_surveyor_date ON blocked_dates(surveyor_id, date)"},
		{"idx_reports_mouza", "CREATE INDEX IF NOT EXISTS idx_reports_mouza ON reports(mouza)"},
		{"idx_reports_plot_number", "CREATE INDEX IF NOT EXISTS idx_reports_plot_number ON reports(plot_number)"},
		{"idx_logs_status_code", "CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)"},
		{"idx_logs_created_at", "CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)"},
	}

	for _, idx := range indexes {
		if err := DB.Exec(idx.sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints() error {
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_bookings_surveyor",
			sql: `ALTER TABLE bookings ADD CONSTRAINT fk_bookings_surveyor
				  FOREIGN KEY (surveyor_id) REFERENCES users(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_bookings_client",
			sql: `ALTER TABLE bookings ADD CONSTRAINT fk_bookings_client
				  FOREIGN KEY (client_id) REFERENCES clients(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_blocked_dates_surveyor",
			sql: `ALTER TABLE blocked_dates ADD CONSTRAINT fk_blocked_dates_surveyor
				  FOREIGN KEY (surveyor_id) REFERENCES users(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_reports_client",
			sql: `ALTER TABLE reports ADD CONSTRAINT fk_reports_client
				  FOREIGN KEY (client_id) REFERENCES clients(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
	}

	for _, constraint := range constraints {
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		err := DB.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if !exists {
			if err := DB.Exec(constraint.sql).Error; err != nil {
				logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			} else {
				logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
			}
		} else {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
