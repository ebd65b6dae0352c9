package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/navalhaclub/agenda-api/internal/config"
	"github.com/navalhaclub/agenda-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		zap.L().Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		zap.L().Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Unit{},
		&models.User{},
		&models.Service{},
		&models.ProductCategory{},
		&models.Product{},
		&models.Booking{},
		&models.Sale{},
		&models.SaleService{},
		&models.SaleProduct{},
		&models.AuditLog{},
	); err != nil {
		zap.L().Fatal("failed to migrate", zap.Error(err))
	}

	// Fecha a corrida check-then-act da criação: entre agendamentos não
	// cancelados, cada (funcionário, dia, hora de início) é único. Quem
	// perde a corrida recebe 23505 e o chamador devolve conflito.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_staff_slot
        ON bookings (staff_id, date, start_time)
        WHERE status <> 'cancelled'
    `)

	db.Exec(`
        UPDATE units
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}
