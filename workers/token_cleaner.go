package workers

import (
	"time"

	"ventanilla/services"

	"github.com/jinzhu/gorm"
	"go.uber.org/zap"
)

// StartTokenCleaner purga refresh tokens vencidos o revocados una vez al día.
func StartTokenCleaner(db *gorm.DB, log *zap.Logger) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			borrados, err := services.LimpiarTokensExpirados(db)
			if err != nil {
				log.Error("tokens: error al limpiar", zap.Error(err))
				continue
			}
			if borrados > 0 {
				log.Info("tokens: limpieza completada", zap.Int64("borrados", borrados))
			}
		}
	}()
}
