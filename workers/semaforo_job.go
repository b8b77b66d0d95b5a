package workers

import (
	"time"

	"ventanilla/services"

	"github.com/jinzhu/gorm"
	"go.uber.org/zap"
)

// StartSemaforoJob arranca el barrido periódico de semáforos: recalcula
// días y colores, y despacha alertas por los oficios que subieron de tier.
// Corre una vez al arrancar y luego cada intervalo.
func StartSemaforoJob(db *gorm.DB, log *zap.Logger, intervalo time.Duration, emailAdmin string) {
	go func() {
		runSemaforoSweep(db, log, emailAdmin)

		ticker := time.NewTicker(intervalo)
		defer ticker.Stop()

		for range ticker.C {
			runSemaforoSweep(db, log, emailAdmin)
		}
	}()
}

func runSemaforoSweep(db *gorm.DB, log *zap.Logger, emailAdmin string) {
	actualizados, err := services.RecalcularTodos(db)
	if err != nil {
		log.Error("semaforo: error al recalcular", zap.Error(err))
		return
	}

	alertas, err := services.OficiosParaAlertar(db)
	if err != nil {
		log.Error("semaforo: error al buscar alertas", zap.Error(err))
		return
	}

	for _, a := range alertas {
		enviarAlerta(log, a, emailAdmin)
		if err := services.MarcarAlertaEnviada(db, a.OficioID); err != nil {
			log.Error("semaforo: error al marcar alerta",
				zap.Int64("oficio_id", a.OficioID), zap.Error(err))
		}
	}

	log.Info("semaforo: barrido completado",
		zap.Int("actualizados", actualizados),
		zap.Int("alertas", len(alertas)))
}

// enviarAlerta simula el correo de alerta dejando registro estructurado.
// Los rojos copian también al administrador del sistema.
func enviarAlerta(log *zap.Logger, a services.AlertaOficio, emailAdmin string) {
	destinatarios := []string{a.EmailArea}
	if a.EstadoSemaforo == "rojo" && emailAdmin != "" {
		destinatarios = append(destinatarios, emailAdmin)
	}

	log.Warn("semaforo: alerta de oficio",
		zap.Int64("oficio_id", a.OficioID),
		zap.String("numero_oficio", a.NumeroOficio),
		zap.String("area", a.AreaNombre),
		zap.String("color", a.EstadoSemaforo),
		zap.Int("dias_transcurridos", a.DiasTranscurridos),
		zap.Strings("destinatarios", destinatarios),
	)
}
