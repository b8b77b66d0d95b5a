package db

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"ventanilla/config"
	"ventanilla/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"golang.org/x/crypto/bcrypt"
)

var conf config.Configuration

func SetConfigurations(configuration config.Configuration) {
	conf = configuration
}

// Connect abre conexión con DB (sqlite3 por defecto) y hace automigrate.
// Para desactivar el automigrate exporta AUTOMIGRATE=0.
func Connect() (*gorm.DB, error) {
	database := conf.Database
	if database == "" {
		database = "sqlite3"
	}

	var (
		db  *gorm.DB
		err error
	)

	if database == "postgres" || database == "postgresql" {
		log.Println("Utilizando conexión con postgresql...")
		path := "host=" + conf.DbHost + " port=" + conf.DbPort
		path += " user=" + conf.DbUser + " dbname=" + conf.DbName
		path += " password=" + conf.DbPass
		db, err = gorm.Open("postgres", path)
	} else {
		log.Println("Utilizando conexión con sqlite3...")
		dir := filepath.Dir("db/database.db")
		db, err = gorm.Open("sqlite3", dir+"/database.db")
	}

	if err != nil {
		log.Println("Got error when connect database, the error is: " + err.Error())
		return nil, err
	}

	if getenv("DB_LOG", "0") == "1" {
		db.LogMode(true)
	}

	if getenv("AUTOMIGRATE", "1") == "1" {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// Migrate crea/actualiza las tablas y siembra los datos base.
func Migrate(db *gorm.DB) error {
	db.AutoMigrate(
		&models.Area{},
		&models.Usuario{},
		&models.RefreshToken{},
		&models.Proyecto{},
		&models.Oficio{},
		&models.HistorialEstado{},
		&models.ArchivoOficio{},
		&models.SemaforoTiempo{},
		&models.ConfiguracionSemaforo{},
	)
	if db.Error != nil {
		return db.Error
	}
	return Seed(db)
}

// Seed es idempotente: umbrales por defecto y usuario admin inicial.
func Seed(db *gorm.DB) error {
	defaults := []models.ConfiguracionSemaforo{
		{Prioridad: models.PRIORIDAD_URGENTE, DiasVerde: 2, DiasRojo: 5, Activo: true},
		{Prioridad: models.PRIORIDAD_NORMAL, DiasVerde: 5, DiasRojo: 15, Activo: true},
		{Prioridad: models.PRIORIDAD_INFORMATIVO, DiasVerde: 10, DiasRojo: 30, Activo: true},
	}
	for _, cfg := range defaults {
		var existing models.ConfiguracionSemaforo
		if db.Where("prioridad = ?", cfg.Prioridad).First(&existing).RecordNotFound() {
			if err := db.Create(&cfg).Error; err != nil {
				return err
			}
		}
	}

	var total int
	if err := db.Model(&models.Usuario{}).Count(&total).Error; err != nil {
		return err
	}
	if total == 0 {
		hash, err := bcrypt.GenerateFromPassword(
			[]byte(getenv("ADMIN_PASSWORD", "Admin1234!")), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		now := time.Now()
		admin := models.Usuario{
			Username:       "admin",
			PasswordHash:   string(hash),
			NombreCompleto: "Administrador del Sistema",
			Email:          "admin@sistema.gob.mx",
			Rol:            models.ROL_ADMIN,
			Activo:         true,
			CreatedAt:      &now,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		log.Println("Usuario admin inicial creado (username: admin)")
	}

	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
