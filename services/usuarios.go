package services

import (
	"strings"

	"ventanilla/models"

	"github.com/jinzhu/gorm"
	"golang.org/x/crypto/bcrypt"
)

type UsuarioInput struct {
	Username       string `json:"username" form:"username"`
	Password       string `json:"password" form:"password"`
	NombreCompleto string `json:"nombre_completo" form:"nombre_completo"`
	Email          string `json:"email" form:"email"`
	Rol            string `json:"rol" form:"rol"`
	AreaID         *int64 `json:"area_id" form:"area_id"`
}

func ListarUsuarios(db *gorm.DB) ([]models.Usuario, error) {
	var usuarios []models.Usuario
	if err := db.Order("nombre_completo ASC").Find(&usuarios).Error; err != nil {
		return nil, AsError(err)
	}
	return usuarios, nil
}

func ObtenerUsuario(db *gorm.DB, id int64) (*models.Usuario, error) {
	var usuario models.Usuario
	if db.First(&usuario, id).RecordNotFound() {
		return nil, ErrNotFound("Usuario no encontrado")
	}
	return &usuario, nil
}

// CrearUsuario: admin sin área, usuario con área obligatoria.
func CrearUsuario(db *gorm.DB, in UsuarioInput) (*models.Usuario, error) {
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Email) == "" ||
		strings.TrimSpace(in.NombreCompleto) == "" {
		return nil, ErrValidation("username, email y nombre_completo son obligatorios")
	}
	if len(in.Password) < 8 {
		return nil, ErrValidation("La contraseña debe tener al menos 8 caracteres")
	}
	if !models.RolValido(in.Rol) {
		return nil, ErrValidation("rol inválido: debe ser admin o usuario")
	}
	if in.Rol == models.ROL_ADMIN && in.AreaID != nil {
		return nil, ErrValidation("Un admin no puede tener área asignada")
	}
	if in.Rol == models.ROL_USUARIO {
		if in.AreaID == nil {
			return nil, ErrValidation("Un usuario de área requiere area_id")
		}
		if _, err := validarArea(db, *in.AreaID); err != nil {
			return nil, err
		}
	}

	var existente models.Usuario
	if !db.Where("username = ? OR email = ?", in.Username, in.Email).First(&existente).RecordNotFound() {
		return nil, ErrConflict("Ya existe un usuario con ese username o email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrInterno()
	}

	usuario := models.Usuario{
		Username:       in.Username,
		PasswordHash:   string(hash),
		NombreCompleto: in.NombreCompleto,
		Email:          in.Email,
		Rol:            in.Rol,
		AreaID:         in.AreaID,
		Activo:         true,
	}
	if err := db.Create(&usuario).Error; err != nil {
		return nil, AsError(err)
	}
	return &usuario, nil
}

func EditarUsuario(db *gorm.DB, id int64, in UsuarioInput) (*models.Usuario, error) {
	usuario, err := ObtenerUsuario(db, id)
	if err != nil {
		return nil, err
	}

	if in.NombreCompleto != "" {
		usuario.NombreCompleto = in.NombreCompleto
	}
	if in.Email != "" && in.Email != usuario.Email {
		var existente models.Usuario
		if !db.Where("email = ? AND id != ?", in.Email, id).First(&existente).RecordNotFound() {
			return nil, ErrConflict("Ya existe un usuario con ese email")
		}
		usuario.Email = in.Email
	}
	if in.AreaID != nil {
		if usuario.Rol == models.ROL_ADMIN {
			return nil, ErrValidation("Un admin no puede tener área asignada")
		}
		if _, err := validarArea(db, *in.AreaID); err != nil {
			return nil, err
		}
		usuario.AreaID = in.AreaID
	}
	if in.Password != "" {
		if len(in.Password) < 8 {
			return nil, ErrValidation("La contraseña debe tener al menos 8 caracteres")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrInterno()
		}
		usuario.PasswordHash = string(hash)
	}

	if err := db.Save(usuario).Error; err != nil {
		return nil, AsError(err)
	}
	return usuario, nil
}

// CambiarEstadoUsuario activa/desactiva la cuenta (soft delete). Al
// desactivar se revocan todos sus refresh tokens.
func CambiarEstadoUsuario(db *gorm.DB, id int64, activo bool) (*models.Usuario, error) {
	usuario, err := ObtenerUsuario(db, id)
	if err != nil {
		return nil, err
	}

	errT := db.Transaction(func(tx *gorm.DB) error {
		usuario.Activo = activo
		if err := tx.Save(usuario).Error; err != nil {
			return err
		}
		if !activo {
			return tx.Model(&models.RefreshToken{}).
				Where("usuario_id = ?", id).
				Update("revocado", true).Error
		}
		return nil
	})
	if errT != nil {
		return nil, AsError(errT)
	}
	return usuario, nil
}
