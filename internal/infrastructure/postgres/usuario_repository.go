package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/gestor-fabricas/internal/domain"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/authz"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/entity"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación del puerto UsuarioRepository sobre PostgreSQL.
// La matriz de permisos se persiste como JSONB en la columna permisos.
type UsuarioRepo struct {
	pool *pgxpool.Pool
}

// NewUsuarioRepository construye el adaptador de persistencia para usuarios.
func NewUsuarioRepository(pool *pgxpool.Pool) *UsuarioRepo {
	return &UsuarioRepo{pool: pool}
}

const usuarioColumns = `id, fabrica_id, username, email, password_hash, nombre, rol, permisos, online, ultima_sesion, estado, created_at, updated_at`

// Create persiste un nuevo usuario con su matriz de permisos.
func (r *UsuarioRepo) Create(u *entity.Usuario) error {
	permisos, err := json.Marshal(u.Permisos)
	if err != nil {
		return fmt.Errorf("serializar permisos: %w", err)
	}
	query := `
		INSERT INTO usuarios (` + usuarioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.pool.Exec(context.Background(), query,
		u.ID, u.FabricaID, u.Username, u.Email, u.PasswordHash, u.Nombre, string(u.Rol), permisos,
		u.Online, u.UltimaSesion, u.Estado, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (r *UsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	return r.findOne(`SELECT `+usuarioColumns+` FROM usuarios WHERE id = $1`, id)
}

// GetByUsername obtiene un usuario por username.
func (r *UsuarioRepo) GetByUsername(username string) (*entity.Usuario, error) {
	return r.findOne(`SELECT `+usuarioColumns+` FROM usuarios WHERE username = $1 LIMIT 1`, username)
}

// GetByEmail obtiene un usuario por email.
func (r *UsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	return r.findOne(`SELECT `+usuarioColumns+` FROM usuarios WHERE email = $1 LIMIT 1`, email)
}

func (r *UsuarioRepo) findOne(query string, arg any) (*entity.Usuario, error) {
	row := r.pool.QueryRow(context.Background(), query, arg)
	u, err := scanUsuario(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

// Update actualiza un usuario completo, permisos incluidos. La fila se
// reemplaza en un solo UPDATE, de modo que rol y matriz cambian juntos o no
// cambian.
func (r *UsuarioRepo) Update(u *entity.Usuario) error {
	permisos, err := json.Marshal(u.Permisos)
	if err != nil {
		return fmt.Errorf("serializar permisos: %w", err)
	}
	query := `
		UPDATE usuarios
		SET email = $2, password_hash = $3, nombre = $4, rol = $5, permisos = $6,
		    online = $7, ultima_sesion = $8, estado = $9, updated_at = $10
		WHERE id = $1`
	_, err = r.pool.Exec(context.Background(), query,
		u.ID, u.Email, u.PasswordHash, u.Nombre, string(u.Rol), permisos,
		u.Online, u.UltimaSesion, u.Estado, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

// ListAll lista todos los usuarios del sistema con paginación.
func (r *UsuarioRepo) ListAll(limit, offset int) ([]*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListByFabrica lista los usuarios de una fábrica con paginación.
func (r *UsuarioRepo) ListByFabrica(fabricaID string, limit, offset int) ([]*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE fabrica_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, fabricaID, limit, offset)
}

func (r *UsuarioRepo) list(query string, args ...any) ([]*entity.Usuario, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Delete elimina un usuario por ID.
func (r *UsuarioRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	return nil
}

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var (
		u        entity.Usuario
		rol      string
		permisos []byte
	)
	err := row.Scan(
		&u.ID, &u.FabricaID, &u.Username, &u.Email, &u.PasswordHash, &u.Nombre, &rol, &permisos,
		&u.Online, &u.UltimaSesion, &u.Estado, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Rol = authz.Rol(rol)
	if len(permisos) > 0 {
		if err := json.Unmarshal(permisos, &u.Permisos); err != nil {
			return nil, fmt.Errorf("deserializar permisos: %w", err)
		}
	}
	// Filas antiguas o matrices parciales: se normaliza a matriz completa.
	u.Permisos = u.Permisos.Normalizada()
	return &u, nil
}
