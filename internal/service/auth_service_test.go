package service_test

import (
	"context"
	"testing"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/apierror"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/config"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/dto"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/model"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── In-memory UsuarioRepository ──────────────────────────────────────────────

type stubUsuarioRepo struct {
	users map[string]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{users: make(map[string]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if _, ok := r.users[u.Username]; ok {
		return gorm.ErrDuplicatedKey
	}
	u.ID = uuid.New()
	r.users[u.Username] = u
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	u, ok := r.users[username]
	if !ok || !u.Activo {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.users {
		if u.Activo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) {
	out := make([]model.Usuario, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.users[u.Username] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	u.Activo = false
	return nil
}

func (r *stubUsuarioRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	u.Activo = true
	return nil
}

func (r *stubUsuarioRepo) SembrarRoles(context.Context) error { return nil }

// ── Helpers ──────────────────────────────────────────────────────────────────

const testSecret = "test_jwt_secret_32_chars_minimum!"

func newTestCfg() *config.Config {
	return &config.Config{
		JWTSecret:          testSecret,
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}

func seedUser(t *testing.T, repo *stubUsuarioRepo, username, password, rol string) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.Usuario{
		ID: uuid.New(), Username: username, Nombre: "Test User",
		PasswordHash: string(hash), Rol: rol, Activo: true,
	}
	repo.users[username] = u
	return u
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestAuth_LoginOK(t *testing.T) {
	repo := newStubUsuarioRepo()
	u := seedUser(t, repo, "caja1", "secreto123", model.RolCajero)
	svc := service.NewAuthService(repo, newTestCfg())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: " caja1 ", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, u.ID.String(), resp.User.ID)
	assert.Equal(t, model.RolCajero, resp.User.Rol)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims["user_id"])
	assert.Equal(t, model.RolCajero, claims["rol"])
}

func TestAuth_LoginCredencialesInvalidas(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUser(t, repo, "caja1", "secreto123", model.RolCajero)
	inactivo := seedUser(t, repo, "viejo", "secreto123", model.RolTaller)
	inactivo.Activo = false
	svc := service.NewAuthService(repo, newTestCfg())
	ctx := context.Background()

	_, err := svc.Login(ctx, dto.LoginRequest{Username: "caja1", Password: "otra"})
	assert.ErrorIs(t, err, service.ErrCredenciales)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "secreto123"})
	assert.ErrorIs(t, err, service.ErrCredenciales)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "viejo", Password: "secreto123"})
	assert.ErrorIs(t, err, service.ErrCredenciales)
}

func TestAuth_Refresh(t *testing.T) {
	repo := newStubUsuarioRepo()
	u := seedUser(t, repo, "admin", "secreto123", model.RolAdministrador)
	svc := service.NewAuthService(repo, newTestCfg())
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "secreto123"})
	require.NoError(t, err)

	resp, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), resp.User.ID)

	_, err = svc.Refresh(ctx, "no-es-un-jwt")
	assert.ErrorIs(t, err, service.ErrCredenciales)

	u.Activo = false
	_, err = svc.Refresh(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, service.ErrCredenciales)
}

func TestAuth_NoSePuedeDesactivarASiMismo(t *testing.T) {
	repo := newStubUsuarioRepo()
	admin := seedUser(t, repo, "admin", "secreto123", model.RolAdministrador)
	taller := seedUser(t, repo, "taller", "secreto123", model.RolTaller)
	svc := service.NewAuthService(repo, newTestCfg())
	ctx := context.Background()

	err := svc.DesactivarUsuario(ctx, admin.ID, admin.ID)
	assert.ErrorIs(t, err, apierror.ErrConflicto)
	assert.True(t, admin.Activo)

	require.NoError(t, svc.DesactivarUsuario(ctx, admin.ID, taller.ID))
	assert.False(t, taller.Activo)

	activos, err := svc.ListarUsuarios(ctx, false)
	require.NoError(t, err)
	assert.Len(t, activos, 1)
	todos, err := svc.ListarUsuarios(ctx, true)
	require.NoError(t, err)
	assert.Len(t, todos, 2)

	require.NoError(t, svc.ReactivarUsuario(ctx, taller.ID))
	assert.True(t, taller.Activo)

	err = svc.DesactivarUsuario(ctx, admin.ID, uuid.New())
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
}

func TestAuth_CrearUsuarioDuplicado(t *testing.T) {
	repo := newStubUsuarioRepo()
	seedUser(t, repo, "caja1", "secreto123", model.RolCajero)
	svc := service.NewAuthService(repo, newTestCfg())

	_, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "caja1", Nombre: "Otro", Password: "12345678", Rol: model.RolCajero,
	})
	assert.ErrorIs(t, err, apierror.ErrConflicto)
}
