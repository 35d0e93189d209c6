package http_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	apphttp "github.com/mida-panama/inventario-quimicos-api/internal/interfaces/http"
	pkgjwt "github.com/mida-panama/inventario-quimicos-api/pkg/jwt"
)

type chemical struct {
	ID     string `json:"id"`
	Name   string `json:"chemical_name"`
	Area   string `json:"area"`
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func createChemical(t *testing.T, env *testEnv, token string) chemical {
	t.Helper()
	resp := env.do(t, http.MethodPost, "/api/inventory", token, map[string]any{
		"chemical_name": "Cloruro de Sodio",
		"quantity":      50,
		"unit":          "kg",
		"area":          "PPC Balboa",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var env2 struct {
		Message  string   `json:"message"`
		Chemical chemical `json:"chemical"`
	}
	decode(t, resp, &env2)
	assert.Equal(t, "Producto químico registrado exitosamente", env2.Message)
	return env2.Chemical
}

func TestLoginYVerify(t *testing.T) {
	env := newTestEnv(t, apphttp.RateLimit{})

	resp := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin", "password": adminPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	decode(t, resp, &login)
	assert.Equal(t, "Inicio de sesión exitoso", login.Message)
	require.NotEmpty(t, login.Token)

	resp = env.do(t, http.MethodGet, "/api/auth/verify", login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var verify struct {
		Valid bool `json:"valid"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	decode(t, resp, &verify)
	assert.True(t, verify.Valid)
	assert.Equal(t, "admin", verify.User.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	env := newTestEnv(t, apphttp.RateLimit{})
	resp := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin", "password": "incorrecta",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, resp))
}

func TestAuthMiddleware_Errores(t *testing.T) {
	env := newTestEnv(t, apphttp.RateLimit{})
	expired, err := pkgjwt.Generate(testJWTSecret, env.admin.ID, "admin", "admin", testIssuer, -1)
	require.NoError(t, err)
	otherSecret, err := pkgjwt.Generate("otro-secret", env.admin.ID, "admin", "admin", testIssuer, testExpMin)
	require.NoError(t, err)
	otherIssuer, err := pkgjwt.Generate(testJWTSecret, env.admin.ID, "admin", "admin", "otro-despliegue", testExpMin)
	require.NoError(t, err)

	inactive := env.store.AddUser(t, "inactivo", "clave-123", entity.RoleUser, nil)
	inactive.IsActive = false
	require.NoError(t, env.store.Users().Update(t.Context(), inactive))

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"esquema distinto", "Basic abc", "INVALID_TOKEN"},
		{"token malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"firma ajena", "Bearer " + otherSecret, "INVALID_TOKEN"},
		{"emisor ajeno", "Bearer " + otherIssuer, "INVALID_TOKEN"},
		{"expirado", "Bearer " + expired, "TOKEN_EXPIRED"},
		{"usuario inactivo", "Bearer " + tokenFor(t, inactive), "INACTIVE_ACCOUNT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, "/api/auth/verify", nil)
			require.NoError(t, err)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := env.app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tc.code, errorCode(t, resp))
		})
	}
}

func TestInventario_AltaYFiltroPorArea(t *testing.T) {
	env := newTestEnv(t, apphttp.RateLimit{})
	token := tokenFor(t, env.admin)
	created := createChemical(t, env, token)
	assert.Equal(t, "active", created.Status)

	resp := env.do(t, http.MethodGet, "/api/inventory?area=PPC%20Balboa", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []chemical
	decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	resp = env.do(t, http.MethodGet, "/api/inventory?area=PSA", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var other []chemical
	decode(t, resp, &other)
	assert.Empty(t, other)
}

func TestInventario_AreaDesconocidaEsValidacion(t *testing.T) {
	env := newTestEnv(t, apphttp.RateLimit{})
	resp := env.do(t, http.MethodGet, "/api/inventory?area=Corozal", tokenFor(t, env.admin), nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body errorBody
	decode(t, resp, &body)
	assert.Equal(t, "VALIDATION", body.Code)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "area", body.Details[0].Field)
}

func TestInventario_SinPermisoDeEscrituraNoRegistra(t *testing.T) {
	env := newTestEnv(t, apphttp.RateLimit{})
	reader := env.store.AddUser(t, "lector", "clave-123", entity.RoleUser, entity.Permissions{
		entity.ResourceInventory: {entity.ActionRead},
	})

	resp := env.do(t, http.MethodPost, "/api/inventory", tokenFor(t, reader), map[string]any{
		"chemical_name": "Cloruro de Sodio",
		"quantity":      50,
		"unit":          "kg",
		"area":          "PPC Balboa",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "PERMISSION_DENIED", errorCode(t, resp))

	resp = env.do(t, http.MethodGet, "/api/inventory", tokenFor(t, env.admin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []chemical
	decode(t, resp, &list)
	assert.Empty(t, list)
}

func TestInventario_CantidadFueraDeRango(t *testing.T) {
	env := newTestEnv(t, apphttp.RateLimit{})
	resp := env.do(t, http.MethodPost, "/api/inventory", tokenFor(t, env.admin), map[string]any{
		"chemical_name": "Cloruro de Sodio",
		"quantity":      100000000,
		"unit":          "kg",
		"area":          "PPC Balboa",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestInventario_Descarte(t *testing.T) {
	env := newTestEnv(t, apphttp.RateLimit{})
	token := tokenFor(t, env.admin)
	created := createChemical(t, env, token)

	resp := env.do(t, http.MethodPatch, "/api/inventory/"+created.ID+"/discard", token, map[string]string{"notes": "expired"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Chemical chemical `json:"chemical"`
	}
	decode(t, resp, &out)
	assert.Equal(t, "discarded", out.Chemical.Status)

	resp = env.do(t, http.MethodGet, "/api/inventory?status=active", token, nil)
	var list []chemical
	decode(t, resp, &list)
	for _, c := range list {
		assert.NotEqual(t, created.ID, c.ID)
	}
}

func TestInventario_ValidacionConDetalles(t *testing.T) {
	env := newTestEnv(t, apphttp.RateLimit{})
	resp := env.do(t, http.MethodPost, "/api/inventory", tokenFor(t, env.admin), map[string]any{
		"chemical_name": "",
		"quantity":      -1,
		"unit":          "kg",
		"area":          "Marte",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body errorBody
	decode(t, resp, &body)
	assert.Equal(t, "VALIDATION", body.Code)
	fields := make([]string, 0, len(body.Details))
	for _, d := range body.Details {
		fields = append(fields, d.Field)
	}
	assert.Subset(t, fields, []string{"chemical_name", "quantity", "area"})
}

func TestInventario_NoEncontrado(t *testing.T) {
	env := newTestEnv(t, apphttp.RateLimit{})
	resp := env.do(t, http.MethodGet, "/api/inventory/00000000-0000-0000-0000-000000000000", tokenFor(t, env.admin), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
}

func TestUsuarios_SinPermisoNoPuedeEliminar(t *testing.T) {
	env := newTestEnv(t, apphttp.RateLimit{})
	operator := env.store.AddUser(t, "operador", "clave-123", entity.RoleUser, entity.Permissions{
		entity.ResourceInventory: {entity.ActionRead},
	})

	resp := env.do(t, http.MethodDelete, "/api/users/"+env.admin.ID, tokenFor(t, operator), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "PERMISSION_DENIED", errorCode(t, resp))

	resp = env.do(t, http.MethodGet, "/api/users", tokenFor(t, env.admin), nil)
	var users []map[string]any
	decode(t, resp, &users)
	assert.Len(t, users, 2)
}

func TestUsuarios_NoPuedeEliminarseASiMismo(t *testing.T) {
	env := newTestEnv(t, apphttp.RateLimit{})
	resp := env.do(t, http.MethodDelete, "/api/users/"+env.admin.ID, tokenFor(t, env.admin), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "CANNOT_DELETE_SELF", errorCode(t, resp))
}

func TestUsuarios_PerfilPropioSinPermisoDeUsuarios(t *testing.T) {
	env := newTestEnv(t, apphttp.RateLimit{})
	operator := env.store.AddUser(t, "operador", "clave-123", entity.RoleUser, entity.Permissions{})

	resp := env.do(t, http.MethodGet, "/api/users/profile/me", tokenFor(t, operator), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me struct {
		Username string `json:"username"`
	}
	decode(t, resp, &me)
	assert.Equal(t, "operador", me.Username)
}

func TestUsuarios_ToggleStatus(t *testing.T) {
	env := newTestEnv(t, apphttp.RateLimit{})
	operator := env.store.AddUser(t, "operador", "clave-123", entity.RoleUser, nil)

	resp := env.do(t, http.MethodPatch, "/api/users/"+operator.ID+"/toggle-status", tokenFor(t, env.admin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Message string `json:"message"`
	}
	decode(t, resp, &out)
	assert.Equal(t, "Usuario desactivado exitosamente", out.Message)
}

func TestCertificados_PDF(t *testing.T) {
	env := newTestEnv(t, apphttp.RateLimit{})
	token := tokenFor(t, env.admin)

	resp := env.do(t, http.MethodPost, "/api/certificates", token, map[string]any{
		"treatment_type":       "Fumigación",
		"product_name":         "Contenedores de granos",
		"application_location": "Puerto de Balboa",
		"responsible_person":   "Ing. Pérez",
		"application_date":     "2024-03-15",
		"application_time":     "09:30",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Certificate struct {
			ID     string `json:"id"`
			Number string `json:"certificate_number"`
		} `json:"certificate"`
	}
	decode(t, resp, &created)
	assert.True(t, strings.HasPrefix(created.Certificate.Number, "CERT-"))

	resp = env.do(t, http.MethodGet, "/api/certificates/"+created.Certificate.ID+"/pdf", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), created.Certificate.Number)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, body)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

func TestTratamientos_TransicionInvalida(t *testing.T) {
	env := newTestEnv(t, apphttp.RateLimit{})
	token := tokenFor(t, env.admin)

	resp := env.do(t, http.MethodPost, "/api/treatments", token, map[string]any{
		"treatment_type":     "Fumigación",
		"location_type":      "puerto",
		"location_name":      "Muelle 3",
		"chemical_name":      "Fosfina",
		"quantity_planned":   12.5,
		"unit":               "kg",
		"scheduled_date":     "2099-01-10",
		"scheduled_time":     "08:00",
		"responsible_person": "Ing. Pérez",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Treatment struct {
			ID string `json:"id"`
		} `json:"treatment"`
	}
	decode(t, resp, &created)
	id := created.Treatment.ID

	resp = env.do(t, http.MethodPatch, "/api/treatments/"+id+"/status", token, map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/treatments/"+id+"/status", token, map[string]string{"status": "scheduled"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, resp))
}

func TestReportes_FormatosYPermisos(t *testing.T) {
	env := newTestEnv(t, apphttp.RateLimit{})
	token := tokenFor(t, env.admin)
	createChemical(t, env, token)

	resp := env.do(t, http.MethodGet, "/api/reports/inventory?format=json", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var report struct {
		TotalRecords int `json:"total_records"`
	}
	decode(t, resp, &report)
	assert.Equal(t, 1, report.TotalRecords)

	resp = env.do(t, http.MethodGet, "/api/reports/inventory?format=xml", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "xml")

	resp = env.do(t, http.MethodGet, "/api/reports/monthly/2024/13", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	noReports := env.store.AddUser(t, "sinreportes", "clave-123", entity.RoleUser, entity.Permissions{})
	resp = env.do(t, http.MethodGet, "/api/dashboard/summary", tokenFor(t, noReports), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRutaInexistente(t *testing.T) {
	env := newTestEnv(t, apphttp.RateLimit{})
	resp := env.do(t, http.MethodGet, "/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
}

func TestLogin_RateLimit(t *testing.T) {
	env := newTestEnv(t, apphttp.RateLimit{LoginMax: 2})
	creds := map[string]string{"username": "admin", "password": "incorrecta"}
	for range 2 {
		resp := env.do(t, http.MethodPost, "/api/auth/login", "", creds)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	resp := env.do(t, http.MethodPost, "/api/auth/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "RATE_LIMITED", errorCode(t, resp))
}
