package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/analytics"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/auth"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/usecase"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/internal/infrastructure/pdf"
	"github.com/mida-panama/inventario-quimicos-api/internal/infrastructure/xmlexport"
	apphttp "github.com/mida-panama/inventario-quimicos-api/internal/interfaces/http"
	"github.com/mida-panama/inventario-quimicos-api/internal/testutils"
	pkgjwt "github.com/mida-panama/inventario-quimicos-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "mida-test"
	testExpMin    = 60
	adminPassword = "admin-pass-123"
)

type testEnv struct {
	app   *fiber.App
	store *testutils.Store
	admin *entity.User
}

func newTestEnv(t *testing.T, rl apphttp.RateLimit) *testEnv {
	t.Helper()
	store := testutils.NewStore()
	admin := store.AddUser(t, "admin", adminPassword, entity.RoleAdmin, nil)

	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	}, nil)
	renderer := pdf.NewRenderer(nil)

	app := apphttp.NewApp(apphttp.RouterDeps{
		AuthUC:        authUC,
		InventoryUC:   usecase.NewInventoryUseCase(store.Chemicals()),
		CertificateUC: usecase.NewCertificateUseCase(store.Certificates(), renderer),
		TreatmentUC:   usecase.NewTreatmentUseCase(store.Treatments(), store),
		UserUC:        usecase.NewUserUseCase(store.Users()),
		ReportUC: analytics.NewReportUseCase(
			store.Chemicals(), store.Certificates(), store.Treatments(),
			renderer, xmlexport.NewExporter(),
		),
		DashboardUC: analytics.NewDashboardUseCase(store.Chemicals(), store.Certificates(), store.Treatments()),
		RateLimit:   rl,
	})
	return &testEnv{app: app, store: store, admin: admin}
}

// tokenFor genera un JWT firmado para el usuario indicado.
func tokenFor(t *testing.T, u *entity.User) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, u.ID, u.Username, string(u.Role), testIssuer, testExpMin)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := e.app.Test(req, int((10 * time.Second).Milliseconds()))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

type errorBody struct {
	Code    string `json:"code"`
	Error   string `json:"error"`
	Details []struct {
		Field string `json:"field"`
	} `json:"details"`
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body errorBody
	decode(t, resp, &body)
	return body.Code
}
