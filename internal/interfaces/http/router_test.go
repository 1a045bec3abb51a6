package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventaris-api/internal/application/auth"
	"github.com/jhoicas/inventaris-api/internal/application/dto"
	"github.com/jhoicas/inventaris-api/internal/application/inventory"
	"github.com/jhoicas/inventaris-api/internal/application/usecase"
	"github.com/jhoicas/inventaris-api/internal/domain/entity"
	"github.com/jhoicas/inventaris-api/internal/infrastructure/media"
	"github.com/jhoicas/inventaris-api/internal/infrastructure/metrics"
	"github.com/jhoicas/inventaris-api/internal/infrastructure/pdf"
	"github.com/jhoicas/inventaris-api/internal/infrastructure/qrcode"
	"github.com/jhoicas/inventaris-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/inventaris-api/internal/interfaces/http"
	"github.com/jhoicas/inventaris-api/internal/testutil/memstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Aplicación completa sobre memstore
// ──────────────────────────────────────────────────────────────────────────────

const (
	password  = "Rahasia#123"
	gudangID  = "gudang-utama"
	adminID   = "user-admin"
	viewerID  = "user-viewer"
	publicURL = "http://localhost:8080"
)

type testEnv struct {
	app   *fiber.App
	store *memstore.Store
	dir   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	now := time.Now()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	for _, u := range []entity.User{
		{ID: adminID, Name: "Admin", Email: "admin@inventaris.test", Role: entity.RoleAdmin},
		{ID: viewerID, Name: "Viewer", Email: "viewer@inventaris.test", Role: entity.RoleViewer},
	} {
		u.PasswordHash = string(hash)
		u.Avatar = entity.DefaultAvatar
		u.CreatedAt, u.UpdatedAt = now, now
		require.NoError(t, store.Users().Create(ctx, &u))
	}
	require.NoError(t, store.Warehouses().Create(ctx, &entity.Warehouse{
		ID: gudangID, Name: "Gudang Utama", Slug: "gudang-utama", CreatedAt: now, UpdatedAt: now,
	}))

	dir := t.TempDir()
	files, err := storage.NewLocal(dir, publicURL+"/storage")
	require.NoError(t, err)
	images := media.NewImageUploader(files)
	m := metrics.New()
	ledger := inventory.NewLedger(store.Repos(), inventory.WithRecorder(m))

	deps := apphttp.RouterDeps{
		ItemUC: usecase.NewItemUseCase(usecase.ItemDeps{
			Repos: store.Repos(), Lookups: store.Lookups(), Tx: store, Ledger: ledger, Images: images,
		}),
		StockUC:     usecase.NewStockUseCase(ledger),
		WarehouseUC: usecase.NewWarehouseUseCase(store.Warehouses(), store.Users()),
		LookupUC:    usecase.NewLookupUseCase(store.Lookups()),
		UserUC:      usecase.NewUserUseCase(store.Users(), images, nil),
		LabelUC: usecase.NewLabelUseCase(store.Items(), qrcode.NewGenerator(0),
			pdf.NewLabelSheetGenerator(), files, nil),
		DashboardUC: usecase.NewDashboardUseCase(store.Items(), store.Lookups(), store.Warehouses(), store.Users()),
		AuthUC: auth.NewAuthUseCase(store.Users(), images, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		JWTSecret: testJWTSecret,
	}
	app := apphttp.NewApp(apphttp.AppConfig{Name: "inventaris-test", Metrics: m, StorageDir: dir}, deps)
	return &testEnv{app: app, store: store, dir: dir}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Token
}

func (e *testEnv) createItem(t *testing.T, token, name string) dto.ItemResponse {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/api/items", token, map[string]interface{}{
		"name": name, "price": 150000, "warehouse_id": gudangID, "available": 10,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var out dto.ItemResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"ok"`)
}

func TestLogin_CredencialesInvalidas_401(t *testing.T) {
	env := newTestEnv(t)
	resp, _ := env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@inventaris.test", Password: "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestItems_CrearYConsultarConStock(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin@inventaris.test")

	created := env.createItem(t, token, "Proyektor")
	require.Len(t, created.Stocks, 1)
	assert.Equal(t, gudangID, created.Stocks[0].WarehouseID)
	assert.Equal(t, "10", created.Stocks[0].Available.String())
	assert.True(t, created.Stocks[0].Borrowed.IsZero())
	assert.Equal(t, publicURL+"/storage/"+entity.DefaultItemImage, created.ImageURL)

	resp, body := env.do(t, http.MethodGet, "/api/items/"+created.ID+"/stocks", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stocks []dto.StockEntryResponse
	require.NoError(t, json.Unmarshal(body, &stocks))
	require.Len(t, stocks, 1)
	assert.Equal(t, "Gudang Utama", stocks[0].WarehouseName)
}

func TestItems_ViewerNoPuedeCrear_403(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "viewer@inventaris.test")

	resp, _ := env.do(t, http.MethodPost, "/api/items", token, map[string]interface{}{
		"name": "X", "price": 1, "warehouse_id": gudangID, "available": 1,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/api/items", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "cualquier usuario autenticado puede ver items")
}

func TestItems_CantidadNegativa_422SinFilas(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin@inventaris.test")

	resp, body := env.do(t, http.MethodPost, "/api/items", token, map[string]interface{}{
		"name": "Kabel", "price": 1000, "warehouse_id": gudangID, "available": -3,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Contains(t, out.Errors, "available")
	assert.Equal(t, 0, env.store.ItemRows())
	assert.Equal(t, 0, env.store.StockRows())
}

func TestItems_NoExiste_404(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin@inventaris.test")
	resp, _ := env.do(t, http.MethodGet, "/api/items/no-existe", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStocks_SetSobrescribeAvailable(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin@inventaris.test")
	created := env.createItem(t, token, "Proyektor")

	resp, body := env.do(t, http.MethodPut, "/api/items/"+created.ID+"/stocks/"+gudangID, token,
		map[string]interface{}{"available": 12})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out dto.StockEntryResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "12", out.Available.String())
	assert.Equal(t, 1, env.store.StockRows())

	resp, _ = env.do(t, http.MethodPut, "/api/items/"+created.ID+"/stocks/desconocida", token,
		map[string]interface{}{"available": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLabels_PDFDeTodosLosItems(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin@inventaris.test")
	env.createItem(t, token, "Proyektor")

	resp, body := env.do(t, http.MethodGet, "/api/qr/pdf", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out dto.LabelPDFResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, publicURL+"/storage/"+usecase.AllLabelsPath, out.URL)

	data, err := os.ReadFile(filepath.Join(env.dir, filepath.FromSlash(usecase.AllLabelsPath)))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	resp, _ = env.do(t, http.MethodGet, "/storage/"+usecase.AllLabelsPath, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "el driver local sirve los archivos generados")
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "viewer@inventaris.test")

	resp, body := env.do(t, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.DashboardResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, 2, out.Users)
	assert.Equal(t, 1, out.Warehouses)
}

func TestUsers_SoloManageUsers(t *testing.T) {
	env := newTestEnv(t)
	viewer := env.login(t, "viewer@inventaris.test")
	admin := env.login(t, "admin@inventaris.test")

	resp, _ := env.do(t, http.MethodGet, "/api/users", viewer, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/api/users/"+viewerID, viewer, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "cada usuario puede ver su perfil")

	resp, _ = env.do(t, http.MethodPut, "/api/users/"+viewerID, viewer, map[string]interface{}{"role": "admin"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "un viewer no puede subirse el rol")

	resp, _ = env.do(t, http.MethodDelete, "/api/users/"+adminID, admin, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "nadie se elimina a sí mismo")
}

func TestMetrics_ExponeOperacionesDelLibro(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin@inventaris.test")
	env.createItem(t, token, "Proyektor")

	resp, body := env.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `inventaris_stock_ledger_operations_total{op="attach",result="created"} 1`)
	assert.Contains(t, string(body), `inventaris_http_requests_total{method="POST",route="/api/items`)
}
