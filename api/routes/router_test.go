package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/internal/attachments"
	"github.com/escafood/kasadefteri-backend/internal/banks"
	"github.com/escafood/kasadefteri-backend/internal/cards"
	"github.com/escafood/kasadefteri-backend/internal/cheques"
	"github.com/escafood/kasadefteri-backend/internal/customers"
	"github.com/escafood/kasadefteri-backend/internal/ledger"
	"github.com/escafood/kasadefteri-backend/internal/posterminals"
	"github.com/escafood/kasadefteri-backend/internal/suppliers"
	"github.com/escafood/kasadefteri-backend/internal/tags"
	"github.com/escafood/kasadefteri-backend/internal/users"
	"github.com/escafood/kasadefteri-backend/pkg/config"
	"github.com/escafood/kasadefteri-backend/pkg/db"
	"github.com/escafood/kasadefteri-backend/pkg/db/models"
	"github.com/escafood/kasadefteri-backend/pkg/enums"
	"github.com/escafood/kasadefteri-backend/pkg/logger"
	"github.com/escafood/kasadefteri-backend/pkg/metrics"
)

func testConfig() *config.Config {
	return &config.Config{
		App:      config.AppConfig{Env: "test", Port: "0"},
		Identity: config.IdentityConfig{Header: "X-User"},
		Password: config.PasswordConfig{
			ArgonMemoryKB:    8 * 1024,
			ArgonTime:        1,
			ArgonParallelism: 1,
		},
		Attachments: config.AttachmentsConfig{MaxUploadMB: 1},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	dsn := "file:routes_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.BankAccount{},
		&models.Customer{},
		&models.Supplier{},
		&models.Card{},
		&models.PosTerminal{},
		&models.Tag{},
		&models.Transaction{},
		&models.Cheque{},
		&models.ChequeMove{},
		&models.Attachment{},
		&models.User{},
	))

	cfg := testConfig()
	cfg.Attachments.Dir = t.TempDir()
	logg := logger.New(logger.Options{ServiceName: "test-routing", Output: io.Discard})
	client := db.NewWithConn(conn)

	ledgerRepo := ledger.NewRepository(conn)
	bankRepo := banks.NewRepository(conn)
	cardRepo := cards.NewRepository(conn)
	customerRepo := customers.NewRepository(conn)
	supplierRepo := suppliers.NewRepository(conn)
	terminalRepo := posterminals.NewRepository(conn)
	tagRepo := tags.NewRepository(conn)
	chequeRepo := cheques.NewRepository(conn)
	usersRepo := users.NewRepository(conn)

	ledgerService, err := ledger.NewService(client, ledgerRepo, bankRepo, cardRepo, customerRepo, supplierRepo, terminalRepo, tagRepo)
	require.NoError(t, err)
	chequeService, err := cheques.NewService(client, chequeRepo, ledgerRepo, bankRepo, customerRepo, supplierRepo)
	require.NoError(t, err)
	cardService, err := cards.NewService(cardRepo, ledgerRepo)
	require.NoError(t, err)
	bankService, err := banks.NewService(bankRepo)
	require.NoError(t, err)
	customerService, err := customers.NewService(customerRepo)
	require.NoError(t, err)
	supplierService, err := suppliers.NewService(supplierRepo)
	require.NoError(t, err)
	terminalService, err := posterminals.NewService(terminalRepo)
	require.NoError(t, err)
	tagService, err := tags.NewService(tagRepo)
	require.NoError(t, err)
	store, err := attachments.NewStore(cfg.Attachments.Dir)
	require.NoError(t, err)
	attachmentService, err := attachments.NewService(attachments.NewRepository(conn), store, cfg.Attachments)
	require.NoError(t, err)
	userService, err := users.NewService(usersRepo, cfg.Password)
	require.NoError(t, err)

	seedUser(t, conn, "defne", enums.UserRoleMuhasebe)
	seedUser(t, conn, "admin", enums.UserRoleAdmin)

	registry := prometheus.NewRegistry()
	return NewRouter(
		cfg,
		logg,
		client,
		metrics.NewHTTPMetrics(registry),
		registry,
		usersRepo,
		ledgerService,
		chequeService,
		cardService,
		bankService,
		customerService,
		supplierService,
		terminalService,
		tagService,
		attachmentService,
		userService,
	)
}

func seedUser(t *testing.T, conn *gorm.DB, username string, role enums.UserRole) {
	t.Helper()
	user := &models.User{
		Username:     username,
		DisplayName:  username,
		PasswordHash: "unused",
		Role:         role,
		Active:       true,
	}
	require.NoError(t, conn.Create(user).Error)
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "test", resp.Header().Get("X-KasaDefteri-Env"))
}

func TestAPIRejectsMissingIdentity(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/banks", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAPIRejectsUnknownUser(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/banks", nil)
	req.Header.Set("X-User", "nobody")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestBankCreateRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	body := strings.NewReader(`{"name":"Ziraat Merkez"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/banks", body)
	req.Header.Set("X-User", "defne")
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, resp.Body.String(), "Ziraat Merkez")

	list := httptest.NewRequest(http.MethodGet, "/api/v1/banks", nil)
	list.Header.Set("X-User", "defne")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, list)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestUsersGroupRequiresAdminRole(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("X-User", "defne")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("X-User", "admin")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}
