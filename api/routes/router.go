package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/escafood/kasadefteri-backend/api/controllers"
	"github.com/escafood/kasadefteri-backend/api/middleware"
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
	"github.com/escafood/kasadefteri-backend/pkg/enums"
	"github.com/escafood/kasadefteri-backend/pkg/logger"
	"github.com/escafood/kasadefteri-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	usersRepo users.Repository,
	ledgerService ledger.Service,
	chequeService cheques.Service,
	cardService cards.Service,
	bankService banks.Service,
	customerService customers.Service,
	supplierService suppliers.Service,
	posTerminalService posterminals.Service,
	tagService tags.Service,
	attachmentService attachments.Service,
	userService users.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Identity(logg, cfg.Identity, usersRepo))

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/cash-in", controllers.CashIn(ledgerService, logg))
			r.Post("/cash-out", controllers.CashOut(ledgerService, logg))
			r.Post("/bank-in", controllers.BankIn(ledgerService, logg))
			r.Post("/bank-out", controllers.BankOut(ledgerService, logg))
			r.Post("/pos-collection", controllers.PosCollection(ledgerService, logg))
			r.Post("/card-expense", controllers.CardExpense(ledgerService, logg))
			r.Post("/card-payment", controllers.CardPayment(ledgerService, logg))
			r.Get("/daily", controllers.DailyLedger(ledgerService, logg))
			r.Get("/{transactionId}", controllers.TransactionDetail(ledgerService, logg))
			r.Delete("/{transactionId}", controllers.TransactionDelete(ledgerService, logg))
		})

		r.Route("/cheques", func(r chi.Router) {
			r.Post("/", controllers.ChequeCreate(chequeService, logg))
			r.Get("/", controllers.ChequeList(chequeService, logg))
			r.Get("/payable", controllers.ChequePayable(chequeService, logg))
			r.Get("/{chequeId}", controllers.ChequeDetail(chequeService, logg))
			r.Patch("/{chequeId}", controllers.ChequeUpdate(chequeService, logg))
			r.Post("/{chequeId}/status", controllers.ChequeUpdateStatus(chequeService, logg))
			r.Post("/{chequeId}/pay", controllers.ChequePay(chequeService, logg))
			r.Delete("/{chequeId}", controllers.ChequeDelete(chequeService, logg))
		})

		r.Route("/cards", func(r chi.Router) {
			r.Post("/", controllers.CardCreate(cardService, logg))
			r.Get("/", controllers.CardList(cardService, logg))
			r.Get("/{cardId}", controllers.CardDetail(cardService, logg))
			r.Patch("/{cardId}", controllers.CardUpdate(cardService, logg))
			r.Delete("/{cardId}", controllers.CardDelete(cardService, logg))
			r.Get("/{cardId}/statement", controllers.CardStatement(cardService, logg))
		})

		r.Route("/banks", func(r chi.Router) {
			r.Post("/", controllers.BankCreate(bankService, logg))
			r.Get("/", controllers.BankList(bankService, logg))
			r.Get("/{bankId}", controllers.BankDetail(bankService, logg))
			r.Patch("/{bankId}", controllers.BankUpdate(bankService, logg))
			r.Delete("/{bankId}", controllers.BankDelete(bankService, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", controllers.CustomerCreate(customerService, logg))
			r.Post("/bulk", controllers.CustomerBulkSave(customerService, logg))
			r.Get("/", controllers.CustomerList(customerService, logg))
			r.Get("/{customerId}", controllers.CustomerDetail(customerService, logg))
			r.Patch("/{customerId}", controllers.CustomerUpdate(customerService, logg))
			r.Delete("/{customerId}", controllers.CustomerDelete(customerService, logg))
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Post("/", controllers.SupplierCreate(supplierService, logg))
			r.Post("/bulk", controllers.SupplierBulkSave(supplierService, logg))
			r.Get("/", controllers.SupplierList(supplierService, logg))
			r.Get("/{supplierId}", controllers.SupplierDetail(supplierService, logg))
			r.Patch("/{supplierId}", controllers.SupplierUpdate(supplierService, logg))
			r.Delete("/{supplierId}", controllers.SupplierDelete(supplierService, logg))
		})

		r.Route("/pos-terminals", func(r chi.Router) {
			r.Post("/", controllers.PosTerminalCreate(posTerminalService, logg))
			r.Get("/", controllers.PosTerminalList(posTerminalService, logg))
			r.Get("/{terminalId}", controllers.PosTerminalDetail(posTerminalService, logg))
			r.Patch("/{terminalId}", controllers.PosTerminalUpdate(posTerminalService, logg))
			r.Delete("/{terminalId}", controllers.PosTerminalDelete(posTerminalService, logg))
		})

		r.Route("/tags", func(r chi.Router) {
			r.Post("/", controllers.TagCreate(tagService, logg))
			r.Get("/", controllers.TagList(tagService, logg))
			r.Delete("/{tagId}", controllers.TagDelete(tagService, logg))
		})

		r.Route("/attachments", func(r chi.Router) {
			r.Post("/", controllers.AttachmentUpload(attachmentService, logg))
			r.Get("/{attachmentId}", controllers.AttachmentDownload(attachmentService, logg))
			r.Delete("/{attachmentId}", controllers.AttachmentDelete(attachmentService, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.UserRoleAdmin, logg))
			r.Post("/", controllers.UserCreate(userService, logg))
			r.Get("/", controllers.UserList(userService, logg))
			r.Patch("/{userId}", controllers.UserUpdate(userService, logg))
			r.Post("/{userId}/reset-password", controllers.UserResetPassword(userService, logg))
		})
	})

	return r
}
