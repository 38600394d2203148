package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/adiprasetyo/txcore/internal/pkg/middleware"
	"github.com/adiprasetyo/txcore/internal/pkg/models"
	natspkg "github.com/adiprasetyo/txcore/internal/pkg/nats"
	"github.com/adiprasetyo/txcore/services/audit"
	"github.com/adiprasetyo/txcore/services/transaction"
)

// TransactionHandler handles HTTP and NATS entry points for the
// transaction workflow
type TransactionHandler struct {
	cfg        *models.Config
	txUC       transaction.TransactionUC
	auditSvc   audit.Service
	natsClient *natspkg.Client
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(cfg *models.Config, txUC transaction.TransactionUC, auditSvc audit.Service, natsClient *natspkg.Client) *TransactionHandler {
	return &TransactionHandler{
		cfg:        cfg,
		txUC:       txUC,
		auditSvc:   auditSvc,
		natsClient: natsClient,
	}
}

// RegisterRoutes registers the transaction routes
func (h *TransactionHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/transactions")

	g.POST("", h.SubmitTransaction)
	g.GET("/:id", h.GetTransaction)
	g.GET("/:id/audit", h.GetAuditChain)

	// Mutating control operations require a service API key
	protected := g.Group("", middleware.ValidateAPIKey("orchestrator", "ops-console"))
	protected.POST("/:id/decision", h.ResolveReview)
	protected.POST("/:id/cancel", h.CancelTransaction)
	protected.POST("/:id/reverse", h.ReverseTransaction)
}
