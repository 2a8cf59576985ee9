package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bank-loan-ledger/internal/api/handler"
	"github.com/bank-loan-ledger/internal/api/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(logger *slog.Logger, r *gin.Engine, loanHandler *handler.LoanHandler) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	api := r.Group("/api")
	{
		// Loan operations
		loans := api.Group("/loans")
		{
			loans.POST("", loanHandler.DisburseLoan)
			loans.POST("/:loan_id/payments", loanHandler.RecordPayment)
			loans.GET("/:loan_id/ledger", loanHandler.GetLedger)
		}

		// Customer account overview
		api.GET("/customers/:customer_id/loans", loanHandler.GetCustomerOverview)
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
