package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bank-loan-ledger/internal/api/service"
	"github.com/bank-loan-ledger/internal/domain/customer"
	"github.com/bank-loan-ledger/internal/domain/loan"
	"github.com/bank-loan-ledger/internal/domain/shared"
)

// LoanHandler handles HTTP requests for loan operations
type LoanHandler struct {
	loanService service.LoanService
	logger      *slog.Logger
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(logger *slog.Logger, loanService service.LoanService) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
		logger:      logger,
	}
}

// DisburseLoan handles POST /api/loans, creating a new loan for a customer
func (h *LoanHandler) DisburseLoan(c *gin.Context) {
	var req DisburseLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid loan disbursement request", "error", err)
		RespondBadRequest(c, "Missing or invalid loan parameters.")
		return
	}

	l, err := h.loanService.DisburseLoan(c.Request.Context(), req.CustomerID, req.PrincipalAmount, req.LoanPeriodYears, *req.InterestRate)
	if err != nil {
		if errors.Is(err, loan.ErrInvalidLoanTerms) {
			RespondBadRequest(c, "Invalid loan parameters.")
			return
		}
		if errors.Is(err, customer.ErrCustomerNotFound{}) {
			RespondNotFound(c, "Customer not found.")
			return
		}
		h.logger.Error("Failed to disburse loan", "customer_id", req.CustomerID, "error", err)
		RespondInternalError(c, "Server error while disbursing loan.", err)
		return
	}

	c.JSON(http.StatusCreated, DisburseLoanResponse{
		Message: "Loan successfully disbursed.",
		Loan:    mapLoanToResponse(l),
	})
}

// RecordPayment handles POST /api/loans/:loan_id/payments
func (h *LoanHandler) RecordPayment(c *gin.Context) {
	loanID := c.Param("loan_id")

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid payment request", "loan_id", loanID, "error", err)
		RespondBadRequest(c, "Missing or invalid payment type or amount.")
		return
	}

	result, err := h.loanService.RecordPayment(c.Request.Context(), loanID, shared.PaymentType(req.PaymentType), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, loan.ErrLoanNotFound{}):
			RespondNotFound(c, "Loan not found.")
		case errors.Is(err, loan.ErrLoanAlreadyPaid):
			RespondBadRequest(c, "Loan is already fully paid.")
		case errors.Is(err, loan.ErrInvalidPaymentAmount), errors.Is(err, loan.ErrInvalidPaymentType):
			RespondBadRequest(c, "Invalid payment amount.")
		default:
			h.logger.Error("Failed to process payment", "loan_id", loanID, "error", err)
			RespondInternalError(c, "Server error while processing payment.", err)
		}
		return
	}

	c.JSON(http.StatusOK, PaymentResponse{
		Message:                   "Payment processed successfully.",
		LoanID:                    result.LoanID,
		AmountPaidThisTransaction: result.Amount,
		NewBalanceAmount:          result.NewBalance,
		RemainingEMIs:             result.RemainingEMIs,
		Status:                    string(result.Status),
	})
}

// GetLedger handles GET /api/loans/:loan_id/ledger
func (h *LoanHandler) GetLedger(c *gin.Context) {
	loanID := c.Param("loan_id")

	view, err := h.loanService.GetLedger(c.Request.Context(), loanID)
	if err != nil {
		if errors.Is(err, loan.ErrLoanNotFound{}) {
			RespondNotFound(c, "Loan not found.")
			return
		}
		h.logger.Error("Failed to fetch ledger", "loan_id", loanID, "error", err)
		RespondInternalError(c, "Server error while fetching ledger.", err)
		return
	}

	c.JSON(http.StatusOK, mapLedgerToResponse(view))
}

// GetCustomerOverview handles GET /api/customers/:customer_id/loans
func (h *LoanHandler) GetCustomerOverview(c *gin.Context) {
	customerID := c.Param("customer_id")

	overview, err := h.loanService.GetCustomerOverview(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, customer.ErrCustomerNotFound{}) {
			RespondNotFound(c, "Customer not found.")
			return
		}
		h.logger.Error("Failed to fetch customer overview", "customer_id", customerID, "error", err)
		RespondInternalError(c, "Server error while fetching account overview.", err)
		return
	}

	c.JSON(http.StatusOK, mapOverviewToResponse(overview))
}
