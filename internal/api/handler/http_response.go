package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is a standard error payload. Error carries detail for
// unexpected failures only; client errors get just the message.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// RespondBadRequest sends a 400 Bad Request response
func RespondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: message})
}

// RespondNotFound sends a 404 Not Found response
func RespondNotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found."
	}
	c.JSON(http.StatusNotFound, ErrorResponse{Message: message})
}

// RespondInternalError sends a 500 Internal Server Error response carrying a
// generic message plus the error detail
func RespondInternalError(c *gin.Context, message string, err error) {
	resp := ErrorResponse{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}
