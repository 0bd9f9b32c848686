package api

import (
	"net/http" // HTTP status codes

	"kickboard_ledger/internal/ledger" // Ledger service

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdjustRequest overwrites an account's balance and flag
type AdjustRequest struct {
	Email     *string `json:"email" binding:"required"`               // Account email
	Points    *int64  `json:"points" binding:"required"`              // New balance
	Kickboard *int    `json:"kickboard" binding:"required,oneof=0 1"` // New flag
}

// ListAccountsHandler returns every account
func ListAccountsHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		// On failure the service already logged and returned an empty list
		profiles, _ := svc.ListAccounts(c.Request.Context())
		c.JSON(http.StatusOK, profiles) // Return the accounts
	}
}

// AdjustHandler overwrites points and kickboard for an account
func AdjustHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdjustRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c) // If binding fails, return bad request
			return
		}
		if err := svc.AdminAdjust(c.Request.Context(), *req.Email, *req.Points, *req.Kickboard); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true}) // Return success response
	}
}

// DeleteHandler removes an account
func DeleteHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EmailRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c) // If binding fails, return bad request
			return
		}
		if err := svc.AdminDelete(c.Request.Context(), *req.Email); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true}) // Return success response
	}
}
