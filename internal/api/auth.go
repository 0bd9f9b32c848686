package api

import (
	"net/http" // HTTP status codes

	"kickboard_ledger/internal/domain" // Domain messages and roles
	"kickboard_ledger/internal/ledger" // Ledger service
	"kickboard_ledger/internal/utils"  // JWT helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Request struct for signup and login; both fields must be present, empty values are accepted
type CredentialsRequest struct {
	Email    *string `json:"email" binding:"required"`    // Account email
	Password *string `json:"password" binding:"required"` // Account password
}

// Response struct for login
type LoginResponse struct {
	Success bool   `json:"success"`         // Always true on this response
	Role    string `json:"role"`            // admin or user
	Token   string `json:"token,omitempty"` // JWT token, when a secret is configured
}

// SignupHandler creates a new account
func SignupHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c) // If binding fails, return bad request
			return
		}
		// Create the account
		if err := svc.CreateAccount(c.Request.Context(), *req.Email, *req.Password); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true}) // Return success response
	}
}

// LoginHandler authenticates a caller and reports its role
func LoginHandler(svc *ledger.Service, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CredentialsRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c) // If binding fails, return bad request
			return
		}
		// Check credentials
		role, err := svc.Authenticate(c.Request.Context(), *req.Email, *req.Password)
		if err != nil {
			fail(c, err)
			return
		}
		resp := LoginResponse{Success: true, Role: role}
		// Issue a token when a secret is configured
		if jwtSecret != "" {
			token, err := utils.GenerateJWT(*req.Email, role, jwtSecret)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"email": *req.Email,  // Account email
					"error": err.Error(), // Error message
				}).Error("Failed to generate token")
				c.JSON(http.StatusOK, gin.H{"success": false, "message": domain.MsgServerError})
				return
			}
			resp.Token = token
		}
		c.JSON(http.StatusOK, resp) // Return the role (and token)
	}
}
