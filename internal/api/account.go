package api

import (
	"net/http" // HTTP status codes

	"kickboard_ledger/internal/domain" // Domain messages
	"kickboard_ledger/internal/ledger" // Ledger service

	"github.com/gin-gonic/gin" // Gin web framework
)

// PointsRequest represents a points top-up; amount may be negative
type PointsRequest struct {
	Email  *string `json:"email" binding:"required"`  // Account email
	Amount *int64  `json:"amount" binding:"required"` // Signed amount to add
}

// EmailRequest carries only the target account; the field must be present
type EmailRequest struct {
	Email *string `json:"email" binding:"required"` // Account email
}

// KickboardResponse is returned by the buy and return endpoints
type KickboardResponse struct {
	Success   bool   `json:"success"`   // Always true on this response
	Points    int64  `json:"points"`    // Balance after the operation
	Kickboard int    `json:"kickboard"` // Flag after the operation
	Message   string `json:"message"`   // Human readable outcome
}

// ProfileHandler returns the balance and kickboard flag of an account
func ProfileHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email") // Email from the path
		profile, err := svc.GetProfile(c.Request.Context(), email)
		if err != nil {
			// Reads never fail outright: report a zero profile with the message
			c.JSON(http.StatusOK, gin.H{
				"email":     email,               // Requested email
				"points":    0,                   // Unknown balance
				"kickboard": 0,                   // Unknown flag
				"message":   domain.Message(err), // Error message
			})
			return
		}
		c.JSON(http.StatusOK, profile) // Return the profile
	}
}

// AddPointsHandler adds points to an account
func AddPointsHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PointsRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c) // If binding fails, return bad request
			return
		}
		total, err := svc.AddPoints(c.Request.Context(), *req.Email, *req.Amount)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "points": total}) // Return new balance
	}
}

// BuyKickboardHandler rents the kickboard for an account
func BuyKickboardHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EmailRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c) // If binding fails, return bad request
			return
		}
		profile, err := svc.BuyKickboard(c.Request.Context(), *req.Email)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, KickboardResponse{
			Success:   true,                // Purchase succeeded
			Points:    profile.Points,      // Remaining balance
			Kickboard: profile.Kickboard,   // Now held
			Message:   domain.MsgPurchased, // Outcome
		})
	}
}

// ReturnKickboardHandler gives the kickboard back
func ReturnKickboardHandler(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EmailRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c) // If binding fails, return bad request
			return
		}
		profile, err := svc.ReturnKickboard(c.Request.Context(), *req.Email)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, KickboardResponse{
			Success:   true,               // Return succeeded
			Points:    profile.Points,     // Unchanged balance
			Kickboard: profile.Kickboard,  // No longer held
			Message:   domain.MsgReturned, // Outcome
		})
	}
}
