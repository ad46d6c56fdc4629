package controllers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/bagasramadhana99/Glucosense/config"
	"github.com/bagasramadhana99/Glucosense/models"
	"github.com/bagasramadhana99/Glucosense/security"
	"github.com/bagasramadhana99/Glucosense/store"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		security.SendValidationError(c, "Email and password are required", err.Error())
		return
	}

	var user *models.User
	err := store.WithTx(c.Request.Context(), config.DB, func(tx *sql.Tx) error {
		u, err := models.GetUserByEmail(tx, input.Email)
		user = u
		return err
	})
	if err != nil {
		security.SendStoreError(c, err, "Could not verify credentials")
		return
	}

	// Same response for unknown email and wrong password.
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		security.SendError(c, http.StatusUnauthorized, security.CodeInvalidCredentials,
			"Invalid credentials", "Email or password is incorrect", nil)
		return
	}

	token, err := security.IssueToken(config.C.JWTSecret, user.ID)
	if err != nil {
		security.SendError(c, http.StatusInternalServerError, security.CodeInternalError,
			"Internal server error", "Failed to generate token", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
