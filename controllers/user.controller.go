package controllers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"

	"github.com/bagasramadhana99/Glucosense/config"
	"github.com/bagasramadhana99/Glucosense/models"
	"github.com/bagasramadhana99/Glucosense/security"
	"github.com/bagasramadhana99/Glucosense/store"
)

type RegisterInput struct {
	Name     string  `json:"name"`
	Age      *int    `json:"age"`
	Email    string  `json:"email"`
	Gender   *string `json:"gender"`
	Address  *string `json:"address"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
}

type UpdateUserInput struct {
	Name     *string `json:"name"`
	Age      *int    `json:"age"`
	Email    *string `json:"email"`
	Gender   *string `json:"gender"`
	Address  *string `json:"address"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// GetUsers lists every user. Requires a valid token.
func GetUsers(c *gin.Context) {
	var users []models.User
	err := store.WithTx(c.Request.Context(), config.DB, func(tx *sql.Tx) error {
		u, err := models.GetAllUsers(tx)
		users = u
		return err
	})
	if err != nil {
		security.SendStoreError(c, err, "Could not retrieve users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func GetUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		security.SendValidationError(c, "User id must be numeric", nil)
		return
	}

	var user *models.User
	err = store.WithTx(c.Request.Context(), config.DB, func(tx *sql.Tx) error {
		u, err := models.GetUserByID(tx, userID)
		user = u
		return err
	})
	if err != nil {
		security.SendStoreError(c, err, "Could not retrieve user")
		return
	}
	if user == nil {
		security.SendNotFoundError(c, "user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser is the public registration endpoint; no token required.
func CreateUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		security.SendValidationError(c, "Request body is empty or malformed", err.Error())
		return
	}

	required := map[string]string{
		"name":     input.Name,
		"email":    input.Email,
		"password": input.Password,
		"role":     input.Role,
	}
	missing := lo.Filter([]string{"name", "email", "password", "role"}, func(field string, _ int) bool {
		return required[field] == ""
	})
	if len(missing) > 0 {
		security.SendValidationError(c, "Missing required fields: "+strings.Join(missing, ", "), nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		security.SendError(c, http.StatusInternalServerError, security.CodeInternalError,
			"Internal server error", "Failed to hash password", nil)
		return
	}

	var newID int64
	var emailTaken bool
	err = store.WithTx(c.Request.Context(), config.DB, func(tx *sql.Tx) error {
		existing, err := models.GetUserByEmail(tx, input.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			emailTaken = true
			return nil
		}
		id, err := models.AddUser(tx, models.NewUser{
			Name:         input.Name,
			Age:          input.Age,
			Email:        input.Email,
			Gender:       input.Gender,
			Address:      input.Address,
			PasswordHash: string(hash),
			Role:         input.Role,
		})
		newID = id
		return err
	})
	if err != nil {
		if store.IsDuplicate(err) {
			security.SendError(c, http.StatusConflict, security.CodeDuplicateResource,
				"Email already exists", "Another account is registered with this email", nil)
			return
		}
		security.SendStoreError(c, err, "Failed to add user")
		return
	}
	if emailTaken {
		security.SendError(c, http.StatusConflict, security.CodeDuplicateResource,
			"Email already exists", "Another account is registered with this email", nil)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User added successfully", "id": newID})
}

// UpdateUser applies a partial update; only the supplied fields change. A
// supplied password is re-hashed before it reaches the repository.
func UpdateUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		security.SendValidationError(c, "User id must be numeric", nil)
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		security.SendValidationError(c, "Request body is empty or malformed", err.Error())
		return
	}

	update := models.UserUpdate{
		Name:    input.Name,
		Age:     input.Age,
		Email:   input.Email,
		Gender:  input.Gender,
		Address: input.Address,
		Role:    input.Role,
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			security.SendError(c, http.StatusInternalServerError, security.CodeInternalError,
				"Internal server error", "Failed to hash password", nil)
			return
		}
		hashed := string(hash)
		update.PasswordHash = &hashed
	}

	var notFound, emailTaken bool
	err = store.WithTx(c.Request.Context(), config.DB, func(tx *sql.Tx) error {
		current, err := models.GetUserByID(tx, userID)
		if err != nil {
			return err
		}
		if current == nil {
			notFound = true
			return nil
		}
		if input.Email != nil && *input.Email != current.Email {
			other, err := models.GetUserByEmail(tx, *input.Email)
			if err != nil {
				return err
			}
			if other != nil {
				emailTaken = true
				return nil
			}
		}
		_, err = models.UpdateUser(tx, userID, update)
		return err
	})
	if err != nil {
		if store.IsDuplicate(err) {
			security.SendError(c, http.StatusConflict, security.CodeDuplicateResource,
				"Email already exists", "Another account is registered with this email", nil)
			return
		}
		security.SendStoreError(c, err, "Failed to update user")
		return
	}
	if notFound {
		security.SendNotFoundError(c, "user")
		return
	}
	if emailTaken {
		security.SendError(c, http.StatusConflict, security.CodeDuplicateResource,
			"Email already in use", "The new email is already in use by another account", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

// DeleteUser removes a user. A user referenced by monitoring records cannot
// be deleted; the foreign-key violation surfaces as a 409 and the row stays.
func DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		security.SendValidationError(c, "User id must be numeric", nil)
		return
	}

	var affected int64
	err = store.WithTx(c.Request.Context(), config.DB, func(tx *sql.Tx) error {
		n, err := models.DeleteUser(tx, userID)
		affected = n
		return err
	})
	if err != nil {
		if store.IsForeignKey(err) {
			security.SendError(c, http.StatusConflict, security.CodeResourceInUse,
				"Cannot delete user", "The user's data is still referenced by monitoring records", nil)
			return
		}
		security.SendStoreError(c, err, "Failed to delete user")
		return
	}
	if affected == 0 {
		security.SendNotFoundError(c, "user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// GetPatients lists users with the patient role.
func GetPatients(c *gin.Context) {
	var patients []models.Patient
	err := store.WithTx(c.Request.Context(), config.DB, func(tx *sql.Tx) error {
		p, err := models.GetPatients(tx)
		patients = p
		return err
	})
	if err != nil {
		security.SendStoreError(c, err, "Could not retrieve patients")
		return
	}
	c.JSON(http.StatusOK, patients)
}
