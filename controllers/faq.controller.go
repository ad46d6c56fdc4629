package controllers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bagasramadhana99/Glucosense/config"
	"github.com/bagasramadhana99/Glucosense/models"
	"github.com/bagasramadhana99/Glucosense/security"
	"github.com/bagasramadhana99/Glucosense/store"
)

type FaqInput struct {
	Judul     *string `json:"judul"`
	Deskripsi *string `json:"deskripsi"`
}

func GetFaqs(c *gin.Context) {
	var faqs []models.Faq
	err := store.WithTx(c.Request.Context(), config.DB, func(tx *sql.Tx) error {
		f, err := models.GetAllFaqs(tx)
		faqs = f
		return err
	})
	if err != nil {
		security.SendStoreError(c, err, "Could not retrieve FAQ entries")
		return
	}
	c.JSON(http.StatusOK, faqs)
}

func AddFaq(c *gin.Context) {
	var input FaqInput
	if err := c.ShouldBindJSON(&input); err != nil {
		security.SendValidationError(c, "Request body is empty or malformed", err.Error())
		return
	}
	if input.Judul == nil || input.Deskripsi == nil {
		security.SendValidationError(c, "judul and deskripsi are required", nil)
		return
	}

	var newID int64
	err := store.WithTx(c.Request.Context(), config.DB, func(tx *sql.Tx) error {
		id, err := models.AddFaq(tx, *input.Judul, *input.Deskripsi)
		newID = id
		return err
	})
	if err != nil {
		security.SendStoreError(c, err, "Failed to add FAQ entry")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "FAQ added successfully", "id": newID})
}

func UpdateFaq(c *gin.Context) {
	faqID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		security.SendValidationError(c, "FAQ id must be numeric", nil)
		return
	}

	var input FaqInput
	if err := c.ShouldBindJSON(&input); err != nil {
		security.SendValidationError(c, "Request body is empty or malformed", err.Error())
		return
	}
	if input.Judul == nil || input.Deskripsi == nil {
		security.SendValidationError(c, "judul and deskripsi are required", nil)
		return
	}

	var affected int64
	err = store.WithTx(c.Request.Context(), config.DB, func(tx *sql.Tx) error {
		n, err := models.UpdateFaq(tx, faqID, *input.Judul, *input.Deskripsi)
		affected = n
		return err
	})
	if err != nil {
		security.SendStoreError(c, err, "Failed to update FAQ entry")
		return
	}
	if affected == 0 {
		security.SendNotFoundError(c, "FAQ entry")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "FAQ updated successfully"})
}

func DeleteFaq(c *gin.Context) {
	faqID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		security.SendValidationError(c, "FAQ id must be numeric", nil)
		return
	}

	var affected int64
	err = store.WithTx(c.Request.Context(), config.DB, func(tx *sql.Tx) error {
		n, err := models.DeleteFaq(tx, faqID)
		affected = n
		return err
	})
	if err != nil {
		security.SendStoreError(c, err, "Failed to delete FAQ entry")
		return
	}
	if affected == 0 {
		security.SendNotFoundError(c, "FAQ entry")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "FAQ deleted successfully"})
}
