package controllers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bagasramadhana99/Glucosense/config"
	"github.com/bagasramadhana99/Glucosense/models"
	"github.com/bagasramadhana99/Glucosense/security"
	"github.com/bagasramadhana99/Glucosense/store"
)

type SaveMonitoringInput struct {
	GlucoseLevel *float64 `json:"glucose_level"`
	HeartRate    *float64 `json:"heart_rate"`
}

// GetMonitoring returns every record with the owning patient's name, newest
// first. Any authenticated user may call it.
func GetMonitoring(c *gin.Context) {
	var records []models.MonitoringRecord
	err := store.WithTx(c.Request.Context(), config.DB, func(tx *sql.Tx) error {
		r, err := models.GetAllMonitoring(tx)
		records = r
		return err
	})
	if err != nil {
		security.SendStoreError(c, err, "Could not retrieve monitoring records")
		return
	}
	c.JSON(http.StatusOK, records)
}

// SaveMonitoring stores a record for the authenticated user. The owner is
// always the token subject; a user id in the body is ignored.
func SaveMonitoring(c *gin.Context) {
	var input SaveMonitoringInput
	if err := c.ShouldBindJSON(&input); err != nil {
		security.SendValidationError(c, "Request body is empty or malformed", err.Error())
		return
	}
	if input.GlucoseLevel == nil || input.HeartRate == nil {
		security.SendValidationError(c, "glucose_level and heart_rate are required", nil)
		return
	}

	userID := security.UserID(c)

	var newID int64
	err := store.WithTx(c.Request.Context(), config.DB, func(tx *sql.Tx) error {
		id, err := models.AddMonitoringRecord(tx, userID, *input.GlucoseLevel, *input.HeartRate, time.Now())
		newID = id
		return err
	})
	if err != nil {
		if store.IsForeignKey(err) {
			// Token subject no longer exists.
			security.SendError(c, http.StatusConflict, security.CodeResourceInUse,
				"Unknown user", "The authenticated user no longer exists", nil)
			return
		}
		security.SendStoreError(c, err, "Failed to save monitoring record")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Monitoring record saved successfully", "id": newID})
}

// GetMyMonitoring returns the caller's own history, scoped by the token
// subject.
func GetMyMonitoring(c *gin.Context) {
	userID := security.UserID(c)

	var records []models.MonitoringRecord
	err := store.WithTx(c.Request.Context(), config.DB, func(tx *sql.Tx) error {
		r, err := models.GetMonitoringByUser(tx, userID)
		records = r
		return err
	})
	if err != nil {
		security.SendStoreError(c, err, "Could not retrieve monitoring history")
		return
	}
	c.JSON(http.StatusOK, records)
}

// DeleteMonitoring removes a record by id. Any authenticated user may delete
// any record; there is no ownership check.
func DeleteMonitoring(c *gin.Context) {
	recordID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		security.SendValidationError(c, "Monitoring id must be numeric", nil)
		return
	}

	var affected int64
	err = store.WithTx(c.Request.Context(), config.DB, func(tx *sql.Tx) error {
		n, err := models.DeleteMonitoringRecord(tx, recordID)
		affected = n
		return err
	})
	if err != nil {
		security.SendStoreError(c, err, "Failed to delete monitoring record")
		return
	}
	if affected == 0 {
		security.SendNotFoundError(c, "monitoring record")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Monitoring record deleted successfully"})
}
