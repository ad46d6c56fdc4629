package controllers

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bagasramadhana99/Glucosense/config"
	"github.com/bagasramadhana99/Glucosense/models"
	"github.com/bagasramadhana99/Glucosense/security"
	"github.com/bagasramadhana99/Glucosense/store"
)

type UpdateBatchSensorsInput struct {
	Glucose   *float64 `json:"glucose"`
	HeartRate *float64 `json:"heart_rate"`
}

type UpdateSensorInput struct {
	Value *float64 `json:"value"`
}

// UpdateBatchSensors overwrites both slots in one statement. If fewer than 2
// rows were affected the response is still 200 but carries a warning; partial
// success is a degraded outcome, not an error.
func UpdateBatchSensors(c *gin.Context) {
	var input UpdateBatchSensorsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		security.SendValidationError(c, "Request body is empty or malformed", err.Error())
		return
	}
	if input.Glucose == nil || input.HeartRate == nil {
		security.SendValidationError(c, "glucose and heart_rate are required", nil)
		return
	}

	var affected int64
	err := store.WithTx(c.Request.Context(), config.DB, func(tx *sql.Tx) error {
		n, err := models.UpdateBatchSensors(tx, *input.Glucose, *input.HeartRate)
		affected = n
		return err
	})
	if err != nil {
		security.SendStoreError(c, err, "Failed to update sensors")
		return
	}

	if affected < 2 {
		c.JSON(http.StatusOK, gin.H{
			"warning":  fmt.Sprintf("Only %d of 2 sensors were updated", affected),
			"affected": affected,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Both sensor values updated successfully"})
}

// UpdateSensorValue overwrites one slot by id; an unknown id is a 404.
func UpdateSensorValue(c *gin.Context) {
	sensorID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		security.SendValidationError(c, "Sensor id must be numeric", nil)
		return
	}

	var input UpdateSensorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		security.SendValidationError(c, "Request body is empty or malformed", err.Error())
		return
	}
	if input.Value == nil {
		security.SendValidationError(c, "value is required", nil)
		return
	}

	var affected int64
	err = store.WithTx(c.Request.Context(), config.DB, func(tx *sql.Tx) error {
		n, err := models.UpdateSensorValue(tx, sensorID, *input.Value)
		affected = n
		return err
	})
	if err != nil {
		security.SendStoreError(c, err, "Failed to update sensor")
		return
	}
	if affected == 0 {
		security.SendNotFoundError(c, "sensor")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Sensor %d value updated successfully", sensorID)})
}

// GetLatestSensorValues reads both slots; a missing slot defaults to 0 here,
// at the response-assembly boundary, not in the repository.
func GetLatestSensorValues(c *gin.Context) {
	var values map[int]float64
	err := store.WithTx(c.Request.Context(), config.DB, func(tx *sql.Tx) error {
		v, err := models.GetCurrentSensorValues(tx)
		values = v
		return err
	})
	if err != nil {
		security.SendStoreError(c, err, "Could not retrieve sensor values")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"glucose":    values[models.SensorGlucose],
		"heart_rate": values[models.SensorHeartRate],
	})
}
