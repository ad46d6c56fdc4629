package controllers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/bagasramadhana99/Glucosense/ml"
	"github.com/bagasramadhana99/Glucosense/security"
)

// PredictController serves the two inference endpoints. The models are loaded
// once at startup and injected here; a nil model means the artifact was
// missing and the corresponding endpoint answers 503 while the rest of the
// service keeps running.
type PredictController struct {
	Risk  *ml.RiskModel
	Trend *ml.TrendModel
}

type RiskPredictionInput struct {
	Gender         *int     `json:"gender"`
	Age            *int     `json:"age"`
	Hypertension   *int     `json:"hypertension"`
	HeartDisease   *int     `json:"heart_disease"`
	SmokingHistory *int     `json:"smoking_history"`
	Berat          *float64 `json:"berat"`
	Tinggi         *float64 `json:"tinggi"`
	HbA1cLevel     *float64 `json:"hba1c_level"`
	BloodGlucose   *float64 `json:"blood_glucose"`
}

type TrendPredictionInput struct {
	GlucoseReadings []float64 `json:"glucose_readings"`
}

// PredictRisk computes BMI from weight and height, assembles the fixed
// feature vector and runs one forward pass through the risk classifier.
func (pc *PredictController) PredictRisk(c *gin.Context) {
	if pc.Risk == nil {
		security.SendError(c, http.StatusServiceUnavailable, security.CodeModelUnavailable,
			"Prediction unavailable", "The risk prediction model is not available on this server", nil)
		return
	}

	var input RiskPredictionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		security.SendValidationError(c, "Request body is empty or malformed", err.Error())
		return
	}

	present := map[string]bool{
		"gender":          input.Gender != nil,
		"age":             input.Age != nil,
		"hypertension":    input.Hypertension != nil,
		"heart_disease":   input.HeartDisease != nil,
		"smoking_history": input.SmokingHistory != nil,
		"berat":           input.Berat != nil,
		"tinggi":          input.Tinggi != nil,
		"hba1c_level":     input.HbA1cLevel != nil,
		"blood_glucose":   input.BloodGlucose != nil,
	}
	missing := lo.Filter(lo.Keys(present), func(field string, _ int) bool {
		return !present[field]
	})
	if len(missing) > 0 {
		security.SendValidationError(c, "Incomplete input data", gin.H{"missing_fields": missing})
		return
	}
	if *input.Tinggi <= 0 {
		security.SendValidationError(c, "tinggi must be a positive height in centimeters", nil)
		return
	}

	heightM := *input.Tinggi / 100
	bmi := *input.Berat / (heightM * heightM)

	features := []float64{
		float64(*input.Gender),
		float64(*input.Age),
		float64(*input.Hypertension),
		float64(*input.HeartDisease),
		float64(*input.SmokingHistory),
		bmi,
		*input.HbA1cLevel,
		*input.BloodGlucose,
	}

	prediction, err := pc.Risk.Predict(features)
	if err != nil {
		security.SendError(c, http.StatusInternalServerError, security.CodeInternalError,
			"Prediction failed", "An internal error occurred while computing the prediction", nil)
		return
	}

	result := "Risiko Rendah"
	if prediction == 1 {
		result = "Risiko Tinggi"
	}

	c.JSON(http.StatusOK, gin.H{
		"prediction_code": prediction,
		"result":          result,
		"message":         "Prediction computed successfully",
	})
}

// PredictGlucoseTrend forecasts the coming days of glucose values from the
// last three readings.
func (pc *PredictController) PredictGlucoseTrend(c *gin.Context) {
	if pc.Trend == nil {
		security.SendError(c, http.StatusServiceUnavailable, security.CodeModelUnavailable,
			"Prediction unavailable", "The glucose trend model is not available on this server", nil)
		return
	}

	var input TrendPredictionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		security.SendValidationError(c, "Request body is empty or malformed", err.Error())
		return
	}
	if len(input.GlucoseReadings) != ml.TrendWindow {
		security.SendValidationError(c, "glucose_readings must contain exactly 3 values", nil)
		return
	}

	predictions, err := pc.Trend.Forecast(input.GlucoseReadings)
	if err != nil {
		security.SendError(c, http.StatusInternalServerError, security.CodeInternalError,
			"Prediction failed", "An internal error occurred while computing the forecast", nil)
		return
	}

	rounded := lo.Map(predictions, func(v float64, _ int) float64 {
		return math.Round(v*100) / 100
	})
	average := lo.Sum(predictions) / float64(len(predictions))

	c.JSON(http.StatusOK, gin.H{
		"message":            "Glucose trend prediction computed successfully",
		"predictions":        rounded,
		"average_prediction": math.Round(average*100) / 100,
	})
}
