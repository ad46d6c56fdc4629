package models

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUpdateSensorValueUnknownSlot(t *testing.T) {
	tx, mock, done := beginTx(t)
	defer done()

	mock.ExpectExec(`UPDATE sensors SET sensor_value = \$1 WHERE sensor_id = \$2`).
		WithArgs(99.5, 7).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := UpdateSensorValue(tx, 7, 99.5)
	if err != nil {
		t.Fatalf("UpdateSensorValue: %v", err)
	}
	if affected != 0 {
		t.Errorf("got %d rows affected, want 0", affected)
	}
}

func TestUpdateBatchSensorsBothSlots(t *testing.T) {
	tx, mock, done := beginTx(t)
	defer done()

	mock.ExpectExec(`UPDATE sensors`).
		WithArgs(SensorGlucose, SensorHeartRate, 130.0, 72.0).
		WillReturnResult(sqlmock.NewResult(0, 2))

	affected, err := UpdateBatchSensors(tx, 130, 72)
	if err != nil {
		t.Fatalf("UpdateBatchSensors: %v", err)
	}
	if affected != 2 {
		t.Errorf("got %d rows affected, want 2", affected)
	}
}

func TestGetCurrentSensorValues(t *testing.T) {
	tx, mock, done := beginTx(t)
	defer done()

	mock.ExpectQuery(`SELECT sensor_id, sensor_value`).
		WithArgs(SensorGlucose, SensorHeartRate).
		WillReturnRows(sqlmock.NewRows([]string{"sensor_id", "sensor_value"}).
			AddRow(1, 120.5).
			AddRow(2, 85.0))

	values, err := GetCurrentSensorValues(tx)
	if err != nil {
		t.Fatalf("GetCurrentSensorValues: %v", err)
	}
	if values[SensorGlucose] != 120.5 || values[SensorHeartRate] != 85.0 {
		t.Errorf("got %v", values)
	}
}

func TestGetCurrentSensorValuesMissingSlot(t *testing.T) {
	tx, mock, done := beginTx(t)
	defer done()

	mock.ExpectQuery(`SELECT sensor_id, sensor_value`).
		WithArgs(SensorGlucose, SensorHeartRate).
		WillReturnRows(sqlmock.NewRows([]string{"sensor_id", "sensor_value"}).
			AddRow(1, 120.5))

	values, err := GetCurrentSensorValues(tx)
	if err != nil {
		t.Fatalf("GetCurrentSensorValues: %v", err)
	}
	if _, ok := values[SensorHeartRate]; ok {
		t.Error("repository should not invent a value for a missing slot")
	}
}
