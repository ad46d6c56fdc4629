package models

import "database/sql"

// The sensors table holds exactly two slots, seeded by migration: slot 1 is
// the glucose sensor, slot 2 the heart-rate sensor. Updates overwrite in
// place; nothing is historized and slots are never created at runtime.
const (
	SensorGlucose   = 1
	SensorHeartRate = 2
)

// UpdateSensorValue overwrites one slot and reports how many rows matched
// (0 when the slot id is unknown).
func UpdateSensorValue(tx *sql.Tx, sensorID int, value float64) (int64, error) {
	result, err := tx.Exec(`UPDATE sensors SET sensor_value = $1 WHERE sensor_id = $2`, value, sensorID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// UpdateBatchSensors overwrites both slots in a single statement. Each slot's
// new value depends only on its own id, so the assignments stay independent
// even though they are issued together. Fewer than 2 affected rows means a
// slot was missing; the caller treats that as degraded success, not failure.
func UpdateBatchSensors(tx *sql.Tx, glucose, heartRate float64) (int64, error) {
	result, err := tx.Exec(`
		UPDATE sensors
		SET sensor_value = CASE sensor_id
			WHEN $1 THEN $3
			WHEN $2 THEN $4
		END
		WHERE sensor_id IN ($1, $2)
	`, SensorGlucose, SensorHeartRate, glucose, heartRate)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// GetCurrentSensorValues reads both slots in one pass. A missing slot is
// simply absent from the map; defaulting to 0 happens where the response is
// assembled.
func GetCurrentSensorValues(tx *sql.Tx) (map[int]float64, error) {
	rows, err := tx.Query(`
		SELECT sensor_id, sensor_value
		FROM sensors
		WHERE sensor_id IN ($1, $2)
	`, SensorGlucose, SensorHeartRate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := map[int]float64{}
	for rows.Next() {
		var id int
		var value float64
		if err := rows.Scan(&id, &value); err != nil {
			return nil, err
		}
		values[id] = value
	}
	return values, rows.Err()
}
