package models

import (
	"database/sql"
	"time"
)

type MonitoringRecord struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"user_id" db:"user_id"`
	NamaPasien   string    `json:"namaPasien,omitempty" db:"nama_pasien"`
	GlucoseLevel float64   `json:"glucose_level" db:"glucose_level"`
	HeartRate    float64   `json:"heart_rate" db:"heart_rate"`
	Timestamp    time.Time `json:"timestamp" db:"timestamp"`
}

// AddMonitoringRecord writes a record owned by userID. The timestamp is
// assigned by the caller at write time, never taken from client input.
func AddMonitoringRecord(tx *sql.Tx, userID int64, glucose, heartRate float64, ts time.Time) (int64, error) {
	var id int64
	err := tx.QueryRow(`
		INSERT INTO monitoring (user_id, glucose_level, heart_rate, timestamp)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, userID, glucose, heartRate, ts).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetAllMonitoring returns every record joined with the owning user's name,
// newest first. Used by the admin view.
func GetAllMonitoring(tx *sql.Tx) ([]MonitoringRecord, error) {
	rows, err := tx.Query(`
		SELECT m.id, m.user_id, u.name AS nama_pasien, m.heart_rate, m.glucose_level, m.timestamp
		FROM monitoring m
		JOIN users u ON m.user_id = u.id
		ORDER BY m.timestamp DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []MonitoringRecord{}
	for rows.Next() {
		var r MonitoringRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.NamaPasien, &r.HeartRate, &r.GlucoseLevel, &r.Timestamp); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetMonitoringByUser returns the caller's own history, newest first.
func GetMonitoringByUser(tx *sql.Tx, userID int64) ([]MonitoringRecord, error) {
	rows, err := tx.Query(`
		SELECT id, user_id, heart_rate, glucose_level, timestamp
		FROM monitoring
		WHERE user_id = $1
		ORDER BY timestamp DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []MonitoringRecord{}
	for rows.Next() {
		var r MonitoringRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.HeartRate, &r.GlucoseLevel, &r.Timestamp); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func DeleteMonitoringRecord(tx *sql.Tx, recordID int64) (int64, error) {
	result, err := tx.Exec(`DELETE FROM monitoring WHERE id = $1`, recordID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
