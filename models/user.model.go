package models

import (
	"database/sql"
	"strconv"
	"time"
)

type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Age          *int      `json:"age" db:"age"`
	Email        string    `json:"email" db:"email"`
	Gender       *string   `json:"gender" db:"gender"`
	Address      *string   `json:"address" db:"address"`
	Role         string    `json:"role" db:"role"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Patient is the reduced view returned by the patient listing.
type Patient struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Age       *int      `json:"age" db:"age"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewUser carries the fields accepted at registration. The password arrives
// here already hashed; plaintext never crosses the repository boundary.
type NewUser struct {
	Name         string
	Age          *int
	Email        string
	Gender       *string
	Address      *string
	PasswordHash string
	Role         string
}

// UserUpdate holds a partial update; nil fields are left untouched.
type UserUpdate struct {
	Name         *string
	Age          *int
	Email        *string
	Gender       *string
	Address      *string
	PasswordHash *string
	Role         *string
}

func GetAllUsers(tx *sql.Tx) ([]User, error) {
	rows, err := tx.Query(`
		SELECT id, name, age, email, gender, address, role, created_at
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Age, &u.Email, &u.Gender, &u.Address, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func GetUserByID(tx *sql.Tx, userID int64) (*User, error) {
	var u User
	err := tx.QueryRow(`
		SELECT id, name, age, email, gender, address, role, created_at
		FROM users
		WHERE id = $1
	`, userID).Scan(&u.ID, &u.Name, &u.Age, &u.Email, &u.Gender, &u.Address, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail includes the password hash for login verification. A missing
// user is (nil, nil), not an error.
func GetUserByEmail(tx *sql.Tx, email string) (*User, error) {
	var u User
	err := tx.QueryRow(`
		SELECT id, name, email, role, password_hash
		FROM users
		WHERE email = $1
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func AddUser(tx *sql.Tx, u NewUser) (int64, error) {
	var id int64
	err := tx.QueryRow(`
		INSERT INTO users (name, age, email, gender, address, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, u.Name, u.Age, u.Email, u.Gender, u.Address, u.PasswordHash, u.Role).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateUser builds an UPDATE from the supplied fields only and returns the
// number of rows affected (0 when no fields were supplied or the id is
// unknown).
func UpdateUser(tx *sql.Tx, userID int64, u UserUpdate) (int64, error) {
	query := "UPDATE users SET "
	args := []interface{}{}
	argIndex := 1

	appendSet := func(column string, value interface{}) {
		query += column + " = $" + strconv.Itoa(argIndex) + ", "
		args = append(args, value)
		argIndex++
	}

	if u.Name != nil {
		appendSet("name", *u.Name)
	}
	if u.Age != nil {
		appendSet("age", *u.Age)
	}
	if u.Email != nil {
		appendSet("email", *u.Email)
	}
	if u.Gender != nil {
		appendSet("gender", *u.Gender)
	}
	if u.Address != nil {
		appendSet("address", *u.Address)
	}
	if u.PasswordHash != nil {
		appendSet("password_hash", *u.PasswordHash)
	}
	if u.Role != nil {
		appendSet("role", *u.Role)
	}

	if len(args) == 0 {
		return 0, nil
	}

	// Remove trailing comma and add WHERE clause
	query = query[:len(query)-2] + " WHERE id = $" + strconv.Itoa(argIndex)
	args = append(args, userID)

	result, err := tx.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func DeleteUser(tx *sql.Tx, userID int64) (int64, error) {
	result, err := tx.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func GetPatients(tx *sql.Tx) ([]Patient, error) {
	rows, err := tx.Query(`
		SELECT id, name, email, age, created_at
		FROM users
		WHERE role = 'patient'
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	patients := []Patient{}
	for rows.Next() {
		var p Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Age, &p.CreatedAt); err != nil {
			return nil, err
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}
