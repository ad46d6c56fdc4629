package models

import "database/sql"

// Faq keeps the original Indonesian field names on the wire; they are the
// contract the frontend consumes.
type Faq struct {
	ID        int64  `json:"id" db:"id"`
	Judul     string `json:"judul" db:"judul"`
	Deskripsi string `json:"deskripsi" db:"deskripsi"`
}

func GetAllFaqs(tx *sql.Tx) ([]Faq, error) {
	rows, err := tx.Query(`SELECT id, judul, deskripsi FROM faq ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	faqs := []Faq{}
	for rows.Next() {
		var f Faq
		if err := rows.Scan(&f.ID, &f.Judul, &f.Deskripsi); err != nil {
			return nil, err
		}
		faqs = append(faqs, f)
	}
	return faqs, rows.Err()
}

func AddFaq(tx *sql.Tx, judul, deskripsi string) (int64, error) {
	var id int64
	err := tx.QueryRow(`
		INSERT INTO faq (judul, deskripsi) VALUES ($1, $2) RETURNING id
	`, judul, deskripsi).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func UpdateFaq(tx *sql.Tx, faqID int64, judul, deskripsi string) (int64, error) {
	result, err := tx.Exec(`
		UPDATE faq SET judul = $1, deskripsi = $2 WHERE id = $3
	`, judul, deskripsi, faqID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func DeleteFaq(tx *sql.Tx, faqID int64) (int64, error) {
	result, err := tx.Exec(`DELETE FROM faq WHERE id = $1`, faqID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
