package sqlite

import (
	"fmt"
	"time"

	"github.com/weekplan/weekplan/internal/models"
)

func (s *Store) AddCommitment(commitment models.Commitment) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO commitments (id, start, end, label) VALUES (?, ?, ?, ?)`,
		commitment.ID, commitment.Start.Format(time.RFC3339), commitment.End.Format(time.RFC3339), commitment.Label,
	)
	return err
}

func (s *Store) GetCommitment(id string) (models.Commitment, error) {
	row := s.db.QueryRow("SELECT id, start, end, label FROM commitments WHERE id = ?", id)
	return scanCommitment(row)
}

func (s *Store) GetAllCommitments() ([]models.Commitment, error) {
	rows, err := s.db.Query("SELECT id, start, end, label FROM commitments ORDER BY start")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var commitments []models.Commitment
	for rows.Next() {
		c, err := scanCommitment(rows)
		if err != nil {
			return nil, err
		}
		commitments = append(commitments, c)
	}
	return commitments, rows.Err()
}

func (s *Store) DeleteCommitment(id string) error {
	res, err := s.db.Exec("DELETE FROM commitments WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("commitment with id %s not found", id)
	}
	return nil
}

func scanCommitment(row interface{ Scan(...any) error }) (models.Commitment, error) {
	var c models.Commitment
	var start, end string

	if err := row.Scan(&c.ID, &start, &end, &c.Label); err != nil {
		return models.Commitment{}, err
	}

	var err error
	if c.Start, err = time.Parse(time.RFC3339, start); err != nil {
		return models.Commitment{}, fmt.Errorf("parsing commitment start: %w", err)
	}
	if c.End, err = time.Parse(time.RFC3339, end); err != nil {
		return models.Commitment{}, fmt.Errorf("parsing commitment end: %w", err)
	}

	return c, nil
}
