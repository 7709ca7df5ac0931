package store

import (
	"database/sql"
	"fmt"
	"time"

	"namecheck/types"
)

// SaveVersion records a new model version and marks it active, deactivating
// the previous one in the same transaction so there is never a window with
// two active versions or none.
func (s *Store) SaveVersion(version string, accuracy float64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE model_versions SET is_active = FALSE WHERE is_active = TRUE"); err != nil {
		return fmt.Errorf("deactivate previous version: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO model_versions (version, accuracy, created_at, is_active)
		VALUES (?, ?, ?, TRUE)`,
		version, accuracy, time.Now(),
	); err != nil {
		return fmt.Errorf("insert model version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// SaveRetrainedVersion records a new active model version and marks the
// consumed feedback processed in one transaction. A retraining cycle either
// commits both or neither, so a failure never strands feedback half-consumed.
func (s *Store) SaveRetrainedVersion(version string, accuracy float64, feedbackIDs []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE model_versions SET is_active = FALSE WHERE is_active = TRUE"); err != nil {
		return fmt.Errorf("deactivate previous version: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO model_versions (version, accuracy, created_at, is_active)
		VALUES (?, ?, ?, TRUE)`,
		version, accuracy, time.Now(),
	); err != nil {
		return fmt.Errorf("insert model version: %w", err)
	}

	for _, id := range feedbackIDs {
		if _, err := tx.Exec("UPDATE feedback SET processed = TRUE WHERE id = ?", id); err != nil {
			return fmt.Errorf("mark feedback %s processed: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ListVersions returns all model versions, newest first.
func (s *Store) ListVersions() ([]types.ModelVersion, error) {
	rows, err := s.db.Query(`
		SELECT version, accuracy, created_at, is_active
		FROM model_versions
		ORDER BY created_at DESC, version DESC`)
	if err != nil {
		return nil, fmt.Errorf("list model versions: %w", err)
	}
	defer rows.Close()

	var versions []types.ModelVersion
	for rows.Next() {
		var v types.ModelVersion
		if err := rows.Scan(&v.Version, &v.Accuracy, &v.CreatedAt, &v.IsActive); err != nil {
			return nil, fmt.Errorf("scan model version: %w", err)
		}
		versions = append(versions, v)
	}

	return versions, rows.Err()
}

// ActiveVersion returns the currently active model version, or nil when no
// model has been trained yet.
func (s *Store) ActiveVersion() (*types.ModelVersion, error) {
	var v types.ModelVersion
	err := s.db.QueryRow(`
		SELECT version, accuracy, created_at, is_active
		FROM model_versions
		WHERE is_active = TRUE`).Scan(&v.Version, &v.Accuracy, &v.CreatedAt, &v.IsActive)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active version: %w", err)
	}
	return &v, nil
}
