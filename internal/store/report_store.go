package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Seohyeoksu/lunchlens/internal/domain"
)

type ReportStore struct {
	db *sql.DB
}

func NewReportStore(db *sql.DB) *ReportStore {
	return &ReportStore{db: db}
}

func (s *ReportStore) Create(ctx context.Context, sourceLabel, body string) (*domain.Report, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (id, source_label, body) VALUES (?, ?, ?)
	`, id, sourceLabel, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *ReportStore) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	report := &domain.Report{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, source_label, body, created_at FROM reports WHERE id = ?
	`, id).Scan(&report.ID, &report.SourceLabel, &report.Body, &report.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return report, nil
}

func (s *ReportStore) ListRecent(ctx context.Context, limit int) ([]*domain.Report, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_label, body, created_at FROM reports
		ORDER BY created_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []*domain.Report
	for rows.Next() {
		report := &domain.Report{}
		if err := rows.Scan(&report.ID, &report.SourceLabel, &report.Body, &report.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}

	return reports, nil
}

func (s *ReportStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM reports WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("report not found")
	}

	return nil
}
