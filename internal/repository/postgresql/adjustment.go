package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// adjustmentRepository stores penalties and bonuses in their own tables
// behind one interface.
type adjustmentRepository struct {
	db *database.DB
}

func NewAdjustmentRepository(db *database.DB) adjustment.AdjustmentRepository {
	return &adjustmentRepository{db: db}
}

func tableFor(kind adjustment.Kind) (string, error) {
	switch kind {
	case adjustment.KindPenalty:
		return "penalties", nil
	case adjustment.KindBonus:
		return "bonuses", nil
	default:
		return "", adjustment.ErrInvalidKind
	}
}

func scanAdjustments(rows pgx.Rows) ([]adjustment.Adjustment, error) {
	defer rows.Close()

	result := []adjustment.Adjustment{}
	for rows.Next() {
		var item adjustment.Adjustment
		var kind string
		if err := rows.Scan(&item.ID, &item.AttendanceID, &kind, &item.Description, &item.Price, &item.CreatedAt); err != nil {
			return nil, err
		}
		item.Kind = adjustment.Kind(kind)
		result = append(result, item)
	}
	return result, rows.Err()
}

// Create implements adjustment.AdjustmentRepository.
func (r *adjustmentRepository) Create(ctx context.Context, item adjustment.Adjustment) (adjustment.Adjustment, error) {
	table, err := tableFor(item.Kind)
	if err != nil {
		return adjustment.Adjustment{}, err
	}
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return adjustment.Adjustment{}, fmt.Errorf("failed to generate %s id: %w", item.Kind, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, attendance_id, description, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, table)
	err = q.QueryRow(ctx, query, id.String(), item.AttendanceID, item.Description, item.Price).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return adjustment.Adjustment{}, apperror.Persistence("create "+string(item.Kind), err)
	}
	return item, nil
}

// ListByAttendance implements adjustment.AdjustmentRepository.
func (r *adjustmentRepository) ListByAttendance(ctx context.Context, attendanceID string) ([]adjustment.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, attendance_id, 'penalty' AS kind, description, price, created_at
		FROM penalties WHERE attendance_id = $1
		UNION ALL
		SELECT id, attendance_id, 'bonus' AS kind, description, price, created_at
		FROM bonuses WHERE attendance_id = $1
		ORDER BY created_at ASC
	`, attendanceID)
	if err != nil {
		return nil, apperror.Persistence("list penalties and bonuses", err)
	}
	items, err := scanAdjustments(rows)
	if err != nil {
		return nil, apperror.Persistence("list penalties and bonuses", err)
	}
	return items, nil
}

// List implements adjustment.AdjustmentRepository.
func (r *adjustmentRepository) List(ctx context.Context, kind adjustment.Kind) ([]adjustment.Adjustment, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT id, attendance_id, $1::text, description, price, created_at
		FROM %s
		ORDER BY created_at ASC
	`, table)
	rows, err := q.Query(ctx, query, string(kind))
	if err != nil {
		return nil, apperror.Persistence("list "+string(kind), err)
	}
	items, err := scanAdjustments(rows)
	if err != nil {
		return nil, apperror.Persistence("list "+string(kind), err)
	}
	return items, nil
}

// Delete implements adjustment.AdjustmentRepository.
func (r *adjustmentRepository) Delete(ctx context.Context, kind adjustment.Kind, id string) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return apperror.Persistence("delete "+string(kind), err)
	}
	if tag.RowsAffected() == 0 {
		return adjustment.ErrAdjustmentNotFound
	}
	return nil
}
