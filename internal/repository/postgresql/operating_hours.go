package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/operatinghours"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/worktime"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type operatingHoursRepository struct {
	db *database.DB
}

func NewOperatingHoursRepository(db *database.DB) operatinghours.OperatingHoursRepository {
	return &operatingHoursRepository{db: db}
}

// Get implements operatinghours.OperatingHoursRepository.
func (r *operatingHoursRepository) Get(ctx context.Context) (*operatinghours.OperatingHours, error) {
	q := GetQuerier(ctx, r.db)

	var hours operatinghours.OperatingHours
	var opening, closing string
	err := q.QueryRow(ctx, `
		SELECT id, to_char(opening_time, 'HH24:MI:SS'), to_char(closing_time, 'HH24:MI:SS'), created_at, updated_at
		FROM operating_hours
		LIMIT 1
	`).Scan(&hours.ID, &opening, &closing, &hours.CreatedAt, &hours.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Persistence("get operating hours", err)
	}

	if hours.OpeningTime, err = worktime.ParseTimeOfDay(opening); err != nil {
		return nil, fmt.Errorf("failed to parse opening time %q: %w", opening, err)
	}
	if hours.ClosingTime, err = worktime.ParseTimeOfDay(closing); err != nil {
		return nil, fmt.Errorf("failed to parse closing time %q: %w", closing, err)
	}
	return &hours, nil
}

// Create implements operatinghours.OperatingHoursRepository.
func (r *operatingHoursRepository) Create(ctx context.Context, hours operatinghours.OperatingHours) (operatinghours.OperatingHours, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return operatinghours.OperatingHours{}, fmt.Errorf("failed to generate operating hours id: %w", err)
	}

	err = q.QueryRow(ctx, `
		INSERT INTO operating_hours (id, opening_time, closing_time)
		VALUES ($1, $2::time, $3::time)
		RETURNING id, created_at, updated_at
	`, id.String(), hours.OpeningTime.String(), hours.ClosingTime.String()).
		Scan(&hours.ID, &hours.CreatedAt, &hours.UpdatedAt)
	if err != nil {
		return operatinghours.OperatingHours{}, mapWriteError("create operating hours", err, operatinghours.ErrOperatingHoursExist)
	}
	return hours, nil
}

// Update implements operatinghours.OperatingHoursRepository.
func (r *operatingHoursRepository) Update(ctx context.Context, hours operatinghours.OperatingHours) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE operating_hours
		SET opening_time = $1::time, closing_time = $2::time, updated_at = NOW()
	`, hours.OpeningTime.String(), hours.ClosingTime.String())
	if err != nil {
		return apperror.Persistence("update operating hours", err)
	}
	if tag.RowsAffected() == 0 {
		return operatinghours.ErrOperatingHoursNotFound
	}
	return nil
}
