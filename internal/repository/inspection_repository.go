package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/inspection-service/internal/domain"
)

// InspectionFilter captures dashboard search parameters.
type InspectionFilter struct {
	// Search is matched case-insensitively as a substring against the
	// vehicle registration and the inspector name. Empty means no filter.
	Search string
}

// InspectionRepository encapsulates report persistence. Reports are
// append-only: there is deliberately no update or delete method.
type InspectionRepository interface {
	Create(ctx context.Context, report *domain.InspectionReport) error
	GetByID(ctx context.Context, id string) (*domain.InspectionReport, error)
	List(ctx context.Context, filter InspectionFilter) ([]domain.InspectionReport, error)
}

type inspectionRepository struct {
	pool *pgxpool.Pool
}

// NewInspectionRepository instantiates repository.
func NewInspectionRepository(pool *pgxpool.Pool) InspectionRepository {
	return &inspectionRepository{pool: pool}
}

func (r *inspectionRepository) Create(ctx context.Context, report *domain.InspectionReport) error {
	sectionA, err := json.Marshal(report.SectionA)
	if err != nil {
		return fmt.Errorf("marshal section A: %w", err)
	}
	sectionB, err := json.Marshal(report.SectionB)
	if err != nil {
		return fmt.Errorf("marshal section B: %w", err)
	}

	const query = `
        INSERT INTO inspections (inspector_name, vehicle_reg, inspection_date, road_worthiness, insurance, section_a, section_b, is_completed)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		report.InspectorName,
		report.Header.VehicleReg,
		report.Header.Date,
		report.Header.RoadWorthiness,
		report.Header.Insurance,
		sectionA,
		sectionB,
		report.IsCompleted,
	).Scan(&report.ID, &report.CreatedAt)
}

func (r *inspectionRepository) GetByID(ctx context.Context, id string) (*domain.InspectionReport, error) {
	const query = `
        SELECT id, inspector_name, vehicle_reg, inspection_date, road_worthiness, insurance, section_a, section_b, is_completed, created_at
        FROM inspections WHERE id=$1`

	row := r.pool.QueryRow(ctx, query, id)
	report, err := scanInspection(row)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (r *inspectionRepository) List(ctx context.Context, filter InspectionFilter) ([]domain.InspectionReport, error) {
	base := `SELECT id, inspector_name, vehicle_reg, inspection_date, road_worthiness, insurance, section_a, section_b, is_completed, created_at
             FROM inspections`
	clauses := []string{"1=1"}
	args := []any{}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(vehicle_reg ILIKE %s OR inspector_name ILIKE %s)", placeholder, placeholder))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC`, base, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.InspectionReport
	for rows.Next() {
		report, err := scanInspection(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *report)
	}
	return result, rows.Err()
}

func scanInspection(row pgx.Row) (*domain.InspectionReport, error) {
	var (
		report   domain.InspectionReport
		sectionA []byte
		sectionB []byte
	)
	if err := row.Scan(
		&report.ID,
		&report.InspectorName,
		&report.Header.VehicleReg,
		&report.Header.Date,
		&report.Header.RoadWorthiness,
		&report.Header.Insurance,
		&sectionA,
		&sectionB,
		&report.IsCompleted,
		&report.CreatedAt,
	); err != nil {
		return nil, err
	}

	// JSONB arrays preserve catalog order on the way back out.
	if err := json.Unmarshal(sectionA, &report.SectionA); err != nil {
		return nil, fmt.Errorf("unmarshal section A: %w", err)
	}
	if err := json.Unmarshal(sectionB, &report.SectionB); err != nil {
		return nil, fmt.Errorf("unmarshal section B: %w", err)
	}
	return &report, nil
}
