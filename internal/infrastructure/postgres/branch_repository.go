package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo implementación del puerto BranchRepository sobre PostgreSQL (usable con pool o tx).
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador de persistencia para sucursales. Pasar pool o tx (Querier).
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

const branchColumns = `id, code, name, COALESCE(address, ''), COALESCE(phone, ''), is_active, created_at, updated_at`

// Create persiste una sucursal nueva.
func (r *BranchRepo) Create(branch *entity.Branch) error {
	query := `
		INSERT INTO branches (id, code, name, address, phone, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		branch.ID, branch.Code, branch.Name, branch.Address, branch.Phone,
		branch.IsActive, branch.CreatedAt, branch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

// GetByID obtiene una sucursal por ID.
func (r *BranchRepo) GetByID(id string) (*entity.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE id = $1`
	return r.scanOne(query, id)
}

// GetLast devuelve la sucursal creada más recientemente (para generar el código).
func (r *BranchRepo) GetLast() (*entity.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches ORDER BY created_at DESC LIMIT 1`
	return r.scanOne(query)
}

func (r *BranchRepo) scanOne(query string, args ...any) (*entity.Branch, error) {
	var b entity.Branch
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&b.ID, &b.Code, &b.Name, &b.Address, &b.Phone, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return &b, nil
}

// ListByIDs obtiene varias sucursales en una consulta.
func (r *BranchRepo) ListByIDs(ids []string) ([]*entity.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("list branches by ids: %w", err)
	}
	defer rows.Close()
	return scanBranches(rows)
}

// Update actualiza una sucursal existente. El código no se modifica.
func (r *BranchRepo) Update(branch *entity.Branch) error {
	query := `
		UPDATE branches SET name = $2, address = NULLIF($3, ''), phone = NULLIF($4, ''), is_active = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		branch.ID, branch.Name, branch.Address, branch.Phone, branch.IsActive, branch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update branch: %w", err)
	}
	return nil
}

// List lista sucursales con paginación, búsqueda por nombre y filtro de activas.
func (r *BranchRepo) List(limit, offset int, search string, onlyActive bool) ([]*entity.Branch, int, error) {
	ctx := context.Background()
	query := `SELECT ` + branchColumns + ` FROM branches
		WHERE ($3 = '' OR name ILIKE '%' || $3 || '%') AND ($4 = false OR is_active)
		ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset, search, onlyActive)
	if err != nil {
		return nil, 0, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()
	list, err := scanBranches(rows)
	if err != nil {
		return nil, 0, err
	}
	var total int
	err = r.q.QueryRow(ctx,
		`SELECT count(*) FROM branches WHERE ($1 = '' OR name ILIKE '%' || $1 || '%') AND ($2 = false OR is_active)`,
		search, onlyActive,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count branches: %w", err)
	}
	return list, total, nil
}

func scanBranches(rows pgx.Rows) ([]*entity.Branch, error) {
	var out []*entity.Branch
	for rows.Next() {
		var b entity.Branch
		if err := rows.Scan(&b.ID, &b.Code, &b.Name, &b.Address, &b.Phone, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}
