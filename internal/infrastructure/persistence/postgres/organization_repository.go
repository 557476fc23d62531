package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/amirhosseinghanipour/orgauth/internal/application/ports"
	"github.com/amirhosseinghanipour/orgauth/internal/domain"
	"github.com/amirhosseinghanipour/orgauth/internal/infrastructure/persistence/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrganizationRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewOrganizationRepository(q *db.Queries, pool *pgxpool.Pool) *OrganizationRepository {
	return &OrganizationRepository{q: q, pool: pool}
}

func (r *OrganizationRepository) CreateWithMember(ctx context.Context, org *domain.Organization, owner domain.UserID) error {
	return inTx(ctx, r.pool, r.q, func(q *db.Queries) error {
		if _, err := q.CreateOrganization(ctx, db.CreateOrganizationParams{
			ID:          org.ID.UUID,
			Name:        org.Name,
			Description: textFromPtr(org.Description),
			CreatedAt:   org.CreatedAt,
		}); err != nil {
			return mapPostgresError(err)
		}
		return mapPostgresError(q.AddOrganizationMember(ctx, db.AddOrganizationMemberParams{
			OrganizationID: org.ID.UUID,
			UserID:         owner.UUID,
			CreatedAt:      org.CreatedAt,
		}))
	})
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id domain.OrganizationID) (*domain.Organization, error) {
	o, err := r.q.GetOrganizationByID(ctx, id.UUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapPostgresError(err)
	}
	return dbOrganizationToDomain(o), nil
}

func (r *OrganizationRepository) GetForMember(ctx context.Context, id domain.OrganizationID, userID domain.UserID) (*domain.Organization, error) {
	o, err := r.q.GetOrganizationForMember(ctx, db.GetOrganizationForMemberParams{ID: id.UUID, UserID: userID.UUID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapPostgresError(err)
	}
	return dbOrganizationToDomain(o), nil
}

func (r *OrganizationRepository) ListForUser(ctx context.Context, userID domain.UserID) ([]*domain.Organization, error) {
	rows, err := r.q.ListOrganizationsForUser(ctx, userID.UUID)
	if err != nil {
		return nil, mapPostgresError(err)
	}
	out := make([]*domain.Organization, 0, len(rows))
	for _, o := range rows {
		out = append(out, dbOrganizationToDomain(o))
	}
	return out, nil
}

func (r *OrganizationRepository) IsMember(ctx context.Context, id domain.OrganizationID, userID domain.UserID) (bool, error) {
	ok, err := r.q.IsOrganizationMember(ctx, db.IsOrganizationMemberParams{OrganizationID: id.UUID, UserID: userID.UUID})
	if err != nil {
		return false, mapPostgresError(err)
	}
	return ok, nil
}

// AddMember is idempotent; an existing membership is left untouched.
func (r *OrganizationRepository) AddMember(ctx context.Context, id domain.OrganizationID, userID domain.UserID) error {
	err := r.q.AddOrganizationMember(ctx, db.AddOrganizationMemberParams{
		OrganizationID: id.UUID,
		UserID:         userID.UUID,
		CreatedAt:      time.Now().UTC(),
	})
	return mapPostgresError(err)
}

func dbOrganizationToDomain(o db.Organization) *domain.Organization {
	return &domain.Organization{
		ID:          domain.OrganizationID{UUID: o.ID},
		Name:        o.Name,
		Description: ptrFromText(o.Description),
		CreatedAt:   o.CreatedAt,
	}
}

var _ ports.OrganizationRepository = (*OrganizationRepository)(nil)
