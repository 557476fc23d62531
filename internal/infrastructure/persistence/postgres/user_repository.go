package postgres

import (
	"context"
	"errors"

	"github.com/amirhosseinghanipour/orgauth/internal/application/ports"
	"github.com/amirhosseinghanipour/orgauth/internal/domain"
	"github.com/amirhosseinghanipour/orgauth/internal/infrastructure/persistence/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewUserRepository(q *db.Queries, pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{q: q, pool: pool}
}

// CreateWithOrganization inserts the user, its default organization and the
// owning membership in one transaction.
func (r *UserRepository) CreateWithOrganization(ctx context.Context, user *domain.User, org *domain.Organization) error {
	return inTx(ctx, r.pool, r.q, func(q *db.Queries) error {
		if _, err := q.CreateUser(ctx, db.CreateUserParams{
			ID:           user.ID.UUID,
			FirstName:    user.FirstName,
			LastName:     user.LastName,
			Email:        user.Email,
			PasswordHash: user.PasswordHash,
			Phone:        textFromPtr(user.Phone),
			CreatedAt:    user.CreatedAt,
		}); err != nil {
			return mapPostgresError(err)
		}
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
			UserID:         user.ID.UUID,
			CreatedAt:      org.CreatedAt,
		}))
	})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapPostgresError(err)
	}
	return dbUserToDomain(u), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	u, err := r.q.GetUserByID(ctx, id.UUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapPostgresError(err)
	}
	return dbUserToDomain(u), nil
}

func dbUserToDomain(u db.User) *domain.User {
	return &domain.User{
		ID:           domain.UserID{UUID: u.ID},
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Phone:        ptrFromText(u.Phone),
		CreatedAt:    u.CreatedAt,
	}
}

func textFromPtr(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func ptrFromText(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

var _ ports.UserRepository = (*UserRepository)(nil)
