package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createUser = `INSERT INTO users (id, first_name, last_name, email, password_hash, phone, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, first_name, last_name, email, password_hash, phone, created_at`

type CreateUserParams struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Phone        pgtype.Text
	CreatedAt    time.Time
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser,
		arg.ID,
		arg.FirstName,
		arg.LastName,
		arg.Email,
		arg.PasswordHash,
		arg.Phone,
		arg.CreatedAt,
	)
	var i User
	err := row.Scan(
		&i.ID,
		&i.FirstName,
		&i.LastName,
		&i.Email,
		&i.PasswordHash,
		&i.Phone,
		&i.CreatedAt,
	)
	return i, err
}

const getUserByEmail = `SELECT id, first_name, last_name, email, password_hash, phone, created_at
FROM users WHERE email = $1`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
	var i User
	err := row.Scan(
		&i.ID,
		&i.FirstName,
		&i.LastName,
		&i.Email,
		&i.PasswordHash,
		&i.Phone,
		&i.CreatedAt,
	)
	return i, err
}

const getUserByID = `SELECT id, first_name, last_name, email, password_hash, phone, created_at
FROM users WHERE id = $1`

func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var i User
	err := row.Scan(
		&i.ID,
		&i.FirstName,
		&i.LastName,
		&i.Email,
		&i.PasswordHash,
		&i.Phone,
		&i.CreatedAt,
	)
	return i, err
}

const createOrganization = `INSERT INTO organizations (id, name, description, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id, name, description, created_at`

type CreateOrganizationParams struct {
	ID          uuid.UUID
	Name        string
	Description pgtype.Text
	CreatedAt   time.Time
}

func (q *Queries) CreateOrganization(ctx context.Context, arg CreateOrganizationParams) (Organization, error) {
	row := q.db.QueryRow(ctx, createOrganization,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.CreatedAt,
	)
	var i Organization
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.CreatedAt,
	)
	return i, err
}

const getOrganizationByID = `SELECT id, name, description, created_at
FROM organizations WHERE id = $1`

func (q *Queries) GetOrganizationByID(ctx context.Context, id uuid.UUID) (Organization, error) {
	row := q.db.QueryRow(ctx, getOrganizationByID, id)
	var i Organization
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.CreatedAt,
	)
	return i, err
}

const getOrganizationForMember = `SELECT o.id, o.name, o.description, o.created_at
FROM organizations o
JOIN organization_members m ON m.organization_id = o.id
WHERE o.id = $1 AND m.user_id = $2`

type GetOrganizationForMemberParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

func (q *Queries) GetOrganizationForMember(ctx context.Context, arg GetOrganizationForMemberParams) (Organization, error) {
	row := q.db.QueryRow(ctx, getOrganizationForMember, arg.ID, arg.UserID)
	var i Organization
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.CreatedAt,
	)
	return i, err
}

const listOrganizationsForUser = `SELECT o.id, o.name, o.description, o.created_at
FROM organizations o
JOIN organization_members m ON m.organization_id = o.id
WHERE m.user_id = $1
ORDER BY o.created_at, o.id`

func (q *Queries) ListOrganizationsForUser(ctx context.Context, userID uuid.UUID) ([]Organization, error) {
	rows, err := q.db.Query(ctx, listOrganizationsForUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Organization
	for rows.Next() {
		var i Organization
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Description,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const isOrganizationMember = `SELECT EXISTS(
	SELECT 1 FROM organization_members WHERE organization_id = $1 AND user_id = $2
)`

type IsOrganizationMemberParams struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
}

func (q *Queries) IsOrganizationMember(ctx context.Context, arg IsOrganizationMemberParams) (bool, error) {
	row := q.db.QueryRow(ctx, isOrganizationMember, arg.OrganizationID, arg.UserID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const addOrganizationMember = `INSERT INTO organization_members (organization_id, user_id, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (organization_id, user_id) DO NOTHING`

type AddOrganizationMemberParams struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	CreatedAt      time.Time
}

func (q *Queries) AddOrganizationMember(ctx context.Context, arg AddOrganizationMemberParams) error {
	_, err := q.db.Exec(ctx, addOrganizationMember, arg.OrganizationID, arg.UserID, arg.CreatedAt)
	return err
}
