package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skip2/go-qrcode"

	"gymDeskAPI/internal/apperr"
	"gymDeskAPI/internal/member"
	"gymDeskAPI/internal/pagination"
)

type MemberService struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewMemberService(db *pgxpool.Pool, log *slog.Logger) *MemberService {
	return &MemberService{db: db, log: log}
}

const memberColumns = `id, member_code, first_name, last_name, email, phone,
	date_of_birth, gender, address, emergency_contact, emergency_phone,
	photo, notes, is_active, created_at, updated_at`

func scanMember(row pgx.Row) (member.Member, error) {
	var m member.Member
	err := row.Scan(
		&m.ID, &m.MemberCode, &m.FirstName, &m.LastName, &m.Email, &m.Phone,
		&m.DateOfBirth, &m.Gender, &m.Address, &m.EmergencyContact,
		&m.EmergencyPhone, &m.Photo, &m.Notes, &m.IsActive,
		&m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

// qrImage renders the member code as a base64 PNG for badge printing and the
// dashboard's scanner preview.
func qrImage(memberCode string) (string, error) {
	png, err := qrcode.Encode(memberCode, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR png: %w", err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

func (s *MemberService) Create(ctx context.Context, req member.CreateMemberRequest) (*member.MemberWithQR, error) {
	memberCode := uuid.New().String()

	var dob *time.Time
	if req.DateOfBirth != "" {
		d, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, apperr.Validation("invalid dateOfBirth", nil)
		}
		dob = &d
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO members (member_code, first_name, last_name, email, phone,
			date_of_birth, gender, address, emergency_contact, emergency_phone,
			photo, notes)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, NULLIF($7, ''),
			NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''),
			NULLIF($12, ''))
		RETURNING `+memberColumns,
		memberCode, req.FirstName, req.LastName, req.Email, req.Phone, dob,
		req.Gender, req.Address, req.EmergencyContact, req.EmergencyPhone,
		req.Photo, req.Notes,
	)

	m, err := scanMember(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperr.Conflict("a member with this email already exists", nil)
		}
		return nil, apperr.Internal("failed to create member", err)
	}

	img, err := qrImage(m.MemberCode)
	if err != nil {
		return nil, apperr.Internal("failed to generate member QR code", err)
	}

	s.log.Info("member created", "memberId", m.ID)
	return &member.MemberWithQR{Member: m, QRCodeImage: img}, nil
}

func (s *MemberService) Get(ctx context.Context, id uuid.UUID) (*member.MemberWithQR, error) {
	row := s.db.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1`, id)
	m, err := scanMember(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("member not found")
		}
		return nil, apperr.Internal("failed to fetch member", err)
	}

	img, err := qrImage(m.MemberCode)
	if err != nil {
		return nil, apperr.Internal("failed to generate member QR code", err)
	}
	return &member.MemberWithQR{Member: m, QRCodeImage: img}, nil
}

func (s *MemberService) List(ctx context.Context, q member.ListMembersQuery) ([]member.Member, pagination.Pagination, error) {
	where := ""
	args := []any{}
	cond := func(clause string, arg any) {
		args = append(args, arg)
		if where == "" {
			where = "WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(clause, len(args))
	}

	if q.Search != "" {
		cond("(first_name ILIKE $%d OR last_name ILIKE $%[1]d)", "%"+q.Search+"%")
	}
	if q.IsActive != nil {
		cond("is_active = $%d", *q.IsActive)
	}

	var total int
	if err := s.db.QueryRow(ctx, "SELECT count(*) FROM members "+where, args...).Scan(&total); err != nil {
		return nil, pagination.Pagination{}, apperr.Internal("failed to count members", err)
	}

	page, limit := pagination.Clamp(q.Page, q.Limit)
	query := `SELECT ` + memberColumns + ` FROM members ` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, (page-1)*limit)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, pagination.Pagination{}, apperr.Internal("failed to fetch members", err)
	}
	defer rows.Close()

	members := []member.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, pagination.Pagination{}, apperr.Internal("failed to scan member", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, pagination.Pagination{}, apperr.Internal("failed to fetch members", err)
	}

	return members, pagination.New(page, limit, total), nil
}

func (s *MemberService) Update(ctx context.Context, id uuid.UUID, req member.UpdateMemberRequest) (*member.Member, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE members
		SET first_name        = COALESCE($2, first_name),
		    last_name         = COALESCE($3, last_name),
		    email             = COALESCE($4, email),
		    phone             = COALESCE($5, phone),
		    gender            = COALESCE($6, gender),
		    address           = COALESCE($7, address),
		    emergency_contact = COALESCE($8, emergency_contact),
		    emergency_phone   = COALESCE($9, emergency_phone),
		    photo             = COALESCE($10, photo),
		    notes             = COALESCE($11, notes),
		    is_active         = COALESCE($12, is_active),
		    updated_at        = now()
		WHERE id = $1
		RETURNING `+memberColumns,
		id, req.FirstName, req.LastName, req.Email, req.Phone, req.Gender,
		req.Address, req.EmergencyContact, req.EmergencyPhone, req.Photo,
		req.Notes, req.IsActive,
	)

	m, err := scanMember(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("member not found")
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperr.Conflict("a member with this email already exists", nil)
		}
		return nil, apperr.Internal("failed to update member", err)
	}

	return &m, nil
}

// Deactivate is the directory's delete: members are never hard-deleted, their
// account-active flag is flipped so history keeps its references.
func (s *MemberService) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE members SET is_active = false, updated_at = now() WHERE id = $1
	`, id)
	if err != nil {
		return apperr.Internal("failed to deactivate member", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("member not found")
	}

	s.log.Info("member deactivated", "memberId", id)
	return nil
}
