package sqlite

import (
	"context"
	"database/sql"
	"strings"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	db DBTX
}

func newQueries(db DBTX) *queries {
	return &queries{db: db}
}

const invitationColumns = `id, email, name, tenant_id, client_ids, role_group_ids, status,
	invited_by, message, created_at, expires_at, accepted_at, revoked_at, revoked_by`

// invitationRow is the raw column set of the invitations table.
type invitationRow struct {
	ID           string
	Email        string
	Name         sql.NullString
	TenantID     string
	ClientIDs    string
	RoleGroupIDs string
	Status       string
	InvitedBy    string
	Message      sql.NullString
	CreatedAt    string
	ExpiresAt    string
	AcceptedAt   sql.NullString
	RevokedAt    sql.NullString
	RevokedBy    sql.NullString
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInvitation(sc scanner) (invitationRow, error) {
	var r invitationRow
	err := sc.Scan(
		&r.ID, &r.Email, &r.Name, &r.TenantID, &r.ClientIDs, &r.RoleGroupIDs, &r.Status,
		&r.InvitedBy, &r.Message, &r.CreatedAt, &r.ExpiresAt, &r.AcceptedAt, &r.RevokedAt, &r.RevokedBy,
	)
	return r, err
}

type createInvitationParams struct {
	ID           string
	Email        string
	Name         sql.NullString
	TenantID     string
	ClientIDs    string
	RoleGroupIDs string
	Status       string
	InvitedBy    string
	TokenHash    string
	Message      sql.NullString
	CreatedAt    string
	ExpiresAt    string
}

func (q *queries) CreateInvitation(ctx context.Context, p createInvitationParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO invitations (id, email, name, tenant_id, client_ids, role_group_ids, status,
			invited_by, token_hash, message, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Email, p.Name, p.TenantID, p.ClientIDs, p.RoleGroupIDs, p.Status,
		p.InvitedBy, p.TokenHash, p.Message, p.CreatedAt, p.ExpiresAt,
	)
	return err
}

func (q *queries) GetInvitation(ctx context.Context, tenantID, id string) (invitationRow, error) {
	return scanInvitation(q.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE id = ? AND tenant_id = ?`, id, tenantID))
}

func (q *queries) GetInvitationByTokenHash(ctx context.Context, tokenHash string) (invitationRow, error) {
	return scanInvitation(q.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE token_hash = ?`, tokenHash))
}

func (q *queries) GetPendingByEmail(ctx context.Context, tenantID, email string) (invitationRow, error) {
	return scanInvitation(q.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations
		 WHERE tenant_id = ? AND email = ? AND status = 'PENDING'`, tenantID, email))
}

// listFilter is the WHERE clause of a list query, already in column form.
type listFilter struct {
	TenantID      string
	Status        string
	EmailLike     string
	InvitedBy     string
	CreatedAfter  string
	CreatedBefore string
}

func (f listFilter) where() (string, []any) {
	conds := []string{"tenant_id = ?"}
	args := []any{f.TenantID}

	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.EmailLike != "" {
		conds = append(conds, `email LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(f.EmailLike)+"%")
	}
	if f.InvitedBy != "" {
		conds = append(conds, "invited_by = ?")
		args = append(args, f.InvitedBy)
	}
	if f.CreatedAfter != "" {
		conds = append(conds, "created_at >= ?")
		args = append(args, f.CreatedAfter)
	}
	if f.CreatedBefore != "" {
		conds = append(conds, "created_at <= ?")
		args = append(args, f.CreatedBefore)
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func (q *queries) CountInvitationsWhere(ctx context.Context, f listFilter) (int, error) {
	where, args := f.where()
	var n int
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invitations`+where, args...).Scan(&n)
	return n, err
}

func (q *queries) ListInvitations(ctx context.Context, f listFilter, limit, offset int) ([]invitationRow, error) {
	where, args := f.where()
	args = append(args, limit, offset)

	rows, err := q.db.QueryContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations`+where+
			` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []invitationRow
	for rows.Next() {
		r, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type updateInvitationStateParams struct {
	ID         string
	Status     string
	AcceptedAt sql.NullString
	RevokedAt  sql.NullString
	RevokedBy  sql.NullString
}

func (q *queries) UpdateInvitationState(ctx context.Context, p updateInvitationStateParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE invitations SET status = ?, accepted_at = ?, revoked_at = ?, revoked_by = ?
		WHERE id = ?`,
		p.Status, p.AcceptedAt, p.RevokedAt, p.RevokedBy, p.ID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *queries) RotateToken(ctx context.Context, id, tokenHash, expiresAt string) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE invitations SET token_hash = ?, expires_at = ? WHERE id = ?`, tokenHash, expiresAt, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *queries) ExpirePending(ctx context.Context, now string) (map[string]int64, error) {
	rows, err := q.db.QueryContext(ctx,
		`UPDATE invitations SET status = 'EXPIRED' WHERE status = 'PENDING' AND expires_at <= ?
		RETURNING tenant_id`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expired := make(map[string]int64)
	for rows.Next() {
		var tenantID string
		if err := rows.Scan(&tenantID); err != nil {
			return nil, err
		}
		expired[tenantID]++
	}
	return expired, rows.Err()
}

type invitationCounts struct {
	Total, Pending, Accepted, Expired, Revoked, SentToday, SentThisWeek int
}

func (q *queries) CountInvitations(ctx context.Context, tenantID, dayStart, weekStart string) (invitationCounts, error) {
	var c invitationCounts
	err := q.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'PENDING' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'ACCEPTED' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'EXPIRED' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'REVOKED' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0)
		FROM invitations WHERE tenant_id = ?`,
		dayStart, weekStart, tenantID,
	).Scan(&c.Total, &c.Pending, &c.Accepted, &c.Expired, &c.Revoked, &c.SentToday, &c.SentThisWeek)
	return c, err
}

type tenantRow struct {
	ID        string
	Name      string
	CreatedAt string
	UpdatedAt string
}

func (q *queries) UpsertTenant(ctx context.Context, r tenantRow) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO tenants (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = CASE WHEN excluded.name = '' THEN tenants.name ELSE excluded.name END,
			updated_at = excluded.updated_at`,
		r.ID, r.Name, r.CreatedAt, r.UpdatedAt,
	)
	return err
}

func (q *queries) GetTenant(ctx context.Context, id string) (tenantRow, error) {
	var r tenantRow
	err := q.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM tenants WHERE id = ?`, id,
	).Scan(&r.ID, &r.Name, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

type membershipRow struct {
	ID           string
	TenantID     string
	UserID       string
	InvitationID string
	ClientIDs    string
	RoleGroupIDs string
	CreatedAt    string
}

func (q *queries) CreateMembership(ctx context.Context, r membershipRow) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO memberships (id, tenant_id, user_id, invitation_id, client_ids, role_group_ids, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.TenantID, r.UserID, r.InvitationID, r.ClientIDs, r.RoleGroupIDs, r.CreatedAt,
	)
	return err
}

func (q *queries) GetMembership(ctx context.Context, tenantID, userID string) (membershipRow, error) {
	var r membershipRow
	err := q.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, user_id, invitation_id, client_ids, role_group_ids, created_at
		FROM memberships WHERE tenant_id = ? AND user_id = ?`, tenantID, userID,
	).Scan(&r.ID, &r.TenantID, &r.UserID, &r.InvitationID, &r.ClientIDs, &r.RoleGroupIDs, &r.CreatedAt)
	return r, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
