package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/akarneev/shelfmark/internal/errs"
	"github.com/akarneev/shelfmark/internal/model"
)

// ProfileRepo implements ProfileRepository using PostgreSQL.
type ProfileRepo struct{ db *DB }

// NewProfileRepo constructs a profile repository.
func NewProfileRepo(db *DB) *ProfileRepo { return &ProfileRepo{db: db} }

// ListByOwner returns all profiles of an owner, earliest-created first.
func (r *ProfileRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Profile, error) {
	const q = `
SELECT id, owner_id, name, color, is_default, created_at
FROM profiles WHERE owner_id=$1 ORDER BY created_at ASC`
	rows, err := r.db.Pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Profile
	for rows.Next() {
		var p model.Profile
		if err = rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Color, &p.IsDefault, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get returns a single profile owned by ownerID.
func (r *ProfileRepo) Get(ctx context.Context, ownerID, profileID uuid.UUID) (*model.Profile, error) {
	const q = `
SELECT id, owner_id, name, color, is_default, created_at
FROM profiles WHERE id=$1 AND owner_id=$2`
	row := r.db.Pool.QueryRow(ctx, q, profileID, ownerID)
	var p model.Profile
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Color, &p.IsDefault, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetDefault returns the default profile, or the earliest-created one when no
// default flag is set. ErrNotFound means the owner has zero profiles.
func (r *ProfileRepo) GetDefault(ctx context.Context, ownerID uuid.UUID) (*model.Profile, error) {
	const q = `
SELECT id, owner_id, name, color, is_default, created_at
FROM profiles WHERE owner_id=$1
ORDER BY is_default DESC, created_at ASC LIMIT 1`
	row := r.db.Pool.QueryRow(ctx, q, ownerID)
	var p model.Profile
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Color, &p.IsDefault, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// EnsureDefault repairs the single-default invariant inside one transaction:
// inserts candidate when the owner has no profiles, promotes the
// earliest-created profile when none is default, no-ops otherwise.
func (r *ProfileRepo) EnsureDefault(
	ctx context.Context, ownerID uuid.UUID, candidate *model.Profile,
) (id uuid.UUID, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return uuid.Nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	if err = lockOwner(ctx, tx, ownerID); err != nil {
		return uuid.Nil, err
	}

	const sel = `SELECT id, is_default FROM profiles WHERE owner_id=$1 ORDER BY created_at ASC`
	rows, err := tx.Query(ctx, sel, ownerID)
	if err != nil {
		return uuid.Nil, err
	}
	var (
		ids        []uuid.UUID
		hasDefault bool
	)
	for rows.Next() {
		var (
			pid uuid.UUID
			def bool
		)
		if err = rows.Scan(&pid, &def); err != nil {
			rows.Close()
			return uuid.Nil, err
		}
		ids = append(ids, pid)
		hasDefault = hasDefault || def
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return uuid.Nil, err
	}

	switch {
	case len(ids) == 0:
		const ins = `INSERT INTO profiles (id, owner_id, name, color, is_default) VALUES ($1,$2,$3,$4,true)`
		if _, err = tx.Exec(ctx, ins, candidate.ID, ownerID, candidate.Name, candidate.Color); err != nil {
			return uuid.Nil, err
		}
		return candidate.ID, nil
	case !hasDefault:
		const promote = `UPDATE profiles SET is_default=true WHERE id=$1 AND owner_id=$2`
		if _, err = tx.Exec(ctx, promote, ids[0], ownerID); err != nil {
			return uuid.Nil, err
		}
		return ids[0], nil
	default:
		return uuid.Nil, nil
	}
}

// Create inserts a profile. A default-flagged insert first clears the flag on
// the owner's other profiles within the same serialized transaction.
func (r *ProfileRepo) Create(ctx context.Context, p *model.Profile) (err error) {
	const ins = `INSERT INTO profiles (id, owner_id, name, color, is_default) VALUES ($1,$2,$3,$4,$5)`

	if !p.IsDefault {
		_, err = r.db.Pool.Exec(ctx, ins, p.ID, p.OwnerID, p.Name, p.Color, false)
		return err
	}

	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	if err = lockOwner(ctx, tx, p.OwnerID); err != nil {
		return err
	}
	const clear = `UPDATE profiles SET is_default=false WHERE owner_id=$1 AND is_default`
	if _, err = tx.Exec(ctx, clear, p.OwnerID); err != nil {
		return err
	}
	_, err = tx.Exec(ctx, ins, p.ID, p.OwnerID, p.Name, p.Color, true)
	return err
}

// Update applies a partial rename/recolor. NULL arguments keep current values.
func (r *ProfileRepo) Update(ctx context.Context, ownerID, profileID uuid.UUID, upd model.UpdateProfile) error {
	const q = `
UPDATE profiles SET name=COALESCE($3, name), color=COALESCE($4, color)
WHERE id=$1 AND owner_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, profileID, ownerID, upd.Name, upd.Color)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// SetDefault moves the default flag to profileID. The old flag is cleared
// before the new one is set: the partial unique index on (owner_id) checks
// each row as the update touches it, so a set-before-clear order would
// collide with the still-flagged previous default.
func (r *ProfileRepo) SetDefault(ctx context.Context, ownerID, profileID uuid.UUID) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	if err = lockOwner(ctx, tx, ownerID); err != nil {
		return err
	}

	const sel = `SELECT 1 FROM profiles WHERE id=$1 AND owner_id=$2`
	var one int
	if err = tx.QueryRow(ctx, sel, profileID, ownerID).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.ErrNotFound
		}
		return err
	}

	const clear = `UPDATE profiles SET is_default=false WHERE owner_id=$1 AND is_default AND id<>$2`
	if _, err = tx.Exec(ctx, clear, ownerID, profileID); err != nil {
		return err
	}
	const set = `UPDATE profiles SET is_default=true WHERE id=$1 AND owner_id=$2`
	_, err = tx.Exec(ctx, set, profileID, ownerID)
	return err
}

// Delete removes a profile and cascades over its bookmarks. The cascade is
// unconditional; "last profile" protection is presentation-layer policy.
func (r *ProfileRepo) Delete(ctx context.Context, ownerID, profileID uuid.UUID) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	if err = lockOwner(ctx, tx, ownerID); err != nil {
		return err
	}

	const sel = `SELECT 1 FROM profiles WHERE id=$1 AND owner_id=$2 FOR UPDATE`
	var one int
	if err = tx.QueryRow(ctx, sel, profileID, ownerID).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.ErrNotFound
		}
		return err
	}

	const delBookmarks = `DELETE FROM bookmarks WHERE profile_id=$1 AND owner_id=$2`
	if _, err = tx.Exec(ctx, delBookmarks, profileID, ownerID); err != nil {
		return err
	}
	const delProfile = `DELETE FROM profiles WHERE id=$1 AND owner_id=$2`
	_, err = tx.Exec(ctx, delProfile, profileID, ownerID)
	return err
}
