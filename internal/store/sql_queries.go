package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-accountant/models"
)

const (
	createUser = `INSERT INTO users (email, password_hash, auth_provider, firebase_uid, google_id, display_name, photo_url, email_verified, default_currency)
    VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9)
    RETURNING id, email, COALESCE(password_hash, ''), auth_provider, firebase_uid, google_id, display_name, photo_url, email_verified, default_currency, onboarding_completed, subscription_tier, subscription_expires_at, is_active, last_login, created_at, updated_at;`

	findUserByEmail = `SELECT id, email, COALESCE(password_hash, ''), auth_provider, firebase_uid, google_id, display_name, photo_url, email_verified, default_currency, onboarding_completed, subscription_tier, subscription_expires_at, is_active, last_login, created_at, updated_at
    FROM users
    WHERE email = $1;`

	findUserByFirebaseUID = `SELECT id, email, COALESCE(password_hash, ''), auth_provider, firebase_uid, google_id, display_name, photo_url, email_verified, default_currency, onboarding_completed, subscription_tier, subscription_expires_at, is_active, last_login, created_at, updated_at
    FROM users
    WHERE firebase_uid = $1;`

	findUserByID = `SELECT id, email, COALESCE(password_hash, ''), auth_provider, firebase_uid, google_id, display_name, photo_url, email_verified, default_currency, onboarding_completed, subscription_tier, subscription_expires_at, is_active, last_login, created_at, updated_at
    FROM users
    WHERE id = $1;`

	updateUserSubscription = `UPDATE users
    SET subscription_tier = $2, subscription_expires_at = $3, updated_at = now()
    WHERE id = $1;`

	touchUserLastLogin = `UPDATE users
    SET last_login = now()
    WHERE id = $1;`

	linkFirebaseIdentity = `UPDATE users
    SET firebase_uid = NULLIF($2, ''), google_id = $3, auth_provider = $4, email_verified = $5, updated_at = now()
    WHERE id = $1
    RETURNING id, email, COALESCE(password_hash, ''), auth_provider, firebase_uid, google_id, display_name, photo_url, email_verified, default_currency, onboarding_completed, subscription_tier, subscription_expires_at, is_active, last_login, created_at, updated_at;`

	findRecordForUpdate = `SELECT id, user_id, kind, client_id, server_id, payload, payload_hash, client_updated_at, server_updated_at, deleted, created_at
		FROM records
		WHERE user_id = $1 AND kind = $2 AND client_id = $3
		FOR UPDATE;`

	findRecordByClientKey = `SELECT id, user_id, kind, client_id, server_id, payload, payload_hash, client_updated_at, server_updated_at, deleted, created_at
		FROM records
		WHERE user_id = $1 AND kind = $2 AND client_id = $3;`

	findRecordByServerID = `SELECT id, user_id, kind, client_id, server_id, payload, payload_hash, client_updated_at, server_updated_at, deleted, created_at
		FROM records
		WHERE user_id = $1 AND server_id = $2;`

	insertRecord = `INSERT INTO records (user_id, kind, client_id, server_id, payload, payload_hash, client_updated_at, server_updated_at, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), $8)
		RETURNING id, server_updated_at, created_at;`

	// Bumps server_updated_at strictly past its previous value even when
	// now() has not advanced (sub-microsecond replays, clock granularity).
	// The LEFT JOIN disambiguates "row gone" from "guard mismatch":
	// no result row means not found, NULL updated columns mean the
	// server_updated_at guard did not match.
	updateRecordGuarded = `WITH target_record AS (
			SELECT id, server_updated_at FROM records
			WHERE user_id = $1 AND kind = $2 AND client_id = $3
		), updated AS (
			UPDATE records
			SET payload = $4, payload_hash = $5, client_updated_at = $6, deleted = $7,
				server_updated_at = GREATEST(now(), server_updated_at + interval '1 microsecond')
			WHERE user_id = $1 AND kind = $2 AND client_id = $3 AND server_updated_at = $8
			RETURNING id, server_updated_at
		)
		SELECT updated.id, updated.server_updated_at, target_record.server_updated_at
		FROM target_record LEFT JOIN updated ON updated.id = target_record.id;`

	listRecordsChangedSince = `SELECT id, user_id, kind, client_id, server_id, payload, payload_hash, client_updated_at, server_updated_at, deleted, created_at
		FROM records
		WHERE user_id = $1 AND server_updated_at > $2
		ORDER BY server_updated_at ASC;`

	upsertCustomRate = `INSERT INTO exchange_rates (user_id, from_currency, to_currency, custom_rate, use_custom_rate)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, from_currency, to_currency)
		DO UPDATE SET custom_rate = EXCLUDED.custom_rate, use_custom_rate = EXCLUDED.use_custom_rate,
			version = exchange_rates.version + 1, updated_at = now()
		RETURNING id, user_id, from_currency, to_currency, api_rate, custom_rate, use_custom_rate, api_rate_fetched_at, version, created_at, updated_at;`

	upsertAPIRate = `INSERT INTO exchange_rates (user_id, from_currency, to_currency, api_rate, api_rate_fetched_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, from_currency, to_currency)
		DO UPDATE SET api_rate = EXCLUDED.api_rate, api_rate_fetched_at = EXCLUDED.api_rate_fetched_at,
			version = exchange_rates.version + 1, updated_at = now()
		RETURNING id, user_id, from_currency, to_currency, api_rate, custom_rate, use_custom_rate, api_rate_fetched_at, version, created_at, updated_at;`

	listExchangeRates = `SELECT id, user_id, from_currency, to_currency, api_rate, custom_rate, use_custom_rate, api_rate_fetched_at, version, created_at, updated_at
		FROM exchange_rates
		WHERE user_id = $1
		ORDER BY from_currency, to_currency;`

	findExchangeRate = `SELECT id, user_id, from_currency, to_currency, api_rate, custom_rate, use_custom_rate, api_rate_fetched_at, version, created_at, updated_at
		FROM exchange_rates
		WHERE user_id = $1 AND from_currency = $2 AND to_currency = $3;`

	deleteExchangeRate = `DELETE FROM exchange_rates
		WHERE user_id = $1 AND id = $2;`

	upsertAssociatedTitle = `INSERT INTO associated_titles (user_id, title, category_server_id, is_exact_match)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, title)
		DO UPDATE SET category_server_id = EXCLUDED.category_server_id, is_exact_match = EXCLUDED.is_exact_match, updated_at = now()
		RETURNING id, user_id, title, category_server_id, is_exact_match, created_at, updated_at;`

	listAssociatedTitles = `SELECT id, user_id, title, category_server_id, is_exact_match, created_at, updated_at
		FROM associated_titles
		WHERE user_id = $1
		ORDER BY title;`

	deleteAssociatedTitle = `DELETE FROM associated_titles
		WHERE user_id = $1 AND id = $2;`

	findTitleExact = `SELECT id, user_id, title, category_server_id, is_exact_match, created_at, updated_at
		FROM associated_titles
		WHERE user_id = $1 AND lower(title) = lower($2)
		LIMIT 1;`

	// Longest stored title contained in the incoming one wins.
	findTitleContained = `SELECT id, user_id, title, category_server_id, is_exact_match, created_at, updated_at
		FROM associated_titles
		WHERE user_id = $1 AND NOT is_exact_match AND $2 ILIKE '%' || title || '%'
		ORDER BY length(title) DESC
		LIMIT 1;`

	insertPurchase = `INSERT INTO purchases (user_id, platform, product_id, token_hash, tier, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, platform, product_id, token_hash, tier, expires_at, verified_at, created_at;`

	findPurchaseByTokenHash = `SELECT id, user_id, platform, product_id, token_hash, tier, expires_at, verified_at, created_at
		FROM purchases
		WHERE token_hash = $1;`

	listPurchasesByUser = `SELECT id, user_id, platform, product_id, token_hash, tier, expires_at, verified_at, created_at
		FROM purchases
		WHERE user_id = $1
		ORDER BY verified_at DESC;`
)

// recordColumns is the canonical column set of the records table, in the
// order every record Scan expects.
var recordColumns = []string{
	"id", "user_id", "kind", "client_id", "server_id",
	"payload", "payload_hash", "client_updated_at", "server_updated_at",
	"deleted", "created_at",
}

// buildListByKindQuery builds the SELECT of a user's live records of one
// kind, newest change first.
func buildListByKindQuery(_ context.Context, userID int64, kind models.EntityKind) (string, []any, error) {
	return sq.Select(recordColumns...).
		From("records").
		Where(sq.Eq{"user_id": userID, "kind": kind, "deleted": false}).
		OrderBy("server_updated_at DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// buildListTransactionsQuery builds the filtered transaction SELECT. All
// filter criteria live inside the JSONB payload, so conditions address
// payload keys directly; dates and amounts are cast before comparison.
func buildListTransactionsQuery(_ context.Context, userID int64, filter models.TransactionFilter) (string, []any, error) {
	qb := sq.Select(recordColumns...).
		From("records").
		Where(sq.Eq{"user_id": userID, "kind": models.KindTransaction, "deleted": false})

	if filter.WalletID != nil {
		qb = qb.Where(sq.Eq{"payload->>'wallet_id'": *filter.WalletID})
	}
	if filter.CategoryID != nil {
		qb = qb.Where(sq.Eq{"payload->>'category_id'": *filter.CategoryID})
	}
	if filter.PaymentMethodID != nil {
		qb = qb.Where(sq.Eq{"payload->>'payment_method_id'": *filter.PaymentMethodID})
	}
	if filter.IsIncome != nil {
		qb = qb.Where(sq.Eq{"(payload->>'is_income')::boolean": *filter.IsIncome})
	}
	if filter.Type != nil {
		qb = qb.Where(sq.Eq{"payload->>'type'": *filter.Type})
	}
	if filter.DateFrom != nil {
		qb = qb.Where(sq.GtOrEq{"(payload->>'date')::timestamptz": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		qb = qb.Where(sq.LtOrEq{"(payload->>'date')::timestamptz": *filter.DateTo})
	}
	if filter.AmountMin != nil {
		qb = qb.Where(sq.GtOrEq{"(payload->>'amount')::numeric": *filter.AmountMin})
	}
	if filter.AmountMax != nil {
		qb = qb.Where(sq.LtOrEq{"(payload->>'amount')::numeric": *filter.AmountMax})
	}
	if filter.Search != "" {
		qb = qb.Where(
			sq.Or{
				sq.Expr("payload->>'title' ILIKE ?", "%"+filter.Search+"%"),
				sq.Expr("payload->>'notes' ILIKE ?", "%"+filter.Search+"%"),
			},
		)
	}

	qb = qb.OrderBy("(payload->>'date')::timestamptz DESC", "id DESC")

	if filter.Limit > 0 {
		qb = qb.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		qb = qb.Offset(filter.Offset)
	}

	return qb.PlaceholderFormat(sq.Dollar).ToSql()
}

// buildCountsByKindQuery builds the per-kind aggregate of the sync status
// endpoint: totals, tombstone counts, latest change stamp.
func buildCountsByKindQuery(_ context.Context, userID int64) (string, []any, error) {
	return sq.Select(
		"kind",
		"COUNT(*) AS total",
		"COUNT(*) FILTER (WHERE deleted) AS deleted",
		"MAX(server_updated_at) AS last_changed_at",
	).
		From("records").
		Where(sq.Eq{"user_id": userID}).
		GroupBy("kind").
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// buildDueRecurringQuery builds the materializer scan: live, active
// recurring-transaction records whose next occurrence is due, oldest first
// so a bounded batch drains the backlog in order.
func buildDueRecurringQuery(_ context.Context, due time.Time, limit int) (string, []any, error) {
	qb := sq.Select(recordColumns...).
		From("records").
		Where(sq.Eq{"kind": models.KindRecurringTransaction, "deleted": false}).
		Where(sq.Eq{"(payload->>'is_active')::boolean": true}).
		Where(sq.LtOrEq{"(payload->>'next_occurrence')::timestamptz": due}).
		OrderBy("(payload->>'next_occurrence')::timestamptz ASC")

	if limit > 0 {
		qb = qb.Limit(uint64(limit))
	}

	return qb.PlaceholderFormat(sq.Dollar).ToSql()
}
