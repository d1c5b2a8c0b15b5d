package store

// SQL query constants organized by entity.
// All SQL lives here; PostgresStore methods reference these constants.

// Credential queries.
const (
	queryGetCredential = `
		SELECT account_id, access_token, refresh_token, token_expires_at,
			COALESCE(seller_id, ''), connected_at, updated_at
		FROM marketplace_credentials
		WHERE account_id = $1`

	querySaveCredential = `
		INSERT INTO marketplace_credentials (
			account_id, access_token, refresh_token, token_expires_at,
			seller_id, connected_at, updated_at
		) VALUES (
			@account_id, @access_token, @refresh_token, @token_expires_at,
			NULLIF(@seller_id, ''), COALESCE(@connected_at, now()), now()
		)
		ON CONFLICT (account_id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			token_expires_at = EXCLUDED.token_expires_at,
			seller_id = COALESCE(EXCLUDED.seller_id, marketplace_credentials.seller_id),
			connected_at = COALESCE(marketplace_credentials.connected_at, EXCLUDED.connected_at),
			updated_at = now()
		RETURNING connected_at, updated_at`

	queryLockRefreshToken = `
		SELECT refresh_token
		FROM marketplace_credentials
		WHERE account_id = $1
		FOR UPDATE`

	queryUpdateTokens = `
		UPDATE marketplace_credentials
		SET access_token = $2,
			refresh_token = $3,
			token_expires_at = $4,
			updated_at = now()
		WHERE account_id = $1`

	queryDeleteCredential = `
		DELETE FROM marketplace_credentials WHERE account_id = $1`
)

// Refresh lock queries.
const (
	// Takes the lock when it is free or expired; returns no row otherwise.
	queryAcquireRefreshLock = `
		INSERT INTO refresh_locks (account_id, holder, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id) DO UPDATE SET
			holder = EXCLUDED.holder,
			expires_at = EXCLUDED.expires_at
		WHERE refresh_locks.expires_at < now()
		RETURNING account_id`

	queryReleaseRefreshLock = `
		DELETE FROM refresh_locks WHERE account_id = $1 AND holder = $2`
)
