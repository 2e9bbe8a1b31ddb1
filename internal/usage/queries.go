package usage

const (
	querySchema = `
		CREATE TABLE IF NOT EXISTS usage_records (
			client_key TEXT PRIMARY KEY,
			count      INTEGER NOT NULL DEFAULT 0 CHECK (count >= 0),
			date       TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`

	queryLoadUsage = `
		SELECT count, date
		FROM usage_records
		WHERE client_key = $1
	`

	querySaveUsage = `
		INSERT INTO usage_records (client_key, count, date)
		VALUES ($1, $2, $3)
		ON CONFLICT (client_key)
		DO UPDATE SET
			count = EXCLUDED.count,
			date = EXCLUDED.date,
			updated_at = NOW()
	`

	// no row comes back when the cap is already reached for today
	queryIncrementUsage = `
		INSERT INTO usage_records (client_key, count, date)
		VALUES ($1, 1, $2)
		ON CONFLICT (client_key)
		DO UPDATE SET
			count = CASE
				WHEN usage_records.date = EXCLUDED.date THEN usage_records.count + 1
				ELSE 1
			END,
			date = EXCLUDED.date,
			updated_at = NOW()
		WHERE usage_records.date <> EXCLUDED.date
			OR $3::int < 0
			OR usage_records.count < $3::int
		RETURNING count, date
	`
)
