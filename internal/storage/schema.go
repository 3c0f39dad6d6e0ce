// ABOUTME: SQL statements for the system table, domain tables, and entity operations.
// ABOUTME: All tables are STRICT; timestamps are epoch milliseconds.
package storage

const (
	//
	// System
	//

	sqlCreateTableSystem = `
	CREATE TABLE IF NOT EXISTS system (
		migration_id INTEGER NOT NULL
	) STRICT;
	`
	sqlSelectMigrationID        = `SELECT migration_id FROM system`
	sqlInsertInitialMigrationID = `INSERT INTO system (migration_id) VALUES (0)`
	sqlUpdateMigrationID        = `UPDATE system SET migration_id = ?`

	//
	// Schema, migration 2
	//

	sqlCreateTableWeight = `
	CREATE TABLE weight (
		user_id   INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		value     REAL    NOT NULL,
		PRIMARY KEY (user_id, timestamp)
	) STRICT;
	`
	sqlCreateTableFood = `
	CREATE TABLE food (
		key     TEXT NOT NULL PRIMARY KEY,
		name    TEXT NOT NULL,
		brand   TEXT NOT NULL,
		cal100  REAL NOT NULL,
		prot100 REAL NOT NULL,
		fat100  REAL NOT NULL,
		carb100 REAL NOT NULL,
		comment TEXT NOT NULL
	) STRICT;
	`
	sqlCreateTableSport = `
	CREATE TABLE sport (
		key     TEXT NOT NULL PRIMARY KEY,
		name    TEXT NOT NULL,
		comment TEXT NOT NULL
	) STRICT;
	`
	sqlCreateTableSportActivity = `
	CREATE TABLE sport_activity (
		user_id   INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		sport_key TEXT    NOT NULL,
		sets      TEXT    NOT NULL,
		PRIMARY KEY (user_id, timestamp, sport_key),
		FOREIGN KEY (sport_key) REFERENCES sport (key)
	) STRICT;
	`
	sqlCreateTableBundle = `
	CREATE TABLE bundle (
		user_id INTEGER NOT NULL,
		key     TEXT    NOT NULL,
		data    TEXT    NOT NULL,
		PRIMARY KEY (user_id, key)
	) STRICT;
	`
	sqlCreateTableBundleFoodItem = `
	CREATE TABLE bundle_food_item (
		user_id    INTEGER NOT NULL,
		bundle_key TEXT    NOT NULL,
		food_key   TEXT    NOT NULL,
		weight     REAL    NOT NULL,
		PRIMARY KEY (user_id, bundle_key, food_key),
		FOREIGN KEY (user_id, bundle_key) REFERENCES bundle (user_id, key) ON DELETE CASCADE,
		FOREIGN KEY (food_key) REFERENCES food (key)
	) STRICT;
	`
	sqlCreateTableBundleBundleItem = `
	CREATE TABLE bundle_bundle_item (
		user_id    INTEGER NOT NULL,
		bundle_key TEXT    NOT NULL,
		child_key  TEXT    NOT NULL,
		PRIMARY KEY (user_id, bundle_key, child_key),
		FOREIGN KEY (user_id, bundle_key) REFERENCES bundle (user_id, key) ON DELETE CASCADE,
		FOREIGN KEY (user_id, child_key) REFERENCES bundle (user_id, key)
	) STRICT;
	`
	sqlCreateTableUserSettings = `
	CREATE TABLE user_settings (
		user_id   INTEGER NOT NULL PRIMARY KEY,
		cal_limit REAL    NOT NULL
	) STRICT;
	`

	//
	// Schema, migration 3
	//

	sqlCreateTableJournal = `
	CREATE TABLE journal (
		user_id     INTEGER NOT NULL,
		timestamp   INTEGER NOT NULL,
		meal        INTEGER NOT NULL,
		food_key    TEXT    NOT NULL,
		food_weight REAL    NOT NULL,
		PRIMARY KEY (user_id, timestamp, meal, food_key),
		FOREIGN KEY (food_key) REFERENCES food (key)
	) STRICT;
	`
	sqlCreateIndexJournalUserFood = `
	CREATE INDEX journal_user_id_food_key ON journal (user_id, food_key);
	`
	sqlCreateTableDayTotalCal = `
	CREATE TABLE day_total_cal (
		user_id   INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		total_cal REAL    NOT NULL,
		PRIMARY KEY (user_id, timestamp)
	) STRICT;
	`
	sqlCreateTableTotalBurnedCal = `
	CREATE TABLE total_burned_cal (
		user_id   INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		total_cal REAL    NOT NULL,
		PRIMARY KEY (user_id, timestamp)
	) STRICT;
	`

	//
	// Weight
	//

	sqlSelectWeight = `
	SELECT timestamp, value
	FROM weight
	WHERE user_id = ? AND timestamp = ?
	`
	sqlSelectWeightList = `
	SELECT timestamp, value
	FROM weight
	WHERE user_id = ? AND timestamp >= ? AND timestamp <= ?
	ORDER BY timestamp
	`
	sqlSelectAllWeight = `
	SELECT user_id, timestamp, value
	FROM weight
	ORDER BY user_id, timestamp
	`
	sqlUpsertWeight = `
	INSERT INTO weight (user_id, timestamp, value)
	VALUES (?, ?, ?)
	ON CONFLICT (user_id, timestamp) DO UPDATE SET value = excluded.value
	`
	sqlDeleteWeight = `DELETE FROM weight WHERE user_id = ? AND timestamp = ?`

	//
	// Food
	//

	sqlSelectFood = `
	SELECT key, name, brand, cal100, prot100, fat100, carb100, comment
	FROM food
	WHERE key = ?
	`
	sqlSelectFoodList = `
	SELECT key, name, brand, cal100, prot100, fat100, carb100, comment
	FROM food
	ORDER BY key
	`
	// The search term is bound already uppercased.
	sqlFindFood = `
	SELECT key, name, brand, cal100, prot100, fat100, carb100, comment
	FROM food
	WHERE instr(unicode_upper(name), ?1) > 0
	   OR instr(unicode_upper(brand), ?1) > 0
	   OR instr(unicode_upper(comment), ?1) > 0
	ORDER BY key
	`
	sqlUpsertFood = `
	INSERT INTO food (key, name, brand, cal100, prot100, fat100, carb100, comment)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (key) DO UPDATE SET
		name    = excluded.name,
		brand   = excluded.brand,
		cal100  = excluded.cal100,
		prot100 = excluded.prot100,
		fat100  = excluded.fat100,
		carb100 = excluded.carb100,
		comment = excluded.comment
	`
	sqlDeleteFood = `DELETE FROM food WHERE key = ?`

	//
	// Sport
	//

	sqlSelectSport = `
	SELECT key, name, comment
	FROM sport
	WHERE key = ?
	`
	sqlSelectSportList = `
	SELECT key, name, comment
	FROM sport
	ORDER BY key
	`
	sqlUpsertSport = `
	INSERT INTO sport (key, name, comment)
	VALUES (?, ?, ?)
	ON CONFLICT (key) DO UPDATE SET
		name    = excluded.name,
		comment = excluded.comment
	`
	sqlDeleteSport = `DELETE FROM sport WHERE key = ?`

	//
	// Sport activity
	//

	sqlUpsertSportActivity = `
	INSERT INTO sport_activity (user_id, timestamp, sport_key, sets)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (user_id, timestamp, sport_key) DO UPDATE SET sets = excluded.sets
	`
	sqlDeleteSportActivity = `
	DELETE FROM sport_activity
	WHERE user_id = ? AND timestamp = ? AND sport_key = ?
	`
	sqlSelectSportActivityReport = `
	SELECT s.name AS sport_name, sa.timestamp AS timestamp, sa.sets AS sets
	FROM sport_activity AS sa
	JOIN sport AS s ON s.key = sa.sport_key
	WHERE sa.user_id = ? AND sa.timestamp >= ? AND sa.timestamp <= ?
	ORDER BY sa.timestamp, s.name
	`

	//
	// User settings
	//

	sqlSelectUserSettings = `
	SELECT cal_limit
	FROM user_settings
	WHERE user_id = ?
	`
	sqlSelectAllUserSettings = `
	SELECT user_id, cal_limit
	FROM user_settings
	ORDER BY user_id
	`
	sqlUpsertUserSettings = `
	INSERT INTO user_settings (user_id, cal_limit)
	VALUES (?, ?)
	ON CONFLICT (user_id) DO UPDATE SET cal_limit = excluded.cal_limit
	`

	//
	// Bundle
	//

	sqlSelectBundle = `
	SELECT key, data
	FROM bundle
	WHERE user_id = ? AND key = ?
	`
	sqlSelectBundleList = `
	SELECT key, data
	FROM bundle
	WHERE user_id = ?
	ORDER BY key
	`
	sqlUpsertBundle = `
	INSERT INTO bundle (user_id, key, data)
	VALUES (?, ?, ?)
	ON CONFLICT (user_id, key) DO UPDATE SET data = excluded.data
	`
	sqlDeleteBundle = `DELETE FROM bundle WHERE user_id = ? AND key = ?`

	//
	// Journal
	//

	sqlUpsertJournal = `
	INSERT INTO journal (user_id, timestamp, meal, food_key, food_weight)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (user_id, timestamp, meal, food_key) DO UPDATE SET food_weight = excluded.food_weight
	`
	sqlDeleteJournal = `
	DELETE FROM journal
	WHERE user_id = ? AND timestamp = ? AND meal = ? AND food_key = ?
	`
	sqlDeleteJournalMeal = `
	DELETE FROM journal
	WHERE user_id = ? AND timestamp = ? AND meal = ?
	`
	sqlSelectJournalReport = `
	SELECT
		j.timestamp                      AS timestamp,
		j.meal                           AS meal,
		j.food_key                       AS food_key,
		f.name                           AS food_name,
		f.brand                          AS food_brand,
		j.food_weight                    AS food_weight,
		f.cal100 * j.food_weight / 100.0  AS cal,
		f.prot100 * j.food_weight / 100.0 AS prot,
		f.fat100 * j.food_weight / 100.0  AS fat,
		f.carb100 * j.food_weight / 100.0 AS carb
	FROM journal AS j
	JOIN food AS f ON f.key = j.food_key
	WHERE j.user_id = ? AND j.timestamp >= ? AND j.timestamp <= ?
	ORDER BY j.timestamp, j.meal, f.name, j.food_key
	`
	// WHERE on the SELECT keeps the upsert clause unambiguous to the parser.
	sqlCopyJournal = `
	INSERT INTO journal (user_id, timestamp, meal, food_key, food_weight)
	SELECT user_id, ?, ?, food_key, food_weight
	FROM journal
	WHERE user_id = ? AND timestamp = ? AND meal = ?
	ON CONFLICT (user_id, timestamp, meal, food_key) DO UPDATE SET food_weight = excluded.food_weight
	`
	sqlSelectJournalFoodStat = `
	SELECT
		MIN(timestamp)   AS first_timestamp,
		MAX(timestamp)   AS last_timestamp,
		SUM(food_weight) AS total_weight,
		AVG(food_weight) AS avg_weight,
		COUNT(*)         AS total_count
	FROM journal
	WHERE user_id = ? AND food_key = ?
	`

	//
	// Day calories
	//

	sqlSelectDayTotalCal = `
	SELECT total_cal
	FROM day_total_cal
	WHERE user_id = ? AND timestamp = ?
	`
	sqlUpsertDayTotalCal = `
	INSERT INTO day_total_cal (user_id, timestamp, total_cal)
	VALUES (?, ?, ?)
	ON CONFLICT (user_id, timestamp) DO UPDATE SET total_cal = excluded.total_cal
	`
	sqlDeleteDayTotalCal = `DELETE FROM day_total_cal WHERE user_id = ? AND timestamp = ?`

	sqlSelectTotalBurnedCal = `
	SELECT total_cal
	FROM total_burned_cal
	WHERE user_id = ? AND timestamp = ?
	`
	sqlUpsertTotalBurnedCal = `
	INSERT INTO total_burned_cal (user_id, timestamp, total_cal)
	VALUES (?, ?, ?)
	ON CONFLICT (user_id, timestamp) DO UPDATE SET total_cal = excluded.total_cal
	`
	sqlDeleteTotalBurnedCal = `DELETE FROM total_burned_cal WHERE user_id = ? AND timestamp = ?`
)
