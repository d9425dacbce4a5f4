package postgres

// SQL for the page-view write path and the stats read path.
// The write path is three statements inside one transaction; both counter
// updates are single conditional writes so concurrent increments on the same
// page_path or date serialize inside the database instead of losing updates.

const (
	// querySavePageView appends one immutable page view.
	// Timestamp comes from the column default (server clock); RETURNING
	// hands back the surrogate id and the assigned instant.
	querySavePageView = `
		INSERT INTO page_views (
			page_path, page_title, user_agent, referrer, device_type, country
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, "timestamp"
	`

	// queryUpsertPopularPage creates the per-page counter on first view,
	// otherwise increments it. Title is last-write-wins.
	queryUpsertPopularPage = `
		INSERT INTO popular_pages (page_path, page_title, view_count, last_viewed)
		VALUES ($1, $2, 1, now())
		ON CONFLICT (page_path) DO UPDATE SET
			view_count  = popular_pages.view_count + 1,
			page_title  = EXCLUDED.page_title,
			last_viewed = now()
	`

	// queryUpsertDailyStat creates today's row on the first visit of the
	// day, otherwise increments total_visits. unique_pages keeps its
	// creation value of 1 and is never recomputed on update; dashboards
	// read it as a presence flag, the overview computes the real count.
	queryUpsertDailyStat = `
		INSERT INTO visitor_stats (date, total_visits, unique_pages)
		VALUES (CURRENT_DATE, 1, 1)
		ON CONFLICT (date) DO UPDATE SET
			total_visits = visitor_stats.total_visits + 1
	`

	// queryOverview computes the headline numbers in one round trip.
	// Today/yesterday use the database clock, not the caller's.
	queryOverview = `
		SELECT
			(SELECT COUNT(*) FROM page_views) AS total_views,
			(SELECT COUNT(DISTINCT page_path) FROM page_views) AS unique_pages,
			(SELECT COUNT(*) FROM page_views WHERE "timestamp"::date = CURRENT_DATE) AS today_views,
			(SELECT COUNT(*) FROM page_views WHERE "timestamp"::date = CURRENT_DATE - 1) AS yesterday_views
	`

	// queryDailyViews buckets the trailing 30 days by calendar date.
	// Days without views produce no row.
	queryDailyViews = `
		SELECT "timestamp"::date AS date, COUNT(*) AS views
		FROM page_views
		WHERE "timestamp" >= CURRENT_DATE - INTERVAL '30 days'
		GROUP BY "timestamp"::date
		ORDER BY "timestamp"::date ASC
	`

	// queryHourlyViews buckets today's views by hour, labelled "HH:00".
	queryHourlyViews = `
		SELECT to_char("timestamp", 'HH24') || ':00' AS hour, COUNT(*) AS views
		FROM page_views
		WHERE "timestamp"::date = CURRENT_DATE
		GROUP BY to_char("timestamp", 'HH24')
		ORDER BY hour ASC
	`

	// queryPopularPages reads the maintained counter table, not the raw
	// rows. page_path breaks view-count ties so one query is deterministic.
	queryPopularPages = `
		SELECT page_path, COALESCE(page_title, ''), view_count
		FROM popular_pages
		ORDER BY view_count DESC, page_path ASC
		LIMIT $1
	`

	// queryRecentViews lists the newest raw rows; id breaks timestamp ties.
	queryRecentViews = `
		SELECT page_path, COALESCE(page_title, ''), "timestamp"
		FROM page_views
		ORDER BY "timestamp" DESC, id DESC
		LIMIT $1
	`

	// queryViewsByDevice returns raw per-device counts. Percentages are
	// computed by the reporting layer so the zero-total case stays explicit.
	queryViewsByDevice = `
		SELECT COALESCE(device_type, 'Unknown') AS device, COUNT(*) AS views
		FROM page_views
		GROUP BY device_type
		ORDER BY views DESC, device ASC
	`

	// queryViewsByCountry is the device breakdown keyed by country.
	// All rows come back so percentages can be taken against the full
	// total; the reporting layer truncates to the top ten.
	queryViewsByCountry = `
		SELECT COALESCE(country, 'Unknown') AS country, COUNT(*) AS views
		FROM page_views
		GROUP BY country
		ORDER BY views DESC, country ASC
	`
)
