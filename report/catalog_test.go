package report

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martsql/martsql/store"
)

// openSeededDB creates a sqlite store populated with a small retail
// dataset: three customers in two cities, orders across 2017 and 2018,
// two product categories, and one multi-product order.
func openSeededDB(t *testing.T) (*sql.DB, store.Dialect) {
	t.Helper()

	ctx := context.Background()
	cfg := store.Config{
		Driver:     store.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "report.db"),
	}
	db, dialect, err := store.Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, store.EnsureSchema(ctx, db, dialect))

	stmts := []string{
		`INSERT INTO customers (customer_id, name, city, state) VALUES
			(1, 'Ana', 'NY', 'NY'),
			(2, 'Burt', 'NY', 'NY'),
			(3, 'Cara', 'LA', 'CA')`,
		`INSERT INTO orders (order_id, customer_id, order_date, amount, payment_type) VALUES
			(1, 1, '2017-03-01', 25.0, 'Credit'),
			(2, 2, '2017-04-12', 40.0, 'Installment'),
			(3, 1, '2017-06-20', 35.0, 'Credit'),
			(4, 3, '2018-01-15', 50.0, 'Installment')`,
		`INSERT INTO products (product_id, category, price) VALUES
			(10, 'Books', 12.5),
			(11, 'Toys', 30.0),
			(12, 'Books', 8.0)`,
		`INSERT INTO order_products (order_id, product_id) VALUES
			(1, 10), (2, 11), (3, 10), (3, 12), (4, 11)`,
		`INSERT INTO sales (seller_id, amount) VALUES (7, 120.0), (8, 45.5)`,
	}
	for _, stmt := range stmts {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}

	return db, dialect
}

// openEmptyDB creates a sqlite store with no schema at all.
func openEmptyDB(t *testing.T) (*sql.DB, store.Dialect) {
	t.Helper()

	cfg := store.Config{
		Driver:     store.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "empty.db"),
	}
	db, dialect, err := store.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, dialect
}

// queryByName finds a catalog query by its label.
func queryByName(t *testing.T, name string) Query {
	t.Helper()
	for _, q := range Catalog() {
		if q.Name == name {
			return q
		}
	}
	t.Fatalf("no catalog query named %q", name)
	return Query{}
}

func TestCatalog_Ordering(t *testing.T) {
	t.Parallel()

	catalog := Catalog()
	require.Len(t, catalog, 15)

	// Tiers appear in order, five queries each.
	lastTier := TierBasic
	counts := map[Tier]int{}
	for _, q := range catalog {
		require.GreaterOrEqual(t, q.Tier, lastTier, "tiers must not interleave")
		lastTier = q.Tier
		counts[q.Tier]++
	}
	assert.Equal(t, 5, counts[TierBasic])
	assert.Equal(t, 5, counts[TierIntermediate])
	assert.Equal(t, 5, counts[TierAdvanced])
}

func TestCatalog_DistinctCities(t *testing.T) {
	t.Parallel()

	db, dialect := openSeededDB(t)
	q := queryByName(t, "Unique cities where customers are located")

	rows, err := db.Query(q.SQL(dialect))
	require.NoError(t, err)
	defer rows.Close()

	var cities []string
	for rows.Next() {
		var city string
		require.NoError(t, rows.Scan(&city))
		cities = append(cities, city)
	}
	require.NoError(t, rows.Err())

	// {"NY","NY","LA"} collapses to exactly {"LA","NY"}.
	assert.Equal(t, []string{"LA", "NY"}, cities)
}

func TestCatalog_OrderCount2017(t *testing.T) {
	t.Parallel()

	db, dialect := openSeededDB(t)
	q := queryByName(t, "Number of orders placed in 2017")

	var count int
	require.NoError(t, db.QueryRow(q.SQL(dialect)).Scan(&count))
	assert.Equal(t, 3, count)
}

func TestCatalog_RevenuePerCategory(t *testing.T) {
	t.Parallel()

	db, dialect := openSeededDB(t)
	q := queryByName(t, "Total sales per product category")

	rows, err := db.Query(q.SQL(dialect))
	require.NoError(t, err)
	defer rows.Close()

	totals := map[string]float64{}
	var sum float64
	for rows.Next() {
		var category string
		var total float64
		require.NoError(t, rows.Scan(&category, &total))
		totals[category] = total
		sum += total
	}
	require.NoError(t, rows.Err())

	assert.InDelta(t, 95.0, totals["Books"], 1e-9)
	assert.InDelta(t, 90.0, totals["Toys"], 1e-9)

	// Category totals add up to the amounts of all joined order rows.
	var joinTotal float64
	require.NoError(t, db.QueryRow(`
		SELECT SUM(o.amount)
		FROM orders o
		JOIN order_products op ON o.order_id = op.order_id
		JOIN products p ON op.product_id = p.product_id`).Scan(&joinTotal))
	assert.InDelta(t, joinTotal, sum, 1e-9)
}

func TestCatalog_RevenueShareSumsTo100(t *testing.T) {
	t.Parallel()

	db, dialect := openSeededDB(t)
	q := queryByName(t, "Share of total revenue per product category")

	rows, err := db.Query(q.SQL(dialect))
	require.NoError(t, err)
	defer rows.Close()

	var sum float64
	var categories int
	for rows.Next() {
		var category string
		var pct float64
		require.NoError(t, rows.Scan(&category, &pct))
		sum += pct
		categories++
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, 2, categories)
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestCatalog_InstallmentShare(t *testing.T) {
	t.Parallel()

	db, dialect := openSeededDB(t)
	q := queryByName(t, "Percentage of orders paid in installments")

	var pct float64
	require.NoError(t, db.QueryRow(q.SQL(dialect)).Scan(&pct))
	assert.InDelta(t, 50.0, pct, 1e-9)
}

func TestCatalog_Correlation(t *testing.T) {
	t.Parallel()

	db, dialect := openSeededDB(t)
	q := queryByName(t, "Correlation between product price and purchase count")

	var corr float64
	require.NoError(t, db.QueryRow(q.SQL(dialect)).Scan(&corr))

	// Higher-priced products sell at least as often in the seed data, so
	// the coefficient is positive and bounded by 1.
	assert.Greater(t, corr, 0.0)
	assert.LessOrEqual(t, corr, 1.0)
}

func TestCatalog_MovingAverage(t *testing.T) {
	t.Parallel()

	db, dialect := openSeededDB(t)
	q := queryByName(t, "Moving average of order values per customer")

	rows, err := db.Query(q.SQL(dialect))
	require.NoError(t, err)
	defer rows.Close()

	type row struct {
		customerID int
		movingAvg  float64
	}
	var results []row
	for rows.Next() {
		var r row
		var orderDate string
		var amount float64
		require.NoError(t, rows.Scan(&r.customerID, &orderDate, &amount, &r.movingAvg))
		results = append(results, r)
	}
	require.NoError(t, rows.Err())
	require.Len(t, results, 4)

	// Customer 1 ordered 25 then 35: the second window averages to 30.
	assert.Equal(t, 1, results[0].customerID)
	assert.InDelta(t, 25.0, results[0].movingAvg, 1e-9)
	assert.Equal(t, 1, results[1].customerID)
	assert.InDelta(t, 30.0, results[1].movingAvg, 1e-9)
}

func TestCatalog_YearOverYearGrowth(t *testing.T) {
	t.Parallel()

	t.Run("Two years", func(t *testing.T) {
		t.Parallel()

		db, dialect := openSeededDB(t)
		q := queryByName(t, "Year-over-year sales growth")

		rows, err := db.Query(q.SQL(dialect))
		require.NoError(t, err)
		defer rows.Close()

		type yearRow struct {
			year     int
			total    float64
			previous sql.NullFloat64
			growth   sql.NullFloat64
		}
		var results []yearRow
		for rows.Next() {
			var r yearRow
			require.NoError(t, rows.Scan(&r.year, &r.total, &r.previous, &r.growth))
			results = append(results, r)
		}
		require.NoError(t, rows.Err())
		require.Len(t, results, 2)

		assert.Equal(t, 2017, results[0].year)
		assert.False(t, results[0].previous.Valid, "first year has no previous year")
		assert.False(t, results[0].growth.Valid, "first year growth is undefined")

		assert.Equal(t, 2018, results[1].year)
		require.True(t, results[1].previous.Valid)
		assert.InDelta(t, 100.0, results[1].previous.Float64, 1e-9)
		require.True(t, results[1].growth.Valid)
		assert.InDelta(t, -50.0, results[1].growth.Float64, 1e-9)
	})

	t.Run("Single year yields NULL growth", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		cfg := store.Config{
			Driver:     store.DriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "single.db"),
		}
		db, dialect, err := store.Open(ctx, cfg)
		require.NoError(t, err)
		defer db.Close()

		require.NoError(t, store.EnsureSchema(ctx, db, dialect))
		_, err = db.ExecContext(ctx, `INSERT INTO customers (customer_id, name, city, state) VALUES (1, 'Ana', 'NY', 'NY')`)
		require.NoError(t, err)
		_, err = db.ExecContext(ctx, `INSERT INTO orders (order_id, customer_id, order_date, amount, payment_type)
			VALUES (1, 1, '2019-02-02', 10.0, 'Credit')`)
		require.NoError(t, err)

		q := queryByName(t, "Year-over-year sales growth")
		var year int
		var total float64
		var previous, growth sql.NullFloat64
		require.NoError(t, db.QueryRow(q.SQL(dialect)).Scan(&year, &total, &previous, &growth))

		assert.Equal(t, 2019, year)
		assert.False(t, previous.Valid)
		assert.False(t, growth.Valid)
	})
}

func TestCatalog_Retention(t *testing.T) {
	t.Parallel()

	db, dialect := openSeededDB(t)
	q := queryByName(t, "Customer retention within 6 months of first purchase")

	// Only customer 1 ordered again within six months of their first
	// purchase: 1 of 3 customers.
	var rate float64
	require.NoError(t, db.QueryRow(q.SQL(dialect)).Scan(&rate))
	assert.InDelta(t, 100.0/3.0, rate, 1e-9)
}

func TestCatalog_Top3PerYear(t *testing.T) {
	t.Parallel()

	db, dialect := openSeededDB(t)
	q := queryByName(t, "Top 3 customers by spend per year")

	rows, err := db.Query(q.SQL(dialect))
	require.NoError(t, err)
	defer rows.Close()

	perYear := map[int]int{}
	for rows.Next() {
		var year, customerID int
		var spent float64
		require.NoError(t, rows.Scan(&year, &customerID, &spent))
		perYear[year]++
	}
	require.NoError(t, rows.Err())

	// Years with fewer than three customers yield exactly that many rows.
	assert.Equal(t, 2, perYear[2017])
	assert.Equal(t, 1, perYear[2018])
}

func TestCatalog_CumulativeMonthlySales(t *testing.T) {
	t.Parallel()

	db, dialect := openSeededDB(t)
	q := queryByName(t, "Cumulative monthly sales per year")

	rows, err := db.Query(q.SQL(dialect))
	require.NoError(t, err)
	defer rows.Close()

	type monthRow struct {
		year, month int
		monthly     float64
		cumulative  float64
	}
	var results []monthRow
	for rows.Next() {
		var r monthRow
		require.NoError(t, rows.Scan(&r.year, &r.month, &r.monthly, &r.cumulative))
		results = append(results, r)
	}
	require.NoError(t, rows.Err())
	require.Len(t, results, 4)

	// 2017: March 25, April 40, June 35 accumulate within the year; the
	// 2018 partition restarts.
	assert.InDelta(t, 25.0, results[0].cumulative, 1e-9)
	assert.InDelta(t, 65.0, results[1].cumulative, 1e-9)
	assert.InDelta(t, 100.0, results[2].cumulative, 1e-9)
	assert.Equal(t, 2018, results[3].year)
	assert.InDelta(t, 50.0, results[3].cumulative, 1e-9)
}

func TestCatalog_SellerRanking(t *testing.T) {
	t.Parallel()

	db, dialect := openSeededDB(t)
	q := queryByName(t, "Seller revenue ranking")

	rows, err := db.Query(q.SQL(dialect))
	require.NoError(t, err)
	defer rows.Close()

	var sellers []int
	for rows.Next() {
		var sellerID int
		var revenue float64
		require.NoError(t, rows.Scan(&sellerID, &revenue))
		sellers = append(sellers, sellerID)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []int{7, 8}, sellers)
}
