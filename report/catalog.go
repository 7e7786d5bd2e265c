// Package report holds the fixed catalog of analytical queries and runs
// it against a populated store, printing each result as a table.
package report

import (
	"fmt"

	"github.com/martsql/martsql/store"
)

// Tier groups catalog queries by complexity.
type Tier int

const (
	// TierBasic covers plain filters and aggregations.
	TierBasic Tier = iota
	// TierIntermediate covers multi-join aggregations and share calculations.
	TierIntermediate
	// TierAdvanced covers window functions, retention, and ranking.
	TierAdvanced
)

// String returns the tier's display name.
func (t Tier) String() string {
	switch t {
	case TierBasic:
		return "Basic"
	case TierIntermediate:
		return "Intermediate"
	case TierAdvanced:
		return "Advanced"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// Query is one catalog entry. Queries are stateless and independent of
// each other; only output ordering depends on catalog order.
type Query struct {
	// Name is the descriptive label printed above the result.
	Name string
	// Tier is the complexity group.
	Tier Tier
	// SQL renders the statement for the given store dialect.
	SQL func(d store.Dialect) string
}

// Catalog returns the fixed, ordered query catalog.
func Catalog() []Query {
	return []Query{
		{
			Name: "Unique cities where customers are located",
			Tier: TierBasic,
			SQL: func(store.Dialect) string {
				return `SELECT DISTINCT city FROM customers ORDER BY city`
			},
		},
		{
			Name: "Number of orders placed in 2017",
			Tier: TierBasic,
			SQL: func(d store.Dialect) string {
				return fmt.Sprintf(
					`SELECT COUNT(*) AS order_count FROM orders WHERE %s = 2017`,
					d.Year("order_date"))
			},
		},
		{
			Name: "Total sales per product category",
			Tier: TierBasic,
			SQL: func(store.Dialect) string {
				return `
SELECT p.category, SUM(o.amount) AS total_sales
FROM orders o
JOIN order_products op ON o.order_id = op.order_id
JOIN products p ON op.product_id = p.product_id
GROUP BY p.category
ORDER BY p.category`
			},
		},
		{
			Name: "Percentage of orders paid in installments",
			Tier: TierBasic,
			SQL: func(store.Dialect) string {
				return `
SELECT SUM(CASE WHEN payment_type = 'Installment' THEN 1 ELSE 0 END) * 100.0 / COUNT(*) AS installment_pct
FROM orders`
			},
		},
		{
			Name: "Number of customers per state",
			Tier: TierBasic,
			SQL: func(store.Dialect) string {
				return `SELECT state, COUNT(*) AS customer_count FROM customers GROUP BY state ORDER BY state`
			},
		},
		{
			Name: "Orders per month in 2018",
			Tier: TierIntermediate,
			SQL: func(d store.Dialect) string {
				return fmt.Sprintf(`
SELECT %s AS month, COUNT(*) AS order_count
FROM orders
WHERE %s = 2018
GROUP BY month
ORDER BY month`,
					d.Month("order_date"), d.Year("order_date"))
			},
		},
		{
			Name: "Average products per order by customer city",
			Tier: TierIntermediate,
			SQL: func(store.Dialect) string {
				return `
WITH order_counts AS (
    SELECT o.order_id, c.city, COUNT(op.product_id) AS product_count
    FROM orders o
    JOIN order_products op ON o.order_id = op.order_id
    JOIN customers c ON o.customer_id = c.customer_id
    GROUP BY o.order_id, c.city
)
SELECT city, AVG(product_count) AS avg_products_per_order
FROM order_counts
GROUP BY city
ORDER BY city`
			},
		},
		{
			Name: "Share of total revenue per product category",
			Tier: TierIntermediate,
			SQL: func(store.Dialect) string {
				return `
WITH category_revenue AS (
    SELECT p.category, SUM(o.amount) AS category_total
    FROM orders o
    JOIN order_products op ON o.order_id = op.order_id
    JOIN products p ON op.product_id = p.product_id
    GROUP BY p.category
)
SELECT category,
       category_total * 100.0 / (SELECT SUM(category_total) FROM category_revenue) AS revenue_pct
FROM category_revenue
ORDER BY category`
			},
		},
		{
			Name: "Correlation between product price and purchase count",
			Tier: TierIntermediate,
			SQL: func(store.Dialect) string {
				return `
WITH product_sales AS (
    SELECT p.product_id, p.price, COUNT(op.order_id) AS purchase_count
    FROM products p
    JOIN order_products op ON p.product_id = op.product_id
    GROUP BY p.product_id, p.price
)
SELECT
    SUM((price - (SELECT AVG(price) FROM product_sales)) * (purchase_count - (SELECT AVG(purchase_count) FROM product_sales)))
    / (SQRT(SUM((price - (SELECT AVG(price) FROM product_sales)) * (price - (SELECT AVG(price) FROM product_sales))))
       * SQRT(SUM((purchase_count - (SELECT AVG(purchase_count) FROM product_sales)) * (purchase_count - (SELECT AVG(purchase_count) FROM product_sales))))) AS price_purchase_correlation
FROM product_sales`
			},
		},
		{
			Name: "Seller revenue ranking",
			Tier: TierIntermediate,
			SQL: func(store.Dialect) string {
				return `
SELECT seller_id, SUM(amount) AS total_revenue
FROM sales
GROUP BY seller_id
ORDER BY total_revenue DESC`
			},
		},
		{
			Name: "Moving average of order values per customer",
			Tier: TierAdvanced,
			SQL: func(store.Dialect) string {
				return `
WITH ranked_orders AS (
    SELECT customer_id, order_date, amount,
           ROW_NUMBER() OVER (PARTITION BY customer_id ORDER BY order_date) AS rn
    FROM orders
)
SELECT customer_id, order_date, amount,
       AVG(amount) OVER (PARTITION BY customer_id ORDER BY rn ROWS BETWEEN 2 PRECEDING AND CURRENT ROW) AS moving_avg
FROM ranked_orders
ORDER BY customer_id, rn`
			},
		},
		{
			Name: "Cumulative monthly sales per year",
			Tier: TierAdvanced,
			SQL: func(d store.Dialect) string {
				return fmt.Sprintf(`
WITH monthly_sales AS (
    SELECT %s AS year, %s AS month, SUM(amount) AS monthly_total
    FROM orders
    GROUP BY year, month
)
SELECT year, month, monthly_total,
       SUM(monthly_total) OVER (PARTITION BY year ORDER BY month) AS cumulative_total
FROM monthly_sales
ORDER BY year, month`,
					d.Year("order_date"), d.Month("order_date"))
			},
		},
		{
			Name: "Year-over-year sales growth",
			Tier: TierAdvanced,
			SQL: func(d store.Dialect) string {
				return fmt.Sprintf(`
WITH yearly_sales AS (
    SELECT %s AS year, SUM(amount) AS total_sales
    FROM orders
    GROUP BY year
)
SELECT year, total_sales,
       LAG(total_sales) OVER (ORDER BY year) AS previous_year_sales,
       (total_sales - LAG(total_sales) OVER (ORDER BY year)) * 100.0
           / LAG(total_sales) OVER (ORDER BY year) AS growth_rate
FROM yearly_sales
ORDER BY year`,
					d.Year("order_date"))
			},
		},
		{
			Name: "Customer retention within 6 months of first purchase",
			Tier: TierAdvanced,
			SQL: func(d store.Dialect) string {
				return fmt.Sprintf(`
WITH first_purchase AS (
    SELECT customer_id, MIN(order_date) AS first_purchase_date
    FROM orders
    GROUP BY customer_id
),
repeat_customers AS (
    SELECT DISTINCT f.customer_id
    FROM first_purchase f
    JOIN orders o ON o.customer_id = f.customer_id
    WHERE o.order_date > f.first_purchase_date
      AND o.order_date <= %s
)
SELECT COUNT(r.customer_id) * 100.0 / COUNT(f.customer_id) AS retention_rate
FROM first_purchase f
LEFT JOIN repeat_customers r ON r.customer_id = f.customer_id`,
					d.AddMonths("f.first_purchase_date", 6))
			},
		},
		{
			Name: "Top 3 customers by spend per year",
			Tier: TierAdvanced,
			SQL: func(d store.Dialect) string {
				return fmt.Sprintf(`
WITH yearly_spending AS (
    SELECT %s AS year, customer_id, SUM(amount) AS total_spent
    FROM orders
    GROUP BY year, customer_id
),
ranked AS (
    SELECT year, customer_id, total_spent,
           ROW_NUMBER() OVER (PARTITION BY year ORDER BY total_spent DESC) AS rn
    FROM yearly_spending
)
SELECT year, customer_id, total_spent
FROM ranked
WHERE rn <= 3
ORDER BY year, rn`,
					d.Year("order_date"))
			},
		},
	}
}
