package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"storefront-metrics/pkg/metrics"
	"storefront-metrics/pkg/models"
)

// Erreurs retournées par le package.
var (
	ErrIncompleteDSN = errors.New("dsn incomplet (user/host/db)")
	ErrInvalidTable  = errors.New("nom de table invalide")
)

// DATETIME MySQL, toujours en UTC
const layout = "2006-01-02 15:04:05"

var tableNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Open DSN mariadb:// ou mysql:// → format MySQL driver.
// Le second retour est le DSN sans mot de passe, pour les logs.
func Open(dsn string) (*sql.DB, string, error) {
	mysqlDSN, err := toMySQLDSN(dsn)
	if err != nil {
		return nil, "", err
	}
	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		return nil, "", err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, redact(mysqlDSN), nil
}

func toMySQLDSN(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "mariadb://") || strings.HasPrefix(dsn, "mysql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		user := ""
		pass := ""
		if u.User != nil {
			user = u.User.Username()
			pass, _ = u.User.Password()
		}
		host := u.Host
		db := strings.TrimPrefix(u.Path, "/")
		if user == "" || host == "" || db == "" {
			return "", ErrIncompleteDSN
		}
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&interpolateParams=true",
			user, pass, host, db), nil
	}
	if _, err := mysql.ParseDSN(dsn); err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	return dsn, nil
}

func redact(dsn string) string {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return ""
	}
	if cfg.Passwd != "" {
		cfg.Passwd = "xxxxx"
	}
	return cfg.FormatDSN()
}

// Tables nomme les tables lues et écrites par le Loader.
type Tables struct {
	Orders     string
	OrderItems string
	Events     string
}

// DefaultTables correspond au schéma du back-office.
var DefaultTables = Tables{
	Orders:     "orders",
	OrderItems: "order_items",
	Events:     "storefront_events",
}

func (t Tables) validate() error {
	for _, name := range []string{t.Orders, t.OrderItems, t.Events} {
		if !tableNameRe.MatchString(name) {
			return fmt.Errorf("%w: %q", ErrInvalidTable, name)
		}
	}
	return nil
}

// Loader lit les agrégats du dashboard depuis MySQL/MariaDB.
type Loader struct {
	db       *sql.DB
	tables   Tables
	logger   *zap.Logger
	topLimit int
}

// NewLoader valide les noms de tables avant de les interpoler dans les requêtes.
func NewLoader(db *sql.DB, tables Tables, logger *zap.Logger) (*Loader, error) {
	if err := tables.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{db: db, tables: tables, logger: logger, topLimit: 5}, nil
}

// Load charge tous les agrégats de la fenêtre [from, to) ainsi que le
// chiffre d'affaires de la fenêtre précédente de même durée.
func (l *Loader) Load(ctx context.Context, from, to time.Time) (models.Aggregates, error) {
	var (
		agg models.Aggregates
		err error
	)
	if agg.Revenue, err = l.Revenue(ctx, from, to); err != nil {
		return agg, fmt.Errorf("revenue: %w", err)
	}
	prevFrom := from.Add(-to.Sub(from))
	if agg.PreviousRevenue, err = l.Revenue(ctx, prevFrom, from); err != nil {
		return agg, fmt.Errorf("previous revenue: %w", err)
	}
	agg.HistoricalRevenue = agg.PreviousRevenue.TotalRevenue
	if agg.StatusBuckets, err = l.StatusBuckets(ctx, from, to); err != nil {
		return agg, fmt.Errorf("status buckets: %w", err)
	}
	if agg.Funnel, err = l.Funnel(ctx, from, to); err != nil {
		return agg, fmt.Errorf("funnel: %w", err)
	}
	if agg.Customers, err = l.CustomerBehavior(ctx, from, to); err != nil {
		return agg, fmt.Errorf("customers: %w", err)
	}
	if agg.TopProducts, err = l.TopProducts(ctx, from, to); err != nil {
		return agg, fmt.Errorf("top products: %w", err)
	}
	return agg, nil
}

// Revenue : somme des montants et nombre de commandes de la fenêtre.
func (l *Loader) Revenue(ctx context.Context, from, to time.Time) (models.RevenueAggregate, error) {
	q := fmt.Sprintf(`
		SELECT COALESCE(SUM(o.total_amount), 0), COUNT(*)
		FROM %s o
		WHERE o.created_at >= ? AND o.created_at < ?
	`, l.tables.Orders)

	var (
		total  float64
		orders int64
	)
	if err := l.db.QueryRowContext(ctx, q, utc(from), utc(to)).Scan(&total, &orders); err != nil {
		return models.RevenueAggregate{}, err
	}
	l.logger.Debug("revenue loaded",
		zap.String("from", utc(from)), zap.String("to", utc(to)),
		zap.Float64("total", total), zap.Int64("orders", orders))

	return models.RevenueAggregate{
		TotalRevenue:      total,
		TotalOrders:       orders,
		AverageOrderValue: metrics.AverageOrderValue(total, orders),
	}, nil
}

// StatusBuckets : une ligne par statut de commande.
func (l *Loader) StatusBuckets(ctx context.Context, from, to time.Time) ([]models.OrderStatusBucket, error) {
	q := fmt.Sprintf(`
		SELECT o.status, COUNT(*)
		FROM %s o
		WHERE o.created_at >= ? AND o.created_at < ?
		GROUP BY o.status
		ORDER BY o.status
	`, l.tables.Orders)

	rows, err := l.db.QueryContext(ctx, q, utc(from), utc(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.OrderStatusBucket
	for rows.Next() {
		var b models.OrderStatusBucket
		if err := rows.Scan(&b.Status, &b.Count); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Funnel compte les sessions distinctes par étape. Le taux de conversion
// d'une étape est rapporté à la première étape du tunnel.
func (l *Loader) Funnel(ctx context.Context, from, to time.Time) (models.FunnelSteps, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(models.FunnelOrder)), ",")
	q := fmt.Sprintf(`
		SELECT e.event_type, COUNT(DISTINCT e.session_id)
		FROM %s e
		WHERE e.event_type IN (%s)
		  AND e.created_at >= ? AND e.created_at < ?
		GROUP BY e.event_type
	`, l.tables.Events, placeholders)

	args := make([]any, 0, len(models.FunnelOrder)+2)
	for _, step := range models.FunnelOrder {
		args = append(args, step)
	}
	args = append(args, utc(from), utc(to))

	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int64{}
	for rows.Next() {
		var (
			step  string
			count int64
		)
		if err := rows.Scan(&step, &count); err != nil {
			return nil, err
		}
		counts[step] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	steps := models.FunnelSteps{}
	if len(counts) == 0 {
		return steps, nil
	}
	first := float64(counts[models.FunnelOrder[0]])
	for _, step := range models.FunnelOrder {
		steps[step] = models.ConversionStep{
			Count:          counts[step],
			ConversionRate: metrics.Percentage(float64(counts[step]), first),
		}
	}
	l.logger.Debug("funnel loaded", zap.Any("counts", counts))
	return steps, nil
}

// CustomerBehavior agrège par client les commandes de la fenêtre.
// Un client est "retenu" s'il avait déjà commandé avant la fenêtre.
func (l *Loader) CustomerBehavior(ctx context.Context, from, to time.Time) (models.CustomerBehavior, error) {
	q := fmt.Sprintf(`
		SELECT
			o.customer_id,
			COUNT(*) AS orders,
			(SELECT COUNT(*) FROM %[1]s p WHERE p.customer_id = o.customer_id AND p.created_at < ?) AS prior
		FROM %[1]s o
		WHERE o.created_at >= ? AND o.created_at < ?
		GROUP BY o.customer_id
	`, l.tables.Orders)

	rows, err := l.db.QueryContext(ctx, q, utc(from), utc(from), utc(to))
	if err != nil {
		return models.CustomerBehavior{}, err
	}
	defer rows.Close()

	var customers, repeaters, returning, orders int64
	for rows.Next() {
		var (
			customerID string // uint ou UUID selon le schéma, seulement compté
			n, prior   int64
		)
		if err := rows.Scan(&customerID, &n, &prior); err != nil {
			return models.CustomerBehavior{}, err
		}
		customers++
		orders += n
		if n >= 2 {
			repeaters++
		}
		if prior > 0 {
			returning++
		}
	}
	if err := rows.Err(); err != nil {
		return models.CustomerBehavior{}, err
	}

	l.logger.Debug("customers loaded",
		zap.Int64("customers", customers), zap.Int64("repeaters", repeaters), zap.Int64("returning", returning))

	if customers == 0 {
		return models.CustomerBehavior{}, nil
	}
	return models.CustomerBehavior{
		RetentionRate:         metrics.Percentage(float64(returning), float64(customers)),
		RepeatPurchaseRate:    float64(repeaters) / float64(customers),
		AverageOrderFrequency: float64(orders) / float64(customers),
	}, nil
}

// TopProducts : classement des produits par quantité vendue.
func (l *Loader) TopProducts(ctx context.Context, from, to time.Time) ([]models.ProductSales, error) {
	q := fmt.Sprintf(`
		SELECT i.product_id, i.product_name, SUM(i.quantity) AS qty, SUM(i.quantity * i.unit_price) AS revenue
		FROM %s i
		JOIN %s o ON o.id = i.order_id
		WHERE o.created_at >= ? AND o.created_at < ?
		GROUP BY i.product_id, i.product_name
		ORDER BY qty DESC
		LIMIT ?
	`, l.tables.OrderItems, l.tables.Orders)

	rows, err := l.db.QueryContext(ctx, q, utc(from), utc(to), l.topLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ProductSales
	for rows.Next() {
		var p models.ProductSales
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Count, &p.Revenue); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// InsertEvent enregistre un événement du storefront.
func (l *Loader) InsertEvent(ctx context.Context, ev models.StorefrontEvent) error {
	q := fmt.Sprintf(`
		INSERT INTO %s (id, session_id, user_id, event_type, properties, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, l.tables.Events)

	var userID sql.NullString
	if ev.UserID != "" {
		userID = sql.NullString{String: ev.UserID, Valid: true}
	}
	if _, err := l.db.ExecContext(ctx, q,
		ev.ID, ev.SessionID, userID, ev.Type, ev.Properties, utc(ev.OccurredAt)); err != nil {
		return fmt.Errorf("insert event %s: %w", ev.Type, err)
	}
	return nil
}

func utc(t time.Time) string {
	return t.UTC().Format(layout)
}
