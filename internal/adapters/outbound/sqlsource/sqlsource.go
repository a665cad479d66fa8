package sqlsource

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/microsoft/go-mssqldb"

	"github.com/abdidvp/integrity/internal/domain"
)

const (
	defaultConnectTimeout = 30 * time.Second
	defaultMySQLPort      = 3306
	defaultSQLServerPort  = 1433
)

// Connector opens database/sql pools for the supported drivers.
type Connector struct{}

func NewConnector() *Connector {
	return &Connector{}
}

// Connect opens the pool and pings it once. A failure here is the startup
// connection failure that aborts a run.
func (c *Connector) Connect(ctx context.Context, cfg domain.DatabaseConfig) (domain.Source, error) {
	dsn, err := BuildDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(string(cfg.Driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", cfg.Driver, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout(cfg))
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s ping failed: %w", cfg.Driver, err)
	}
	return NewFromDB(db), nil
}

// BuildDSN returns cfg.DSN when set, otherwise assembles a driver-specific
// DSN from the discrete fields.
func BuildDSN(cfg domain.DatabaseConfig) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}
	switch cfg.Driver {
	case domain.DriverMySQL:
		return mysqlDSN(cfg), nil
	case domain.DriverSQLServer:
		return sqlserverDSN(cfg), nil
	default:
		return "", fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}

func mysqlDSN(cfg domain.DatabaseConfig) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(portOr(cfg.Port, defaultMySQLPort)))
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Timeout = connectTimeout(cfg)
	return mc.FormatDSN()
}

func sqlserverDSN(cfg domain.DatabaseConfig) string {
	q := url.Values{}
	if cfg.Name != "" {
		q.Set("database", cfg.Name)
	}
	q.Set("connection timeout", strconv.Itoa(int(connectTimeout(cfg).Seconds())))
	u := &url.URL{
		Scheme:   "sqlserver",
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(portOr(cfg.Port, defaultSQLServerPort))),
		RawQuery: q.Encode(),
	}
	if cfg.User != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}
	return u.String()
}

func connectTimeout(cfg domain.DatabaseConfig) time.Duration {
	if cfg.ConnectTimeout > 0 {
		return cfg.ConnectTimeout
	}
	return defaultConnectTimeout
}

func portOr(port, fallback int) int {
	if port > 0 {
		return port
	}
	return fallback
}

// Source runs check queries on a pool.
type Source struct {
	db *sql.DB
}

// NewFromDB wraps an already opened pool.
func NewFromDB(db *sql.DB) *Source {
	return &Source{db: db}
}

// Query acquires a dedicated connection, reads every row and releases the
// connection before returning.
func (s *Source) Query(ctx context.Context, query string) (domain.ResultSet, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return domain.ResultSet{}, fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return domain.ResultSet{}, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return domain.ResultSet{}, fmt.Errorf("reading columns: %w", err)
	}

	rs := domain.ResultSet{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return domain.ResultSet{}, fmt.Errorf("scanning row %d: %w", len(rs.Rows), err)
		}
		for i, v := range values {
			values[i] = normalize(v)
		}
		rs.Rows = append(rs.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return domain.ResultSet{}, err
	}
	return rs, nil
}

// Close closes the pool.
func (s *Source) Close() error {
	return s.db.Close()
}

// normalize maps driver values onto string, number, bool, time or nil.
func normalize(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	default:
		return t
	}
}
