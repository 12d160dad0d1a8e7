package postgres

//nolint:revive
import (
	"fmt"
	"net"
	"net/url"
	"time"

	"stayengine/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// Connection holds the primary (Write) and replica (Read) pools. Transactions always run on
// Write; Read serves list endpoints that tolerate replication lag.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Node describes one postgres server.
type Node struct {
	Role     string
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	SSLMode  string
}

// Pool controls connection retries and pool sizing.
type Pool struct {
	MaxRetry        int
	RetryWait       time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	pool := Pool{
		MaxRetry:        pg.MaxRetry,
		RetryWait:       time.Duration(pg.RetryWaitTime) * time.Second,
		MaxOpenConns:    pg.MaxOpenConns,
		MaxIdleConns:    pg.MaxIdleConns,
		ConnMaxLifetime: time.Duration(pg.ConnMaxLifetime) * time.Minute,
	}

	write := Connect(Node{
		Role:     "write",
		Host:     pg.Write.Host,
		Port:     pg.Write.Port,
		Username: pg.Write.Username,
		Password: pg.Write.Password,
		Name:     pg.Prefix + pg.Write.Name,
		SSLMode:  pg.Write.SSLMode,
	}, pool)

	read := Connect(Node{
		Role:     "read",
		Host:     pg.Read.Host,
		Port:     pg.Read.Port,
		Username: pg.Read.Username,
		Password: pg.Read.Password,
		Name:     pg.Prefix + pg.Read.Name,
		SSLMode:  pg.Read.SSLMode,
	}, pool)

	if write == nil || read == nil {
		log.Fatal().Msg("postgres unavailable after retries")
	}

	return &Connection{Read: read, Write: write}
}

// Close releases both pools. Read and Write may share one pool.
func (c *Connection) Close() error {
	if err := c.Write.Close(); err != nil {
		return fmt.Errorf("failed to close write pool: %w", err)
	}

	if c.Read == c.Write {
		return nil
	}

	if err := c.Read.Close(); err != nil {
		return fmt.Errorf("failed to close read pool: %w", err)
	}

	return nil
}

// DSN renders node as a postgres URL.
func (n Node) DSN() string {
	query := url.Values{}
	if n.SSLMode != "" {
		query.Set("sslmode", n.SSLMode)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(n.Username, n.Password),
		Host:     net.JoinHostPort(n.Host, n.Port),
		Path:     n.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// Connect dials node, retrying up to pool.MaxRetry times. It returns nil when every attempt fails.
func Connect(node Node, pool Pool) *sqlx.DB {
	attempts := max(pool.MaxRetry, 1)

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := sqlx.Connect("postgres", node.DSN())
		if err == nil {
			if pool.MaxOpenConns > 0 {
				db.SetMaxOpenConns(pool.MaxOpenConns)
			}

			if pool.MaxIdleConns > 0 {
				db.SetMaxIdleConns(pool.MaxIdleConns)
			}

			if pool.ConnMaxLifetime > 0 {
				db.SetConnMaxLifetime(pool.ConnMaxLifetime)
			}

			log.Info().
				Str("role", node.Role).
				Str("host", node.Host).
				Str("db", node.Name).
				Msg("connected to postgres")

			return db
		}

		log.Error().
			Err(err).
			Str("role", node.Role).
			Str("host", node.Host).
			Int("attempt", attempt).
			Msg("failed connecting to postgres")

		if attempt < attempts {
			time.Sleep(pool.RetryWait)
		}
	}

	return nil
}
