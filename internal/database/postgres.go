package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the process-wide pool every repository hangs off. Initialized once
// at startup.
var DB *pgxpool.Pool

const (
	minIdleConns    = 2
	connLifetime    = time.Hour
	connIdleTimeout = 30 * time.Minute
)

// ConnectDB opens the enrollment database pool. maxConns caps concurrent
// finalization transactions; values below the idle floor fall back to it.
func ConnectDB(dbUrl string, maxConns int32) error {
	config, err := pgxpool.ParseConfig(dbUrl)
	if err != nil {
		return fmt.Errorf("unable to parse database config: %v", err)
	}

	if maxConns < minIdleConns {
		maxConns = minIdleConns
	}
	config.MaxConns = maxConns
	config.MinConns = minIdleConns
	config.MaxConnLifetime = connLifetime
	config.MaxConnIdleTime = connIdleTimeout

	DB, err = pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %v", err)
	}

	if err := DB.Ping(context.Background()); err != nil {
		return fmt.Errorf("unable to ping database: %v", err)
	}

	log.Printf("MelodyMakers database pool ready (max %d conns)", maxConns)
	return nil
}

func CloseDB() {
	if DB != nil {
		DB.Close()
	}
}
