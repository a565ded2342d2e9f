// Package database opens the MySQL connection and owns the schema the
// persistence layer writes to.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// schema holds the DDL for every table the repositories use. Matches and
// tickets reference venues and matches by identity (venue name, match
// tuple), never by surrogate keys, so a restored graph re-links by the
// same identities the in-memory model uses.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		username      VARCHAR(64)  NOT NULL,
		name          VARCHAR(128) NOT NULL DEFAULT '',
		surname       VARCHAR(128) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(16)  NOT NULL DEFAULT 'CLIENT',
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_username (username)
	)`,
	`CREATE TABLE IF NOT EXISTS venues (
		name     VARCHAR(128) NOT NULL PRIMARY KEY,
		capacity INT    NOT NULL,
		price    DOUBLE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		kickoff    DATETIME     NOT NULL,
		home       VARCHAR(128) NOT NULL,
		away       VARCHAR(128) NOT NULL,
		venue_name VARCHAR(128) NOT NULL,
		PRIMARY KEY (kickoff, home, away)
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id         INT          NOT NULL PRIMARY KEY,
		username   VARCHAR(64)  NOT NULL,
		kickoff    DATETIME     NOT NULL,
		home       VARCHAR(128) NOT NULL,
		away       VARCHAR(128) NOT NULL,
		sector     VARCHAR(32)  NOT NULL,
		row_no     INT          NOT NULL,
		seat_no    INT          NOT NULL,
		reserved   TINYINT(1)   NOT NULL DEFAULT 0,
		paid       TINYINT(1)   NOT NULL DEFAULT 0,
		price      DOUBLE       NOT NULL DEFAULT 0,
		created_at DATETIME     NOT NULL,
		KEY idx_tickets_match (kickoff, home, away)
	)`,
	`CREATE TABLE IF NOT EXISTS discounts (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		kind       VARCHAR(16)  NOT NULL,
		percent    DOUBLE       NOT NULL,
		weekday    INT          NOT NULL DEFAULT 0,
		start_at   DATETIME     NULL,
		end_at     DATETIME     NULL,
		kickoff    DATETIME     NULL,
		home       VARCHAR(128) NULL,
		away       VARCHAR(128) NULL,
		venue_name VARCHAR(128) NULL
	)`,
}

// EnsureSchema creates the tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, ddl := range schema {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
