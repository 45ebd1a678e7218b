package sqlconnect

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DSN prefers DATABASE_URL and otherwise assembles a postgres URL from the
// split DB_* fields, percent-encoding the password.
func DSN() (string, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn, nil
	}

	user := os.Getenv("DB_USERNAME")
	pass := os.Getenv("DB_PASSWORD")
	if user == "" {
		return "", fmt.Errorf("DATABASE_URL or DB_USERNAME/DB_PASSWORD must be set")
	}
	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "localhost:5432"
	}
	name := os.Getenv("DB_NAME")
	if name == "" {
		name = "bookstore"
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(user, pass),
		Host:   host,
		Path:   "/" + name,
	}
	return u.String(), nil
}

func ConnectDB() (*sql.DB, error) {
	dsn, err := DSN()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}
