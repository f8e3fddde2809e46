package sink

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"gamecatalog/lib/catalog"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

// OpenSQLite opens (or creates) the database at path and applies Schema.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

// SQLite replaces the games table contents with the given records in one transaction.
type SQLite struct {
	DB *sql.DB
}

const insertGame = `insert or replace into games (
	appid, name, release_date, achievements, categories,
	windows, mac, linux, developer, dlc_count, languages,
	required_age, price, short_description, players_now,
	reviews_positive, reviews_negative, position
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (s SQLite) Write(ctx context.Context, records []catalog.GameRecord) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "delete from games"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, insertGame)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.ExecContext(
			ctx,
			r.AppID, r.Name, r.ReleaseDate, r.Achievements, r.Categories,
			r.Windows, r.Mac, r.Linux, r.Developer, r.DLCCount, r.Languages,
			r.RequiredAge, r.Price, r.ShortDescription, r.PlayersNow,
			r.ReviewsPositive, r.ReviewsNegative, i,
		)
		if err != nil {
			return fmt.Errorf("insert appid %d: %w", r.AppID, err)
		}
	}

	return tx.Commit()
}

// ReadSQLite loads the games table in discovery order.
func ReadSQLite(ctx context.Context, db *sql.DB) ([]catalog.GameRecord, error) {
	rows, err := db.QueryContext(ctx, `select
		appid, name, release_date, achievements, categories,
		windows, mac, linux, developer, dlc_count, languages,
		required_age, price, short_description, players_now,
		reviews_positive, reviews_negative
	from games order by position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.GameRecord
	for rows.Next() {
		var r catalog.GameRecord
		err := rows.Scan(
			&r.AppID, &r.Name, &r.ReleaseDate, &r.Achievements, &r.Categories,
			&r.Windows, &r.Mac, &r.Linux, &r.Developer, &r.DLCCount, &r.Languages,
			&r.RequiredAge, &r.Price, &r.ShortDescription, &r.PlayersNow,
			&r.ReviewsPositive, &r.ReviewsNegative,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
