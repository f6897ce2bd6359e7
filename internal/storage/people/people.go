// Package people holds the data-access operations for the people table.
//
// Every operation takes a borrowed connection, runs exactly one statement
// with bound parameters, and never closes the connection. Placeholders are
// written $1, $2, ... and each appears once in ascending order, which both
// Postgres and SQLite bind positionally.
//
// A query that matches no row is not an error: single-row operations
// return (nil, nil).
package people

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/people-api/internal/types"
)

// Querier is satisfied by *sql.Conn, *sql.DB and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const (
	listQuery   = `SELECT id, name, age FROM people`
	getQuery    = `SELECT id, name, age FROM people WHERE id = $1`
	createQuery = `INSERT INTO people (name, age) VALUES ($1, $2) RETURNING id, name, age`
	updateQuery = `UPDATE people SET name = $1, age = $2 WHERE id = $3 RETURNING id, name, age`
	deleteQuery = `DELETE FROM people WHERE id = $1 RETURNING id, name, age`
	probeQuery  = `SELECT 2 * 2`
)

type scanner interface {
	Scan(dest ...any) error
}

func scanPerson(row scanner) (types.Person, error) {
	var (
		id int64
		p  types.Person
	)
	if err := row.Scan(&id, &p.Name, &p.Age); err != nil {
		return types.Person{}, err
	}
	p.ID = &id
	return p, nil
}

// scanOne maps sql.ErrNoRows to a nil person.
func scanOne(op string, row *sql.Row) (*types.Person, error) {
	p, err := scanPerson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: scan: %w", op, err)
	}
	return &p, nil
}

// List returns every person in the database's natural order. The result
// is an empty slice, never nil, when the table is empty.
func List(ctx context.Context, q Querier) ([]types.Person, error) {
	rows, err := q.QueryContext(ctx, listQuery)
	if err != nil {
		return nil, fmt.Errorf("people.List: query: %w", err)
	}
	defer rows.Close()

	people := make([]types.Person, 0)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("people.List: scan row: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("people.List: rows iteration: %w", err)
	}

	return people, nil
}

// Get returns the person with the given id, or nil.
func Get(ctx context.Context, q Querier, id int64) (*types.Person, error) {
	return scanOne("people.Get", q.QueryRowContext(ctx, getQuery, id))
}

// Create inserts p and returns the stored row with its generated id.
// p.ID is ignored.
func Create(ctx context.Context, q Querier, p types.Person) (*types.Person, error) {
	created, err := scanOne("people.Create", q.QueryRowContext(ctx, createQuery, p.Name, p.Age))
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, errors.New("people.Create: insert returned no row")
	}
	return created, nil
}

// Update replaces name and age of the person with the given id and returns
// the updated row, or nil if no row matched. p.ID is ignored.
func Update(ctx context.Context, q Querier, id int64, p types.Person) (*types.Person, error) {
	return scanOne("people.Update", q.QueryRowContext(ctx, updateQuery, p.Name, p.Age, id))
}

// Delete removes the person with the given id and returns the row as it
// was just before deletion, or nil if no row matched.
func Delete(ctx context.Context, q Querier, id int64) (*types.Person, error) {
	return scanOne("people.Delete", q.QueryRowContext(ctx, deleteQuery, id))
}

// Probe runs a trivial arithmetic query to prove the connection works.
func Probe(ctx context.Context, q Querier) (int64, error) {
	var result int64
	if err := q.QueryRowContext(ctx, probeQuery).Scan(&result); err != nil {
		return 0, fmt.Errorf("people.Probe: %w", err)
	}
	return result, nil
}
