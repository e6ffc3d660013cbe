// Package store is the only component that issues raw database operations.
// It translates CRUD verbs into SQL against the contacts table and reports
// "record absent" explicitly instead of through errors; every real database
// failure is wrapped with context and propagated upward unmodified.
package store

import (
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"gitlab.com/dirk.krummacker/contact-book/internal/config"
	"gitlab.com/dirk.krummacker/contact-book/internal/model"
)

// Store provides persistence access for contacts.
type Store struct {
	db *sqlx.DB

	// Prepared statements offer a significant speed increase if executed
	// many times.
	insert        *sqlx.NamedStmt
	selectAll     *sqlx.Stmt
	selectWhereId *sqlx.Stmt
	deleteWhereId *sqlx.Stmt
}

// CreateDatabase initializes and returns a database connection with the
// connection parameters from the configuration.
func CreateDatabase(cfg config.Config) (*sql.DB, error) {
	sqlDB, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "opening database connection")
	}
	return sqlDB, nil
}

// New initializes the sqlx database wrapper with the specified sql database
// and prepares all statements. The database argument can be a real database
// for production use or a mock database within unit tests.
func New(sqlDB *sql.DB) (*Store, error) {
	s := &Store{db: sqlx.NewDb(sqlDB, "mysql")}

	var err error
	s.insert, err = s.db.PrepareNamed(`
		INSERT INTO contacts (first_name, last_name, workplace, email, known_from, comments, last_contact_date, last_update)
		VALUES (:first_name, :last_name, :workplace, :email, :known_from, :comments, :last_contact_date, :last_update)
	`)
	if err != nil {
		return nil, errors.Wrap(err, "preparing insert statement")
	}
	s.selectAll, err = s.db.Preparex(`
		SELECT * FROM contacts
	`)
	if err != nil {
		return nil, errors.Wrap(err, "preparing select-all statement")
	}
	s.selectWhereId, err = s.db.Preparex(`
		SELECT * FROM contacts WHERE id = ?
	`)
	if err != nil {
		return nil, errors.Wrap(err, "preparing select-by-id statement")
	}
	s.deleteWhereId, err = s.db.Preparex(`
		DELETE FROM contacts WHERE id = ?
	`)
	if err != nil {
		return nil, errors.Wrap(err, "preparing delete statement")
	}
	return s, nil
}

// FindAll returns all contacts. The order is whatever the database delivers.
func (s *Store) FindAll() ([]model.Contact, error) {
	var contacts []model.Contact
	if err := s.selectAll.Select(&contacts); err != nil {
		return nil, errors.Wrap(err, "selecting all contacts")
	}
	return contacts, nil
}

// FindById returns the contact with the given id, or nil if no such record
// exists. Absence is not an error.
func (s *Store) FindById(id int64) (*model.Contact, error) {
	var contacts []model.Contact
	if err := s.selectWhereId.Select(&contacts, id); err != nil {
		return nil, errors.Wrapf(err, "selecting contact %d", id)
	}
	if len(contacts) == 0 {
		return nil, nil
	}
	return &contacts[0], nil
}

// Create persists the contact and fills in the database-assigned id.
func (s *Store) Create(contact *model.Contact) error {
	result, err := s.insert.Exec(contact)
	if err != nil {
		return errors.Wrap(err, "inserting contact")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "reading last insert id")
	}
	contact.Id = id
	return nil
}

// Update merges the non-nil fields of the input into the record with the
// given id and refreshes last_update. It returns the full record after the
// update, or nil if no such record exists.
//
// Existence is checked with a select up front because MySQL reports zero
// affected rows when an update writes values identical to the stored ones,
// which would be indistinguishable from a missing record.
func (s *Store) Update(id int64, in model.ContactInput) (*model.Contact, error) {
	existing, err := s.FindById(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	var args []interface{}
	stmt := "UPDATE contacts SET "
	if in.FirstName != nil {
		args = append(args, in.FirstName)
		stmt += "first_name=?, "
	}
	if in.LastName != nil {
		args = append(args, in.LastName)
		stmt += "last_name=?, "
	}
	if in.Workplace != nil {
		args = append(args, in.Workplace)
		stmt += "workplace=?, "
	}
	if in.Email != nil {
		args = append(args, in.Email)
		stmt += "email=?, "
	}
	if in.KnownFrom != nil {
		args = append(args, in.KnownFrom)
		stmt += "known_from=?, "
	}
	if in.Comments != nil {
		args = append(args, in.Comments)
		stmt += "comments=?, "
	}
	if in.LastContactDate != nil {
		args = append(args, in.LastContactDate)
		stmt += "last_contact_date=?, "
	}
	args = append(args, time.Now().UTC())
	stmt += "last_update=? WHERE id=?"
	args = append(args, id)
	if _, err := s.db.Exec(stmt, args...); err != nil {
		return nil, errors.Wrapf(err, "updating contact %d", id)
	}

	// Return the full contact after the update.
	return s.FindById(id)
}

// Delete removes the record with the given id. It returns false if no such
// record exists.
func (s *Store) Delete(id int64) (bool, error) {
	result, err := s.deleteWhereId.Exec(id)
	if err != nil {
		return false, errors.Wrapf(err, "deleting contact %d", id)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "reading affected rows")
	}
	return rowsAffected == 1, nil
}
