// Package service holds the business rules for contacts. It is the only
// place where invariants are enforced before persistence: required fields on
// create, last-update stamping, and the translation of "record absent" into
// a typed not-found failure.
package service

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"gitlab.com/dirk.krummacker/contact-book/internal/apperrors"
	"gitlab.com/dirk.krummacker/contact-book/internal/model"
	"gitlab.com/dirk.krummacker/contact-book/internal/store"
)

// Service implements the contact business logic on top of the store.
type Service struct {
	store    *store.Store
	validate *validator.Validate
}

// New creates a service around the given store. The validator is configured
// once: error reports use the JSON field names, and the 'present' rule
// requires a string value to be set and non-empty.
func New(st *store.Store) *Service {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("present", func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.String && fl.Field().String() != ""
	})
	return &Service{store: st, validate: validate}
}

// GetAllContacts returns all stored contacts without transformation.
func (s *Service) GetAllContacts() ([]model.Contact, error) {
	return s.store.FindAll()
}

// GetContactById returns the contact with the given id, or a not-found
// failure referencing the id.
func (s *Service) GetContactById(id int64) (*model.Contact, error) {
	contact, err := s.store.FindById(id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperrors.NewNotFound("Contact with ID %d not found", id)
	}
	return contact, nil
}

// CreateContact validates the payload against the create schema, stamps the
// last-update timestamp and persists the new record. Optional fields that
// were omitted are stored as zero values.
func (s *Service) CreateContact(in model.ContactInput) (*model.Contact, error) {
	if err := s.validate.Struct(in); err != nil {
		fieldErrors, ok := err.(validator.ValidationErrors)
		if !ok || len(fieldErrors) == 0 {
			return nil, apperrors.NewValidation("invalid contact payload")
		}
		return nil, apperrors.NewValidation(
			"Field %s is required and must be a non-empty string", fieldErrors[0].Field())
	}
	contact := in.ToContact(time.Now().UTC())
	if err := s.store.Create(&contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

// UpdateContact merges the supplied fields into the record with the given
// id. The last-update timestamp is refreshed even when the payload carries
// no fields at all.
func (s *Service) UpdateContact(id int64, in model.ContactInput) (*model.Contact, error) {
	contact, err := s.store.Update(id, in)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperrors.NewNotFound("Contact with ID %d not found", id)
	}
	return contact, nil
}

// DeleteContact removes the record with the given id permanently.
func (s *Service) DeleteContact(id int64) error {
	deleted, err := s.store.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("Contact with ID %d not found", id)
	}
	return nil
}
