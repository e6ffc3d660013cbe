package model

import "time"

// Contact is the data structure for a professional acquaintance. The seven
// business fields are always present on a persisted record; CreatedAt and
// UpdatedAt are database bookkeeping and not part of the JSON shape.
type Contact struct {
	Id              int64     `json:"id"              db:"id"`
	FirstName       string    `json:"firstName"       db:"first_name"`
	LastName        string    `json:"lastName"        db:"last_name"`
	Workplace       string    `json:"workplace"       db:"workplace"`
	Email           string    `json:"email"           db:"email"`
	KnownFrom       string    `json:"knownFrom"       db:"known_from"`
	Comments        string    `json:"comments"        db:"comments"`
	LastContactDate time.Time `json:"lastContactDate" db:"last_contact_date"`
	LastUpdate      time.Time `json:"lastUpdate"      db:"last_update"`
	CreatedAt       time.Time `json:"-"               db:"created_at"`
	UpdatedAt       time.Time `json:"-"               db:"updated_at"`
}

// ContactInput is the request payload for creating or updating a contact.
// All fields are pointers so that a partial update can tell "field omitted"
// apart from "field set to the empty string". LastUpdate is absent on
// purpose: it is system-assigned and never accepted from the caller.
//
// The validate tags describe the create-path schema: firstName, lastName and
// email must be present and non-empty. The update path applies no presence
// rules; a wrong-typed value is already rejected when the JSON is bound.
type ContactInput struct {
	FirstName       *string    `json:"firstName" validate:"required,present"`
	LastName        *string    `json:"lastName"  validate:"required,present"`
	Workplace       *string    `json:"workplace"`
	Email           *string    `json:"email"     validate:"required,present"`
	KnownFrom       *string    `json:"knownFrom"`
	Comments        *string    `json:"comments"`
	LastContactDate *time.Time `json:"lastContactDate"`
}

// ToContact builds a full contact record from the input, substituting zero
// values for omitted optional fields and stamping LastUpdate with now.
func (in ContactInput) ToContact(now time.Time) Contact {
	return Contact{
		FirstName:       stringOrEmpty(in.FirstName),
		LastName:        stringOrEmpty(in.LastName),
		Workplace:       stringOrEmpty(in.Workplace),
		Email:           stringOrEmpty(in.Email),
		KnownFrom:       stringOrEmpty(in.KnownFrom),
		Comments:        stringOrEmpty(in.Comments),
		LastContactDate: timeOrZero(in.LastContactDate),
		LastUpdate:      now,
	}
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
