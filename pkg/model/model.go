package model

import "time"

// Contact is the data structure for a professional acquaintance as it
// appears on the wire. Dates are serialized as RFC 3339 strings.
type Contact struct {
	Id              int64     `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Workplace       string    `json:"workplace"`
	Email           string    `json:"email"`
	KnownFrom       string    `json:"knownFrom"`
	Comments        string    `json:"comments"`
	LastContactDate time.Time `json:"lastContactDate"`
	LastUpdate      time.Time `json:"lastUpdate"`
}

// ContactInput is the payload for creating or updating a contact. Omitted
// fields stay nil and are left out of the request JSON. The server assigns
// id and lastUpdate; they cannot be supplied here.
type ContactInput struct {
	FirstName       *string    `json:"firstName,omitempty"`
	LastName        *string    `json:"lastName,omitempty"`
	Workplace       *string    `json:"workplace,omitempty"`
	Email           *string    `json:"email,omitempty"`
	KnownFrom       *string    `json:"knownFrom,omitempty"`
	Comments        *string    `json:"comments,omitempty"`
	LastContactDate *time.Time `json:"lastContactDate,omitempty"`
}
