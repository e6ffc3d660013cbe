package client

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gitlab.com/dirk.krummacker/contact-book/pkg/model"
)

// The search and sort helpers below are purely presentational: they operate
// on the last-fetched collection in memory and never touch the server.

// SortKeys are the allowed values for the SortBy key argument.
var SortKeys = []string{
	"firstName", "lastName", "workplace", "email",
	"knownFrom", "comments", "lastContactDate",
}

// Search returns the contacts matching the term with a case-insensitive
// substring match across all seven business fields. An empty term matches
// everything.
func Search(contacts []model.Contact, term string) []model.Contact {
	if term == "" {
		return contacts
	}
	needle := strings.ToLower(term)
	var matches []model.Contact
	for _, contact := range contacts {
		for _, value := range searchValues(contact) {
			if strings.Contains(strings.ToLower(value), needle) {
				matches = append(matches, contact)
				break
			}
		}
	}
	return matches
}

// SortBy returns the contacts ordered by the given key. String comparison
// is case-insensitive and contacts with a missing value for the key sort
// last regardless of direction. The input slice is left untouched.
func SortBy(contacts []model.Contact, key string, ascending bool) ([]model.Contact, error) {
	if !contains(SortKeys, key) {
		return nil, fmt.Errorf("invalid sort key %q", key)
	}
	sorted := make([]model.Contact, len(contacts))
	copy(sorted, contacts)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi := sortValue(sorted[i], key)
		vj := sortValue(sorted[j], key)
		// Missing values always sort last.
		if vi == "" || vj == "" {
			return vi != "" && vj == ""
		}
		if ascending {
			return vi < vj
		}
		return vj < vi
	})
	return sorted, nil
}

func searchValues(c model.Contact) []string {
	return []string{
		c.FirstName, c.LastName, c.Workplace, c.Email,
		c.KnownFrom, c.Comments, formatDate(c.LastContactDate),
	}
}

func sortValue(c model.Contact, key string) string {
	switch key {
	case "firstName":
		return strings.ToLower(c.FirstName)
	case "lastName":
		return strings.ToLower(c.LastName)
	case "workplace":
		return strings.ToLower(c.Workplace)
	case "email":
		return strings.ToLower(c.Email)
	case "knownFrom":
		return strings.ToLower(c.KnownFrom)
	case "comments":
		return strings.ToLower(c.Comments)
	case "lastContactDate":
		// RFC 3339 strings order the same way the instants do.
		return strings.ToLower(formatDate(c.LastContactDate))
	}
	return ""
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// contains returns true if a string is present in a slice.
func contains(slice []string, str string) bool {
	for _, v := range slice {
		if v == str {
			return true
		}
	}
	return false
}
