package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/dirk.krummacker/contact-book/pkg/model"
)

func sampleContacts() []model.Contact {
	return []model.Contact{
		{
			Id: 1, FirstName: "John", LastName: "Doe", Workplace: "Acme Inc.",
			Email: "john.doe@example.com", KnownFrom: "Conference",
			Comments:        "Met at TechConf 2023.",
			LastContactDate: time.Date(2023, time.December, 15, 0, 0, 0, 0, time.UTC),
			LastUpdate:      time.Date(2024, time.April, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			Id: 2, FirstName: "Jane", LastName: "Smith", Workplace: "Tech Solutions",
			Email: "jane.smith@example.com", KnownFrom: "Former Colleague",
			Comments:        "Expert in backend systems.",
			LastContactDate: time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC),
			LastUpdate:      time.Date(2024, time.April, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	w.WriteHeader(status)
	payload := map[string]interface{}{"message": message, "status": "success"}
	if data != nil {
		payload["data"] = data
	}
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string, detail string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": message, "status": "error", "error": detail,
	})
}

func TestGetAllContacts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/contacts", r.URL.Path)
		writeSuccess(w, http.StatusOK, "Contacts retrieved successfully", sampleContacts())
	}))
	defer server.Close()

	contacts, err := New(server.URL).GetAllContacts()
	require.NoError(t, err)
	require.Equal(t, 2, len(contacts))
	assert.Equal(t, int64(1), contacts[0].Id)
	assert.Equal(t, "John", contacts[0].FirstName)
	assert.Equal(t, "jane.smith@example.com", contacts[1].Email)
}

func TestGetContactById(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contacts/1", r.URL.Path)
		writeSuccess(w, http.StatusOK, "Contact retrieved successfully", sampleContacts()[0])
	}))
	defer server.Close()

	contact, err := New(server.URL).GetContactById(1)
	require.NoError(t, err)
	assert.Equal(t, "Doe", contact.LastName)
	assert.Equal(t, time.Date(2023, time.December, 15, 0, 0, 0, 0, time.UTC), contact.LastContactDate)
}

// TestGetContactByIdNotFound expects the server-supplied error message to
// surface verbatim.
func TestGetContactByIdNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Failed to retrieve contact", "Contact with ID 999999 not found")
	}))
	defer server.Close()

	_, err := New(server.URL).GetContactById(999999)
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Contact with ID 999999 not found", apiErr.Message)
}

func TestCreateContact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in model.ContactInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.NotNil(t, in.FirstName)
		assert.Equal(t, "John", *in.FirstName)
		// Omitted fields must not appear in the request JSON at all.
		assert.Nil(t, in.Workplace)
		created := sampleContacts()[0]
		writeSuccess(w, http.StatusCreated, "Contact created successfully", created)
	}))
	defer server.Close()

	firstName, lastName, email := "John", "Doe", "john.doe@example.com"
	contact, err := New(server.URL).CreateContact(model.ContactInput{
		FirstName: &firstName,
		LastName:  &lastName,
		Email:     &email,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), contact.Id)
}

func TestUpdateContact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/contacts/2", r.URL.Path)
		updated := sampleContacts()[1]
		updated.Workplace = "Globex"
		writeSuccess(w, http.StatusOK, "Contact updated successfully", updated)
	}))
	defer server.Close()

	workplace := "Globex"
	contact, err := New(server.URL).UpdateContact(2, model.ContactInput{Workplace: &workplace})
	require.NoError(t, err)
	assert.Equal(t, "Globex", contact.Workplace)
	assert.Equal(t, "Jane", contact.FirstName)
}

func TestDeleteContact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		writeSuccess(w, http.StatusOK, "Contact deleted successfully", nil)
	}))
	defer server.Close()

	message, err := New(server.URL).DeleteContact(2)
	require.NoError(t, err)
	assert.Equal(t, "Contact deleted successfully", message)
}

func TestDeleteContactValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusBadRequest, "Failed to delete contact", "Contact ID must be a number")
	}))
	defer server.Close()

	_, err := New(server.URL).DeleteContact(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a number")
}

func TestSearchMatchesAcrossFields(t *testing.T) {
	contacts := sampleContacts()

	// Case-insensitive match on a name.
	assert.Equal(t, 1, len(Search(contacts, "JOHN D")))
	// Match on workplace.
	assert.Equal(t, 1, len(Search(contacts, "tech sol")))
	// Match on comments.
	assert.Equal(t, 1, len(Search(contacts, "backend")))
	// Match on the last-contact date text.
	assert.Equal(t, 1, len(Search(contacts, "2023-12-15")))
	// OR semantics: a term present in either record matches both.
	assert.Equal(t, 2, len(Search(contacts, "example.com")))
	// No match.
	assert.Equal(t, 0, len(Search(contacts, "quux")))
	// Empty term matches everything.
	assert.Equal(t, 2, len(Search(contacts, "")))
}

func TestSortByAscendingAndDescending(t *testing.T) {
	contacts := sampleContacts()

	sorted, err := SortBy(contacts, "lastName", true)
	require.NoError(t, err)
	assert.Equal(t, "Doe", sorted[0].LastName)
	assert.Equal(t, "Smith", sorted[1].LastName)

	sorted, err = SortBy(contacts, "lastName", false)
	require.NoError(t, err)
	assert.Equal(t, "Smith", sorted[0].LastName)
	assert.Equal(t, "Doe", sorted[1].LastName)

	// The input slice stays untouched.
	assert.Equal(t, int64(1), contacts[0].Id)
}

func TestSortByIsCaseInsensitive(t *testing.T) {
	contacts := []model.Contact{
		{Id: 1, LastName: "smith"},
		{Id: 2, LastName: "Doe"},
	}
	sorted, err := SortBy(contacts, "lastName", true)
	require.NoError(t, err)
	assert.Equal(t, "Doe", sorted[0].LastName)
}

// TestSortByMissingValuesSortLast expects empty values at the end in both
// directions.
func TestSortByMissingValuesSortLast(t *testing.T) {
	contacts := []model.Contact{
		{Id: 1, Workplace: ""},
		{Id: 2, Workplace: "Acme"},
		{Id: 3, Workplace: "Globex"},
	}

	sorted, err := SortBy(contacts, "workplace", true)
	require.NoError(t, err)
	assert.Equal(t, "Acme", sorted[0].Workplace)
	assert.Equal(t, "Globex", sorted[1].Workplace)
	assert.Equal(t, "", sorted[2].Workplace)

	sorted, err = SortBy(contacts, "workplace", false)
	require.NoError(t, err)
	assert.Equal(t, "Globex", sorted[0].Workplace)
	assert.Equal(t, "Acme", sorted[1].Workplace)
	assert.Equal(t, "", sorted[2].Workplace)
}

func TestSortByUnknownKey(t *testing.T) {
	_, err := SortBy(sampleContacts(), "birthday", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sort key")
}

func TestSortByDate(t *testing.T) {
	contacts := sampleContacts()
	sorted, err := SortBy(contacts, "lastContactDate", false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sorted[0].Id)
}

func ExampleNew() {
	c := New("http://localhost:8080/")
	fmt.Println(c.baseURL)
	// Output: http://localhost:8080
}
