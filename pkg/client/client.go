// Package client is a typed wrapper around the contact book REST API. Each
// operation performs exactly one HTTP call, unwraps the response envelope's
// payload on success and surfaces the server-supplied error message on
// failure. There is no caching, retry or batching.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"gitlab.com/dirk.krummacker/contact-book/pkg/model"
)

// Client calls the contact book REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API at the given base URL, for example
// "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
}

// APIError is a failure reported by the server. Message carries the
// server-supplied error string verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// envelope is the uniform JSON wrapper returned by every API response.
type envelope struct {
	Message string          `json:"message"`
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data,omitempty"`
	Err     string          `json:"error,omitempty"`
}

// GetAllContacts fetches the full contact collection.
func (c *Client) GetAllContacts() ([]model.Contact, error) {
	env, err := c.sendRequest(http.MethodGet, "/contacts", nil)
	if err != nil {
		return nil, err
	}
	var contacts []model.Contact
	if err := json.Unmarshal(env.Data, &contacts); err != nil {
		return nil, fmt.Errorf("could not unmarshal contact list: %w", err)
	}
	return contacts, nil
}

// GetContactById fetches a single contact.
func (c *Client) GetContactById(id int64) (*model.Contact, error) {
	env, err := c.sendRequest(http.MethodGet, fmt.Sprintf("/contacts/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return unmarshalContact(env.Data)
}

// CreateContact creates a new contact and returns it with the
// server-assigned id and lastUpdate.
func (c *Client) CreateContact(in model.ContactInput) (*model.Contact, error) {
	env, err := c.sendRequest(http.MethodPost, "/contacts", &in)
	if err != nil {
		return nil, err
	}
	return unmarshalContact(env.Data)
}

// UpdateContact merges the set fields of the input into the contact with
// the given id and returns the updated record.
func (c *Client) UpdateContact(id int64, in model.ContactInput) (*model.Contact, error) {
	env, err := c.sendRequest(http.MethodPut, fmt.Sprintf("/contacts/%d", id), &in)
	if err != nil {
		return nil, err
	}
	return unmarshalContact(env.Data)
}

// DeleteContact removes the contact with the given id and returns the
// server's confirmation message.
func (c *Client) DeleteContact(id int64) (string, error) {
	env, err := c.sendRequest(http.MethodDelete, fmt.Sprintf("/contacts/%d", id), nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// sendRequest performs one HTTP round trip and decodes the envelope. An
// envelope with status "error" becomes an APIError.
func (c *Client) sendRequest(method string, path string, body interface{}) (*envelope, error) {
	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("could not marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making http request: %w", err)
	}
	defer res.Body.Close()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	var env envelope
	if err := json.Unmarshal(resBody, &env); err != nil {
		return nil, fmt.Errorf("could not unmarshal response envelope: %w", err)
	}
	if env.Status != "success" {
		return nil, &APIError{StatusCode: res.StatusCode, Message: env.Err}
	}
	return &env, nil
}

func unmarshalContact(data json.RawMessage) (*model.Contact, error) {
	var contact model.Contact
	if err := json.Unmarshal(data, &contact); err != nil {
		return nil, fmt.Errorf("could not unmarshal contact: %w", err)
	}
	return &contact, nil
}
