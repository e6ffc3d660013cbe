// Package api exposes the contact service as a REST resource. Every
// response, success or failure, carries the uniform envelope; errors are
// mapped to status codes in exactly one place.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gitlab.com/dirk.krummacker/contact-book/internal/apperrors"
	"gitlab.com/dirk.krummacker/contact-book/internal/model"
	"gitlab.com/dirk.krummacker/contact-book/internal/service"
)

// API holds the handler dependencies.
type API struct {
	service *service.Service
	logger  *zap.SugaredLogger
}

// New creates the REST API layer on top of the given service.
func New(svc *service.Service, logger *zap.SugaredLogger) *API {
	return &API{service: svc, logger: logger}
}

// SetupHttpRouter initializes the REST API router and registers all
// endpoints. With logging disabled only the recovery middleware is
// installed, which keeps test output readable.
func (a *API) SetupHttpRouter(logging bool) *gin.Engine {
	var router *gin.Engine
	if logging {
		router = gin.Default()
	} else {
		router = gin.New()
		router.Use(gin.Recovery())
	}
	router.GET("/contacts", a.findAllContacts)
	router.POST("/contacts", a.createContact)
	router.GET("/contacts/:id", a.findContactByID)
	router.PUT("/contacts/:id", a.updateContactByID)
	router.DELETE("/contacts/:id", a.deleteContactByID)
	return router
}

// sendSuccess writes the success envelope. A nil data value leaves the data
// property out entirely, as for deletes.
func sendSuccess(c *gin.Context, status int, message string, data interface{}) {
	payload := gin.H{"message": message, "status": "success"}
	if data != nil {
		payload["data"] = data
	}
	c.IndentedJSON(status, payload)
}

// sendError writes the error envelope. Infrastructure failures are logged
// with their cause but reported to the caller with a generic message.
func (a *API) sendError(c *gin.Context, message string, err error) {
	status := apperrors.StatusCode(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		a.logger.Errorw("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		detail = "An unexpected error occurred"
	}
	c.AbortWithStatusJSON(status, gin.H{"message": message, "status": "error", "error": detail})
}

// parseID reads the id path parameter. A non-numeric value is a validation
// failure that never reaches the service.
func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidation("Contact ID must be a number")
	}
	return id, nil
}

// bindContactInput decodes the request body into a contact payload. A body
// of zero length counts as an empty payload, like an empty JSON object. A
// JSON value of the wrong type for a business field names the offending
// field, as does an unparseable lastContactDate.
func bindContactInput(c *gin.Context) (model.ContactInput, error) {
	var in model.ContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return in, nil
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return in, apperrors.NewValidation("Field %s must be a string", typeErr.Field)
		}
		var dateErr *time.ParseError
		if errors.As(err, &dateErr) {
			return in, apperrors.NewValidation("Field lastContactDate must be a valid RFC 3339 date")
		}
		return in, apperrors.NewValidation("Request body must be valid JSON")
	}
	return in, nil
}

// findAllContacts responds with the list of all contacts.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/contacts"
func (a *API) findAllContacts(c *gin.Context) {
	contacts, err := a.service.GetAllContacts()
	if err != nil {
		a.sendError(c, "Failed to retrieve contacts", err)
		return
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}
	sendSuccess(c, http.StatusOK, "Contacts retrieved successfully", contacts)
}

// findContactByID responds with the contact whose ID matches the id
// parameter of the request URL.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/contacts/56"
func (a *API) findContactByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		a.sendError(c, "Failed to retrieve contact", err)
		return
	}
	contact, err := a.service.GetContactById(id)
	if err != nil {
		a.sendError(c, "Failed to retrieve contact", err)
		return
	}
	sendSuccess(c, http.StatusOK, "Contact retrieved successfully", contact)
}

// createContact inserts the contact specified in the request's JSON. It
// responds with the full contact data including the newly assigned id.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts --request "POST" --include --header "Content-Type: application/json" --data '{"firstName": "Hans", "lastName": "Wurst", "workplace": "Acme", "email": "hans@example.com", "knownFrom": "Conference", "comments": "", "lastContactDate": "2024-03-02T00:00:00Z"}'
func (a *API) createContact(c *gin.Context) {
	in, err := bindContactInput(c)
	if err != nil {
		a.sendError(c, "Failed to create contact", err)
		return
	}
	contact, err := a.service.CreateContact(in)
	if err != nil {
		a.sendError(c, "Failed to create contact", err)
		return
	}
	sendSuccess(c, http.StatusCreated, "Contact created successfully", contact)
}

// updateContactByID merges the values specified in the JSON (and only
// those) into the contact whose ID matches the id parameter of the request
// URL, and responds with the new version of the contact.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/56 --request "PUT" --include --header "Content-Type: application/json" --data '{"workplace": "Globex"}'
func (a *API) updateContactByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		a.sendError(c, "Failed to update contact", err)
		return
	}
	in, err := bindContactInput(c)
	if err != nil {
		a.sendError(c, "Failed to update contact", err)
		return
	}
	contact, err := a.service.UpdateContact(id, in)
	if err != nil {
		a.sendError(c, "Failed to update contact", err)
		return
	}
	sendSuccess(c, http.StatusOK, "Contact updated successfully", contact)
}

// deleteContactByID removes the contact whose ID matches the id parameter
// of the request URL. The success envelope carries a message only.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/56 --request "DELETE"
func (a *API) deleteContactByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		a.sendError(c, "Failed to delete contact", err)
		return
	}
	if err := a.service.DeleteContact(id); err != nil {
		a.sendError(c, "Failed to delete contact", err)
		return
	}
	sendSuccess(c, http.StatusOK, "Contact deleted successfully", nil)
}
