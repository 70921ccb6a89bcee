package lms

import (
	"encoding/json"
	"net/http"

	"github.com/coursedeck-app/coursedeck/pkg/assignments"
	"github.com/coursedeck-app/coursedeck/pkg/communication"
	"github.com/coursedeck-app/coursedeck/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Handler handles all LMS related API calls: credentials, connection checks,
// course browsing and the sync trigger
type Handler struct {
	Client          ClientInterface
	Syncer          *Syncer
	Credentials     *CredentialsStore
	Store           assignments.StoreInterface
	Controller      *assignments.Controller
	CourseCache     CourseCacheInterface
	Logger          logger.Interface
	ResponseManager *communication.ResponseManager
}

// CredentialsGet is the route for reading the stored connection settings
func (handler *Handler) CredentialsGet(writer http.ResponseWriter, request *http.Request) {
	credentials := handler.Credentials.Load()
	if credentials == nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "No credentials configured", nil)
		return
	}

	handler.ResponseManager.Respond(writer, credentials)
}

// CredentialsPut is the route for saving connection settings; it also
// re-initializes the live client
func (handler *Handler) CredentialsPut(writer http.ResponseWriter, request *http.Request) {
	credentials := Credentials{}

	err := json.NewDecoder(request.Body).Decode(&credentials)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}

	v := validator.New()
	err = v.Struct(credentials)
	if err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, e.Error(), e)
			return
		}
	}

	err = handler.Credentials.Save(&credentials)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Persisting credentials did not work", err)
		return
	}

	handler.Client.Initialize(credentials.BrightspaceURL, credentials.AccessToken)

	err = handler.CourseCache.Invalidate(handler.Client.BaseURL())
	if err != nil {
		handler.Logger.Warning("Could not invalidate course cache", err)
	}

	handler.ResponseManager.Respond(writer, &credentials)
}

// CredentialsDelete is the route for clearing the stored connection settings
func (handler *Handler) CredentialsDelete(writer http.ResponseWriter, request *http.Request) {
	err := handler.Credentials.Clear()
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Clearing credentials did not work", err)
		return
	}

	handler.Client.Reset()
	handler.ResponseManager.RespondWithNoContent(writer)
}

// Validate is the route for the connection check
func (handler *Handler) Validate(writer http.ResponseWriter, request *http.Request) {
	valid := handler.Client.ValidateConnection(request.Context())
	handler.ResponseManager.Respond(writer, map[string]bool{"valid": valid})
}

// CoursesGet is the route backing the settings panel's course list; listings
// are served from the cache when possible
func (handler *Handler) CoursesGet(writer http.ResponseWriter, request *http.Request) {
	key := handler.Client.BaseURL()

	cached, err := handler.CourseCache.Get(key)
	if err == nil {
		handler.ResponseManager.Respond(writer, cached)
		return
	}

	courses, err := handler.Client.Courses(request.Context())
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Could not fetch courses", err)
		return
	}

	err = handler.CourseCache.Add(key, courses)
	if err != nil {
		handler.Logger.Warning("Could not cache course listing", err)
	}

	handler.ResponseManager.Respond(writer, courses)
}

// syncResult is the response shape of the sync trigger
type syncResult struct {
	Synced    []assignments.Assignment `json:"synced"`
	Completed bool                     `json:"completed"`
	Error     string                   `json:"error,omitempty"`
}

// Sync is the route that runs the sync pipeline and reloads the collection.
// A partial failure still returns the assignments that made it in.
func (handler *Handler) Sync(writer http.ResponseWriter, request *http.Request) {
	synced, err := handler.Syncer.SyncAll(request.Context(), handler.Store)
	if errors.Is(err, communication.ErrLMSNotInitialized) {
		handler.ResponseManager.RespondWithError(writer, http.StatusPreconditionFailed,
			"LMS credentials are not configured", err)
		return
	}

	handler.Controller.Load()

	result := syncResult{Synced: synced, Completed: err == nil}
	if err != nil {
		handler.Logger.Error("Assignment sync aborted", err)
		result.Error = err.Error()
	}

	handler.ResponseManager.Respond(writer, result)
}
