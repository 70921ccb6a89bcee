package assignments

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/coursedeck-app/coursedeck/pkg/communication"
	"github.com/coursedeck-app/coursedeck/pkg/date"
	"github.com/coursedeck-app/coursedeck/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// Handler handles all assignment related API calls
type Handler struct {
	Controller      *Controller
	Logger          logger.Interface
	ResponseManager *communication.ResponseManager
}

// assignmentView is the render shape of an assignment; the submission link
// gets its https scheme here, never in storage
type assignmentView struct {
	Assignment
	DueDateTime    string `json:"dueDateTime"`
	SubmissionLink string `json:"submissionLink"`
}

func newAssignmentView(assignment Assignment) assignmentView {
	return assignmentView{
		Assignment:     assignment,
		DueDateTime:    assignment.DueDateTime().Format("2006-01-02T15:04:05"),
		SubmissionLink: assignment.DisplaySubmissionURL(),
	}
}

func newAssignmentViews(assignments []Assignment) []assignmentView {
	views := make([]assignmentView, 0, len(assignments))
	for _, assignment := range assignments {
		views = append(views, newAssignmentView(assignment))
	}
	return views
}

// GetAllAssignments is the route for reading the collection, optionally
// filtered by a search text
func (handler *Handler) GetAllAssignments(writer http.ResponseWriter, request *http.Request) {
	search := request.URL.Query().Get("search")

	var result []Assignment
	if search != "" {
		result = handler.Controller.Search(search)
	} else {
		result = handler.Controller.Assignments()
	}

	handler.ResponseManager.Respond(writer, newAssignmentViews(result))
}

// GetAssignmentsByDate is the route backing a single calendar day cell
func (handler *Handler) GetAssignmentsByDate(writer http.ResponseWriter, request *http.Request) {
	raw := mux.Vars(request)["date"]

	var day date.Day
	err := day.UnmarshalJSON([]byte(`"` + raw + `"`))
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Date malformed", err)
		return
	}

	handler.ResponseManager.Respond(writer, newAssignmentViews(handler.Controller.ByDate(day)))
}

// AssignmentAdd is the route for adding an assignment
func (handler *Handler) AssignmentAdd(writer http.ResponseWriter, request *http.Request) {
	assignment := NewDraft()

	err := json.NewDecoder(request.Body).Decode(&assignment)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}

	v := validator.New()
	err = v.Struct(assignment)
	if err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, e.Error(), e)
			return
		}
	}

	added, err := handler.Controller.Add(assignment)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Assignment could not be added", err)
		return
	}

	handler.ResponseManager.RespondWithStatus(writer, newAssignmentView(added), http.StatusCreated)
}

// AssignmentUpdate is the route for fully overwriting an assignment
func (handler *Handler) AssignmentUpdate(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.Atoi(mux.Vars(request)["id"])
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "ID malformed", err)
		return
	}

	assignment := Assignment{}
	err = json.NewDecoder(request.Body).Decode(&assignment)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}
	assignment.ID = id

	v := validator.New()
	err = v.Struct(assignment)
	if err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, e.Error(), e)
			return
		}
	}

	err = handler.Controller.Update(assignment)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "Couldn't find assignment", err)
			return
		}

		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Assignment could not be updated", err)
		return
	}

	handler.ResponseManager.Respond(writer, newAssignmentView(assignment))
}

// AssignmentDelete is the route for deleting an assignment
func (handler *Handler) AssignmentDelete(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.Atoi(mux.Vars(request)["id"])
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "ID malformed", err)
		return
	}

	handler.Controller.Delete(id)
	handler.ResponseManager.RespondWithNoContent(writer)
}

// EditBegin is the route that clones an assignment into the edit scratch
// record
func (handler *Handler) EditBegin(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.Atoi(mux.Vars(request)["id"])
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "ID malformed", err)
		return
	}

	current, err := handler.Controller.BeginEdit(id)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "Couldn't find assignment", err)
		return
	}

	handler.ResponseManager.Respond(writer, newAssignmentView(current))
}

// EditCommit is the route that persists the edit scratch record. In-progress
// edits only reach the store here.
func (handler *Handler) EditCommit(writer http.ResponseWriter, request *http.Request) {
	current := handler.Controller.Current()

	err := json.NewDecoder(request.Body).Decode(&current)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}

	handler.Controller.SetCurrent(current)

	committed, err := handler.Controller.CommitEdit()
	if err != nil {
		if errors.Is(err, ErrNoEditInProgress) {
			handler.ResponseManager.RespondWithError(writer, http.StatusConflict, "No edit in progress", err)
			return
		}

		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Edit could not be committed", err)
		return
	}

	handler.ResponseManager.Respond(writer, newAssignmentView(committed))
}

// EditClear is the route that discards the running edit session
func (handler *Handler) EditClear(writer http.ResponseWriter, request *http.Request) {
	handler.Controller.ClearEdit()
	handler.ResponseManager.RespondWithNoContent(writer)
}
