package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/coursedeck-app/coursedeck/pkg/assignments"
	"github.com/coursedeck-app/coursedeck/pkg/assignments/lms"
	"github.com/coursedeck-app/coursedeck/pkg/communication"
	"github.com/coursedeck-app/coursedeck/pkg/environment"
	"github.com/coursedeck-app/coursedeck/pkg/logger"
	"github.com/gorilla/mux"
)

func main() {
	var logging logger.Interface = logger.Logger{}
	fmt.Println("Assignment tracker core is starting up...")

	environment.Initialize()

	responseManager := communication.ResponseManager{Logger: logging}

	var store assignments.StoreInterface = &assignments.FileStore{Dir: environment.Global.DataDir, Logger: logging}
	credentialsStore := &lms.CredentialsStore{Dir: environment.Global.DataDir, Logger: logging}

	var client lms.ClientInterface = &lms.Client{Logger: logging}
	credentials := credentialsStore.Load()
	if credentials != nil && credentials.BrightspaceURL != "" && credentials.AccessToken != "" {
		client.Initialize(credentials.BrightspaceURL, credentials.AccessToken)
	}

	controller := &assignments.Controller{Store: store, Logger: logging}
	controller.Load()

	courseCache, err := lms.NewCourseCache()
	if err != nil {
		logging.Fatal(err)
	}

	syncer := &lms.Syncer{Client: client, Logger: logging}

	assignmentHandler := assignments.Handler{Controller: controller, Logger: logging, ResponseManager: &responseManager}
	lmsHandler := lms.Handler{
		Client:          client,
		Syncer:          syncer,
		Credentials:     credentialsStore,
		Store:           store,
		Controller:      controller,
		CourseCache:     courseCache,
		Logger:          logging,
		ResponseManager: &responseManager,
	}

	// The desktop shell's startup hook: one sync when auto sync is enabled
	if credentials != nil && credentials.AutoSync && client.IsInitialized() {
		go func() {
			synced, err := syncer.SyncAll(context.Background(), store)
			if err != nil {
				logging.Error("Startup sync aborted", err)
			}

			controller.Load()
			logging.Info(fmt.Sprintf("Startup sync added %d assignments", len(synced)))
		}()
	}

	r := mux.NewRouter()
	r.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)

		_, err := fmt.Fprint(writer, "Welcome to the assignment tracker core! ✔")
		if err != nil {
			log.Printf("Error: %v\n", err)
		}
	})

	r.HandleFunc("/assignments", assignmentHandler.GetAllAssignments).Methods(http.MethodGet)
	r.HandleFunc("/assignments/date/{date}", assignmentHandler.GetAssignmentsByDate).Methods(http.MethodGet)
	r.HandleFunc("/assignment", assignmentHandler.AssignmentAdd).Methods(http.MethodPost)
	r.HandleFunc("/assignment/edit/commit", assignmentHandler.EditCommit).Methods(http.MethodPost)
	r.HandleFunc("/assignment/edit", assignmentHandler.EditClear).Methods(http.MethodDelete)
	r.HandleFunc("/assignment/{id}", assignmentHandler.AssignmentUpdate).Methods(http.MethodPut)
	r.HandleFunc("/assignment/{id}", assignmentHandler.AssignmentDelete).Methods(http.MethodDelete)
	r.HandleFunc("/assignment/{id}/edit", assignmentHandler.EditBegin).Methods(http.MethodPost)

	r.HandleFunc("/lms/credentials", lmsHandler.CredentialsGet).Methods(http.MethodGet)
	r.HandleFunc("/lms/credentials", lmsHandler.CredentialsPut).Methods(http.MethodPut)
	r.HandleFunc("/lms/credentials", lmsHandler.CredentialsDelete).Methods(http.MethodDelete)
	r.HandleFunc("/lms/validate", lmsHandler.Validate).Methods(http.MethodGet)
	r.HandleFunc("/lms/courses", lmsHandler.CoursesGet).Methods(http.MethodGet)
	r.HandleFunc("/lms/sync", lmsHandler.Sync).Methods(http.MethodPost)

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Content-Type", "application/json")
			next.ServeHTTP(w, r)
		})
	})

	logging.Info(fmt.Sprintf("Listening on 127.0.0.1:%s", environment.Global.Port))
	log.Panic(http.ListenAndServe("127.0.0.1:"+environment.Global.Port, r))
}
