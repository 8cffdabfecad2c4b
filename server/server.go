package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/kasuboski/seriez/pkg/manager"
	"go.uber.org/zap"
)

const shutdownTimeout = time.Second * 3

type GenericResponse struct {
	Error    string `json:"error,omitempty"`
	Response any    `json:"response"`
}

// Server houses the dependencies of the catalog http api
type Server struct {
	baseLogger *zap.SugaredLogger
	manager    manager.SeriesManager
	validate   *validator.Validate
}

// New creates a new catalog server
func New(logger *zap.SugaredLogger, manager manager.SeriesManager) Server {
	return Server{
		baseLogger: logger,
		manager:    manager,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, err error) error {
	return writeResponse(w, status, GenericResponse{
		Error: err.Error(),
	})
}

func writeResponse(w http.ResponseWriter, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	_, err = w.Write(b)
	return err
}

// Router builds the routes of the api
func (s Server) Router() http.Handler {
	rtr := mux.NewRouter()
	rtr.Use(s.LogMiddleware())
	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)

	api := rtr.PathPrefix("/api").Subrouter()

	v1 := api.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/series", s.ListSeries()).Methods(http.MethodGet)
	v1.HandleFunc("/series", s.SearchSeries()).Methods(http.MethodPost)
	v1.HandleFunc("/series/{name}/seasons", s.ListSeasons()).Methods(http.MethodGet)
	v1.HandleFunc("/series/{name}/seasons/{season}/episodes", s.ListEpisodes()).Methods(http.MethodGet)
	v1.HandleFunc("/series/{name}/seasons/{season}/episodes/{episode}/streams", s.ListStreams()).Methods(http.MethodGet)

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
	)(rtr)
}

// Serve starts the http server and is a blocking call
func (s Server) Serve(port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Router(),
		ReadHeaderTimeout: time.Second * 10,
	}

	go func() {
		s.baseLogger.Info("serving...", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.baseLogger.Error(err.Error())
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(ctx)
}

// Healthz is an endpoint that can be used for probes
func (s Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := GenericResponse{
			Response: "ok",
		}
		writeResponse(w, http.StatusOK, response)
	}
}
