/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vrtoybox/go-nolo/pkg/config"
	"github.com/vrtoybox/go-nolo/pkg/log"
)

type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
	tracking *TrackingServer
}

func NewApiServer(ctx context.Context, cfg *config.Config, tracking *TrackingServer) (*ApiServer, error) {
	log.Info("Initializing API server with address: %s port: %d", cfg.ApiConfig.Address, cfg.ApiConfig.Port)

	s := &ApiServer{
		Context:  ctx,
		Config:   cfg,
		tracking: tracking,
	}
	s.configureRouter()
	return s, nil
}

func (s *ApiServer) Run() error {
	log.Debug("Starting API server: address: %s port: %d", s.Config.ApiConfig.Address, s.Config.ApiConfig.Port)
	httpServer := &http.Server{
		Handler: handlers.CombinedLoggingHandler(os.Stderr, s.Router),
		Addr:    fmt.Sprintf("%s:%d", s.Config.ApiConfig.Address, s.Config.ApiConfig.Port),
	}
	return httpServer.ListenAndServe()
}

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix("/api").Subrouter()
	subRouter.HandleFunc("/devices", s.handleDevices()).Methods("GET")
	subRouter.HandleFunc("/device/{role}", s.handleDevice()).Methods("GET")
	subRouter.HandleFunc("/device/{role}/pose", s.handlePose()).Methods("GET")
	subRouter.HandleFunc("/device/{role}/inputs", s.handleInputs()).Methods("GET")
	subRouter.HandleFunc("/recenter", s.handleRecenter()).Methods("POST")
}

func writeJSON(w http.ResponseWriter, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.Error("Error while encoding response: %s", err)
	}
}

func (s *ApiServer) handleDevices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.tracking.system.Snapshots())
	}
}

func (s *ApiServer) handleDevice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		snap, err := s.tracking.system.Snapshot(vars["role"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJSON(w, snap)
	}
}

func (s *ApiServer) handlePose() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		snap, err := s.tracking.system.Snapshot(vars["role"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJSON(w, snap.Pose)
	}
}

func (s *ApiServer) handleInputs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		snap, err := s.tracking.system.Snapshot(vars["role"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJSON(w, snap.Inputs)
	}
}

func (s *ApiServer) handleRecenter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Handling recenter request")
		s.tracking.Recenter()
		w.WriteHeader(http.StatusOK)
	}
}
