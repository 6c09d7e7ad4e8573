package router

import (
	"net/http"
	"strings"

	"yollab-backend/internal/api"
	"yollab-backend/internal/api/endpoints"
)

func SignalingRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		paths := endpoints.SignalingPaths{
			RoomsPrefix: strings.TrimRight(prefix, "/") + "/rooms/",
			UsersPrefix: strings.TrimRight(prefix, "/") + "/users/",
		}
		sigEndpoints := endpoints.NewSignalingEndpoints(s.Store(), s.Handler(), paths)

		mux.HandleFunc(prefix+"/signal", s.MakeHTTPHandleFunc(sigEndpoints.Websocket))
		mux.HandleFunc(prefix+"/rooms", s.MakeHTTPHandleFunc(sigEndpoints.Rooms))
		mux.HandleFunc(prefix+"/rooms/", s.MakeHTTPHandleFunc(sigEndpoints.RoomUsers))
		mux.HandleFunc(prefix+"/users/", s.MakeHTTPHandleFunc(sigEndpoints.UserStatus))
	}
}
