package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /client-config", handler.ClientConfig)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.CurrentMatches)
}

func registerStaticRoutes(mux *http.ServeMux, staticDir string) {
	if staticDir == "" {
		return
	}

	mux.Handle("GET /", http.FileServer(http.Dir(staticDir)))
}
