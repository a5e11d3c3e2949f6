package httpapi

import "net/http"

// NewMux wires every route; main() wraps the result in the middleware
// chain.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Search
	sh := SearchHandler{
		Status:    d.SearchStatus,
		RunSearch: d.RunSearch,
		RawSearch: d.RawSearch,
	}
	mux.HandleFunc("/search", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  sh.Search,
		http.MethodPost: sh.Search,
	}))
	mux.HandleFunc("/search/raw", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Raw,
	}))
	mux.HandleFunc("/search/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.StatusGet,
	}))

	// Stored jobs
	jh := JobsHandler{DB: d.DB, Hub: d.Hub, DeleteJob: d.DeleteJob}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))
	mux.HandleFunc("/jobs/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: jh.DeleteByPath, // expects /jobs/{id}
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// Secrets
	var xh SecretsHandler
	mux.HandleFunc("/api/secrets/serpapi", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: xh.SetSerpAPIKey,
	}))
	mux.HandleFunc("/api/secrets/rapidapi", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: xh.SetRapidAPIKey,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	var hh HealthHandler
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
