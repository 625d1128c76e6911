package httpserver

import (
	"net/http"

	"chargelog/internal/http/handlers"
	"chargelog/internal/http/middleware"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	AuthHandlers     *handlers.AuthHandlers
	ChargesHandlers  *handlers.ChargesHandlers
	SettingsHandlers *handlers.SettingsHandlers
	StatsHandlers    *handlers.StatsHandlers
	WSHandler        http.HandlerFunc
	HealthHandler    http.HandlerFunc
}

// NewRouter wires HTTP routes with middleware.
func NewRouter(deps RouterDeps, authMiddleware func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/health", method(http.MethodGet, deps.HealthHandler))

	mux.Handle("/api/auth/signup", method(http.MethodPost, http.HandlerFunc(deps.AuthHandlers.Signup)))
	mux.Handle("/api/auth/login", method(http.MethodPost, http.HandlerFunc(deps.AuthHandlers.Login)))

	authenticated := func(handler http.HandlerFunc) http.Handler {
		return middleware.Chain(handler, authMiddleware)
	}

	mux.Handle("/api/auth/logout", method(http.MethodPost, authenticated(deps.AuthHandlers.Logout)))

	mux.Handle("/api/charges", methods(map[string]http.Handler{
		http.MethodGet:  authenticated(deps.ChargesHandlers.List),
		http.MethodPost: authenticated(deps.ChargesHandlers.Create),
	}))
	mux.Handle("/api/charges/{id}", method(http.MethodDelete, authenticated(deps.ChargesHandlers.Delete)))
	mux.Handle("/api/charges/import", method(http.MethodPost, authenticated(deps.ChargesHandlers.Import)))
	mux.Handle("/api/charges/export", method(http.MethodGet, authenticated(deps.ChargesHandlers.Export)))

	mux.Handle("/api/settings", methods(map[string]http.Handler{
		http.MethodGet: authenticated(deps.SettingsHandlers.Get),
		http.MethodPut: authenticated(deps.SettingsHandlers.Update),
	}))
	mux.Handle("/api/vehicles", method(http.MethodGet, http.HandlerFunc(deps.SettingsHandlers.Vehicles)))

	mux.Handle("/api/stats", method(http.MethodGet, authenticated(deps.StatsHandlers.Stats)))
	mux.Handle("/api/dashboard", method(http.MethodGet, authenticated(deps.StatsHandlers.Dashboard)))

	// Token is validated inside the handler; the upgrade carries it as a
	// query parameter.
	mux.Handle("/api/ws", method(http.MethodGet, deps.WSHandler))

	return mux
}

func method(expected string, handler http.Handler) http.Handler {
	return methods(map[string]http.Handler{expected: handler})
}

func methods(byMethod map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := byMethod[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		allow := ""
		for m := range byMethod {
			if allow != "" {
				allow += ", "
			}
			allow += m
		}
		w.Header().Set("Allow", allow)
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}
