package inspect

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ARTM2000/ivy"
)

// Registration is the JSON form of [ivy.Registration].
type Registration struct {
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Lifetime   string            `json:"lifetime"`
	Inject     []string          `json:"inject"`
	Properties map[string]string `json:"properties"`
	Cached     bool              `json:"cached"`
}

type envelope map[string]any

type handler struct {
	registry *ivy.Registry
}

// NewHandler returns a chi router serving the introspection endpoints for r.
func NewHandler(r *ivy.Registry) http.Handler {
	h := &handler{registry: r}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Recoverer)

	mux.Get("/registrations", h.list)
	mux.Get("/registrations/{name}", h.show)
	mux.Get("/validate", h.validate)
	return mux
}

func (h *handler) list(w http.ResponseWriter, _ *http.Request) {
	regs := h.registry.Registrations()
	out := make([]Registration, 0, len(regs))
	for _, reg := range regs {
		out = append(out, fromRegistration(reg))
	}
	writeJSON(w, http.StatusOK, envelope{"data": out})
}

func (h *handler) show(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "name")
	for _, reg := range h.registry.Registrations() {
		if reg.Name == name {
			writeJSON(w, http.StatusOK, envelope{"data": fromRegistration(reg)})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, envelope{"message": "no registration named " + name})
}

func (h *handler) validate(w http.ResponseWriter, _ *http.Request) {
	if err := h.registry.Validate(); err != nil {
		writeJSON(w, http.StatusConflict, envelope{"message": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, envelope{"data": map[string]bool{"valid": true}})
}

func fromRegistration(reg ivy.Registration) Registration {
	out := Registration{
		Name:       reg.Name,
		Lifetime:   reg.Lifetime.String(),
		Inject:     reg.Inject,
		Properties: reg.Properties,
		Cached:     reg.Cached,
	}
	if reg.Type != nil {
		out.Type = reg.Type.String()
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
