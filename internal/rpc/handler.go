package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"mini-rss/internal/common"
)

// HandlerFunc atiende un metodo: recibe el payload JSON y devuelve la respuesta a serializar.
type HandlerFunc func(ctx context.Context, payload json.RawMessage) (any, error)

// Mux despacha POST /rpc/{method} al handler registrado.
type Mux struct {
	name     string
	handlers map[string]HandlerFunc
	mux      *http.ServeMux
}

func NewMux(name string) *Mux {
	m := &Mux{
		name:     name,
		handlers: make(map[string]HandlerFunc),
		mux:      http.NewServeMux(),
	}
	m.mux.HandleFunc("POST "+pathPrefix+"{method}", m.dispatch)
	return m
}

// Handle registra un metodo. No es seguro llamarlo mientras se sirven peticiones.
func (m *Mux) Handle(method string, h HandlerFunc) {
	m.handlers[method] = h
}

func (m *Mux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mux.ServeHTTP(w, r)
}

func (m *Mux) dispatch(w http.ResponseWriter, r *http.Request) {
	method := r.PathValue("method")
	h, ok := m.handlers[method]
	if !ok {
		http.Error(w, "metodo desconocido: "+method, http.StatusNotFound)
		return
	}

	var payload json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON invalido: "+err.Error(), http.StatusBadRequest)
		return
	}

	out, err := h(r.Context(), payload)
	if err != nil {
		log.Printf("[%s] %s (%s) fallo: %v", m.name, method, r.Header.Get(requestIDHeader), err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		log.Printf("[%s] error escribiendo respuesta de %s: %v", m.name, method, err)
	}
}

// Los errores de entrada son culpa del cliente.
func statusFor(err error) int {
	if errors.Is(err, common.ErrInvalidArgument) || errors.Is(err, common.ErrRange) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
