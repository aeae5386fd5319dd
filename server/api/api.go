// Package api wires the parse service's HTTP endpoints onto a chi router.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dekarrin/smtparse"
	"github.com/dekarrin/smtparse/server"
)

// PathPrefix is the prefix of all paths in the API. Routers should mount a
// sub-router that routes all requests to the API at this path.
const PathPrefix = "/api/v1"

// API holds the parameters needed to run the parse service's endpoints.
type API struct {
	Backend *server.Server
}

// Router builds the chi router for the API, mounted at PathPrefix by the
// caller.
func (a API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Post("/login", a.handleLogin)
	r.Post("/parse", a.handleParse)
	return r
}

type loginRequest struct {
	Name   string `json:"name"`
	Secret string `json:"secret"`
}

type loginResponse struct {
	RequestID string `json:"request_id"`
	Token     string `json:"token,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (a API) handleLogin(w http.ResponseWriter, r *http.Request) {
	defer panicTo500(w, r)

	reqID := uuid.New().String()

	var body loginRequest
	if err := parseJSONBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, loginResponse{RequestID: reqID, Error: err.Error()})
		return
	}

	tok, err := a.Backend.Login(r.Context(), body.Name, body.Secret)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, loginResponse{RequestID: reqID, Error: "bad credentials"})
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{RequestID: reqID, Token: tok})
}

type parseRequest struct {
	Name   string `json:"name"`
	Script string `json:"script"`
}

type parseErrorBody struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

type parseResponse struct {
	RequestID string          `json:"request_id"`
	Result    any             `json:"result,omitempty"`
	Error     *parseErrorBody `json:"error,omitempty"`
}

func (a API) handleParse(w http.ResponseWriter, r *http.Request) {
	defer panicTo500(w, r)

	reqID := uuid.New().String()

	if _, err := a.authenticate(r); err != nil {
		writeJSON(w, http.StatusUnauthorized, parseResponse{RequestID: reqID, Error: &parseErrorBody{Message: "unauthorized"}})
		return
	}

	var body parseRequest
	if err := parseJSONBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, parseResponse{RequestID: reqID, Error: &parseErrorBody{Message: err.Error()}})
		return
	}

	ctx := r.Context()
	if a.Backend.Cache != nil {
		if elements, ok, err := a.Backend.Cache.Get(ctx, body.Script); err == nil && ok {
			writeJSON(w, http.StatusOK, parseResponse{RequestID: reqID, Result: smtparse.NewParseResult(elements...).Elements()})
			return
		}
	}

	p := smtparse.NewParser()
	result, err := p.Parse(body.Name, body.Script)
	if err != nil {
		if synErr, ok := err.(smtparse.SyntaxError); ok {
			writeJSON(w, http.StatusUnprocessableEntity, parseResponse{
				RequestID: reqID,
				Error:     &parseErrorBody{Line: synErr.Line, Col: synErr.Col, Message: synErr.Message},
			})
			return
		}
		log.Printf("ERROR %s %s: internal parse failure: %v", r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, parseResponse{RequestID: reqID, Error: &parseErrorBody{Message: "internal error"}})
		return
	}

	if a.Backend.Cache != nil {
		_ = a.Backend.Cache.Put(ctx, body.Script, result.Elements())
	}

	writeJSON(w, http.StatusOK, parseResponse{RequestID: reqID, Result: result.Elements()})
}

func (a API) authenticate(r *http.Request) (context.Context, error) {
	authz := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return nil, fmt.Errorf("missing bearer token")
	}
	tok := strings.TrimPrefix(authz, prefix)

	acct, err := a.Backend.VerifyToken(r.Context(), tok)
	if err != nil {
		return nil, err
	}
	return context.WithValue(r.Context(), accountContextKey{}, acct), nil
}

type accountContextKey struct{}

func parseJSONBody(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("malformed JSON body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR encoding JSON response: %v", err)
	}
}

func panicTo500(w http.ResponseWriter, r *http.Request) {
	if rec := recover(); rec != nil {
		log.Printf("ERROR %s %s: panic: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
		writeJSON(w, http.StatusInternalServerError, parseResponse{Error: &parseErrorBody{Message: "internal error"}})
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		remoteIP := strings.SplitN(r.RemoteAddr, ":", 2)[0]
		log.Printf("INFO  %s %s %s", remoteIP, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
