// Package demoapp is the fixture web application the automation packages
// are exercised against: a handful of pages with deliberately awkward
// behavior (blocking overlays, late-arriving content, a live feed) plus a
// small JSON API with an endpoint that drops connections on purpose.
package demoapp

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/atheor/gowebtest/internal/logging"
)

// Demo credentials accepted by /login.
const (
	DemoUsername = "admin"
	DemoPassword = "hunter2"
)

const sessionCookie = "demo_session"

// Pet is a record in the in-memory /api/pets store.
type Pet struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// App is the demo application. It implements http.Handler.
type App struct {
	cfg      Config
	router   chi.Router
	upgrader websocket.Upgrader
	logger   logging.Logger

	mu       sync.Mutex
	sessions map[string]string // session token -> username
	pets     map[string]Pet
	flaky    map[string]int // flaky key -> connections dropped so far
}

// New creates the demo application with parsed templates and seeded data.
func New(cfg Config, logger logging.Logger) *App {
	if logger == nil {
		logger = logging.NewStdoutLogger("DemoApp")
	}

	a := &App{
		cfg:    cfg,
		router: chi.NewRouter(),
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sessions: map[string]string{},
		pets:     map[string]Pet{},
		flaky:    map[string]int{},
	}

	// Seed data so GET /api/pets has something to return.
	for _, p := range []Pet{
		{ID: uuid.New().String(), Name: "Rex", Status: "available"},
		{ID: uuid.New().String(), Name: "Whiskers", Status: "pending"},
	} {
		a.pets[p.ID] = p
	}

	a.routes()
	return a
}

func (a *App) routes() {
	r := a.router

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	})
	r.Get("/login", a.handleLoginPage)
	r.Post("/login", a.handleLoginSubmit)
	r.Get("/logout", a.handleLogout)
	r.Get("/products", a.handleProducts)
	r.Get("/overlay", a.handleOverlay)
	r.Get("/dynamic", a.handleDynamic)
	r.Get("/slow", a.handleSlow)
	r.Get("/ws", a.handleFeedWS)

	r.Get("/api/status", a.handleStatus)
	r.Get("/api/pets", a.handleListPets)
	r.Post("/api/pets", a.handleCreatePet)
	r.Get("/api/pets/{petID}", a.handleGetPet)
	r.Put("/api/pets/{petID}", a.handleUpdatePet)
	r.Delete("/api/pets/{petID}", a.handleDeletePet)
	r.Get("/api/flaky", a.handleFlaky)
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("http_request",
		logging.Field{Key: "method", Value: r.Method},
		logging.Field{Key: "path", Value: r.URL.Path})
	a.router.ServeHTTP(w, r)
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (a *App) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         a.cfg.ListenAddr,
		Handler:      a,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // the websocket feed streams
	}
}

// --- pages ---

func (a *App) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	a.renderLogin(w, http.StatusOK, "")
}

// renderLogin writes the Content-Type before the status line; headers are
// frozen once WriteHeader runs.
func (a *App) renderLogin(w http.ResponseWriter, status int, errMsg string) {
	tmpl := template.Must(template.New("login").Parse(loginPageHTML))
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(status)
	_ = tmpl.Execute(w, struct{ Error string }{Error: errMsg})
}

func (a *App) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	if username != DemoUsername || password != DemoPassword {
		a.logger.Info("login rejected", logging.Field{Key: "username", Value: username})
		a.renderLogin(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token := uuid.New().String()
	a.mu.Lock()
	a.sessions[token] = username
	a.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	a.logger.Info("login accepted", logging.Field{Key: "username", Value: username})
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		a.mu.Lock()
		delete(a.sessions, c.Value)
		a.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// currentUser resolves the session cookie to a username.
func (a *App) currentUser(r *http.Request) (string, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	username, ok := a.sessions[c.Value]
	return username, ok
}

func (a *App) handleProducts(w http.ResponseWriter, r *http.Request) {
	username, ok := a.currentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	tmpl := template.Must(template.New("products").Parse(productsPageHTML))
	w.Header().Set("Content-Type", "text/html")
	_ = tmpl.Execute(w, struct{ Username string }{Username: username})
}

func (a *App) handleOverlay(w http.ResponseWriter, r *http.Request) {
	tmpl := template.Must(template.New("overlay").Parse(overlayPageHTML))
	w.Header().Set("Content-Type", "text/html")
	_ = tmpl.Execute(w, struct{ DismissMillis int64 }{DismissMillis: a.cfg.OverlayDismiss.Milliseconds()})
}

func (a *App) handleDynamic(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write([]byte(dynamicPageHTML))
}

func (a *App) handleSlow(w http.ResponseWriter, r *http.Request) {
	tmpl := template.Must(template.New("slow").Parse(slowPageHTML))
	w.Header().Set("Content-Type", "text/html")
	_ = tmpl.Execute(w, struct{ RevealMillis int64 }{RevealMillis: a.cfg.SlowReveal.Milliseconds()})
}

// handleFeedWS pushes numbered feed messages until the client goes away.
func (a *App) handleFeedWS(w http.ResponseWriter, r *http.Request) {
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(a.cfg.FeedInterval)
	defer ticker.Stop()

	seq := 0
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			seq++
			msg := fmt.Sprintf("update %d", seq)
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				// Client disconnected.
				return
			}
		}
	}
}

// --- API ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (a *App) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "available"})
}

func (a *App) handleListPets(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	pets := make([]Pet, 0, len(a.pets))
	for _, p := range a.pets {
		pets = append(pets, p)
	}
	a.mu.Unlock()
	writeJSON(w, http.StatusOK, pets)
}

func (a *App) handleCreatePet(w http.ResponseWriter, r *http.Request) {
	var body Pet
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if body.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if body.Status == "" {
		body.Status = "available"
	}
	body.ID = uuid.New().String()

	a.mu.Lock()
	a.pets[body.ID] = body
	a.mu.Unlock()

	a.logger.Info("pet created", logging.Field{Key: "id", Value: body.ID})
	writeJSON(w, http.StatusCreated, body)
}

func (a *App) handleGetPet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "petID")
	a.mu.Lock()
	p, ok := a.pets[id]
	a.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "pet not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *App) handleUpdatePet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "petID")

	var body Pet
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	a.mu.Lock()
	p, ok := a.pets[id]
	if ok {
		if body.Name != "" {
			p.Name = body.Name
		}
		if body.Status != "" {
			p.Status = body.Status
		}
		a.pets[id] = p
	}
	a.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "pet not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *App) handleDeletePet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "petID")
	a.mu.Lock()
	_, ok := a.pets[id]
	delete(a.pets, id)
	a.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "pet not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleFlaky drops the first fail=n connections for a given key by
// hijacking and closing the socket, then answers normally. Clients see a
// transport error (connection reset), not an HTTP status.
func (a *App) handleFlaky(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		key = "default"
	}
	fail := 0
	if fs := r.URL.Query().Get("fail"); fs != "" {
		if v, err := strconv.Atoi(fs); err == nil && v > 0 {
			fail = v
		}
	}

	a.mu.Lock()
	dropped := a.flaky[key]
	shouldDrop := dropped < fail
	if shouldDrop {
		a.flaky[key] = dropped + 1
	}
	a.mu.Unlock()

	if shouldDrop {
		hj, ok := w.(http.Hijacker)
		if !ok {
			// Can't sever the connection on this ResponseWriter.
			writeError(w, http.StatusInternalServerError, "hijacking unsupported")
			return
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		a.logger.Info("dropping flaky connection",
			logging.Field{Key: "key", Value: key},
			logging.Field{Key: "dropped", Value: dropped + 1})
		_ = conn.Close()
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "dropped": dropped})
}
