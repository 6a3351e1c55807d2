package review

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"NewsPoster/internal/domain"
	"NewsPoster/internal/metrics"
	"NewsPoster/internal/ports"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options wires the gateway collaborators.
type Options struct {
	Store    ports.PostStore
	ImageDir string
	Auth     *Auth
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Server is the human review gateway over the post store.
type Server struct {
	store    ports.PostStore
	imageDir string
	auth     *Auth
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	renderer *Renderer
	pages    *template.Template
	logger   *slog.Logger
}

type draftView struct {
	Title    string
	Image    string
	Content  template.HTML
	Approved bool
	Stage    domain.Stage
}

type indexView struct {
	Drafts      []draftView
	AuthEnabled bool
}

type loginView struct {
	Error string
}

// New parses the embedded templates and builds the gateway.
func New(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, errors.New("review gateway needs a post store")
	}
	pages, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Discard()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		store:    opts.Store,
		imageDir: opts.ImageDir,
		auth:     opts.Auth,
		metrics:  opts.Metrics,
		gatherer: opts.Gatherer,
		renderer: NewRenderer(),
		pages:    pages,
		logger:   opts.Logger,
	}, nil
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	if s.auth != nil {
		r.HandleFunc("/login", s.handleLoginForm).Methods(http.MethodGet)
		r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
		r.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)
	}

	protected := r.NewRoute().Subrouter()
	if s.auth != nil {
		protected.Use(s.auth.Middleware)
	}

	protected.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	protected.HandleFunc("/approve", s.handleApprove).Methods(http.MethodPost)
	protected.HandleFunc("/images/{filename}", s.handleImage).Methods(http.MethodGet)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var drafts []draftView
	err := s.store.View(r.Context(), func(posts []domain.Post) error {
		for _, p := range posts {
			if !p.IsDraft() {
				continue
			}
			view := draftView{
				Title:    p.Title,
				Content:  s.renderer.Render(p.PostContent),
				Approved: p.Approved,
				Stage:    p.Stage(),
			}
			if img := p.Image(); img != "" {
				view.Image = filepath.Base(img)
			}
			drafts = append(drafts, view)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("load drafts", "error", err)
		http.Error(w, "failed to load posts", http.StatusInternalServerError)
		return
	}

	s.render(w, http.StatusOK, "index.html", indexView{Drafts: drafts, AuthEnabled: s.auth != nil})
}

// handleApprove applies the submitted approval set to every unposted record:
// selected titles with content become approved, everything else unapproved.
func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	selected := make(map[string]struct{}, len(r.PostForm["approved"]))
	for _, title := range r.PostForm["approved"] {
		selected[title] = struct{}{}
	}

	approved := 0
	err := s.store.Update(r.Context(), func(posts []domain.Post) ([]domain.Post, error) {
		changed := false
		for i := range posts {
			if posts[i].Posted {
				continue
			}
			_, ok := selected[posts[i].Title]
			want := ok && posts[i].PostContent != ""
			if want {
				approved++
			}
			if posts[i].Approved != want {
				posts[i].Approved = want
				changed = true
			}
		}
		if !changed {
			return nil, ports.ErrNoChange
		}
		return posts, nil
	})
	if err != nil {
		s.logger.Error("save approvals", "error", err)
		http.Error(w, "failed to save approvals", http.StatusInternalServerError)
		return
	}

	s.metrics.ReviewSubmits.Inc()
	s.logger.Info("approvals saved", "selected", len(selected), "approved", approved)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(mux.Vars(r)["filename"])
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || s.imageDir == "" {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.imageDir, name))
}

func (s *Server) handleLoginForm(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, "login.html", loginView{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	if !s.auth.Check(r.PostFormValue("username"), r.PostFormValue("password")) {
		s.logger.Warn("failed login", "remote", r.RemoteAddr)
		s.render(w, http.StatusUnauthorized, "login.html", loginView{Error: "Invalid username or password."})
		return
	}

	token, expires, err := s.auth.Issue()
	if err != nil {
		s.logger.Error("issue token", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	s.auth.setCookie(w, token, expires)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf strings.Builder
	if err := s.pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("render template", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}
