package gui

import (
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Bluebull7/pulsevector-sim/internal/archetype"
	"github.com/Bluebull7/pulsevector-sim/internal/buildinfo"
	"github.com/Bluebull7/pulsevector-sim/internal/model"
	"github.com/Bluebull7/pulsevector-sim/internal/profile"
)

type server struct {
	outPath     string
	defaultName string
	logger      *slog.Logger
	stdout      io.Writer

	// rng and result share mu; math/rand.Rand is not safe for
	// concurrent handlers.
	mu     sync.Mutex
	rng    *rand.Rand
	result *model.Profile

	done      chan struct{}
	closeOnce sync.Once
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleForm)
	r.Post("/create", s.handleCreate)
	return r
}

// finish records the submitted profile and releases the lifecycle
// goroutine. Later submissions keep the first result.
func (s *server) finish(p model.Profile) {
	s.mu.Lock()
	if s.result == nil {
		s.result = &p
	}
	s.mu.Unlock()
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *server) submitted() (model.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return model.Profile{}, false
	}
	return *s.result, true
}

// selection carries the posted choices back into a re-rendered form.
type selection struct {
	Name       string
	Archetype  string
	Scenario   string
	Difficulty string
}

// formView feeds templates/form.html.
type formView struct {
	selection

	Archetypes   []archetype.Archetype
	Scenarios    []archetype.Scenario
	Difficulties []archetype.Difficulty
	StatNames    []string
	Catalog      catalog

	Pool    int
	Ceiling int
	Message string
	Version string
}

// savedView feeds templates/saved.html.
type savedView struct {
	Name       string
	Archetype  string
	Scenario   string
	Difficulty string
	Credit     int
	Stress     int
	Path       string
	Version    string
}

type catalogEntry struct {
	Name       string         `json:"name"`
	Tagline    string         `json:"tagline"`
	Strengths  []string       `json:"strengths"`
	Weaknesses []string       `json:"weaknesses"`
	Bias       string         `json:"bias"`
	Stats      map[string]int `json:"stats"`
}

type catalog map[string]catalogEntry

// archetypeCatalog feeds the form's script block. html/template
// JSON-encodes it when interpolated in a JS context.
var archetypeCatalog = buildCatalog()

func buildCatalog() catalog {
	c := make(catalog, len(archetype.Archetypes))
	for _, a := range archetype.Archetypes {
		c[a.Key] = catalogEntry{
			Name:       a.Name,
			Tagline:    a.Tagline,
			Strengths:  a.Strengths,
			Weaknesses: a.Weaknesses,
			Bias:       a.Bias,
			Stats:      a.BaseStats,
		}
	}
	return c
}

func (s *server) handleForm(w http.ResponseWriter, _ *http.Request) {
	s.renderForm(w, http.StatusOK, selection{
		Name:       s.defaultName,
		Archetype:  archetype.Archetypes[0].Key,
		Scenario:   archetype.Scenarios[0].Key,
		Difficulty: archetype.Difficulties[0].Key,
	}, "")
}

func (s *server) renderForm(w http.ResponseWriter, status int, sel selection, message string) {
	view := formView{
		selection:    sel,
		Archetypes:   archetype.Archetypes,
		Scenarios:    archetype.Scenarios,
		Difficulties: archetype.Difficulties,
		StatNames:    archetype.StatNames,
		Catalog:      archetypeCatalog,
		Pool:         profile.DefaultPool,
		Ceiling:      profile.StatCeiling,
		Message:      message,
		Version:      buildinfo.Version,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, "form.html", view); err != nil {
		s.logger.Error("rendering form", "error", err)
	}
}

func (s *server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	sel := selection{
		Name:       strings.TrimSpace(r.PostFormValue("name")),
		Archetype:  r.PostFormValue("archetype"),
		Scenario:   r.PostFormValue("scenario"),
		Difficulty: r.PostFormValue("difficulty"),
	}
	if sel.Name == "" {
		sel.Name = s.defaultName
	}

	arch, err := archetype.Find(sel.Archetype)
	if err != nil {
		s.renderForm(w, http.StatusBadRequest, sel, "Unknown archetype.")
		return
	}

	// Re-run the allocation server-side so a tampered form cannot
	// bypass the pool or the ceiling.
	b := profile.NewBuilder(arch)
	for _, stat := range archetype.StatNames {
		want, err := strconv.Atoi(r.PostFormValue("stat:" + stat))
		if err != nil {
			s.renderForm(w, http.StatusBadRequest, sel, "Stat values must be whole numbers.")
			return
		}
		if want < b.Stat(stat) {
			s.renderForm(w, http.StatusBadRequest, sel, "Stats cannot drop below the archetype baseline.")
			return
		}
		for b.Stat(stat) < want {
			if err := b.Allocate(stat); err != nil {
				s.renderForm(w, http.StatusBadRequest, sel, allocationMessage(err))
				return
			}
		}
	}

	s.mu.Lock()
	prof, err := profile.New(profile.Params{
		Name:       sel.Name,
		Archetype:  sel.Archetype,
		Scenario:   sel.Scenario,
		Difficulty: sel.Difficulty,
		Stats:      b.Stats(),
	}, s.rng)
	s.mu.Unlock()
	if err != nil {
		s.renderForm(w, http.StatusBadRequest, sel, "Invalid selection. Try again.")
		return
	}

	if err := profile.Write(s.outPath, prof); err != nil {
		s.logger.Error("writing profile", "path", s.outPath, "error", err)
		http.Error(w, "failed to write profile", http.StatusInternalServerError)
		return
	}
	s.logger.Debug("profile saved", "path", s.outPath, "archetype", prof.Player.Archetype)

	view := savedView{
		Name:       prof.Player.Name,
		Archetype:  prof.Player.Archetype,
		Scenario:   prof.Player.Scenario,
		Difficulty: prof.Player.Difficulty,
		Credit:     prof.Start.CreditScore,
		Stress:     prof.Start.DebtStress,
		Path:       s.outPath,
		Version:    buildinfo.Version,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "saved.html", view); err != nil {
		s.logger.Error("rendering confirmation", "error", err)
	}
	s.finish(prof)
}

func allocationMessage(err error) string {
	switch {
	case errors.Is(err, profile.ErrPoolExhausted):
		return "Allocation exceeds the 3-point pool."
	case errors.Is(err, profile.ErrStatMaxed):
		return "That stat is already maxed (7)."
	default:
		return "Invalid stat allocation."
	}
}
