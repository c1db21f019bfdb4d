// Package gui serves the profile wizard as a local browser form, the
// graphical counterpart to the terminal flow in internal/wizard. The
// command binds a loopback port, opens the page, and shuts the server
// down once a profile has been saved.
package gui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Bluebull7/pulsevector-sim/internal/model"
	"github.com/Bluebull7/pulsevector-sim/internal/profile"
)

// ErrUnavailable marks environments where the form server cannot bind
// its loopback listener. Callers treat it as "no GUI here", not as a
// hard failure.
var ErrUnavailable = errors.New("gui unavailable")

const shutdownTimeout = 5 * time.Second

// Options configure a wizard form session.
type Options struct {
	// OutPath is where the submitted profile is written. Empty means
	// profile.DefaultFilename.
	OutPath string
	// DefaultName pre-fills the operator field.
	DefaultName string
	// Rand drives the credit/stress jitter. Nil gets a fresh seeded
	// generator.
	Rand *rand.Rand
	// Logger records lifecycle events. Nil means slog.Default().
	Logger *slog.Logger
	// Stdout receives the page URL line. Nil means os.Stdout.
	Stdout io.Writer
	// NoBrowser suppresses the best-effort browser launch.
	NoBrowser bool
}

// Run binds a loopback listener, serves the form until a profile is
// submitted or ctx is cancelled, and returns the submitted profile.
// ok reports whether one was saved before shutdown.
func Run(ctx context.Context, opts Options) (prof model.Profile, ok bool, err error) {
	s := newServer(opts)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return model.Profile{}, false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	url := "http://" + ln.Addr().String()
	fmt.Fprintf(s.stdout, "Profile creator running at %s\n", url)
	s.logger.Debug("wizard form listening", "url", url, "out", s.outPath)

	httpServer := &http.Server{Handler: s.routes()}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving wizard form: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-s.done:
			s.logger.Debug("profile submitted, shutting down")
		case <-gCtx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if !opts.NoBrowser {
		openBrowser(url, s.logger)
	}

	if err := g.Wait(); err != nil {
		return model.Profile{}, false, err
	}
	prof, ok = s.submitted()
	return prof, ok, nil
}

func newServer(opts Options) *server {
	outPath := opts.OutPath
	if outPath == "" {
		outPath = profile.DefaultFilename
	}
	defaultName := opts.DefaultName
	if defaultName == "" {
		defaultName = profile.DefaultName
	}
	rng := opts.Rand
	if rng == nil {
		rng = profile.NewRand()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	return &server{
		outPath:     outPath,
		defaultName: defaultName,
		rng:         rng,
		logger:      logger,
		stdout:      stdout,
		done:        make(chan struct{}),
	}
}
