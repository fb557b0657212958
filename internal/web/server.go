package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/rohitvarshney-web/schengen-slots/internal/model"
	"github.com/rohitvarshney-web/schengen-slots/internal/slots"
	"github.com/rohitvarshney-web/schengen-slots/internal/ui"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Provider is what the web dashboard reads from. *slots.Provider
// implements it.
type Provider interface {
	Countries(ctx context.Context) (slots.CountriesResult, error)
	Summary(ctx context.Context, code string) (slots.SummaryResult, error)
}

type Server struct {
	provider Provider
	now      func() time.Time
}

// New builds the server. now may be nil.
func New(p Provider, now func() time.Time) *Server {
	if now == nil {
		now = time.Now
	}
	return &Server{provider: p, now: now}
}

// Router returns the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logging(), gin.Recovery())
	r.SetHTMLTemplate(template.Must(template.New("").Funcs(template.FuncMap{
		"date":  ui.FormatDate,
		"slots": ui.SlotsLabel,
		"key":   model.DateKey,
	}).ParseFS(templatesFS, "templates/*.html")))

	r.GET("/", s.listPage)
	r.GET("/countries/:code", s.detailPage)
	r.POST("/countries/:code/book", s.bookForm)

	api := r.Group("/api")
	api.GET("/countries", s.listCountries)
	api.GET("/countries/:code/slots", s.getSlots)
	api.POST("/bookings", s.createBooking)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("starting web dashboard on http://%s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down web dashboard...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("web dashboard stopped")
	return nil
}
