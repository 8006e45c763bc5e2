// Package web serves the task page. The page is rendered on the server from
// the controller's board, and every button is a plain form post.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"taskboard/internal/chrome"
	"taskboard/internal/controller"
	"taskboard/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Server is the task page web server.
// The page header is static: a server-rendered page has no scroll events, so
// chrome.HeaderVisibility is only driven by the terminal UI.
type Server struct {
	ctrl   *controller.Controller
	panel  *chrome.Panel
	flash  *flash
	logger *slog.Logger
	router *gin.Engine
}

// NewServer creates a server whose controller talks to svc.
func NewServer(svc service.Service, logger *slog.Logger, opts ...controller.Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		panel:  &chrome.Panel{},
		flash:  &flash{},
		logger: logger,
	}
	opts = append([]controller.Option{
		controller.WithLogger(logger),
		controller.WithAlerter(s.flash),
	}, opts...)
	s.ctrl = controller.New(svc, opts...)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"classes": func(c []string) string { return strings.Join(c, " ") },
	}).ParseFS(templateFS, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	router.StaticFS("/static", http.FS(static))

	// Page routes
	router.GET("/", s.handleIndex)
	router.POST("/tasks", s.handleSubmit)
	router.POST("/tasks/cancel", s.handleCancel)
	router.POST("/tasks/:key/remove", s.handleRemove)
	router.POST("/panel/show", s.handlePanel(true))
	router.POST("/panel/hide", s.handlePanel(false))
	router.POST("/reload", s.handleReload)

	// API routes
	api := router.Group("/api")
	{
		api.GET("/view", s.handleAPIView)
	}

	s.router = router
	return s
}

// Controller returns the controller behind the page.
func (s *Server) Controller() *controller.Controller { return s.ctrl }

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// flash keeps the last alert until the next page render shows it.
type flash struct {
	mu  sync.Mutex
	msg string
}

func (f *flash) Alert(msg string) {
	f.mu.Lock()
	f.msg = msg
	f.mu.Unlock()
}

func (f *flash) take() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg := f.msg
	f.msg = ""
	return msg
}
