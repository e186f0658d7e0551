// Package server hosts the operator and customer surface over HTTP and
// WebSocket. All menu state lives in the stores; this layer translates
// requests into store operations, republishes the configuration after every
// edit and pushes fresh quotes to connected sessions.
package server

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pricecard/internal/bootstrap"
	"pricecard/internal/models"
	"pricecard/internal/monitoring"
	"pricecard/internal/persist"
	"pricecard/internal/store"
)

// Mode selects which surface a client sees by default
type Mode string

const (
	ModeOperator Mode = "operator"
	ModeCustomer Mode = "customer"
)

// sessionCookie carries the customer session id between requests
const sessionCookie = "pricecard_session"

// Server wires the stores, the sync controller and the serving surface
type Server struct {
	router    *gin.Engine
	config    *store.ConfigStore
	ctrl      *bootstrap.Controller
	clipboard persist.Clipboard
	copyFlag  *bootstrap.CopyFlag
	monitor   *monitoring.Monitor
	collector *monitoring.Collector
	hub       *Hub
	log       *logrus.Logger

	mode      Mode
	shareBase string

	sessionsMu sync.Mutex
	sessions   map[string]*store.SelectionStore
}

// Options configures a server instance
type Options struct {
	Controller *bootstrap.Controller
	Clipboard  persist.Clipboard
	Logger     *logrus.Logger
	// ShareBase is the URL prefix share links are built on, e.g.
	// "http://localhost:8080/". The token rides in the fragment.
	ShareBase string
}

// NewServer hydrates the configuration through the controller and builds
// the router. Arriving through a share token selects customer mode.
func NewServer(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	clipboard := opts.Clipboard
	if clipboard == nil {
		clipboard = persist.NewRecordingClipboard()
	}

	cfg, source := opts.Controller.Hydrate()
	mode := ModeOperator
	if source == bootstrap.SourceFragment {
		mode = ModeCustomer
	}
	log.WithFields(logrus.Fields{
		"source": source,
		"mode":   mode,
	}).Info("configuration hydrated")

	s := &Server{
		router:    gin.Default(),
		config:    store.NewConfigStore(cfg),
		ctrl:      opts.Controller,
		clipboard: clipboard,
		copyFlag:  bootstrap.NewCopyFlag(),
		monitor:   monitoring.NewMonitor(),
		collector: monitoring.NewCollector(),
		log:       log,
		mode:      mode,
		shareBase: opts.ShareBase,
		sessions:  make(map[string]*store.SelectionStore),
	}
	s.hub = NewHub(s)

	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	s.router.GET("/ws", s.handleWebSocket)

	api := s.router.Group("/api")
	{
		api.GET("/menu", s.handleGetMenu)
		api.GET("/stats", s.handleStats)

		// Operator: menu definition
		api.POST("/categories", s.handleAddCategory)
		api.PATCH("/categories/:catID", s.handleRenameCategory)
		api.DELETE("/categories/:catID", s.handleRemoveCategory)
		api.POST("/categories/:catID/items", s.handleAddItem)
		api.PATCH("/categories/:catID/items/:itemID", s.handleUpdateItem)
		api.DELETE("/categories/:catID/items/:itemID", s.handleRemoveItem)
		api.POST("/modifiers", s.handleAddModifier)
		api.PATCH("/modifiers/:modID", s.handleUpdateModifier)
		api.DELETE("/modifiers/:modID", s.handleRemoveModifier)

		// Customer: selection and derived views
		api.POST("/cart/items/:itemID", s.handleSetQuantity)
		api.POST("/cart/modifiers/:modID", s.handleToggleModifier)
		api.DELETE("/cart", s.handleClearCart)
		api.GET("/quote", s.handleQuote)
		api.GET("/receipt", s.handleReceipt)
		api.POST("/receipt/copy", s.handleCopyReceipt)

		// Sharing
		api.GET("/share", s.handleShare)
		api.POST("/share/copy", s.handleCopyShare)
		api.GET("/copied", s.handleCopied)
	}
}

// Router returns the gin router, mainly for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// MetricsHandler exposes the Prometheus scrape endpoint
func (s *Server) MetricsHandler() *monitoring.Collector {
	return s.collector
}

// session returns the selection store for the caller, creating one (and
// issuing a session cookie) on first contact.
func (s *Server) session(c *gin.Context) (string, *store.SelectionStore) {
	id, err := c.Cookie(sessionCookie)
	if err != nil || id == "" {
		id = uuid.NewString()
		c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	}
	return id, s.sessionByID(id)
}

func (s *Server) sessionByID(id string) *store.SelectionStore {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	sel, ok := s.sessions[id]
	if !ok {
		sel = store.NewSelectionStore()
		s.sessions[id] = sel
		s.collector.SetSessions(len(s.sessions))
	}
	return sel
}

// afterMutation publishes the new snapshot, records metrics and pushes
// fresh quotes to every connected session.
func (s *Server) afterMutation(op string, cfg *models.AppData) {
	s.ctrl.Publish(cfg)
	s.monitor.RecordMutation(op)
	s.collector.RecordMutation(op)
	s.hub.BroadcastQuotes()
}
