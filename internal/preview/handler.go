package preview

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ai-stack/stackbuilder/internal/catalog"
	"github.com/ai-stack/stackbuilder/internal/compat"
	"github.com/ai-stack/stackbuilder/internal/server/middleware"
	"github.com/ai-stack/stackbuilder/internal/server/ratelimit"
	"github.com/ai-stack/stackbuilder/internal/server/response"
	"github.com/ai-stack/stackbuilder/internal/stack"
	"github.com/ai-stack/stackbuilder/internal/state"
	"github.com/ai-stack/stackbuilder/internal/storage"
)

// maxBodyBytes bounds request bodies; a stack is well under 1 KB.
const maxBodyBytes = 1 << 20

// Config configures the HTTP handler.
type Config struct {
	// Debounce is the quiet period of live sessions.
	Debounce time.Duration
	// RequestTimeout bounds every request except live sessions.
	RequestTimeout time.Duration
	// CORSOrigins lists allowed origins; empty allows all.
	CORSOrigins []string
	// Storage backs the saved-slot endpoints. Nil disables them.
	Storage storage.Slot
	// RateLimiter throttles the preview and analyze endpoints. Nil disables
	// throttling.
	RateLimiter ratelimit.Limiter
	Logger      *zap.Logger
}

// Handler serves the preview API.
type Handler struct {
	service  *Service
	config   Config
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates the API handler.
func NewHandler(svc *Service, cfg Config) *Handler {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	origins := cfg.CORSOrigins
	return &Handler{
		service: svc,
		config:  cfg,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(origins) == 0 {
					return true
				}
				for _, o := range origins {
					if o == "*" || o == origin {
						return true
					}
				}
				return false
			},
		},
	}
}

// Routes builds the router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	chain := middleware.NewChain(
		middleware.RequestID(),
		middleware.Logging(h.logger, "/healthz"),
		middleware.Recovery(h.logger),
		middleware.CORS(h.config.CORSOrigins...),
	)
	r.Use(chain.Handlers()...)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.RenderNotFound(w, "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.RenderError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
	})

	r.Get("/healthz", h.health)
	r.Get("/api/live", h.live)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(h.config.RequestTimeout))

		r.With(middleware.RateLimit(h.config.RateLimiter, h.logger)).Post("/api/preview", h.preview)
		r.With(middleware.RateLimit(h.config.RateLimiter, h.logger)).Post("/api/analyze", h.analyze)
		r.Get("/api/catalog", h.catalogView)
		r.Get("/api/command", h.command)
		r.Get("/api/stack", h.decodeParams)
		r.Get("/api/saved/{slot}", h.loadSlot)
		r.Put("/api/saved/{slot}", h.saveSlot)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	response.RenderOK(w, map[string]interface{}{
		"status": "ok",
		"cached": h.service.Cached(),
	})
}

// decodeStack reads a stack from the body. An empty body is the default
// stack; absent fields take their defaults. Errors are *response.Error.
func decodeStack(w http.ResponseWriter, r *http.Request) (stack.State, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return stack.State{}, response.NewError(http.StatusRequestEntityTooLarge, "", err)
		}
		return stack.State{}, response.NewError(http.StatusBadRequest, "", err)
	}
	if len(data) == 0 {
		return stack.Default(), nil
	}
	s, err := state.DecodeJSON(data)
	if err != nil {
		return stack.State{}, response.NewError(http.StatusBadRequest, response.CodeInvalidStack,
			fmt.Errorf("invalid stack: %w", err))
	}
	return s, nil
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	s, err := decodeStack(w, r)
	if err != nil {
		response.RenderError(w, http.StatusBadRequest, err)
		return
	}

	res, err := h.service.Preview(s)
	if err != nil {
		response.RenderInternalError(w, err)
		return
	}
	response.RenderOK(w, res)
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) {
	s, err := decodeStack(w, r)
	if err != nil {
		response.RenderError(w, http.StatusBadRequest, err)
		return
	}
	response.RenderOK(w, compat.Analyze(s))
}

// CategoryView describes one catalog category for the builder.
type CategoryView struct {
	ID       catalog.Category  `json:"id" yaml:"id"`
	Multi    bool              `json:"multi" yaml:"multi"`
	Boolean  bool              `json:"boolean" yaml:"boolean"`
	Default  string            `json:"default,omitempty" yaml:"default,omitempty"`
	Options  []catalog.Option  `json:"options" yaml:"options"`
	Disabled map[string]string `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// CatalogView is the body of GET /api/catalog. Disabled options are
// computed against the stack in the query string.
type CatalogView struct {
	Categories []CategoryView `json:"categories" yaml:"categories"`
	Presets    []stack.Preset `json:"presets" yaml:"presets"`
}

// BuildCatalog describes the catalog relative to s.
func BuildCatalog(s stack.State) CatalogView {
	view := CatalogView{Presets: stack.Presets()}
	for _, c := range catalog.Categories() {
		cv := CategoryView{
			ID:      c,
			Multi:   catalog.IsMulti(c),
			Boolean: catalog.IsBoolean(c),
			Default: catalog.DefaultID(c),
			Options: catalog.Options(c),
		}
		if disabled := compat.DisabledOptions(s, c); len(disabled) > 0 {
			cv.Disabled = disabled
		}
		view.Categories = append(view.Categories, cv)
	}
	return view
}

func (h *Handler) catalogView(w http.ResponseWriter, r *http.Request) {
	response.RenderOK(w, BuildCatalog(state.FromParams(r.URL.Query())))
}

func (h *Handler) command(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s := state.FromParams(q)
	response.RenderOK(w, map[string]interface{}{
		"command": state.GenerateCommand(s),
		"query":   state.Query(s, state.ParseView(q)),
	})
}

func (h *Handler) decodeParams(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s := state.FromParams(q)

	body := map[string]interface{}{
		"stack": s,
		"view":  state.ParseView(q),
	}
	if err := stack.ValidateProjectName(s.ProjectName); err != nil {
		body["projectNameError"] = err.Error()
	}
	if unknown := s.UnknownOptions(); len(unknown) > 0 {
		body["unknown"] = unknown
	}
	response.RenderOK(w, body)
}

func (h *Handler) slotStore(w http.ResponseWriter, r *http.Request, opts ...state.Option) (*state.Store, bool) {
	if h.config.Storage == nil {
		response.RenderServiceUnavailable(w, "saving is not configured")
		return nil, false
	}
	opts = append(opts,
		state.WithStorage(h.config.Storage),
		state.WithSlotKey(chi.URLParam(r, "slot")),
		state.WithLogger(h.logger),
	)
	return state.New(opts...), true
}

func (h *Handler) saveSlot(w http.ResponseWriter, r *http.Request) {
	s, err := decodeStack(w, r)
	if err != nil {
		response.RenderError(w, http.StatusBadRequest, err)
		return
	}

	st, ok := h.slotStore(w, r, state.WithInitial(s))
	if !ok {
		return
	}
	if err := st.Save(r.Context()); err != nil {
		response.RenderInternalError(w, err)
		return
	}
	response.RenderOK(w, map[string]interface{}{
		"success": true,
		"slot":    st.SlotKey(),
		"stack":   st.Stack(),
	})
}

func (h *Handler) loadSlot(w http.ResponseWriter, r *http.Request) {
	st, ok := h.slotStore(w, r)
	if !ok {
		return
	}
	found, messages, err := st.Load(r.Context())
	if err != nil {
		response.RenderInternalError(w, err)
		return
	}
	if !found {
		response.RenderErrorWithCode(w, http.StatusNotFound,
			fmt.Errorf("nothing saved in %s", st.SlotKey()), response.CodeSlotNotFound)
		return
	}
	if messages == nil {
		messages = []string{}
	}
	response.RenderOK(w, map[string]interface{}{
		"success":     true,
		"slot":        st.SlotKey(),
		"stack":       st.Stack(),
		"corrections": messages,
	})
}
