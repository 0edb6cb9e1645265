package xhttp

import (
	"os"
	"os/signal"
	"reflect"
	"runtime"
	"slices"
	"strconv"
	"syscall"
	"time"

	"github.com/nimasrn/debt-ledger/pkg/logger"
	"github.com/valyala/fasthttp"
)

// env list:
// XHTTP_SERVER_READ_TIMEOUT
// XHTTP_SERVER_WRITE_TIMEOUT
// XHTTP_SERVER_REQUEST_TIMEOUT
// values are milliseconds

var (
	defaultReadTimeout    = time.Millisecond * 2500
	defaultWriteTimeout   = time.Millisecond * 2500
	defaultRequestTimeout = time.Millisecond * 5000
)

func init() {
	defaultReadTimeout = durationFromEnv("XHTTP_SERVER_READ_TIMEOUT", defaultReadTimeout)
	defaultWriteTimeout = durationFromEnv("XHTTP_SERVER_WRITE_TIMEOUT", defaultWriteTimeout)
	defaultRequestTimeout = durationFromEnv("XHTTP_SERVER_REQUEST_TIMEOUT", defaultRequestTimeout)
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return time.Millisecond * time.Duration(v)
}

type Server = fasthttp.Server

type ServerOption struct {
	Name string

	IdleTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// RequestTimeout bounds a single handler; see TimeoutMiddleware.
	RequestTimeout time.Duration

	// the ledger accepts small JSON bodies only
	MaxRequestBodySize int
	Concurrency        int
	Logger             logger.Logger
}

func DefaultServerOption() ServerOption {
	return ServerOption{
		Name:               "debt-ledger",
		IdleTimeout:        time.Second * 10,
		ReadTimeout:        defaultReadTimeout,
		WriteTimeout:       defaultWriteTimeout,
		RequestTimeout:     defaultRequestTimeout,
		MaxRequestBodySize: 64 * 1024,
		Concurrency:        1024,
		Logger:             logger.GetLogger(),
	}
}

type Engine struct {
	*Router
	*Server
	option ServerOption
	middle []MiddlewareFunc
}

func NewServer(options ServerOption) *Engine {
	return &Engine{
		Server: &fasthttp.Server{
			Name:                  options.Name,
			IdleTimeout:           options.IdleTimeout,
			ReadTimeout:           options.ReadTimeout,
			WriteTimeout:          options.WriteTimeout,
			MaxRequestBodySize:    options.MaxRequestBodySize,
			Concurrency:           options.Concurrency,
			NoDefaultServerHeader: true,
			CloseOnShutdown:       true,
			Logger:                options.Logger,
			ErrorHandler: func(ctx *RequestCtx, err error) {
				logger.Warn("[xhttp] request error", "error", err)
				ctx.Error(StatusText(StatusBadRequest), StatusBadRequest)
			},
		},
		Router: CreateDefaultRouter(),
		option: options,
	}
}

func CreateServer() *Engine {
	return NewServer(DefaultServerOption())
}

func (e *Engine) Option() ServerOption {
	return e.option
}

// Use appends middleware; the first registered runs outermost.
func (e *Engine) Use(middleware MiddlewareFunc) {
	e.middle = append(e.middle, middleware)
}

// DoRouting builds the final handler from the router and the middleware chain.
func (e *Engine) DoRouting() RequestHandler {
	for method, routes := range e.Router.List() {
		for _, r := range routes {
			logger.Debug("[xhttp] route registered", "method", method, "path", r)
		}
	}

	handler := e.Router.Handler
	chain := slices.Clone(e.middle)
	slices.Reverse(chain)
	for _, m := range chain {
		handler = m(handler)
		logger.Debug("[xhttp] middleware registered", "name", runtime.FuncForPC(reflect.ValueOf(m).Pointer()).Name())
	}
	e.Server.Handler = handler
	return handler
}

func (e *Engine) ListenAndServe(addr string) error {
	e.DoRouting()
	logger.Info("[xhttp] server is listening", "addr", addr)
	return e.Server.ListenAndServe(addr)
}

// CloseOnSignal shuts the server down on SIGINT or SIGTERM.
func (e *Engine) CloseOnSignal() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig
		e.Shutdown()
	}()
}

func (e *Engine) Shutdown() {
	logger.Info("[xhttp] server is shutting down", "pid", os.Getpid())
	if err := e.Server.Shutdown(); err != nil {
		logger.Warn("[xhttp] error while shutting down", "error", err)
	}
}
