package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tokenized/pkg/logger"
	"github.com/tokenized/voting/internal/platform/node"
	"github.com/tokenized/voting/internal/voting"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// SignerHeader carries the address of the signer of submitted instructions. The signature is
// verified before the request reaches this service.
const SignerHeader = "X-Signer"

// StatusChecker reports whether the ledger storage is reachable.
type StatusChecker interface {
	StatusCheck(ctx context.Context) error
}

// App serves the voting program over HTTP.
type App struct {
	Client *voting.Client
	Health StatusChecker
}

func NewApp(client *voting.Client, health StatusChecker) *App {
	return &App{
		Client: client,
		Health: health,
	}
}

// Router returns the HTTP routes.
func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(a.requestValues)

	r.Get("/health", a.HealthHandler)

	r.Post("/polls", a.CreatePollHandler)
	r.Get("/polls/{pollID}", a.GetPollHandler)
	r.Post("/polls/{pollID}/candidates", a.CreateCandidateHandler)
	r.Get("/polls/{pollID}/candidates/{name}", a.GetCandidateHandler)
	r.Post("/polls/{pollID}/candidates/{name}/votes", a.VoteHandler)

	r.Get("/accounts/{address}", a.GetAccountHandler)

	return r
}

// requestValues attaches a trace id to each request. The logger comes from the server's base
// context.
func (a *App) requestValues(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := &node.Values{
			TraceID: uuid.New().String(),
			Now:     time.Now(),
		}

		ctx := node.ContextWithValues(r.Context(), v)

		w.Header().Set("X-Trace-ID", v.TraceID)
		logger.Verbose(ctx, "%s : %s %s", v.TraceID, r.Method, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
