package api

import (
	"context"
	"net/http"

	"github.com/goldenpeaks/academy/api/middleware"
	"github.com/goldenpeaks/academy/api/web"
	"github.com/goldenpeaks/academy/core/auth"
	"github.com/goldenpeaks/academy/core/cart"
	"github.com/goldenpeaks/academy/core/claims"
	"github.com/goldenpeaks/academy/core/class"
	"github.com/goldenpeaks/academy/core/instructor"
	"github.com/goldenpeaks/academy/core/payment"
	"github.com/goldenpeaks/academy/core/token"
	"github.com/goldenpeaks/academy/core/user"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	stripecl "github.com/stripe/stripe-go/v74/client"
)

type APIConfig struct {
	CorsOrigin string
	Log        logrus.FieldLogger
	DB         *sqlx.DB
	JWT        token.Config
	Stripe     *stripecl.API
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	authen := auth.Authenticate(cfg.JWT)
	admin := auth.Admin(cfg.JWT)

	a.Handle(http.MethodGet, "/", handleBanner())

	a.Handle(http.MethodPost, "/jwt", token.HandleIssue(cfg.DB, cfg.JWT))

	a.Handle(http.MethodPost, "/users", user.HandleCreate(cfg.DB))
	a.Handle(http.MethodGet, "/users", user.HandleList(cfg.DB), admin)
	a.Handle(http.MethodPatch, "/users/admin/{id}", user.HandlePromote(cfg.DB, claims.RoleAdmin), admin)
	a.Handle(http.MethodGet, "/users/admin/{email}", user.HandleRoleCheck(cfg.DB, claims.RoleAdmin), authen)
	a.Handle(http.MethodPatch, "/users/instructor/{id}", user.HandlePromote(cfg.DB, claims.RoleInstructor), admin)
	a.Handle(http.MethodGet, "/users/instructor/{email}", user.HandleRoleCheck(cfg.DB, claims.RoleInstructor), authen)

	a.Handle(http.MethodGet, "/instructor-classes", class.HandleListByInstructor(cfg.DB))
	a.Handle(http.MethodGet, "/popular-classes", class.HandleList(cfg.DB))
	a.Handle(http.MethodPost, "/popular-classes", class.HandleCreate(cfg.DB), authen)
	a.Handle(http.MethodPut, "/popular-classes/{id}", class.HandleUpsert(cfg.DB), authen)
	a.Handle(http.MethodPatch, "/popular-classes/{id}", class.HandleReview(cfg.DB), admin)

	a.Handle(http.MethodGet, "/popular-instructors", instructor.HandleList(cfg.DB))

	a.Handle(http.MethodPost, "/selected-classes-cart", cart.HandleCreateItem(cfg.DB), authen)
	a.Handle(http.MethodGet, "/selected-classes-cart", cart.HandleListItems(cfg.DB), authen)
	a.Handle(http.MethodDelete, "/selected-classes-cart/{id}", cart.HandleDeleteItem(cfg.DB), authen)

	a.Handle(http.MethodGet, "/enrollDetails", payment.HandleEnrollments(cfg.DB), authen)
	a.Handle(http.MethodPost, "/create-payment-intent", payment.HandleIntent(cfg.Stripe), authen)
	a.Handle(http.MethodPost, "/payment", payment.HandlePay(cfg.DB, cfg.Log), authen)
	a.Handle(http.MethodGet, "/payment", payment.HandleHistory(cfg.DB), authen)

	return a.Router
}

func handleBanner() web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, "Academy server is running..", http.StatusOK)
	}
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
