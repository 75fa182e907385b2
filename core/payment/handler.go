package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goldenpeaks/academy/api/web"
	"github.com/goldenpeaks/academy/api/weberr"
	"github.com/goldenpeaks/academy/core/cart"
	"github.com/goldenpeaks/academy/core/class"
	"github.com/goldenpeaks/academy/core/claims"
	"github.com/goldenpeaks/academy/database"
	"github.com/goldenpeaks/academy/validate"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	stripecl "github.com/stripe/stripe-go/v74/client"
)

// ErrSoldOut is returned when a reconciliation is attempted against a class
// with no seats left. The whole operation rolls back, payment included.
var ErrSoldOut = errors.New("class has no available seats")

// reconcile turns a completed payment into durable state: the payment record,
// the class counters and the cart cleanup all land in one transaction, so no
// partially-reconciled state can ever be observed or persist.
func reconcile(ctx context.Context, db *sqlx.DB, pay Payment) (Receipt, error) {
	rec := Receipt{PaymentID: pay.ID}

	err := database.Transaction(db, func(tx sqlx.ExtContext) error {
		if _, err := class.Fetch(ctx, tx, pay.ClassID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(fmt.Errorf("class[%s] does not exist", pay.ClassID))
			}
			return fmt.Errorf("fetching class[%s]: %w", pay.ClassID, err)
		}

		if err := Create(ctx, tx, pay); err != nil {
			return fmt.Errorf("recording payment: %w", err)
		}

		reserved, err := ReserveSeat(ctx, tx, pay.ClassID)
		if err != nil {
			return err
		}
		if !reserved {
			return weberr.NewError(ErrSoldOut, ErrSoldOut.Error(), http.StatusConflict)
		}
		rec.SeatsReserved = true

		n, err := cart.DeleteByClass(ctx, tx, pay.Email, pay.ClassID)
		if err != nil {
			return err
		}
		rec.CartCleared = n > 0

		return nil
	})

	if err != nil {
		return Receipt{}, fmt.Errorf("reconciling payment[%s] for class[%s]: %w", pay.ID, pay.ClassID, err)
	}

	return rec, nil
}

// HandlePay runs the reconciliation workflow for a client-confirmed payment.
func HandlePay(db *sqlx.DB, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var pn PaymentNew
		if err := web.Decode(w, r, &pn); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding payment: %w", err))
		}

		if err := validate.Check(pn); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if !claims.IsOwner(ctx, pn.Email) {
			return weberr.Forbidden(errors.New("cannot record a payment for another user"))
		}

		pay := Payment{
			ID:            validate.GenerateID(),
			Email:         pn.Email,
			ClassID:       pn.ClassID,
			Amount:        pn.Amount,
			TransactionID: pn.TransactionID,
			Date:          time.Now().UTC(),
		}

		rec, err := reconcile(ctx, db, pay)
		if err != nil {
			return err
		}

		if !rec.CartCleared {
			log.WithFields(logrus.Fields{
				"payment_id": pay.ID,
				"class_id":   pay.ClassID,
				"email":      pay.Email,
			}).Warn("payment reconciled without a matching cart item")
		}

		return web.Respond(ctx, w, rec, http.StatusOK)
	}
}

// HandleIntent asks the payment provider for a client secret the frontend
// uses to confirm the card charge.
func HandleIntent(strp *stripecl.API) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in IntentNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding intent request: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		params := &stripe.PaymentIntentParams{
			Amount:             stripe.Int64(cents(in.Price)),
			Currency:           stripe.String(string(stripe.CurrencyUSD)),
			PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		}
		params.Context = ctx

		pi, err := strp.PaymentIntents.New(params)
		if err != nil {
			err = fmt.Errorf("creating payment intent: %w", err)
			return weberr.NewError(err, "the payment provider could not process the request", http.StatusBadGateway)
		}

		return web.Respond(ctx, w, Intent{ClientSecret: pi.ClientSecret}, http.StatusOK)
	}
}

// HandleHistory lists a user's payments, newest first.
func HandleHistory(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		email := web.QueryParam(r, "email")
		if email == "" {
			return weberr.BadRequest(errors.New("email query parameter is required"))
		}

		if !claims.IsOwner(ctx, email) {
			return weberr.Forbidden(errors.New("cannot list another user's payments"))
		}

		pays, err := FetchByEmail(ctx, db, email)
		if err != nil {
			return fmt.Errorf("fetching payments: %w", err)
		}

		return web.Respond(ctx, w, pays, http.StatusOK)
	}
}

// HandleEnrollments answers "what is this user enrolled in" by joining the
// user's payments back to the classes they reference. Payments whose class no
// longer resolves are skipped, and an empty history yields an empty result.
func HandleEnrollments(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		email := web.QueryParam(r, "email")
		if email == "" {
			return weberr.BadRequest(errors.New("email query parameter is required"))
		}

		if !claims.IsOwner(ctx, email) {
			return weberr.Forbidden(errors.New("cannot list another user's enrollments"))
		}

		pays, err := FetchByEmail(ctx, db, email)
		if err != nil {
			return fmt.Errorf("fetching payments: %w", err)
		}

		seen := make(map[string]bool, len(pays))
		ids := make([]string, 0, len(pays))
		for _, p := range pays {
			if p.ClassID == "" || seen[p.ClassID] {
				continue
			}
			seen[p.ClassID] = true
			ids = append(ids, p.ClassID)
		}

		if len(ids) == 0 {
			return web.Respond(ctx, w, []class.Summary{}, http.StatusOK)
		}

		sums, err := class.FetchSummaries(ctx, db, ids)
		if err != nil {
			return fmt.Errorf("fetching enrolled classes: %w", err)
		}

		return web.Respond(ctx, w, sums, http.StatusOK)
	}
}
