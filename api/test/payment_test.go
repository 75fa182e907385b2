package test

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/goldenpeaks/academy/api/web"
	"github.com/goldenpeaks/academy/core/class"
	"github.com/goldenpeaks/academy/core/payment"
	"github.com/goldenpeaks/academy/validate"
	"github.com/gorilla/mux"
	mock "github.com/stripe/stripe-mock/param"
)

type mockStripe struct {
	expectedAmount int64
}

func (m *mockStripe) handle() http.Handler {
	intents := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params, _ := mock.ParseParams(r)

		s, _ := params["amount"].(string)
		amount, err := strconv.ParseInt(s, 10, 0)
		if err != nil {
			web.Respond(context.Background(), w, err, 400)
			return
		}

		if m.expectedAmount != 0 && amount != m.expectedAmount {
			web.Respond(context.Background(), w, nil, 400)
			return
		}

		if cur, _ := params["currency"].(string); cur != "usd" {
			web.Respond(context.Background(), w, nil, 400)
			return
		}

		randID := fmt.Sprintf("pi_%d", rand.Intn(300))
		pi := map[string]any{
			"id":            randID,
			"object":        "payment_intent",
			"client_secret": randID + "_secret_test",
			"amount":        amount,
			"currency":      "usd",
			"status":        "requires_payment_method",
		}
		web.Respond(context.Background(), w, pi, 200)
	})

	r := mux.NewRouter()
	r.Handle("/v1/payment_intents", intents).Methods("POST")
	return r
}

type paymentTest struct {
	*TestEnv
}

func TestPayment(t *testing.T) {
	env, err := NewTestEnv(t, "payment_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	pt := &paymentTest{env}
	ct := &classTest{env}
	rt := &cartTest{env}

	cls := ct.createClassOK(t, "Rock Climbing", "peak@academy.test", 2, 49.99)
	rt.addItemOK(t, cls.ID)

	pt.Stripe.expectedAmount = 4999
	secret := pt.createIntentOK(t, 49.99)
	if secret == "" {
		t.Fatal("expected a client secret")
	}

	rec := pt.payOK(t, cls.ID, 49.99)
	if !rec.SeatsReserved {
		t.Error("expected seats to be reserved")
	}
	if !rec.CartCleared {
		t.Error("expected the cart item to be cleared")
	}

	// The paid class left the cart.
	if items := rt.listItemsOK(t, pt.UserEmail); len(items) != 0 {
		t.Errorf("expected empty cart after payment, got %d items", len(items))
	}

	// Counters moved by exactly one.
	got := pt.fetchClass(t, ct, cls.ID)
	if got.AvailableSeats != cls.AvailableSeats-1 {
		t.Errorf("expected %d available seats, got %d", cls.AvailableSeats-1, got.AvailableSeats)
	}
	if got.NumberOfStudents != cls.NumberOfStudents+1 {
		t.Errorf("expected %d students, got %d", cls.NumberOfStudents+1, got.NumberOfStudents)
	}

	// The payment shows up in the history and in the enrollment lookup.
	pays := pt.listPaymentsOK(t)
	if len(pays) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(pays))
	}
	if pays[0].ClassID != cls.ID {
		t.Errorf("expected payment for class %s, got %s", cls.ID, pays[0].ClassID)
	}

	sums := pt.enrollmentsOK(t)
	if len(sums) != 1 || sums[0].ID != cls.ID {
		t.Fatalf("expected enrollment in class %s, got %+v", cls.ID, sums)
	}

	// Paying without a cart entry succeeds but is flagged on the receipt.
	rec = pt.payOK(t, cls.ID, 49.99)
	if rec.CartCleared {
		t.Error("expected cartCleared=false for a cart-less payment")
	}

	// The class is now full: another reconciliation must fail without
	// leaving a payment record behind.
	w := pt.request(t, http.MethodPost, "/payment", pt.UserToken, map[string]interface{}{
		"email":   pt.UserEmail,
		"classId": cls.ID,
		"amount":  49.99,
	})
	w.Body.Close()
	if w.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for sold-out class, got %s", w.Status)
	}

	if pays = pt.listPaymentsOK(t); len(pays) != 2 {
		t.Fatalf("expected the rejected payment to roll back, got %d payments", len(pays))
	}

	got = pt.fetchClass(t, ct, cls.ID)
	if got.AvailableSeats != 0 {
		t.Errorf("expected 0 available seats, got %d", got.AvailableSeats)
	}
	if got.NumberOfStudents != 2 {
		t.Errorf("expected 2 students, got %d", got.NumberOfStudents)
	}

	// Paying for a class that does not exist is a 404.
	w = pt.request(t, http.MethodPost, "/payment", pt.UserToken, map[string]interface{}{
		"email":   pt.UserEmail,
		"classId": validate.GenerateID(),
		"amount":  10,
	})
	w.Body.Close()
	if w.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown class, got %s", w.Status)
	}
}

func TestEnrollmentLookup(t *testing.T) {
	env, err := NewTestEnv(t, "enroll_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	pt := &paymentTest{env}

	// No payments at all yields an empty set, not an error.
	if sums := pt.enrollmentsOK(t); len(sums) != 0 {
		t.Fatalf("expected no enrollments, got %d", len(sums))
	}

	// A payment whose class no longer resolves is skipped silently.
	dangling := payment.Payment{
		ID:      validate.GenerateID(),
		Email:   pt.UserEmail,
		ClassID: validate.GenerateID(),
		Amount:  10,
		Date:    time.Now().UTC(),
	}
	if err := payment.Create(context.Background(), pt.DB, dangling); err != nil {
		t.Fatalf("inserting dangling payment: %v", err)
	}

	if sums := pt.enrollmentsOK(t); len(sums) != 0 {
		t.Fatalf("expected dangling payment to be skipped, got %d enrollments", len(sums))
	}
}

func (pt *paymentTest) createIntentOK(t *testing.T, price float64) string {
	t.Helper()

	w := pt.request(t, http.MethodPost, "/create-payment-intent", pt.UserToken, map[string]float64{"price": price})
	if w.StatusCode != http.StatusOK {
		t.Fatalf("can't create payment intent: status code %s", w.Status)
	}

	var in payment.Intent
	decode(t, w, &in)
	return in.ClientSecret
}

func (pt *paymentTest) payOK(t *testing.T, classID string, amount float64) payment.Receipt {
	t.Helper()

	w := pt.request(t, http.MethodPost, "/payment", pt.UserToken, map[string]interface{}{
		"email":   pt.UserEmail,
		"classId": classID,
		"amount":  amount,
	})
	if w.StatusCode != http.StatusOK {
		t.Fatalf("can't record payment: status code %s", w.Status)
	}

	var rec payment.Receipt
	decode(t, w, &rec)
	return rec
}

func (pt *paymentTest) listPaymentsOK(t *testing.T) []payment.Payment {
	t.Helper()

	w := pt.request(t, http.MethodGet, "/payment?email="+pt.UserEmail, pt.UserToken, nil)
	if w.StatusCode != http.StatusOK {
		t.Fatalf("can't list payments: status code %s", w.Status)
	}

	var pays []payment.Payment
	decode(t, w, &pays)
	return pays
}

func (pt *paymentTest) enrollmentsOK(t *testing.T) []class.Summary {
	t.Helper()

	w := pt.request(t, http.MethodGet, "/enrollDetails?email="+pt.UserEmail, pt.UserToken, nil)
	if w.StatusCode != http.StatusOK {
		t.Fatalf("can't look up enrollments: status code %s", w.Status)
	}

	var sums []class.Summary
	decode(t, w, &sums)
	return sums
}

func (pt *paymentTest) fetchClass(t *testing.T, ct *classTest, id string) class.Class {
	t.Helper()

	for _, c := range ct.listClassesOK(t) {
		if c.ID == id {
			return c
		}
	}

	t.Fatalf("class %s not found", id)
	return class.Class{}
}
