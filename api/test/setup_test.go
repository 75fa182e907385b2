package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/goldenpeaks/academy/api"
	"github.com/goldenpeaks/academy/core/claims"
	"github.com/goldenpeaks/academy/core/token"
	"github.com/goldenpeaks/academy/core/user"
	"github.com/goldenpeaks/academy/database"
	"github.com/goldenpeaks/academy/validate"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	stripecl "github.com/stripe/stripe-go/v74/client"
)

var hostPort string

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	pool, err := dockertest.NewPool("")
	if err != nil {
		fmt.Printf("could not connect to docker: %v\n", err)
		return 1
	}

	resource, err := pool.Run("postgres", "15-alpine", []string{
		"POSTGRES_USER=postgres",
		"POSTGRES_PASSWORD=postgres",
		"POSTGRES_DB=postgres",
	})
	if err != nil {
		fmt.Printf("could not start postgres: %v\n", err)
		return 1
	}
	resource.Expire(600)

	hostPort = resource.GetHostPort("5432/tcp")

	if err := pool.Retry(func() error {
		db, err := sqlx.Connect("postgres", dsn("postgres"))
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Ping()
	}); err != nil {
		fmt.Printf("could not reach postgres: %v\n", err)
		return 1
	}

	code := m.Run()

	if err := pool.Purge(resource); err != nil {
		fmt.Printf("could not purge postgres: %v\n", err)
	}

	return code
}

func dsn(name string) string {
	return fmt.Sprintf("postgres://postgres:postgres@%s/%s?sslmode=disable&timezone=utc", hostPort, name)
}

type TestEnv struct {
	Server *httptest.Server
	URL    string
	DB     *sqlx.DB
	JWT    token.Config
	Stripe *mockStripe

	AdminEmail string
	AdminToken string
	UserEmail  string
	UserToken  string
}

// NewTestEnv creates an isolated database named after the test, migrates it,
// seeds an admin and a student with signed tokens, and serves the full API
// mux with the Stripe client pointed at an in-process mock backend.
func NewTestEnv(t *testing.T, name string) (*TestEnv, error) {
	admin, err := sqlx.Connect("postgres", dsn("postgres"))
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	defer admin.Close()

	if _, err := admin.Exec("CREATE DATABASE " + name); err != nil {
		return nil, fmt.Errorf("creating database %s: %w", name, err)
	}

	db, err := sqlx.Connect("postgres", dsn(name))
	if err != nil {
		return nil, fmt.Errorf("connecting to database %s: %w", name, err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db.DB); err != nil {
		return nil, fmt.Errorf("migrating database %s: %w", name, err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	jwtCfg := token.Config{Secret: "test-secret", Expiry: time.Hour, Issuer: "academy-test"}

	ms := &mockStripe{}
	stripeSrv := httptest.NewServer(ms.handle())
	t.Cleanup(stripeSrv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:           stripe.String(stripeSrv.URL),
		LeveledLogger: &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	strp := &stripecl.API{}
	strp.Init("sk_test_mock", &stripe.Backends{API: backend})

	mux := api.APIMux(api.APIConfig{
		Log:    log,
		DB:     db,
		JWT:    jwtCfg,
		Stripe: strp,
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	env := &TestEnv{
		Server:     srv,
		URL:        srv.URL,
		DB:         db,
		JWT:        jwtCfg,
		Stripe:     ms,
		AdminEmail: "admin@academy.test",
		UserEmail:  "student@academy.test",
	}

	ctx := context.Background()
	now := time.Now().UTC()

	seed := []user.User{
		{ID: validate.GenerateID(), Email: env.AdminEmail, Name: "Admin", Role: claims.RoleAdmin, CreatedAt: now},
		{ID: validate.GenerateID(), Email: env.UserEmail, Name: "Student", Role: claims.RoleStudent, CreatedAt: now},
	}
	for _, usr := range seed {
		if err := user.Create(ctx, db, usr); err != nil {
			return nil, fmt.Errorf("seeding user %s: %w", usr.Email, err)
		}
	}

	if env.AdminToken, err = token.Sign(jwtCfg, env.AdminEmail, claims.RoleAdmin); err != nil {
		return nil, fmt.Errorf("signing admin token: %w", err)
	}
	if env.UserToken, err = token.Sign(jwtCfg, env.UserEmail, claims.RoleStudent); err != nil {
		return nil, fmt.Errorf("signing user token: %w", err)
	}

	return env, nil
}

// request performs an authenticated JSON request against the test server.
func (te *TestEnv) request(t *testing.T, method, path, tok string, body interface{}) *http.Response {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	r, err := http.NewRequest(method, te.URL+path, rd)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		r.Header.Set("Authorization", "Bearer "+tok)
	}

	w, err := http.DefaultClient.Do(r)
	if err != nil {
		t.Fatalf("performing request: %v", err)
	}

	return w
}

func decode(t *testing.T, w *http.Response, out interface{}) {
	t.Helper()
	defer w.Body.Close()

	if err := json.NewDecoder(w.Body).Decode(out); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
}
