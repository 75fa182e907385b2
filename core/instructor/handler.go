package instructor

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goldenpeaks/academy/api/web"
	"github.com/jmoiron/sqlx"
)

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		inss, err := FetchAll(ctx, db)
		if err != nil {
			return fmt.Errorf("fetching instructors: %w", err)
		}

		return web.Respond(ctx, w, inss, http.StatusOK)
	}
}
