package test

import (
	"context"
	"net/http"
	"testing"

	"github.com/goldenpeaks/academy/core/instructor"
	"github.com/goldenpeaks/academy/validate"
)

func TestInstructor(t *testing.T) {
	env, err := NewTestEnv(t, "instructor_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ctx := context.Background()
	seed := []instructor.Instructor{
		{ID: validate.GenerateID(), Name: "Quiet One", Email: "quiet@academy.test", NumberOfStudents: 3},
		{ID: validate.GenerateID(), Name: "Crowd Favorite", Email: "favorite@academy.test", NumberOfStudents: 87},
	}
	for _, ins := range seed {
		if err := instructor.Create(ctx, env.DB, ins); err != nil {
			t.Fatalf("seeding instructor: %v", err)
		}
	}

	w := env.request(t, http.MethodGet, "/popular-instructors", "", nil)
	if w.StatusCode != http.StatusOK {
		t.Fatalf("can't list instructors: status code %s", w.Status)
	}

	var inss []instructor.Instructor
	decode(t, w, &inss)

	if len(inss) != 2 {
		t.Fatalf("expected 2 instructors, got %d", len(inss))
	}
	if inss[0].Name != "Crowd Favorite" {
		t.Errorf("expected the most followed instructor first, got %q", inss[0].Name)
	}
}
