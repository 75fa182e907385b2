package test

import (
	"net/http"
	"testing"

	"github.com/goldenpeaks/academy/core/class"
	"github.com/google/go-cmp/cmp"
)

type classTest struct {
	*TestEnv
}

func TestClass(t *testing.T) {
	env, err := NewTestEnv(t, "class_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ct := &classTest{env}

	c1 := ct.createClassOK(t, "Alpine Climbing", "guide@academy.test", 10, 120)
	c2 := ct.createClassOK(t, "Trail Running", "coach@academy.test", 5, 60)

	if c1.Status != class.Pending {
		t.Errorf("expected new class to be pending, got %q", c1.Status)
	}

	// Lift c2 above c1 by rewriting it with enrolled students.
	up := map[string]interface{}{
		"className":        c2.Name,
		"instructorName":   c2.InstructorName,
		"instructorEmail":  c2.InstructorEmail,
		"price":            c2.Price,
		"availableSeats":   c2.AvailableSeats,
		"numberOfStudents": 42,
		"status":           "approved",
	}
	w := ct.request(t, http.MethodPut, "/popular-classes/"+c2.ID, ct.UserToken, up)
	w.Body.Close()
	if w.StatusCode != http.StatusOK {
		t.Fatalf("can't upsert class: status code %s", w.Status)
	}

	clss := ct.listClassesOK(t)
	if len(clss) != 2 {
		t.Fatalf("expected 2 classes, got %d", len(clss))
	}
	if clss[0].ID != c2.ID {
		t.Errorf("expected most popular class first, got %q", clss[0].Name)
	}

	ct.reviewClass(t, c1.ID, "denied", "")

	clss = ct.listClassesOK(t)
	for _, c := range clss {
		if c.ID != c1.ID {
			continue
		}
		if c.Status != class.Denied {
			t.Errorf("expected status denied, got %q", c.Status)
		}
		if c.Feedback != "No Feedback!" {
			t.Errorf("expected placeholder feedback, got %q", c.Feedback)
		}
	}

	// Review requires the admin role.
	w = ct.request(t, http.MethodPatch, "/popular-classes/"+c1.ID, ct.UserToken, map[string]string{"status": "approved"})
	w.Body.Close()
	if w.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin review, got %s", w.Status)
	}

	got := ct.listByInstructorOK(t, "guide@academy.test")
	if len(got) != 1 {
		t.Fatalf("expected 1 class for instructor, got %d", len(got))
	}
	if diff := cmp.Diff(c1.ID, got[0].ID); diff != "" {
		t.Errorf("unexpected class for instructor: %s", diff)
	}
}

func (ct *classTest) createClassOK(t *testing.T, name string, instructorEmail string, seats int, price float64) class.Class {
	t.Helper()

	cn := map[string]interface{}{
		"className":       name,
		"instructorName":  "Instructor",
		"instructorEmail": instructorEmail,
		"price":           price,
		"availableSeats":  seats,
	}

	w := ct.request(t, http.MethodPost, "/popular-classes", ct.UserToken, cn)
	if w.StatusCode != http.StatusCreated {
		t.Fatalf("can't create class: status code %s", w.Status)
	}

	var cls class.Class
	decode(t, w, &cls)
	return cls
}

func (ct *classTest) listClassesOK(t *testing.T) []class.Class {
	t.Helper()

	w := ct.request(t, http.MethodGet, "/popular-classes", "", nil)
	if w.StatusCode != http.StatusOK {
		t.Fatalf("can't list classes: status code %s", w.Status)
	}

	var clss []class.Class
	decode(t, w, &clss)
	return clss
}

func (ct *classTest) listByInstructorOK(t *testing.T, email string) []class.Class {
	t.Helper()

	w := ct.request(t, http.MethodGet, "/instructor-classes?email="+email, "", nil)
	if w.StatusCode != http.StatusOK {
		t.Fatalf("can't list instructor classes: status code %s", w.Status)
	}

	var clss []class.Class
	decode(t, w, &clss)
	return clss
}

func (ct *classTest) reviewClass(t *testing.T, id string, status string, feedback string) {
	t.Helper()

	ru := map[string]string{"status": status}
	if feedback != "" {
		ru["feedback"] = feedback
	}

	w := ct.request(t, http.MethodPatch, "/popular-classes/"+id, ct.AdminToken, ru)
	w.Body.Close()
	if w.StatusCode != http.StatusNoContent {
		t.Fatalf("can't review class: status code %s", w.Status)
	}
}
