package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/Samychowdhury01/melody-makers-academy-server/internal/models"
	"github.com/Samychowdhury01/melody-makers-academy-server/internal/services"
)

type stubSelectionStore struct {
	listResult    []models.SelectedClassDetail
	deleteResult  int64
	deleteErr     error
	lastListEmail string
	lastDeleteID  int64
	lastDeleteFor string
}

func (s *stubSelectionStore) ListByStudentEmail(_ context.Context, email string) ([]models.SelectedClassDetail, error) {
	s.lastListEmail = email
	return s.listResult, nil
}

func (s *stubSelectionStore) DeleteByID(_ context.Context, selectionID int64, studentEmail string) (int64, error) {
	s.lastDeleteID = selectionID
	s.lastDeleteFor = studentEmail
	return s.deleteResult, s.deleteErr
}

type stubClassSelector struct {
	result    *models.SelectedClass
	err       error
	lastEmail string
	lastClass int64
}

func (s *stubClassSelector) SelectClass(_ context.Context, studentEmail string, classID int64) (*models.SelectedClass, error) {
	s.lastEmail = studentEmail
	s.lastClass = classID
	return s.result, s.err
}

func TestListSelectionsRejectsForeignEmail(t *testing.T) {
	store := &stubSelectionStore{}
	handler := &SelectionHandler{selections: store}

	app := fiber.New()
	withEmail(app, "me@example.com")
	app.Get("/my-classes/:email", handler.ListSelections)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/my-classes/other@example.com", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if store.lastListEmail != "" {
		t.Fatal("expected no store call for a foreign email")
	}
}

func TestCreateSelectionUsesCallerEmail(t *testing.T) {
	selector := &stubClassSelector{result: &models.SelectedClass{ID: 4, ClassID: 7, Price: 59.5}}
	handler := &SelectionHandler{enrollments: selector}

	app := fiber.New()
	withEmail(app, "Student@Example.com")
	app.Post("/my-classes", handler.CreateSelection)

	req := httptest.NewRequest(http.MethodPost, "/my-classes", strings.NewReader(`{"class_id": 7}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if selector.lastEmail != "student@example.com" {
		t.Fatalf("expected lowercased caller email, got %q", selector.lastEmail)
	}
	if selector.lastClass != 7 {
		t.Fatalf("expected class id 7, got %d", selector.lastClass)
	}
}

func TestCreateSelectionMapsUnavailableClass(t *testing.T) {
	selector := &stubClassSelector{err: services.ErrClassNotAvailable}
	handler := &SelectionHandler{enrollments: selector}

	app := fiber.New()
	withEmail(app, "student@example.com")
	app.Post("/my-classes", handler.CreateSelection)

	req := httptest.NewRequest(http.MethodPost, "/my-classes", strings.NewReader(`{"class_id": 7}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestDeleteSelectionScopesToCaller(t *testing.T) {
	store := &stubSelectionStore{deleteResult: 1}
	handler := &SelectionHandler{selections: store}

	app := fiber.New()
	withEmail(app, "student@example.com")
	app.Delete("/my-classes/:id", handler.DeleteSelection)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/my-classes/42", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if store.lastDeleteID != 42 || store.lastDeleteFor != "student@example.com" {
		t.Fatalf("expected delete scoped to caller, got id %d for %q", store.lastDeleteID, store.lastDeleteFor)
	}
}

func TestDeleteSelectionReturnsNotFoundForZeroRows(t *testing.T) {
	store := &stubSelectionStore{deleteResult: 0}
	handler := &SelectionHandler{selections: store}

	app := fiber.New()
	withEmail(app, "student@example.com")
	app.Delete("/my-classes/:id", handler.DeleteSelection)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/my-classes/42", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
