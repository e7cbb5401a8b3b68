package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Alka-null/nbcc2026gamesweb/internal/model"
)

func TestCodeLoginSendsCodeAndDecodesChallenge(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok-1","challenge_id":42}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	result, err := client.CodeLogin(context.Background(), "ABC123")
	if err != nil {
		t.Fatalf("code login: %v", err)
	}

	if gotPath != "/api/auth/code-login/" {
		t.Fatalf("path %q", gotPath)
	}
	if gotBody["unique_code"] != "ABC123" {
		t.Fatalf("body %v", gotBody)
	}
	if result.Token != "tok-1" {
		t.Fatalf("token %q", result.Token)
	}
	if result.ChallengeID == nil || *result.ChallengeID != 42 {
		t.Fatalf("challenge ID %v", result.ChallengeID)
	}
}

func TestCodeLoginRejectionMapsToAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid code"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.CodeLogin(context.Background(), "WRONG")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "Invalid code" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestDeadBackendMapsToErrUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Dead on arrival.

	client := NewClient(srv.URL, nil)
	_, err := client.QuizQuestions(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestRegisterCodeFallbackChain(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"nested player", `{"player":{"unique_code":"P1"}}`, "P1"},
		{"top level unique_code", `{"unique_code":"U1"}`, "U1"},
		{"legacy code field", `{"code":"C1"}`, "C1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			code, err := NewClient(srv.URL, nil).Register(context.Background(), "Ada", "ada@example.com")
			if err != nil {
				t.Fatalf("register: %v", err)
			}
			if code != tc.want {
				t.Fatalf("code %q, want %q", code, tc.want)
			}
		})
	}
}

func TestRegisterRejectsMissingCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, nil).Register(context.Background(), "Ada", "ada@example.com"); err == nil {
		t.Fatal("expected an error when no code is returned")
	}
}

func TestSubmitAnswerNormalizesVerdictField(t *testing.T) {
	cases := []struct {
		body string
		want bool
	}{
		{`{"is_correct":true}`, true},
		{`{"correct":true}`, true},
		{`{"is_correct":false,"correct":false}`, false},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/gameplay/submit_answer/" {
				t.Errorf("path %q", r.URL.Path)
			}
			w.Write([]byte(tc.body))
		}))

		result, err := NewClient(srv.URL, nil).SubmitAnswer(context.Background(), AnswerSubmission{
			UserID:     "ABC123",
			QuestionID: 10,
			Answer:     "a",
		})
		srv.Close()
		if err != nil {
			t.Fatalf("submit answer: %v", err)
		}
		if result.IsCorrect != tc.want {
			t.Fatalf("body %s gave verdict %v, want %v", tc.body, result.IsCorrect, tc.want)
		}
	}
}

func TestErrorMessageFallbackChain(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"error":"first"}`, "first"},
		{`{"detail":"second"}`, "second"},
		{`{"message":"third"}`, "third"},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(tc.body))
		}))

		_, err := NewClient(srv.URL, nil).QuizQuestions(context.Background())
		srv.Close()

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *APIError, got %v", err)
		}
		if apiErr.Message != tc.want {
			t.Fatalf("message %q, want %q", apiErr.Message, tc.want)
		}
	}
}

func TestUploadJigsawPiecesBody(t *testing.T) {
	var got map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/jigsaw/upload/" {
			t.Errorf("path %q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	pieces := []string{"data:image/png;base64,AA==", "data:image/png;base64,BB=="}
	if err := NewClient(srv.URL, nil).UploadJigsawPieces(context.Background(), pieces); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if len(got["pieces"]) != 2 || got["pieces"][0] != pieces[0] {
		t.Fatalf("body %v", got)
	}
}

func TestSubmitFeedbackSoftFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"storage full"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).SubmitFeedback(context.Background(), model.FeedbackSubmission{FullName: "Ada"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "storage full" {
		t.Fatalf("message %q", apiErr.Message)
	}
}
