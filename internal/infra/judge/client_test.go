package judge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BHARGAV-S54/code-battle/internal/domain"
)

func sampleProblem() domain.Problem {
	return domain.Problem{
		ID:    "p1",
		Title: "FizzBuzz",
		TestCases: []domain.TestCase{
			{ID: "p1-t1", Input: "3", ExpectedOutput: "Fizz"},
		},
	}
}

func TestEvaluateDecodesVerdict(t *testing.T) {
	var got evaluateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(domain.Verdict{
			Results:    []domain.TestResult{{TestCaseID: "p1-t1", Passed: true, ActualOutput: "Fizz"}},
			TotalScore: 100,
			AIScore:    95,
			AIFeedback: "clean solution",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	verdict, err := client.Evaluate(context.Background(), "print('Fizz')", sampleProblem(), "python")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if verdict.TotalScore != 100 || verdict.AIScore != 95 {
		t.Fatalf("unexpected verdict: %+v", verdict)
	}
	if got.Code != "print('Fizz')" || got.Language != "python" || got.Problem.ID != "p1" {
		t.Fatalf("unexpected request payload: %+v", got)
	}
}

func TestEvaluateRejectsNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	if _, err := client.Evaluate(context.Background(), "x", sampleProblem(), "python"); err == nil {
		t.Fatalf("expected error on 503")
	}
}

func TestEvaluateHonorsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, 50*time.Millisecond)
	start := time.Now()
	if _, err := client.Evaluate(context.Background(), "x", sampleProblem(), "python"); err == nil {
		t.Fatalf("expected timeout error")
	}
	if time.Since(start) > 400*time.Millisecond {
		t.Fatalf("timeout did not bound the call")
	}
}

func TestDisabledAlwaysFails(t *testing.T) {
	if _, err := (Disabled{}).Evaluate(context.Background(), "x", sampleProblem(), "python"); err != ErrUnavailable {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
