package classify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestClassifyText(t *testing.T) {
	var got struct {
		Text   string   `json:"text"`
		Labels []string `json:"candidate_labels"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/classify-text" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(map[string]string{"label": "casual wear"})
	}))
	defer server.Close()

	label, err := New(server.URL).ClassifyText(context.Background(),
		"coffee with friends", []string{"formal wear", "casual wear"})
	if err != nil {
		t.Fatalf("ClassifyText failed: %v", err)
	}
	if label != "casual wear" {
		t.Errorf("label = %q, want casual wear", label)
	}
	if got.Text != "coffee with friends" {
		t.Errorf("service received text %q", got.Text)
	}
	if !reflect.DeepEqual(got.Labels, []string{"formal wear", "casual wear"}) {
		t.Errorf("service received labels %v", got.Labels)
	}
}

func TestClassifyImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/classify-image" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parsing multipart form: %v", err)
		}
		if r.FormValue("candidate_labels") != "shirt,pants" {
			t.Errorf("candidate_labels = %q", r.FormValue("candidate_labels"))
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file field: %v", err)
		} else {
			file.Close()
		}
		json.NewEncoder(w).Encode(map[string]string{"label": "shirt"})
	}))
	defer server.Close()

	label, err := New(server.URL).ClassifyImage(context.Background(),
		[]byte{0xff, 0xd8}, []string{"shirt", "pants"})
	if err != nil {
		t.Fatalf("ClassifyImage failed: %v", err)
	}
	if label != "shirt" {
		t.Errorf("label = %q, want shirt", label)
	}
}

func TestClassifierErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	if _, err := New(server.URL).ClassifyText(context.Background(), "x", []string{"a"}); err == nil {
		t.Error("expected error for non-200 response")
	}

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer empty.Close()

	if _, err := New(empty.URL).ClassifyText(context.Background(), "x", []string{"a"}); err == nil {
		t.Error("expected error for empty label")
	}
}
