package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeVisionAnalyzer struct {
	reply string
	err   error

	gotMIME  string
	gotImage []byte
	gotInstr []string
}

func (f *fakeVisionAnalyzer) AnalyzeImage(_ context.Context, instructions []string, mimeType string, image []byte) (string, error) {
	f.gotInstr = instructions
	f.gotMIME = mimeType
	f.gotImage = image
	return f.reply, f.err
}

func imageServer(t *testing.T, status int, contentType string, body []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
}

func TestVerifyEmptyDescription(t *testing.T) {
	v := NewImageVerifier(&fakeVisionAnalyzer{}, false)

	_, err := v.Verify(context.Background(), "http://example.com/a.jpg", "  ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestVerifyExtractsEmbeddedJSON(t *testing.T) {
	srv := imageServer(t, http.StatusOK, "image/jpeg", []byte("jpegbytes"))
	defer srv.Close()

	model := &fakeVisionAnalyzer{
		reply: `Lorem ipsum {"status":"verified","details":"ok"} dolor`,
	}
	v := NewImageVerifier(model, false)

	result, err := v.Verify(context.Background(), srv.URL+"/a.jpg", "flooding in Miami")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if result.Status != "verified" || result.Details != "ok" {
		t.Errorf("Unexpected result: %+v", result)
	}
	if model.gotMIME != "image/jpeg" {
		t.Errorf("Expected content type forwarded, got %q", model.gotMIME)
	}
	if string(model.gotImage) != "jpegbytes" {
		t.Error("Image bytes were not forwarded to the model")
	}

	found := false
	for _, in := range model.gotInstr {
		if in == "flooding in Miami" {
			found = true
		}
	}
	if !found {
		t.Error("Disaster description missing from instructions")
	}
}

func TestVerifyBareJSONReply(t *testing.T) {
	srv := imageServer(t, http.StatusOK, "image/png", []byte("png"))
	defer srv.Close()

	v := NewImageVerifier(&fakeVisionAnalyzer{
		reply: `{"status":"suspicious","details":"type of disaster does not match"}`,
	}, false)

	result, err := v.Verify(context.Background(), srv.URL, "hurricane in California")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if result.Status != "suspicious" {
		t.Errorf("Expected suspicious, got %q", result.Status)
	}
}

func TestVerifyUnparsableReply(t *testing.T) {
	srv := imageServer(t, http.StatusOK, "image/jpeg", []byte("x"))
	defer srv.Close()

	v := NewImageVerifier(&fakeVisionAnalyzer{
		reply: "I cannot tell whether this image is authentic.",
	}, false)

	_, err := v.Verify(context.Background(), srv.URL, "flooding")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("Expected ErrInvalidResponse, got %v", err)
	}
}

func TestVerifyFetchFailure(t *testing.T) {
	srv := imageServer(t, http.StatusNotFound, "text/plain", nil)
	defer srv.Close()

	v := NewImageVerifier(&fakeVisionAnalyzer{}, false)

	_, err := v.Verify(context.Background(), srv.URL, "flooding")
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("Expected ErrUpstream on 404 image fetch, got %v", err)
	}
}

func TestVerifyStrictStatus(t *testing.T) {
	srv := imageServer(t, http.StatusOK, "image/jpeg", []byte("x"))
	defer srv.Close()

	reply := `{"status":"maybe","details":"unclear"}`

	// Unknown statuses pass through when strict mode is off
	v := NewImageVerifier(&fakeVisionAnalyzer{reply: reply}, false)
	result, err := v.Verify(context.Background(), srv.URL, "flooding")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if result.Status != "maybe" {
		t.Errorf("Expected pass-through status, got %q", result.Status)
	}

	// Strict mode rejects unknown statuses
	strict := NewImageVerifier(&fakeVisionAnalyzer{reply: reply}, true)
	if _, err := strict.Verify(context.Background(), srv.URL, "flooding"); !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("Expected ErrInvalidResponse in strict mode, got %v", err)
	}
}

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name     string
		in       string
		expected string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"wrapped", `prose {"a":1} more`, `{"a":1}`},
		{"nested", `x {"a":{"b":2}} y`, `{"a":{"b":2}}`},
		{"brace in string", `{"details":"see } here"}`, `{"details":"see } here"}`},
		{"none", "no json here", ""},
		{"unbalanced", `{"a":1`, ""},
	}

	for _, tc := range cases {
		if got := extractJSONObject(tc.in); got != tc.expected {
			t.Errorf("%s: extractJSONObject(%q) = %q, expected %q", tc.name, tc.in, got, tc.expected)
		}
	}
}
