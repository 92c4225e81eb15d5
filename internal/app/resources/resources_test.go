package resources

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAssetsHandler_ServesEmbeddedFiles(t *testing.T) {
	h := AssetsHandler("/assets")

	for _, path := range []string{"/assets/css/site.css", "/assets/js/site.js"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want %d", path, rec.Code, http.StatusOK)
		}
		if cc := rec.Header().Get("Cache-Control"); !strings.Contains(cc, "max-age") {
			t.Errorf("GET %s Cache-Control = %q", path, cc)
		}
	}
}

func TestAssetsHandler_Missing(t *testing.T) {
	rec := httptest.NewRecorder()
	AssetsHandler("/assets").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/missing.css", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
