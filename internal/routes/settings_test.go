package routes

import (
	"net/http"
	"testing"

	"github.com/websoft9/inventory/internal/settings"
)

func TestSettingsGet_StockSerials(t *testing.T) {
	te := newTestEnv(t)
	defer te.cleanup()

	rec := te.do(t, http.MethodGet, "/api/ext/settings/stock", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := parseJSON(t, rec)
	serials, ok := body["serials"].(map[string]any)
	if !ok {
		t.Fatalf("expected serials group, got %v", body)
	}
	if serials["syncOnSave"] != true {
		t.Errorf("expected syncOnSave true, got %v", serials["syncOnSave"])
	}
}

func TestSettingsPatch_StockSerials(t *testing.T) {
	te := newTestEnv(t)
	defer te.cleanup()

	rec := te.do(t, http.MethodPatch, "/api/ext/settings/stock", `{"serials":{"syncOnSave":false}}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if settings.SerialsSyncOnSave(te.app) {
		t.Error("expected syncOnSave to be disabled after PATCH")
	}
}

func TestSettings_Rejections(t *testing.T) {
	te := newTestEnv(t)
	defer te.cleanup()

	cases := []struct {
		name   string
		method string
		url    string
		body   string
		want   int
	}{
		{"unknown module", http.MethodGet, "/api/ext/settings/docker", "", http.StatusBadRequest},
		{"unknown key", http.MethodPatch, "/api/ext/settings/stock", `{"quota":{}}`, http.StatusBadRequest},
		{"non-object value", http.MethodPatch, "/api/ext/settings/stock", `{"serials":true}`, http.StatusUnprocessableEntity},
	}
	for _, c := range cases {
		rec := te.do(t, c.method, c.url, c.body, true)
		if rec.Code != c.want {
			t.Errorf("%s: expected %d, got %d: %s", c.name, c.want, rec.Code, rec.Body.String())
		}
	}
}
