package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ripperk-go/ripperk/internal/dataset"
	"github.com/ripperk-go/ripperk/internal/model"
	"github.com/ripperk-go/ripperk/internal/rule"
	"github.com/ripperk-go/ripperk/internal/ruleset"
)

func buildSavedModel(t *testing.T, dir string) (path string, catalog *dataset.Catalog) {
	t.Helper()
	instances := []dataset.Instance{
		{Class: "rare", Attributes: []dataset.Attribute{{Name: "color", Type: dataset.Discrete, Value: dataset.DiscreteValue("red")}}},
		{Class: "common", Attributes: []dataset.Attribute{{Name: "color", Type: dataset.Discrete, Value: dataset.DiscreteValue("blue")}}},
	}
	cat := dataset.NewCatalog(instances)

	r := rule.New(cat)
	r.AddCondition(rule.Condition{Op: rule.EQ, AttrName: "color", AttrVal: dataset.DiscreteValue("red")})
	rs := ruleset.New()
	rs.AddRule(r)

	m := model.New(cat)
	m.Add("rare", rs)
	m.SetDefaultClass("common")

	path = filepath.Join(dir, "model.bin")
	if err := model.Save(m, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return path, cat
}

func TestHandleHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	cache, err := OpenModelCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("OpenModelCache: %v", err)
	}
	defer cache.Close()

	s := NewServer(cache, dataset.NewCatalog(nil), "", nil)
	req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	rec := httptest.NewRecorder()
	c, r := gin.CreateTestContext(rec)
	c.Request = req
	r.GET("/v1/healthz", s.handleHealthz)
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHandleClassify_EndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	modelPath, cat := buildSavedModel(t, dir)

	cache, err := OpenModelCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("OpenModelCache: %v", err)
	}
	defer cache.Close()

	s := NewServer(cache, cat, "", nil)

	body, _ := json.Marshal(ClassifyRequest{Attributes: map[string]string{"color": "red"}})
	req := httptest.NewRequest(http.MethodPost, "/v1/classify?model="+modelPath, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c, r := gin.CreateTestContext(rec)
	c.Request = req
	r.POST("/v1/classify", s.handleClassify)
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp ClassifyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Class != "rare" {
		t.Errorf("Class = %q, want %q", resp.Class, "rare")
	}
	if resp.RunID == "" {
		t.Error("RunID should not be empty")
	}
}

func TestRequireBearerToken_RejectsMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	cache, err := OpenModelCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("OpenModelCache: %v", err)
	}
	defer cache.Close()

	s := NewServer(cache, dataset.NewCatalog(nil), "secret", nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	rec := httptest.NewRecorder()
	c, r := gin.CreateTestContext(rec)
	c.Request = req
	r.Use(s.requireBearerToken)
	r.GET("/v1/healthz", s.handleHealthz)
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
