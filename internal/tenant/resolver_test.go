package tenant

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"taleschool_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	testBaseDomain = "taleschool.taldev.xyz"
	testAPIDomain  = "api-taleschool.taldev.xyz"
)

type fakeTenantConfig struct{}

func (fakeTenantConfig) GetBaseDomain() string { return testBaseDomain }
func (fakeTenantConfig) GetAPIDomain() string  { return testAPIDomain }

type fakeFinder struct {
	schools map[string]School
	calls   int
}

func (f *fakeFinder) FindBySlug(ctx context.Context, slug string) (School, error) {
	f.calls++
	school, ok := f.schools[slug]
	if !ok {
		return School{}, ErrSchoolNotFound
	}
	return school, nil
}

func TestParseHost(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		wantSlug string
		wantOK   bool
	}{
		{"base domain is platform", testBaseDomain, "", false},
		{"api domain is platform", testAPIDomain, "", false},
		{"localhost is platform", "localhost", "", false},
		{"localhost with port is platform", "localhost:8080", "", false},
		{"ipv4 is platform", "127.0.0.1", "", false},
		{"ipv4 with port is platform", "192.168.1.10:8080", "", false},
		{"ipv6 is platform", "[::1]:8080", "", false},
		{"unrelated host is platform", "example.com", "", false},
		{"lookalike suffix is platform", "eviltaleschool.taldev.xyz", "", false},
		{"subdomain resolves", "abc." + testBaseDomain, "abc", true},
		{"subdomain with port resolves", "abc." + testBaseDomain + ":443", "abc", true},
		{"nested label cut at first segment", "abc.extra." + testBaseDomain, "abc", true},
		{"www is platform", "www." + testBaseDomain, "", false},
		{"hyphenated slug resolves", "xyz-school." + testBaseDomain, "xyz-school", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slug, ok := ParseHost(tt.host, testBaseDomain, testAPIDomain)
			if ok != tt.wantOK || slug != tt.wantSlug {
				t.Fatalf("ParseHost(%q) = (%q, %v), want (%q, %v)", tt.host, slug, ok, tt.wantSlug, tt.wantOK)
			}
		})
	}
}

func newResolverRouter(finder *fakeFinder, cache Cache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	resolver := NewResolver(finder, cache, fakeTenantConfig{}, logger.New("test"))

	engine := gin.New()
	engine.Use(resolver.Middleware())
	engine.GET("/probe", func(c *gin.Context) {
		if school, ok := ResolvedSchool(c); ok {
			c.JSON(http.StatusOK, gin.H{"slug": school.Slug})
			return
		}
		c.JSON(http.StatusOK, gin.H{"slug": nil})
	})
	return engine
}

func TestResolverPlatformHostSkipsStore(t *testing.T) {
	finder := &fakeFinder{}
	engine := newResolverRouter(finder, nil)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Host = testBaseDomain
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if finder.calls != 0 {
		t.Fatalf("expected no store lookups for platform host, got %d", finder.calls)
	}
}

func TestResolverUnknownSlugReturns404(t *testing.T) {
	finder := &fakeFinder{schools: map[string]School{}}
	engine := newResolverRouter(finder, nil)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Host = "ghost." + testBaseDomain
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown slug, got %d", rec.Code)
	}
}

func TestResolverInactiveSchoolReturns400(t *testing.T) {
	finder := &fakeFinder{schools: map[string]School{
		"abc": {ID: uuid.New(), Name: "ABC School", Slug: "abc", Active: false},
	}}
	engine := newResolverRouter(finder, nil)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Host = "abc." + testBaseDomain
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inactive school, got %d", rec.Code)
	}
}

func TestResolverActiveSchoolAttachesContext(t *testing.T) {
	finder := &fakeFinder{schools: map[string]School{
		"abc": {ID: uuid.New(), Name: "ABC School", Slug: "abc", Active: true},
	}}
	engine := newResolverRouter(finder, nil)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Host = "abc." + testBaseDomain
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"slug":"abc"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

type mapCache struct {
	entries map[string]School
}

func (m *mapCache) Get(ctx context.Context, slug string) (School, bool) {
	school, ok := m.entries[slug]
	return school, ok
}

func (m *mapCache) Set(ctx context.Context, slug string, school School) {
	m.entries[slug] = school
}

func (m *mapCache) Invalidate(ctx context.Context, slug string) {
	delete(m.entries, slug)
}

func TestResolverCacheHitSkipsStore(t *testing.T) {
	finder := &fakeFinder{schools: map[string]School{}}
	cache := &mapCache{entries: map[string]School{
		"abc": {ID: uuid.New(), Name: "ABC School", Slug: "abc", Active: true},
	}}
	engine := newResolverRouter(finder, cache)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Host = "abc." + testBaseDomain
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from cache hit, got %d", rec.Code)
	}
	if finder.calls != 0 {
		t.Fatalf("expected no store lookups on cache hit, got %d", finder.calls)
	}
}

func TestResolverCacheMissFallsThroughAndCaches(t *testing.T) {
	finder := &fakeFinder{schools: map[string]School{
		"abc": {ID: uuid.New(), Name: "ABC School", Slug: "abc", Active: true},
	}}
	cache := &mapCache{entries: map[string]School{}}
	engine := newResolverRouter(finder, cache)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Host = "abc." + testBaseDomain
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if finder.calls != 1 {
		t.Fatalf("expected one store lookup, got %d", finder.calls)
	}
	if _, ok := cache.entries["abc"]; !ok {
		t.Fatal("expected resolved school to be cached")
	}
}
