package tenant

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"taleschool_backend/internal/auth/roles"
	"taleschool_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newGuardRouter(identity *httpkit.Identity, resolved *School) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		if identity != nil {
			c.Set(httpkit.ContextIdentityKey, *identity)
		}
		if resolved != nil {
			c.Set(ContextSchoolKey, *resolved)
		}
	})
	engine.Use(SchoolGuard())
	engine.GET("/probe", func(c *gin.Context) {
		id, ok := EffectiveSchoolID(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"effective": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"effective": id.String()})
	})
	return engine
}

func probe(engine *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestGuardRejectsMissingIdentity(t *testing.T) {
	rec := probe(newGuardRouter(nil, nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without identity, got %d", rec.Code)
	}
}

func TestGuardSuperAdminPassesWithoutSchool(t *testing.T) {
	identity := &httpkit.Identity{UserID: uuid.New(), Role: roles.SuperAdmin}
	rec := probe(newGuardRouter(identity, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for super admin, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"effective":null}` {
		t.Fatalf("expected no effective school on platform host, got %s", body)
	}
}

func TestGuardSuperAdminUsesResolvedSchool(t *testing.T) {
	schoolID := uuid.New()
	identity := &httpkit.Identity{UserID: uuid.New(), Role: roles.SuperAdmin}
	resolved := &School{ID: schoolID, Slug: "abc", Active: true}

	rec := probe(newGuardRouter(identity, resolved))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"effective":"`+schoolID.String()+`"}` {
		t.Fatalf("expected resolved school as effective, got %s", body)
	}
}

func TestGuardRejectsUserWithoutSchool(t *testing.T) {
	identity := &httpkit.Identity{UserID: uuid.New(), Role: roles.SchoolAdmin}
	rec := probe(newGuardRouter(identity, nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for school admin without school, got %d", rec.Code)
	}
}

func TestGuardRejectsCrossTenantAccess(t *testing.T) {
	ownSchool := uuid.New()
	identity := &httpkit.Identity{UserID: uuid.New(), Role: roles.Teacher, SchoolID: &ownSchool}
	resolved := &School{ID: uuid.New(), Slug: "other", Active: true}

	rec := probe(newGuardRouter(identity, resolved))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for cross-tenant access, got %d", rec.Code)
	}
}

func TestGuardMatchingSchoolPasses(t *testing.T) {
	schoolID := uuid.New()
	identity := &httpkit.Identity{UserID: uuid.New(), Role: roles.Teacher, SchoolID: &schoolID}
	resolved := &School{ID: schoolID, Slug: "abc", Active: true}

	rec := probe(newGuardRouter(identity, resolved))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for matching school, got %d", rec.Code)
	}
}

func TestGuardFallsBackToIdentitySchool(t *testing.T) {
	schoolID := uuid.New()
	identity := &httpkit.Identity{UserID: uuid.New(), Role: roles.SchoolAdmin, SchoolID: &schoolID}

	rec := probe(newGuardRouter(identity, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"effective":"`+schoolID.String()+`"}` {
		t.Fatalf("expected identity school as effective, got %s", body)
	}
}
