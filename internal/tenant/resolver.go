package tenant

import (
	"context"
	"net"
	"strings"

	"taleschool_backend/platform/apperr"
	"taleschool_backend/platform/config"
	"taleschool_backend/platform/httpkit"
	"taleschool_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// SchoolFinder looks up a school by its subdomain slug (case-sensitive).
type SchoolFinder interface {
	FindBySlug(ctx context.Context, slug string) (School, error)
}

// ErrSchoolNotFound is returned by finders when no school has the slug.
var ErrSchoolNotFound = apperr.NotFound("school not found")

// Resolver maps request hostnames to school contexts. Lookups go through an
// optional cache; a cache failure degrades to a direct store lookup.
type Resolver struct {
	finder SchoolFinder
	cache  Cache
	cfg    config.TenantConfig
	log    *logger.Logger
}

// NewResolver creates a hostname tenant resolver.
func NewResolver(finder SchoolFinder, cache Cache, cfg config.TenantConfig, log *logger.Logger) *Resolver {
	return &Resolver{finder: finder, cache: cache, cfg: cfg, log: log}
}

// ParseHost extracts the tenant slug from a request hostname.
//
// Platform context (ok == false) for: IP literals, localhost/loopback, the
// base domain itself, the API domain, and any hostname not under the base
// domain. The last case is a deliberate fail-open policy: unknown hosts are
// treated as platform scope, matching only subdomains of the configured base
// domain. A label with embedded dots is cut at its first segment, so deeper
// nesting cannot smuggle a different slug.
func ParseHost(host, baseDomain, apiDomain string) (string, bool) {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")

	if host == "" || host == "localhost" || net.ParseIP(host) != nil {
		return "", false
	}
	if host == baseDomain || host == apiDomain {
		return "", false
	}
	if !strings.HasSuffix(host, "."+baseDomain) {
		return "", false
	}

	label := strings.TrimSuffix(host, "."+baseDomain)
	if i := strings.IndexByte(label, '.'); i >= 0 {
		label = label[:i]
	}
	if label == "" || label == "www" {
		return "", false
	}
	return label, true
}

// Middleware resolves the request's tenant before anything else runs.
// Platform hosts pass through without touching the school store. A subdomain
// naming an unknown school fails with 404; a known but deactivated school
// fails with 400, telling the caller the school exists but is suspended.
func (r *Resolver) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		host := c.Request.Host

		slug, ok := ParseHost(host, r.cfg.GetBaseDomain(), r.cfg.GetAPIDomain())
		if !ok {
			c.Next()
			return
		}

		school, err := r.resolve(c.Request.Context(), slug)
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				httpkit.Error(c, 404, `school with subdomain "`+slug+`" not found`, nil)
			} else {
				httpkit.Error(c, 400, `school "`+slug+`" is currently inactive`, nil)
			}
			c.Abort()
			return
		}

		r.log.TenantEvent("resolved", host, slug)
		c.Set(ContextSchoolKey, school)
		c.Next()
	}
}

// resolve returns the active school for slug. Inactive schools yield a
// BadRequest error distinct from NotFound.
func (r *Resolver) resolve(ctx context.Context, slug string) (School, error) {
	school, cached := r.cachedSchool(ctx, slug)
	if !cached {
		var err error
		school, err = r.finder.FindBySlug(ctx, slug)
		if err != nil {
			return School{}, err
		}
		if r.cache != nil {
			r.cache.Set(ctx, slug, school)
		}
	}

	if !school.Active {
		return School{}, apperr.BadRequest("school is inactive")
	}
	return school, nil
}

func (r *Resolver) cachedSchool(ctx context.Context, slug string) (School, bool) {
	if r.cache == nil {
		return School{}, false
	}
	return r.cache.Get(ctx, slug)
}
