package router

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokakpati/shelter-api/internal/handler"
	"github.com/sokakpati/shelter-api/internal/repository"
)

// TestPetReadsBypassResponseCache pins down which public reads the cache
// fronts. The pet endpoints must answer without cache involvement so a
// staff decision on an adoption form is visible on the very next read.
// Redis and MySQL both point at a closed port: the cache middleware still
// marks the responses it fronts with an X-Cache header, and the handlers
// answer 500, which is irrelevant here.
func TestPetReadsBypassResponseCache(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	db, err := sql.Open("mysql", "u@tcp(127.0.0.1:1)/x")
	require.NoError(t, err)
	defer db.Close()
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})

	h := Handlers{
		Pets:      handler.NewPetHandler(repository.NewPetRepo(db)),
		Donations: handler.NewDonationHandler(repository.NewDonationRepo(db)),
		Team:      handler.NewTeamHandler(repository.NewTeamRepo(db)),
	}
	e := echo.New()
	RegisterPublic(e, h, rdb)

	serve := func(target string) http.Header {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Header()
	}

	assert.Empty(t, serve("/v1/pets").Get("X-Cache"), "pet list must not be cached")
	assert.Empty(t, serve("/v1/pets/1").Get("X-Cache"), "pet detail must not be cached")
	assert.Equal(t, "MISS", serve("/v1/team").Get("X-Cache"))
	assert.Equal(t, "MISS", serve("/v1/donations/approved").Get("X-Cache"))
}

func TestRegisteredRouteTable(t *testing.T) {
	e := echo.New()
	h := Handlers{}
	RegisterRoutes(e)
	RegisterPublic(e, h, nil)
	RegisterAuth(e, h)
	RegisterAdmin(e, h, "secret")

	got := make(map[string]bool)
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = true
	}

	want := []string{
		"GET /healthz",
		"GET /v1/pets",
		"GET /v1/pets/:id",
		"GET /v1/donations/approved",
		"GET /v1/team",
		"POST /v1/adoption-forms",
		"POST /v1/volunteer-forms",
		"POST /v1/contact-forms",
		"POST /v1/donations",
		"POST /v1/upload",
		"POST /v1/admin/login",
		"POST /v1/admin/refresh",
		"POST /v1/admin/logout",
		"GET /v1/me",
		"POST /v1/logout",
		"POST /v1/admin/register",
		"GET /v1/admin/users",
		"PUT /v1/admin/users/:id",
		"DELETE /v1/admin/users/:id",
		"GET /v1/admin/pets",
		"POST /v1/pets",
		"PUT /v1/pets/:id",
		"DELETE /v1/pets/:id",
		"GET /v1/adoption-forms",
		"PUT /v1/adoption-forms/:id/status",
		"DELETE /v1/adoption-forms/:id",
		"GET /v1/admin/forms",
		"PUT /v1/admin/forms/:id/status",
		"DELETE /v1/admin/forms/:id",
		"GET /v1/admin/donations",
		"PUT /v1/admin/donations/:id/status",
		"DELETE /v1/admin/donations/:id",
		"POST /v1/admin/team",
		"PUT /v1/admin/team/:id",
		"DELETE /v1/admin/team/:id",
	}
	for _, w := range want {
		assert.True(t, got[w], "missing route %s", w)
	}
}
