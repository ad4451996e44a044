package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func readyzStatus(t *testing.T, rdb *redis.Client) (int, string) {
	t.Helper()

	app := fiber.New()
	RegisterHealthRoutes(app, rdb)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/readyz", nil), 5000)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body error = %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestReadyzRedisUp(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	status, body := readyzStatus(t, rdb)
	if status != fiber.StatusOK || !strings.Contains(body, `"redis":"ok"`) {
		t.Fatalf("readyz = %d %s", status, body)
	}
}

func TestReadyzRedisDown(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	status, body := readyzStatus(t, rdb)
	if status != fiber.StatusServiceUnavailable || !strings.Contains(body, `"redis":"down"`) {
		t.Fatalf("readyz = %d %s", status, body)
	}
}

func TestReadyzWithoutRedis(t *testing.T) {
	t.Parallel()

	status, body := readyzStatus(t, nil)
	if status != fiber.StatusOK || !strings.Contains(body, `"sessionStore":"memory"`) {
		t.Fatalf("readyz = %d %s", status, body)
	}
}

func TestLivez(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	RegisterHealthRoutes(app, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/livez", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("livez = %d, want 200", resp.StatusCode)
	}
}
