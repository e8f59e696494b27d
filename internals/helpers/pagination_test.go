package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveFor(t *testing.T, target string, defaultPerPage, maxPerPage int) Paging {
	t.Helper()

	var got Paging
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, defaultPerPage, maxPerPage)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestResolvePaging(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := resolveFor(t, "/items", 25, 100)
		assert.Equal(t, Paging{Page: 1, PerPage: 25, Offset: 0, Limit: 25}, p)
	})

	t.Run("explicit page and per_page", func(t *testing.T) {
		p := resolveFor(t, "/items?page=3&per_page=10", 25, 100)
		assert.Equal(t, Paging{Page: 3, PerPage: 10, Offset: 20, Limit: 10}, p)
	})

	t.Run("legacy limit alias", func(t *testing.T) {
		p := resolveFor(t, "/items?limit=40", 25, 100)
		assert.Equal(t, 40, p.PerPage)
	})

	t.Run("capped at max", func(t *testing.T) {
		p := resolveFor(t, "/items?per_page=500", 25, 100)
		assert.Equal(t, 100, p.PerPage)
	})

	t.Run("garbage falls back", func(t *testing.T) {
		p := resolveFor(t, "/items?page=-2&per_page=zero", 25, 100)
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 25, p.PerPage)
	})
}

func TestBuildMeta(t *testing.T) {
	meta := BuildMeta(45, Paging{Page: 2, PerPage: 10}, 10)
	assert.Equal(t, int64(45), meta.Total)
	assert.Equal(t, 5, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
	assert.Equal(t, 10, meta.Count)

	last := BuildMeta(45, Paging{Page: 5, PerPage: 10}, 5)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)
}
