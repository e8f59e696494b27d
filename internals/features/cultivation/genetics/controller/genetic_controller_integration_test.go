package controller_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	bModel "growlog_backend/internals/features/cultivation/batches/model"
	gModel "growlog_backend/internals/features/cultivation/genetics/model"
	gRoute "growlog_backend/internals/features/cultivation/genetics/route"
	pModel "growlog_backend/internals/features/cultivation/plants/model"
	helperAuth "growlog_backend/internals/helpers/auth"
	"growlog_backend/internals/testutil"
)

func newGeneticApp(db *gorm.DB, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	api := app.Group("/api/u", func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocUserID, userID.String())
		return c.Next()
	})
	gRoute.GeneticRoutes(api, db)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]any
	if len(raw) > 0 && json.Valid(raw) {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp.StatusCode, payload
}

func dataField(t *testing.T, payload map[string]any) map[string]any {
	t.Helper()
	data, ok := payload["data"].(map[string]any)
	require.True(t, ok, "response has no data object: %v", payload)
	return data
}

func TestGeneticCreateAssignsSlug(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedTestUser(t, db)
	app := newGeneticApp(db, user.ID)

	code, payload := doJSON(t, app, "POST", "/api/u/genetics/", fiber.Map{
		"genetic_name":          "Blue Dream",
		"genetic_type":          "hybrid",
		"genetic_thc_potential": 12.5,
	})
	require.Equal(t, fiber.StatusCreated, code)

	data := dataField(t, payload)
	assert.Equal(t, "blue-dream", data["genetic_slug"])
	assert.Equal(t, 12.5, data["genetic_thc_potential"])
}

func TestGeneticDuplicateNameGetsSuffixedSlug(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedTestUser(t, db)
	app := newGeneticApp(db, user.ID)

	code, first := doJSON(t, app, "POST", "/api/u/genetics/", fiber.Map{
		"genetic_name": "Blue Dream", "genetic_type": "hybrid",
	})
	require.Equal(t, fiber.StatusCreated, code)
	assert.Equal(t, "blue-dream", dataField(t, first)["genetic_slug"])

	code, second := doJSON(t, app, "POST", "/api/u/genetics/", fiber.Map{
		"genetic_name": "Blue Dream", "genetic_type": "sativa",
	})
	require.Equal(t, fiber.StatusCreated, code)
	slug, _ := dataField(t, second)["genetic_slug"].(string)
	assert.Regexp(t, regexp.MustCompile(`^blue-dream-\d{4}$`), slug)

	// both rows kept their own names
	var count int64
	require.NoError(t, db.Model(&gModel.GeneticModel{}).Where("genetic_name = ?", "Blue Dream").Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestGeneticGetBySlugEmptyAggregates(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedTestUser(t, db)
	app := newGeneticApp(db, user.ID)

	code, _ := doJSON(t, app, "POST", "/api/u/genetics/", fiber.Map{
		"genetic_name": "Northern Lights", "genetic_type": "indica",
	})
	require.Equal(t, fiber.StatusCreated, code)

	code, payload := doJSON(t, app, "GET", "/api/u/genetics/by-slug/northern-lights", nil)
	require.Equal(t, fiber.StatusOK, code)

	data := dataField(t, payload)
	assert.EqualValues(t, 0, data["plants_count"])
	assert.EqualValues(t, 0, data["batches_count"])

	plants, ok := data["plants"].([]any)
	require.True(t, ok, "plants must be a JSON array, got %T", data["plants"])
	assert.Empty(t, plants)

	batches, ok := data["batches"].([]any)
	require.True(t, ok, "batches must be a JSON array, got %T", data["batches"])
	assert.Empty(t, batches)
}

func TestGeneticGetBySlugWithRelations(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedTestUser(t, db)
	app := newGeneticApp(db, user.ID)

	code, created := doJSON(t, app, "POST", "/api/u/genetics/", fiber.Map{
		"genetic_name": "Durban Poison", "genetic_type": "sativa",
	})
	require.Equal(t, fiber.StatusCreated, code)
	geneticID := uuid.MustParse(dataField(t, created)["genetic_id"].(string))

	batch := &bModel.BatchModel{
		BatchName:      "Run 1",
		BatchGeneticID: geneticID,
		BatchStartDate: mustDate(t, "2026-03-01"),
		BatchStatus:    bModel.BatchStatusActive,
		BatchOwnerID:   user.ID,
	}
	require.NoError(t, db.Create(batch).Error)

	plant := &pModel.PlantModel{
		PlantGeneticID:    &geneticID,
		PlantSource:       pModel.PlantSourceSeed,
		PlantStage:        pModel.PlantStageVegetative,
		PlantGeneration:   1,
		PlantHealthStatus: pModel.PlantHealthHealthy,
		PlantCreatedBy:    user.ID,
	}
	require.NoError(t, db.Create(plant).Error)

	code, payload := doJSON(t, app, "GET", "/api/u/genetics/by-slug/durban-poison", nil)
	require.Equal(t, fiber.StatusOK, code)

	data := dataField(t, payload)
	assert.EqualValues(t, 1, data["plants_count"])
	assert.EqualValues(t, 1, data["batches_count"])

	plants := data["plants"].([]any)
	require.Len(t, plants, 1)
	assert.Equal(t, "vegetative", plants[0].(map[string]any)["plant_stage"])

	batches := data["batches"].([]any)
	require.Len(t, batches, 1)
	assert.Equal(t, "Run 1", batches[0].(map[string]any)["batch_name"])
}

func TestGeneticGetBySlugNotFound(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedTestUser(t, db)
	app := newGeneticApp(db, user.ID)

	code, _ := doJSON(t, app, "GET", "/api/u/genetics/by-slug/nope", nil)
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestGeneticListAlphabetical(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedTestUser(t, db)
	app := newGeneticApp(db, user.ID)

	for _, name := range []string{"Zkittlez", "amnesia Haze", "Mango Kush"} {
		code, _ := doJSON(t, app, "POST", "/api/u/genetics/", fiber.Map{
			"genetic_name": name, "genetic_type": "hybrid",
		})
		require.Equal(t, fiber.StatusCreated, code)
	}

	code, payload := doJSON(t, app, "GET", "/api/u/genetics/", nil)
	require.Equal(t, fiber.StatusOK, code)

	items := payload["data"].([]any)
	require.Len(t, items, 3)

	var names []string
	for _, it := range items {
		names = append(names, it.(map[string]any)["genetic_name"].(string))
	}
	assert.Equal(t, []string{"amnesia Haze", "Mango Kush", "Zkittlez"}, names)
}

func TestGeneticPotencyRoundTrip(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedTestUser(t, db)
	app := newGeneticApp(db, user.ID)

	code, created := doJSON(t, app, "POST", "/api/u/genetics/", fiber.Map{
		"genetic_name":          "OG Kush",
		"genetic_type":          "indica",
		"genetic_thc_potential": 12.5,
		"genetic_cbd_potential": 0.3,
	})
	require.Equal(t, fiber.StatusCreated, code)
	id := dataField(t, created)["genetic_id"].(string)

	code, fetched := doJSON(t, app, "GET", "/api/u/genetics/"+id, nil)
	require.Equal(t, fiber.StatusOK, code)

	data := dataField(t, fetched)
	assert.Equal(t, 12.5, data["genetic_thc_potential"])
	assert.Equal(t, 0.3, data["genetic_cbd_potential"])
}

func TestGeneticUpdateRenameRedrivesSlug(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedTestUser(t, db)
	app := newGeneticApp(db, user.ID)

	code, created := doJSON(t, app, "POST", "/api/u/genetics/", fiber.Map{
		"genetic_name": "Blue Dream", "genetic_type": "hybrid",
	})
	require.Equal(t, fiber.StatusCreated, code)
	id := dataField(t, created)["genetic_id"].(string)

	code, updated := doJSON(t, app, "PATCH", "/api/u/genetics/"+id, fiber.Map{
		"genetic_name": "Blue Dream Haze",
	})
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "blue-dream-haze", dataField(t, updated)["genetic_slug"])

	// patch without a name change keeps the slug
	code, updated = doJSON(t, app, "PATCH", "/api/u/genetics/"+id, fiber.Map{
		"genetic_breeder": "Humboldt Seed Co",
	})
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "blue-dream-haze", dataField(t, updated)["genetic_slug"])
}

func TestGeneticUpdateNullClearsColumn(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedTestUser(t, db)
	app := newGeneticApp(db, user.ID)

	code, created := doJSON(t, app, "POST", "/api/u/genetics/", fiber.Map{
		"genetic_name": "Blue Dream", "genetic_type": "hybrid",
		"genetic_breeder": "Humboldt Seed Co", "genetic_thc_potential": 21,
	})
	require.Equal(t, fiber.StatusCreated, code)
	id := dataField(t, created)["genetic_id"].(string)

	code, updated := doJSON(t, app, "PATCH", "/api/u/genetics/"+id, map[string]any{
		"genetic_breeder":       nil,
		"genetic_thc_potential": nil,
	})
	require.Equal(t, fiber.StatusOK, code)

	data := dataField(t, updated)
	assert.Nil(t, data["genetic_breeder"])
	assert.Nil(t, data["genetic_thc_potential"])
}

func TestGeneticDeletePreconditions(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedTestUser(t, db)
	app := newGeneticApp(db, user.ID)

	code, created := doJSON(t, app, "POST", "/api/u/genetics/", fiber.Map{
		"genetic_name": "Blue Dream", "genetic_type": "hybrid",
	})
	require.Equal(t, fiber.StatusCreated, code)
	id := dataField(t, created)["genetic_id"].(string)
	geneticID := uuid.MustParse(id)

	plant := &pModel.PlantModel{
		PlantGeneticID:    &geneticID,
		PlantSource:       pModel.PlantSourceSeed,
		PlantStage:        pModel.PlantStageSeedling,
		PlantGeneration:   1,
		PlantHealthStatus: pModel.PlantHealthHealthy,
		PlantCreatedBy:    user.ID,
	}
	require.NoError(t, db.Create(plant).Error)

	// blocked by the plant reference
	code, _ = doJSON(t, app, "DELETE", "/api/u/genetics/"+id, nil)
	assert.Equal(t, fiber.StatusPreconditionFailed, code)

	// the row survives the refusal
	code, _ = doJSON(t, app, "GET", "/api/u/genetics/"+id, nil)
	assert.Equal(t, fiber.StatusOK, code)

	// swap the plant for a batch; still blocked, different dependency
	require.NoError(t, db.Delete(&pModel.PlantModel{}, "plant_id = ?", plant.PlantID).Error)
	batch := &bModel.BatchModel{
		BatchName:      "Run 1",
		BatchGeneticID: geneticID,
		BatchStartDate: mustDate(t, "2026-03-01"),
		BatchStatus:    bModel.BatchStatusActive,
		BatchOwnerID:   user.ID,
	}
	require.NoError(t, db.Create(batch).Error)

	code, _ = doJSON(t, app, "DELETE", "/api/u/genetics/"+id, nil)
	assert.Equal(t, fiber.StatusPreconditionFailed, code)

	// free of dependencies, the delete goes through
	require.NoError(t, db.Delete(&bModel.BatchModel{}, "batch_id = ?", batch.BatchID).Error)

	code, _ = doJSON(t, app, "DELETE", "/api/u/genetics/"+id, nil)
	assert.Equal(t, fiber.StatusOK, code)

	code, _ = doJSON(t, app, "GET", "/api/u/genetics/"+id, nil)
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestGeneticCreateValidation(t *testing.T) {
	db := testutil.OpenTestDB(t)
	user := testutil.SeedTestUser(t, db)
	app := newGeneticApp(db, user.ID)

	code, _ := doJSON(t, app, "POST", "/api/u/genetics/", fiber.Map{
		"genetic_name": "X", "genetic_type": "hybrid",
	})
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = doJSON(t, app, "POST", "/api/u/genetics/", fiber.Map{
		"genetic_name": "Blue Dream", "genetic_type": "ruderalis",
	})
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	out, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return out
}
