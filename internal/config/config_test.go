package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func clearEnv(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "DATABASE_PATH", "LOG_LEVEL", "THAI_FONT_PATH", "DOCUMENT_OUTPUT_DIR", "ROUTING_USER_AGENT"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "data/travel_expense.db", cfg.Database.Path)
	assert.Equal(t, "generated_forms", cfg.Document.OutputDir)
	assert.Equal(t, "TH Sarabun New", cfg.Document.WorkbookFont)
	assert.Equal(t, 110.0, cfg.Document.PreviewDPI)
	assert.True(t, cfg.Routing.Enabled)
	assert.Equal(t, "GovExpense-Distance-Calculator/1.0", cfg.Routing.UserAgent)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeFile(t, "config.yaml", `
server:
  port: 9000
  mode: debug
  allowed_origins:
    - http://localhost:5173
database:
  path: /var/lib/expense/app.db
document:
  output_dir: /tmp/forms
  excel_template: templates/form.xlsx
routing:
  enabled: false
regulation:
  grades:
    C1-C8:
      per_diem_daily: "250"
  mileage:
    motorcycle: "2.50"
  policy:
    meal_deduction: 1/4
`)
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_PATH", "/data/override.db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "/data/override.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "templates/form.xlsx", cfg.Document.ExcelTemplate)
	assert.False(t, cfg.Routing.Enabled)

	def, err := cfg.Regulation.Definition()
	require.NoError(t, err)
	assert.True(t, dec("250").Equal(def.Rates[entity.GradeC1ToC8].PerDiemDaily))
	assert.True(t, dec("270").Equal(def.Rates[entity.GradeC9ToC11].PerDiemDaily))
	assert.True(t, dec("2.5").Equal(def.Mileage[entity.VehicleMotorcycle]))
	assert.True(t, dec("4").Equal(def.Mileage[entity.VehiclePrivateCar]))
	assert.Equal(t, int64(4), def.Policy.MealDeduction.Denominator)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("invalid port", func(t *testing.T) {
		t.Setenv("PORT", "70000")
		_, err := Load("")
		assert.ErrorContains(t, err, "server.port")
	})

	t.Run("invalid regulation amount", func(t *testing.T) {
		path := writeFile(t, "config.yaml", `
regulation:
  mileage:
    private_car: four
`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "mileage.private_car")
	})

	t.Run("unknown grade key", func(t *testing.T) {
		path := writeFile(t, "config.yaml", `
regulation:
  grades:
    C12:
      per_diem_daily: "300"
`)
		_, err := Load(path)
		assert.ErrorIs(t, err, entity.ErrUnknownGrade)
	})
}

func TestRegulationConfig_Taxi(t *testing.T) {
	t.Run("tiers replace the defaults", func(t *testing.T) {
		cfg := RegulationConfig{Taxi: TaxiConfig{
			BaseFare: map[string]string{"intraprovince": "40"},
			Tiers: []TaxiTierConfig{
				{UpToKm: "10", PerKm: "7"},
				{PerKm: "9"},
			},
			RouteCap: map[string]string{"cross_other": "450"},
		}}

		def, err := cfg.Definition()
		require.NoError(t, err)
		require.Len(t, def.Taxi.Tiers, 2)
		assert.True(t, def.Taxi.Tiers[1].UpToKm.IsZero())
		assert.True(t, dec("40").Equal(def.Taxi.BaseFare[entity.TaxiIntraProvince]))
		assert.True(t, dec("450").Equal(def.Taxi.RouteCap[entity.TaxiCrossOther]))
		assert.True(t, dec("600").Equal(def.Taxi.RouteCap[entity.TaxiCrossBangkok]))

		tables, err := cfg.Tables()
		require.NoError(t, err)
		fare, err := tables.TaxiBaseFare(entity.TaxiIntraProvince)
		require.NoError(t, err)
		assert.True(t, dec("40").Equal(fare))
	})

	t.Run("tier without per_km", func(t *testing.T) {
		cfg := RegulationConfig{Taxi: TaxiConfig{Tiers: []TaxiTierConfig{{UpToKm: "10"}}}}
		_, err := cfg.Definition()
		assert.ErrorContains(t, err, "per_km is required")
	})

	t.Run("unknown route", func(t *testing.T) {
		cfg := RegulationConfig{Taxi: TaxiConfig{BaseFare: map[string]string{"moon": "10"}}}
		_, err := cfg.Definition()
		assert.Error(t, err)
	})

	t.Run("empty values keep defaults", func(t *testing.T) {
		cfg := RegulationConfig{Taxi: TaxiConfig{RouteCap: map[string]string{"intraprovince": ""}}}
		def, err := cfg.Definition()
		require.NoError(t, err)
		_, capped := def.Taxi.RouteCap[entity.TaxiIntraProvince]
		assert.False(t, capped)
	})
}

func TestRegulationConfig_TrainingMealsAndPolicy(t *testing.T) {
	cfg := RegulationConfig{
		TrainingMeals: map[string]map[string]MealRateConfig{
			"private": {"a": {Meal: "750"}},
		},
		Policy: PolicyConfig{
			PartialDayThreshold: "10h",
			HalfDayThreshold:    "0",
			OvernightCutoffHour: "1",
			MealDeduction:       "1/3",
		},
	}

	def, err := cfg.Definition()
	require.NoError(t, err)

	rate := def.TrainingMeals[entity.VenuePrivate][entity.TrainingTypeA]
	assert.True(t, dec("750").Equal(rate.Meal))
	assert.True(t, dec("50").Equal(rate.Snack))
	assert.Equal(t, 10*time.Hour, def.Policy.PartialDayThreshold)
	assert.Zero(t, def.Policy.HalfDayThreshold)
	assert.Equal(t, 1, def.Policy.OvernightCutoffHour)

	bad := RegulationConfig{Policy: PolicyConfig{MealDeduction: "a/b"}}
	_, err = bad.Definition()
	assert.ErrorContains(t, err, "policy.meal_deduction")

	bad = RegulationConfig{Policy: PolicyConfig{PartialDayThreshold: "twelve"}}
	_, err = bad.Definition()
	assert.ErrorContains(t, err, "policy.partial_day_threshold")
}

func TestParseFraction(t *testing.T) {
	f, err := parseFraction(" 2 / 5 ")
	require.NoError(t, err)
	assert.Equal(t, int64(2), f.Numerator)
	assert.Equal(t, int64(5), f.Denominator)

	f, err = parseFraction("1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.Denominator)
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "TRAVEL_EXPENSE_DOTENV_TEST=loaded\n")
	t.Setenv("TRAVEL_EXPENSE_DOTENV_TEST", "")
	require.NoError(t, os.Unsetenv("TRAVEL_EXPENSE_DOTENV_TEST"))

	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), path))
	assert.Equal(t, "loaded", os.Getenv("TRAVEL_EXPENSE_DOTENV_TEST"))
}

func TestToContainerConfig(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Regulation.Mileage = map[string]string{"private_car": "5"}

	cc, err := cfg.ToContainerConfig()
	require.NoError(t, err)
	require.NoError(t, cc.Validate())

	assert.Equal(t, cfg.Server.Port, cc.Server.Port)
	assert.Equal(t, cfg.Document.FontPath, cc.Document.FontPath)
	assert.Equal(t, cfg.Routing.RequestsPerSecond, cc.Routing.RequestsPerSecond)

	rate, err := cc.Tables.MileageRatePerKm(entity.VehiclePrivateCar)
	require.NoError(t, err)
	assert.True(t, dec("5").Equal(rate))

	cfg.Regulation.Mileage = map[string]string{"private_car": "x"}
	_, err = cfg.ToContainerConfig()
	assert.Error(t, err)
}
