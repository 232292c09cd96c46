// api_test.go: shared test setup for the API package
package api

import (
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ahvenlahti/arkiv/internal/conf"
	"github.com/ahvenlahti/arkiv/internal/datastore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// go-cache runs a janitor goroutine for the lifetime of each cache
		goleak.IgnoreTopFunction("github.com/patrickmn/go-cache.(*janitor).Run"),
	)
}

// setupTestController creates a controller backed by a temporary SQLite store.
func setupTestController(t *testing.T) (*echo.Echo, *Controller) {
	t.Helper()

	settings := &conf.Settings{}
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = t.TempDir() + "/test.db"

	store := datastore.New(settings)
	require.NoError(t, store.Open(), "Failed to open database")
	t.Cleanup(func() {
		require.NoError(t, store.Close(), "Failed to close datastore")
	})

	e := echo.New()
	controller := New(e, store, settings, nil)

	return e, controller
}
