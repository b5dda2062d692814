package api

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TusharG27x/codebuddy/internal/client/client"
	"github.com/TusharG27x/codebuddy/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClientAgainstRouter(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t))
	t.Cleanup(srv.Close)

	c, err := client.NewHTTPClient(srv.URL+"/api/", 5*time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.Profile(ctx)
	require.ErrorIs(t, err, client.ErrUnauthorized)

	s, cr, err := c.Register(ctx, "Alice", "alice@example.com", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, "Alice", s.Name)
	assert.NotEmpty(t, s.UserID)
	c.UseCredentials(cr)

	_, _, err = c.Register(ctx, "Alice", "alice@example.com", []byte("pw"))
	assert.Equal(t, "User already exists", client.Message(err))

	p, err := c.UpdateProfile(ctx, "Al", "gopher")
	require.NoError(t, err)
	assert.Equal(t, models.Profile{Name: "Al", Email: "alice@example.com", Bio: "gopher"}, p)

	hint, err := c.Hint(ctx, "two sum", "x := 1")
	require.NoError(t, err)
	assert.NotEmpty(t, hint)

	raw, err := c.DashboardStats(ctx)
	require.NoError(t, err)
	var stats map[string]any
	require.NoError(t, json.Unmarshal(raw, &stats))
	assert.EqualValues(t, 1, stats["hintsRequested"])

	require.NoError(t, c.Logout(ctx))
	_, err = c.Profile(ctx)
	require.ErrorIs(t, err, client.ErrUnauthorized)

	_, _, err = c.Login(ctx, "alice@example.com", []byte("bad"))
	require.ErrorIs(t, err, client.ErrUnauthorized)

	_, cr, err = c.Login(ctx, "alice@example.com", []byte("pw"))
	require.NoError(t, err)
	c.UseCredentials(cr)
	_, err = c.Profile(ctx)
	require.NoError(t, err)
}
