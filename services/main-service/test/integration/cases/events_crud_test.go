//go:build integration

package cases

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvents_PublishThenFreeze(t *testing.T) {
	e := setup(t)
	owner := createUser(t, e, "owner")
	cat := createCategory(t, e, "concerts")
	id := createEvent(t, e, owner, cat, "Integration event", 0)

	code, _ := doJSON(t, http.MethodGet, fmt.Sprintf("%s/events/%d", e.BaseURL, id), "", nil)
	assert.Equal(t, http.StatusNotFound, code, "pending events are not public")

	publish(t, e, id)

	code, env := doJSON(t, http.MethodGet, fmt.Sprintf("%s/events/%d", e.BaseURL, id), "", nil)
	require.Equal(t, http.StatusOK, code, "%+v", env.Error)
	assert.Equal(t, "PUBLISHED", decodeID(t, env).State)

	code, env = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/users/%d/events/%d", e.BaseURL, owner, id), "",
		map[string]any{"title": "Renamed"})
	require.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "event_not_modifiable", env.Error.Code)

	code, env = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/admin/events/%d", e.BaseURL, id), e.AdminToken,
		map[string]any{"stateAction": "REJECT_EVENT"})
	require.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "not_authorized", env.Error.Code)
}

func TestAdmin_RequiresToken(t *testing.T) {
	e := setup(t)

	code, _ := doJSON(t, http.MethodGet, e.BaseURL+"/admin/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = doJSON(t, http.MethodGet, e.BaseURL+"/admin/users", e.AdminToken, nil)
	assert.Equal(t, http.StatusOK, code)
}
