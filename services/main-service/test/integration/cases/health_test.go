//go:build integration

package cases

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthz(t *testing.T) {
	e := setup(t)
	resp, err := http.Get(e.BaseURL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEvents_SearchAndPaging(t *testing.T) {
	e := setup(t)
	owner := createUser(t, e, "owner")
	cat := createCategory(t, e, "workshops")

	for i := 1; i <= 5; i++ {
		id := createEvent(t, e, owner, cat, fmt.Sprintf("Golang workshop %d", i), 0)
		publish(t, e, id)
	}
	createEvent(t, e, owner, cat, "Unpublished draft", 0)

	code, env := doJSON(t, http.MethodGet, e.BaseURL+"/events?text=GOLANG&from=0&size=2", "", nil)
	require.Equal(t, http.StatusOK, code)
	var first []idResp
	require.NoError(t, json.Unmarshal(env.Data, &first))
	assert.Len(t, first, 2)

	code, env = doJSON(t, http.MethodGet, e.BaseURL+"/events?text=GOLANG&from=2&size=2", "", nil)
	require.Equal(t, http.StatusOK, code)
	var second []idResp
	require.NoError(t, json.Unmarshal(env.Data, &second))
	require.Len(t, second, 2)
	assert.NotEqual(t, first[1].ID, second[0].ID)

	code, env = doJSON(t, http.MethodGet, e.BaseURL+"/events?text=draft", "", nil)
	require.Equal(t, http.StatusOK, code)
	var drafts []idResp
	require.NoError(t, json.Unmarshal(env.Data, &drafts))
	assert.Empty(t, drafts, "unpublished events stay out of public search")
}
