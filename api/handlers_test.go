/*
handlers_test.go - HTTP tests against the full router

Exercises the simulate endpoint, the scenario lifecycle
(save -> get -> run -> delete) and error mapping.
*/
package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stakeflow/compound-engine/api"
	"github.com/stakeflow/compound-engine/store/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	h := api.NewHandler(store, zerolog.Nop())
	srv := httptest.NewServer(api.NewRouter(h))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestRunSimulation(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/simulate", map[string]any{
		"initial_stake":  1000,
		"duration_years": 1,
		"start_date":     "2026-03-02",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decode[api.SimulationResponse](t, resp)
	require.NotEmpty(t, result.Years)

	// One year from a March start spans two calendar years.
	assert.Equal(t, 2026, result.Years[0].Year)
	assert.Len(t, result.Years, 2)
	assert.Greater(t, result.Years[len(result.Years)-1].Summary.EndStake, 1000.0)
}

func TestRunSimulation_InvalidParams(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/simulate", map[string]any{
		"start_date": "not-a-date",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestScenarioLifecycle(t *testing.T) {
	srv := newTestServer(t)

	// Save
	resp := postJSON(t, srv.URL+"/api/scenarios", map[string]any{
		"name":        "my network",
		"description": "one L1",
		"params": map[string]any{
			"initial_stake":  2000,
			"duration_years": 1,
			"start_date":     "2026-03-02",
			"partners": []map[string]any{
				{"id": "p1", "name": "Alice", "level": "L1", "initial_stake": 1500},
			},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	saved := decode[api.ScenarioDTO](t, resp)
	require.NotEmpty(t, saved.ID)
	assert.False(t, saved.Builtin)

	// Get
	getResp, err := http.Get(srv.URL + "/api/scenarios/" + saved.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	fetched := decode[api.ScenarioDTO](t, getResp)
	assert.Equal(t, "my network", fetched.Name)

	// List includes presets plus the saved one
	listResp, err := http.Get(srv.URL + "/api/scenarios")
	require.NoError(t, err)
	all := decode[[]api.ScenarioDTO](t, listResp)
	var builtins, user int
	for _, sc := range all {
		if sc.Builtin {
			builtins++
		} else {
			user++
		}
	}
	assert.Greater(t, builtins, 0)
	assert.Equal(t, 1, user)

	// Run
	runResp := postJSON(t, srv.URL+"/api/scenarios/"+saved.ID+"/run", nil)
	require.Equal(t, http.StatusOK, runResp.StatusCode)
	result := decode[api.SimulationResponse](t, runResp)
	assert.NotEmpty(t, result.Years)
	assert.NotEmpty(t, result.Years[0].Summary.PartnerSummaries)

	// Delete
	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/scenarios/"+saved.ID, nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	delResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	// Gone
	goneResp, err := http.Get(srv.URL + "/api/scenarios/" + saved.ID)
	require.NoError(t, err)
	goneResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, goneResp.StatusCode)
}

func TestRunScenario_Preset(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/scenarios/solo-investor/run", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decode[api.SimulationResponse](t, resp)
	assert.NotEmpty(t, result.Years)
}

func TestRunScenario_Unknown(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/scenarios/no-such-scenario/run", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeletePreset_Rejected(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/scenarios/solo-investor", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetRateTiers(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/rates/tiers")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tiers := decode[api.RateTiersResponse](t, resp)
	require.Len(t, tiers.ProfitShare, 6)
	require.Len(t, tiers.Commission, 5)
	assert.Equal(t, 0.6, tiers.ProfitShare[len(tiers.ProfitShare)-1].Share)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSaveScenario_MissingName(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/scenarios", map[string]any{
		"params": map[string]any{"initial_stake": 100},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
