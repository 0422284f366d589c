package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/joltage/config"
)

// wideLights has 65 lights, one more than the indicator search supports.
var wideLights = `[{"lights":"` + strings.Repeat(".", 64) + `#","buttons":[[64]],"targets":[` +
	strings.Repeat("0,", 64) + `0]}]`

const sampleJSON = `{"machines":[
{"lights":".##.","buttons":[[3],[1,3],[2],[2,3],[0,2],[0,1]],"targets":[3,5,4,7]},
{"buttons":[[0],[1]],"targets":[3,5]},
{"buttons":[[0],[1],[2]],"targets":[4,4,4]}]}`

func newTestServer(t *testing.T) *server {
	t.Helper()
	cfg := config.Default()
	cfg.Logging.Level = "error"
	s, err := newServer(cfg)
	require.NoError(t, err)

	return s
}

func post(body string) events.LambdaFunctionURLRequest {
	var req events.LambdaFunctionURLRequest
	req.Body = body
	req.RequestContext.HTTP.Method = http.MethodPost

	return req
}

func TestHandler_OK(t *testing.T) {
	resp, err := newTestServer(t).handler(context.Background(), post(sampleJSON))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Headers["Content-Type"])

	var got solveResult
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &got))
	require.Equal(t, 30, got.Total)
	require.Equal(t, 3, got.Machines)
	require.Equal(t, "joltage", got.Mode)
	require.NotEmpty(t, got.RunID)
}

func TestHandler_Base64AndMode(t *testing.T) {
	req := post(base64.StdEncoding.EncodeToString([]byte(`[{"lights":"#.","buttons":[[0],[0,1]],"targets":[0,0]}]`)))
	req.IsBase64Encoded = true
	req.QueryStringParameters = map[string]string{"mode": "indicator"}

	resp, err := newTestServer(t).handler(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)
	require.JSONEq(t, `{"total":1,"machines":1,"runId":"`+runID(t, resp.Body)+`","mode":"indicator"}`, resp.Body)
}

func TestHandler_Errors(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name string
		req  events.LambdaFunctionURLRequest
		code int
	}{
		{"bad json", post(`{"machines":[`), http.StatusBadRequest},
		{"malformed machine", post(`[{"buttons":[[2]],"targets":[1]}]`), http.StatusBadRequest},
		{"infeasible", post(`[{"buttons":[[0,1],[1]],"targets":[2,1]}]`), http.StatusUnprocessableEntity},
		{"too many lights", func() events.LambdaFunctionURLRequest {
			r := post(wideLights)
			r.QueryStringParameters = map[string]string{"mode": "indicator"}
			return r
		}(), http.StatusBadRequest},
		{"bad base64", func() events.LambdaFunctionURLRequest {
			r := post("%%%")
			r.IsBase64Encoded = true
			return r
		}(), http.StatusBadRequest},
		{"bad mode", func() events.LambdaFunctionURLRequest {
			r := post(sampleJSON)
			r.QueryStringParameters = map[string]string{"mode": "both"}
			return r
		}(), http.StatusBadRequest},
		{"wrong method", func() events.LambdaFunctionURLRequest {
			r := post(sampleJSON)
			r.RequestContext.HTTP.Method = http.MethodGet
			return r
		}(), http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := s.handler(context.Background(), tt.req)
			require.NoError(t, err)
			require.Equal(t, tt.code, resp.StatusCode, resp.Body)

			var body map[string]string
			require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
			require.NotEmpty(t, body["error"])
		})
	}
}

func TestHandler_InfeasibleMessage(t *testing.T) {
	resp, err := newTestServer(t).handler(context.Background(), post(`[{"targets":[0]},{"buttons":[[0,1]],"targets":[1,2]}]`))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.JSONEq(t, `{"error":"no feasible solution for machine 1"}`, resp.Body)
}

func runID(t *testing.T, body string) string {
	t.Helper()
	var got solveResult
	require.NoError(t, json.Unmarshal([]byte(body), &got))

	return got.RunID
}

// TestHandler_Budget answers 422 when the search gives up.
func TestHandler_Budget(t *testing.T) {
	s := newTestServer(t)
	s.cfg.Solver.MaxNodes = 1
	resp, err := s.handler(context.Background(), post(sampleJSON))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, resp.Body)
}

// TestHandler_Metrics: GET /metrics reports the invocations served so far.
func TestHandler_Metrics(t *testing.T) {
	s := newTestServer(t)
	_, err := s.handler(context.Background(), post(sampleJSON))
	require.NoError(t, err)

	req := post(wideLights)
	req.QueryStringParameters = map[string]string{"mode": "indicator"}
	_, err = s.handler(context.Background(), req)
	require.NoError(t, err)

	var get events.LambdaFunctionURLRequest
	get.RawPath = "/metrics"
	get.RequestContext.HTTP.Method = http.MethodGet
	resp, err := s.handler(context.Background(), get)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Headers["Content-Type"], "text/plain")
	require.Contains(t, resp.Body, `joltage_batch_machines_total{mode="joltage",outcome="ok"} 3`)
	require.Contains(t, resp.Body, `joltage_batch_machines_total{mode="indicator",outcome="invalid"} 1`)
	require.Contains(t, resp.Body, `joltage_batch_runs_total{mode="indicator",outcome="invalid"} 1`)
}
