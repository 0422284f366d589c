// Command joltage-lambda serves the batch solver behind an AWS Lambda
// function URL.
//
//	POST /?mode=joltage   {"machines":[{"buttons":[[0],[1]],"targets":[3,5]}]}
//	→ 200 {"total":8,"machines":1,"runId":"…","mode":"joltage"}
//
// 400: bad body or invalid machine; 422: a machine has no solution or
// exhausted its search budget. GET /metrics returns the Prometheus metrics
// of the warm container. Solver, logging and trace settings come from the
// JOLTAGE_* environment; stdout spans go to the function log.
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/katalvlaran/joltage/batch"
	"github.com/katalvlaran/joltage/config"
	"github.com/katalvlaran/joltage/logging"
	"github.com/katalvlaran/joltage/machine"
	"github.com/katalvlaran/joltage/telemetry"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

type solveResult struct {
	Total    int    `json:"total"`
	Machines int    `json:"machines"`
	RunID    string `json:"runId"`
	Mode     string `json:"mode"`
}

// metricsPath serves the metrics on GET.
const metricsPath = "/metrics"

// server carries what every invocation shares.
type server struct {
	cfg batch.Config
	log *slog.Logger
	tel *telemetry.Telemetry
}

func newServer(cfg config.Config) (*server, error) {
	bc, err := cfg.BatchOptions()
	if err != nil {
		return nil, err
	}
	lc, err := cfg.LoggerConfig(os.Stderr)
	if err != nil {
		return nil, err
	}
	// Lambda logs are collected line by line; JSON keeps records intact.
	lc.Format = logging.FormatJSON
	bc.Logger = logging.New(lc)

	tel, err := telemetry.Init(cfg.TelemetryOptions("joltage-lambda", os.Stderr))
	if err != nil {
		return nil, err
	}
	bc.Metrics = tel.Metrics
	bc.Tracer = tel.Tracer()

	return &server{cfg: bc, log: bc.Logger, tel: tel}, nil
}

func (s *server) handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	switch m := event.RequestContext.HTTP.Method; {
	case m == http.MethodGet && event.RawPath == metricsPath:
		return s.metrics()
	case m != "" && m != http.MethodPost:
		return errResp(http.StatusMethodNotAllowed, "use POST")
	}
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(http.StatusBadRequest, "invalid base64 body")
		}
		body = string(decoded)
	}

	cfg := s.cfg
	if v, ok := event.QueryStringParameters["mode"]; ok {
		mode, err := batch.ParseMode(v)
		if err != nil {
			return errResp(http.StatusBadRequest, err.Error())
		}
		cfg.Mode = mode
	}

	machines, err := machine.ParseJSON([]byte(body))
	if err != nil {
		return errResp(http.StatusBadRequest, err.Error())
	}

	rep, err := batch.Run(ctx, machines, cfg)
	// The container may be frozen after the response; export spans now.
	if ferr := s.tel.Flush(ctx); ferr != nil {
		s.log.Warn("span flush failed", "run_id", rep.RunID, "error", ferr)
	}
	if err != nil {
		switch batch.Outcome(err) {
		case batch.OutcomeInfeasible, batch.OutcomeBudget:
			return errResp(http.StatusUnprocessableEntity, err.Error())
		case batch.OutcomeInvalid:
			return errResp(http.StatusBadRequest, err.Error())
		default:
			s.log.Error("solve failed", "run_id", rep.RunID, "error", err)
			return errResp(http.StatusInternalServerError, "internal error")
		}
	}

	resp, _ := json.Marshal(solveResult{
		Total:    rep.Total,
		Machines: len(machines),
		RunID:    rep.RunID,
		Mode:     rep.Mode.String(),
	})

	return events.LambdaFunctionURLResponse{StatusCode: http.StatusOK, Headers: jsonHeader, Body: string(resp)}, nil
}

// metrics renders the container's registry in the text exposition format.
func (s *server) metrics() (events.LambdaFunctionURLResponse, error) {
	var sb strings.Builder
	if err := s.tel.WriteMetrics(&sb); err != nil {
		s.log.Error("metrics failed", "error", err)
		return errResp(http.StatusInternalServerError, "internal error")
	}

	return events.LambdaFunctionURLResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "text/plain; version=0.0.4; charset=utf-8"},
		Body:       sb.String(),
	}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "joltage-lambda:", err)
		os.Exit(1)
	}
	s, err := newServer(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "joltage-lambda:", err)
		os.Exit(1)
	}
	lambda.Start(s.handler)
}
