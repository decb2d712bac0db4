package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/trackable-go/trackable/pkg/collector"
	"github.com/trackable-go/trackable/pkg/trackable"
	"github.com/trackable-go/trackable/pkg/trackserver"
)

type LambdaCLI struct {
	ArchiveFlags `embed:""`
}

func (c *LambdaCLI) Run(logger *slog.Logger, tracker *trackable.Tracker) error {
	ctx := context.Background()

	sink, flush, err := c.eventLogger(ctx, logger)
	if err != nil {
		return err
	}
	defer flush()

	handler := trackserver.New(trackserver.Config{
		Tracker:     tracker,
		Logger:      logger,
		EventLogger: sink,
		Tally:       collector.NewTally(),
	})

	logger.Info("collector Lambda initialized")

	lambda.Start(func(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		return handleLambdaRequest(ctx, request, handler, logger)
	})
	return nil
}

func handleLambdaRequest(ctx context.Context, request events.APIGatewayV2HTTPRequest, handler http.Handler, logger *slog.Logger) (events.APIGatewayV2HTTPResponse, error) {
	target := request.RawPath
	if target == "" {
		target = "/"
	}
	if request.RawQueryString != "" {
		target += "?" + request.RawQueryString
	}

	req, err := http.NewRequestWithContext(ctx, request.RequestContext.HTTP.Method, target, nil)
	if err != nil {
		logger.Error("failed to create request", "error", err)
		return events.APIGatewayV2HTTPResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       "Internal server error",
		}, nil
	}

	for k, v := range request.Headers {
		req.Header.Set(k, v)
	}
	req.RemoteAddr = request.RequestContext.HTTP.SourceIP

	if request.Body != "" {
		req.Body = io.NopCloser(strings.NewReader(request.Body))
		req.ContentLength = int64(len(request.Body))
	}

	rw := &lambdaResponseWriter{headers: make(http.Header)}
	handler.ServeHTTP(rw, req)

	headers := make(map[string]string)
	for k, v := range rw.headers {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	status := rw.statusCode
	if status == 0 {
		status = http.StatusOK
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(rw.body),
	}, nil
}

// lambdaResponseWriter buffers a response for API Gateway.
type lambdaResponseWriter struct {
	headers    http.Header
	body       []byte
	statusCode int
}

func (w *lambdaResponseWriter) Header() http.Header {
	return w.headers
}

func (w *lambdaResponseWriter) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	if w.statusCode == 0 {
		w.statusCode = http.StatusOK
	}
	return len(b), nil
}

func (w *lambdaResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
}
