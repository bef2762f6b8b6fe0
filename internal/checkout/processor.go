package checkout

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"academy-api/pkg/cerror"
	"academy-api/pkg/config"
)

const processorRequestTimeout = 30 * time.Second

// ProcessorClient is the thin hand-off to the external payment processor.
// The processor owns all payment logic; this client only forwards payloads
// with the shared secret attached.
type ProcessorClient interface {
	CreateCheckoutSession(ctx context.Context, request *checkoutRequest) (*CheckoutSession, error)
}

type processorClient struct {
	httpClient      *http.Client
	processorConfig config.ProcessorConfig
}

func NewProcessorClient(processorConfig config.ProcessorConfig) ProcessorClient {
	return &processorClient{
		httpClient: &http.Client{
			Timeout: processorRequestTimeout,
		},
		processorConfig: processorConfig,
	}
}

func (c *processorClient) CreateCheckoutSession(
	ctx context.Context,
	request *checkoutRequest,
) (*CheckoutSession, error) {
	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while marshal checkout request",
			zap.Error(err),
		)
	}

	httpRequest, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.processorConfig.Url+"/checkout-sessions",
		bytes.NewReader(requestBody),
	)
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while build processor request",
			zap.Error(err),
		)
	}
	httpRequest.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	httpRequest.Header.Set("x-processor-key", c.processorConfig.Key)

	response, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return nil, processorUnavailableError(err)
	}
	defer response.Body.Close() //nolint:errcheck

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return nil, cerror.NewError(
			fiber.StatusBadGateway,
			"payment processor request failed",
			zap.Int("processorStatusCode", response.StatusCode),
		).SetSeverity(zapcore.WarnLevel)
	}

	var session CheckoutSession
	err = json.NewDecoder(response.Body).Decode(&session)
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusBadGateway,
			"error occurred while decode processor response",
			zap.Error(err),
		)
	}

	return &session, nil
}

func processorUnavailableError(err error) *cerror.CustomError {
	return cerror.NewError(
		fiber.StatusBadGateway,
		"payment processor is unreachable",
		zap.Error(err),
	).SetSeverity(zapcore.WarnLevel)
}
