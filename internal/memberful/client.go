package memberful

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"juniorguru-sync/internal/components/assert"
	"juniorguru-sync/internal/components/telemetry"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("jgsync.memberful")

const (
	report_client_query = "client.query"
)

type ClientOptions struct {
	// GraphqlUrl is the full url of the GraphQL endpoint.
	GraphqlUrl string
	// ApiKey is sent as a bearer token.
	ApiKey string
	// RetryCount is how many times a failed request is retried, defaults to 3.
	RetryCount int
}

// Client talks to the Memberful GraphQL API.
type Client struct {
	http *resty.Client
	url  string
	tel  telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) *Client {
	assert.NotNil(tel)
	assert.NotEmptyStr(opts.GraphqlUrl)

	tel = telemetry.NewScopedAPI("memberful", tel)

	retries := opts.RetryCount
	if retries == 0 {
		retries = 3
	}

	client := resty.New()
	client.SetAuthToken(opts.ApiKey)
	client.SetTimeout(time.Second * 60)
	client.SetRetryCount(retries)
	client.SetHeader("content-type", "application/json")
	telemetry.InstrumentResty(client, tel)

	return &Client{http: client, url: opts.GraphqlUrl, tel: tel}
}

type graphqlQueryObject struct {
	Name      string `json:"operationName,omitempty"`
	Variables any    `json:"variables"`
	Query     string `json:"query"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlQueryResult[Data any] struct {
	Data   Data           `json:"data"`
	Errors []graphqlError `json:"errors"`
}

func graphqlQuery[Output any](
	ctx context.Context,
	c *Client,
	name,
	query string,
	variables any,
) (Output, error) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("graphql:%s", name))
	defer span.End()

	span.SetAttributes(attribute.KeyValue{
		Key:   "custom.name",
		Value: attribute.StringValue(name),
	})
	serialized, err := json.Marshal(variables)
	if err == nil {
		span.SetAttributes(attribute.KeyValue{
			Key:   "custom.variables",
			Value: attribute.StringValue(string(serialized)),
		})
	}

	var defaultOut Output

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(graphqlQueryObject{
			Name:      name,
			Query:     query,
			Variables: variables,
		}).
		Post(c.url)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch")
		c.tel.ReportBroken(report_client_query, err, name)
		return defaultOut, fmt.Errorf("memberful %s: %w", name, err)
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "unexpected status")
		err := fmt.Errorf("memberful %s: unexpected status %s", name, res.Status())
		c.tel.ReportBroken(report_client_query, err, name)
		return defaultOut, err
	}

	var result graphqlQueryResult[Output]
	err = json.Unmarshal(res.Body(), &result)
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse json response")
		c.tel.ReportBroken(report_client_query, err, name)
		return defaultOut, fmt.Errorf("memberful %s: parse response: %w", name, err)
	}
	if len(result.Errors) > 0 {
		messages := make([]string, len(result.Errors))
		for i, e := range result.Errors {
			messages[i] = e.Message
		}
		err := errors.New(strings.Join(messages, "; "))
		span.SetStatus(codes.Error, "graphql errors")
		c.tel.ReportBroken(report_client_query, err, name)
		return defaultOut, fmt.Errorf("memberful %s: %w", name, err)
	}

	return result.Data, nil
}
