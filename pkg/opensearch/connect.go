package opensearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/opensearch-project/opensearch-go/v2"
)

// New creates a client and checks the cluster answers.
func New(ctx context.Context, cfg Config) (*opensearch.Client, error) {
	client, err := opensearch.NewClient(opensearch.Config{
		Addresses:  cfg.Addresses,
		Username:   cfg.Username,
		Password:   cfg.Password,
		MaxRetries: cfg.MaxRetries,
	})
	if err != nil {
		return nil, errors.Join(ErrConnectionFailed, err)
	}
	if err := Healthcheck(client)(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

func Healthcheck(client *opensearch.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		res, err := client.Info(client.Info.WithContext(ctx))
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		defer res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("%w: %s", ErrHealthcheckFailed, res.Status())
		}
		return nil
	}
}

// EnsureIndex creates index with the given mapping unless it already exists.
func EnsureIndex(ctx context.Context, client *opensearch.Client, index, mapping string) error {
	res, err := client.Indices.Exists([]string{index}, client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return errors.Join(ErrIndexFailed, err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = client.Indices.Create(index,
		client.Indices.Create.WithContext(ctx),
		client.Indices.Create.WithBody(strings.NewReader(mapping)),
	)
	if err != nil {
		return errors.Join(ErrIndexFailed, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("%w: create %s: %s", ErrIndexFailed, index, body)
	}
	return nil
}
