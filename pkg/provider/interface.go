package provider

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"github.com/theapemachine/conductor-go/pkg/errors"
)

// Params describes one directive-generation request.
type Params struct {
	System      string
	User        string
	Model       string
	Temperature float64
	MaxTokens   int64
}

/*
Interface is the boundary to the external text generator. Implementations
perform a single completion; retry behavior is layered on top via
WithRetry so the backoff policy stays in one place.
*/
type Interface interface {
	Generate(ctx context.Context, params Params) (string, error)
}

// FromConfig selects a provider by the configured name.
func FromConfig() (Interface, error) {
	v := viper.GetViper()

	name := v.GetString("provider.name")

	switch name {
	case "anthropic", "":
		return WithRetry(NewAnthropicProvider(os.Getenv("ANTHROPIC_API_KEY"))), nil
	case "openai":
		return WithRetry(NewOpenAIProvider(os.Getenv("OPENAI_API_KEY"))), nil
	}

	return nil, fmt.Errorf("unknown provider: %s", name)
}

type retrying struct {
	inner  Interface
	config *errors.RetryConfig
}

// WithRetry wraps a provider in exponential backoff retry logic.
func WithRetry(inner Interface) Interface {
	return &retrying{
		inner:  inner,
		config: errors.DefaultRetryConfig(),
	}
}

func (r *retrying) Generate(ctx context.Context, params Params) (string, error) {
	var out string

	err := errors.RetryWithBackoff(r.config, func() error {
		var innerErr error
		out, innerErr = r.inner.Generate(ctx, params)
		return innerErr
	})

	return out, err
}
