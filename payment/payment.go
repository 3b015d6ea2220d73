// Package payment abstracts the third-party payment processors. Both
// bundled providers are simulations: initiation resolves after a fixed
// delay with a generated reference and verification always reports
// success. A real-gateway adapter would implement the same Provider
// interface and be selected by configuration.
package payment

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// StatusSuccess is the verification status a settled payment reports.
const StatusSuccess = "success"

// Initiation is the result of starting a transaction. AuthorizationURL is
// where a redirect-based flow would send the customer.
type Initiation struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
}

// Verification is the provider's answer for a reference.
type Verification struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Provider is the payment processor capability consumed by checkout.
type Provider interface {
	Name() string
	Initiate(ctx context.Context, email string, amount int64) (Initiation, error)
	Verify(ctx context.Context, reference string) (Verification, error)
}

// simulated stands in for a real processor. There is no timeout of its
// own; callers that need one put it on the context.
type simulated struct {
	name        string
	prefix      string
	checkoutURL string
	delay       time.Duration
}

// NewPaystack returns the simulated Paystack provider.
func NewPaystack(delay time.Duration) Provider {
	return &simulated{
		name:        "paystack",
		prefix:      "PAY",
		checkoutURL: "https://checkout.paystack.com/",
		delay:       delay,
	}
}

// NewFlutterwave returns the simulated Flutterwave provider.
func NewFlutterwave(delay time.Duration) Provider {
	return &simulated{
		name:        "flutterwave",
		prefix:      "FLW",
		checkoutURL: "https://checkout.flutterwave.com/",
		delay:       delay,
	}
}

func (p *simulated) Name() string { return p.name }

func (p *simulated) Initiate(ctx context.Context, email string, amount int64) (Initiation, error) {
	if err := p.wait(ctx); err != nil {
		return Initiation{}, err
	}
	reference := fmt.Sprintf("%s-%d-%d", p.prefix, time.Now().UnixMilli(), rand.Intn(1000000))
	return Initiation{
		Reference:        reference,
		AuthorizationURL: p.checkoutURL + reference,
	}, nil
}

func (p *simulated) Verify(ctx context.Context, reference string) (Verification, error) {
	if err := p.wait(ctx); err != nil {
		return Verification{}, err
	}
	return Verification{
		Status:  StatusSuccess,
		Message: "Payment verified successfully",
	}, nil
}

func (p *simulated) wait(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
