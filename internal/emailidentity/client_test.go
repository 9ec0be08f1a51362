package emailidentity

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/ignite/brandhub/internal/domain"
)

type fakeIdentityAPI struct {
	out *sesv2.GetEmailIdentityOutput
	err error
}

func (f *fakeIdentityAPI) GetEmailIdentity(ctx context.Context, in *sesv2.GetEmailIdentityInput, opts ...func(*sesv2.Options)) (*sesv2.GetEmailIdentityOutput, error) {
	return f.out, f.err
}

func TestVerificationStatus(t *testing.T) {
	tests := []struct {
		name string
		api  *fakeIdentityAPI
		want domain.EmailVerification
	}{
		{
			name: "verified for sending",
			api:  &fakeIdentityAPI{out: &sesv2.GetEmailIdentityOutput{VerifiedForSendingStatus: true}},
			want: domain.EmailVerified,
		},
		{
			name: "verification pending",
			api: &fakeIdentityAPI{out: &sesv2.GetEmailIdentityOutput{
				VerificationStatus: types.VerificationStatusPending,
			}},
			want: domain.EmailPending,
		},
		{
			name: "known but failed verification",
			api: &fakeIdentityAPI{out: &sesv2.GetEmailIdentityOutput{
				VerificationStatus: types.VerificationStatusFailed,
			}},
			want: domain.EmailUnverified,
		},
		{
			name: "identity never registered",
			api:  &fakeIdentityAPI{err: &types.NotFoundException{}},
			want: domain.EmailUnverified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{api: tt.api}
			got, err := c.VerificationStatus(context.Background(), "sender@acme.test")
			if err != nil {
				t.Fatalf("VerificationStatus() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("VerificationStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestVerificationStatus_TransportFailure(t *testing.T) {
	c := &Client{api: &fakeIdentityAPI{err: errors.New("dial timeout")}}

	got, err := c.VerificationStatus(context.Background(), "sender@acme.test")
	if err == nil {
		t.Error("VerificationStatus() expected error on transport failure")
	}
	if got != domain.EmailUnknown {
		t.Errorf("VerificationStatus() = %s, want unknown", got)
	}
}

func TestVerificationStatus_EmptyAddress(t *testing.T) {
	c := &Client{api: &fakeIdentityAPI{err: errors.New("should not be called")}}

	got, err := c.VerificationStatus(context.Background(), "")
	if err != nil {
		t.Fatalf("VerificationStatus() error = %v", err)
	}
	if got != domain.EmailUnknown {
		t.Errorf("VerificationStatus() = %s, want unknown", got)
	}
}

func TestDomain(t *testing.T) {
	if got := Domain("news@acme.coffee"); got != "acme.coffee" {
		t.Errorf("Domain() = %q, want acme.coffee", got)
	}
	if got := Domain("not-an-address"); got != "" {
		t.Errorf("Domain() = %q, want empty", got)
	}
}
