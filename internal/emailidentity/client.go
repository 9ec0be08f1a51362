// Package emailidentity checks sender addresses against AWS SES v2 identity
// verification. The status is advisory: it decorates email settings reads and
// never blocks an edit.
package emailidentity

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/ignite/brandhub/internal/domain"
)

// identityAPI is the slice of the SES v2 client this package uses.
type identityAPI interface {
	GetEmailIdentity(ctx context.Context, in *sesv2.GetEmailIdentityInput, opts ...func(*sesv2.Options)) (*sesv2.GetEmailIdentityOutput, error)
}

// Client resolves SES identity verification for sender addresses.
type Client struct {
	api    identityAPI
	region string
}

// NewClient builds an SES v2 identity client with static credentials.
func NewClient(ctx context.Context, region, accessKey, secretKey string) (*Client, error) {
	creds := credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &Client{
		api:    sesv2.NewFromConfig(awsCfg),
		region: region,
	}, nil
}

// VerificationStatus looks up the SES identity for email. An address SES has
// never seen is unverified; a known identity that has not completed
// verification is pending. Transport failures map to unknown so callers can
// render settings regardless.
func (c *Client) VerificationStatus(ctx context.Context, email string) (domain.EmailVerification, error) {
	if email == "" {
		return domain.EmailUnknown, nil
	}

	out, err := c.api.GetEmailIdentity(ctx, &sesv2.GetEmailIdentityInput{
		EmailIdentity: aws.String(email),
	})
	if err != nil {
		var nf *types.NotFoundException
		if errors.As(err, &nf) {
			return domain.EmailUnverified, nil
		}
		log.Printf("[emailidentity.Client] GetEmailIdentity failed for %s: %v", email, err)
		return domain.EmailUnknown, fmt.Errorf("get email identity: %w", err)
	}

	return statusFromIdentity(out), nil
}

func statusFromIdentity(out *sesv2.GetEmailIdentityOutput) domain.EmailVerification {
	if out.VerifiedForSendingStatus {
		return domain.EmailVerified
	}
	if out.VerificationStatus == types.VerificationStatusPending {
		return domain.EmailPending
	}
	return domain.EmailUnverified
}

// Domain extracts the sending domain from an address, for operators checking
// domain-level identities.
func Domain(email string) string {
	if i := strings.LastIndex(email, "@"); i >= 0 {
		return email[i+1:]
	}
	return ""
}
