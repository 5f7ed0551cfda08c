package neptune

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
)

// SigningService is the SigV4 service name for Neptune data-plane requests
const SigningService = "neptune-db"

// SigV4Signer signs requests for clusters with IAM database authentication
// enabled
type SigV4Signer struct {
	credentials aws.CredentialsProvider
	region      string
	signer      *v4.Signer
	now         func() time.Time
}

// NewSigV4Signer creates a signer using the given credentials chain
func NewSigV4Signer(credentials aws.CredentialsProvider, region string) *SigV4Signer {
	return &SigV4Signer{
		credentials: credentials,
		region:      region,
		signer:      v4.NewSigner(),
		now:         time.Now,
	}
}

// Sign adds SigV4 headers to req
func (s *SigV4Signer) Sign(ctx context.Context, req *http.Request, body []byte) error {
	if s.credentials == nil {
		return fmt.Errorf("no AWS credentials configured")
	}

	creds, err := s.credentials.Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("retrieve credentials: %w", err)
	}

	sum := sha256.Sum256(body)
	return s.signer.SignHTTP(ctx, creds, req, hex.EncodeToString(sum[:]), SigningService, s.region, s.now())
}
