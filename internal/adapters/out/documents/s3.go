// Package documents renders contract documents and stores them in S3.
package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"workshop/internal/core/domain/model/curtain"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type objectStore interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ContractSource loads what a contract document is rendered from.
type ContractSource interface {
	Order(ctx context.Context, id kernel.UUID) (*order.Order, error)
	Curtains(ctx context.Context, orderID kernel.UUID) ([]*curtain.Curtain, error)
}

// S3Config holds the bucket settings. Empty credentials fall back to the
// default AWS credential chain.
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

// S3DocumentGenerator implements ports.DocumentGenerator. A document that
// already exists is not written again.
type S3DocumentGenerator struct {
	store  objectStore
	bucket string
	source ContractSource
	clock  func() time.Time
}

func NewS3DocumentGenerator(ctx context.Context, cfg S3Config, source ContractSource) (*S3DocumentGenerator, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3DocumentGenerator{
		store:  s3.NewFromConfig(awsConfig),
		bucket: cfg.Bucket,
		source: source,
		clock:  time.Now,
	}, nil
}

// Key returns the object key of the contract document of an order.
func Key(orderID kernel.UUID) string {
	return "contracts/" + orderID.String() + ".json"
}

func (g *S3DocumentGenerator) GenerateContractDocument(ctx context.Context, orderID, actorID kernel.UUID) error {
	key := Key(orderID)

	_, err := g.store.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return nil
	}
	var missing *types.NotFound
	if !errors.As(err, &missing) {
		return fmt.Errorf("check %s: %w", key, err)
	}

	o, err := g.source.Order(ctx, orderID)
	if err != nil {
		return err
	}
	curtains, err := g.source.Curtains(ctx, orderID)
	if err != nil {
		return err
	}
	body, err := json.MarshalIndent(render(o, curtains, actorID, g.clock().UTC()), "", "  ")
	if err != nil {
		return err
	}

	_, err = g.store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"order-number": o.Number(),
			"generated-by": actorID.String(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// UnitOfWorkSource reads the contract data outside any transaction.
type UnitOfWorkSource struct {
	factory ports.UnitOfWorkFactory
}

func NewUnitOfWorkSource(factory ports.UnitOfWorkFactory) UnitOfWorkSource {
	return UnitOfWorkSource{factory: factory}
}

func (s UnitOfWorkSource) Order(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return s.factory.Create().OrderRepository().Get(ctx, id)
}

func (s UnitOfWorkSource) Curtains(ctx context.Context, orderID kernel.UUID) ([]*curtain.Curtain, error) {
	return s.factory.Create().CurtainRepository().ListByOwner(ctx, curtain.OrderOwner(orderID))
}
