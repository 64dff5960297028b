package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/resqsync/internal/client/api"
	"github.com/dmitrijs2005/resqsync/internal/client/models"
	"github.com/dmitrijs2005/resqsync/internal/common"
	"github.com/dmitrijs2005/resqsync/internal/filex"
	"github.com/dmitrijs2005/resqsync/internal/netx"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	download = netx.Download
)

// S3Options locates the object store behind s3:// report URLs.
type S3Options struct {
	Region   string
	Endpoint string
}

// ReportService lists reports and downloads them into a local directory.
type ReportService interface {
	List(ctx context.Context) ([]models.Report, error)
	Download(ctx context.Context, idOrName, dir string) (string, error)
}

type reportService struct {
	client api.Client
	hc     *http.Client
	s3     S3Options
}

func NewReportService(client api.Client, hc *http.Client, s3opts S3Options) ReportService {
	return &reportService{client: client, hc: hc, s3: s3opts}
}

func (s *reportService) List(ctx context.Context) ([]models.Report, error) {
	return s.client.Reports(ctx)
}

// Download fetches the report whose ID or name matches idOrName and writes it
// into dir. The returned path is absolute. http(s) URLs are fetched
// directly; s3://bucket/key URLs are presigned first.
func (s *reportService) Download(ctx context.Context, idOrName, dir string) (string, error) {
	reports, err := s.client.Reports(ctx)
	if err != nil {
		return "", err
	}

	var rep *models.Report
	for i := range reports {
		if reports[i].ID == idOrName || strings.EqualFold(reports[i].Name, idOrName) {
			rep = &reports[i]
			break
		}
	}
	if rep == nil {
		return "", fmt.Errorf("report %q: %w", idOrName, common.ErrNotFound)
	}

	u, err := url.Parse(rep.URL)
	if err != nil {
		return "", fmt.Errorf("report %q url: %w", idOrName, err)
	}

	src := rep.URL
	switch u.Scheme {
	case "http", "https":
	case "s3":
		src, err = s.presign(ctx, u.Host, strings.TrimPrefix(u.Path, "/"))
		if err != nil {
			return "", fmt.Errorf("presign %s: %w", rep.URL, err)
		}
	default:
		return "", fmt.Errorf("%w: unsupported report url scheme %q", ErrInvalidInput, u.Scheme)
	}

	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(abs, reportFileName(rep, u))

	tmp, err := os.CreateTemp(abs, ".download-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := download(ctx, s.hc, src, tmp); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", err
	}
	return dst, nil
}

func (s *reportService) presign(ctx context.Context, bucket, key string) (string, error) {
	var opts []func(*config.LoadOptions) error
	if s.s3.Region != "" {
		opts = append(opts, config.WithRegion(s.s3.Region))
	}
	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return "", err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.s3.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.s3.Endpoint)
			o.UsePathStyle = true
		}
	})

	req, err := presignGetObject(s3.NewPresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// reportFileName picks a safe local name: the URL's base name when it has an
// extension, else the report name or ID.
func reportFileName(rep *models.Report, u *url.URL) string {
	base := path.Base(u.Path)
	if base == "." || base == "/" || path.Ext(base) == "" {
		base = rep.Name
		if base == "" {
			base = rep.ID
		}
	}

	base = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, base)
	base = strings.TrimLeft(base, ".")
	if base == "" {
		base = "report"
	}
	return base
}
