package storage

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/matjarly/matjarly/internal/clock"
)

type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	PublicURL string
}

// S3Uploader talks the S3 REST API (SigV4) directly, which keeps R2,
// MinIO and S3 itself interchangeable behind one config block.
type S3Uploader struct {
	cfg    S3Config
	client *http.Client
	clock  clock.Clock
}

func NewS3(cfg S3Config, clk clock.Clock) *S3Uploader {
	if cfg.Region == "" {
		cfg.Region = "auto"
	}
	return &S3Uploader{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		clock:  clk,
	}
}

func (u *S3Uploader) Upload(ctx context.Context, data []byte, filename, folder string) (string, string, error) {
	if len(data) == 0 {
		return "", "", ErrEmptyFile
	}

	key, err := objectKey(filename, folder)
	if err != nil {
		return "", "", err
	}

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u.objectURL(key), bytes.NewReader(data))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(data))

	if err := u.do(req, data); err != nil {
		return "", "", err
	}
	return u.publicURL(key), key, nil
}

func (u *S3Uploader) Delete(ctx context.Context, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u.objectURL(key), nil)
	if err != nil {
		return err
	}
	return u.do(req, nil)
}

func (u *S3Uploader) objectURL(key string) string {
	endpoint := strings.TrimSuffix(u.cfg.Endpoint, "/")
	return fmt.Sprintf("%s/%s/%s", endpoint, u.cfg.Bucket, key)
}

func (u *S3Uploader) publicURL(key string) string {
	if base := strings.TrimSuffix(u.cfg.PublicURL, "/"); base != "" {
		return base + "/" + key
	}
	return u.objectURL(key)
}

func (u *S3Uploader) do(req *http.Request, payload []byte) error {
	u.sign(req, payload)

	resp, err := u.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("storage request failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return nil
}

// sign applies AWS signature v4 to the request.
func (u *S3Uploader) sign(req *http.Request, payload []byte) {
	now := u.clock.Now().UTC()
	amzDate := now.Format("20060102T150405Z")
	dateStamp := now.Format("20060102")

	payloadHash := sha256.Sum256(payload)
	payloadHex := hex.EncodeToString(payloadHash[:])

	req.Header.Set("Host", req.URL.Host)
	req.Header.Set("X-Amz-Date", amzDate)
	req.Header.Set("X-Amz-Content-Sha256", payloadHex)

	signedHeaders := []string{"host", "x-amz-content-sha256", "x-amz-date"}
	if req.Header.Get("Content-Type") != "" {
		signedHeaders = append([]string{"content-type"}, signedHeaders...)
	}

	var canonicalHeaders strings.Builder
	for _, name := range signedHeaders {
		value := req.Header.Get(name)
		if name == "host" {
			value = req.URL.Host
		}
		canonicalHeaders.WriteString(name + ":" + strings.TrimSpace(value) + "\n")
	}

	canonicalRequest := strings.Join([]string{
		req.Method,
		canonicalURI(req.URL),
		req.URL.RawQuery,
		canonicalHeaders.String(),
		strings.Join(signedHeaders, ";"),
		payloadHex,
	}, "\n")

	scope := strings.Join([]string{dateStamp, u.cfg.Region, "s3", "aws4_request"}, "/")
	requestHash := sha256.Sum256([]byte(canonicalRequest))
	stringToSign := strings.Join([]string{
		"AWS4-HMAC-SHA256",
		amzDate,
		scope,
		hex.EncodeToString(requestHash[:]),
	}, "\n")

	signingKey := hmacSHA256([]byte("AWS4"+u.cfg.SecretKey), dateStamp)
	signingKey = hmacSHA256(signingKey, u.cfg.Region)
	signingKey = hmacSHA256(signingKey, "s3")
	signingKey = hmacSHA256(signingKey, "aws4_request")
	signature := hex.EncodeToString(hmacSHA256(signingKey, stringToSign))

	req.Header.Set("Authorization", fmt.Sprintf(
		"AWS4-HMAC-SHA256 Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		u.cfg.AccessKey, scope, strings.Join(signedHeaders, ";"), signature,
	))
}

func canonicalURI(u *url.URL) string {
	if u.Path == "" {
		return "/"
	}
	return u.EscapedPath()
}

func hmacSHA256(key []byte, data string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(data))
	return mac.Sum(nil)
}
