// internals/helpers/oss/oss_client.go
package helper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// ErrLinkUnavailable: public URL tidak bisa dibuat/ditemukan untuk objek.
var ErrLinkUnavailable = errors.New("public link tidak tersedia")

/* =======================================================================
   OSS Service (blob store adapter)
======================================================================= */

type Options struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	SecurityToken string
	Bucket        string
	PublicBase    string // optional: CDN/custom domain
}

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	PublicBase string
}

func NewOSSService(opt Options) (*OSSService, error) {
	if opt.Endpoint == "" || opt.AccessKey == "" || opt.SecretKey == "" || opt.Bucket == "" {
		return nil, fmt.Errorf("missing OSS config: endpoint/access key/secret key/bucket")
	}

	var (
		client *oss.Client
		err    error
	)
	if opt.SecurityToken != "" {
		client, err = oss.New(opt.Endpoint, opt.AccessKey, opt.SecretKey, oss.SecurityToken(opt.SecurityToken))
	} else {
		client, err = oss.New(opt.Endpoint, opt.AccessKey, opt.SecretKey)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(opt.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	// Verifikasi ringan lokasi bucket
	if loc, err := client.GetBucketLocation(opt.Bucket); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 && se.Code == "AccessDenied" {
			log.Printf("[OSS] warn: skip location check due to AccessDenied (bucket=%s). Continuing.", opt.Bucket)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Printf("[OSS] bucket %s location: %s", opt.Bucket, loc)
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   opt.Endpoint,
		BucketName: opt.Bucket,
		PublicBase: strings.TrimSpace(opt.PublicBase),
	}, nil
}

/* =======================================================================
   Upload & public URL
======================================================================= */

// Upload menaruh blob apa adanya pada key yang sudah ditentukan caller.
// Key selalu memuat timestamp unik, jadi tabrakan path praktis tidak terjadi.
func (s *OSSService) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if contentType == "" {
		contentType = sniffContentType(data, key)
	}
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	return s.Bucket.PutObject(key, bytes.NewReader(data), opts...)
}

// EnsurePublicURL membuat (atau menemukan kembali) URL publik untuk objek.
// Idempoten: set ACL public-read boleh diulang tanpa efek samping.
func (s *OSSService) EnsurePublicURL(ctx context.Context, key string) (string, error) {
	exist, err := s.Bucket.IsObjectExist(key)
	if err != nil {
		return "", fmt.Errorf("cek objek %s: %w", key, err)
	}
	if !exist {
		return "", fmt.Errorf("%w: objek %s tidak ada", ErrLinkUnavailable, key)
	}

	if err := s.Bucket.SetObjectACL(key, oss.ACLPublicRead); err != nil {
		// bucket public-read: ACL per-objek boleh gagal karena policy, URL tetap jalan
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 {
			log.Printf("[OSS] warn: SetObjectACL ditolak utk %s, mengandalkan ACL bucket", key)
		} else {
			return "", fmt.Errorf("%w: set ACL %s: %v", ErrLinkUnavailable, key, err)
		}
	}

	u := s.PublicURL(key)
	if u == "" {
		return "", fmt.Errorf("%w: URL kosong utk %s", ErrLinkUnavailable, key)
	}
	return NormalizeShareURL(u), nil
}

func (s *OSSService) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if s.PublicBase != "" {
		return strings.TrimRight(s.PublicBase, "/") + "/" + key
	}
	if s.Endpoint == "" || s.BucketName == "" {
		return ""
	}
	end := s.Endpoint
	end = strings.TrimPrefix(end, "https://")
	end = strings.TrimPrefix(end, "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, key)
}

// NormalizeShareURL menormalkan share link lama agar browser mengambil
// konten mentah: sufiks `?dl=0` diganti `?raw=1`.
func NormalizeShareURL(u string) string {
	return strings.Replace(u, "?dl=0", "?raw=1", 1)
}

/* =======================================================================
   Misc utils
======================================================================= */

func sniffContentType(data []byte, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	ct := mime.TypeByExtension(ext)

	if len(data) > 0 {
		head := data
		if len(head) > 512 {
			head = head[:512]
		}
		detected := http.DetectContentType(head)
		if ct == "" || ct == "application/octet-stream" {
			ct = detected
		}
	}

	switch ext {
	case ".webp":
		ct = "image/webp"
	}
	if ct == "" {
		ct = "application/octet-stream"
	}
	return ct
}

func init() {
	_ = mime.AddExtensionType(".webp", "image/webp")
}
