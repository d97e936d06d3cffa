package storage

import (
	"os"
	"strings"

	"cardserver/db"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

type Bucket struct {
	ID            uint64 `gorm:"primaryKey" json:"id"`
	CreatedAt     int    `json:"-"`
	UpdatedAt     int    `json:"-"`
	Name          string `gorm:"type:varchar(200)" json:"name"`
	StorageType   StorageType `json:"type"`
	Path          string `json:"path"` // Path on a drive or a prefix in a S3 bucket
	Region        string `gorm:"type:varchar(50)" json:"region"`
	S3Key         string `gorm:"type:varchar(200)" json:"s3key"`
	S3Secret      string `gorm:"type:varchar(200)" json:"s3secret"`
	Endpoint      string `gorm:"type:varchar(300)" json:"endpoint"`
	SSEEncryption string `gorm:"type:varchar(50)" json:"sse_encryption"`
}

func (b *Bucket) Create() error {
	if err := db.Instance.Create(b).Error; err != nil {
		return err
	}
	return b.TryInit()
}

// TryInit pre-creates the storage areas used by the card pipeline.
func (b *Bucket) TryInit() error {
	if b.StorageType != StorageTypeFile {
		return nil
	}
	for _, location := range []string{LocationTemplates, LocationPhotos, LocationCards} {
		if err := os.MkdirAll(b.Path+"/"+location, 0777); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bucket) IsS3() bool {
	return b.StorageType == StorageTypeS3
}

// GetRemotePath returns the object key for path, including the configured
// prefix (Path) if any.
func (b *Bucket) GetRemotePath(path string) string {
	prefix := strings.Trim(b.Path, "/")
	if prefix == "" {
		return path
	}
	return prefix + "/" + path
}

func (b *Bucket) CreateSVC() *s3.S3 {
	creds := credentials.NewStaticCredentials(b.S3Key, b.S3Secret, "")
	cfg := aws.NewConfig().WithRegion(b.Region).WithCredentials(creds)
	if b.Endpoint != "" {
		cfg = cfg.WithEndpoint(b.Endpoint).WithS3ForcePathStyle(true)
	}
	sess := session.Must(session.NewSession())
	return s3.New(sess, cfg)
}
