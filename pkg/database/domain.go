package database

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
)

// sleepFunc 重試間隔用，測試時可覆蓋
var sleepFunc = time.Sleep

// Connection definition mongo setting
type Connection struct {
	ConnectStr string

	RetryCount    int
	RetryInterval time.Duration
}

// MongoDB definition mongo db
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// MinIOConnection definition minio
type MinIOConnection struct {
	Endpoint   string
	User       string
	Password   string
	BucketName string
	UseSSL     bool

	RetryCount    int
	RetryInterval time.Duration
}

// KafkaConnection definition kafka
type KafkaConnection struct {
	Brokers       []string
	Topic         string
	RetryCount    int
	RetryInterval time.Duration
}

// MediaStore 媒體協作者能力：上傳本地檔案並給出耐久 URL
// usecase 依賴這個介面，測試時可以 mock
type MediaStore interface {
	UploadFile(ctx context.Context, objectName, filePath, contentType string) error
	PublicURL(objectName string) string
}

// EventWriter async event publishing, implemented by *kafka.Writer
type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}
