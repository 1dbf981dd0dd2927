package amqp

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const digestMessageType = "sales.digest"

// DigestMessage é o envelope publicado no exchange com o resumo mensal
type DigestMessage struct {
	Type      string              `json:"type"`
	Timestamp time.Time           `json:"timestamp"`
	Digest    *domain.SalesDigest `json:"digest"`
}

func NewDigestMessage(digest *domain.SalesDigest) *DigestMessage {
	return &DigestMessage{
		Type:      digestMessageType,
		Timestamp: time.Now(),
		Digest:    digest,
	}
}

func (m *DigestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func DigestMessageFromJSON(data []byte) (*DigestMessage, error) {
	var msg DigestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
