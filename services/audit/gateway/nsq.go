package gateway

import (
	"context"

	"github.com/adiprasetyo/txcore/internal/pkg/models"
	"github.com/adiprasetyo/txcore/internal/pkg/nsq"
	"github.com/adiprasetyo/txcore/services/audit"
)

// NSQCompliancePublisher mirrors audit entries to the compliance topic
type NSQCompliancePublisher struct {
	producer *nsq.Producer
	topic    string
}

func NewNSQCompliancePublisher(producer *nsq.Producer, topic string) *NSQCompliancePublisher {
	return &NSQCompliancePublisher{
		producer: producer,
		topic:    topic,
	}
}

var _ audit.CompliancePublisher = (*NSQCompliancePublisher)(nil)

func (p *NSQCompliancePublisher) PublishAuditEntry(ctx context.Context, entry models.AuditEntry) error {
	return p.producer.Publish(p.topic, entry)
}
