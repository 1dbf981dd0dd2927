// Package messaging publica o resumo mensal de vendas para outros sistemas
package messaging

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

type DigestPublisher interface {
	PublishDigest(ctx context.Context, digest *domain.SalesDigest) error
	Close() error
}

// LogPublisher apenas registra o resumo no log. Usado quando não há broker configurado.
type LogPublisher struct{}

func NewLogPublisher() DigestPublisher {
	return &LogPublisher{}
}

func (*LogPublisher) PublishDigest(_ context.Context, digest *domain.SalesDigest) error {
	logrus.WithFields(logrus.Fields{
		"digest_id":   digest.ID,
		"period":      digest.Period,
		"total_sales": digest.Metrics.TotalSales,
		"count":       digest.Metrics.Count,
		"branches":    len(digest.Branches),
	}).Info("Resumo de vendas gerado (sem broker configurado)")

	return nil
}

func (*LogPublisher) Close() error {
	return nil
}
