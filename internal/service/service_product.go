// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/grocery-sync/internal/logger"
	"github.com/MKhiriev/grocery-sync/internal/store"
	"github.com/MKhiriev/grocery-sync/models"
)

type productService struct {
	productRepository store.ProductRepository
	publisher         EventPublisher
	now               func() time.Time

	logger *logger.Logger
}

func NewProductService(storages *store.Storages, publisher EventPublisher, logger *logger.Logger) ProductService {
	if publisher == nil {
		publisher = nopPublisher{}
	}

	return &productService{
		productRepository: storages.ProductRepository,
		publisher:         publisher,
		now:               time.Now,
		logger:            logger,
	}
}

// UpdateStock implements [ProductService] and announces the new level on
// the global products channel.
func (p *productService) UpdateStock(ctx context.Context, productID string, stock int) (models.StockChanged, error) {
	if stock < 0 {
		return models.StockChanged{}, ErrInvalidDataProvided
	}

	at := p.now()
	if err := p.productRepository.UpdateStock(ctx, productID, stock, at); err != nil {
		return models.StockChanged{}, fmt.Errorf("update stock: %w", err)
	}

	event := models.StockChanged{ProductID: productID, Stock: stock, UpdatedAt: models.FormatTimestamp(at)}
	p.publisher.Publish(ctx, models.ProductsChannel, event)

	return event, nil
}
