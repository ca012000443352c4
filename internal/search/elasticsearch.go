package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"aviacao/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ElasticsearchClient feeds the audit indexes with committed sales and
// check-ins. The indexes are analytics-only; nothing in the request
// path reads them.
type ElasticsearchClient struct {
	client *elasticsearch.Client
	config Config
}

type Config struct {
	URL           string
	Username      string
	Password      string
	SalesIndex    string
	CheckinsIndex string
	MaxRetries    int
}

func NewElasticsearchClient(cfg Config) (*ElasticsearchClient, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     []string{cfg.URL},
		Username:      cfg.Username,
		Password:      cfg.Password,
		RetryOnStatus: []int{502, 503, 504, 429},
		MaxRetries:    cfg.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	client := &ElasticsearchClient{client: es, config: cfg}

	ctx := context.Background()
	if err := client.ensureIndex(ctx, cfg.SalesIndex, salesMapping); err != nil {
		return nil, fmt.Errorf("failed to ensure sales index: %w", err)
	}
	if err := client.ensureIndex(ctx, cfg.CheckinsIndex, checkinsMapping); err != nil {
		return nil, fmt.Errorf("failed to ensure checkins index: %w", err)
	}

	return client, nil
}

func (c *ElasticsearchClient) ensureIndex(ctx context.Context, index string, mapping map[string]interface{}) error {
	req := esapi.IndicesExistsRequest{
		Index: []string{index},
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		slog.Info("Elasticsearch index already exists", "index", index)
		return nil
	}

	mappingJSON, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	createReq := esapi.IndicesCreateRequest{
		Index: index,
		Body:  strings.NewReader(string(mappingJSON)),
	}

	createRes, err := createReq.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("failed to create index: %s", createRes.String())
	}

	slog.Info("Created Elasticsearch index", "index", index)
	return nil
}

// IndexSale stores a committed sale, keyed by reservation code so
// redeliveries overwrite instead of duplicating
func (c *ElasticsearchClient) IndexSale(ctx context.Context, ev *models.SaleCreatedEvent) error {
	return c.index(ctx, c.config.SalesIndex, strconv.FormatInt(ev.CodigoReserva, 10), ev)
}

// IndexCheckin stores a committed seat assignment, keyed by ticket id
func (c *ElasticsearchClient) IndexCheckin(ctx context.Context, ev *models.CheckinCompletedEvent) error {
	return c.index(ctx, c.config.CheckinsIndex, strconv.FormatInt(ev.BilheteID, 10), ev)
}

func (c *ElasticsearchClient) index(ctx context.Context, index, docID string, doc interface{}) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: docID,
		Body:       strings.NewReader(string(payload)),
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("Elasticsearch error: %s", res.String())
	}

	return nil
}

var salesMapping = map[string]interface{}{
	"settings": map[string]interface{}{
		"number_of_shards":   1,
		"number_of_replicas": 0,
	},
	"mappings": map[string]interface{}{
		"properties": map[string]interface{}{
			"codigo_reserva": map[string]interface{}{"type": "long"},
			"voo_id":         map[string]interface{}{"type": "long"},
			"nif_cliente":    map[string]interface{}{"type": "keyword"},
			"balcao":         map[string]interface{}{"type": "keyword"},
			"tickets":        map[string]interface{}{"type": "integer"},
			"timestamp": map[string]interface{}{
				"type":   "date",
				"format": "strict_date_optional_time||epoch_millis",
			},
		},
	},
}

var checkinsMapping = map[string]interface{}{
	"settings": map[string]interface{}{
		"number_of_shards":   1,
		"number_of_replicas": 0,
	},
	"mappings": map[string]interface{}{
		"properties": map[string]interface{}{
			"bilhete_id": map[string]interface{}{"type": "long"},
			"voo_id":     map[string]interface{}{"type": "long"},
			"no_serie":   map[string]interface{}{"type": "keyword"},
			"lugar":      map[string]interface{}{"type": "keyword"},
			"timestamp": map[string]interface{}{
				"type":   "date",
				"format": "strict_date_optional_time||epoch_millis",
			},
		},
	},
}
