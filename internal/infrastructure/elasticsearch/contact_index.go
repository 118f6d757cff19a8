package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/mycontacts-api/internal/domain/entity"
)

const (
	requestTimeout = 3 * time.Second
	maxHits        = 50
)

// indexMapping keeps owner as an exact-match keyword so searches can filter on it.
const indexMapping = `{
  "mappings": {
    "properties": {
      "id":         {"type": "keyword"},
      "ownerEmail": {"type": "keyword"},
      "firstName":  {"type": "text"},
      "lastName":   {"type": "text"},
      "phone":      {"type": "keyword"},
      "photoUrl":   {"type": "keyword", "index": false},
      "createdAt":  {"type": "date"},
      "updatedAt":  {"type": "date"}
    }
  }
}`

// ContactIndex mirrors contacts into an Elasticsearch index for full-text search.
type ContactIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewContactIndex(es *elasticsearch.Client, index string) *ContactIndex {
	return &ContactIndex{es: es, index: index}
}

type contactDoc struct {
	ID         string    `json:"id"`
	OwnerEmail string    `json:"ownerEmail"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Phone      string    `json:"phone"`
	PhotoURL   string    `json:"photoUrl"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toDoc(c *entity.Contact) contactDoc {
	return contactDoc{
		ID: c.ID, OwnerEmail: c.OwnerEmail, FirstName: c.FirstName, LastName: c.LastName,
		Phone: c.Phone, PhotoURL: c.PhotoURL, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func (d contactDoc) contact() entity.Contact {
	return entity.Contact{
		ID: d.ID, OwnerEmail: d.OwnerEmail, FirstName: d.FirstName, LastName: d.LastName,
		Phone: d.Phone, PhotoURL: d.PhotoURL, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (x *ContactIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := esapi.IndicesExistsRequest{Index: []string{x.index}}.Do(c, x.es)
	if err != nil {
		return err
	}
	_ = res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	res, err = esapi.IndicesCreateRequest{Index: x.index, Body: strings.NewReader(indexMapping)}.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es create index %s: %s", x.index, res.Status())
	}
	return nil
}

func (x *ContactIndex) Index(ctx context.Context, contact *entity.Contact) error {
	b, err := json.Marshal(toDoc(contact))
	if err != nil {
		return err
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	req := esapi.IndexRequest{Index: x.index, DocumentID: contact.ID, Body: bytes.NewReader(b), Refresh: "false"}
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", contact.ID, res.Status())
	}
	return nil
}

func (x *ContactIndex) Remove(ctx context.Context, id string) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := esapi.DeleteRequest{Index: x.index, DocumentID: id}.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete %s: %s", id, res.Status())
	}
	return nil
}

// searchBody builds a multi_match query restricted to the owner's documents.
func searchBody(owner, q string) map[string]any {
	return map[string]any{
		"size": maxHits,
		"query": map[string]any{
			"bool": map[string]any{
				"filter": []any{
					map[string]any{"term": map[string]any{"ownerEmail": owner}},
				},
				"must": []any{
					map[string]any{"multi_match": map[string]any{
						"query":     q,
						"fields":    []string{"firstName^2", "lastName^2", "phone"},
						"fuzziness": "AUTO",
						"operator":  "and",
					}},
				},
			},
		},
	}
}

func (x *ContactIndex) Search(ctx context.Context, owner, q string) ([]entity.Contact, error) {
	b, err := json.Marshal(searchBody(owner, q))
	if err != nil {
		return nil, err
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.es.Search(x.es.Search.WithContext(c), x.es.Search.WithIndex(x.index), x.es.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source contactDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.Contact, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		// drop hits from other owners
		if h.Source.OwnerEmail != owner {
			continue
		}
		out = append(out, h.Source.contact())
	}
	return out, nil
}
