package elasticsearch

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/mycontacts-api/internal/domain/entity"
)

func TestSearchBodyFiltersByOwner(t *testing.T) {
	b, err := json.Marshal(searchBody("alice@example.com", "john"))
	require.NoError(t, err)

	var parsed struct {
		Size  int `json:"size"`
		Query struct {
			Bool struct {
				Filter []struct {
					Term map[string]string `json:"term"`
				} `json:"filter"`
				Must []struct {
					MultiMatch struct {
						Query  string   `json:"query"`
						Fields []string `json:"fields"`
					} `json:"multi_match"`
				} `json:"must"`
			} `json:"bool"`
		} `json:"query"`
	}
	require.NoError(t, json.Unmarshal(b, &parsed))

	assert.Equal(t, maxHits, parsed.Size)
	require.Len(t, parsed.Query.Bool.Filter, 1)
	assert.Equal(t, "alice@example.com", parsed.Query.Bool.Filter[0].Term["ownerEmail"])
	require.Len(t, parsed.Query.Bool.Must, 1)
	assert.Equal(t, "john", parsed.Query.Bool.Must[0].MultiMatch.Query)
	assert.Contains(t, parsed.Query.Bool.Must[0].MultiMatch.Fields, "phone")
}

func TestDocConversion(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	c := &entity.Contact{
		ID: "id-1", FirstName: "John", LastName: "Doe", Phone: "0123456789",
		OwnerEmail: "alice@example.com", PhotoURL: "https://x", CreatedAt: now, UpdatedAt: now,
	}
	assert.Equal(t, *c, toDoc(c).contact())
}
