// Package directory looks up the organizations a session is entitled to
// from the remote directory service.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/lumeahq/lumea/internal/config"
	"github.com/lumeahq/lumea/internal/plan"
	"github.com/lumeahq/lumea/internal/tenant/domain"
	"go.uber.org/zap"
)

// Client fetches the entitled organizations for a user. Failures are soft for
// callers: the tenant store keeps whatever it already has.
type Client interface {
	ListEntitledOrganizations(ctx context.Context, userID string) ([]domain.Organization, error)
}

// Record is the wire shape returned by the directory service. Plan and usage
// data are not sourced remotely; they are filled from the catalog template.
type Record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

type httpClient struct {
	base    string
	http    *http.Client
	catalog *plan.Catalog
	log     *zap.Logger
}

// NewHTTPClient builds the production directory client.
func NewHTTPClient(cfg config.Config, catalog *plan.Catalog, log *zap.Logger) Client {
	timeout := time.Duration(cfg.DirectoryTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpClient{
		base:    cfg.DirectoryBaseURL,
		http:    &http.Client{Timeout: timeout},
		catalog: catalog,
		log:     log.Named("directory.client"),
	}
}

func (c *httpClient) ListEntitledOrganizations(ctx context.Context, userID string) ([]domain.Organization, error) {
	url := fmt.Sprintf("%s/v1/users/%s/organizations", c.base, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		fetchFailures.WithLabelValues("transport").Inc()
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fetchFailures.WithLabelValues("status").Inc()
		return nil, fmt.Errorf("directory returned status %d", resp.StatusCode)
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		fetchFailures.WithLabelValues("decode").Inc()
		return nil, err
	}

	return Enrich(records, c.catalog), nil
}

// Enrich converts directory records into full organizations by applying the
// catalog default template for plan, limits and zeroed usage.
func Enrich(records []Record, catalog *plan.Catalog) []domain.Organization {
	tpl := catalog.DefaultTemplate()
	out := make([]domain.Organization, 0, len(records))
	for _, r := range records {
		id, err := snowflake.ParseString(r.ID)
		if err != nil {
			continue
		}
		org := domain.Organization{
			ID:           id,
			Name:         r.Name,
			Slug:         r.Slug,
			PlanID:       tpl.ID,
			Status:       domain.SubscriptionStatusTrial,
			BillingCycle: domain.BillingCycleMonthly,
			Limits: domain.Limits{
				MaxUnits:     tpl.Limits.MaxUnits,
				MaxUsers:     tpl.Limits.MaxUsers,
				MaxClients:   tpl.Limits.MaxClients,
				MaxStorageMB: tpl.Limits.MaxStorageMB,
				Features:     append([]string(nil), tpl.Limits.Features...),
			},
			CreatedAt: r.CreatedAt,
		}
		org.Normalize()
		out = append(out, org)
	}
	return out
}
