// Package plan holds the subscription plan catalog.
package plan

// Tier identifies a pricing tier.
type Tier string

const (
	TierStarter    Tier = "starter"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

// Limits is the resource ceiling template attached to a plan.
type Limits struct {
	MaxUnits     int      `mapstructure:"max_units" json:"max_units"`
	MaxUsers     int      `mapstructure:"max_users" json:"max_users"`
	MaxClients   int      `mapstructure:"max_clients" json:"max_clients"`
	MaxStorageMB int64    `mapstructure:"max_storage_mb" json:"max_storage_mb"`
	Features     []string `mapstructure:"features" json:"features"`
}

// Plan is an immutable catalog entry. Read-only after process start.
type Plan struct {
	ID           string `mapstructure:"id" json:"id"`
	Tier         Tier   `mapstructure:"tier" json:"tier"`
	Name         string `mapstructure:"name" json:"name"`
	MonthlyPrice int64  `mapstructure:"monthly_price" json:"monthly_price"`
	YearlyPrice  int64  `mapstructure:"yearly_price" json:"yearly_price"`
	Currency     string `mapstructure:"currency" json:"currency"`
	Limits       Limits `mapstructure:"limits" json:"limits"`
}

// DefaultPlanID is the plan assigned to organizations created without an
// explicit plan, and the enrichment template for directory records.
const DefaultPlanID = "starter"

// DefaultCatalog returns the built-in plan set.
func DefaultCatalog() []Plan {
	return []Plan{
		{
			ID:           "starter",
			Tier:         TierStarter,
			Name:         "Starter",
			MonthlyPrice: 9_900,
			YearlyPrice:  99_000,
			Currency:     "USD",
			Limits: Limits{
				MaxUnits:     1,
				MaxUsers:     5,
				MaxClients:   500,
				MaxStorageMB: 1_024,
				Features:     []string{"crm", "scheduling", "reports"},
			},
		},
		{
			ID:           "pro",
			Tier:         TierPro,
			Name:         "Pro",
			MonthlyPrice: 24_900,
			YearlyPrice:  249_000,
			Currency:     "USD",
			Limits: Limits{
				MaxUnits:     3,
				MaxUsers:     20,
				MaxClients:   5_000,
				MaxStorageMB: 10_240,
				Features:     []string{"crm", "scheduling", "reports", "finance", "inventory", "loyalty", "marketing"},
			},
		},
		{
			ID:           "enterprise",
			Tier:         TierEnterprise,
			Name:         "Enterprise",
			MonthlyPrice: 59_900,
			YearlyPrice:  599_000,
			Currency:     "USD",
			Limits: Limits{
				MaxUnits:     50,
				MaxUsers:     500,
				MaxClients:   100_000,
				MaxStorageMB: 102_400,
				Features:     []string{"crm", "scheduling", "reports", "finance", "inventory", "loyalty", "marketing", "voice_ai", "api_access"},
			},
		},
	}
}
