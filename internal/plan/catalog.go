package plan

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/lumeahq/lumea/internal/config"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Catalog is the read-only plan registry handed to the rest of the system.
// The backing set is swapped atomically when the plan file changes.
type Catalog struct {
	current atomic.Value // holds catalogSnapshot
}

type catalogSnapshot struct {
	plans []Plan
	byID  map[string]Plan
}

// NewCatalog builds the catalog from built-in defaults, optionally overlaid
// with entries from a plans.yml discovered through viper. PLAN_FILE pins an
// explicit overlay path and skips discovery.
func NewCatalog(cfg config.Config, log *zap.Logger) (*Catalog, error) {
	v := viper.New()

	if cfg.PlanFile != "" {
		v.SetConfigFile(cfg.PlanFile)
	} else {
		v.SetConfigName("plans")
		v.SetConfigType("yml")
		v.AddConfigPath("/var/lib/lumea/config")
		v.AddConfigPath("/etc/lumea")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("LUMEA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileFound = false
	}

	var overrides []Plan
	if fileFound {
		if err := v.UnmarshalKey("plans", &overrides); err != nil {
			return nil, err
		}
	}

	merged := mergeCatalog(DefaultCatalog(), overrides)
	if err := validateCatalog(merged); err != nil {
		return nil, err
	}

	c := &Catalog{}
	c.current.Store(buildSnapshot(merged))

	if fileFound {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			var updated []Plan
			if err := v.UnmarshalKey("plans", &updated); err != nil {
				log.Warn("plan catalog reload failed", zap.Error(err))
				return
			}
			next := mergeCatalog(DefaultCatalog(), updated)
			if err := validateCatalog(next); err != nil {
				log.Warn("plan catalog reload ignored", zap.Error(err))
				return
			}
			c.current.Store(buildSnapshot(next))
			log.Info("plan catalog reloaded", zap.String("file", e.Name))
		})
	}

	return c, nil
}

// NewStaticCatalog builds a catalog from the given plans, bypassing file
// discovery. Intended for tests.
func NewStaticCatalog(plans []Plan) *Catalog {
	c := &Catalog{}
	c.current.Store(buildSnapshot(plans))
	return c
}

// Get returns the plan with the given id.
func (c *Catalog) Get(id string) (Plan, bool) {
	snap := c.current.Load().(catalogSnapshot)
	p, ok := snap.byID[id]
	return p, ok
}

// List returns every plan in the catalog.
func (c *Catalog) List() []Plan {
	snap := c.current.Load().(catalogSnapshot)
	out := make([]Plan, len(snap.plans))
	copy(out, snap.plans)
	return out
}

// DefaultTemplate returns the plan used to enrich directory records and
// seed newly created organizations.
func (c *Catalog) DefaultTemplate() Plan {
	if p, ok := c.Get(DefaultPlanID); ok {
		return p
	}
	snap := c.current.Load().(catalogSnapshot)
	return snap.plans[0]
}

func buildSnapshot(plans []Plan) catalogSnapshot {
	byID := make(map[string]Plan, len(plans))
	for _, p := range plans {
		byID[p.ID] = p
	}
	return catalogSnapshot{plans: plans, byID: byID}
}

func mergeCatalog(defaults, overrides []Plan) []Plan {
	merged := make([]Plan, len(defaults))
	copy(merged, defaults)
	index := make(map[string]int, len(merged))
	for i, p := range merged {
		index[p.ID] = i
	}
	for _, o := range overrides {
		if o.ID == "" {
			continue
		}
		if i, ok := index[o.ID]; ok {
			merged[i] = o
			continue
		}
		index[o.ID] = len(merged)
		merged = append(merged, o)
	}
	return merged
}

func validateCatalog(plans []Plan) error {
	if len(plans) == 0 {
		return errors.New("plan catalog cannot be empty")
	}
	seen := make(map[string]bool, len(plans))
	for _, p := range plans {
		if strings.TrimSpace(p.ID) == "" {
			return errors.New("plan id cannot be empty")
		}
		if seen[p.ID] {
			return errors.New("duplicate plan id " + p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}
