package appmanager

import (
	"database/sql"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"

	"github.com/Quick-coder123/zvit/api"
	"github.com/Quick-coder123/zvit/api/auth"
	"github.com/Quick-coder123/zvit/api/zvit"
	"github.com/Quick-coder123/zvit/internal/config"
	"github.com/Quick-coder123/zvit/internal/jobs"
	"github.com/Quick-coder123/zvit/internal/logger"
	"github.com/Quick-coder123/zvit/internal/serviceiface"
)

var (
	authDB  *sql.DB
	pgxPool *pgxpool.Pool
)

// SetAuthDB wires the database/sql connection used by the auth service.
func SetAuthDB(db *sql.DB) {
	authDB = db
}

// SetPgxPool wires the pgx pool used by the record service and jobs.
func SetPgxPool(pool *pgxpool.Pool) {
	pgxPool = pool
}

var serviceConstructors = map[string]func(map[string]interface{}) serviceiface.Service{
	"logger": func(cfg map[string]interface{}) serviceiface.Service {
		return logger.NewLoggerService(cfg)
	},
	"auth": func(cfg map[string]interface{}) serviceiface.Service {
		maxUsers := config.Int(cfg, "max_users", config.DefaultMaxUsers)
		sessionTimeout := config.Int(cfg, "session_timeout", config.DefaultSessionTimeoutMin)
		return auth.NewAuthService(authDB, maxUsers, sessionTimeout)
	},
	"zvit": func(cfg map[string]interface{}) serviceiface.Service {
		return zvit.NewZvitService(cfg, pgxPool)
	},
	"cron": func(cfg map[string]interface{}) serviceiface.Service {
		return jobs.NewCronService(cfg, pgxPool)
	},
	"gateway": func(cfg map[string]interface{}) serviceiface.Service {
		return api.NewGatewayService(cfg)
	},
}

type AppManager struct {
	services []serviceiface.Service
	mu       sync.Mutex
}

func NewAppManager() *AppManager {
	return &AppManager{services: make([]serviceiface.Service, 0)}
}

func (am *AppManager) RegisterService(s serviceiface.Service) {
	am.mu.Lock()
	defer am.mu.Unlock()
	am.services = append(am.services, s)
}

func (am *AppManager) StartAll() error {
	am.mu.Lock()
	defer am.mu.Unlock()
	for _, service := range am.services {
		fmt.Println("Starting service:", service.Name())
		if err := service.Start(); err != nil {
			return fmt.Errorf("failed to start service %s: %w", service.Name(), err)
		}
	}
	return nil
}

func (am *AppManager) StopAll() error {
	am.mu.Lock()
	defer am.mu.Unlock()
	for i := len(am.services) - 1; i >= 0; i-- {
		svc := am.services[i]
		if err := svc.Stop(); err != nil {
			return fmt.Errorf("failed to stop service %s: %w", svc.Name(), err)
		}
	}
	return nil
}

// ------------------- YAML CONFIG -------------------

type ServiceSequencer struct {
	Services []ServiceConfig `yaml:"services"`
}

type ServiceConfig struct {
	Name       string                 `yaml:"name"`
	StartOrder int                    `yaml:"start_order"`
	Config     map[string]interface{} `yaml:"config"`
}

// LoadServiceSequence reads services.yaml and returns the configs sorted by
// start order.
func LoadServiceSequence(path string) ([]ServiceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var seq ServiceSequencer
	if err := yaml.Unmarshal(data, &seq); err != nil {
		return nil, err
	}
	sort.Slice(seq.Services, func(i, j int) bool {
		return seq.Services[i].StartOrder < seq.Services[j].StartOrder
	})
	return seq.Services, nil
}

// AutoRegisterServices builds every configured service and wires the global
// auth and logger references as they appear.
func (am *AppManager) AutoRegisterServices(configs []ServiceConfig) {
	for _, svc := range configs {
		constructor, ok := serviceConstructors[svc.Name]
		if !ok {
			continue
		}
		service := constructor(svc.Config)
		am.RegisterService(service)
		if realAuthSvc, ok := service.(*auth.AuthService); ok {
			api.SetAuthService(realAuthSvc)
			auth.SetGlobalAuthService(realAuthSvc)
		}
	}

	for _, svc := range am.services {
		if l, ok := svc.(*logger.LoggerService); ok {
			logger.SetGlobalLogger(l)
			break
		}
	}
}
