package api

import (
	"fmt"

	"github.com/Quick-coder123/zvit/internal/config"
	"github.com/Quick-coder123/zvit/internal/serviceiface"
)

type GatewayService struct {
	config map[string]interface{}
}

func NewGatewayService(cfg map[string]interface{}) serviceiface.Service {
	return &GatewayService{config: cfg}
}

func (s *GatewayService) Name() string {
	return "gateway"
}

func (s *GatewayService) Start() error {
	port := config.Int(s.config, "port", config.DefaultGatewayPort)
	backends := config.Strings(s.config, "zvit_backends")
	if len(backends) == 0 {
		zvitPort := config.Int(s.config, "zvit_port", config.DefaultZvitPort)
		backends = []string{fmt.Sprintf("http://localhost:%d", zvitPort)}
	}
	go StartGateway(port, backends)
	return nil
}

func (s *GatewayService) Stop() error {
	return nil
}
