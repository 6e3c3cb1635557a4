package app

import (
	"log"

	"github.com/Ianrury/articel/internal/config"
	"github.com/Ianrury/articel/internal/remote"
	"github.com/Ianrury/articel/internal/service"
	"github.com/Ianrury/articel/internal/session"
)

// App wires the remote client, the services, and the session codec.
func App(cfg *config.Config) (*remote.Client, *service.Service, *session.Codec) {
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is not set")
	}

	client := remote.NewClient(cfg.APIBaseURL, cfg.APITimeout)
	services := service.NewService(client, cfg)
	sessions := session.NewCodec(cfg.SessionSecret, cfg.SessionDuration)

	return client, services, sessions
}
