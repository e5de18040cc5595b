package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/tanpawarit/Chative-Banking-Support/agent/agents/orchestrator"
	"github.com/tanpawarit/Chative-Banking-Support/agent/agents/specialist"
	llmx "github.com/tanpawarit/Chative-Banking-Support/agent/llm"
	toolx "github.com/tanpawarit/Chative-Banking-Support/agent/tool"
	"github.com/tanpawarit/Chative-Banking-Support/bank/api"
	"github.com/tanpawarit/Chative-Banking-Support/bank/auth"
	"github.com/tanpawarit/Chative-Banking-Support/bank/service"
	"github.com/tanpawarit/Chative-Banking-Support/bank/store"
	"github.com/tanpawarit/Chative-Banking-Support/bank/tokencache"
	configx "github.com/tanpawarit/Chative-Banking-Support/pkg/config"
	_ "github.com/tanpawarit/Chative-Banking-Support/pkg/logger/autoload"
	qstashx "github.com/tanpawarit/Chative-Banking-Support/pkg/qstash"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverCfg := configx.MustNew[api.Config]("SERVER")
	dbCfg := configx.MustNew[store.Config]("DATABASE")
	authCfg := configx.MustNew[auth.Config]("AUTH")
	cacheCfg := configx.MustNew[tokencache.Config]("TOKEN_CACHE")
	llmCfg := configx.MustNew[llmx.Config]("LLM")
	toolsCfg := configx.MustNew[toolx.Config]("TOOLS")
	qstashCfg := configx.MustNew[qstashx.Config]("QSTASH")

	db, err := store.New(ctx, dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	cache, closeCache, err := newTokenCache(ctx, cacheCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize token cache")
	}
	defer closeCache()

	tokens, err := auth.NewTokenManager(authCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize token manager")
	}

	registry, err := specialist.NewRegistry(ctx, llmCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize agents")
	}
	router, err := orchestrator.New(registry, toolx.NewHTTPInvoker(*toolsCfg, nil))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to compile router")
	}

	var publisher service.Publisher
	if qstashCfg.Enabled() {
		publisher = qstashx.MustNew(*qstashCfg)
		log.Info().Msg("support escalation enabled")
	}

	sessions := service.NewSessions(db)
	handler := api.NewRouter(api.Services{
		Users:        service.NewUsers(db, tokens, cache, cacheCfg.TTL),
		Accounts:     service.NewAccounts(db),
		Transactions: service.NewTransactions(db),
		Sessions:     sessions,
		Support:      service.NewSupport(db, sessions, publisher),
		Chat:         service.NewChat(db, sessions, cache, router),
	})

	srv := api.NewServer(serverCfg, handler)
	go func() {
		log.Info().Str("addr", serverCfg.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

func newTokenCache(ctx context.Context, cfg *tokencache.Config) (tokencache.Cache, func(), error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case tokencache.DriverUpstash:
		upstashCfg := configx.MustNew[tokencache.UpstashConfig]("UPSTASH")
		c, err := tokencache.NewUpstashCache(*upstashCfg)
		if err != nil {
			return nil, nil, err
		}
		return c, func() {}, nil
	default:
		redisCfg := configx.MustNew[tokencache.RedisConfig]("REDIS")
		c, err := tokencache.NewRedisCache(ctx, *redisCfg)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.Close() }, nil
	}
}
