package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"klinechart/bot"
	"klinechart/config"
	"klinechart/utils/log"
)

func main() {
	// 1) 설정
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if err := log.SetLevel(cfg.LogLevel); err != nil {
		log.Warnf("invalid log level %q, keep default: %v", cfg.LogLevel, err)
	}

	// 2) KlineBot 인스턴스 생성
	klineBot, err := bot.NewKlineBot(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// 3) Start
	ctx := context.Background()
	klineBot.Start(ctx)

	// 4) OS 시그널 대기 (Graceful Stop)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Infof("Shutting down gracefully...")

	// 5) Stop
	klineBot.Stop()
	log.Infof("Shutdown complete.")
}
