// File: cmd/lookup/main.go
//
// One-shot lookup harness: runs a single bot command against the real
// upstreams and prints the rendered reply. Useful for smoke-testing the
// pipeline without a bot token, e.g.:
//
//	go run ./cmd/lookup "/crate serde"
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"telegram-crates-bot/internal/application"
	"telegram-crates-bot/internal/infra/crates"
	"telegram-crates-bot/internal/infra/docsrs"
	"telegram-crates-bot/internal/usecase"
)

func main() {
	timeout := flag.Duration("timeout", 10*time.Second, "per-lookup deadline")
	userAgent := flag.String("ua", "telegram-crates-bot (lookup cli)", "upstream user agent")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, `usage: lookup "/crate serde" | "/docs serde::Deserialize"`)
		os.Exit(2)
	}
	raw := strings.Join(flag.Args(), " ")

	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	logger := zerolog.New(out).With().Timestamp().Logger()

	httpClient := &http.Client{Timeout: *timeout + 5*time.Second}
	cratesClient := crates.NewClient("", *userAgent, httpClient, &logger)
	docsClient := docsrs.NewClient("", *userAgent, httpClient, &logger)

	searchUC := usecase.NewSearchUseCase(cratesClient, docsClient, nil, *timeout, &logger)
	facade := application.NewBotFacade(searchUC, &logger)

	reply := facade.HandleMessage(context.Background(), raw)
	fmt.Println(reply.Text)
	for _, row := range reply.Buttons {
		for _, b := range row {
			fmt.Printf("[%s] %s\n", b.Text, b.URL)
		}
	}
}
