// Command carecli consulta la API desde la terminal (familia, agenda, watch).
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "time/tzdata"

	"care-companion/internal/cmd/carecli"
)

func main() {
	cfg, err := carecli.ParseConfig(flag.CommandLine, os.Args[1:], os.LookupEnv)
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := carecli.Run(ctx, cfg, os.Stdout); err != nil {
		log.Fatalf("carecli: %v", err)
	}
}
