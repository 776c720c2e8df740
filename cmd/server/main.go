// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/mcubecollections/selfie-verification/internal/config"
	"github.com/mcubecollections/selfie-verification/internal/server"
)

func main() {
	cmd := &cli.Command{
		Name:   "selfie-verification",
		Usage:  "Start the identity verification web application",
		Flags:  config.Flags(),
		Action: server.Run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
