package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/dkovalenko/keywarden/internal/buildinfo"
	"github.com/dkovalenko/keywarden/internal/cli"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	endpoint := flag.String("s", "127.0.0.1:50051", "vault server endpoint")
	token := flag.String("token", os.Getenv("KEYWARDEN_TOKEN"), "access token")
	flag.Parse()

	ctx := context.Background()
	app := cli.NewApp(*endpoint, *token, os.Stdout)

	if err := app.Run(ctx, flag.Args()); err != nil {
		log.Fatalf("%v", err)
	}

}
