package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	err := godotenv.Load()
	if os.IsNotExist(err) {
		log.Printf("no .env file found, skipping")
	} else if err != nil {
		log.Fatalf("failed loading .env file: %s", err)
	}

	err = newApp().Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "album-manager"
	app.Usage = "Browse and edit a remote albums collection."
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "api-url",
			Value:   defaultAPIURL,
			Usage:   "base url of the albums api",
			EnvVars: []string{"ALBUMS_API_URL"},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "request timeout, 0 leaves requests to the transport defaults",
			EnvVars: []string{"ALBUMS_TIMEOUT"},
		},
		&cli.StringFlag{
			Name:    "log-file",
			Usage:   "file to append logs to (the interactive ui defaults to " + uiLogFile + ")",
			EnvVars: []string{"ALBUMS_LOG_FILE"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "debug, info, warn or error",
			EnvVars: []string{"ALBUMS_LOG_LEVEL"},
		},
	}
	app.Action = uiAction
	app.Commands = []*cli.Command{
		{
			Name:   "ui",
			Usage:  "manage albums interactively",
			Action: uiAction,
		},
		{
			Name:   "list",
			Usage:  "print all albums",
			Action: listAction,
		},
		{
			Name:      "add",
			Usage:     "create an album",
			ArgsUsage: "<title>",
			Action:    addAction,
		},
		{
			Name:      "update",
			Usage:     "change the title of an album",
			ArgsUsage: "<id> <title>",
			Action:    updateAction,
		},
		{
			Name:      "delete",
			Usage:     "delete an album after confirmation",
			ArgsUsage: "<id>",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "yes",
					Aliases: []string{"y"},
					Usage:   "skip the confirmation prompt",
				},
			},
			Action: deleteAction,
		},
		{
			Name:  "serve",
			Usage: "run a local albums api that persists writes",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "port",
					Value:   8080,
					Usage:   "port to run server on",
					EnvVars: []string{"ALBUMS_PORT"},
				},
				&cli.StringFlag{
					Name:    "database",
					Value:   "albums.db",
					Usage:   "sqlite database path",
					EnvVars: []string{"ALBUMS_DATABASE"},
				},
				&cli.StringFlag{
					Name:    "seed",
					Usage:   "yaml file of albums loaded into an empty database",
					EnvVars: []string{"ALBUMS_SEED"},
				},
			},
			Action: serveAction,
		},
	}
	return app
}
